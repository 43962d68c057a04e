package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/luthersystems/yascl/lang"
	"github.com/luthersystems/yascl/langerr"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	maxStack int
	trace    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yascl",
	Short: "Yet another scripting language",
	Long: `yascl is a small dynamically typed scripting language.

Without a subcommand yascl starts an interactive REPL.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().  It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Configuration file (default is $HOME/"+DefaultConfigName+")")
	rootCmd.PersistentFlags().IntVar(&maxStack, "max-stack", lang.DefaultMaxStackHeight,
		"Maximum depth of nested function calls (must be positive)")
	rootCmd.PersistentFlags().BoolVar(&trace, "trace", false,
		"Print a stack trace with runtime errors")
}

// loadConfig reads the configuration file named by --config or the default
// file when it exists.  Flags override file settings.
func loadConfig(cmd *cobra.Command) (*Config, error) {
	path := cfgFile
	if path == "" {
		path = defaultConfigPath()
	}
	cfg := &Config{}
	if path != "" {
		var err error
		cfg, err = LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("max-stack") {
		n := maxStack
		cfg.MaxStackHeight = &n
	}
	return cfg, nil
}

// printError writes err to w, followed by its call stack when --trace is
// set.
func printError(w io.Writer, err error) {
	var lerr *langerr.Error
	if trace && errors.As(err, &lerr) {
		lerr.WriteTrace(w)
		return
	}
	fmt.Fprintln(w, err)
}
