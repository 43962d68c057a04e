package cmd

import (
	"github.com/luthersystems/yascl/repl"
	"github.com/spf13/cobra"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Long: `Start an interactive session.  Each complete unit of input is
evaluated and its value printed.  Input continues on the next line while
brackets are unbalanced.  Press Ctrl-C to discard input and Ctrl-D to exit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl(cmd)
	},
}

func runRepl(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	rcfg := repl.DefaultConfig()
	rcfg.Trace = trace
	cfg.ApplyRepl(rcfg)
	return repl.RunRepl(rcfg)
}

func init() {
	rootCmd.AddCommand(replCmd)
}
