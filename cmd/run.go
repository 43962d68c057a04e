package cmd

import (
	"fmt"
	"os"

	"github.com/luthersystems/yascl/lang/lib"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] FILE|EXPR...",
	Short: "Run yascl code",
	Long: `Run yascl code supplied via the command line or a file.
All programs are evaluated in order in one shared environment.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		names, sources, err := runReadSources(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		env, err := lib.NewEnv(cfg.EnvConfig()...)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for i := range sources {
			v, err := env.EvalSource(names[i], sources[i])
			if err != nil {
				printError(os.Stderr, err)
				os.Exit(1)
			}
			if runPrint && !v.IsNull() {
				fmt.Println(v)
			}
		}
	},
}

// runReadSources returns the program sources named by args along with the
// file names errors will report.
func runReadSources(args []string) (names []string, sources []string, err error) {
	names = make([]string, len(args))
	sources = make([]string, len(args))
	if runExpression {
		for i := range args {
			names[i] = fmt.Sprintf("expr%d", i+1)
			sources[i] = args[i]
		}
		return names, sources, nil
	}
	for i, path := range args {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		names[i] = path
		sources[i] = string(b)
	}
	return names, sources, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as yascl expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
