package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/luthersystems/yascl/lang"
	"github.com/luthersystems/yascl/lang/lib"
	"github.com/luthersystems/yascl/lang/lib/libtesting"
	"github.com/spf13/cobra"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test FILE...",
	Short: "Run tests declared in yascl scripts",
	Long: `Run the tests that yascl scripts declare with test(name, fun).  Each
test runs in a freshly loaded environment.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		failed := false
		for _, path := range args {
			ok, err := runTestFile(os.Stdout, path, cfg.EnvConfig())
			if err != nil {
				printError(os.Stderr, err)
				os.Exit(1)
			}
			failed = failed || !ok
		}
		if failed {
			os.Exit(1)
		}
	},
}

// runTestFile runs the tests in the script at path and reports each result
// to w.  It returns false if any test failed.
func runTestFile(w io.Writer, path string, config []lang.Config) (bool, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	name := filepath.Base(path)
	load := func() (*lang.Env, *libtesting.TestSuite, error) {
		env, err := lib.NewEnv(config...)
		if err != nil {
			return nil, nil, err
		}
		_, err = env.Load(name, bytes.NewReader(source))
		if err != nil {
			return nil, nil, err
		}
		return env, libtesting.EnvTestSuite(env), nil
	}
	_, suite, err := load()
	if err != nil {
		return false, err
	}
	ok := true
	for i := 0; i < suite.Len(); i++ {
		env, suite, err := load()
		if err != nil {
			return false, err
		}
		test := suite.Test(i)
		err = test.Run(env)
		if err != nil {
			ok = false
			fmt.Fprintf(w, "FAIL %s: %s\n    %v\n", name, test.Name, err)
			continue
		}
		fmt.Fprintf(w, "PASS %s: %s\n", name, test.Name)
	}
	return ok, nil
}

func init() {
	rootCmd.AddCommand(testCmd)
}
