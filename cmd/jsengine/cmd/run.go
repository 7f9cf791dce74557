package cmd

import (
	"fmt"

	"github.com/cwbudde/go-jsengine/pkg/jsengine"
	"github.com/spf13/cobra"
)

var (
	runEval    string
	runDumpIR  bool
	runTimeout int
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a script and print its console output",
	Long: `Execute a script through pkg/jsengine.Engine and print whatever
console.log/warn/error/info calls it made, in order.

If no file is given, reads from stdin. Use -e to run an inline
expression instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runEval, "eval", "e", "", "run inline code instead of reading from a file")
	runCmd.Flags().BoolVar(&runDumpIR, "dump-ir", false, "print the transformed IR before running")
	runCmd.Flags().IntVar(&runTimeout, "timeout-ms", 0, "bound how long pending timers/microtasks may run after the synchronous portion completes (0 = use the config file's timeoutMs; unbounded if that is unset too)")
}

func runRun(_ *cobra.Command, args []string) error {
	input, label, err := readSource(runEval, args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	timeout := runTimeout
	if timeout == 0 {
		timeout = cfg.Timeout
	}
	e := jsengine.New(jsengine.Options{
		EnableAnnexBFunctionExtensions: cfg.AnnexB,
		TimeoutMs:                      timeout,
	})

	if runDumpIR {
		prog, err := e.Parse(input)
		if err != nil {
			return reportParseError(err, label)
		}
		fmt.Println(prog.String())
		fmt.Println("---")
	}

	if err := e.Run(input); err != nil {
		return fmt.Errorf("running %s: %w", label, err)
	}
	for _, line := range e.ConsoleOutput() {
		fmt.Println(line)
	}
	return nil
}
