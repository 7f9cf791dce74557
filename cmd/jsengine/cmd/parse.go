package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-jsengine/pkg/jsengine"
	"github.com/spf13/cobra"
)

var (
	parseEval      string
	parseTransform bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a script and print its intermediate representation",
	Long: `Parse a script and print the resulting IR.

By default the async/await CPS lowering pass runs first, same as
Engine.Parse; pass --transform=false to see the source-shaped tree
Engine.ParseWithoutTransformation returns instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline code instead of reading from a file")
	parseCmd.Flags().BoolVar(&parseTransform, "transform", true, "run the CPS transformation pass before printing")
}

func runParse(_ *cobra.Command, args []string) error {
	input, label, err := readSource(parseEval, args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	e := jsengine.New(jsengine.Options{EnableAnnexBFunctionExtensions: cfg.AnnexB})

	var prog interface{ String() string }
	if parseTransform {
		p, err := e.Parse(input)
		if err != nil {
			return reportParseError(err, label)
		}
		prog = p
	} else {
		p, err := e.ParseWithoutTransformation(input)
		if err != nil {
			return reportParseError(err, label)
		}
		prog = p
	}

	fmt.Println(prog.String())
	return nil
}

func reportParseError(err error, label string) error {
	fmt.Fprintf(os.Stderr, "parsing %s failed:\n%v\n", label, err)
	return fmt.Errorf("parsing failed")
}
