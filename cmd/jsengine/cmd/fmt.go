package cmd

import (
	"fmt"

	"github.com/cwbudde/go-jsengine/internal/ast"
	"github.com/cwbudde/go-jsengine/pkg/jsengine"
	"github.com/spf13/cobra"
)

var fmtEval string

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Print a script's canonical cons-cell IR form",
	Long: `Parse a script and print its canonical s-expression IR, the stable
wire form internal/ast.ToSExpr derives from the typed AST.

There is no source-to-source reformatter in this project: the IR itself,
not reconstructed JS source, is the canonical form snapshot tests and
tooling compare against.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().StringVarP(&fmtEval, "eval", "e", "", "format inline code instead of reading from a file")
}

func runFmt(_ *cobra.Command, args []string) error {
	input, label, err := readSource(fmtEval, args)
	if err != nil {
		return err
	}

	e := jsengine.New(jsengine.Options{})
	prog, err := e.ParseWithoutTransformation(input)
	if err != nil {
		return reportParseError(err, label)
	}

	sexpr := ast.ToSExpr(prog)
	fmt.Println(sexpr.String())
	return nil
}
