package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type exportPDFCmd struct {
	output string
}

func (*exportPDFCmd) Name() string     { return "export-pdf" }
func (*exportPDFCmd) Synopsis() string { return "write the operation history as a PDF document" }
func (*exportPDFCmd) Usage() string {
	return `warehousectl export-pdf [-o history.pdf]
`
}

func (c *exportPDFCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "history.pdf", "Output file.")
}

func (c *exportPDFCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, cleanup, err := openApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer cleanup()

	doc, err := app.UseCases.History.ExportPDF(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(c.output, doc, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s (%d bytes)\n", c.output, len(doc))
	return subcommands.ExitSuccess
}
