package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"

	"github.com/jhoicas/warehouse/internal/domain/entity"
)

type historyCmd struct {
	utc bool
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "print every recorded operation in insertion order" }
func (*historyCmd) Usage() string {
	return `warehousectl history [-utc]

  Prints the operation log, oldest first.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.utc, "utc", false, "Print timestamps in UTC instead of local time.")
}

func (c *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, cleanup, err := openApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer cleanup()

	ops, err := app.UseCases.History.ListOperations(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := writeHistory(os.Stdout, ops, c.utc); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// writeHistory escribe una tabla alineada; sin operaciones imprime un aviso.
func writeHistory(w io.Writer, ops []*entity.Operation, utc bool) error {
	if len(ops) == 0 {
		_, err := fmt.Fprintln(w, "No operations yet.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tDETAILS")
	for _, op := range ops {
		at := op.CreatedAt
		if utc {
			at = at.UTC()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", op.ID, at.Format(time.DateTime), op.Type, op.Details)
	}
	return tw.Flush()
}
