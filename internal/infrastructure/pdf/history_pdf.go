// Package pdf genera la exportación del historial de operaciones.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────┐
//	│  HEADER: nombre de la app │ fecha + saldo   │
//	│  ─────────────────────────────────────────  │
//	│  TABLA: # | Tipo | Detalle                   │
//	│  ─────────────────────────────────────────  │
//	│  FOOTER: total de operaciones                │
//	└─────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/warehouse/internal/application/warehouse"
	"github.com/jhoicas/warehouse/internal/domain/entity"
	"github.com/jhoicas/warehouse/pkg/currency"
)

var _ warehouse.HistoryPDFGenerator = (*MarotoHistoryPDF)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoHistoryPDF implementa warehouse.HistoryPDFGenerator usando Maroto v2.
type MarotoHistoryPDF struct {
	title string
	money currency.Formatter
	nowFn func() time.Time
}

// NewMarotoHistoryPDF construye el generador. title aparece en la cabecera.
func NewMarotoHistoryPDF(title string, money currency.Formatter) *MarotoHistoryPDF {
	return &MarotoHistoryPDF{title: title, money: money, nowFn: time.Now}
}

// GenerateHistoryPDF genera el PDF y devuelve sus bytes.
func (g *MarotoHistoryPDF) GenerateHistoryPDF(_ context.Context, ops []*entity.Operation, balance *entity.AccountBalance) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title+" - historial", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(balance))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, op := range ops {
		m.AddRows(operationRow(op))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(
		col.New(12).Add(text.New(fmt.Sprintf("Operations: %d", len(ops)), props.Text{
			Size: 8, Align: align.Right, Color: colorGray, Top: 2,
		})),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar historial: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoHistoryPDF) headerRow(balance *entity.AccountBalance) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Operation history", props.Text{Size: 9, Top: 8, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Balance: "+g.money.Format(balance.Balance), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New(g.nowFn().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Type", 2, align.Left),
		h("Details", 9, align.Left),
	)
}

func operationRow(op *entity.Operation) core.Row {
	return row.New(7).Add(
		col.New(1).Add(text.New(strconv.FormatInt(op.ID, 10), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(op.Type, props.Text{Size: 8, Top: 1})),
		col.New(9).Add(text.New(op.Details, props.Text{Size: 8, Top: 1})),
	)
}
