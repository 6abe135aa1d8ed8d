// Package export renders a calculation as a spreadsheet whose shares, totals
// and results are live formulas. The grid is built once (Build) and then
// serialized as CSV text or as an XLSX workbook.
package export

import (
	"strconv"
	"time"

	"github.com/mmynk/moneybalance/internal/ledger"
	"github.com/mmynk/moneybalance/internal/models"
)

// CellKind tells renderers how to emit a cell.
type CellKind int

const (
	CellBlank CellKind = iota
	CellText
	CellNumber
	CellDate
	CellFormula
)

// Cell is one grid cell.
type Cell struct {
	Kind CellKind

	Text   string    // CellText
	Value  float64   // CellNumber
	Digits int       // CellNumber: fraction digits, -1 for shortest representation
	Time   time.Time // CellDate
	Expr   Expr      // CellFormula
}

// FormatNumber renders a CellNumber cell as fixed, non-grouped dot-decimal text.
func (c Cell) FormatNumber() string {
	return strconv.FormatFloat(c.Value, 'f', c.Digits, 64)
}

func textCell(s string) Cell                { return Cell{Kind: CellText, Text: s} }
func numberCell(v float64, digits int) Cell { return Cell{Kind: CellNumber, Value: v, Digits: digits} }
func dateCell(t time.Time) Cell             { return Cell{Kind: CellDate, Time: t} }
func formulaCell(e Expr) Cell               { return Cell{Kind: CellFormula, Expr: e} }

// Sheet is the rendered grid. Rows[i] is spreadsheet row i+1 and Rows[i][j]
// is column j+1.
type Sheet struct {
	Layout Layout
	Rows   [][]Cell

	// MainDigits is the main currency's fraction digits, the precision of
	// every formula result.
	MainDigits int
}

// Cell returns the cell at a 1-based position, or a blank cell outside the
// grid.
func (s *Sheet) Cell(row, col int) Cell {
	if row < 1 || row > len(s.Rows) || col < 1 || col > len(s.Rows[row-1]) {
		return Cell{}
	}
	return s.Rows[row-1][col-1]
}

// Build lays out the ledger. The result depends only on the snapshot's
// content, never on the clock.
func Build(l *ledger.Ledger) *Sheet {
	persons := l.Persons()
	expenses := l.ExpensesByDate()
	main := l.MainCurrency()

	lay := Layout{
		Persons:       len(persons),
		Expenses:      len(expenses),
		MultiCurrency: l.IsMultiCurrency(),
	}
	s := &Sheet{Layout: lay, MainDigits: main.FractionDigits}

	s.Rows = append(s.Rows, []Cell{textCell(l.Title())})

	header := make([]Cell, lay.Width())
	for i, p := range persons {
		header[lay.WeightColumn(i)-1] = textCell(p.Name)
		header[lay.ShareColumn(i)-1] = textCell(p.Name)
	}
	s.Rows = append(s.Rows, header)

	for i := range expenses {
		e := &expenses[i]
		row := FirstExpenseRow + i
		cells := make([]Cell, lay.Width())
		set := func(col int, c Cell) { cells[col-1] = c }

		set(DateColumn, dateCell(models.Day(e.Date)))
		set(PayerColumn, textCell(l.Payer(e).Name))
		set(TitleColumn, textCell(e.Title))

		cur := l.ExpenseCurrency(e)
		switch {
		case !lay.MultiCurrency:
			set(LocalCurrencyColumn, textCell(cur.Code))
			set(LocalAmountColumn, numberCell(e.Amount, main.FractionDigits))
		case cur.ID == main.ID:
			set(MainCurrencyColumn, textCell(main.Code))
			set(lay.ExchangedAmountColumn(), numberCell(e.Amount, main.FractionDigits))
		default:
			set(LocalCurrencyColumn, textCell(cur.Code))
			set(LocalAmountColumn, numberCell(e.Amount, cur.FractionDigits))
			set(ExchangeRateColumn, numberCell(cur.ExchangeRate(), -1))
			set(MainCurrencyColumn, textCell(main.Code))
			set(lay.ExchangedAmountColumn(), formulaCell(Mul(
				Ref{row, LocalAmountColumn},
				Ref{row, ExchangeRateColumn},
			)))
		}

		for j, p := range persons {
			if !e.IsUnevenSplit() {
				set(lay.WeightColumn(j), numberCell(1, main.FractionDigits))
				continue
			}
			if w, ok := e.SplitWeights[p.ID]; ok {
				set(lay.WeightColumn(j), numberCell(w, main.FractionDigits))
			}
		}

		weights := RowRange(row, lay.FirstWeightColumn(), lay.LastWeightColumn())
		for j := range persons {
			set(lay.ShareColumn(j), formulaCell(Div(
				Mul(Ref{row, lay.ExchangedAmountColumn()}, Ref{row, lay.WeightColumn(j)}),
				Sum(weights),
			)))
		}

		s.Rows = append(s.Rows, cells)
	}

	paid := make([]Cell, lay.Width())
	consumed := make([]Cell, lay.Width())
	result := make([]Cell, lay.Width())
	payers := ColRange(PayerColumn, FirstExpenseRow, lay.LastExpenseRow())
	amounts := ColRange(lay.ExchangedAmountColumn(), FirstExpenseRow, lay.LastExpenseRow())
	for i := range persons {
		col := lay.ShareColumn(i)
		paid[col-1] = formulaCell(SumIf(payers, Ref{HeaderRow, col}, amounts))
		consumed[col-1] = formulaCell(Sum(ColRange(col, FirstExpenseRow, lay.LastExpenseRow())))
		result[col-1] = formulaCell(Sub(Ref{lay.TotalPaidRow(), col}, Ref{lay.TotalConsumedRow(), col}))
	}
	s.Rows = append(s.Rows, paid, consumed, result)

	return s
}
