package export

import (
	"io"
	"strings"

	"github.com/mmynk/moneybalance/internal/ledger"
	"github.com/mmynk/moneybalance/internal/models"
)

// csvArgSep separates function arguments inside CSV formula cells. A bare
// "," would end the field.
const csvArgSep = "; "

// CSV renders the ledger as formula-bearing CSV text.
func CSV(l *ledger.Ledger) string {
	return Build(l).CSV()
}

// WriteCSV writes the CSV rendering of the ledger to w.
func WriteCSV(w io.Writer, l *ledger.Ledger) error {
	_, err := io.WriteString(w, CSV(l))
	return err
}

// CSV renders the grid. Text is quoted, numbers and formulas are not.
// Every row, including the last, ends with "\n".
func (s *Sheet) CSV() string {
	var b strings.Builder
	for _, row := range s.Rows {
		for j, c := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(csvField(c))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func csvField(c Cell) string {
	switch c.Kind {
	case CellText:
		return Quote(c.Text)
	case CellNumber:
		return c.FormatNumber()
	case CellDate:
		return c.Time.Format(models.DateLayout)
	case CellFormula:
		return RenderFormula(c.Expr, csvArgSep)
	default:
		return ""
	}
}

// Quote wraps s in double quotes, doubling embedded quotes.
func Quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
