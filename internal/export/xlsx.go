package export

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"dario.cat/mergo"
	"github.com/xuri/excelize/v2"

	"github.com/mmynk/moneybalance/internal/ledger"
)

// xlsxArgSep is the argument separator of the XLSX formula grammar.
const xlsxArgSep = ","

const maxSheetNameLength = 31

// XLSX renders the ledger as an XLSX workbook with one sheet.
func XLSX(l *ledger.Ledger) ([]byte, error) {
	return Build(l).XLSX(l.Title())
}

// XLSX renders the grid into a workbook whose only sheet is named after
// title. Cells keep the CSV layout. Formula cells carry no cached value, so
// spreadsheet applications compute them on open.
func (s *Sheet) XLSX(title string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	_ = f.SetDocProps(&excelize.DocProperties{
		Title:   title,
		Creator: "moneybalance",
	})

	sheet := SheetName(title)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	w := &xlsxWriter{f: f, sheet: sheet, digits: s.MainDigits, styles: make(map[string]int)}
	for i, row := range s.Rows {
		for j, c := range row {
			if err := w.setCell(i+1, j+1, c, s.rowStyle(i+1)); err != nil {
				return nil, err
			}
		}
	}

	lay := s.Layout
	_ = f.SetColWidth(sheet, ColumnName(DateColumn), ColumnName(DateColumn), 12)
	_ = f.SetColWidth(sheet, ColumnName(TitleColumn), ColumnName(TitleColumn), 30)
	if lay.Persons > 0 {
		_ = f.SetColWidth(sheet, ColumnName(lay.FirstWeightColumn()), ColumnName(lay.Width()), 12)
	}
	_ = f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      HeaderRow,
		TopLeftCell: CellRef(FirstExpenseRow, 1),
		ActivePane:  "bottomLeft",
	})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// rowStyle names the extra style of a row: the title, the header, and the
// three total rows are bold.
func (s *Sheet) rowStyle(row int) string {
	switch {
	case row == TitleRow, row == HeaderRow:
		return "bold"
	case row >= s.Layout.TotalPaidRow():
		return "bold"
	default:
		return ""
	}
}

type xlsxWriter struct {
	f      *excelize.File
	sheet  string
	digits int // fraction digits of formula results
	styles map[string]int
}

func (w *xlsxWriter) setCell(row, col int, c Cell, extra string) error {
	ref := CellRef(row, col)
	var (
		err  error
		base *excelize.Style
		key  string
	)
	switch c.Kind {
	case CellBlank:
		return nil
	case CellText:
		err = w.f.SetCellStr(w.sheet, ref, c.Text)
	case CellNumber:
		err = w.f.SetCellFloat(w.sheet, ref, c.Value, c.Digits, 64)
		key = fmt.Sprintf("number%d", c.Digits)
		base = numberFormat(c.Digits)
	case CellDate:
		err = w.f.SetCellValue(w.sheet, ref, c.Time)
		key = "date"
		base = dateFormat()
	case CellFormula:
		err = w.f.SetCellFormula(w.sheet, ref, c.Expr.render(xlsxArgSep))
		key = fmt.Sprintf("number%d", w.digits)
		base = numberFormat(w.digits)
	}
	if err != nil {
		return fmt.Errorf("failed to set cell %s: %w", ref, err)
	}

	styles := []*excelize.Style{defaultStyle()}
	if base != nil {
		styles = append(styles, base)
	}
	if extra == "bold" {
		styles = append(styles, fontBold())
		key += "+bold"
	}
	if key == "" {
		return nil
	}
	id, ok := w.styles[key]
	if !ok {
		id, err = w.f.NewStyle(mergeStyles(styles...))
		if err != nil {
			return fmt.Errorf("failed to create style %s: %w", key, err)
		}
		w.styles[key] = id
	}
	return w.f.SetCellStyle(w.sheet, ref, ref, id)
}

// SheetName derives a valid worksheet name from title.
func SheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	name = strings.Trim(name, "'")
	for utf8.RuneCountInString(name) > maxSheetNameLength {
		_, size := utf8.DecodeLastRuneInString(name)
		name = name[:len(name)-size]
	}
	if name == "" {
		return "Sheet1"
	}
	return name
}

func defaultStyle() *excelize.Style {
	return &excelize.Style{
		Alignment: &excelize.Alignment{
			Vertical: "center",
		},
	}
}

func numberFormat(digits int) *excelize.Style {
	format := "General"
	if digits == 0 {
		format = "0"
	} else if digits > 0 {
		format = "0." + strings.Repeat("0", digits)
	}
	return &excelize.Style{
		CustomNumFmt: &format,
	}
}

func dateFormat() *excelize.Style {
	format := "yyyy-mm-dd"
	return &excelize.Style{
		CustomNumFmt: &format,
	}
}

func fontBold() *excelize.Style {
	return &excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	}
}

func mergeStyles(ext ...*excelize.Style) *excelize.Style {
	if len(ext) == 0 {
		return nil
	}
	for _, e := range ext[1:] {
		_ = mergo.Merge(ext[0], e, mergo.WithOverride)
	}
	return ext[0]
}
