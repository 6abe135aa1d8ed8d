package export

import "strings"

// Expr is a spreadsheet formula expression. Rendering takes the function
// argument separator, which differs between targets: CSV opened in office
// suites expects "; " while the XLSX file format stores ",".
type Expr interface {
	render(argSep string) string
}

// Ref is a single cell reference.
type Ref struct {
	Row, Col int
}

func (r Ref) render(string) string { return CellRef(r.Row, r.Col) }

// Range is a rectangular cell range.
type Range struct {
	From, To Ref
}

func (r Range) render(argSep string) string {
	return r.From.render(argSep) + ":" + r.To.render(argSep)
}

// RowRange spans columns first..last of one row.
func RowRange(row, first, last int) Range {
	return Range{From: Ref{row, first}, To: Ref{row, last}}
}

// ColRange spans rows first..last of one column.
func ColRange(col, first, last int) Range {
	return Range{From: Ref{first, col}, To: Ref{last, col}}
}

type binary struct {
	op   string
	l, r Expr
}

// Operands are references or function calls, so no parentheses are needed
// for the left-associative chains built here.
func (b binary) render(argSep string) string {
	return b.l.render(argSep) + b.op + b.r.render(argSep)
}

func Mul(l, r Expr) Expr { return binary{"*", l, r} }
func Div(l, r Expr) Expr { return binary{"/", l, r} }
func Sub(l, r Expr) Expr { return binary{"-", l, r} }

type call struct {
	name string
	args []Expr
}

func (c call) render(argSep string) string {
	args := make([]string, len(c.args))
	for i, a := range c.args {
		args[i] = a.render(argSep)
	}
	return c.name + "(" + strings.Join(args, argSep) + ")"
}

// Sum is SUM(r).
func Sum(r Range) Expr { return call{"SUM", []Expr{r}} }

// SumIf is SUMIF(r, criterion, sumRange).
func SumIf(r Range, criterion Expr, sumRange Range) Expr {
	return call{"SUMIF", []Expr{r, criterion, sumRange}}
}

// RenderFormula renders e as a cell formula with a leading "=".
func RenderFormula(e Expr, argSep string) string {
	return "=" + e.render(argSep)
}
