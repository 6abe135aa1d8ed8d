package export

// Fixed columns, 1-based.
const (
	DateColumn          = 1
	PayerColumn         = 2
	TitleColumn         = 3
	LocalCurrencyColumn = 4
	LocalAmountColumn   = 5
	ExchangeRateColumn  = 6 // multi-currency only
	MainCurrencyColumn  = 7 // multi-currency only
)

// Fixed rows, 1-based.
const (
	TitleRow        = 1
	HeaderRow       = 2
	FirstExpenseRow = 3
)

// Layout computes the column and row positions of the exported grid. It
// depends only on the number of persons, the number of expenses, and
// whether the calculation uses more than one currency.
//
//	Single | Multi | Description
//	    1  |    1  |  Date
//	    2  |    2  |  Payer
//	    3  |    3  |  Title
//	    4  |    4  |  Local currency
//	    5  |    5  |  Amount (local currency)
//	    -  |    6  |  Exchange rate
//	    -  |    7  |  Main currency
//	    5  |    8  |  Amount (exchanged)
//	    6  |    9  |  First split weight
//	  5+n  |  8+n  |  Last split weight
//	  6+n  |  9+n  |  First share
//	 5+2n  | 8+2n  |  Last share
type Layout struct {
	Persons       int
	Expenses      int
	MultiCurrency bool
}

// ExchangedAmountColumn holds the amount in main-currency units.
func (l Layout) ExchangedAmountColumn() int {
	if l.MultiCurrency {
		return 8
	}
	return LocalAmountColumn
}

func (l Layout) FirstWeightColumn() int { return l.ExchangedAmountColumn() + 1 }
func (l Layout) WeightColumn(i int) int { return l.FirstWeightColumn() + i }
func (l Layout) LastWeightColumn() int  { return l.FirstWeightColumn() + l.Persons - 1 }
func (l Layout) FirstShareColumn() int  { return l.FirstWeightColumn() + l.Persons }
func (l Layout) ShareColumn(i int) int  { return l.FirstShareColumn() + i }

// Width is the number of columns of header, expense and total rows.
func (l Layout) Width() int { return l.FirstShareColumn() + l.Persons - 1 }

func (l Layout) LastExpenseRow() int   { return FirstExpenseRow + l.Expenses - 1 }
func (l Layout) TotalPaidRow() int     { return FirstExpenseRow + l.Expenses }
func (l Layout) TotalConsumedRow() int { return l.TotalPaidRow() + 1 }
func (l Layout) ResultRow() int        { return l.TotalPaidRow() + 2 }
