package service

// CalculationServiceName is the fully-qualified name of the RPC service.
const CalculationServiceName = "moneybalance.v1.CalculationService"

// Procedure paths of CalculationService.
const (
	CreateCalculationProcedure = "/" + CalculationServiceName + "/CreateCalculation"
	GetCalculationProcedure    = "/" + CalculationServiceName + "/GetCalculation"
	ListCalculationsProcedure  = "/" + CalculationServiceName + "/ListCalculations"
	RenameCalculationProcedure = "/" + CalculationServiceName + "/RenameCalculation"
	DeleteCalculationProcedure = "/" + CalculationServiceName + "/DeleteCalculation"
	AddPersonProcedure         = "/" + CalculationServiceName + "/AddPerson"
	RenamePersonProcedure      = "/" + CalculationServiceName + "/RenamePerson"
	DeletePersonProcedure      = "/" + CalculationServiceName + "/DeletePerson"
	AddCurrencyProcedure       = "/" + CalculationServiceName + "/AddCurrency"
	SetExchangeRateProcedure   = "/" + CalculationServiceName + "/SetExchangeRate"
	DeleteCurrencyProcedure    = "/" + CalculationServiceName + "/DeleteCurrency"
	CreateExpenseProcedure     = "/" + CalculationServiceName + "/CreateExpense"
	UpdateExpenseProcedure     = "/" + CalculationServiceName + "/UpdateExpense"
	DeleteExpenseProcedure     = "/" + CalculationServiceName + "/DeleteExpense"
	GetSummaryProcedure        = "/" + CalculationServiceName + "/GetSummary"
	ExportCSVProcedure         = "/" + CalculationServiceName + "/ExportCSV"
	ExportXLSXProcedure        = "/" + CalculationServiceName + "/ExportXLSX"
)

// Calculation is the wire form of a calculation snapshot.
type Calculation struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	MainCurrency string     `json:"mainCurrency"`
	CreatedAt    int64      `json:"createdAt"`
	Currencies   []Currency `json:"currencies"`
	Persons      []Person   `json:"persons"`
	Expenses     []Expense  `json:"expenses"`
}

type Currency struct {
	ID             string  `json:"id"`
	Code           string  `json:"code"`
	Symbol         string  `json:"symbol"`
	FractionDigits int     `json:"fractionDigits"`
	RateThis       float64 `json:"rateThis"`
	RateMain       float64 `json:"rateMain"`
}

type Person struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Expense struct {
	ID              string             `json:"id"`
	PayerID         string             `json:"payerId"`
	Title           string             `json:"title"`
	Amount          float64            `json:"amount"`
	FormattedAmount string             `json:"formattedAmount"`
	CurrencyCode    string             `json:"currencyCode"`
	Date            string             `json:"date"`
	SplitWeights    map[string]float64 `json:"splitWeights,omitempty"`
}

// CalculationSummary is one entry of ListCalculations.
type CalculationSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	MainCurrency string `json:"mainCurrency"`
	PersonCount  int    `json:"personCount"`
	ExpenseCount int    `json:"expenseCount"`
	CreatedAt    int64  `json:"createdAt"`
}

// ExpenseInput carries an expense as entered by the user. Amount and
// weights are locale-formatted strings.
type ExpenseInput struct {
	Title        string       `json:"title"`
	PayerID      string       `json:"payerId"`
	Amount       string       `json:"amount"`
	CurrencyCode string       `json:"currencyCode,omitempty"`
	Date         string       `json:"date"`
	CustomSplit  bool         `json:"customSplit,omitempty"`
	Split        []SplitEntry `json:"split,omitempty"`
}

type SplitEntry struct {
	PersonID string `json:"personId"`
	Enabled  bool   `json:"enabled"`
	Weight   string `json:"weight,omitempty"`
}

// PersonBalance is one row of a settlement.
type PersonBalance struct {
	PersonID          string  `json:"personId"`
	Name              string  `json:"name"`
	TotalPaid         float64 `json:"totalPaid"`
	TotalConsumed     float64 `json:"totalConsumed"`
	Balance           float64 `json:"balance"`
	FormattedPaid     string  `json:"formattedPaid"`
	FormattedConsumed string  `json:"formattedConsumed"`
	FormattedBalance  string  `json:"formattedBalance"`
}

type CreateCalculationRequest struct {
	Title        string   `json:"title"`
	MainCurrency string   `json:"mainCurrency"`
	Persons      []string `json:"persons"`
}

type CreateCalculationResponse struct {
	Calculation Calculation `json:"calculation"`
}

type GetCalculationRequest struct {
	CalculationID string `json:"calculationId"`
}

type GetCalculationResponse struct {
	Calculation Calculation `json:"calculation"`
}

type ListCalculationsRequest struct{}

type ListCalculationsResponse struct {
	Calculations []CalculationSummary `json:"calculations"`
}

type RenameCalculationRequest struct {
	CalculationID string `json:"calculationId"`
	Title         string `json:"title"`
}

type RenameCalculationResponse struct{}

type DeleteCalculationRequest struct {
	CalculationID string `json:"calculationId"`
}

type DeleteCalculationResponse struct{}

type AddPersonRequest struct {
	CalculationID string `json:"calculationId"`
	Name          string `json:"name"`
}

type AddPersonResponse struct {
	Person Person `json:"person"`
}

type RenamePersonRequest struct {
	CalculationID string `json:"calculationId"`
	PersonID      string `json:"personId"`
	Name          string `json:"name"`
}

type RenamePersonResponse struct{}

type DeletePersonRequest struct {
	CalculationID string `json:"calculationId"`
	PersonID      string `json:"personId"`
}

type DeletePersonResponse struct{}

type AddCurrencyRequest struct {
	CalculationID string `json:"calculationId"`
	Code          string `json:"code"`
	// RateThis and RateMain are optional; both empty means 1:1.
	RateThis string `json:"rateThis,omitempty"`
	RateMain string `json:"rateMain,omitempty"`
}

type AddCurrencyResponse struct {
	Currency Currency `json:"currency"`
}

type SetExchangeRateRequest struct {
	CalculationID string `json:"calculationId"`
	CurrencyCode  string `json:"currencyCode"`
	RateThis      string `json:"rateThis"`
	RateMain      string `json:"rateMain"`
}

type SetExchangeRateResponse struct {
	Currency Currency `json:"currency"`
}

type DeleteCurrencyRequest struct {
	CalculationID string `json:"calculationId"`
	CurrencyCode  string `json:"currencyCode"`
}

type DeleteCurrencyResponse struct{}

type CreateExpenseRequest struct {
	CalculationID string       `json:"calculationId"`
	Expense       ExpenseInput `json:"expense"`
}

type CreateExpenseResponse struct {
	Expense Expense `json:"expense"`
}

type UpdateExpenseRequest struct {
	CalculationID string       `json:"calculationId"`
	ExpenseID     string       `json:"expenseId"`
	Expense       ExpenseInput `json:"expense"`
}

type UpdateExpenseResponse struct {
	Expense Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	CalculationID string `json:"calculationId"`
	ExpenseID     string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}

type GetSummaryRequest struct {
	CalculationID string `json:"calculationId"`
}

// GetSummaryResponse is the settlement of a calculation in its main
// currency. FirstDate and LastDate are empty without expenses.
type GetSummaryResponse struct {
	Title          string          `json:"title"`
	MainCurrency   string          `json:"mainCurrency"`
	Total          float64         `json:"total"`
	FormattedTotal string          `json:"formattedTotal"`
	FirstDate      string          `json:"firstDate,omitempty"`
	LastDate       string          `json:"lastDate,omitempty"`
	DurationDays   int             `json:"durationDays"`
	Balances       []PersonBalance `json:"balances"`
}

type ExportCSVRequest struct {
	CalculationID string `json:"calculationId"`
}

type ExportCSVResponse struct {
	FileName string `json:"fileName"`
	Content  string `json:"content"`
}

type ExportXLSXRequest struct {
	CalculationID string `json:"calculationId"`
}

// ExportXLSXResponse carries the workbook bytes (base64 on the wire).
type ExportXLSXResponse struct {
	FileName string `json:"fileName"`
	Content  []byte `json:"content"`
}
