// Package validation checks user-entered calculation data before it reaches
// the store. Failures are reported per field and never abort processing.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/mmynk/moneybalance/internal/currency"
	"github.com/mmynk/moneybalance/internal/models"
)

var (
	ErrInvalidNumber            = currency.ErrInvalidNumber
	ErrMissingRequiredField     = errors.New("required field is empty")
	ErrDuplicatePersonName      = errors.New("duplicate person name")
	ErrNoEnabledSplitPersons    = errors.New("no person enabled for custom split")
	ErrUnknownCurrencyReference = errors.New("unknown currency reference")
	ErrUnknownPersonReference   = errors.New("unknown person reference")
	ErrTooFewPersons            = errors.New("too few persons")
	ErrDuplicateCurrency        = errors.New("currency already added")
	ErrInvalidDate              = errors.New("invalid date")
)

// Field names used in results.
const (
	FieldTitle        = "title"
	FieldPersons      = "persons"
	FieldName         = "name"
	FieldPayer        = "payer"
	FieldAmount       = "amount"
	FieldCurrency     = "currency"
	FieldDate         = "date"
	FieldSplit        = "split"
	FieldRateThis     = "rate_this"
	FieldRateMain     = "rate_main"
	FieldMainCurrency = "main_currency"
)

// PersonField names the result field of the i-th person of a roster.
func PersonField(i int) string { return fmt.Sprintf("%s[%d]", FieldPersons, i) }

// SplitField names the result field of one person's split weight.
func SplitField(personID string) string { return FieldSplit + "." + personID }

// Thresholds are the editor limits applied to user input.
type Thresholds struct {
	// WeightEpsilon is the smallest accepted split weight.
	WeightEpsilon float64
	// RateEpsilon is the exclusive lower bound of both exchange rate values.
	RateEpsilon float64
	// MinPersons is the smallest accepted roster size.
	MinPersons int
}

// DefaultThresholds returns the stock editor limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		WeightEpsilon: 0.01,
		RateEpsilon:   0.001,
		MinPersons:    2,
	}
}

// Validator validates and parses editor input. Numbers are parsed in the
// configured locale.
type Validator struct {
	th  Thresholds
	tag language.Tag
}

// New creates a Validator.
func New(th Thresholds, tag language.Tag) *Validator {
	return &Validator{th: th, tag: tag}
}

// Thresholds returns the configured limits.
func (v *Validator) Thresholds() Thresholds {
	return v.th
}

// ValidateCalculation checks a new calculation's title and initial roster.
func (v *Validator) ValidateCalculation(title, mainCurrency string, names []string) Result {
	var r Result
	if strings.TrimSpace(title) == "" {
		r.Add(FieldTitle, ErrMissingRequiredField)
	}
	if !currency.IsKnown(mainCurrency) {
		r.Add(FieldMainCurrency, fmt.Errorf("%w: %q", ErrUnknownCurrencyReference, mainCurrency))
	}
	if len(names) < v.th.MinPersons {
		r.Add(FieldPersons, fmt.Errorf("%w: %d, need at least %d", ErrTooFewPersons, len(names), v.th.MinPersons))
	}

	seen := make(map[string]bool, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		switch {
		case name == "":
			r.Add(PersonField(i), ErrMissingRequiredField)
		case seen[name]:
			r.Add(PersonField(i), fmt.Errorf("%w: %q", ErrDuplicatePersonName, name))
		}
		seen[name] = true
	}
	return r
}

// ValidateTitle checks a calculation title on rename.
func (v *Validator) ValidateTitle(title string) Result {
	var r Result
	if strings.TrimSpace(title) == "" {
		r.Add(FieldTitle, ErrMissingRequiredField)
	}
	return r
}

// ValidatePersonName checks a name added to (or renamed within) a roster.
// The person with excludeID is ignored so renaming to the same name passes.
func (v *Validator) ValidatePersonName(existing []models.Person, excludeID, name string) Result {
	var r Result
	name = strings.TrimSpace(name)
	if name == "" {
		r.Add(FieldName, ErrMissingRequiredField)
		return r
	}
	for _, p := range existing {
		if p.ID != excludeID && strings.TrimSpace(p.Name) == name {
			r.Add(FieldName, fmt.Errorf("%w: %q", ErrDuplicatePersonName, name))
			break
		}
	}
	return r
}

// ValidateNewCurrency checks a currency code about to be added to calc.
func (v *Validator) ValidateNewCurrency(calc *models.Calculation, code string) Result {
	var r Result
	info, err := currency.Lookup(code)
	if err != nil {
		r.Add(FieldCurrency, fmt.Errorf("%w: %q", ErrUnknownCurrencyReference, code))
		return r
	}
	for _, c := range calc.Currencies {
		if c.Code == info.Code {
			r.Add(FieldCurrency, fmt.Errorf("%w: %s", ErrDuplicateCurrency, info.Code))
			break
		}
	}
	return r
}

// ValidateCurrencyRates checks an exchange rate pair. Both values must
// exceed the rate epsilon.
func (v *Validator) ValidateCurrencyRates(rateThis, rateMain float64) Result {
	var r Result
	if !(rateThis > v.th.RateEpsilon) {
		r.Add(FieldRateThis, fmt.Errorf("%w: rate must exceed %v", ErrInvalidNumber, v.th.RateEpsilon))
	}
	if !(rateMain > v.th.RateEpsilon) {
		r.Add(FieldRateMain, fmt.Errorf("%w: rate must exceed %v", ErrInvalidNumber, v.th.RateEpsilon))
	}
	return r
}

// ParseRates parses and validates a locale-formatted exchange rate pair.
func (v *Validator) ParseRates(rateThis, rateMain string) (float64, float64, Result) {
	var r Result
	this, errThis := v.parseNumber(rateThis)
	if errThis != nil {
		r.Add(FieldRateThis, errThis)
	}
	main, errMain := v.parseNumber(rateMain)
	if errMain != nil {
		r.Add(FieldRateMain, errMain)
	}
	if r.Valid() {
		r.Merge(v.ValidateCurrencyRates(this, main))
	}
	return this, main, r
}

// SplitEntry is one person's row of the custom split editor.
type SplitEntry struct {
	PersonID string
	Enabled  bool
	Weight   string
}

// ValidateSplit parses the weights of the enabled entries. At least one
// entry must be enabled and every enabled weight must be a number not
// below the weight epsilon.
func (v *Validator) ValidateSplit(entries []SplitEntry) (map[string]float64, Result) {
	var r Result
	weights := make(map[string]float64, len(entries))
	for _, e := range entries {
		if !e.Enabled {
			continue
		}
		w, err := v.parseNumber(e.Weight)
		if err != nil {
			r.Add(SplitField(e.PersonID), err)
			continue
		}
		if w < v.th.WeightEpsilon {
			r.Add(SplitField(e.PersonID), fmt.Errorf("%w: weight must be at least %v", ErrInvalidNumber, v.th.WeightEpsilon))
			continue
		}
		weights[e.PersonID] = w
	}
	if len(weights) == 0 && r.Valid() {
		r.Add(FieldSplit, ErrNoEnabledSplitPersons)
	}
	return weights, r
}

// ExpenseInput is an expense as entered in the editor.
type ExpenseInput struct {
	Title        string
	PayerID      string
	Amount       string
	CurrencyCode string
	Date         string

	// CustomSplit selects weighted splitting with Split; otherwise the
	// expense is split evenly and Split is ignored.
	CustomSplit bool
	Split       []SplitEntry
}

// ValidateExpense validates in against calc and returns the parsed expense.
// The expense is nil unless the result is valid.
func (v *Validator) ValidateExpense(in ExpenseInput, calc *models.Calculation) (*models.Expense, Result) {
	var r Result
	e := &models.Expense{
		CalculationID: calc.ID,
		Title:         strings.TrimSpace(in.Title),
	}
	if e.Title == "" {
		r.Add(FieldTitle, ErrMissingRequiredField)
	}

	persons := make(map[string]bool, len(calc.Persons))
	for _, p := range calc.Persons {
		persons[p.ID] = true
	}
	switch {
	case in.PayerID == "":
		r.Add(FieldPayer, ErrMissingRequiredField)
	case !persons[in.PayerID]:
		r.Add(FieldPayer, fmt.Errorf("%w: %s", ErrUnknownPersonReference, in.PayerID))
	default:
		e.PayerID = in.PayerID
	}

	code := strings.ToUpper(strings.TrimSpace(in.CurrencyCode))
	if code == "" {
		code = calc.MainCurrencyCode
	}
	var cur *models.Currency
	for i := range calc.Currencies {
		if calc.Currencies[i].Code == code {
			cur = &calc.Currencies[i]
			break
		}
	}
	if cur == nil {
		r.Add(FieldCurrency, fmt.Errorf("%w: %s", ErrUnknownCurrencyReference, code))
	} else {
		e.CurrencyID = cur.ID
		amount, err := v.parseAmount(cur.Code, in.Amount)
		switch {
		case err != nil:
			r.Add(FieldAmount, err)
		case amount < 0:
			r.Add(FieldAmount, fmt.Errorf("%w: amount must not be negative", ErrInvalidNumber))
		default:
			e.Amount = amount
		}
	}

	if strings.TrimSpace(in.Date) == "" {
		r.Add(FieldDate, ErrMissingRequiredField)
	} else if d, err := models.ParseDay(strings.TrimSpace(in.Date)); err != nil {
		r.Add(FieldDate, fmt.Errorf("%w: %q", ErrInvalidDate, in.Date))
	} else {
		e.Date = d
	}

	if in.CustomSplit {
		for _, s := range in.Split {
			if s.Enabled && !persons[s.PersonID] {
				r.Add(SplitField(s.PersonID), fmt.Errorf("%w: %s", ErrUnknownPersonReference, s.PersonID))
			}
		}
		weights, sr := v.ValidateSplit(in.Split)
		r.Merge(sr)
		e.SplitWeights = weights
	}

	if !r.Valid() {
		return nil, r
	}
	return e, r
}

func (v *Validator) parseNumber(s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, ErrMissingRequiredField
	}
	n, err := currency.NewNumberHelper(v.tag).ParseNumber(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return n, nil
}

// parseAmount parses s in the locale and rounds it to the currency's
// fraction digits.
func (v *Validator) parseAmount(code, s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, ErrMissingRequiredField
	}
	h, err := currency.NewHelper(code, v.tag)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCurrencyReference, code)
	}
	cents, err := h.ParseAsCents(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return currency.FromCents(cents, h.Info().FractionDigits), nil
}
