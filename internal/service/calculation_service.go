package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"connectrpc.com/connect"
	"github.com/patrickmn/go-cache"
	"golang.org/x/text/language"

	"github.com/mmynk/moneybalance/internal/calculator"
	"github.com/mmynk/moneybalance/internal/currency"
	"github.com/mmynk/moneybalance/internal/export"
	"github.com/mmynk/moneybalance/internal/ledger"
	"github.com/mmynk/moneybalance/internal/metrics"
	"github.com/mmynk/moneybalance/internal/models"
	"github.com/mmynk/moneybalance/internal/storage"
	"github.com/mmynk/moneybalance/internal/validation"
)

const (
	snapshotTTL     = 5 * time.Minute
	snapshotCleanup = 10 * time.Minute
)

// CalculationService implements the CalculationService RPCs on top of a
// Store. Loaded snapshots are cached per calculation and dropped on every
// mutation of that calculation.
type CalculationService struct {
	store     storage.Store
	validator *validation.Validator
	tag       language.Tag
	snapshots *cache.Cache

	// generations counts invalidations per calculation. A load only fills
	// the cache if no invalidation happened while it ran.
	mu          sync.Mutex
	generations map[string]uint64
}

// NewCalculationService creates a new CalculationService. Amounts are
// parsed and formatted in the locale of tag.
func NewCalculationService(store storage.Store, validator *validation.Validator, tag language.Tag) *CalculationService {
	return &CalculationService{
		store:       store,
		validator:   validator,
		tag:         tag,
		snapshots:   cache.New(snapshotTTL, snapshotCleanup),
		generations: make(map[string]uint64),
	}
}

var _ CalculationServiceHandler = (*CalculationService)(nil)

// CreateCalculation creates a calculation with its main currency and roster.
func (s *CalculationService) CreateCalculation(ctx context.Context, req *connect.Request[CreateCalculationRequest]) (*connect.Response[CreateCalculationResponse], error) {
	slog.Info("CreateCalculation request received",
		"title", req.Msg.Title,
		"main_currency", req.Msg.MainCurrency,
		"persons_count", len(req.Msg.Persons),
	)

	if err := s.validator.ValidateCalculation(req.Msg.Title, req.Msg.MainCurrency, req.Msg.Persons).Err(); err != nil {
		slog.Warn("CreateCalculation rejected", "error", err)
		return nil, connectError(err)
	}

	calc := &models.Calculation{
		Title:            strings.TrimSpace(req.Msg.Title),
		MainCurrencyCode: req.Msg.MainCurrency,
	}
	for _, name := range req.Msg.Persons {
		calc.Persons = append(calc.Persons, models.Person{Name: strings.TrimSpace(name)})
	}

	if err := s.store.CreateCalculation(ctx, calc); err != nil {
		slog.Error("CreateCalculation failed", "error", err)
		return nil, connectError(err)
	}

	slog.Info("Calculation created", "calculation_id", calc.ID)

	return connect.NewResponse(&CreateCalculationResponse{
		Calculation: s.toWireCalculation(calc),
	}), nil
}

// GetCalculation returns the full snapshot of a calculation.
func (s *CalculationService) GetCalculation(ctx context.Context, req *connect.Request[GetCalculationRequest]) (*connect.Response[GetCalculationResponse], error) {
	slog.Info("GetCalculation request received", "calculation_id", req.Msg.CalculationID)

	calc, err := s.snapshot(ctx, req.Msg.CalculationID)
	if err != nil {
		slog.Error("GetCalculation failed", "calculation_id", req.Msg.CalculationID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&GetCalculationResponse{
		Calculation: s.toWireCalculation(calc),
	}), nil
}

// ListCalculations returns all calculations ordered by title.
func (s *CalculationService) ListCalculations(ctx context.Context, req *connect.Request[ListCalculationsRequest]) (*connect.Response[ListCalculationsResponse], error) {
	slog.Info("ListCalculations request received")

	summaries, err := s.store.ListCalculations(ctx)
	if err != nil {
		slog.Error("ListCalculations failed", "error", err)
		return nil, connectError(err)
	}

	resp := &ListCalculationsResponse{Calculations: make([]CalculationSummary, 0, len(summaries))}
	for _, sum := range summaries {
		resp.Calculations = append(resp.Calculations, CalculationSummary{
			ID:           sum.ID,
			Title:        sum.Title,
			MainCurrency: sum.MainCurrencyCode,
			PersonCount:  sum.PersonCount,
			ExpenseCount: sum.ExpenseCount,
			CreatedAt:    sum.CreatedAt,
		})
	}

	slog.Info("ListCalculations successful", "count", len(resp.Calculations))

	return connect.NewResponse(resp), nil
}

// RenameCalculation changes a calculation's title.
func (s *CalculationService) RenameCalculation(ctx context.Context, req *connect.Request[RenameCalculationRequest]) (*connect.Response[RenameCalculationResponse], error) {
	id := req.Msg.CalculationID
	slog.Info("RenameCalculation request received", "calculation_id", id, "title", req.Msg.Title)

	if err := s.validator.ValidateTitle(req.Msg.Title).Err(); err != nil {
		return nil, connectError(err)
	}

	defer s.invalidate(id)
	if err := s.store.UpdateCalculationTitle(ctx, id, strings.TrimSpace(req.Msg.Title)); err != nil {
		slog.Error("RenameCalculation failed", "calculation_id", id, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&RenameCalculationResponse{}), nil
}

// DeleteCalculation removes a calculation and everything it owns.
func (s *CalculationService) DeleteCalculation(ctx context.Context, req *connect.Request[DeleteCalculationRequest]) (*connect.Response[DeleteCalculationResponse], error) {
	id := req.Msg.CalculationID
	slog.Info("DeleteCalculation request received", "calculation_id", id)

	defer s.invalidate(id)
	if err := s.store.DeleteCalculation(ctx, id); err != nil {
		slog.Error("DeleteCalculation failed", "calculation_id", id, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Calculation deleted", "calculation_id", id)

	return connect.NewResponse(&DeleteCalculationResponse{}), nil
}

// AddPerson appends a person to the roster.
func (s *CalculationService) AddPerson(ctx context.Context, req *connect.Request[AddPersonRequest]) (*connect.Response[AddPersonResponse], error) {
	id := req.Msg.CalculationID
	slog.Info("AddPerson request received", "calculation_id", id, "name", req.Msg.Name)

	calc, err := s.snapshot(ctx, id)
	if err != nil {
		return nil, connectError(err)
	}
	if err := s.validator.ValidatePersonName(calc.Persons, "", req.Msg.Name).Err(); err != nil {
		return nil, connectError(err)
	}

	person := &models.Person{CalculationID: id, Name: strings.TrimSpace(req.Msg.Name)}
	defer s.invalidate(id)
	if err := s.store.AddPerson(ctx, person); err != nil {
		slog.Error("AddPerson failed", "calculation_id", id, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Person added", "calculation_id", id, "person_id", person.ID)

	return connect.NewResponse(&AddPersonResponse{
		Person: Person{ID: person.ID, Name: person.Name},
	}), nil
}

// RenamePerson changes a person's name.
func (s *CalculationService) RenamePerson(ctx context.Context, req *connect.Request[RenamePersonRequest]) (*connect.Response[RenamePersonResponse], error) {
	id := req.Msg.CalculationID
	slog.Info("RenamePerson request received", "calculation_id", id, "person_id", req.Msg.PersonID)

	calc, err := s.snapshot(ctx, id)
	if err != nil {
		return nil, connectError(err)
	}
	if _, err := findPerson(calc, req.Msg.PersonID); err != nil {
		return nil, connectError(err)
	}
	if err := s.validator.ValidatePersonName(calc.Persons, req.Msg.PersonID, req.Msg.Name).Err(); err != nil {
		return nil, connectError(err)
	}

	defer s.invalidate(id)
	if err := s.store.RenamePerson(ctx, req.Msg.PersonID, strings.TrimSpace(req.Msg.Name)); err != nil {
		slog.Error("RenamePerson failed", "person_id", req.Msg.PersonID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&RenamePersonResponse{}), nil
}

// DeletePerson removes a person who pays no expense. The roster never
// shrinks below the configured minimum.
func (s *CalculationService) DeletePerson(ctx context.Context, req *connect.Request[DeletePersonRequest]) (*connect.Response[DeletePersonResponse], error) {
	id := req.Msg.CalculationID
	slog.Info("DeletePerson request received", "calculation_id", id, "person_id", req.Msg.PersonID)

	calc, err := s.snapshot(ctx, id)
	if err != nil {
		return nil, connectError(err)
	}
	if _, err := findPerson(calc, req.Msg.PersonID); err != nil {
		return nil, connectError(err)
	}
	if minPersons := s.validator.Thresholds().MinPersons; len(calc.Persons) <= minPersons {
		err := fmt.Errorf("%w: calculation needs at least %d persons", validation.ErrTooFewPersons, minPersons)
		return nil, connectError(err)
	}

	defer s.invalidate(id)
	if err := s.store.DeletePerson(ctx, req.Msg.PersonID); err != nil {
		slog.Error("DeletePerson failed", "person_id", req.Msg.PersonID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Person deleted", "calculation_id", id, "person_id", req.Msg.PersonID)

	return connect.NewResponse(&DeletePersonResponse{}), nil
}

// AddCurrency adds a currency, optionally with an exchange rate pair.
func (s *CalculationService) AddCurrency(ctx context.Context, req *connect.Request[AddCurrencyRequest]) (*connect.Response[AddCurrencyResponse], error) {
	id := req.Msg.CalculationID
	slog.Info("AddCurrency request received", "calculation_id", id, "code", req.Msg.Code)

	calc, err := s.snapshot(ctx, id)
	if err != nil {
		return nil, connectError(err)
	}
	r := s.validator.ValidateNewCurrency(calc, req.Msg.Code)
	if !r.Valid() {
		return nil, connectError(r.Err())
	}

	c, err := models.NewCurrency(id, req.Msg.Code)
	if err != nil {
		return nil, connectError(err)
	}
	if req.Msg.RateThis != "" || req.Msg.RateMain != "" {
		rateThis, rateMain, r := s.validator.ParseRates(req.Msg.RateThis, req.Msg.RateMain)
		if !r.Valid() {
			return nil, connectError(r.Err())
		}
		if err := c.SetExchangeRate(rateThis, rateMain); err != nil {
			return nil, connectError(err)
		}
	}

	defer s.invalidate(id)
	if err := s.store.AddCurrency(ctx, c); err != nil {
		slog.Error("AddCurrency failed", "calculation_id", id, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Currency added", "calculation_id", id, "code", c.Code)

	return connect.NewResponse(&AddCurrencyResponse{Currency: toWireCurrency(c)}), nil
}

// SetExchangeRate replaces the rate pair of a non-main currency.
func (s *CalculationService) SetExchangeRate(ctx context.Context, req *connect.Request[SetExchangeRateRequest]) (*connect.Response[SetExchangeRateResponse], error) {
	id := req.Msg.CalculationID
	slog.Info("SetExchangeRate request received", "calculation_id", id, "code", req.Msg.CurrencyCode)

	calc, err := s.snapshot(ctx, id)
	if err != nil {
		return nil, connectError(err)
	}
	c, err := findCurrency(calc, req.Msg.CurrencyCode)
	if err != nil {
		return nil, connectError(err)
	}
	rateThis, rateMain, r := s.validator.ParseRates(req.Msg.RateThis, req.Msg.RateMain)
	if !r.Valid() {
		return nil, connectError(r.Err())
	}

	defer s.invalidate(id)
	if err := s.store.UpdateExchangeRate(ctx, c.ID, rateThis, rateMain); err != nil {
		slog.Error("SetExchangeRate failed", "currency_id", c.ID, "error", err)
		return nil, connectError(err)
	}

	updated := *c
	updated.RateThis, updated.RateMain = rateThis, rateMain

	return connect.NewResponse(&SetExchangeRateResponse{Currency: toWireCurrency(&updated)}), nil
}

// DeleteCurrency removes a currency no expense uses.
func (s *CalculationService) DeleteCurrency(ctx context.Context, req *connect.Request[DeleteCurrencyRequest]) (*connect.Response[DeleteCurrencyResponse], error) {
	id := req.Msg.CalculationID
	slog.Info("DeleteCurrency request received", "calculation_id", id, "code", req.Msg.CurrencyCode)

	calc, err := s.snapshot(ctx, id)
	if err != nil {
		return nil, connectError(err)
	}
	c, err := findCurrency(calc, req.Msg.CurrencyCode)
	if err != nil {
		return nil, connectError(err)
	}

	defer s.invalidate(id)
	if err := s.store.DeleteCurrency(ctx, c.ID); err != nil {
		slog.Error("DeleteCurrency failed", "currency_id", c.ID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&DeleteCurrencyResponse{}), nil
}

// CreateExpense validates and stores a new expense.
func (s *CalculationService) CreateExpense(ctx context.Context, req *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error) {
	id := req.Msg.CalculationID
	slog.Info("CreateExpense request received",
		"calculation_id", id,
		"title", req.Msg.Expense.Title,
		"custom_split", req.Msg.Expense.CustomSplit,
	)

	calc, err := s.snapshot(ctx, id)
	if err != nil {
		return nil, connectError(err)
	}
	expense, r := s.validator.ValidateExpense(toValidationInput(req.Msg.Expense), calc)
	if !r.Valid() {
		slog.Warn("CreateExpense rejected", "calculation_id", id, "error", r.Err())
		return nil, connectError(r.Err())
	}

	defer s.invalidate(id)
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "calculation_id", id, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Expense created", "calculation_id", id, "expense_id", expense.ID)

	return connect.NewResponse(&CreateExpenseResponse{
		Expense: s.toWireExpense(calc, expense),
	}), nil
}

// UpdateExpense validates and replaces an existing expense.
func (s *CalculationService) UpdateExpense(ctx context.Context, req *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error) {
	id := req.Msg.CalculationID
	slog.Info("UpdateExpense request received", "calculation_id", id, "expense_id", req.Msg.ExpenseID)

	calc, err := s.snapshot(ctx, id)
	if err != nil {
		return nil, connectError(err)
	}
	if _, err := findExpense(calc, req.Msg.ExpenseID); err != nil {
		return nil, connectError(err)
	}
	expense, r := s.validator.ValidateExpense(toValidationInput(req.Msg.Expense), calc)
	if !r.Valid() {
		slog.Warn("UpdateExpense rejected", "expense_id", req.Msg.ExpenseID, "error", r.Err())
		return nil, connectError(r.Err())
	}
	expense.ID = req.Msg.ExpenseID

	defer s.invalidate(id)
	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", expense.ID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&UpdateExpenseResponse{
		Expense: s.toWireExpense(calc, expense),
	}), nil
}

// DeleteExpense removes an expense.
func (s *CalculationService) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	id := req.Msg.CalculationID
	slog.Info("DeleteExpense request received", "calculation_id", id, "expense_id", req.Msg.ExpenseID)

	calc, err := s.snapshot(ctx, id)
	if err != nil {
		return nil, connectError(err)
	}
	if _, err := findExpense(calc, req.Msg.ExpenseID); err != nil {
		return nil, connectError(err)
	}

	defer s.invalidate(id)
	if err := s.store.DeleteExpense(ctx, req.Msg.ExpenseID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&DeleteExpenseResponse{}), nil
}

// GetSummary settles the calculation and reports per-person balances in
// the main currency.
func (s *CalculationService) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	id := req.Msg.CalculationID
	slog.Info("GetSummary request received", "calculation_id", id)

	l, err := s.ledger(ctx, id)
	if err != nil {
		slog.Error("GetSummary failed", "calculation_id", id, "error", err)
		return nil, connectError(err)
	}

	settlement := calculator.Settle(l)
	metrics.SettlementsTotal.Inc()

	main := l.MainCurrency()
	h := s.helper(main.Code)

	resp := &GetSummaryResponse{
		Title:          l.Title(),
		MainCurrency:   main.Code,
		Total:          settlement.Total,
		FormattedTotal: h.Format(settlement.Total, true),
		DurationDays:   l.Duration(),
		Balances:       make([]PersonBalance, 0, len(settlement.Balances)),
	}
	if first, ok := l.FirstDate(); ok {
		resp.FirstDate = first.Format(models.DateLayout)
	}
	if last, ok := l.LastDate(); ok {
		resp.LastDate = last.Format(models.DateLayout)
	}
	for _, b := range settlement.Balances {
		resp.Balances = append(resp.Balances, PersonBalance{
			PersonID:          b.Person.ID,
			Name:              b.Person.Name,
			TotalPaid:         b.TotalPaid,
			TotalConsumed:     b.TotalConsumed,
			Balance:           b.Balance,
			FormattedPaid:     h.Format(b.TotalPaid, true),
			FormattedConsumed: h.Format(b.TotalConsumed, true),
			FormattedBalance:  h.Format(b.Balance, true),
		})
	}

	slog.Info("GetSummary successful",
		"calculation_id", id,
		"total", settlement.Total,
		"persons_count", len(resp.Balances),
	)

	return connect.NewResponse(resp), nil
}

// ExportCSV renders the calculation as formula-bearing CSV.
func (s *CalculationService) ExportCSV(ctx context.Context, req *connect.Request[ExportCSVRequest]) (*connect.Response[ExportCSVResponse], error) {
	id := req.Msg.CalculationID
	slog.Info("ExportCSV request received", "calculation_id", id)

	l, err := s.ledger(ctx, id)
	if err != nil {
		slog.Error("ExportCSV failed", "calculation_id", id, "error", err)
		return nil, connectError(err)
	}

	content := export.CSV(l)
	metrics.ExportsTotal.WithLabelValues("csv").Inc()

	return connect.NewResponse(&ExportCSVResponse{
		FileName: export.SanitizeFileName(l.Title()) + ".csv",
		Content:  content,
	}), nil
}

// ExportXLSX renders the calculation as an XLSX workbook.
func (s *CalculationService) ExportXLSX(ctx context.Context, req *connect.Request[ExportXLSXRequest]) (*connect.Response[ExportXLSXResponse], error) {
	id := req.Msg.CalculationID
	slog.Info("ExportXLSX request received", "calculation_id", id)

	l, err := s.ledger(ctx, id)
	if err != nil {
		slog.Error("ExportXLSX failed", "calculation_id", id, "error", err)
		return nil, connectError(err)
	}

	content, err := export.XLSX(l)
	if err != nil {
		slog.Error("ExportXLSX failed", "calculation_id", id, "error", err)
		return nil, connectError(err)
	}
	metrics.ExportsTotal.WithLabelValues("xlsx").Inc()

	return connect.NewResponse(&ExportXLSXResponse{
		FileName: export.SanitizeFileName(l.Title()) + ".xlsx",
		Content:  content,
	}), nil
}

func (s *CalculationService) ledger(ctx context.Context, calculationID string) (*ledger.Ledger, error) {
	calc, err := s.snapshot(ctx, calculationID)
	if err != nil {
		return nil, err
	}
	return ledger.New(calc)
}

// snapshot returns the cached calculation or loads it from the store. The
// result is shared and must not be modified.
func (s *CalculationService) snapshot(ctx context.Context, calculationID string) (*models.Calculation, error) {
	if calculationID == "" {
		return nil, fmt.Errorf("calculation id: %w", validation.ErrMissingRequiredField)
	}
	if cached, ok := s.snapshots.Get(calculationID); ok {
		return cached.(*models.Calculation), nil
	}

	s.mu.Lock()
	gen := s.generations[calculationID]
	s.mu.Unlock()

	calc, err := s.store.GetCalculation(ctx, calculationID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[calculationID] == gen {
		s.snapshots.SetDefault(calculationID, calc)
	} else {
		slog.Debug("Discarding snapshot loaded during a mutation", "calculation_id", calculationID)
	}
	return calc, nil
}

func (s *CalculationService) invalidate(calculationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[calculationID]++
	s.snapshots.Delete(calculationID)
}

// helper returns a formatter for code. Codes in a snapshot were checked on
// insert, so an unknown code falls back to plain number formatting.
func (s *CalculationService) helper(code string) *currency.Helper {
	h, err := currency.NewHelper(code, s.tag)
	if err != nil {
		return currency.NewNumberHelper(s.tag)
	}
	return h
}

func (s *CalculationService) toWireCalculation(calc *models.Calculation) Calculation {
	out := Calculation{
		ID:           calc.ID,
		Title:        calc.Title,
		MainCurrency: calc.MainCurrencyCode,
		CreatedAt:    calc.CreatedAt,
		Currencies:   make([]Currency, 0, len(calc.Currencies)),
		Persons:      make([]Person, 0, len(calc.Persons)),
		Expenses:     make([]Expense, 0, len(calc.Expenses)),
	}
	for i := range calc.Currencies {
		out.Currencies = append(out.Currencies, toWireCurrency(&calc.Currencies[i]))
	}
	for _, p := range calc.Persons {
		out.Persons = append(out.Persons, Person{ID: p.ID, Name: p.Name})
	}
	for i := range calc.Expenses {
		out.Expenses = append(out.Expenses, s.toWireExpense(calc, &calc.Expenses[i]))
	}
	return out
}

func (s *CalculationService) toWireExpense(calc *models.Calculation, e *models.Expense) Expense {
	out := Expense{
		ID:           e.ID,
		PayerID:      e.PayerID,
		Title:        e.Title,
		Amount:       e.Amount,
		Date:         models.Day(e.Date).Format(models.DateLayout),
		SplitWeights: e.SplitWeights,
	}
	for _, c := range calc.Currencies {
		if c.ID == e.CurrencyID {
			out.CurrencyCode = c.Code
			out.FormattedAmount = s.helper(c.Code).Format(e.Amount, true)
			break
		}
	}
	return out
}

func toWireCurrency(c *models.Currency) Currency {
	info, _ := currency.Lookup(c.Code)
	return Currency{
		ID:             c.ID,
		Code:           c.Code,
		Symbol:         info.Symbol,
		FractionDigits: c.FractionDigits,
		RateThis:       c.RateThis,
		RateMain:       c.RateMain,
	}
}

func toValidationInput(in ExpenseInput) validation.ExpenseInput {
	out := validation.ExpenseInput{
		Title:        in.Title,
		PayerID:      in.PayerID,
		Amount:       in.Amount,
		CurrencyCode: in.CurrencyCode,
		Date:         in.Date,
		CustomSplit:  in.CustomSplit,
	}
	for _, e := range in.Split {
		out.Split = append(out.Split, validation.SplitEntry{
			PersonID: e.PersonID,
			Enabled:  e.Enabled,
			Weight:   e.Weight,
		})
	}
	return out
}

func findPerson(calc *models.Calculation, personID string) (*models.Person, error) {
	for i := range calc.Persons {
		if calc.Persons[i].ID == personID {
			return &calc.Persons[i], nil
		}
	}
	return nil, fmt.Errorf("person %s: %w", personID, storage.ErrNotFound)
}

func findCurrency(calc *models.Calculation, code string) (*models.Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for i := range calc.Currencies {
		if calc.Currencies[i].Code == code {
			return &calc.Currencies[i], nil
		}
	}
	return nil, fmt.Errorf("currency %s: %w", code, storage.ErrNotFound)
}

func findExpense(calc *models.Calculation, expenseID string) (*models.Expense, error) {
	for i := range calc.Expenses {
		if calc.Expenses[i].ID == expenseID {
			return &calc.Expenses[i], nil
		}
	}
	return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
}

// connectError maps domain and storage errors onto connect codes.
func connectError(err error) *connect.Error {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, validation.ErrTooFewPersons),
		errors.Is(err, storage.ErrPersonInUse),
		errors.Is(err, storage.ErrMainCurrency),
		errors.Is(err, storage.ErrCurrencyInUse):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, validation.ErrMissingRequiredField),
		errors.Is(err, currency.ErrUnknownCode),
		errors.Is(err, models.ErrNonPositiveRate):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
