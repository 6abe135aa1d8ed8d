package service

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// CalculationServiceHandler is implemented by CalculationService.
type CalculationServiceHandler interface {
	CreateCalculation(context.Context, *connect.Request[CreateCalculationRequest]) (*connect.Response[CreateCalculationResponse], error)
	GetCalculation(context.Context, *connect.Request[GetCalculationRequest]) (*connect.Response[GetCalculationResponse], error)
	ListCalculations(context.Context, *connect.Request[ListCalculationsRequest]) (*connect.Response[ListCalculationsResponse], error)
	RenameCalculation(context.Context, *connect.Request[RenameCalculationRequest]) (*connect.Response[RenameCalculationResponse], error)
	DeleteCalculation(context.Context, *connect.Request[DeleteCalculationRequest]) (*connect.Response[DeleteCalculationResponse], error)
	AddPerson(context.Context, *connect.Request[AddPersonRequest]) (*connect.Response[AddPersonResponse], error)
	RenamePerson(context.Context, *connect.Request[RenamePersonRequest]) (*connect.Response[RenamePersonResponse], error)
	DeletePerson(context.Context, *connect.Request[DeletePersonRequest]) (*connect.Response[DeletePersonResponse], error)
	AddCurrency(context.Context, *connect.Request[AddCurrencyRequest]) (*connect.Response[AddCurrencyResponse], error)
	SetExchangeRate(context.Context, *connect.Request[SetExchangeRateRequest]) (*connect.Response[SetExchangeRateResponse], error)
	DeleteCurrency(context.Context, *connect.Request[DeleteCurrencyRequest]) (*connect.Response[DeleteCurrencyResponse], error)
	CreateExpense(context.Context, *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error)
	UpdateExpense(context.Context, *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
	GetSummary(context.Context, *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error)
	ExportCSV(context.Context, *connect.Request[ExportCSVRequest]) (*connect.Response[ExportCSVResponse], error)
	ExportXLSX(context.Context, *connect.Request[ExportXLSXRequest]) (*connect.Response[ExportXLSXResponse], error)
}

// NewCalculationServiceHandler builds an HTTP handler for every procedure of
// svc. It returns the path prefix to mount the handler on.
func NewCalculationServiceHandler(svc CalculationServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(CreateCalculationProcedure, connect.NewUnaryHandler(CreateCalculationProcedure, svc.CreateCalculation, opts...))
	mux.Handle(GetCalculationProcedure, connect.NewUnaryHandler(GetCalculationProcedure, svc.GetCalculation, opts...))
	mux.Handle(ListCalculationsProcedure, connect.NewUnaryHandler(ListCalculationsProcedure, svc.ListCalculations, opts...))
	mux.Handle(RenameCalculationProcedure, connect.NewUnaryHandler(RenameCalculationProcedure, svc.RenameCalculation, opts...))
	mux.Handle(DeleteCalculationProcedure, connect.NewUnaryHandler(DeleteCalculationProcedure, svc.DeleteCalculation, opts...))
	mux.Handle(AddPersonProcedure, connect.NewUnaryHandler(AddPersonProcedure, svc.AddPerson, opts...))
	mux.Handle(RenamePersonProcedure, connect.NewUnaryHandler(RenamePersonProcedure, svc.RenamePerson, opts...))
	mux.Handle(DeletePersonProcedure, connect.NewUnaryHandler(DeletePersonProcedure, svc.DeletePerson, opts...))
	mux.Handle(AddCurrencyProcedure, connect.NewUnaryHandler(AddCurrencyProcedure, svc.AddCurrency, opts...))
	mux.Handle(SetExchangeRateProcedure, connect.NewUnaryHandler(SetExchangeRateProcedure, svc.SetExchangeRate, opts...))
	mux.Handle(DeleteCurrencyProcedure, connect.NewUnaryHandler(DeleteCurrencyProcedure, svc.DeleteCurrency, opts...))
	mux.Handle(CreateExpenseProcedure, connect.NewUnaryHandler(CreateExpenseProcedure, svc.CreateExpense, opts...))
	mux.Handle(UpdateExpenseProcedure, connect.NewUnaryHandler(UpdateExpenseProcedure, svc.UpdateExpense, opts...))
	mux.Handle(DeleteExpenseProcedure, connect.NewUnaryHandler(DeleteExpenseProcedure, svc.DeleteExpense, opts...))
	mux.Handle(GetSummaryProcedure, connect.NewUnaryHandler(GetSummaryProcedure, svc.GetSummary, opts...))
	mux.Handle(ExportCSVProcedure, connect.NewUnaryHandler(ExportCSVProcedure, svc.ExportCSV, opts...))
	mux.Handle(ExportXLSXProcedure, connect.NewUnaryHandler(ExportXLSXProcedure, svc.ExportXLSX, opts...))

	return "/" + CalculationServiceName + "/", mux
}

// CalculationServiceClient calls CalculationService over HTTP.
type CalculationServiceClient struct {
	createCalculation *connect.Client[CreateCalculationRequest, CreateCalculationResponse]
	getCalculation    *connect.Client[GetCalculationRequest, GetCalculationResponse]
	listCalculations  *connect.Client[ListCalculationsRequest, ListCalculationsResponse]
	renameCalculation *connect.Client[RenameCalculationRequest, RenameCalculationResponse]
	deleteCalculation *connect.Client[DeleteCalculationRequest, DeleteCalculationResponse]
	addPerson         *connect.Client[AddPersonRequest, AddPersonResponse]
	renamePerson      *connect.Client[RenamePersonRequest, RenamePersonResponse]
	deletePerson      *connect.Client[DeletePersonRequest, DeletePersonResponse]
	addCurrency       *connect.Client[AddCurrencyRequest, AddCurrencyResponse]
	setExchangeRate   *connect.Client[SetExchangeRateRequest, SetExchangeRateResponse]
	deleteCurrency    *connect.Client[DeleteCurrencyRequest, DeleteCurrencyResponse]
	createExpense     *connect.Client[CreateExpenseRequest, CreateExpenseResponse]
	updateExpense     *connect.Client[UpdateExpenseRequest, UpdateExpenseResponse]
	deleteExpense     *connect.Client[DeleteExpenseRequest, DeleteExpenseResponse]
	getSummary        *connect.Client[GetSummaryRequest, GetSummaryResponse]
	exportCSV         *connect.Client[ExportCSVRequest, ExportCSVResponse]
	exportXLSX        *connect.Client[ExportXLSXRequest, ExportXLSXResponse]
}

// NewCalculationServiceClient creates a client for the service at baseURL
// (e.g. "http://localhost:8080").
func NewCalculationServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *CalculationServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &CalculationServiceClient{
		createCalculation: connect.NewClient[CreateCalculationRequest, CreateCalculationResponse](httpClient, baseURL+CreateCalculationProcedure, opts...),
		getCalculation:    connect.NewClient[GetCalculationRequest, GetCalculationResponse](httpClient, baseURL+GetCalculationProcedure, opts...),
		listCalculations:  connect.NewClient[ListCalculationsRequest, ListCalculationsResponse](httpClient, baseURL+ListCalculationsProcedure, opts...),
		renameCalculation: connect.NewClient[RenameCalculationRequest, RenameCalculationResponse](httpClient, baseURL+RenameCalculationProcedure, opts...),
		deleteCalculation: connect.NewClient[DeleteCalculationRequest, DeleteCalculationResponse](httpClient, baseURL+DeleteCalculationProcedure, opts...),
		addPerson:         connect.NewClient[AddPersonRequest, AddPersonResponse](httpClient, baseURL+AddPersonProcedure, opts...),
		renamePerson:      connect.NewClient[RenamePersonRequest, RenamePersonResponse](httpClient, baseURL+RenamePersonProcedure, opts...),
		deletePerson:      connect.NewClient[DeletePersonRequest, DeletePersonResponse](httpClient, baseURL+DeletePersonProcedure, opts...),
		addCurrency:       connect.NewClient[AddCurrencyRequest, AddCurrencyResponse](httpClient, baseURL+AddCurrencyProcedure, opts...),
		setExchangeRate:   connect.NewClient[SetExchangeRateRequest, SetExchangeRateResponse](httpClient, baseURL+SetExchangeRateProcedure, opts...),
		deleteCurrency:    connect.NewClient[DeleteCurrencyRequest, DeleteCurrencyResponse](httpClient, baseURL+DeleteCurrencyProcedure, opts...),
		createExpense:     connect.NewClient[CreateExpenseRequest, CreateExpenseResponse](httpClient, baseURL+CreateExpenseProcedure, opts...),
		updateExpense:     connect.NewClient[UpdateExpenseRequest, UpdateExpenseResponse](httpClient, baseURL+UpdateExpenseProcedure, opts...),
		deleteExpense:     connect.NewClient[DeleteExpenseRequest, DeleteExpenseResponse](httpClient, baseURL+DeleteExpenseProcedure, opts...),
		getSummary:        connect.NewClient[GetSummaryRequest, GetSummaryResponse](httpClient, baseURL+GetSummaryProcedure, opts...),
		exportCSV:         connect.NewClient[ExportCSVRequest, ExportCSVResponse](httpClient, baseURL+ExportCSVProcedure, opts...),
		exportXLSX:        connect.NewClient[ExportXLSXRequest, ExportXLSXResponse](httpClient, baseURL+ExportXLSXProcedure, opts...),
	}
}

func (c *CalculationServiceClient) CreateCalculation(ctx context.Context, req *connect.Request[CreateCalculationRequest]) (*connect.Response[CreateCalculationResponse], error) {
	return c.createCalculation.CallUnary(ctx, req)
}

func (c *CalculationServiceClient) GetCalculation(ctx context.Context, req *connect.Request[GetCalculationRequest]) (*connect.Response[GetCalculationResponse], error) {
	return c.getCalculation.CallUnary(ctx, req)
}

func (c *CalculationServiceClient) ListCalculations(ctx context.Context, req *connect.Request[ListCalculationsRequest]) (*connect.Response[ListCalculationsResponse], error) {
	return c.listCalculations.CallUnary(ctx, req)
}

func (c *CalculationServiceClient) RenameCalculation(ctx context.Context, req *connect.Request[RenameCalculationRequest]) (*connect.Response[RenameCalculationResponse], error) {
	return c.renameCalculation.CallUnary(ctx, req)
}

func (c *CalculationServiceClient) DeleteCalculation(ctx context.Context, req *connect.Request[DeleteCalculationRequest]) (*connect.Response[DeleteCalculationResponse], error) {
	return c.deleteCalculation.CallUnary(ctx, req)
}

func (c *CalculationServiceClient) AddPerson(ctx context.Context, req *connect.Request[AddPersonRequest]) (*connect.Response[AddPersonResponse], error) {
	return c.addPerson.CallUnary(ctx, req)
}

func (c *CalculationServiceClient) RenamePerson(ctx context.Context, req *connect.Request[RenamePersonRequest]) (*connect.Response[RenamePersonResponse], error) {
	return c.renamePerson.CallUnary(ctx, req)
}

func (c *CalculationServiceClient) DeletePerson(ctx context.Context, req *connect.Request[DeletePersonRequest]) (*connect.Response[DeletePersonResponse], error) {
	return c.deletePerson.CallUnary(ctx, req)
}

func (c *CalculationServiceClient) AddCurrency(ctx context.Context, req *connect.Request[AddCurrencyRequest]) (*connect.Response[AddCurrencyResponse], error) {
	return c.addCurrency.CallUnary(ctx, req)
}

func (c *CalculationServiceClient) SetExchangeRate(ctx context.Context, req *connect.Request[SetExchangeRateRequest]) (*connect.Response[SetExchangeRateResponse], error) {
	return c.setExchangeRate.CallUnary(ctx, req)
}

func (c *CalculationServiceClient) DeleteCurrency(ctx context.Context, req *connect.Request[DeleteCurrencyRequest]) (*connect.Response[DeleteCurrencyResponse], error) {
	return c.deleteCurrency.CallUnary(ctx, req)
}

func (c *CalculationServiceClient) CreateExpense(ctx context.Context, req *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *CalculationServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

func (c *CalculationServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *CalculationServiceClient) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

func (c *CalculationServiceClient) ExportCSV(ctx context.Context, req *connect.Request[ExportCSVRequest]) (*connect.Response[ExportCSVResponse], error) {
	return c.exportCSV.CallUnary(ctx, req)
}

func (c *CalculationServiceClient) ExportXLSX(ctx context.Context, req *connect.Request[ExportXLSXRequest]) (*connect.Response[ExportXLSXResponse], error) {
	return c.exportXLSX.CallUnary(ctx, req)
}
