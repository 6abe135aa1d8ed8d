package calculator

import (
	"github.com/mmynk/moneybalance/internal/ledger"
	"github.com/mmynk/moneybalance/internal/models"
)

// PersonBalance represents the settlement information for one person.
// All amounts are in main-currency units.
type PersonBalance struct {
	Person        models.Person
	TotalPaid     float64 // Sum of expenses this person paid
	TotalConsumed float64 // Sum of this person's shares
	Balance       float64 // Positive = owed money, Negative = owes money
}

// Settlement is the outcome of a calculation.
type Settlement struct {
	// Balances are in roster order.
	Balances []PersonBalance

	// Total is the sum of all expenses in main-currency units.
	Total float64
}

// Settle aggregates, per person, the amount paid and the amount consumed
// across all expenses of the ledger.
//
// Algorithm:
// - For each expense: payer contributed +exchanged amount, each person
//   consumes their exchanged share
// - Aggregate: balance = total_paid - total_consumed
//
// No transfer graph is derived; only net balances are reported.
func Settle(l *ledger.Ledger) Settlement {
	persons := l.Persons()
	balances := make([]PersonBalance, len(persons))
	index := make(map[string]int, len(persons))
	for i, p := range persons {
		balances[i].Person = p
		index[p.ID] = i
	}

	var total float64
	expenses := l.Expenses()
	for i := range expenses {
		expense := &expenses[i]
		currency := l.ExpenseCurrency(expense)
		exchanged := currency.ExchangeAmount(expense.Amount)
		total += exchanged

		if payer, ok := index[expense.PayerID]; ok {
			balances[payer].TotalPaid += exchanged
		}

		for j, share := range ComputeExchangedShares(expense, currency, persons) {
			balances[j].TotalConsumed += share
		}
	}

	for i := range balances {
		balances[i].Balance = balances[i].TotalPaid - balances[i].TotalConsumed
	}

	return Settlement{Balances: balances, Total: total}
}
