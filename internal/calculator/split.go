package calculator

import (
	"github.com/mmynk/moneybalance/internal/models"
)

// ComputeShares computes how much of expense each person consumes, in the
// expense currency. The result is aligned positionally with persons.
//
// Without split weights the amount is divided evenly across all persons.
// With weights, person p receives amount * w[p] / sum(w); persons without
// an entry receive 0. A zero total weight or an empty roster yields zero
// shares instead of a division fault.
func ComputeShares(expense *models.Expense, persons []models.Person) []float64 {
	shares := make([]float64, len(persons))
	if len(persons) == 0 {
		return shares
	}

	if !expense.IsUnevenSplit() {
		share := expense.Amount / float64(len(persons))
		for i := range shares {
			shares[i] = share
		}
		return shares
	}

	var totalWeight float64
	for _, w := range expense.SplitWeights {
		totalWeight += w
	}
	if totalWeight == 0 {
		return shares
	}

	for i, p := range persons {
		if w, ok := expense.SplitWeights[p.ID]; ok {
			shares[i] = expense.Amount * w / totalWeight
		}
	}
	return shares
}

// ComputeExchangedShares converts the result of ComputeShares into
// main-currency units using the expense's currency.
func ComputeExchangedShares(expense *models.Expense, currency *models.Currency, persons []models.Person) []float64 {
	shares := ComputeShares(expense, persons)
	for i, s := range shares {
		shares[i] = currency.ExchangeAmount(s)
	}
	return shares
}
