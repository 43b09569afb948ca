package debt

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fletes/internal/money"
)

// Balance is the derived view of a debt after applying its payments.
type Balance struct {
	Debt      *Debt
	Paid      int64
	Remaining int64
	// Overpaid is what was paid beyond the total. Remaining stays at zero in that case.
	Overpaid int64
	Status   Status
}

// Summary aggregates balances across debts.
type Summary struct {
	TotalDebt      int64
	TotalRemaining int64
	TotalPaid      int64
	PercentPaid    int64
}

// Contribution is the amount p pays off in the debt's origin currency.
// Bolívares are converted at the payment's own rate, rounded per payment.
func Contribution(p *Payment) (int64, error) {
	switch {
	case p.Divisa != nil:
		return *p.Divisa, nil
	case p.Bolivares != nil:
		if p.Rate == nil {
			return 0, fmt.Errorf("payment %s: %w", p.ID, &money.InvalidRateError{Rate: decimal.Zero})
		}

		amount, err := money.ToOrigin(*p.Bolivares, *p.Rate)
		if err != nil {
			return 0, fmt.Errorf("payment %s: %w", p.ID, err)
		}

		return amount, nil
	}

	return 0, nil
}

// TotalPaid sums the contributions of the payments that belong to d.
// Payments of other debts are ignored.
func TotalPaid(d *Debt, payments []*Payment) (int64, error) {
	var total int64

	for _, p := range payments {
		if p.DebtID != d.ID {
			continue
		}

		c, err := Contribution(p)
		if err != nil {
			return 0, err
		}

		total += c
	}

	return total, nil
}

// RemainingBalance is what is still owed on d, floored at zero.
func RemainingBalance(d *Debt, payments []*Payment) (int64, error) {
	paid, err := TotalPaid(d, payments)
	if err != nil {
		return 0, err
	}

	return max(0, d.TotalDivisa-paid), nil
}

// Overpaid is the credit paid beyond the total of d. RemainingBalance hides it.
func Overpaid(d *Debt, payments []*Payment) (int64, error) {
	paid, err := TotalPaid(d, payments)
	if err != nil {
		return 0, err
	}

	return max(0, paid-d.TotalDivisa), nil
}

// StatusOf classifies a remaining balance against the debt total.
func StatusOf(total, remaining int64) Status {
	switch {
	case remaining <= 0:
		return StatusPaid
	case remaining < total:
		return StatusPartial
	default:
		return StatusPending
	}
}

// Reconcile computes the balance of d from the full payment list.
func Reconcile(d *Debt, payments []*Payment) (*Balance, error) {
	paid, err := TotalPaid(d, payments)
	if err != nil {
		return nil, err
	}

	remaining := max(0, d.TotalDivisa-paid)

	return &Balance{
		Debt:      d,
		Paid:      paid,
		Remaining: remaining,
		Overpaid:  max(0, paid-d.TotalDivisa),
		Status:    StatusOf(d.TotalDivisa, remaining),
	}, nil
}

// Summarize totals the balances. TotalPaid is total minus remaining, so
// overpayments do not inflate it.
func Summarize(balances []*Balance) Summary {
	var s Summary

	for _, b := range balances {
		s.TotalDebt += b.Debt.TotalDivisa
		s.TotalRemaining += b.Remaining
	}

	s.TotalPaid = s.TotalDebt - s.TotalRemaining

	if s.TotalDebt > 0 {
		s.PercentPaid = (s.TotalPaid*100 + s.TotalDebt/2) / s.TotalDebt
	}

	return s
}
