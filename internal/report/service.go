// Package report renders expenses and debts for people: CSV exports and
// plain-text statements.
package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fletes/internal/debt"
	"github.com/MrJamesThe3rd/fletes/internal/expense"
	"github.com/MrJamesThe3rd/fletes/internal/money"
	"github.com/MrJamesThe3rd/fletes/internal/page"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=report

type ExpenseLister interface {
	List(ctx context.Context, filter expense.ListFilter) (page.Result[*expense.Expense], error)
}

type DebtReader interface {
	Get(ctx context.Context, id uuid.UUID) (*debt.Balance, error)
	Payments(ctx context.Context, debtID uuid.UUID) ([]*debt.Payment, error)
	List(ctx context.Context) ([]*debt.Balance, error)
}

type Service struct {
	expenses ExpenseLister
	debts    DebtReader
}

func NewService(expenses ExpenseLister, debts DebtReader) *Service {
	return &Service{expenses: expenses, debts: debts}
}

var expenseHeader = []string{
	"fecha", "categoria", "descripcion", "moneda", "pago_divisa", "pago_bolivares", "tasa_cambio", "tipo_tasa", "flete_id",
}

// ExpensesCSV writes every expense matching filter to w, walking all pages.
// filter.Page is ignored.
func (s *Service) ExpensesCSV(ctx context.Context, filter expense.ListFilter, w io.Writer) (int, error) {
	cw := csv.NewWriter(w)

	if err := cw.Write(expenseHeader); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	filter.Page = page.Request{Page: 1, PerPage: page.MaxPerPage}
	written := 0

	for {
		res, err := s.expenses.List(ctx, filter)
		if err != nil {
			return written, fmt.Errorf("listing expenses: %w", err)
		}

		for _, e := range res.Items {
			if err := cw.Write(expenseRecord(e)); err != nil {
				return written, fmt.Errorf("writing expense %s: %w", e.ID, err)
			}

			written++
		}

		if len(res.Items) == 0 || filter.Page.Page >= res.Pages() {
			break
		}

		filter.Page.Page++
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return written, fmt.Errorf("flushing csv: %w", err)
	}

	return written, nil
}

func expenseRecord(e *expense.Expense) []string {
	rec := []string{
		e.ExpenseDate.Format(time.DateOnly),
		string(e.Category),
		e.Description,
		string(e.Currency),
		cents(e.Divisa),
		cents(e.Bolivares),
		"",
		"",
		"",
	}

	if e.Rate != nil {
		rec[6] = e.Rate.String()
	}

	if e.RateType != nil {
		rec[7] = string(*e.RateType)
	}

	if e.FleteID != nil {
		rec[8] = e.FleteID.String()
	}

	return rec
}

func cents(v *int64) string {
	if v == nil {
		return ""
	}

	return money.FromCents(*v).StringFixed(2)
}

// DebtStatement renders one debt with its payments, oldest first, and the
// resulting balance.
func (s *Service) DebtStatement(ctx context.Context, debtID uuid.UUID) (string, error) {
	b, err := s.debts.Get(ctx, debtID)
	if err != nil {
		return "", err
	}

	payments, err := s.debts.Payments(ctx, debtID)
	if err != nil {
		return "", err
	}

	d := b.Debt

	var sb strings.Builder

	fmt.Fprintf(&sb, "Deuda con %s\n", d.PersonaName)

	if d.Description != "" {
		fmt.Fprintf(&sb, "Concepto: %s\n", d.Description)
	}

	fmt.Fprintf(&sb, "Total: %s\n", money.Format(d.TotalDivisa, d.Currency))

	if d.DueDate != nil {
		fmt.Fprintf(&sb, "Vence: %s\n", d.DueDate.Format(time.DateOnly))
	}

	sb.WriteString("\nPagos:\n")

	if len(payments) == 0 {
		sb.WriteString("  (sin pagos)\n")
	}

	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	for i := len(payments) - 1; i >= 0; i-- {
		p := payments[i]

		contribution, err := debt.Contribution(p)
		if err != nil {
			return "", err
		}

		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n",
			p.PaymentDate.Format(time.DateOnly), paidWith(p), money.Format(contribution, d.Currency), p.Description)
	}

	if err := tw.Flush(); err != nil {
		return "", fmt.Errorf("rendering payments: %w", err)
	}

	fmt.Fprintf(&sb, "\nPagado: %s\n", money.Format(b.Paid, d.Currency))
	fmt.Fprintf(&sb, "Restante: %s\n", money.Format(b.Remaining, d.Currency))

	if b.Overpaid > 0 {
		fmt.Fprintf(&sb, "Excedente: %s\n", money.Format(b.Overpaid, d.Currency))
	}

	fmt.Fprintf(&sb, "Estado: %s\n", b.Status)

	return sb.String(), nil
}

// paidWith describes what was handed over: bolívares with their rate, or divisa.
func paidWith(p *debt.Payment) string {
	if p.Bolivares == nil {
		if p.Divisa == nil {
			return "-"
		}

		return money.Format(*p.Divisa, money.USD)
	}

	out := money.Format(*p.Bolivares, money.VES)

	if p.Rate != nil {
		out += " @ " + p.Rate.StringFixed(2)
	}

	if p.RateType != nil {
		out += " (" + string(*p.RateType) + ")"
	}

	return out
}

// Summary renders the totals over every debt, one line per status plus the aggregate.
func (s *Service) Summary(ctx context.Context) (string, error) {
	balances, err := s.debts.List(ctx)
	if err != nil {
		return "", err
	}

	sum := debt.Summarize(balances)

	counts := make(map[debt.Status]int)
	for _, b := range balances {
		counts[b.Status]++
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "Deudas: %d (%s %d, %s %d, %s %d)\n", len(balances),
		debt.StatusPending, counts[debt.StatusPending],
		debt.StatusPartial, counts[debt.StatusPartial],
		debt.StatusPaid, counts[debt.StatusPaid])
	fmt.Fprintf(&sb, "Total: %s\n", money.Format(sum.TotalDebt, money.USD))
	fmt.Fprintf(&sb, "Pagado: %s (%d%%)\n", money.Format(sum.TotalPaid, money.USD), sum.PercentPaid)
	fmt.Fprintf(&sb, "Restante: %s\n", money.Format(sum.TotalRemaining, money.USD))

	return sb.String(), nil
}
