package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/txaudit/internal/model"
)

var _ model.Visitor = (*Visitor)(nil)

// Visitor writes one line per transaction and keeps a running count and total.
type Visitor struct {
	w     io.Writer
	count int
	total decimal.Decimal
	err   error
}

// New returns a report Visitor writing to w.
func New(w io.Writer) *Visitor {
	return &Visitor{w: w, total: decimal.Zero}
}

// Header returns the section banner printed before the pass.
func (v *Visitor) Header() string { return "=== REPORTS ===" }

// Count returns the number of transactions visited.
func (v *Visitor) Count() int { return v.count }

// Total returns the sum of visited amounts.
func (v *Visitor) Total() decimal.Decimal { return v.total }

// Err returns the first write error, if any.
func (v *Visitor) Err() error { return v.err }

func (v *Visitor) VisitDeposit(d model.Deposit) {
	v.add(d.Amount())
	v.printf("Report: Deposit of $%s to account %s\n", money(d.Amount()), d.AccountNumber())
}

func (v *Visitor) VisitWithdrawal(w model.Withdrawal) {
	v.add(w.Amount())
	v.printf("Report: Withdrawal of $%s from account %s\n", money(w.Amount()), w.AccountNumber())
}

func (v *Visitor) VisitCommission(c model.Commission) {
	v.add(c.Amount())
	v.printf("Report: Commission of $%s with %s%% interest on account %s\n",
		money(c.Amount()), c.InterestRate().String(), c.AccountNumber())
}

func (v *Visitor) VisitTransfer(t model.Transfer) {
	v.add(t.Amount())
	v.printf("Report: Transfer of $%s from %s to %s\n", money(t.Amount()), t.FromAccount(), t.ToAccount())
}

// WriteSummary prints the transaction count and total amount. It returns the
// first error seen on the writer during the pass or the summary.
func (v *Visitor) WriteSummary() error {
	v.printf("\n=== SUMMARY ===\n")
	v.printf("Total Transactions: %d\n", v.count)
	v.printf("Total Amount: $%s\n", money(v.total))
	return v.err
}

func (v *Visitor) add(amount decimal.Decimal) {
	v.count++
	v.total = v.total.Add(amount)
}

func (v *Visitor) printf(format string, args ...any) {
	if v.err != nil {
		return
	}
	if _, err := fmt.Fprintf(v.w, format, args...); err != nil {
		v.err = fmt.Errorf("writing report: %w", err)
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
