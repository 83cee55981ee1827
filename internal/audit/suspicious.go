package audit

import (
	"fmt"
	"io"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/txaudit/internal/model"
)

// Policy holds the per-variant thresholds. A transaction is flagged only when
// its value is strictly greater than the threshold.
type Policy struct {
	Deposit      decimal.Decimal
	Withdrawal   decimal.Decimal
	InterestRate decimal.Decimal // percent
	Transfer     decimal.Decimal
}

// DefaultPolicy returns the standard thresholds.
func DefaultPolicy() Policy {
	return Policy{
		Deposit:      decimal.NewFromInt(10_000),
		Withdrawal:   decimal.NewFromInt(10_000),
		InterestRate: decimal.NewFromInt(15),
		Transfer:     decimal.NewFromInt(20_000),
	}
}

// Reason explains why a transaction was flagged.
type Reason string

const (
	ReasonLargeDeposit    Reason = "large_deposit"
	ReasonLargeWithdrawal Reason = "large_withdrawal"
	ReasonHighInterest    Reason = "high_interest_rate"
	ReasonLargeTransfer   Reason = "large_transfer"
)

// Flag records one suspicious transaction.
type Flag struct {
	Kind      model.Kind
	Account   string
	Reason    Reason
	Value     decimal.Decimal // the amount or rate that crossed the threshold
	Threshold decimal.Decimal
}

var _ model.Visitor = (*Visitor)(nil)

// Visitor checks each transaction against a Policy independently. There is no
// correlation across transactions or accounts.
type Visitor struct {
	w      io.Writer
	policy Policy
	flags  []Flag
	err    error
}

// New returns a Visitor using policy and writing flagged lines to w.
func New(w io.Writer, policy Policy) *Visitor {
	return &Visitor{w: w, policy: policy}
}

// Header returns the section banner printed before the pass.
func (v *Visitor) Header() string { return "=== AUDIT ===" }

// Count returns the number of flagged transactions.
func (v *Visitor) Count() int { return len(v.flags) }

// Flags returns a copy of the flagged transactions in visit order.
func (v *Visitor) Flags() []Flag { return slices.Clone(v.flags) }

// Err returns the first write error, if any.
func (v *Visitor) Err() error { return v.err }

func (v *Visitor) VisitDeposit(d model.Deposit) {
	if d.Amount().GreaterThan(v.policy.Deposit) {
		v.flag(Flag{
			Kind:      d.Kind(),
			Account:   d.AccountNumber(),
			Reason:    ReasonLargeDeposit,
			Value:     d.Amount(),
			Threshold: v.policy.Deposit,
		})
		v.printf("Large deposit of $%s\n", d.Amount().StringFixed(2))
	}
}

func (v *Visitor) VisitWithdrawal(w model.Withdrawal) {
	if w.Amount().GreaterThan(v.policy.Withdrawal) {
		v.flag(Flag{
			Kind:      w.Kind(),
			Account:   w.AccountNumber(),
			Reason:    ReasonLargeWithdrawal,
			Value:     w.Amount(),
			Threshold: v.policy.Withdrawal,
		})
		v.printf("Large withdrawal of $%s\n", w.Amount().StringFixed(2))
	}
}

func (v *Visitor) VisitCommission(c model.Commission) {
	if c.InterestRate().GreaterThan(v.policy.InterestRate) {
		v.flag(Flag{
			Kind:      c.Kind(),
			Account:   c.AccountNumber(),
			Reason:    ReasonHighInterest,
			Value:     c.InterestRate(),
			Threshold: v.policy.InterestRate,
		})
		v.printf("High interest rate of %s%%\n", c.InterestRate().String())
	}
}

func (v *Visitor) VisitTransfer(t model.Transfer) {
	if t.Amount().GreaterThan(v.policy.Transfer) {
		v.flag(Flag{
			Kind:      t.Kind(),
			Account:   t.FromAccount(),
			Reason:    ReasonLargeTransfer,
			Value:     t.Amount(),
			Threshold: v.policy.Transfer,
		})
		v.printf("Large transfer of $%s\n", t.Amount().StringFixed(2))
	}
}

// WriteSummary prints the number of flagged transactions.
func (v *Visitor) WriteSummary() error {
	v.printf("\n=== AUDIT SUMMARY ===\n")
	if len(v.flags) == 0 {
		v.printf("No suspicious activities detected\n")
	} else {
		v.printf("Found %d suspicious activities\n", len(v.flags))
	}
	return v.err
}

func (v *Visitor) flag(f Flag) {
	v.flags = append(v.flags, f)
}

func (v *Visitor) printf(format string, args ...any) {
	if v.err != nil {
		return
	}
	if _, err := fmt.Fprintf(v.w, format, args...); err != nil {
		v.err = fmt.Errorf("writing audit: %w", err)
	}
}
