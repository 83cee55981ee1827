package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind names a transaction variant.
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
	KindCommission Kind = "commission"
	KindTransfer   Kind = "transfer"
)

// Kinds lists every variant in declaration order.
var Kinds = []Kind{KindDeposit, KindWithdrawal, KindCommission, KindTransfer}

// ParseKind resolves a variant name, ignoring case and surrounding space.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown transaction kind %q", s)
}

// Transaction is one of Deposit, Withdrawal, Commission or Transfer.
// Accept calls the Visitor method matching the concrete variant.
type Transaction interface {
	Amount() decimal.Decimal
	Kind() Kind
	Accept(v Visitor)
}

// Deposit credits an account.
type Deposit struct {
	accountNumber string
	amount        decimal.Decimal
}

// NewDeposit returns a Deposit. Amounts are not validated.
func NewDeposit(accountNumber string, amount decimal.Decimal) Deposit {
	return Deposit{accountNumber: accountNumber, amount: amount}
}

func (d Deposit) AccountNumber() string   { return d.accountNumber }
func (d Deposit) Amount() decimal.Decimal { return d.amount }
func (d Deposit) Kind() Kind              { return KindDeposit }
func (d Deposit) Accept(v Visitor)        { v.VisitDeposit(d) }
func (d Deposit) String() string {
	return fmt.Sprintf("deposit %s to %s", d.amount.StringFixed(2), d.accountNumber)
}

// Withdrawal debits an account.
type Withdrawal struct {
	accountNumber string
	amount        decimal.Decimal
}

// NewWithdrawal returns a Withdrawal. Amounts are not validated.
func NewWithdrawal(accountNumber string, amount decimal.Decimal) Withdrawal {
	return Withdrawal{accountNumber: accountNumber, amount: amount}
}

func (w Withdrawal) AccountNumber() string   { return w.accountNumber }
func (w Withdrawal) Amount() decimal.Decimal { return w.amount }
func (w Withdrawal) Kind() Kind              { return KindWithdrawal }
func (w Withdrawal) Accept(v Visitor)        { v.VisitWithdrawal(w) }
func (w Withdrawal) String() string {
	return fmt.Sprintf("withdrawal %s from %s", w.amount.StringFixed(2), w.accountNumber)
}

// Commission is a charge against an account carrying an interest rate
// expressed in percent (18 means 18%).
type Commission struct {
	accountNumber string
	amount        decimal.Decimal
	interestRate  decimal.Decimal
}

// NewCommission returns a Commission. Neither amount nor rate is validated.
func NewCommission(accountNumber string, amount, interestRate decimal.Decimal) Commission {
	return Commission{accountNumber: accountNumber, amount: amount, interestRate: interestRate}
}

func (c Commission) AccountNumber() string         { return c.accountNumber }
func (c Commission) Amount() decimal.Decimal       { return c.amount }
func (c Commission) InterestRate() decimal.Decimal { return c.interestRate }
func (c Commission) Kind() Kind                    { return KindCommission }
func (c Commission) Accept(v Visitor)              { v.VisitCommission(c) }
func (c Commission) String() string {
	return fmt.Sprintf("commission %s on %s at %s%%", c.amount.StringFixed(2), c.accountNumber, c.interestRate)
}

// Transfer moves money between two accounts.
type Transfer struct {
	fromAccount string
	toAccount   string
	amount      decimal.Decimal
}

// NewTransfer returns a Transfer. The accounts may be equal; nothing is validated.
func NewTransfer(fromAccount, toAccount string, amount decimal.Decimal) Transfer {
	return Transfer{fromAccount: fromAccount, toAccount: toAccount, amount: amount}
}

func (t Transfer) FromAccount() string     { return t.fromAccount }
func (t Transfer) ToAccount() string       { return t.toAccount }
func (t Transfer) Amount() decimal.Decimal { return t.amount }
func (t Transfer) Kind() Kind              { return KindTransfer }
func (t Transfer) Accept(v Visitor)        { v.VisitTransfer(t) }
func (t Transfer) String() string {
	return fmt.Sprintf("transfer %s from %s to %s", t.amount.StringFixed(2), t.fromAccount, t.toAccount)
}

// Account returns the primary account a transaction touches. For transfers
// that is the source account.
func Account(t Transaction) string {
	switch tx := t.(type) {
	case Deposit:
		return tx.accountNumber
	case Withdrawal:
		return tx.accountNumber
	case Commission:
		return tx.accountNumber
	case Transfer:
		return tx.fromAccount
	default:
		return ""
	}
}
