package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder notes which Visitor method each dispatch reached.
type recorder struct {
	calls []string
	seen  []Transaction
}

func (r *recorder) VisitDeposit(d Deposit) {
	r.calls = append(r.calls, "deposit")
	r.seen = append(r.seen, d)
}

func (r *recorder) VisitWithdrawal(w Withdrawal) {
	r.calls = append(r.calls, "withdrawal")
	r.seen = append(r.seen, w)
}

func (r *recorder) VisitCommission(c Commission) {
	r.calls = append(r.calls, "commission")
	r.seen = append(r.seen, c)
}

func (r *recorder) VisitTransfer(t Transfer) {
	r.calls = append(r.calls, "transfer")
	r.seen = append(r.seen, t)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAccept_DispatchesOnDynamicType(t *testing.T) {
	tests := []struct {
		name string
		txn  Transaction
		want string
	}{
		{"deposit", NewDeposit("ACC001", dec("5000")), "deposit"},
		{"withdrawal", NewWithdrawal("ACC002", dec("5000")), "withdrawal"},
		{"commission", NewCommission("ACC002", dec("5000"), dec("5.5")), "commission"},
		{"transfer", NewTransfer("ACC001", "ACC002", dec("5000")), "transfer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{}
			// Static type is the interface; dispatch must still reach the variant's method.
			var txn Transaction = tt.txn
			txn.Accept(r)

			require.Len(t, r.calls, 1, "exactly one visitor method should run")
			assert.Equal(t, tt.want, r.calls[0])
			assert.Equal(t, tt.txn, r.seen[0], "variant should pass itself")
			assert.Equal(t, Kind(tt.want), txn.Kind())
		})
	}
}

func TestWalk_PreservesOrder(t *testing.T) {
	txns := []Transaction{
		NewTransfer("A", "B", dec("1")),
		NewDeposit("A", dec("2")),
		NewCommission("A", dec("3"), dec("4")),
		NewWithdrawal("A", dec("5")),
		NewDeposit("B", dec("6")),
	}
	r := &recorder{}
	Walk(txns, r)

	assert.Equal(t, []string{"transfer", "deposit", "commission", "withdrawal", "deposit"}, r.calls)
	assert.Equal(t, txns, r.seen)
}

func TestWalk_Empty(t *testing.T) {
	r := &recorder{}
	Walk(nil, r)
	assert.Empty(t, r.calls)
}

func TestGetters(t *testing.T) {
	c := NewCommission("ACC003", dec("15000"), dec("18"))
	assert.Equal(t, "ACC003", c.AccountNumber())
	assert.True(t, c.Amount().Equal(dec("15000")))
	assert.True(t, c.InterestRate().Equal(dec("18")))

	tr := NewTransfer("ACC001", "ACC002", dec("5000"))
	assert.Equal(t, "ACC001", tr.FromAccount())
	assert.Equal(t, "ACC002", tr.ToAccount())
	assert.Equal(t, "transfer 5000.00 from ACC001 to ACC002", tr.String())
}

func TestNegativeAmountsAccepted(t *testing.T) {
	d := NewDeposit("ACC001", dec("-25.50"))
	assert.Equal(t, "-25.50", d.Amount().StringFixed(2))

	w := NewWithdrawal("ACC001", decimal.Zero)
	assert.True(t, w.Amount().IsZero())
}

func TestAccount(t *testing.T) {
	assert.Equal(t, "X", Account(NewDeposit("X", dec("1"))))
	assert.Equal(t, "Y", Account(NewWithdrawal("Y", dec("1"))))
	assert.Equal(t, "Z", Account(NewCommission("Z", dec("1"), dec("1"))))
	assert.Equal(t, "FROM", Account(NewTransfer("FROM", "TO", dec("1"))))
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"deposit", KindDeposit, false},
		{" Withdrawal ", KindWithdrawal, false},
		{"COMMISSION", KindCommission, false},
		{"transfer", KindTransfer, false},
		{"loan", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "ParseKind(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "ParseKind(%q)", tt.in)
		assert.Equal(t, tt.want, got)
	}
}
