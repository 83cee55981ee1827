package ledger

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/txaudit/internal/model"
)

func TestSample(t *testing.T) {
	txns := Sample()
	require.Len(t, txns, 6)

	kinds := make([]model.Kind, len(txns))
	for i, txn := range txns {
		kinds[i] = txn.Kind()
	}
	assert.Equal(t, []model.Kind{
		model.KindDeposit,
		model.KindWithdrawal,
		model.KindCommission,
		model.KindTransfer,
		model.KindDeposit,
		model.KindCommission,
	}, kinds)
}

func TestRoundTrip(t *testing.T) {
	txns := Sample()

	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, txns))

	got, err := ReadTransactions(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(txns))

	for i := range txns {
		assert.Equal(t, txns[i].Kind(), got[i].Kind(), "row %d kind", i)
		assert.Equal(t, model.Account(txns[i]), model.Account(got[i]), "row %d account", i)
		assert.True(t, txns[i].Amount().Equal(got[i].Amount()), "row %d amount", i)
	}

	c, ok := got[2].(model.Commission)
	require.True(t, ok)
	assert.Equal(t, "5.5", c.InterestRate().String())

	tr, ok := got[3].(model.Transfer)
	require.True(t, ok)
	assert.Equal(t, "ACC002", tr.ToAccount())
}

func TestReadTransactions_Format(t *testing.T) {
	data := Header + "\n" +
		"deposit,ACC001,,5000,\n" +
		"Transfer, ACC001, ACC002, 20000.01,\n" +
		"commission,ACC003,,15000,18\n"

	got, err := ReadTransactions(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, got, 3)

	tr, ok := got[1].(model.Transfer)
	require.True(t, ok)
	assert.Equal(t, "ACC001", tr.FromAccount())
	assert.Equal(t, "ACC002", tr.ToAccount())
	assert.Equal(t, "20000.01", tr.Amount().StringFixed(2))
}

func TestReadTransactions_Empty(t *testing.T) {
	got, err := ReadTransactions(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = ReadTransactions(strings.NewReader(Header + "\n"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadTransactions_NegativeAccepted(t *testing.T) {
	data := Header + "\nwithdrawal,ACC001,,-50.00,\n"
	got, err := ReadTransactions(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Amount().IsNegative())
}

func TestReadTransactions_Errors(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want string
	}{
		{"unknown kind", "loan,ACC001,,100,", "unknown transaction kind"},
		{"bad amount", "deposit,ACC001,,abc,", "parsing amount"},
		{"missing account", "deposit,,,100,", "missing account"},
		{"commission without rate", "commission,ACC001,,100,", "parsing interest_rate"},
		{"transfer without destination", "transfer,ACC001,,100,", "missing to_account"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTransactions(strings.NewReader(Header + "\n" + tt.row + "\n"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "row 2")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadTransactions_WrongFieldCount(t *testing.T) {
	_, err := ReadTransactions(strings.NewReader(Header + "\ndeposit,ACC001,100\n"))
	require.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, Save(path, Sample()))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, got, 6)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func TestReadTransactions_MissingHeader(t *testing.T) {
	// A first row that is data must not be skipped silently.
	_, err := ReadTransactions(strings.NewReader("deposit,ACC001,,15000,\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected header")
}

func TestReadTransactions_HeaderCaseInsensitive(t *testing.T) {
	data := "Kind, Account, To_Account, AMOUNT, interest_rate\ndeposit,ACC001,,15000,\n"
	got, err := ReadTransactions(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "15000.00", got[0].Amount().StringFixed(2))
}
