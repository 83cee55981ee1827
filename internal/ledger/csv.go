package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/txaudit/internal/model"
)

// Header is the CSV header for transactions.csv.
const Header = "kind,account,to_account,amount,interest_rate"

const (
	numFields   = 5
	colKind     = 0
	colAccount  = 1
	colTo       = 2
	colAmount   = 3
	colInterest = 4
)

// Load reads a transactions CSV file from disk.
func Load(path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening transactions: %w", err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading transactions %s: %w", path, err)
	}
	return txns, nil
}

// Save writes transactions to a CSV file, replacing any existing file.
func Save(path string, txns []model.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating transactions file: %w", err)
	}
	defer f.Close()

	if err := WriteTransactions(f, txns); err != nil {
		return fmt.Errorf("writing transactions: %w", err)
	}
	return nil
}

// ReadTransactions reads all transactions from a CSV reader. The first row
// must be the header.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}
	if err := checkHeader(records[0]); err != nil {
		return nil, err
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func checkHeader(row []string) error {
	want := strings.Split(Header, ",")
	for i, col := range want {
		if !strings.EqualFold(strings.TrimSpace(row[i]), col) {
			return fmt.Errorf("row 1: expected header %q, got %q", Header, strings.Join(row, ","))
		}
	}
	return nil
}

// WriteTransactions writes transactions as CSV, header included.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalTransaction converts a transaction to a CSV row.
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colKind] = string(txn.Kind())
	row[colAccount] = model.Account(txn)
	row[colAmount] = txn.Amount().String()

	switch t := txn.(type) {
	case model.Commission:
		row[colInterest] = t.InterestRate().String()
	case model.Transfer:
		row[colTo] = t.ToAccount()
	}
	return row
}

// UnmarshalTransaction converts a CSV row to a transaction. Amounts are parsed
// but not range-checked.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return nil, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	kind, err := model.ParseKind(record[colKind])
	if err != nil {
		return nil, err
	}

	account := strings.TrimSpace(record[colAccount])
	if account == "" {
		return nil, errors.New("missing account")
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(record[colAmount]))
	if err != nil {
		return nil, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	switch kind {
	case model.KindDeposit:
		return model.NewDeposit(account, amount), nil
	case model.KindWithdrawal:
		return model.NewWithdrawal(account, amount), nil
	case model.KindCommission:
		rate, err := decimal.NewFromString(strings.TrimSpace(record[colInterest]))
		if err != nil {
			return nil, fmt.Errorf("parsing interest_rate %q: %w", record[colInterest], err)
		}
		return model.NewCommission(account, amount, rate), nil
	case model.KindTransfer:
		to := strings.TrimSpace(record[colTo])
		if to == "" {
			return nil, errors.New("transfer missing to_account")
		}
		return model.NewTransfer(account, to, amount), nil
	default:
		return nil, fmt.Errorf("unhandled transaction kind %q", kind)
	}
}
