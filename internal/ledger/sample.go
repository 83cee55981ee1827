package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/txaudit/internal/model"
)

// Sample returns the built-in transaction list used when no file is given.
func Sample() []model.Transaction {
	return []model.Transaction{
		model.NewDeposit("ACC001", decimal.NewFromInt(5000)),
		model.NewWithdrawal("ACC002", decimal.NewFromInt(5000)),
		model.NewCommission("ACC002", decimal.NewFromInt(5000), decimal.RequireFromString("5.5")),
		model.NewTransfer("ACC001", "ACC002", decimal.NewFromInt(5000)),
		model.NewDeposit("ACC003", decimal.NewFromInt(15000)),
		model.NewCommission("ACC003", decimal.NewFromInt(15000), decimal.NewFromInt(18)),
	}
}
