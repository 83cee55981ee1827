package model

// Visitor has one method per Transaction variant. Adding a variant means
// adding a method here, which breaks every implementation until it handles
// the new case.
type Visitor interface {
	VisitDeposit(d Deposit)
	VisitWithdrawal(w Withdrawal)
	VisitCommission(c Commission)
	VisitTransfer(t Transfer)
}

// Walk dispatches every transaction to v in order.
func Walk(txns []Transaction, v Visitor) {
	for _, t := range txns {
		t.Accept(v)
	}
}
