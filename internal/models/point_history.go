package models

// PointHistory is one committed charge or use. Entries are appended once and never changed.
type PointHistory struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"userId"`
	Amount       int64           `json:"amount"`
	Type         TransactionType `json:"type"`
	UpdateMillis int64           `json:"updateMillis"`
}

func NewPointHistory(id, userID, amount int64, typ TransactionType, updateMillis int64) (PointHistory, error) {
	if amount <= 0 {
		return PointHistory{}, newError(KindInvalidAmount, "Amount must be greater than 0.")
	}
	if typ == "" {
		return PointHistory{}, BadArgument("TransactionType must not be null.")
	}
	if !typ.Valid() {
		return PointHistory{}, BadArgument("Invalid transaction type: " + string(typ) + ". Valid types are: CHARGE, USE.")
	}
	return PointHistory{
		ID:           id,
		UserID:       userID,
		Amount:       amount,
		Type:         typ,
		UpdateMillis: updateMillis,
	}, nil
}
