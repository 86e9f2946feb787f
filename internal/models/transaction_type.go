package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

type TransactionType string

const (
	TxnCharge TransactionType = "CHARGE"
	TxnUse    TransactionType = "USE"
)

// ParseTransactionType accepts either name in any casing.
func ParseTransactionType(value string) (TransactionType, error) {
	switch t := TransactionType(strings.ToUpper(value)); t {
	case TxnCharge, TxnUse:
		return t, nil
	}
	return "", BadArgument("Invalid transaction type: " + value + ". Valid types are: CHARGE, USE.")
}

func (t TransactionType) Valid() bool { return t == TxnCharge || t == TxnUse }

func (t TransactionType) String() string { return string(t) }

// Wire form is the lowercase name.
func (t TransactionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(string(t)))
}

func (t *TransactionType) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return BadArgument("Transaction type cannot be null")
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return BadArgument("Transaction type must be a string")
	}
	parsed, err := ParseTransactionType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
