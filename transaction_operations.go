package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultFundNote = "Admin funding"

// Bounds checked on the raw decimal before rounding, since Round rescales the
// coefficient to match the exponent.
const (
	maxAmountIntegerDigits = 15
	maxAmountScale         = 20
)

func CreateNewTransactionObj(transactionType string, sender, recipient *Account, amount decimal.Decimal, note string) *Transaction {
	tns := &Transaction{
		ID:                  uuid.New().String(),
		RecipientAccountNum: recipient.AccountNumber,
		RecipientName:       recipient.Name,
		Amount:              amount,
		Note:                note,
		Date:                time.Now().UTC(),
		Status:              StatusCompleted,
		TransactionType:     transactionType,
	}

	if transactionType == TransactionAdminFund {
		tns.SenderAccountNum = AdminSenderAccountNum
		tns.SenderName = AdminSenderName
		if tns.Note == "" {
			tns.Note = defaultFundNote
		}
	} else {
		tns.SenderAccountNum = sender.AccountNumber
		tns.SenderName = sender.Name
	}

	return tns
}

// amountPresent mirrors the client contract: a missing or zero amount counts as absent.
func amountPresent(amount decimal.NullDecimal) bool {
	return amount.Valid && !amount.Decimal.IsZero()
}

// roundAmount rounds a requested amount to cents and rejects anything not above zero.
func roundAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	exp := amount.Exponent()
	if exp < -maxAmountScale || int(exp)+amount.NumDigits() > maxAmountIntegerDigits {
		return decimal.Zero, invalidInput("Invalid amount")
	}

	rounded := amount.Round(2)
	// Earlier releases accepted zero and negative amounts.
	if !rounded.IsPositive() {
		return decimal.Zero, invalidInput("Amount must be greater than zero")
	}
	return rounded, nil
}
