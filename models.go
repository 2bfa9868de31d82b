package main

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Balances and amounts go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	TransactionTransfer  = "transfer"
	TransactionAdminFund = "admin-fund"

	StatusActive    = "active"
	StatusCompleted = "completed"

	DefaultCurrency = "USD"

	AdminSenderAccountNum = "ADMIN"
	AdminSenderName       = "Admin"
)

type CreateAccountRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateTransactionRequest struct {
	SenderAccountNum    string              `json:"senderAccountNumber"`
	RecipientAccountNum string              `json:"recipientAccountNumber"`
	Amount              decimal.NullDecimal `json:"amount"`
	Note                string              `json:"note"`
}

type FundAccountRequest struct {
	AdminID             string              `json:"adminId"`
	RecipientAccountNum string              `json:"recipientAccountNumber"`
	Amount              decimal.NullDecimal `json:"amount"`
	Note                string              `json:"note"`
}

type Account struct {
	ID            string          `json:"id"`
	FirstName     string          `json:"firstName,omitempty"`
	LastName      string          `json:"lastName,omitempty"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	PasswordHash  string          `json:"passwordHash,omitempty"`
	Role          string          `json:"role"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// withoutCredential returns a copy safe to hand to callers.
func (a *Account) withoutCredential() *Account {
	cp := *a
	cp.PasswordHash = ""
	return &cp
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

type Transaction struct {
	ID                  string          `json:"id"`
	SenderAccountNum    string          `json:"senderAccountNumber"`
	SenderName          string          `json:"senderName"`
	RecipientAccountNum string          `json:"recipientAccountNumber"`
	RecipientName       string          `json:"recipientName"`
	Amount              decimal.Decimal `json:"amount"`
	Note                string          `json:"note"`
	Date                time.Time       `json:"date"`
	Status              string          `json:"status"`
	TransactionType     string          `json:"type"`
}
