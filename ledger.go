package main

import (
	"fmt"
	"log/slog"
	"sync"
)

// Ledger owns every account balance and the transaction log. All mutations are
// serialized behind mu and written through to the store before they return;
// readers get copies taken under the read lock.
type Ledger struct {
	mu     sync.RWMutex
	store  Storage
	logger *slog.Logger

	bcryptCost       int
	dummyHash        string
	newAccountNumber func() string

	accounts     []*Account
	byID         map[string]*Account
	byEmail      map[string]*Account
	byNumber     map[string]*Account
	transactions []*Transaction
}

// NewLedger loads both collections from store and indexes them.
func NewLedger(store Storage, logger *slog.Logger, bcryptCost int) (*Ledger, error) {
	accounts, err := store.GetAllAccounts()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	transactions, err := store.GetAllTransactions()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	// Compared against when the email is unknown, so both failure paths cost the same.
	dummyHash, err := hashPassword("not-a-real-password", bcryptCost)
	if err != nil {
		return nil, err
	}

	l := &Ledger{
		store:            store,
		logger:           logger,
		bcryptCost:       bcryptCost,
		dummyHash:        dummyHash,
		newAccountNumber: generateAccountNumber,
		accounts:         accounts,
		byID:             make(map[string]*Account, len(accounts)),
		byEmail:          make(map[string]*Account, len(accounts)),
		byNumber:         make(map[string]*Account, len(accounts)),
		transactions:     transactions,
	}
	for _, acc := range accounts {
		l.index(acc)
	}

	logger.Info("ledger loaded", "accounts", len(accounts), "transactions", len(transactions))
	return l, nil
}

// SeedAccounts builds the initial account set for an empty data store.
func SeedAccounts(adminEmail, adminPassword string, bcryptCost int) ([]*Account, error) {
	hashed, err := hashPassword(adminPassword, bcryptCost)
	if err != nil {
		return nil, err
	}
	return []*Account{newAdminAccount(adminEmail, hashed)}, nil
}

func (l *Ledger) index(acc *Account) {
	l.byID[acc.ID] = acc
	l.byEmail[acc.Email] = acc
	l.byNumber[acc.AccountNumber] = acc
}

func (l *Ledger) Register(req *CreateAccountRequest) (*Account, error) {
	if err := validateCreateAccountRequest(req); err != nil {
		return nil, err
	}

	hashed, err := hashPassword(req.Password, l.bcryptCost)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.byEmail[req.Email]; exists {
		l.logger.Warn("registration rejected", "reason", "duplicate email")
		return nil, ErrDuplicateEmail
	}

	accountNumber, err := uniqueAccountNumber(l.newAccountNumber, func(num string) bool {
		_, taken := l.byNumber[num]
		return taken
	})
	if err != nil {
		return nil, err
	}

	acc := CreateNewAccount(req, accountNumber, hashed)
	l.accounts = append(l.accounts, acc)
	l.index(acc)

	if err := l.store.SaveAccounts(l.accounts); err != nil {
		l.accounts = l.accounts[:len(l.accounts)-1]
		delete(l.byID, acc.ID)
		delete(l.byEmail, acc.Email)
		delete(l.byNumber, acc.AccountNumber)
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	l.logger.Info("account registered", "account_id", acc.ID, "account_number", acc.AccountNumber)
	return acc.withoutCredential(), nil
}

func (l *Ledger) Authenticate(req *LoginRequest) (*Account, error) {
	if req.Email == "" || req.Password == "" {
		return nil, invalidInput("Email and password are required")
	}

	l.mu.RLock()
	var acc Account
	stored, ok := l.byEmail[req.Email]
	if ok {
		acc = *stored
	}
	l.mu.RUnlock()

	if !ok {
		comparePassword(l.dummyHash, req.Password)
		return nil, ErrInvalidCredentials
	}
	if !comparePassword(acc.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	return acc.withoutCredential(), nil
}

// ListAccounts returns every account, admin included, in creation order.
func (l *Ledger) ListAccounts() []*Account {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*Account, 0, len(l.accounts))
	for _, acc := range l.accounts {
		out = append(out, acc.withoutCredential())
	}
	return out
}

func (l *Ledger) ListTransactions() []*Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*Transaction, 0, len(l.transactions))
	for _, tns := range l.transactions {
		cp := *tns
		out = append(out, &cp)
	}
	return out
}

func (l *Ledger) Transfer(req *CreateTransactionRequest) (*Transaction, error) {
	if req.SenderAccountNum == "" || req.RecipientAccountNum == "" || !amountPresent(req.Amount) {
		return nil, invalidInput("Sender, recipient, and amount are required")
	}
	amount, err := roundAmount(req.Amount.Decimal)
	if err != nil {
		return nil, err
	}

	l.logger.Info("transfer started",
		"from", req.SenderAccountNum,
		"to", req.RecipientAccountNum,
		"amount", amount.StringFixed(2),
	)

	l.mu.Lock()
	defer l.mu.Unlock()

	sender, ok := l.byNumber[req.SenderAccountNum]
	if !ok {
		return nil, ErrSenderNotFound
	}
	recipient, ok := l.byNumber[req.RecipientAccountNum]
	if !ok {
		return nil, ErrRecipientNotFound
	}

	if sender.Balance.LessThan(amount) {
		l.logger.Warn("transfer failed - insufficient funds", "from", sender.AccountNumber)
		return nil, ErrInsufficientFunds
	}

	senderBefore, recipientBefore := sender.Balance, recipient.Balance
	sender.Balance = sender.Balance.Sub(amount).Round(2)
	recipient.Balance = recipient.Balance.Add(amount).Round(2)

	if err := l.store.SaveAccounts(l.accounts); err != nil {
		sender.Balance = senderBefore
		recipient.Balance = recipientBefore
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	tns := CreateNewTransactionObj(TransactionTransfer, sender, recipient, amount, req.Note)
	if err := l.appendTransaction(tns); err != nil {
		return nil, err
	}

	l.logger.Info("transfer successful", "txn_id", tns.ID)
	cp := *tns
	return &cp, nil
}

func (l *Ledger) Fund(req *FundAccountRequest) (*Transaction, error) {
	if req.AdminID == "" || req.RecipientAccountNum == "" || !amountPresent(req.Amount) {
		return nil, invalidInput("Admin ID, recipient, and amount are required")
	}
	amount, err := roundAmount(req.Amount.Decimal)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	admin, ok := l.byID[req.AdminID]
	if !ok || !admin.IsAdmin() {
		l.logger.Warn("fund rejected", "reason", "caller is not an admin", "admin_id", req.AdminID)
		return nil, ErrUnauthorized
	}
	recipient, ok := l.byNumber[req.RecipientAccountNum]
	if !ok {
		return nil, ErrRecipientNotFound
	}

	recipientBefore := recipient.Balance
	recipient.Balance = recipient.Balance.Add(amount).Round(2)

	if err := l.store.SaveAccounts(l.accounts); err != nil {
		recipient.Balance = recipientBefore
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	tns := CreateNewTransactionObj(TransactionAdminFund, admin, recipient, amount, req.Note)
	if err := l.appendTransaction(tns); err != nil {
		return nil, err
	}

	l.logger.Info("funding successful", "txn_id", tns.ID, "to", recipient.AccountNumber, "amount", amount.StringFixed(2))
	cp := *tns
	return &cp, nil
}

// appendTransaction records tns and persists the log. Balances already written
// are left as they are if this write fails; the caller gets ErrStorageFailure.
func (l *Ledger) appendTransaction(tns *Transaction) error {
	l.transactions = append(l.transactions, tns)
	if err := l.store.SaveTransactions(l.transactions); err != nil {
		l.transactions = l.transactions[:len(l.transactions)-1]
		l.logger.Error("transaction log write failed after balance update", "txn_id", tns.ID, "error", err)
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	return nil
}
