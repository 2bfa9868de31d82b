package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	accountsFile     = "users.json"
	transactionsFile = "transactions.json"
)

// Storage persists the two ledger collections, each read and written as a whole.
type Storage interface {
	InitializeDataStore(seed []*Account) error
	GetAllAccounts() ([]*Account, error)
	SaveAccounts([]*Account) error
	GetAllTransactions() ([]*Transaction, error)
	SaveTransactions([]*Transaction) error
}

// JSONFileStore keeps each collection in its own indented JSON file under dir.
// Writes go to a temp file in the same directory and are renamed into place,
// so a reader never sees a half-written collection.
type JSONFileStore struct {
	dir    string
	logger *slog.Logger
}

func NewJSONFileStore(dir string, logger *slog.Logger) (*JSONFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &JSONFileStore{dir: dir, logger: logger}, nil
}

func (s *JSONFileStore) InitializeDataStore(seed []*Account) error {
	err := s.createAccountsFile(seed)
	if err != nil {
		return err
	}
	err = s.createTransactionsFile()
	if err != nil {
		return err
	}

	return nil
}

func (s *JSONFileStore) createAccountsFile(seed []*Account) error {
	if s.exists(accountsFile) {
		return nil
	}
	if err := s.SaveAccounts(seed); err != nil {
		return err
	}
	s.logger.Info("created initial accounts file", "path", s.path(accountsFile), "accounts", len(seed))
	return nil
}

func (s *JSONFileStore) createTransactionsFile() error {
	if s.exists(transactionsFile) {
		return nil
	}
	if err := s.SaveTransactions(nil); err != nil {
		return err
	}
	s.logger.Info("created initial transactions file", "path", s.path(transactionsFile))
	return nil
}

func (s *JSONFileStore) GetAllAccounts() ([]*Account, error) {
	accounts := []*Account{}
	if err := s.readFile(accountsFile, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *JSONFileStore) SaveAccounts(accounts []*Account) error {
	if accounts == nil {
		accounts = []*Account{}
	}
	return s.writeFile(accountsFile, accounts)
}

func (s *JSONFileStore) GetAllTransactions() ([]*Transaction, error) {
	transactions := []*Transaction{}
	if err := s.readFile(transactionsFile, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (s *JSONFileStore) SaveTransactions(transactions []*Transaction) error {
	if transactions == nil {
		transactions = []*Transaction{}
	}
	return s.writeFile(transactionsFile, transactions)
}

func (s *JSONFileStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *JSONFileStore) exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}

// readFile treats a missing file as an empty collection.
func (s *JSONFileStore) readFile(name string, out any) error {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (s *JSONFileStore) writeFile(name string, v any) error {
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", name, err)
	}

	if err := os.Rename(tmpName, s.path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
