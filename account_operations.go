package main

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedAdminID            = "admin-1"
	seedAdminName          = "Admin User"
	seedAdminAccountNumber = "9876543210"

	accountNumberAttempts = 10
)

var seedAdminBalance = decimal.NewFromInt(500000000)

func CreateNewAccount(newAcc *CreateAccountRequest, accountNumber, passwordHash string) *Account {
	firstName := strings.TrimSpace(newAcc.FirstName)
	lastName := strings.TrimSpace(newAcc.LastName)

	return &Account{
		ID:            "user-" + uuid.New().String(),
		FirstName:     firstName,
		LastName:      lastName,
		Name:          firstName + " " + lastName,
		Email:         newAcc.Email,
		PasswordHash:  passwordHash,
		Role:          RoleUser,
		AccountNumber: accountNumber,
		Balance:       decimal.Zero,
		Currency:      DefaultCurrency,
		Status:        StatusActive,
		CreatedAt:     time.Now().UTC(),
	}
}

func newAdminAccount(email, passwordHash string) *Account {
	return &Account{
		ID:            seedAdminID,
		Name:          seedAdminName,
		Email:         email,
		PasswordHash:  passwordHash,
		Role:          RoleAdmin,
		AccountNumber: seedAdminAccountNumber,
		Balance:       seedAdminBalance,
		Currency:      DefaultCurrency,
		Status:        StatusActive,
		CreatedAt:     time.Now().UTC(),
	}
}

// generateAccountNumber returns a 10-digit number with no leading zero.
func generateAccountNumber() string {
	return strconv.FormatInt(1000000000+rand.Int63n(9000000000), 10)
}

// uniqueAccountNumber draws from gen until it finds a number not in taken.
func uniqueAccountNumber(gen func() string, taken func(string) bool) (string, error) {
	for i := 0; i < accountNumberAttempts; i++ {
		num := gen()
		if !taken(num) {
			return num, nil
		}
	}
	return "", fmt.Errorf("no free account number after %d attempts", accountNumberAttempts)
}

func hashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", invalidInput("Password must be at most 72 bytes")
		}
		return "", err
	}
	return string(hashed), nil
}

func comparePassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

func validateCreateAccountRequest(req *CreateAccountRequest) error {
	if strings.TrimSpace(req.FirstName) == "" ||
		strings.TrimSpace(req.LastName) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		req.Password == "" {
		return invalidInput("All fields are required")
	}
	return nil
}
