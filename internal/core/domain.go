package core

import (
	"errors"
	"strings"
	"time"
)

// Role is the profile role issued by the fund API at login. It only drives
// which navigation entries are displayed; authorization is enforced by the
// backend on every call.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleAcct  Role = "acct"
	RoleAudit Role = "audit"
	RoleUser  Role = "user"
)

// Transaction directions accepted by the fund API.
const (
	Inflow  = "inflow"
	Outflow = "outflow"
)

type (
	// Ref is an id+name reference embedded in other entities.
	Ref struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}

	Bank struct {
		ID        int64     `json:"id"`
		Name      string    `json:"name"`
		CreatedAt time.Time `json:"createdAt"`
	}

	Currency struct {
		ID        int64     `json:"id"`
		Code      string    `json:"code"`
		Name      string    `json:"name"`
		CreatedAt time.Time `json:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt"`
	}

	Category struct {
		ID        int64     `json:"id"`
		Name      string    `json:"name"`
		CreatedAt time.Time `json:"createdAt"`
	}

	Account struct {
		ID            int64     `json:"id"`
		Name          string    `json:"name"`
		AccountNumber string    `json:"accountNumber"`
		Bank          Ref       `json:"bank"`
		Currency      Currency  `json:"currency"`
		Category      Ref       `json:"category"`
		Balance       Money     `json:"balance"`
		CreatedAt     time.Time `json:"createdAt"`
		UpdatedAt     time.Time `json:"updatedAt"`
	}

	// TransactionAccount is the account snapshot nested in a transaction row.
	TransactionAccount struct {
		ID       int64    `json:"id"`
		Name     string   `json:"name"`
		Currency Currency `json:"currency"`
		Bank     Ref      `json:"bank"`
	}

	Transaction struct {
		ID              int64              `json:"id"`
		Account         TransactionAccount `json:"account"`
		Type            string             `json:"type"`
		Amount          Money              `json:"amount"`
		PreviousBalance Money              `json:"previousBalance"`
		CurrentBalance  Money              `json:"currentBalance"`
		Description     string             `json:"description"`
		CreatedBy       User               `json:"createdBy"`
		CreatedAt       time.Time          `json:"createdAt"`
	}

	AuditLog struct {
		ID           int64     `json:"id"`
		EntityType   string    `json:"entityType"`
		EntityID     int64     `json:"entityId"`
		Action       string    `json:"action"`
		FieldChanged string    `json:"fieldChanged"`
		OldValue     string    `json:"oldValue"`
		NewValue     string    `json:"newValue"`
		Description  string    `json:"description"`
		CreatedBy    User      `json:"createdBy"`
		CreatedAt    time.Time `json:"createdAt"`
	}

	User struct {
		ID        int64     `json:"id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		Role      Role      `json:"role"`
		CreatedAt time.Time `json:"createdAt"`
	}
)

var (
	ErrEmptyName          = errors.New("name is required")
	ErrEmptyCode          = errors.New("code is required")
	ErrEmptyAccountNumber = errors.New("account number is required")
	ErrNoBankSelected     = errors.New("select a bank")
	ErrNoCurrencySelected = errors.New("select a currency")
	ErrNoCategorySelected = errors.New("select a category")
	ErrNoAccountSelected  = errors.New("select an account")
	ErrInvalidType        = errors.New("select a transaction type")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrEmptyDescription   = errors.New("description is required")
	ErrEmptyEmail         = errors.New("email is required")
	ErrEmptyPassword      = errors.New("password is required")
	ErrInvalidRole        = errors.New("select a valid role")
)

// Form payloads posted back to the fund API. Each Validate runs before any
// network call; a failing form never reaches the client.

type BankForm struct {
	Name string `json:"name"`
}

func (f BankForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

type CurrencyForm struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (f CurrencyForm) Validate() error {
	if strings.TrimSpace(f.Code) == "" {
		return ErrEmptyCode
	}
	if strings.TrimSpace(f.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

type CategoryForm struct {
	Name string `json:"name"`
}

func (f CategoryForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

type AccountForm struct {
	Name          string `json:"name"`
	AccountNumber string `json:"accountNumber"`
	BankID        int64  `json:"bankId"`
	CurrencyID    int64  `json:"currencyId"`
	CategoryID    int64  `json:"categoryId"`
}

func (f AccountForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(f.AccountNumber) == "" {
		return ErrEmptyAccountNumber
	}
	if f.BankID <= 0 {
		return ErrNoBankSelected
	}
	if f.CurrencyID <= 0 {
		return ErrNoCurrencySelected
	}
	if f.CategoryID <= 0 {
		return ErrNoCategorySelected
	}
	return nil
}

type TransactionForm struct {
	AccountID   int64  `json:"accountId"`
	Type        string `json:"type"`
	Amount      Money  `json:"amount"`
	Description string `json:"description"`
}

func (f TransactionForm) Validate() error {
	if f.AccountID <= 0 {
		return ErrNoAccountSelected
	}
	if f.Type != Inflow && f.Type != Outflow {
		return ErrInvalidType
	}
	if !f.Amount.Positive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(f.Description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

type UserForm struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Password string `json:"password,omitempty"`
}

func (f UserForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(f.Email) == "" {
		return ErrEmptyEmail
	}
	switch f.Role {
	case RoleAdmin, RoleAcct, RoleAudit, RoleUser:
	default:
		return ErrInvalidRole
	}
	return nil
}

// ValidateCreate additionally requires a password, which only a create sends.
func (f UserForm) ValidateCreate() error {
	if err := f.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(f.Password) == "" {
		return ErrEmptyPassword
	}
	return nil
}
