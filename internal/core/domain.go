package core

import (
	"net/mail"
	"strings"
	"time"
)

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

const MinPasswordLength = 8

type (
	Role string

	Money struct {
		Cents int64
	}

	User struct {
		ID           int64     `json:"id"`
		Username     string    `json:"username"`
		Email        string    `json:"email"`
		PasswordHash string    `json:"-"`
		Role         Role      `json:"role"`
		CreatedAt    time.Time `json:"created_at"`
		UpdatedAt    time.Time `json:"updated_at"`
	}

	// Registration is the validated input of an account sign-up.
	Registration struct {
		Username string
		Email    string
		Password string
	}

	Category struct {
		ID        int64     `json:"id"`
		Name      string    `json:"name"`
		OwnerID   *int64    `json:"owner_id,omitempty"` // nil means global/shared
		CreatedAt time.Time `json:"created_at"`
	}

	Expense struct {
		ID          int64     `json:"id"`
		OwnerID     int64     `json:"owner_id"`
		Amount      Money     `json:"amount"`
		Vendor      string    `json:"vendor"`
		Description string    `json:"description,omitempty"`
		IncurredAt  time.Time `json:"incurred_at"`
		CreatedAt   time.Time `json:"created_at"`
		UpdatedAt   time.Time `json:"updated_at"`
	}

	// ExpenseFilter narrows an owner's expense listing. Zero values mean
	// no constraint.
	ExpenseFilter struct {
		From   time.Time
		To     time.Time
		Vendor string
	}
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// NormalizeEmail lowercases and trims an email address. Emails are stored
// and compared in this form, which makes lookups case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r Registration) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return invalid("username", "must not be empty")
	}
	if len(r.Username) > 100 {
		return invalid("username", "too long (max 100 characters)")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return invalid("email", "not a valid address")
	}
	if r.Password == "" {
		return invalid("password", "must not be empty")
	}
	if len(r.Password) < MinPasswordLength {
		return invalid("password", "too short (min 8 characters)")
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return invalid("amount", "must be positive")
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return invalid("name", "must not be empty")
	}
	if len(c.Name) > 100 {
		return invalid("name", "too long (max 100 characters)")
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Vendor) == "" {
		return invalid("vendor", "must not be empty")
	}
	if len(e.Vendor) > 200 {
		return invalid("vendor", "too long (max 200 characters)")
	}
	if len(e.Description) > 500 {
		return invalid("description", "too long (max 500 characters)")
	}
	if e.IncurredAt.IsZero() {
		return invalid("incurred_at", "must be set")
	}
	return nil
}
