package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is the capability set carried by an account.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleOwner    Role = "OWNER"
)

// ParseRole matches the persisted role tokens case-insensitively.
func ParseRole(s string) (Role, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(RoleCustomer):
		return RoleCustomer, true
	case string(RoleOwner):
		return RoleOwner, true
	default:
		return "", false
	}
}

// Account models a registered identity of the store.
type Account struct {
	ID        int64
	Username  string
	Password  string // stored in clear text
	Role      Role
	CreatedAt time.Time

	cart *Cart
}

// NewAccount builds an account. Customers get their cart here and keep it
// for the lifetime of the account.
func NewAccount(id int64, username, password string, role Role, createdAt time.Time) (*Account, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: username and password must be non-empty", ErrInvalidInput)
	}
	if role != RoleCustomer && role != RoleOwner {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	a := &Account{
		ID:        id,
		Username:  username,
		Password:  password,
		Role:      role,
		CreatedAt: createdAt,
	}
	if role == RoleCustomer {
		a.cart = &Cart{owner: a}
	}
	return a, nil
}

// Cart returns the customer's cart, or nil for owners.
func (a *Account) Cart() *Cart { return a.cart }

func (a *Account) IsOwner() bool    { return a.Role == RoleOwner }
func (a *Account) IsCustomer() bool { return a.Role == RoleCustomer && a.cart != nil }

// CheckPassword compares exactly.
func (a *Account) CheckPassword(password string) bool {
	return a.Password == password
}

func (a *Account) SetUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username cannot be empty", ErrInvalidInput)
	}
	a.Username = username
	return nil
}

func (a *Account) SetPassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("%w: password cannot be empty", ErrInvalidInput)
	}
	a.Password = password
	return nil
}

func (a *Account) String() string {
	return fmt.Sprintf("User: %s, ID: %d || Type: %s", a.Username, a.ID, a.Role)
}

// Session holds at most one authenticated account. The zero value is logged out.
type Session struct {
	current *Account
}

// Account returns the logged in account or nil.
func (s *Session) Account() *Account { return s.current }

func (s *Session) Active() bool { return s.current != nil }

// Is reports whether a is exactly the logged in account.
func (s *Session) Is(a *Account) bool {
	return s.current != nil && s.current == a
}

func (s *Session) Begin(a *Account) { s.current = a }

func (s *Session) End() { s.current = nil }
