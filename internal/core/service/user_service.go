package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/s2k/videogame-store/internal/core/domain"
	"github.com/s2k/videogame-store/internal/core/ports"
	"github.com/s2k/videogame-store/internal/metrics"
	"github.com/s2k/videogame-store/internal/pkg/validate"
)

// Demo credentials seeded into every new directory.
const (
	DemoOwnerUsername    = "owner"
	DemoOwnerPassword    = "owner123"
	DemoCustomerUsername = "customer"
	DemoCustomerPassword = "customer123"
)

// credentialRule keeps credentials storable as one users file field.
const credentialRule = "notblank,trimmed,excludes=;"

type credentialsInput struct {
	Username string `label:"username" validate:"notblank,trimmed,excludes=;"`
	Password string `label:"password" validate:"notblank,trimmed,excludes=;"`
}

// UserService is the in-memory account directory. It is not safe for
// concurrent use.
type UserService struct {
	accounts  []*domain.Account
	ids       *Sequence
	validator *validate.Validator
	logger    zerolog.Logger
	now       func() time.Time
}

var _ ports.UserService = (*UserService)(nil)

// NewUserService returns a directory seeded with the demo owner and customer.
func NewUserService(ids *Sequence, v *validate.Validator, logger zerolog.Logger) *UserService {
	if ids == nil {
		ids = NewSequence(1)
	}
	if v == nil {
		v = validate.New()
	}
	s := &UserService{
		ids:       ids,
		validator: v,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
	s.mustSeed(DemoOwnerUsername, DemoOwnerPassword, domain.RoleOwner)
	s.mustSeed(DemoCustomerUsername, DemoCustomerPassword, domain.RoleCustomer)
	return s
}

func (s *UserService) mustSeed(username, password string, role domain.Role) {
	if _, err := s.create(username, password, role); err != nil {
		panic(fmt.Sprintf("seed %s account: %v", role, err))
	}
}

func (s *UserService) create(username, password string, role domain.Role) (*domain.Account, error) {
	if existing := s.lookup(username); existing != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUsernameTaken, username)
	}
	account, err := domain.NewAccount(s.ids.Peek(), username, password, role, s.now())
	if err != nil {
		return nil, err
	}
	s.ids.Next()
	s.accounts = append(s.accounts, account)
	return account, nil
}

func (s *UserService) lookup(username string) *domain.Account {
	for _, a := range s.accounts {
		if strings.EqualFold(a.Username, username) {
			return a
		}
	}
	return nil
}

// Register creates a customer account. Usernames are unique ignoring case.
func (s *UserService) Register(ctx context.Context, username, password string) (*domain.Account, error) {
	if err := s.validator.Struct(credentialsInput{Username: username, Password: password}); err != nil {
		return nil, err
	}

	account, err := s.create(username, password, domain.RoleCustomer)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.logger.Info().Int64("account_id", account.ID).Str("username", account.Username).Msg("customer registered")
	return account, nil
}

// Login authenticates and begins sess. On failure sess is left as it was.
func (s *UserService) Login(ctx context.Context, sess *domain.Session, username, password string) (*domain.Account, error) {
	account := s.lookup(username)
	if account == nil {
		metrics.LoginsTotal.WithLabelValues("unknown_user").Inc()
		s.logger.Debug().Str("username", username).Msg("login: user not found")
		return nil, fmt.Errorf("login %q: %w", username, domain.ErrAccountNotFound)
	}
	if !account.CheckPassword(password) {
		metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
		s.logger.Debug().Str("username", username).Msg("login: incorrect password")
		return nil, fmt.Errorf("login %q: %w", username, domain.ErrInvalidCredentials)
	}

	sess.Begin(account)
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Int64("account_id", account.ID).Str("role", string(account.Role)).Msg("login")
	return account, nil
}

// Logout ends sess only when account is the one logged in.
func (s *UserService) Logout(ctx context.Context, sess *domain.Session, account *domain.Account) error {
	if !sess.Active() {
		return domain.ErrNotLoggedIn
	}
	if !sess.Is(account) {
		return domain.ErrNotSessionOwner
	}
	s.logger.Info().Int64("account_id", account.ID).Msg("logout")
	sess.End()
	return nil
}

// ChangePassword updates the password of the logged in account.
func (s *UserService) ChangePassword(ctx context.Context, sess *domain.Session, oldPassword, newPassword string) error {
	account := sess.Account()
	if account == nil {
		return domain.ErrNotLoggedIn
	}
	if !account.CheckPassword(oldPassword) {
		return fmt.Errorf("old password incorrect: %w", domain.ErrInvalidCredentials)
	}
	if err := s.validator.Var("new password", newPassword, credentialRule); err != nil {
		return err
	}
	if err := account.SetPassword(newPassword); err != nil {
		return err
	}
	s.logger.Info().Int64("account_id", account.ID).Msg("password changed")
	return nil
}

// RemoveUser deletes a customer account. Owners cannot be removed. Removing
// the logged in account also ends sess.
func (s *UserService) RemoveUser(ctx context.Context, sess *domain.Session, account *domain.Account) error {
	if account == nil {
		return domain.ErrAccountNotFound
	}
	if account.IsOwner() {
		return fmt.Errorf("%w: owner cannot be removed", domain.ErrPermissionDenied)
	}

	idx := -1
	for i, a := range s.accounts {
		if a == account {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("remove %q: %w", account.Username, domain.ErrAccountNotFound)
	}

	s.accounts = append(s.accounts[:idx], s.accounts[idx+1:]...)
	if sess != nil && sess.Is(account) {
		sess.End()
	}
	s.logger.Info().Int64("account_id", account.ID).Str("username", account.Username).Msg("account removed")
	return nil
}

func (s *UserService) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	for _, a := range s.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, fmt.Errorf("account %d: %w", id, domain.ErrAccountNotFound)
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if a := s.lookup(username); a != nil {
		return a, nil
	}
	return nil, fmt.Errorf("account %q: %w", username, domain.ErrAccountNotFound)
}

// List returns the accounts in insertion order.
func (s *UserService) List(ctx context.Context) []*domain.Account {
	out := make([]*domain.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Restore imports stored accounts. Existing usernames win, owner records are
// skipped and unknown roles are registered as customers. It returns how
// many accounts were added.
func (s *UserService) Restore(ctx context.Context, store ports.AccountStore) (int, error) {
	records, err := store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("restore accounts: %w", err)
	}

	added := 0
	for _, rec := range records {
		log := s.logger.With().Int("line", rec.Line).Str("username", rec.Username).Logger()

		if s.lookup(rec.Username) != nil {
			log.Debug().Msg("skipping existing user")
			continue
		}

		role, known := domain.ParseRole(rec.Role)
		if known && role == domain.RoleOwner {
			log.Warn().Msg("skipping owner account in users file (manual creation required)")
			continue
		}

		if _, err := s.Register(ctx, rec.Username, rec.Password); err != nil {
			log.Warn().Err(err).Msg("failed to register loaded user")
			continue
		}
		if !known {
			log.Warn().Str("role", rec.Role).Msg("loaded user with unknown role as CUSTOMER")
		}
		added++
	}

	s.logger.Info().Int("loaded", added).Int("records", len(records)).Msg("accounts restored")
	return added, nil
}

// Persist writes the whole directory to store.
func (s *UserService) Persist(ctx context.Context, store ports.AccountStore) error {
	if err := store.Save(ctx, s.List(ctx)); err != nil {
		return fmt.Errorf("persist accounts: %w", err)
	}
	return nil
}
