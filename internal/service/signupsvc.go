package service

import (
	"context"
	"errors"
	"strings"

	"signupform/internal/domain"
	"signupform/internal/validate"
)

type AccountsStore interface {
	CreateAccount(ctx context.Context, email, displayName, passwordHash string) (domain.Account, error)
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)
}

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

type SignupInput struct {
	Email       string
	Password    string
	DisplayName *string
}

type SignupService struct {
	Accounts AccountsStore
	Hasher   PasswordHasher
}

// Check runs the validator registered for field against value.
func (s *SignupService) Check(field, value string) (validate.Result, error) {
	fn, ok := validate.Lookup(field)
	if !ok {
		return validate.Result{}, domain.ErrNotFound
	}
	return fn(value), nil
}

// Validate checks every signup field and reports all rejected fields at once.
func (s *SignupService) Validate(in SignupInput) error {
	fields := map[string]string{}
	if r := validate.Email(in.Email); !r.OK {
		fields[validate.FieldEmail] = r.Message
	}
	if r := validate.Password(in.Password); !r.OK {
		fields[validate.FieldPassword] = r.Message
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}

func (s *SignupService) Register(ctx context.Context, in SignupInput) (domain.Account, error) {
	if err := s.Validate(in); err != nil {
		return domain.Account{}, err
	}
	if s.Accounts == nil || s.Hasher == nil {
		return domain.Account{}, errors.New("signup service: storage not configured")
	}

	displayName, _ := validate.DisplayName(in.DisplayName)

	passwordHash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return domain.Account{}, err
	}

	// Lower-cased only for storage so uniqueness ignores case.
	email := strings.ToLower(in.Email)

	return s.Accounts.CreateAccount(ctx, email, displayName, passwordHash)
}

func (s *SignupService) Get(ctx context.Context, id string) (domain.Account, error) {
	if s.Accounts == nil {
		return domain.Account{}, errors.New("signup service: storage not configured")
	}
	return s.Accounts.GetAccountByID(ctx, id)
}
