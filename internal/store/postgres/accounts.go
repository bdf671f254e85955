package postgres

import (
	"context"
	"errors"
	"fmt"

	"signupform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountsStore struct {
	pool *pgxpool.Pool
}

func NewAccountsStore(pool *pgxpool.Pool) *AccountsStore {
	return &AccountsStore{pool: pool}
}

// CreateAccount inserts a new account. An empty displayName is stored as NULL.
func (s *AccountsStore) CreateAccount(ctx context.Context, email, displayName, passwordHash string) (domain.Account, error) {
	const q = `
		INSERT INTO accounts (email, display_name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, display_name, created_at
	`

	a, err := scanAccount(s.pool.QueryRow(ctx, q, email, nullIfEmpty(displayName), passwordHash))
	if err != nil {
		return domain.Account{}, mapAccountWriteError(err)
	}
	return a, nil
}

func (s *AccountsStore) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	const q = `
		SELECT id, email, display_name, created_at
		FROM accounts
		WHERE id = $1
	`

	var idUUID pgtype.UUID
	if err := idUUID.Scan(id); err != nil {
		return domain.Account{}, domain.ErrNotFound
	}

	a, err := scanAccount(s.pool.QueryRow(ctx, q, idUUID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Account{}, domain.ErrNotFound
		}
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}
	return a, nil
}

func scanAccount(row pgx.Row) (domain.Account, error) {
	var (
		a           domain.Account
		idUUID      pgtype.UUID
		displayText pgtype.Text
	)
	if err := row.Scan(&idUUID, &a.Email, &displayText, &a.CreatedAt); err != nil {
		return domain.Account{}, err
	}
	a.ID = uuidOrEmpty(idUUID)
	a.DisplayName = textOrEmpty(displayText)
	return a, nil
}

func mapAccountWriteError(err error) error {
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) && pgerr.Code == "23505" {
		if pgerr.ConstraintName == "accounts_email_uq" {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("unique violation (%s): %w", pgerr.ConstraintName, err)
	}
	return fmt.Errorf("create account: %w", err)
}
