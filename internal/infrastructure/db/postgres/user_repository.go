package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/admarket/portal/internal/core/domain"
)

// DB is the subset of pgxpool.Pool the repository needs; satisfied by
// pgxmock in tests.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository implements ports.UserRepository on PostgreSQL.
type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

const selectUser = `SELECT id, email, password_hash, role, created_at FROM users`

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(r.db.QueryRow(ctx, selectUser+` WHERE email = $1`, email))
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.scanUser(r.db.QueryRow(ctx, selectUser+` WHERE id = $1`, id))
}

// CreateWithProfile inserts the user and its role profile in one
// transaction. The unique email constraint serializes concurrent
// registrations: the loser gets ErrDuplicateEmail, never a partial write.
func (r *UserRepository) CreateWithProfile(ctx context.Context, user *domain.User, profile domain.Profile) (*domain.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	created := *user
	err = tx.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, user.Email, user.PasswordHash, string(user.Role), user.CreatedAt).Scan(&created.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	switch p := profile.(type) {
	case nil:
		if user.Role.Provisionable() {
			return nil, domain.ErrUnsupportedRole
		}
	case *domain.PublisherProfile:
		p.UserID = created.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO publisher_profiles (user_id, display_name, domain, created_at)
			VALUES ($1, $2, NULLIF($3, ''), $4)
			RETURNING id
		`, p.UserID, p.DisplayName, p.Domain, p.CreatedAt).Scan(&p.ID)
	case *domain.AdvertiserProfile:
		p.UserID = created.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO advertiser_profiles (user_id, company_name, created_at)
			VALUES ($1, $2, $3)
			RETURNING id
		`, p.UserID, p.CompanyName, p.CreatedAt).Scan(&p.ID)
	default:
		return nil, domain.ErrUnsupportedRole
	}
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &created, nil
}

func (r *UserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.Role = domain.Role(role)
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
