package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the PostgreSQL SQLSTATE raised by the users.email constraint.
const uniqueViolation = "23505"

const selectUser = `SELECT id, email, password_hash, fullname, address, created_at FROM users`

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, u *User) error {
	const query = `
	INSERT INTO users (id, email, password_hash, fullname, address)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at
	`
	id := uuid.NewString()

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, id, u.Email, u.PasswordHash, u.Fullname, u.Address).Scan(&u.CreatedAt)

	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr) && pgErr.Code == uniqueViolation:
		return ErrAlreadyExists
	case err != nil:
		return err
	}
	u.ID = id
	return nil
}

func (r *PostgresRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.getOne(ctx, selectUser+` WHERE email = $1`, email)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return User{}, ErrNotFound
	}
	return r.getOne(ctx, selectUser+` WHERE id = $1`, id)
}

func (r *PostgresRepo) getOne(ctx context.Context, query string, arg any) (User, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var u User
	err := r.db.QueryRow(timeoutCtx, query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Fullname, &u.Address, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}
