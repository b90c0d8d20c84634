package session

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tableName = "sessions"

var dialect = goqu.Dialect("postgres")

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

func (r *PostgresRepo) Create(ctx context.Context, s *Session) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	query, args, err := dialect.Insert(tableName).
		Rows(goqu.Record{
			"id":         s.ID,
			"user_id":    s.UserID,
			"token_hash": s.TokenHash,
			"expires_at": s.ExpiresAt,
		}).
		Returning("created_at").
		Prepared(true).
		ToSQL()
	if err != nil {
		return err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.QueryRow(timeoutCtx, query, args...).Scan(&s.CreatedAt)
}

// GetByTokenHash only returns sessions that have not yet expired.
func (r *PostgresRepo) GetByTokenHash(ctx context.Context, tokenHash string) (Session, error) {
	query, args, err := liveSessionQuery(tokenHash)
	if err != nil {
		return Session{}, err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var s Session
	err = r.db.QueryRow(timeoutCtx, query, args...).Scan(&s.ID, &s.UserID, &s.TokenHash, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	return s, err
}

func (r *PostgresRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	n, err := r.delete(ctx, goqu.C("token_hash").Eq(tokenHash))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) CleanupExpired(ctx context.Context) (int64, error) {
	return r.delete(ctx, goqu.C("expires_at").Lt(goqu.L("now()")))
}

func (r *PostgresRepo) delete(ctx context.Context, where goqu.Expression) (int64, error) {
	query, args, err := dialect.Delete(tableName).Where(where).Prepared(true).ToSQL()
	if err != nil {
		return 0, err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func liveSessionQuery(tokenHash string) (string, []any, error) {
	return dialect.From(tableName).
		Select("id", "user_id", "token_hash", "expires_at", "created_at").
		Where(
			goqu.C("token_hash").Eq(tokenHash),
			goqu.C("expires_at").Gt(goqu.L("now()")),
		).
		Limit(1).
		Prepared(true).
		ToSQL()
}
