package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	dialectPostgres = "postgres"
	tableName       = "reservations"
)

var columns = []any{
	"id", "user_id", "library_name", "isbn", "state",
	"staging_at", "staged_at", "reserved_at", "completed_at",
}

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

func (r *PostgresRepo) Create(ctx context.Context, res *Reservation) error {
	const query = `
	INSERT INTO reservations (user_id, library_name, isbn, state, staging_at)
	VALUES ($1, $2, $3, $4, now())
	RETURNING id, staging_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.QueryRow(timeoutCtx, query, res.UserID, res.LibraryName, res.ISBN, res.State).Scan(&res.ID, &res.StagingAt)
}

func (r *PostgresRepo) GetByID(ctx context.Context, userID string, id int64) (Reservation, error) {
	const query = `
	SELECT id, user_id, library_name, isbn, state, staging_at, staged_at, reserved_at, completed_at
	FROM reservations
	WHERE id = $1 AND user_id = $2
	LIMIT 1
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := scanReservation(r.db.QueryRow(timeoutCtx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Reservation{}, ErrNotFound
		}
		return Reservation{}, err
	}
	return res, nil
}

func (r *PostgresRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Reservation, int, error) {
	listSQL, listArgs, err := buildListQuery(userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	countSQL, countArgs, err := buildCountQuery(userID)
	if err != nil {
		return nil, 0, err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int
	if err := r.db.QueryRow(timeoutCtx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(timeoutCtx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, res)
	}
	return out, total, rows.Err()
}

func buildListQuery(userID string, limit, offset int) (string, []any, error) {
	if limit < 0 || offset < 0 {
		return "", nil, fmt.Errorf("invalid page window limit=%d offset=%d", limit, offset)
	}
	return goqu.Dialect(dialectPostgres).
		From(tableName).
		Select(columns...).
		Where(goqu.C("user_id").Eq(userID)).
		Order(goqu.I("staging_at").Desc(), goqu.I("id").Desc()).
		Limit(uint(limit)).
		Offset(uint(offset)).
		Prepared(true).
		ToSQL()
}

func buildCountQuery(userID string) (string, []any, error) {
	return goqu.Dialect(dialectPostgres).
		From(tableName).
		Select(goqu.COUNT("*")).
		Where(goqu.C("user_id").Eq(userID)).
		Prepared(true).
		ToSQL()
}

func scanReservation(row pgx.Row) (Reservation, error) {
	var res Reservation
	err := row.Scan(
		&res.ID, &res.UserID, &res.LibraryName, &res.ISBN, &res.State,
		&res.StagingAt, &res.StagedAt, &res.ReservedAt, &res.CompletedAt,
	)
	return res, err
}
