package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX là subset của pgxpool.Pool mà repositories cần.
// *pgxpool.Pool, pgx.Tx và pgxmock pool đều satisfy interface này.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Foreign-key / unique violation codes trả về bởi PostgreSQL
const (
	PgForeignKeyViolation = "23503"
	PgUniqueViolation     = "23505"
)

// IsPgError kiểm tra err có phải *pgconn.PgError với code cho trước không
func IsPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
