package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fedra-io/fedra/internal/errs"
)

// mapError translates pgx / pgconn native errors into *errs.Error.
// Connection and query errors are passed through with their original
// message intact — this layer categorises, it does not reinterpret.
func mapError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return errs.Wrap(errs.ErrKindNotFound, msg, err)
	}

	// Server-side errors carry SQLSTATE codes. Class 08 is connection,
	// class 28 is authentication; everything else is a query failure.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		kind := errs.ErrKindQueryFailed
		if len(pgErr.Code) >= 2 {
			switch pgErr.Code[:2] {
			case "08", "28":
				kind = errs.ErrKindConnectionFailed
			}
		}
		return errs.Wrap(kind, fmt.Sprintf("%s: %s", msg, pgErr.Message), err)
	}

	// pgxpool wraps DSN parse failures before any dial happens.
	if strings.Contains(err.Error(), "cannot parse") {
		return errs.Wrap(errs.ErrKindInvalidConfig, msg, err)
	}

	// Fallthrough: network, TLS, DNS.
	return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
}
