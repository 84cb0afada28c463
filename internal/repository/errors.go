package repository

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ritik0027/SnapTube-Backend/internal/model"
)

// Postgres error codes the repositories interpret.
const (
	codeUniqueViolation = "23505"
	codeInvalidText     = "22P02"
)

// translate maps a pgx error onto the model error categories, prefixed with op.
func translate(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, model.ErrNotFound)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s: %w (%s)", op, model.ErrConflict, pgErr.ConstraintName)
		case codeInvalidText:
			return fmt.Errorf("%s: %w: %s", op, model.ErrInvalidInput, pgErr.Message)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	var connErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connErr) || errors.As(err, &netErr) || pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return fmt.Errorf("%s: %w: %w", op, model.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
