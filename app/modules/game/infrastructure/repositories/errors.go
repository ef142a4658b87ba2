package gamedb

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Sentinel errors for the repository layer. They let callers tell backend
// refusals apart from connectivity problems without importing a driver.
var (
	// ErrAccessDenied indicates the backend rejected the caller.
	ErrAccessDenied = errors.New("access denied")

	// ErrTransport indicates the backend was unreachable or the connection broke.
	ErrTransport = errors.New("transport failure")
)

// classify tags err with ErrAccessDenied or ErrTransport when the cause can be
// recognized. Unrecognized errors are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if code := sqlState(err); code != "" {
		switch {
		case code == "42501", strings.HasPrefix(code, "28"):
			return fmt.Errorf("%w: %w", ErrAccessDenied, err)
		case strings.HasPrefix(code, "08"), strings.HasPrefix(code, "57P"), strings.HasPrefix(code, "53"):
			return fmt.Errorf("%w: %w", ErrTransport, err)
		}
		return err
	}

	var netErr net.Error
	var connErr *pgconn.ConnectError
	switch {
	case errors.As(err, &netErr),
		errors.As(err, &connErr),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return err
}

// sqlState extracts the SQLSTATE from either supported Postgres driver.
func sqlState(err error) string {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C')
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code
	}
	return ""
}
