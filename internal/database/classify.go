package database

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"syscall"

	"github.com/mauv0809/tap-to-win/internal/apperr"
)

// Classify turns a failed statement into an apperr. Errors showing the server
// went away (a stale pooled connection, a refused or reset socket) are
// unavailable. Everything else is internal.
func Classify(op string, err error) *apperr.Error {
	if isConnectionLost(err) {
		return apperr.UnavailableError(op, err)
	}
	return apperr.InternalError(op, err)
}

func isConnectionLost(err error) bool {
	switch {
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.EPIPE):
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
