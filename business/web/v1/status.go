package v1

import (
	"errors"
	"net/http"

	"github.com/nexusbt/nexus/foundation/nexus/accounts"
	"github.com/nexusbt/nexus/foundation/nexus/catalogue"
	"github.com/nexusbt/nexus/foundation/nexus/credit"
	"github.com/nexusbt/nexus/foundation/nexus/state"
)

// Status maps the ledger error kinds to HTTP status codes. Every kind is
// recoverable at the caller boundary.
func Status(err error) int {
	switch {
	case errors.Is(err, accounts.ErrExists),
		errors.Is(err, catalogue.ErrDuplicateName),
		errors.Is(err, catalogue.ErrDuplicateContent):
		return http.StatusConflict

	case errors.Is(err, accounts.ErrNotFound),
		errors.Is(err, catalogue.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, catalogue.ErrForbidden),
		errors.Is(err, state.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, accounts.ErrInsufficientFunds),
		errors.Is(err, catalogue.ErrDownloadLimit),
		errors.Is(err, catalogue.ErrNotActive),
		errors.Is(err, catalogue.ErrInvalidFile),
		errors.Is(err, accounts.ErrInvalidUsername),
		errors.Is(err, credit.ErrInvalidSize),
		errors.Is(err, state.ErrNoPendingTransactions):
		return http.StatusBadRequest
	}

	return http.StatusBadRequest
}
