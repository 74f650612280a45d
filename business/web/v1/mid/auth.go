package mid

import (
	"context"
	"errors"
	"net/http"
	"strings"

	v1 "github.com/nexusbt/nexus/business/web/v1"
	"github.com/nexusbt/nexus/foundation/nexus/accounts"
	"github.com/nexusbt/nexus/foundation/nexus/state"
	"github.com/nexusbt/nexus/foundation/web"
)

// tokenPrefix is the demo bearer scheme. A token is minted for every account
// at registration time and is derived from the username alone.
const tokenPrefix = "demo-token-for-"

// Caller represents the authenticated account attached to a request.
type Caller struct {
	Username string
	Account  accounts.Info
}

type callerKey int

const callerID callerKey = 1

// GetCaller returns the authenticated caller from the context.
func GetCaller(ctx context.Context) (Caller, error) {
	c, ok := ctx.Value(callerID).(Caller)
	if !ok {
		return Caller{}, errors.New("caller value missing from context")
	}
	return c, nil
}

// Authenticate validates the bearer token and resolves it to a ledger
// account. Requests without a valid token never reach the handler.
func Authenticate(st *state.State) web.Middleware {

	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {

		// Create the handler that will be attached in the middleware chain.
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			// Expecting: Bearer demo-token-for-<username>
			authStr := r.Header.Get("Authorization")

			parts := strings.Split(authStr, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return v1.NewRequestError(errors.New("expected authorization header format: Bearer <token>"), http.StatusUnauthorized)
			}

			username, found := strings.CutPrefix(parts[1], tokenPrefix)
			if !found || username == "" {
				return v1.NewRequestError(errors.New("invalid token"), http.StatusUnauthorized)
			}

			acct, err := st.QueryAccount(username)
			if err != nil {
				return v1.NewRequestError(errors.New("unknown account"), http.StatusUnauthorized)
			}

			// Add the caller to the context for use by the handlers.
			ctx = context.WithValue(ctx, callerID, Caller{Username: username, Account: acct})

			// Call the next handler.
			return handler(ctx, w, r)
		}

		return h
	}

	return m
}

// AuthenticateAdmin builds on Authenticate and rejects callers whose account
// does not carry the admin role.
func AuthenticateAdmin(st *state.State) web.Middleware {

	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {

		// Create the handler that will be attached in the middleware chain.
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			c, err := GetCaller(ctx)
			if err != nil {
				return v1.NewRequestError(errors.New("expected authorization header format: Bearer <token>"), http.StatusUnauthorized)
			}

			if !c.Account.Role.IsAdmin() {
				return v1.NewRequestError(errors.New("admin role required"), http.StatusForbidden)
			}

			// Call the next handler.
			return handler(ctx, w, r)
		}

		return h
	}

	return m
}

// Token returns the demo bearer token for a username. Registration handlers
// use it to hand the client its credential.
func Token(username string) string {
	return tokenPrefix + username
}
