package accounts

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/arest/oauthkit/errx"
)

var accountErrors = errx.NewRegistry("ACCOUNTS")

// Error codes returned by this package.
var (
	ErrAccountNotFound = accountErrors.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Linked account not found")
	ErrStore           = accountErrors.Register("STORE", errx.TypeInternal, http.StatusInternalServerError, "Account store operation failed")
)

// Account links a local user to an identity at an external provider.
type Account struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	Provider       string    `db:"provider" json:"provider"`
	ProviderUserID string    `db:"provider_user_id" json:"provider_user_id"`
	ProviderEmail  string    `db:"provider_email" json:"provider_email,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Store persists provider links. Link is an upsert on
// (provider, provider_user_id): relinking the same external identity
// updates the existing row instead of creating a duplicate.
type Store interface {
	Link(ctx context.Context, account Account) (Account, error)
	FindByProvider(ctx context.Context, provider, providerUserID string) (Account, error)
	ListForUser(ctx context.Context, userID string) ([]Account, error)
	Unlink(ctx context.Context, userID, provider string) error
}

func newAccountID() string {
	return uuid.NewString()
}
