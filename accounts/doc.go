// Package accounts stores which external provider identities are
// linked to which local users.
//
// A linked account records the provider name and the user's identifier
// at that provider, never the provider's tokens. Two implementations
// of Store are provided: SQLStore on Postgres for production and
// MemoryStore for tests.
//
//	store, err := accounts.NewSQLStore(ctx, os.Getenv("DATABASE_URL"))
//	acct, err := store.Link(ctx, accounts.Account{
//		UserID:         user.ID,
//		Provider:       "github",
//		ProviderUserID: info.GetUsername().(string),
//	})
//
// Link is an upsert keyed on (provider, provider_user_id), so
// completing the connect flow twice for the same external identity
// moves the link rather than duplicating it.
package accounts
