package accounts

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps linked accounts in process memory. It is meant for
// tests and local development; rows are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]Account // keyed by provider + "\x00" + provider user id
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[string]Account)}
}

func memoryKey(provider, providerUserID string) string {
	return provider + "\x00" + providerUserID
}

func (s *MemoryStore) Link(_ context.Context, account Account) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	key := memoryKey(account.Provider, account.ProviderUserID)

	if existing, ok := s.accounts[key]; ok {
		existing.UserID = account.UserID
		existing.ProviderEmail = account.ProviderEmail
		existing.UpdatedAt = now
		s.accounts[key] = existing
		return existing, nil
	}

	account.ID = newAccountID()
	account.CreatedAt = now
	account.UpdatedAt = now
	s.accounts[key] = account
	return account, nil
}

func (s *MemoryStore) FindByProvider(_ context.Context, provider, providerUserID string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[memoryKey(provider, providerUserID)]
	if !ok {
		return Account{}, accountErrors.New(ErrAccountNotFound).
			WithDetail("provider", provider)
	}
	return account, nil
}

func (s *MemoryStore) ListForUser(_ context.Context, userID string) ([]Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := []Account{}
	for _, account := range s.accounts {
		if account.UserID == userID {
			accounts = append(accounts, account)
		}
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Provider < accounts[j].Provider
	})
	return accounts, nil
}

func (s *MemoryStore) Unlink(_ context.Context, userID, provider string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, account := range s.accounts {
		if account.UserID == userID && account.Provider == provider {
			delete(s.accounts, key)
			return nil
		}
	}
	return accountErrors.New(ErrAccountNotFound).
		WithDetail("provider", provider)
}
