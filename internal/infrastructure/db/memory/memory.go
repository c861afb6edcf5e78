// Package memory holds the process-local store used when no database is
// configured. Each container guards its own state with a mutex, so ids handed
// out as count+1 are unique and dense even under concurrent requests.
package memory

import (
	"context"
	"sync"

	"github.com/cohost-ai/rental-api/internal/core/domain"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.users[user.Email] = *user
	stored := *user
	return &stored, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

type PropertyRepository struct {
	mu    sync.RWMutex
	props []domain.Property
}

// NewPropertyRepository returns a catalog preloaded with seed.
func NewPropertyRepository(seed []domain.Property) *PropertyRepository {
	props := make([]domain.Property, len(seed))
	copy(props, seed)
	return &PropertyRepository{props: props}
}

func (r *PropertyRepository) Insert(_ context.Context, p domain.Property) (domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = len(r.props) + 1
	r.props = append(r.props, p)
	return p, nil
}

func (r *PropertyRepository) Get(_ context.Context, id int) (domain.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.props {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Property{}, domain.ErrPropertyNotFound
}

func (r *PropertyRepository) List(_ context.Context) ([]domain.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Property, len(r.props))
	copy(out, r.props)
	return out, nil
}

type LedgerRepository struct {
	mu      sync.RWMutex
	entries []domain.LedgerEntry
}

func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{}
}

// Append stores a private copy of entry so later changes by the caller do not
// leak into the ledger.
func (r *LedgerRepository) Append(_ context.Context, entry domain.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.SetSequence(len(r.entries) + 1)
	r.entries = append(r.entries, cloneEntry(entry))
	return nil
}

func (r *LedgerRepository) List(_ context.Context) ([]domain.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.LedgerEntry, len(r.entries))
	for i, e := range r.entries {
		out[i] = cloneEntry(e)
	}
	return out, nil
}

func cloneEntry(e domain.LedgerEntry) domain.LedgerEntry {
	switch v := e.(type) {
	case *domain.Booking:
		c := *v
		return &c
	case *domain.Deposit:
		c := *v
		return &c
	default:
		return e
	}
}
