package store

import (
	"fmt"
	"sort"
	"sync"

	"gopkg.in/op/go-logging.v1"

	"kdcsim/internal/crypto"
	"kdcsim/internal/domain"
)

// KeyGenerator produces long-term keys for new registrations.
type KeyGenerator func() (domain.LongTermKey, error)

// KeyRegistry is the KDC's identity → long-term key table.
type KeyRegistry struct {
	mu   sync.RWMutex
	keys map[domain.Identity]domain.LongTermKey

	gen KeyGenerator
	log *logging.Logger
}

// NewKeyRegistry returns an empty registry that draws keys from crypto/rand.
func NewKeyRegistry(log *logging.Logger) *KeyRegistry {
	return NewKeyRegistryWithGenerator(log, crypto.GenerateLongTermKey)
}

// NewKeyRegistryWithGenerator returns an empty registry using gen for new keys.
func NewKeyRegistryWithGenerator(log *logging.Logger, gen KeyGenerator) *KeyRegistry {
	return &KeyRegistry{
		keys: make(map[domain.Identity]domain.LongTermKey),
		gen:  gen,
		log:  log,
	}
}

// Register generates and stores a long-term key for id and returns a copy so
// the caller can provision the participant out of band.
func (r *KeyRegistry) Register(id domain.Identity) (domain.LongTermKey, error) {
	if id == "" {
		return domain.LongTermKey{}, domain.ErrInvalidIdentity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.keys[id]; ok {
		return domain.LongTermKey{}, fmt.Errorf("register %q: %w", id, domain.ErrDuplicateIdentity)
	}
	key, err := r.gen()
	if err != nil {
		return domain.LongTermKey{}, fmt.Errorf("register %q: %w", id, err)
	}
	r.keys[id] = key
	if r.log != nil {
		r.log.Infof("Registered identity %q.", id)
	}
	return key, nil
}

// Lookup returns the long-term key registered for id.
func (r *KeyRegistry) Lookup(id domain.Identity) (domain.LongTermKey, error) {
	r.mu.RLock()
	key, ok := r.keys[id]
	r.mu.RUnlock()
	if !ok {
		return domain.LongTermKey{}, fmt.Errorf("lookup %q: %w", id, domain.ErrUnknownIdentity)
	}
	return key, nil
}

// Identities returns every registered identity in sorted order.
func (r *KeyRegistry) Identities() []domain.Identity {
	r.mu.RLock()
	out := make([]domain.Identity, 0, len(r.keys))
	for id := range r.keys {
		out = append(out, id)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of registered identities.
func (r *KeyRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.keys)
}

// Wipe zeroes and forgets every stored key.
func (r *KeyRegistry) Wipe() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id := range r.keys {
		r.keys[id] = domain.LongTermKey{}
		delete(r.keys, id)
	}
}

// Compile-time assertion that KeyRegistry implements domain.KeyRegistry.
var _ domain.KeyRegistry = (*KeyRegistry)(nil)
