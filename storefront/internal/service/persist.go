package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"food-storefront/storefront/internal/storage"

	"github.com/google/uuid"
)

const persistTimeout = 3 * time.Second

type envelope struct {
	Version int             `json:"version"`
	SavedAt time.Time       `json:"savedAt"`
	State   json.RawMessage `json:"state"`
}

// Migration rewrites a state payload saved at version N into version N+1.
type Migration func(json.RawMessage) (json.RawMessage, error)

// Persister saves one store's state under a namespaced key, wrapped in a
// versioned envelope.
type Persister struct {
	store      StateStore
	key        string
	version    int
	migrations map[int]Migration
}

func NewPersister(store StateStore, namespace, name string, version int) *Persister {
	return &Persister{
		store:      store,
		key:        "storefront:" + namespace + ":" + name,
		version:    version,
		migrations: make(map[int]Migration),
	}
}

// WithMigration registers the upgrade from version `from` to `from+1`.
func (p *Persister) WithMigration(from int, m Migration) *Persister {
	p.migrations[from] = m
	return p
}

func (p *Persister) Key() string {
	return p.key
}

// Load decodes persisted state into out. It returns false when nothing usable
// was stored; incompatible payloads are deleted.
func (p *Persister) Load(ctx context.Context, out interface{}) (bool, error) {
	if p == nil {
		return false, nil
	}
	raw, err := p.store.Load(ctx, p.key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", p.key, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Version == 0 {
		p.discard(ctx, "unreadable envelope")
		return false, nil
	}

	if env.Version > p.version {
		p.discard(ctx, fmt.Sprintf("version %d is newer than %d", env.Version, p.version))
		return false, nil
	}

	state := env.State
	for v := env.Version; v < p.version; v++ {
		migrate, ok := p.migrations[v]
		if !ok {
			p.discard(ctx, fmt.Sprintf("no migration from version %d", v))
			return false, nil
		}
		if state, err = migrate(state); err != nil {
			p.discard(ctx, fmt.Sprintf("migration from version %d failed: %v", v, err))
			return false, nil
		}
	}
	if err := json.Unmarshal(state, out); err != nil {
		p.discard(ctx, "state does not match current shape")
		return false, nil
	}
	return true, nil
}

func (p *Persister) Save(ctx context.Context, state interface{}) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode %s: %w", p.key, err)
	}
	raw, err := json.Marshal(envelope{Version: p.version, SavedAt: time.Now().UTC(), State: payload})
	if err != nil {
		return fmt.Errorf("encode %s: %w", p.key, err)
	}
	if err := p.store.Save(ctx, p.key, raw); err != nil {
		return fmt.Errorf("save %s: %w", p.key, err)
	}
	return nil
}

// persist detaches from the caller's context so an aborted request still saves.
func (p *Persister) persist(state interface{}) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := p.Save(ctx, state); err != nil {
		log.Printf("ERROR: persist state: %v", err)
	}
}

func (p *Persister) discard(ctx context.Context, reason string) {
	log.Printf("WARN: discarding persisted %s: %s", p.key, reason)
	if err := p.store.Delete(ctx, p.key); err != nil {
		log.Printf("ERROR: delete %s: %v", p.key, err)
	}
}

const clientIDKey = "storefront:client-id"

// ResolveClientID returns the configured id, or the id stored by an earlier
// run, or a fresh one that is stored for the next run.
func ResolveClientID(ctx context.Context, store StateStore, configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	raw, err := store.Load(ctx, clientIDKey)
	if err == nil && len(raw) > 0 {
		return string(raw), nil
	}
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return "", fmt.Errorf("load client id: %w", err)
	}
	id := uuid.NewString()
	if err := store.Save(ctx, clientIDKey, []byte(id)); err != nil {
		return "", fmt.Errorf("save client id: %w", err)
	}
	return id, nil
}
