package tokens

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/r4mmer/hathor-wallet-core/storage"
)

// keyPrefix namespaces registered token records in storage.
const keyPrefix = "token:"

// RegistryStore persists the user's registered tokens and exposes them
// as a Reader.
type RegistryStore struct {
	store *storage.Store
}

// NewRegistryStore creates a registry over the given storage.
func NewRegistryStore(store *storage.Store) *RegistryStore {
	return &RegistryStore{store: store}
}

// Register stores rec keyed by its uid. Registering an already-known
// uid overwrites the record.
func (s *RegistryStore) Register(rec Record) error {
	if rec.UID == "" {
		return errors.New("token uid is empty")
	}
	return s.store.SetJSON(keyPrefix+rec.UID, rec)
}

// Unregister removes the record for uid. Unknown uids are a no-op.
func (s *RegistryStore) Unregister(uid string) error {
	return s.store.Delete(keyPrefix + uid)
}

// Registered returns a Reader over the stored records in uid order. The
// snapshot is taken on the first Next call.
func (s *RegistryStore) Registered() Reader {
	return &storeReader{store: s.store}
}

type storeReader struct {
	store  *storage.Store
	loaded bool
	recs   []Record
	pos    int
}

func (r *storeReader) Next(ctx context.Context) (Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, false, err
	}
	if !r.loaded {
		err := r.store.Scan(keyPrefix, func(_ string, value []byte) error {
			var rec Record
			if err := json.Unmarshal(value, &rec); err != nil {
				return err
			}
			r.recs = append(r.recs, rec)
			return nil
		})
		if err != nil {
			return Record{}, false, err
		}
		r.loaded = true
	}
	if r.pos >= len(r.recs) {
		return Record{}, false, nil
	}
	rec := r.recs[r.pos]
	r.pos++
	return rec, true, nil
}
