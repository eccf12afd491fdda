package analyticsstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/resto-analytics/internal/domain/analytics"
)

// ValkeyStore caches analytics results in a Valkey-compatible database.
// Keys arrive fully derived from the domain; entries expire server-side
// via SET EX.
type ValkeyStore struct {
	client valkey.Client
}

// NewValkeyStore constructs a store backed by Valkey.
func NewValkeyStore(client valkey.Client) *ValkeyStore {
	return &ValkeyStore{client: client}
}

// Get implements analytics.Store.
func (s *ValkeyStore) Get(ctx context.Context, key string) (analytics.Result, bool, error) {
	cmd := s.client.B().Get().Key(key).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return analytics.Result{}, false, nil
		}
		return analytics.Result{}, false, err
	}
	var result analytics.Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return analytics.Result{}, false, err
	}
	return result, true, nil
}

// Save implements analytics.Store.
func (s *ValkeyStore) Save(ctx context.Context, key string, result analytics.Result, ttl time.Duration) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(key).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

var _ analytics.Store = (*ValkeyStore)(nil)
