package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"servioBack/internal/models"
)

const draftTTL = 2 * time.Hour

// DraftStore keeps the quote wizard's accumulating state in Redis, scoped to
// the client session. Each step performs a shallow merge of its partial
// payload over the stored draft, so applying steps one at a time or all at
// once yields the same record for disjoint keys.
type DraftStore struct {
	Redis *redis.Client
}

func draftKey(sessionID string) string {
	return fmt.Sprintf("quote:draft:%s", sessionID)
}

func (s *DraftStore) Get(ctx context.Context, sessionID string) (map[string]json.RawMessage, error) {
	data, err := s.Redis.Get(ctx, draftKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, models.ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}

	var draft map[string]json.RawMessage
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Merge applies a step's partial update over the stored draft and refreshes
// the TTL. Missing drafts start empty.
func (s *DraftStore) Merge(ctx context.Context, sessionID string, step map[string]json.RawMessage) (map[string]json.RawMessage, error) {
	draft, err := s.Get(ctx, sessionID)
	if err != nil && !errors.Is(err, models.ErrDraftNotFound) {
		return nil, err
	}
	draft = MergeDraft(draft, step)

	data, err := json.Marshal(draft)
	if err != nil {
		return nil, err
	}
	if err := s.Redis.Set(ctx, draftKey(sessionID), data, draftTTL).Err(); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *DraftStore) Delete(ctx context.Context, sessionID string) error {
	return s.Redis.Del(ctx, draftKey(sessionID)).Err()
}

// MergeDraft is the shallow merge used at every wizard step: keys in the
// update replace keys in the base, untouched keys survive.
func MergeDraft(base, update map[string]json.RawMessage) map[string]json.RawMessage {
	merged := make(map[string]json.RawMessage, len(base)+len(update))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range update {
		merged[k] = v
	}
	return merged
}

// BuildQuote converts the accumulated draft into the QuoteDetails record the
// submit step persists.
func BuildQuote(draft map[string]json.RawMessage) (models.QuoteDetails, error) {
	data, err := json.Marshal(draft)
	if err != nil {
		return models.QuoteDetails{}, err
	}
	var quote models.QuoteDetails
	if err := json.Unmarshal(data, &quote); err != nil {
		return models.QuoteDetails{}, err
	}
	return quote, nil
}
