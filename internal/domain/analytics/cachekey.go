package analytics

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"strconv"
)

// cacheKeyPayload mirrors the raw request inputs. Marshaling a struct
// keeps the field order fixed, so the serialization is canonical.
type cacheKeyPayload struct {
	RestaurantID string `json:"restaurant_id"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	MinAmount    string `json:"min_amount"`
	MaxAmount    string `json:"max_amount"`
	StartHour    string `json:"start_hour"`
	EndHour      string `json:"end_hour"`
}

// CacheKey derives the deterministic cache key for a query. It hashes the
// raw, un-defaulted inputs with empty strings standing in for absent
// parameters, so a request that spells a default out explicitly keys
// differently from one that omits it.
func CacheKey(q Query) string {
	payload, _ := json.Marshal(cacheKeyPayload{
		RestaurantID: strconv.FormatInt(q.RestaurantID, 10),
		StartDate:    q.StartDate,
		EndDate:      q.EndDate,
		MinAmount:    q.MinAmount,
		MaxAmount:    q.MaxAmount,
		StartHour:    q.StartHour,
		EndHour:      q.EndHour,
	})
	sum := md5.Sum(payload)
	return "analytics:" + hex.EncodeToString(sum[:])
}
