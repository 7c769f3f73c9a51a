// Package cache stores serialized calculation results keyed by a hash of
// the loan input.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/iwvelando/mortgage-payoff/pkg/amortization"
	"github.com/iwvelando/mortgage-payoff/pkg/constants"
)

// Cache is a string key/value store for calculation results. A miss is
// reported through the boolean, not an error.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

// keySource tags the input with its mode so the two variants never collide.
type keySource struct {
	Mode  string             `json:"mode"`
	Input amortization.Input `json:"input"`
}

// Key derives the cache key for a loan input from its canonical JSON form.
func Key(in amortization.Input) (string, error) {
	if in == nil {
		return "", amortization.ErrUnknownInput
	}

	data, err := json.Marshal(keySource{Mode: in.Mode(), Input: in})
	if err != nil {
		return "", fmt.Errorf("failed to encode cache key source: %w", err)
	}
	return constants.CacheKeyPrefix + strconv.FormatUint(xxhash.Sum64(data), 16), nil
}
