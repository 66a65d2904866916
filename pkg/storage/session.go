package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Well-known keys for the session hand-off consumed by the results view.
// The payload carries no schema version.
const (
	SessionResultKey = "session/last_analysis.json"
	SessionIDKey     = "session/last_analysis_id"
)

// SaveSession writes the most recent analysis report and its opaque
// identifier to the well-known keys, replacing any previous session.
func SaveSession(ctx context.Context, store BlobStore, id string, result any) error {
	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session result: %w", err)
	}
	if err := store.Put(ctx, SessionResultKey, payload); err != nil {
		return fmt.Errorf("failed to store session result: %w", err)
	}
	if err := store.Put(ctx, SessionIDKey, []byte(id)); err != nil {
		return fmt.Errorf("failed to store session id: %w", err)
	}
	return nil
}

// LoadSessionID returns the identifier of the last stored analysis.
func LoadSessionID(ctx context.Context, store BlobStore) (string, error) {
	data, err := store.Get(ctx, SessionIDKey)
	if err != nil {
		return "", fmt.Errorf("failed to read session id: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
