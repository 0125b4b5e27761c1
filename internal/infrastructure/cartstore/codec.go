package cartstore

import (
	"encoding/json"
	"fmt"

	"github.com/farmstore/backend/internal/domain/cart"
)

// slotVersion is the current persisted cart payload version. Bump it
// when the line shape changes; old slots then read as empty instead of
// rehydrating garbage.
const slotVersion = 1

// envelope is the versioned wire format for a persisted cart slot
type envelope struct {
	Version int         `json:"version"`
	Lines   []cart.Line `json:"lines"`
}

// encodeSlot serializes cart lines into a versioned payload
func encodeSlot(lines []cart.Line) ([]byte, error) {
	data, err := json.Marshal(envelope{Version: slotVersion, Lines: lines})
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart slot: %w", err)
	}
	return data, nil
}

// decodeSlot deserializes a persisted payload back into cart lines.
// An empty payload reads as an absent slot. A payload that does not
// parse, or carries an unknown version, is reported as corrupt; the
// caller degrades to an empty cart.
func decodeSlot(data []byte) ([]cart.Line, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("corrupt cart slot: %w", err)
	}
	if env.Version != slotVersion {
		return nil, fmt.Errorf("corrupt cart slot: unsupported version %d", env.Version)
	}
	return env.Lines, nil
}
