package storage

import (
	"encoding/json"
	"fmt"
)

// Envelope wraps every stored document with a schema version so field-shape
// changes can be migrated lazily on read. Writers always emit the current
// version; readers accept any version they know how to migrate.
type Envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// wrap encodes a document into a versioned envelope
func wrap(version int, doc any) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return json.Marshal(Envelope{Version: version, Data: data})
}

// unwrap decodes a stored value into its envelope. Values written before
// envelopes existed decode as version 1 with the raw payload as data.
func unwrap(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Version > 0 {
		return env, nil
	}
	// Pre-envelope payload
	return Envelope{Version: 1, Data: raw}, nil
}
