// Package normalize turns the loosely-structured payloads of the events
// backend into domain models. Normalizers are pure functions over raw
// bytes and absorb missing or mis-shaped fields instead of failing; only
// payloads that are not JSON at all produce an error.
package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
)

// placeholder stands in for category and venue labels the payload did
// not carry.
const placeholder = "—"

// lenientUnmarshal decodes raw into v, tolerating fields whose JSON type
// does not match the target. encoding/json keeps decoding past an
// UnmarshalTypeError, so a mis-shaped branch degrades to its zero value
// instead of poisoning the rest of the payload.
func lenientUnmarshal(raw []byte, v any) error {
	err := json.Unmarshal(raw, v)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return nil
	}
	return err
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

type nameHolder struct {
	Name string `json:"name"`
}
