package event

import "encoding/json"

// DecodePayload converts an event payload to its concrete type T. Events
// published in-process carry the typed *PayloadV1 struct directly, so the
// assertion succeeds without copying. Payloads that arrived as generic maps
// (replayed dead-letter entries, tests building events by hand) are
// converted through a JSON round trip instead.
func DecodePayload[T any](input interface{}) (T, error) {
	if typed, ok := input.(T); ok {
		return typed, nil
	}

	var decoded T
	raw, err := json.Marshal(input)
	if err != nil {
		return decoded, err
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return decoded, err
	}
	return decoded, nil
}
