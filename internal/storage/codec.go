package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
)

func encodeSnapshot(s Snapshot) (map[string][]byte, error) {
	out := make(map[string][]byte, 3)
	values := map[string]any{
		KeyTasks:      nonNil(s.Tasks),
		KeyCategories: nonNil(s.Categories),
		KeyReminders:  nonNil(s.Reminders),
	}
	for key, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		out[key] = raw
	}
	return out, nil
}

func decodeKey(key string, raw []byte, s *Snapshot) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var err error
	switch key {
	case KeyTasks:
		err = json.Unmarshal(raw, &s.Tasks)
	case KeyCategories:
		err = json.Unmarshal(raw, &s.Categories)
	case KeyReminders:
		err = json.Unmarshal(raw, &s.Reminders)
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
