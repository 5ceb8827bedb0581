package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// MarshalSession encodes a snapshot of s. Every session store persists this form.
func MarshalSession(s *Session) ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

// UnmarshalSession decodes data produced by MarshalSession.
// Values come back as: string, bool, int for whole numbers, float64 for other
// numbers, []any for arrays, map[string]any for objects and nil for null.
func UnmarshalSession(data []byte) (*Session, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var s Session
	if err := dec.Decode(&s); err != nil {
		return nil, err
	}
	if s.Values == nil {
		s.Values = make(map[string]any)
	}
	for k, v := range s.Values {
		s.Values[k] = decodeValue(v)
	}
	return &s, nil
}

func decodeValue(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(x.String(), 10, 0); err == nil {
			return int(i)
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case []any:
		for i := range x {
			x[i] = decodeValue(x[i])
		}
		return x
	case map[string]any:
		for k := range x {
			x[k] = decodeValue(x[k])
		}
		return x
	default:
		return v
	}
}
