package types

import (
	"bytes"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// rawFields holds the top-level keys of a JSON object in file order, with
// values kept exactly as they were read.
type rawFields = orderedmap.OrderedMap[string, json.RawMessage]

// encode marshals v without escaping &, < and >, so values users typed by
// hand are written back as they were.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

func decodeFields(data []byte) (*rawFields, error) {
	fields := orderedmap.New[string, json.RawMessage]()
	if err := fields.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return fields, nil
}

// encodeFields writes fields as a compact JSON object. Values are copied
// verbatim.
func encodeFields(fields *rawFields) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		key, err := encode(pair.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if len(pair.Value) == 0 {
			buf.WriteString("null")
		} else {
			buf.Write(pair.Value)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// overlay lays the typed encoding of an object over the keys it was decoded
// from. Keys keep their original position; keys only in raw are written
// unchanged and keys only in typed are appended.
func overlay(raw *rawFields, typed []byte) ([]byte, error) {
	if raw == nil || raw.Len() == 0 {
		return typed, nil
	}

	known, err := decodeFields(typed)
	if err != nil {
		return nil, err
	}

	out := orderedmap.New[string, json.RawMessage]()
	for pair := raw.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value)
	}
	for pair := known.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value)
	}
	return encodeFields(out)
}
