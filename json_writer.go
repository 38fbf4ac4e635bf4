package nova2k

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObjectWriter builds a JSON object whose fields keep the order they
// are written in, so JSONL ledgers list them in the Koinly column order.
// The zero value is an empty object.
type jsonObjectWriter struct {
	buf bytes.Buffer
	err error
}

// Append writes key with the JSON encoding of value. After the first error,
// further fields are ignored and MarshalJSON reports it.
func (w *jsonObjectWriter) Append(key string, value interface{}) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	v, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("field %q: %w", key, err)
		return w
	}
	k, _ := json.Marshal(key)
	if w.buf.Len() > 0 {
		w.buf.WriteByte(',')
	}
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.Write(v)
	return w
}

// Optional is Append, except that empty amounts and labels are left out.
func (w *jsonObjectWriter) Optional(key string, value interface{}) *jsonObjectWriter {
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Append(key, value)
}

// MarshalJSON returns the object written so far.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	out := make([]byte, 0, w.buf.Len()+2)
	out = append(out, '{')
	out = append(out, w.buf.Bytes()...)
	return append(out, '}'), nil
}
