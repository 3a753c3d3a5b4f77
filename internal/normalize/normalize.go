// Package normalize collapses related records that the store may return
// either as a single object or as a one-element list.
package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
)

var ErrNotObject = errors.New("normalize: value is neither an object nor a list of objects")

var emptyObject = json.RawMessage(`{}`)

// One returns the first element of list, or the zero value when it is empty.
func One[T any](list []T) T {
	var zero T
	if len(list) == 0 {
		return zero
	}
	return list[0]
}

// UnwrapJSON turns `{...}` into itself, `[x, ...]` into x, and `[]`, `null`
// or empty input into `{}`.
func UnwrapJSON(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return emptyObject, nil
	}

	switch trimmed[0] {
	case '{':
		return trimmed, nil
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return emptyObject, nil
		}
		first := bytes.TrimSpace(list[0])
		if len(first) == 0 || first[0] != '{' {
			return nil, ErrNotObject
		}
		return first, nil
	}
	return nil, ErrNotObject
}

// Record decodes raw into T after unwrapping. The second result is false
// when raw carried no record at all.
func Record[T any](raw json.RawMessage) (T, bool, error) {
	var out T

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("[]")) {
		return out, false, nil
	}

	obj, err := UnwrapJSON(trimmed)
	if err != nil {
		return out, false, err
	}
	if err := json.Unmarshal(obj, &out); err != nil {
		return out, false, err
	}
	return out, true, nil
}
