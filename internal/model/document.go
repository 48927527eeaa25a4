package model

import (
	"fmt"
	"time"
)

// IDKey is the field name under which the store reports its opaque
// document identifier.
const IDKey = "_id"

// Document is a schemaless record as stored in (or read from) a collection.
// Raw documents coming out of the store carry the opaque identifier under
// IDKey and native time.Time values; Normalize converts both into
// transport-safe forms.
type Document map[string]any

// Normalize returns a transport-safe copy of a raw stored document:
//   - the opaque identifier, if present, is removed and re-inserted as a
//     string field named "id"
//   - every time.Time value is replaced by its RFC 3339 representation
//   - all other fields pass through unchanged
//
// The input is never mutated. Normalize is idempotent: an already
// normalized document has no identifier or time.Time fields left to convert.
func Normalize(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}

	if raw, ok := out[IDKey]; ok {
		delete(out, IDKey)
		out["id"] = fmt.Sprint(raw)
	}

	for k, v := range out {
		if t, ok := v.(time.Time); ok {
			out[k] = t.Format(time.RFC3339Nano)
		}
	}

	return out
}
