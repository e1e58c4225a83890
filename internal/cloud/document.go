// Package cloud stores per-user documents outside the local database.
// A document is a flat set of JSON fields that can be merged one field at a
// time, so writers never have to send the whole document.
package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// UsersCollection holds one document per account, keyed by user id.
const UsersCollection = "users"

// Well-known fields of a users document.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPhotoURL    = "photoUrl"
	FieldCalorieGoal = "dailyCalorieGoal"
	FieldIngredients = "ingredients"
)

// ErrNotFound is returned by Get when the document does not exist.
var ErrNotFound = errors.New("document not found")

// DocumentStore reads and partially updates documents.
type DocumentStore interface {
	// Merge sets the given fields, leaving other fields untouched. The
	// document is created when missing.
	Merge(ctx context.Context, collection, id string, fields map[string]any) error
	// Get returns every field of the document.
	Get(ctx context.Context, collection, id string) (Document, error)
}

// Document maps field names to their JSON encoding.
type Document map[string]json.RawMessage

// Decode unmarshals field into v. It reports false when the field is absent.
func (d Document) Decode(field string, v any) (bool, error) {
	raw, ok := d[field]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("decode field %q: %w", field, err)
	}
	return true, nil
}

func encodeFields(fields map[string]any) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(fields))
	for name, v := range fields {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode field %q: %w", name, err)
		}
		out[name] = raw
	}
	return out, nil
}
