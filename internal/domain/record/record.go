package record

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Record is one entity as a field name -> value mapping.
// Records are treated as immutable: every helper returns a new map.
type Record map[string]any

// ID is the canonical string form of a record identifier.
type ID string

// ID extracts the identifier stored under key.
// Returns false if the field is missing, nil, or not a scalar identifier.
func (r Record) ID(key string) (ID, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", false
	}
	return FormatID(v)
}

// FormatID converts an identifier value to its canonical form.
// Integral floats (as decoded from JSON) format without a fractional part.
func FormatID(v any) (ID, bool) {
	switch id := v.(type) {
	case ID:
		return id, id != ""
	case string:
		return ID(id), id != ""
	case int:
		return ID(strconv.Itoa(id)), true
	case int32:
		return ID(strconv.FormatInt(int64(id), 10)), true
	case int64:
		return ID(strconv.FormatInt(id, 10)), true
	case uint:
		return ID(strconv.FormatUint(uint64(id), 10)), true
	case uint32:
		return ID(strconv.FormatUint(uint64(id), 10)), true
	case uint64:
		return ID(strconv.FormatUint(id, 10)), true
	case float64:
		if math.IsNaN(id) || math.IsInf(id, 0) {
			return "", false
		}
		return ID(strconv.FormatFloat(id, 'f', -1, 64)), true
	case float32:
		return FormatID(float64(id))
	case json.Number:
		return ID(id.String()), id != ""
	case fmt.Stringer:
		if rv := reflect.ValueOf(id); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "", false
		}
		s := id.String()
		return ID(s), s != ""
	default:
		return "", false
	}
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Merge returns a new record with updates applied on top of r.
func (r Record) Merge(updates map[string]any) Record {
	c := make(Record, len(r)+len(updates))
	for k, v := range r {
		c[k] = v
	}
	for k, v := range updates {
		c[k] = v
	}
	return c
}

// IDs collects identifiers of records in collection order, skipping records without one.
func IDs(records []Record, key string) []ID {
	ids := make([]ID, 0, len(records))
	for _, r := range records {
		if id, ok := r.ID(key); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Find returns the first record whose identifier equals id.
func Find(records []Record, key string, id ID) (Record, bool) {
	for _, r := range records {
		if rid, ok := r.ID(key); ok && rid == id {
			return r, true
		}
	}
	return nil, false
}
