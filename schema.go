package wareflow

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/kailas-cloud/wareflow/internal/domain/record"
	"github.com/kailas-cloud/wareflow/internal/domain/view/field"
	"github.com/kailas-cloud/wareflow/internal/domain/view/schema"
	"github.com/kailas-cloud/wareflow/internal/domain/view/value"
)

const tagKey = "wareflow"

var timeType = reflect.TypeFor[time.Time]()

// schemaMeta holds parsed struct tag metadata, cached per View.
//
// Tag format: `wareflow:"<field>,<kind>[,<option>...]"` where kind is one of
// id, string, numeric, date and options are:
//
//	search      include the field in free-text search
//	filter      categorical filter keyed by the field name
//	min=<key>   numeric lower bound filter
//	max=<key>   numeric upper bound filter
//	from=<key>  date lower bound filter
//	to=<key>    date upper bound filter
type schemaMeta struct {
	typ    reflect.Type
	idIdx  int
	fields []fieldMapping
	schema schema.Schema
}

type fieldMapping struct {
	structIdx int
	name      string
	kind      field.Kind
}

// parseSchema reflects on T and builds a view schema named name.
func parseSchema[T any](name string) (*schemaMeta, error) {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("wareflow: type %s is not a struct", t)
	}

	meta := &schemaMeta{typ: t, idIdx: -1}
	var (
		idField    string
		fields     []field.Field
		searchable []string
		filters    []schema.Filter
	)

	for i := range t.NumField() {
		f := t.Field(i)
		tag := f.Tag.Get(tagKey)
		if tag == "" || tag == "-" {
			continue
		}
		parts := strings.Split(tag, ",")
		if len(parts) < 2 || parts[0] == "" {
			return nil, fmt.Errorf("wareflow: tag on field %s needs a name and a kind", f.Name)
		}
		fname, kindTag := parts[0], parts[1]

		kind, err := fieldKind(f, kindTag)
		if err != nil {
			return nil, err
		}
		if kindTag == "id" {
			if meta.idIdx != -1 {
				return nil, fmt.Errorf("wareflow: duplicate id tag on field %s", f.Name)
			}
			meta.idIdx = i
			idField = fname
		}

		fd, err := field.New(fname, kind)
		if err != nil {
			return nil, fmt.Errorf("wareflow: field %s: %w", f.Name, err)
		}
		fields = append(fields, fd)
		meta.fields = append(meta.fields, fieldMapping{structIdx: i, name: fname, kind: kind})

		for _, opt := range parts[2:] {
			flt, search, err := applyOption(fname, opt)
			if err != nil {
				return nil, fmt.Errorf("wareflow: field %s: %w", f.Name, err)
			}
			if search {
				searchable = append(searchable, fname)
				continue
			}
			filters = append(filters, flt)
		}
	}

	if meta.idIdx == -1 {
		return nil, fmt.Errorf("wareflow: no field with `wareflow:\"...,id\"` tag in %s", t)
	}

	s, err := schema.New(name, idField, fields, searchable, filters)
	if err != nil {
		return nil, fmt.Errorf("wareflow: schema for %s: %w", t, err)
	}
	meta.schema = s
	return meta, nil
}

// fieldKind maps a kind tag to a field kind, checking the Go type can hold it.
func fieldKind(f reflect.StructField, kindTag string) (field.Kind, error) {
	switch kindTag {
	case "id":
		switch {
		case isNumber(f.Type):
			return field.Numeric, nil
		case f.Type.Kind() == reflect.String:
			return field.String, nil
		}
	case "string":
		if f.Type.Kind() == reflect.String {
			return field.String, nil
		}
	case "numeric":
		if isNumber(f.Type) {
			return field.Numeric, nil
		}
	case "date":
		if f.Type == timeType || (f.Type.Kind() == reflect.Pointer && f.Type.Elem() == timeType) {
			return field.Date, nil
		}
	default:
		return "", fmt.Errorf("wareflow: unknown kind %q on field %s", kindTag, f.Name)
	}
	return "", fmt.Errorf("wareflow: field %s of type %s cannot be %s", f.Name, f.Type, kindTag)
}

// applyOption parses one tag option into a filter, or reports a search flag.
func applyOption(fieldName, opt string) (schema.Filter, bool, error) {
	if opt == "search" {
		return schema.Filter{}, true, nil
	}
	if opt == "filter" {
		flt, err := schema.NewFilter(fieldName, schema.Categorical, fieldName)
		return flt, false, err
	}

	key, val, ok := strings.Cut(opt, "=")
	if !ok || val == "" {
		return schema.Filter{}, false, fmt.Errorf("unknown option %q", opt)
	}
	kinds := map[string]schema.FilterKind{
		"min":  schema.NumericMin,
		"max":  schema.NumericMax,
		"from": schema.DateFrom,
		"to":   schema.DateTo,
	}
	kind, ok := kinds[key]
	if !ok {
		return schema.Filter{}, false, fmt.Errorf("unknown option %q", opt)
	}
	flt, err := schema.NewFilter(val, kind, fieldName)
	return flt, false, err
}

// toRecord converts a typed struct to a Record using schema metadata.
func (m *schemaMeta) toRecord(item any) record.Record {
	v := reflect.ValueOf(item)
	r := make(record.Record, len(m.fields))
	for _, fm := range m.fields {
		r[fm.name] = fieldValue(v.Field(fm.structIdx), fm.kind)
	}
	return r
}

// fromRecord converts a Record back to a typed struct using schema metadata.
// Missing or unparseable values leave the zero value.
func (m *schemaMeta) fromRecord(r record.Record) any {
	v := reflect.New(m.typ).Elem()
	for _, fm := range m.fields {
		raw, ok := r[fm.name]
		if !ok || value.IsNull(raw) {
			continue
		}
		dst := v.Field(fm.structIdx)
		switch fm.kind {
		case field.String:
			dst.SetString(value.String(raw))
		case field.Numeric:
			if n, ok := value.Number(raw); ok {
				setFloat(dst, n)
			}
		case field.Date:
			if tm, ok := value.Date(raw); ok {
				if dst.Kind() == reflect.Pointer {
					dst.Set(reflect.ValueOf(&tm))
				} else {
					dst.Set(reflect.ValueOf(tm))
				}
			}
		}
	}
	return v.Interface()
}

func fieldValue(v reflect.Value, kind field.Kind) any {
	switch kind {
	case field.String:
		return v.String()
	case field.Numeric:
		switch v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return v.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return v.Uint()
		default:
			return v.Float()
		}
	case field.Date:
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return nil
			}
			v = v.Elem()
		}
		tm, _ := v.Interface().(time.Time)
		if tm.IsZero() {
			return nil
		}
		return tm
	}
	return nil
}

func isNumber(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func setFloat(v reflect.Value, f float64) {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		v.SetFloat(f)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.SetInt(int64(f))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v.SetUint(uint64(f))
	}
}
