package filter

import (
	"slices"
	"strings"
	"time"

	"github.com/kailas-cloud/wareflow/internal/domain/record"
	"github.com/kailas-cloud/wareflow/internal/domain/view/schema"
	"github.com/kailas-cloud/wareflow/internal/domain/view/value"
)

// Config maps filter keys to raw filter values as entered by the caller.
// An empty or blank value leaves that filter inactive.
type Config map[string]string

// Set is a compiled, AND-combined set of active predicates.
type Set struct {
	search     string
	searchable []string
	conditions []Condition
}

// Condition is a single active filter clause.
type Condition struct {
	kind  schema.FilterKind
	field string
	match string
	num   float64
	date  time.Time
}

// Field returns the record field the condition reads.
func (c Condition) Field() string { return c.field }

// Kind returns the filter kind.
func (c Condition) Kind() schema.FilterKind { return c.kind }

// Compile turns a filter config into a predicate Set under the given schema.
// Keys the schema does not declare are returned as unknown and otherwise ignored.
// Numeric and date bounds that do not parse are dropped (unconstrained).
func Compile(cfg Config, s schema.Schema) (Set, []string) {
	set := Set{searchable: s.Searchable()}
	var unknown []string

	for key, raw := range cfg {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if key == schema.SearchKey {
			set.search = value.Lower(raw)
			continue
		}
		decl, ok := s.Filter(key)
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		if c, ok := compileCondition(decl, raw); ok {
			set.conditions = append(set.conditions, c)
		}
	}

	slices.Sort(unknown)
	return set, unknown
}

func compileCondition(decl schema.Filter, raw string) (Condition, bool) {
	c := Condition{kind: decl.Kind(), field: decl.Field()}
	switch decl.Kind() {
	case schema.Categorical:
		c.match = raw
	case schema.NumericMin, schema.NumericMax:
		n, ok := value.ParseNumber(raw)
		if !ok {
			return Condition{}, false
		}
		c.num = n
	case schema.DateFrom, schema.DateTo:
		d, ok := value.ParseDate(raw)
		if !ok {
			return Condition{}, false
		}
		c.date = d
	default:
		return Condition{}, false
	}
	return c, true
}

// Matches evaluates a single record against cfg. Unknown keys are ignored.
func Matches(r record.Record, cfg Config, s schema.Schema) bool {
	set, _ := Compile(cfg, s)
	return set.Matches(r)
}

// IsEmpty reports whether the set constrains nothing.
func (s Set) IsEmpty() bool {
	return s.search == "" && len(s.conditions) == 0
}

// Conditions returns the active non-search conditions.
func (s Set) Conditions() []Condition { return s.conditions }

// Search returns the normalized search term ("" when inactive).
func (s Set) Search() string { return s.search }

// Matches reports whether r satisfies every active predicate.
func (s Set) Matches(r record.Record) bool {
	if s.search != "" && !s.matchesSearch(r) {
		return false
	}
	for _, c := range s.conditions {
		if !c.matches(r) {
			return false
		}
	}
	return true
}

func (s Set) matchesSearch(r record.Record) bool {
	for _, f := range s.searchable {
		if strings.Contains(value.Lower(value.String(r[f])), s.search) {
			return true
		}
	}
	return false
}

func (c Condition) matches(r record.Record) bool {
	v := r[c.field]
	switch c.kind {
	case schema.Categorical:
		if value.IsNull(v) {
			return false
		}
		return value.String(v) == c.match
	case schema.NumericMin:
		n, ok := value.Number(v)
		return ok && n >= c.num
	case schema.NumericMax:
		n, ok := value.Number(v)
		return ok && n <= c.num
	case schema.DateFrom:
		d, ok := value.Date(v)
		return !ok || !d.Before(c.date)
	case schema.DateTo:
		d, ok := value.Date(v)
		return !ok || !d.After(c.date)
	}
	return true
}
