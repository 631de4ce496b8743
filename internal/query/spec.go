package query

import (
	"fmt"
	"net/url"
	"strings"
)

// Operator identifies a comparison applied by a filter condition.
type Operator string

// Comparison operators accepted in bracketed query parameters,
// e.g. price[gte]=500.
const (
	OpEq  Operator = "eq"
	OpGt  Operator = "gt"
	OpGte Operator = "gte"
	OpLt  Operator = "lt"
	OpLte Operator = "lte"
)

// Reserved parameter names that carry pagination and formatting directives
// rather than filter data.
const (
	ParamPage   = "page"
	ParamSort   = "sort"
	ParamLimit  = "limit"
	ParamFields = "fields"
)

// Defaults applied when a directive is absent or unparseable.
const (
	DefaultPage  = 1
	DefaultLimit = 100

	// DefaultSortField orders list results newest-first when the caller
	// does not ask for an explicit order.
	DefaultSortField = "createdAt"

	// VersionField is the schema-version bookkeeping field excluded from
	// results unless the caller selects fields explicitly.
	VersionField = "__v"
)

// Condition is a single filter constraint on one field. Multiple conditions
// on the same field conjoin (AND); they are never deduplicated here.
type Condition struct {
	Field string
	Op    Operator
	Value any
}

// SortKey is one element of an ordered sort specification.
type SortKey struct {
	Field string
	Desc  bool
}

// Projection describes which fields appear in result records. When Exclude
// is false the listed fields are included (plus the record identifier, which
// the storage layer never drops); when true they are excluded.
type Projection struct {
	Fields  []string
	Exclude bool
}

// Spec is the complete, storage-agnostic description of a list query.
// A Spec is built once per request and treated as immutable afterwards.
type Spec struct {
	Conditions []Condition
	SortKeys   []SortKey
	Projection Projection
	Page       int
	Limit      int
}

// Skip returns the number of leading records to discard for the requested
// page. Pages beyond the end of the collection yield an empty result set
// rather than an error.
func (s Spec) Skip() int64 {
	return int64(s.Page-1) * int64(s.Limit)
}

// Values re-derives the raw query parameter mapping this Spec was built
// from, where the mapping is unambiguous. Feeding the result back through
// FromValues produces an equivalent Spec.
func (s Spec) Values() url.Values {
	v := url.Values{}

	for _, c := range s.Conditions {
		key := c.Field
		if c.Op != OpEq {
			key = fmt.Sprintf("%s[%s]", c.Field, c.Op)
		}
		v.Add(key, fmt.Sprint(c.Value))
	}

	if len(s.SortKeys) > 0 {
		keys := make([]string, 0, len(s.SortKeys))
		for _, k := range s.SortKeys {
			if k.Desc {
				keys = append(keys, "-"+k.Field)
			} else {
				keys = append(keys, k.Field)
			}
		}
		v.Set(ParamSort, strings.Join(keys, ","))
	}

	// An exclusion projection is the implicit default and has no parameter
	// form, so only inclusion lists are emitted.
	if !s.Projection.Exclude && len(s.Projection.Fields) > 0 {
		v.Set(ParamFields, strings.Join(s.Projection.Fields, ","))
	}

	v.Set(ParamPage, fmt.Sprint(s.Page))
	v.Set(ParamLimit, fmt.Sprint(s.Limit))

	return v
}
