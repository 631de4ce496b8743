package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Builder assembles a Spec from raw query parameters through four chainable
// stages: Filter, Sort, LimitFields, and Paginate. Each stage reads only its
// own parameters and replaces its section of the accruing Spec, so the
// stages may run in any order or subset; a freshly built Builder already
// carries valid defaults for every section. Builders are cheap, request-
// scoped values and are not safe for concurrent use.
type Builder struct {
	params url.Values
	spec   Spec
}

// NewBuilder returns a Builder over the given raw parameters, seeded with
// the default sort order, projection, and pagination window.
func NewBuilder(params url.Values) *Builder {
	return &Builder{
		params: params,
		spec: Spec{
			SortKeys:   []SortKey{{Field: DefaultSortField, Desc: true}},
			Projection: Projection{Fields: []string{VersionField}, Exclude: true},
			Page:       DefaultPage,
			Limit:      DefaultLimit,
		},
	}
}

// FromValues runs the canonical pipeline — filter, sort, project, paginate —
// and returns the resulting Spec.
func FromValues(params url.Values) Spec {
	return NewBuilder(params).Filter().Sort().LimitFields().Paginate().Spec()
}

// Filter converts every non-reserved parameter into a filter condition.
// A bare name=value pair becomes an equality match; a bracketed
// name[op]=value pair with op in {gte,gt,lte,lt} becomes a comparison.
// Unknown bracket suffixes are passed through as literal field names for the
// storage engine to reject. Applying Filter repeatedly is idempotent.
func (b *Builder) Filter() *Builder {
	// Parameter maps have no inherent order; keys are walked sorted so the
	// produced conditions are deterministic.
	keys := make([]string, 0, len(b.params))
	for key := range b.params {
		switch key {
		case ParamPage, ParamSort, ParamLimit, ParamFields:
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var conds []Condition
	for _, key := range keys {
		field, op := splitOperator(key)
		for _, raw := range b.params[key] {
			conds = append(conds, Condition{Field: field, Op: op, Value: coerce(raw)})
		}
	}
	b.spec.Conditions = conds
	return b
}

// Sort parses the sort parameter, a comma-separated field list where a
// leading dash marks descending order. Without the parameter the default
// newest-first order stands.
func (b *Builder) Sort() *Builder {
	raw := b.params.Get(ParamSort)
	if raw == "" {
		return b
	}

	var keys []SortKey
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" || field == "-" {
			continue
		}
		if strings.HasPrefix(field, "-") {
			keys = append(keys, SortKey{Field: field[1:], Desc: true})
		} else {
			keys = append(keys, SortKey{Field: field})
		}
	}
	if len(keys) > 0 {
		b.spec.SortKeys = keys
	}
	return b
}

// LimitFields parses the fields parameter into an inclusion projection.
// Without it the projection stays at the default, which hides only the
// schema-version bookkeeping field.
func (b *Builder) LimitFields() *Builder {
	raw := b.params.Get(ParamFields)
	if raw == "" {
		return b
	}

	var fields []string
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field != "" {
			fields = append(fields, field)
		}
	}
	if len(fields) > 0 {
		b.spec.Projection = Projection{Fields: fields}
	}
	return b
}

// Paginate parses the page and limit parameters. Values that are absent,
// non-numeric, or below one degrade to the defaults; this stage never fails.
func (b *Builder) Paginate() *Builder {
	b.spec.Page = positiveInt(b.params.Get(ParamPage), DefaultPage)
	b.spec.Limit = positiveInt(b.params.Get(ParamLimit), DefaultLimit)
	return b
}

// Spec returns the built specification.
func (b *Builder) Spec() Spec {
	return b.spec
}

// splitOperator separates a bracketed comparison suffix from a parameter
// name. Only the four comparison tokens are recognized.
func splitOperator(key string) (string, Operator) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return key, OpEq
	}
	switch op := Operator(key[open+1 : len(key)-1]); op {
	case OpGt, OpGte, OpLt, OpLte:
		return key[:open], op
	}
	return key, OpEq
}

// coerce converts a raw parameter string to the most specific of int64,
// float64, bool, or string. Query values always arrive as text; the storage
// engine compares typed values, so "500" must reach it as a number.
func coerce(raw string) any {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}
	return raw
}

// positiveInt parses raw as a positive integer, falling back to def.
func positiveInt(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
