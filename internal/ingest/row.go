package ingest

// Row is one input record keyed by canonical field name. Rows are values:
// With and Without return modified copies and never touch the receiver.
type Row struct {
	keys   []string
	values map[string]string
}

// NewRow pairs keys with values positionally. Keys beyond len(values) get
// empty values; values beyond len(keys) are dropped.
func NewRow(keys, values []string) Row {
	r := Row{values: make(map[string]string, len(keys))}
	for i, k := range keys {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		r = r.set(k, v)
	}
	return r
}

func (r Row) set(key, value string) Row {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
	return r
}

func (r Row) clone() Row {
	c := Row{keys: append([]string(nil), r.keys...), values: make(map[string]string, len(r.values))}
	for k, v := range r.values {
		c.values[k] = v
	}
	return c
}

// Get returns the field value or "" when absent.
func (r Row) Get(key string) string { return r.values[key] }

// Lookup returns the field value and whether the field exists.
func (r Row) Lookup(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether the field exists, even if empty.
func (r Row) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns field names in first-seen order.
func (r Row) Keys() []string { return append([]string(nil), r.keys...) }

// Len returns the number of fields.
func (r Row) Len() int { return len(r.keys) }

// With returns a copy with key set to value.
func (r Row) With(key, value string) Row {
	return r.clone().set(key, value)
}

// WithAll returns a copy with every override applied, in key order of the
// overrides slice (pairs of key, value).
func (r Row) WithAll(pairs ...string) Row {
	c := r.clone()
	for i := 0; i+1 < len(pairs); i += 2 {
		c = c.set(pairs[i], pairs[i+1])
	}
	return c
}

// Without returns a copy lacking the named fields.
func (r Row) Without(keys ...string) Row {
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		drop[k] = true
	}
	c := Row{values: make(map[string]string, len(r.values))}
	for _, k := range r.keys {
		if drop[k] {
			continue
		}
		c = c.set(k, r.values[k])
	}
	return c
}
