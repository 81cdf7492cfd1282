package metadata

import "sort"

// Record is an ordered mapping of front-matter keys to values. Key order is
// document order, which display and quick-filter inference depend on. A nil
// Record reads as empty everywhere.
type Record struct {
	keys   []string
	values map[string]Value
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]Value)}
}

// FromMap builds a record from a plain map, ordering keys alphabetically
// since the source carries no order of its own.
func FromMap(m map[string]interface{}) *Record {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r := NewRecord()
	for _, k := range keys {
		r.Set(k, FromAny(m[k]))
	}
	return r
}

// Set stores a value, preserving the key's first insertion position.
func (r *Record) Set(key string, v Value) {
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Get returns the value for key, or an absent value when the key is missing
// or the record is nil.
func (r *Record) Get(key string) Value {
	if r == nil {
		return Value{}
	}
	return r.values[key]
}

// Len returns the number of keys.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Keys returns the keys in document order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.keys...)
}

// First returns the first key/value pair in document order.
func (r *Record) First() (string, Value, bool) {
	if r.Len() == 0 {
		return "", Value{}, false
	}
	key := r.keys[0]
	return key, r.values[key], true
}

// Clone returns an independent copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := &Record{
		keys:   append([]string(nil), r.keys...),
		values: make(map[string]Value, len(r.values)),
	}
	for k, v := range r.values {
		out.values[k] = v
	}
	return out
}
