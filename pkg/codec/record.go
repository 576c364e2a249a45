package codec

// Record is a decoded, named view of a layout's field values. It is a plain
// map: callers own it outright and may mutate it freely between codec calls.
type Record map[string]Value

// Uint returns the named field as an unsigned integer; zero if absent or of
// another kind.
func (r Record) Uint(name string) uint64 { return r[name].Uint() }

// Int returns the named field as a signed integer; zero if absent or of
// another kind.
func (r Record) Int(name string) int64 { return r[name].Int() }

// Float returns the named field as a float; zero if absent or of another
// kind.
func (r Record) Float(name string) float64 { return r[name].Float() }

// Bytes returns a copy of the named byte-string field; nil if absent or of
// another kind.
func (r Record) Bytes(name string) []byte { return r[name].Bytes() }

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	cp := make(Record, len(r))
	for name, v := range r {
		if v.kind == Bytes {
			v = BytesValue(v.b)
		}
		cp[name] = v
	}
	return cp
}

// Equal reports whether two records hold the same fields with equal values.
func (r Record) Equal(o Record) bool {
	if len(r) != len(o) {
		return false
	}
	for name, v := range r {
		ov, ok := o[name]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
