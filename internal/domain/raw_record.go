package domain

// RawRecord represents one transaction exactly as returned by the provider.
// The provider does not guarantee a schema: fields may be absent or carry
// wrongly typed values, so the record stays a loose mapping until cleaning.
type RawRecord map[string]interface{}

// Field returns the named value and whether it is present with a non-nil value.
func (r RawRecord) Field(name string) (interface{}, bool) {
	v, ok := r[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// HasColumn reports whether any record in the batch carries the named field,
// even with a null value. This mirrors a column existing in the batch schema.
func HasColumn(records []RawRecord, name string) bool {
	for _, r := range records {
		if _, ok := r[name]; ok {
			return true
		}
	}
	return false
}
