package convert

// ToPointer returns a pointer to a value of any type
func ToPointer[T any](v T) *T {
	return &v
}

// ToValue returns the value pointed to by a pointer, or the zero value for nil
func ToValue[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

// NilIfEmpty returns nil for an empty string, otherwise a pointer to it
func NilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
