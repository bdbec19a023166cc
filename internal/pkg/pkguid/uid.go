package pkguid

// StringID generates unique string identifiers.
type StringID interface {
	// Generate returns a new unique identifier as a string.
	Generate() string
}

// NumberID generates unique numeric identifiers.
type NumberID interface {
	// Generate returns a new unique identifier as an int64.
	Generate() int64
}
