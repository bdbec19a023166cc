package pkgconfig

// Config exposes typed getters for configuration values.
//
// Keys use dotted paths ("server.address.http"). Missing keys return the zero
// value for the requested type.
type Config interface {
	GetString(key string) string
	GetInt(key string) int64
	GetBool(key string) bool
	GetFloat(key string) float64
	Close() error
}
