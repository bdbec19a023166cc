// Package pkgconfig provides a small abstraction for reading configuration values.
//
// Business code depends on the Config interface so it stays easy to test and
// does not care where values come from (file, env, etc). The concrete
// implementation is backed by Viper.
package pkgconfig
