// Package types defines the shared Config type and the standard error
// kinds returned by the idlmap schema registry, codec, query compiler,
// and translator packages.
package types
