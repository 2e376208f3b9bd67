// Package provider defines the interface for upstream inference backends.
// A Backend receives a request body that has already been translated into
// the backend's own format and returns the raw reply. Keeping translation
// out of the backend lets one transport client serve any translator that
// targets the same wire format.
package provider
