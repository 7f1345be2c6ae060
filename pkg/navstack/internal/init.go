// Package internal contains the shared infrastructure for the navstack
// packages: logging and message localisation.
// Types and functions in this package are not part of the public API.
package internal
