// Package layout derives the filesystem layout of a domain from its parameters.
package layout
