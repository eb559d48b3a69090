// Package wlst implements an offline domain session on top of the platform's WLST interpreter.
//
// Every session call is validated against an in-memory model of the configuration tree and
// recorded as the equivalent WLST command. The recorded commands are executed as two batches:
// the template batch when the domain is written, and the domain batch when it is updated.
// A batch that is never executed leaves no trace on the target system.
package wlst
