// Package realm configures the authentication provider chain of a domain's security realm.
//
// Providers are only ever appended. Changing the evaluation order of existing providers is a
// separate, explicit operation (Reorder) which offline sessions refuse with ErrReorderUnsupported.
package realm
