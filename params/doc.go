// Package params resolves the inputs of a provisioning run.
//
// Inputs are read through a LookupFunc chain: flags and environment, their legacy
// aliases, then an optional YAML file. Resolve checks that the inputs required by the
// operation are present and that names used as path segments stay inside their parent
// directory.
package params
