// Package interfaces defines the types shared by the domain provisioning components,
// separating contracts from their implementations.
//
// # Inputs
//
// ParameterSet is the validated, immutable input of a run, keyed by ParameterName.
// PathLayout holds the filesystem locations derived from it.
//
// # Administrative session
//
// DomainSession is the capability through which a domain template is loaded, saved,
// reopened and configured. Implementations address a hierarchical configuration tree
// with absolute paths such as /SecurityConfiguration/acme/Realms/myrealm.
//
// # Security realm
//
// AuthenticationProviderEntry and ControlFlag model the ordered provider chain of a realm.
//
// # Generated files and archive
//
// GeneratedFile is a (directory, name, content) triple written by the file generator under a
// WritePolicy. ArchiveBackend keeps copies of them addressed by content (ArtifactID).
package interfaces
