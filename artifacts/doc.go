// Package artifacts renders the files derived from a provisioned domain:
// the administrator boot.properties, the deployment readme and nodemanager.properties.
package artifacts
