package interfaces

// PathLayout holds the filesystem locations of a domain.
// It is computed once per run and never recomputed by downstream components.
type PathLayout struct {
	// DomainHome is <CFG_HOME>/domains/<DOMAIN_NAME>.
	DomainHome string
	// ApplicationHome is <CFG_HOME>/applications/<DOMAIN_NAME>, the deployment root.
	ApplicationHome string
	// NodeManagerHome is <DomainHome>/nodemanager.
	NodeManagerHome string

	// TemplatePath is the base domain template to instantiate.
	TemplatePath string
	// BootPropertiesDir is <DomainHome>/servers/<ADMIN_SERVER_NAME>/security.
	BootPropertiesDir string
}
