package layout

import (
	"path"

	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
)

// Build computes the path layout for ps. It performs no I/O and depends only on ps.
func Build(ps interfaces.ParameterSet) interfaces.PathLayout {
	domainHome := path.Join(ps.CfgHome, "domains", ps.DomainName)

	return interfaces.PathLayout{
		DomainHome:        domainHome,
		ApplicationHome:   path.Join(ps.CfgHome, "applications", ps.DomainName),
		NodeManagerHome:   path.Join(domainHome, "nodemanager"),
		TemplatePath:      ps.TemplatePath,
		BootPropertiesDir: path.Join(domainHome, "servers", ps.AdminServerName, "security"),
	}
}
