package artifacts

import (
	"fmt"

	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
)

const (
	BootPropertiesFile = "boot.properties"
	ReadmeFile         = "readme.txt"
)

// DeploymentReadme describes the app/plan convention of the application home.
const DeploymentReadme = "This directory contains deployment files and deployment plans.\n" +
	"To set-up a deployment, create a directory with the name of the application.\n" +
	"Subsequently, create two sub-directories called app and plan.\n" +
	"The app directory contains the deployment artifact.\n" +
	"The plan directory contains the deployment plan."

// RenderBootProperties renders the administrator credentials file read by the admin server at boot.
func RenderBootProperties(ps interfaces.ParameterSet) string {
	return "username=" + ps.AdminUsername + "\npassword=" + ps.AdminPassword
}

// Plan lists the files op generates, in write order.
func Plan(op interfaces.Operation, ps interfaces.ParameterSet, paths interfaces.PathLayout) ([]interfaces.GeneratedFile, error) {
	nodeManager, err := RenderNodeManagerProperties(ps.NodeManagerMode, paths, ps)
	if err != nil {
		return nil, fmt.Errorf("could not render %s: %w", NodeManagerPropertiesFile, err)
	}

	files := []interfaces.GeneratedFile{
		{Dir: paths.ApplicationHome, Name: ReadmeFile, Content: DeploymentReadme},
		{Dir: paths.NodeManagerHome, Name: NodeManagerPropertiesFile, Content: nodeManager},
	}

	switch op {
	case interfaces.OperationCreate:
		boot := interfaces.GeneratedFile{
			Dir:     paths.BootPropertiesDir,
			Name:    BootPropertiesFile,
			Content: RenderBootProperties(ps),
			Secret:  true,
		}
		return append([]interfaces.GeneratedFile{boot}, files...), nil
	case interfaces.OperationRelayout:
		return files, nil
	default:
		return nil, fmt.Errorf("%w: %q", interfaces.ErrUnknownOperation, op)
	}
}
