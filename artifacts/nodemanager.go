package artifacts

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
)

// NodeManagerPropertiesFile is the name of the node manager configuration file.
const NodeManagerPropertiesFile = "nodemanager.properties"

// ModePlain is the node manager mode without a secure listener.
const ModePlain = "plain"

// PropertiesVersion is the node manager properties format written by this tool.
const PropertiesVersion = "12.1.2"

type nodeManagerConf struct {
	NodeManagerHome   string
	JavaHome          string
	PropertiesVersion string
}

// Both modes currently render the same properties; the selector is kept so a secure
// listener variant has a single place to diverge.
var nodeManagerTemplates = map[string]*template.Template{
	ModePlain: nodeManagerT,
}

func selectNodeManagerTemplate(mode string) *template.Template {
	if t, ok := nodeManagerTemplates[mode]; ok {
		return t
	}
	return nodeManagerT
}

// RenderNodeManagerProperties renders nodemanager.properties for mode.
func RenderNodeManagerProperties(mode string, paths interfaces.PathLayout, ps interfaces.ParameterSet) (string, error) {
	var buf bytes.Buffer
	err := selectNodeManagerTemplate(mode).Execute(&buf, nodeManagerConf{
		NodeManagerHome:   paths.NodeManagerHome,
		JavaHome:          ps.JavaHome,
		PropertiesVersion: PropertiesVersion,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

var nodeManagerT = template.Must(template.New("nodemanager").Parse(`
DomainsFile={{.NodeManagerHome}}/nodemanager.domains
LogLimit=0
PropertiesVersion={{.PropertiesVersion}}
AuthenticationEnabled=true
NodeManagerHome={{.NodeManagerHome}}
JavaHome={{.JavaHome}}
LogLevel=INFO
DomainsFileEnabled=true
StartScriptName=startWebLogic.sh
ListenAddress=
NativeVersionEnabled=true
ListenPort=5556
LogToStderr=true
SecureListener=false
LogCount=1
StopScriptEnabled=false
QuitEnabled=false
LogAppend=true
StateCheckInterval=500
CrashRecoveryEnabled=true
StartScriptEnabled=true
LogFile={{.NodeManagerHome}}/nodemanager.log
LogFormatter=weblogic.nodemanager.server.LogFormatter
ListenBacklog=50
`[1:]))
