package provisioner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/ruteri/weblogic-domain-provisioner/filegen"
	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
	"github.com/ruteri/weblogic-domain-provisioner/params"
	"github.com/ruteri/weblogic-domain-provisioner/realm"
	"github.com/ruteri/weblogic-domain-provisioner/storage"
	"github.com/ruteri/weblogic-domain-provisioner/wlst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	bootPropertiesPath = "/cfg/domains/acme/servers/AdminServer/security/boot.properties"
	readmePath         = "/cfg/applications/acme/readme.txt"
	nodeManagerPath    = "/cfg/domains/acme/nodemanager/nodemanager.properties"
	realmPath          = "/SecurityConfiguration/acme/Realms/myrealm"
)

var injected = errors.New("injected failure")

func testInputs() map[string]string {
	return map[string]string{
		"DOMAIN_NAME":       "acme",
		"JAVA_HOME":         "/opt/jdk",
		"MW_HOME":           "/opt/mw",
		"WL_HOME":           "/opt/mw/wlserver",
		"FMW_HOME":          "/opt/fmw",
		"CFG_HOME":          "/cfg",
		"ADMIN_SERVER_NAME": "AdminServer",
		"ADMIN_USERNAME":    "weblogic",
		"ADMIN_PASSWORD":    "welcome1",
		"NM_USERNAME":       "nodemanager",
		"NM_PASSWORD":       "nmpass",
		"NM_MODE":           "plain",
		"LDAP_PRINCIPAL":    "cn=svc-wls,dc=corp,dc=example,dc=com",
		"LDAP_PASSWORD":     "ldappass",
		"LDAP_HOST":         "ldap.corp.example.com",
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type scriptRunner struct {
	next   wlst.Runner
	failOn string
}

func (r *scriptRunner) Run(ctx context.Context, script wlst.Script) error {
	if script.Name == r.failOn {
		return injected
	}
	if r.next == nil {
		return nil
	}
	return r.next.Run(ctx, script)
}

func assertMissing(t *testing.T, fs billy.Filesystem, paths ...string) {
	t.Helper()
	for _, p := range paths {
		_, err := fs.Stat(p)
		assert.True(t, os.IsNotExist(err), "%s should not exist", p)
	}
}

func TestProvision_CreateEndToEnd(t *testing.T) {
	ctx := context.Background()
	fs := memfs.New()
	session := wlst.NewSession(&scriptRunner{}, discardLogger())
	p := New(session, filegen.New(fs, interfaces.WritePolicyPropagate, discardLogger()), Options{}, discardLogger())

	require.NoError(t, p.Provision(ctx, interfaces.OperationCreate, params.MapLookup(testInputs())))

	status := p.Status()
	assert.Equal(t, Closed, status.State)
	assert.Equal(t, append(Steps(), StepCreateFiles), status.Completed)
	assert.NoError(t, status.Err)

	nodeManager, err := util.ReadFile(fs, nodeManagerPath)
	require.NoError(t, err)
	assert.Contains(t, strings.Split(string(nodeManager), "\n"), "JavaHome=/opt/jdk")
	assert.Contains(t, strings.Split(string(nodeManager), "\n"), "ListenPort=5556")

	boot, err := util.ReadFile(fs, bootPropertiesPath)
	require.NoError(t, err)
	assert.Equal(t, "username=weblogic\npassword=welcome1", string(boot))

	readme, err := util.ReadFile(fs, readmePath)
	require.NoError(t, err)
	assert.Contains(t, string(readme), "app and plan")

	// Inspect the committed domain.
	require.NoError(t, session.ReadDomain(ctx, "/cfg/domains/acme"))
	chain, err := realm.Describe(ctx, session, realmPath)
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, "DefaultAuthenticator", chain[0].Name)
	assert.Equal(t, "CorpLDAP", chain[1].Name)
	assert.Equal(t, interfaces.ControlFlagSufficient, chain[0].ControlFlag)
	assert.Equal(t, interfaces.ControlFlagSufficient, chain[1].ControlFlag)

	ignored, err := session.Get(ctx, "/Server/AdminServer/SSL/AdminServer", "HostnameVerificationIgnored")
	require.NoError(t, err)
	assert.Equal(t, true, ignored)

	nmUser, err := session.Get(ctx, "/SecurityConfiguration/acme", "NodeManagerUsername")
	require.NoError(t, err)
	assert.Equal(t, "nodemanager", nmUser)
}

func TestProvision_CustomAdministratorNames(t *testing.T) {
	ctx := context.Background()
	inputs := testInputs()
	inputs["ADMIN_SERVER_NAME"] = "acme-admin"
	inputs["ADMIN_USERNAME"] = "ops"

	fs := memfs.New()
	session := wlst.NewSession(&scriptRunner{}, discardLogger())
	p := New(session, filegen.New(fs, interfaces.WritePolicyPropagate, discardLogger()), Options{}, discardLogger())
	require.NoError(t, p.Provision(ctx, interfaces.OperationCreate, params.MapLookup(inputs)))

	require.NoError(t, session.ReadDomain(ctx, "/cfg/domains/acme"))
	servers, err := session.List(ctx, "/", "Server")
	require.NoError(t, err)
	assert.Equal(t, []string{"acme-admin"}, servers)

	boot, err := util.ReadFile(fs, "/cfg/domains/acme/servers/acme-admin/security/boot.properties")
	require.NoError(t, err)
	assert.Equal(t, "username=ops\npassword=welcome1", string(boot))
}

func TestProvision_MissingDomainNameTouchesNothing(t *testing.T) {
	inputs := testInputs()
	delete(inputs, "DOMAIN_NAME")

	fs := memfs.New()
	m := new(wlst.MockSession)
	p := New(m, filegen.New(fs, interfaces.WritePolicyPropagate, discardLogger()), Options{}, discardLogger())

	err := p.Provision(context.Background(), interfaces.OperationCreate, params.MapLookup(inputs))
	require.Error(t, err)

	var missing *interfaces.MissingParameterError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, interfaces.ParamDomainName, missing.Name)

	assert.Empty(t, m.Calls)
	assert.Equal(t, Unconfigured, p.State())
	assertMissing(t, fs, "/cfg", bootPropertiesPath, readmePath, nodeManagerPath)
}

// happyMock returns a session mock on which every call succeeds. When failMethod is set,
// its first call fails with the injected error.
func happyMock(failMethod string) *wlst.MockSession {
	m := new(wlst.MockSession)
	anyArg := mock.Anything

	switch failMethod {
	case "":
	case "ReadTemplate", "WriteDomain", "ReadDomain":
		m.On(failMethod, anyArg, anyArg).Return(injected).Once()
	case "UpdateDomain", "CloseDomain", "CloseTemplate":
		m.On(failMethod, anyArg).Return(injected).Once()
	case "SetOption":
		m.On(failMethod, anyArg, anyArg, anyArg).Return(injected).Once()
	case "Set":
		m.On(failMethod, anyArg, anyArg, anyArg, anyArg).Return(injected).Once()
	case "Create":
		m.On(failMethod, anyArg, anyArg, anyArg, anyArg).Return("", injected).Once()
	case "CreateProvider":
		m.On(failMethod, anyArg, anyArg, anyArg, anyArg, anyArg).Return("", injected).Once()
	default:
		panic("unsupported method " + failMethod)
	}

	m.On("ReadTemplate", anyArg, anyArg).Return(nil)
	m.On("SetOption", anyArg, anyArg, anyArg).Return(nil)
	m.On("Set", anyArg, anyArg, anyArg, anyArg).Return(nil)
	m.On("WriteDomain", anyArg, anyArg).Return(nil)
	m.On("CloseTemplate", anyArg).Return(nil)
	m.On("ReadDomain", anyArg, anyArg).Return(nil)
	m.On("List", anyArg, realmPath, realm.AuthenticationProviders).Return([]string{"DefaultAuthenticator"}, nil)
	m.On("List", anyArg, "/Server/AdminServer", "SSL").Return([]string{}, nil)
	m.On("CreateProvider", anyArg, realmPath, "CorpLDAP", realm.ActiveDirectoryAuthenticator, realm.AuthenticationProvider).
		Return(realmPath+"/AuthenticationProviders/CorpLDAP", nil)
	m.On("Create", anyArg, "/Server/AdminServer", "SSL", "AdminServer").Return("/Server/AdminServer/SSL/AdminServer", nil)
	m.On("UpdateDomain", anyArg).Return(nil)
	m.On("CloseDomain", anyArg).Return(nil)
	return m
}

func methods(m *wlst.MockSession) []string {
	var out []string
	for _, c := range m.Calls {
		out = append(out, c.Method)
	}
	return out
}

func TestCreate_FaultAtEachStepHaltsTheRun(t *testing.T) {
	ps, err := params.Resolve(interfaces.OperationCreate, params.MapLookup(testInputs()))
	require.NoError(t, err)
	paths := interfaces.PathLayout{
		DomainHome:        "/cfg/domains/acme",
		ApplicationHome:   "/cfg/applications/acme",
		NodeManagerHome:   "/cfg/domains/acme/nodemanager",
		TemplatePath:      ps.TemplatePath,
		BootPropertiesDir: "/cfg/domains/acme/servers/AdminServer/security",
	}

	reference := happyMock("")
	require.NoError(t, New(reference, filegen.New(memfs.New(), interfaces.WritePolicyPropagate, discardLogger()), Options{}, discardLogger()).
		Create(context.Background(), ps, paths))
	successTrace := methods(reference)

	tests := []struct {
		step   string
		method string
	}{
		{step: StepLoadTemplate, method: "ReadTemplate"},
		{step: StepSetOptions, method: "SetOption"},
		{step: StepSave, method: "WriteDomain"},
		{step: StepReopen, method: "ReadDomain"},
		{step: StepConfigureSecurity, method: "CreateProvider"},
		{step: StepConfigureSSL, method: "Create"},
		{step: StepPersist, method: "UpdateDomain"},
		{step: StepClose, method: "CloseDomain"},
	}

	for k, tt := range tests {
		t.Run(tt.step, func(t *testing.T) {
			fs := memfs.New()
			m := happyMock(tt.method)
			p := New(m, filegen.New(fs, interfaces.WritePolicyPropagate, discardLogger()), Options{}, discardLogger())

			err := p.Create(context.Background(), ps, paths)
			require.Error(t, err)
			assert.ErrorIs(t, err, injected)

			var stepErr *StepError
			require.True(t, errors.As(err, &stepErr))
			assert.Equal(t, tt.step, stepErr.Step)
			assert.Equal(t, createSteps[k].from, stepErr.State)

			// Steps before k completed, nothing after k ran.
			assert.Equal(t, createSteps[k].from, p.State())
			assert.Equal(t, Steps()[:k], p.Status().Completed)

			trace := methods(m)
			require.NotEmpty(t, trace)
			assert.Equal(t, tt.method, trace[len(trace)-1])
			assert.Equal(t, successTrace[:len(trace)], trace)

			assertMissing(t, fs, bootPropertiesPath, readmePath, nodeManagerPath)
		})
	}
}

func TestCreate_EarlierStepEffectsSurviveLaterFailure(t *testing.T) {
	ps, err := params.Resolve(interfaces.OperationCreate, params.MapLookup(testInputs()))
	require.NoError(t, err)

	fs := memfs.New()
	gen := filegen.New(fs, interfaces.WritePolicyPropagate, discardLogger())
	runner := &scriptRunner{next: wlst.NewDryRunRunner(gen, "/cfg/domains/.provisioning"), failOn: "02-domain"}
	p := New(wlst.NewSession(runner, discardLogger()), gen, Options{}, discardLogger())

	err = p.Create(context.Background(), ps, interfaces.PathLayout{
		DomainHome:        "/cfg/domains/acme",
		ApplicationHome:   "/cfg/applications/acme",
		NodeManagerHome:   "/cfg/domains/acme/nodemanager",
		TemplatePath:      ps.TemplatePath,
		BootPropertiesDir: "/cfg/domains/acme/servers/AdminServer/security",
	})

	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, StepPersist, stepErr.Step)
	assert.Equal(t, SSLConfigured, p.State())

	template, err := util.ReadFile(fs, "/cfg/domains/.provisioning/01-template.py")
	require.NoError(t, err)
	assert.Contains(t, string(template), "writeDomain('/cfg/domains/acme')")

	assertMissing(t, fs, "/cfg/domains/.provisioning/02-domain.py", bootPropertiesPath, readmePath, nodeManagerPath)
}

func TestRelayout(t *testing.T) {
	inputs := map[string]string{
		"DOMAIN_NAME": "acme",
		"JAVA_HOME":   "/opt/jdk",
		"MW_HOME":     "/opt/mw",
		"WLS_HOME":    "/opt/mw/wlserver",
		"FMW_HOME":    "/opt/fmw",
		"CFG_BASE":    "/cfg",
		"NM_MODE":     "ssl",
	}

	fs := memfs.New()
	p := New(nil, filegen.New(fs, interfaces.WritePolicyLogOnly, discardLogger()), Options{}, discardLogger())
	require.NoError(t, p.Provision(context.Background(), interfaces.OperationRelayout, params.MapLookup(inputs)))

	nodeManager, err := util.ReadFile(fs, nodeManagerPath)
	require.NoError(t, err)
	assert.Contains(t, string(nodeManager), "JavaHome=/opt/jdk\n")

	_, err = util.ReadFile(fs, readmePath)
	require.NoError(t, err)
	assertMissing(t, fs, bootPropertiesPath)

	assert.Equal(t, Unconfigured, p.State())
	assert.Equal(t, []string{StepCreateFiles}, p.Status().Completed)
}

func TestRun_SingleUse(t *testing.T) {
	p := New(nil, filegen.New(memfs.New(), interfaces.WritePolicyLogOnly, discardLogger()), Options{}, discardLogger())
	ps := interfaces.ParameterSet{DomainName: "acme", CfgHome: "/cfg", JavaHome: "/opt/jdk"}
	paths := interfaces.PathLayout{ApplicationHome: "/cfg/applications/acme", NodeManagerHome: "/cfg/domains/acme/nodemanager"}

	require.NoError(t, p.Relayout(context.Background(), ps, paths))
	assert.ErrorIs(t, p.Relayout(context.Background(), ps, paths), ErrRunStarted)
}

func TestCreate_RequiresSession(t *testing.T) {
	p := New(nil, filegen.New(memfs.New(), interfaces.WritePolicyLogOnly, discardLogger()), Options{}, discardLogger())
	err := p.Create(context.Background(), interfaces.ParameterSet{}, interfaces.PathLayout{})
	assert.Error(t, err)
	assert.Equal(t, err, p.Status().Err)
}

func TestCreate_StepTimeout(t *testing.T) {
	m := new(wlst.MockSession)
	m.On("ReadTemplate", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(context.DeadlineExceeded)

	p := New(m, filegen.New(memfs.New(), interfaces.WritePolicyPropagate, discardLogger()), Options{StepTimeout: 20 * time.Millisecond}, discardLogger())

	start := time.Now()
	err := p.Create(context.Background(), interfaces.ParameterSet{}, interfaces.PathLayout{TemplatePath: "/t.jar"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, Unconfigured, p.State())
	m.AssertNotCalled(t, "SetOption", mock.Anything, mock.Anything, mock.Anything)
}

type memArchive struct {
	blobs map[string][]byte
	kinds []interfaces.ArtifactKind
	err   error
}

func newMemArchive() *memArchive {
	return &memArchive{blobs: map[string][]byte{}}
}

func (a *memArchive) key(id interfaces.ArtifactID, kind interfaces.ArtifactKind) string {
	return kind.String() + "/" + id.String()
}

func (a *memArchive) Get(ctx context.Context, id interfaces.ArtifactID, kind interfaces.ArtifactKind) ([]byte, error) {
	data, ok := a.blobs[a.key(id, kind)]
	if !ok {
		return nil, interfaces.ErrArtifactNotFound
	}
	return data, nil
}

func (a *memArchive) Put(ctx context.Context, data []byte, kind interfaces.ArtifactKind) (interfaces.ArtifactID, error) {
	id := interfaces.ComputeArtifactID(data)
	if a.err != nil {
		return id, a.err
	}
	a.kinds = append(a.kinds, kind)
	a.blobs[a.key(id, kind)] = append([]byte{}, data...)
	return id, nil
}

func (a *memArchive) Available(ctx context.Context) bool { return a.err == nil }
func (a *memArchive) Name() string                       { return "memory" }
func (a *memArchive) Location() string                   { return "file:///archive" }

func TestCreate_ArchivesGeneratedFiles(t *testing.T) {
	archive := newMemArchive()
	session := wlst.NewSession(&scriptRunner{}, discardLogger())
	p := New(session, filegen.New(memfs.New(), interfaces.WritePolicyPropagate, discardLogger()), Options{Archive: archive}, discardLogger())

	require.NoError(t, p.Provision(context.Background(), interfaces.OperationCreate, params.MapLookup(testInputs())))
	// three generated files, then the manifest
	assert.Equal(t, []interfaces.ArtifactKind{interfaces.KindSecret, interfaces.KindConfig, interfaces.KindConfig, interfaces.KindConfig}, archive.kinds)

	manifestID, err := interfaces.ParseArtifactID(p.Status().ManifestID)
	require.NoError(t, err)
	data, err := archive.Get(context.Background(), manifestID, interfaces.KindConfig)
	require.NoError(t, err)
	manifest, err := storage.ParseManifest(data)
	require.NoError(t, err)

	assert.Equal(t, "acme", manifest.Domain)
	assert.Equal(t, interfaces.OperationCreate, manifest.Operation)
	require.Len(t, manifest.Files, 3)
	assert.Equal(t, bootPropertiesPath, manifest.Files[0].Path)
	assert.Equal(t, interfaces.KindSecret, manifest.Files[0].Kind)
	assert.Equal(t, interfaces.ComputeArtifactID([]byte("username=weblogic\npassword=welcome1")), manifest.Files[0].ID)
	assert.Equal(t, readmePath, manifest.Files[1].Path)
	assert.Equal(t, nodeManagerPath, manifest.Files[2].Path)
}

func TestRelayout_WithoutArchiveHasNoManifest(t *testing.T) {
	p := New(nil, filegen.New(memfs.New(), interfaces.WritePolicyLogOnly, discardLogger()), Options{}, discardLogger())
	ps := interfaces.ParameterSet{DomainName: "acme", CfgHome: "/cfg", JavaHome: "/opt/jdk"}
	paths := interfaces.PathLayout{ApplicationHome: "/cfg/applications/acme", NodeManagerHome: "/cfg/domains/acme/nodemanager"}

	require.NoError(t, p.Relayout(context.Background(), ps, paths))
	assert.Empty(t, p.Status().ManifestID)
}

func TestCreate_ArchiveFailurePolicy(t *testing.T) {
	tests := []struct {
		policy    interfaces.WritePolicy
		expectErr bool
	}{
		{policy: interfaces.WritePolicyLogOnly, expectErr: false},
		{policy: interfaces.WritePolicyPropagate, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			fs := memfs.New()
			archive := newMemArchive()
			archive.err = interfaces.ErrArchiveUnavailable
			session := wlst.NewSession(&scriptRunner{}, discardLogger())
			p := New(session, filegen.New(fs, tt.policy, discardLogger()), Options{Archive: archive}, discardLogger())

			err := p.Provision(context.Background(), interfaces.OperationCreate, params.MapLookup(testInputs()))
			if !tt.expectErr {
				require.NoError(t, err)
				_, err = util.ReadFile(fs, nodeManagerPath)
				assert.NoError(t, err)
				// nothing was archived, so there is nothing to list
				assert.Empty(t, p.Status().ManifestID)
				return
			}

			var stepErr *StepError
			require.True(t, errors.As(err, &stepErr))
			assert.Equal(t, StepCreateFiles, stepErr.Step)
			assert.ErrorIs(t, err, interfaces.ErrArchiveUnavailable)
			// The first file was written before its archive copy failed.
			_, err = util.ReadFile(fs, bootPropertiesPath)
			assert.NoError(t, err)
			assertMissing(t, fs, readmePath)
		})
	}
}

func provisionArchived(t *testing.T, archive interfaces.ArchiveBackend) interfaces.ArtifactID {
	t.Helper()
	session := wlst.NewSession(&scriptRunner{}, discardLogger())
	p := New(session, filegen.New(memfs.New(), interfaces.WritePolicyPropagate, discardLogger()), Options{Archive: archive}, discardLogger())
	require.NoError(t, p.Provision(context.Background(), interfaces.OperationCreate, params.MapLookup(testInputs())))

	id, err := interfaces.ParseArtifactID(p.Status().ManifestID)
	require.NoError(t, err)
	return id
}

func TestRestore_RewritesArchivedRun(t *testing.T) {
	archive := storage.NewFileBackendFS(memfs.New(), "file:///archive", discardLogger())
	manifestID := provisionArchived(t, archive)

	target := memfs.New()
	manifest, err := Restore(context.Background(), archive, filegen.New(target, interfaces.WritePolicyPropagate, discardLogger()), manifestID, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "acme", manifest.Domain)

	boot, err := util.ReadFile(target, bootPropertiesPath)
	require.NoError(t, err)
	assert.Equal(t, "username=weblogic\npassword=welcome1", string(boot))

	nodeManager, err := util.ReadFile(target, nodeManagerPath)
	require.NoError(t, err)
	assert.Contains(t, string(nodeManager), "ListenPort=5556")

	_, err = util.ReadFile(target, readmePath)
	assert.NoError(t, err)
}

func TestRestore_UnusableCopyWritesNothing(t *testing.T) {
	tests := []struct {
		name    string
		damage  func(a *memArchive, key string)
		wantErr error
	}{
		{
			name:    "missing copy",
			damage:  func(a *memArchive, key string) { delete(a.blobs, key) },
			wantErr: interfaces.ErrArtifactNotFound,
		},
		{
			name:    "tampered copy",
			damage:  func(a *memArchive, key string) { a.blobs[key] = []byte("ListenPort=1") },
			wantErr: interfaces.ErrArtifactCorrupt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archive := newMemArchive()
			manifestID := provisionArchived(t, archive)

			data, err := archive.Get(context.Background(), manifestID, interfaces.KindConfig)
			require.NoError(t, err)
			manifest, err := storage.ParseManifest(data)
			require.NoError(t, err)
			last := manifest.Files[len(manifest.Files)-1]
			tt.damage(archive, archive.key(last.ID, last.Kind))

			target := memfs.New()
			_, err = Restore(context.Background(), archive, filegen.New(target, interfaces.WritePolicyPropagate, discardLogger()), manifestID, discardLogger())
			assert.ErrorIs(t, err, tt.wantErr)
			assertMissing(t, target, bootPropertiesPath, readmePath, nodeManagerPath)
		})
	}
}

func TestRestore_UnknownManifest(t *testing.T) {
	_, err := Restore(context.Background(), newMemArchive(), filegen.New(memfs.New(), interfaces.WritePolicyPropagate, discardLogger()),
		interfaces.ComputeArtifactID([]byte("nope")), discardLogger())
	assert.ErrorIs(t, err, interfaces.ErrArtifactNotFound)
}

func TestProvision_NarratesProgressWithoutSecrets(t *testing.T) {
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))

	session := wlst.NewSession(&scriptRunner{}, log)
	p := New(session, filegen.New(memfs.New(), interfaces.WritePolicyPropagate, log), Options{}, log)
	require.NoError(t, p.Provision(context.Background(), interfaces.OperationCreate, params.MapLookup(testInputs())))

	out := logs.String()
	last := -1
	for _, msg := range []string{
		"CREATE PATHS",
		"CREATE DOMAIN",
		"SAVE DOMAIN",
		"READ DOMAIN",
		"SET NODE MANAGER CREDENTIALS",
		"SET UP LDAP CONFIGURATION",
		"DISABLE HOSTNAME VERIFICATION",
		"SAVE CHANGES",
		"CREATE FILES",
		"WRITING FILE boot.properties",
		"WRITING FILE readme.txt",
		"WRITING FILE nodemanager.properties",
	} {
		idx := strings.Index(out, msg)
		require.GreaterOrEqual(t, idx, 0, msg)
		assert.Greater(t, idx, last, msg)
		last = idx
	}

	for _, secret := range []string{"welcome1", "nmpass", "ldappass"} {
		assert.NotContains(t, out, secret)
	}
}

func TestTransition(t *testing.T) {
	state := Unconfigured
	require.NoError(t, transition(&state, Unconfigured, TemplateLoaded))
	assert.Equal(t, TemplateLoaded, state)

	assert.ErrorIs(t, transition(&state, Unconfigured, TemplateLoaded), interfaces.ErrInvalidTransition)
	assert.ErrorIs(t, transition(&state, TemplateLoaded, Saved), interfaces.ErrInvalidTransition)
	assert.Equal(t, TemplateLoaded, state)
}
