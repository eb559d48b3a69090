package provisioner

import (
	"context"
	"fmt"
	"path"

	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
	"github.com/ruteri/weblogic-domain-provisioner/realm"
	"github.com/ruteri/weblogic-domain-provisioner/sslconf"
)

// Names of the workflow steps, in execution order.
const (
	StepLoadTemplate      = "load-template"
	StepSetOptions        = "set-options"
	StepSave              = "save"
	StepReopen            = "reopen"
	StepConfigureSecurity = "configure-security"
	StepConfigureSSL      = "configure-ssl"
	StepPersist           = "persist"
	StepClose             = "close"
	StepCreateFiles       = "create-files"
)

// Addresses of the base template objects renamed during option setup.
const (
	templateAdminUsers  = "/Security/base_domain/User"
	templateAdminUser   = "weblogic"
	templateAdminServer = "AdminServer"
)

// run is the context of one workflow execution.
type run struct {
	session interfaces.DomainSession
	params  interfaces.ParameterSet
	paths   interfaces.PathLayout
}

type step struct {
	name      string
	narration []string
	from, to  State
	do        func(ctx context.Context, r *run) error
}

var createSteps = []step{
	{name: StepLoadTemplate, narration: []string{"CREATE DOMAIN"}, from: Unconfigured, to: TemplateLoaded, do: loadTemplate},
	{name: StepSetOptions, from: TemplateLoaded, to: OptionsSet, do: setOptions},
	{name: StepSave, narration: []string{"SAVE DOMAIN"}, from: OptionsSet, to: Saved, do: saveDomain},
	{name: StepReopen, narration: []string{"READ DOMAIN"}, from: Saved, to: Reopened, do: reopenDomain},
	{name: StepConfigureSecurity, narration: []string{"SET NODE MANAGER CREDENTIALS", "SET UP LDAP CONFIGURATION"}, from: Reopened, to: SecurityConfigured, do: configureSecurity},
	{name: StepConfigureSSL, narration: []string{"DISABLE HOSTNAME VERIFICATION"}, from: SecurityConfigured, to: SSLConfigured, do: configureSSL},
	{name: StepPersist, narration: []string{"SAVE CHANGES"}, from: SSLConfigured, to: Persisted, do: persistDomain},
	{name: StepClose, from: Persisted, to: Closed, do: closeDomain},
}

// Steps returns the names of the session steps of a create run.
func Steps() []string {
	names := make([]string, 0, len(createSteps))
	for _, s := range createSteps {
		names = append(names, s.name)
	}
	return names
}

func loadTemplate(ctx context.Context, r *run) error {
	return r.session.ReadTemplate(ctx, r.paths.TemplatePath)
}

func setOptions(ctx context.Context, r *run) error {
	options := []struct{ name, value string }{
		{"DomainName", r.params.DomainName},
		{"OverwriteDomain", "true"},
		{"JavaHome", r.params.JavaHome},
		{"ServerStartMode", r.params.ServerStartMode},
	}
	for _, o := range options {
		if err := r.session.SetOption(ctx, o.name, o.value); err != nil {
			return fmt.Errorf("could not set option %s: %w", o.name, err)
		}
	}

	user := path.Join(templateAdminUsers, templateAdminUser)
	if r.params.AdminUsername != templateAdminUser {
		if err := r.session.Set(ctx, user, "Name", r.params.AdminUsername); err != nil {
			return fmt.Errorf("could not set administrator name: %w", err)
		}
		user = path.Join(templateAdminUsers, r.params.AdminUsername)
	}
	if err := r.session.Set(ctx, user, "UserPassword", interfaces.Secret(r.params.AdminPassword)); err != nil {
		return fmt.Errorf("could not set administrator password: %w", err)
	}

	if r.params.AdminServerName != templateAdminServer {
		if err := r.session.Set(ctx, sslconf.ServerPath(templateAdminServer), "Name", r.params.AdminServerName); err != nil {
			return fmt.Errorf("could not rename administration server: %w", err)
		}
	}
	return nil
}

func saveDomain(ctx context.Context, r *run) error {
	if err := r.session.WriteDomain(ctx, r.paths.DomainHome); err != nil {
		return err
	}
	return r.session.CloseTemplate(ctx)
}

func reopenDomain(ctx context.Context, r *run) error {
	return r.session.ReadDomain(ctx, r.paths.DomainHome)
}

func configureSecurity(ctx context.Context, r *run) error {
	security := path.Join("/SecurityConfiguration", r.params.DomainName)
	if err := r.session.Set(ctx, security, "NodeManagerUsername", r.params.NodeManagerUsername); err != nil {
		return fmt.Errorf("could not set node manager username: %w", err)
	}
	if err := r.session.Set(ctx, security, "NodeManagerPasswordEncrypted", interfaces.Secret(r.params.NodeManagerPassword)); err != nil {
		return fmt.Errorf("could not set node manager password: %w", err)
	}

	realmPath := interfaces.RealmPath(r.params.DomainName, interfaces.DefaultRealm)
	provider := realm.ActiveDirectoryProvider(r.params.LDAPProviderName, realm.LDAPConfigFrom(r.params))
	if _, err := realm.Append(ctx, r.session, realmPath, provider); err != nil {
		return err
	}
	return realm.SetControlFlag(ctx, r.session, realmPath, realm.DefaultAuthenticatorName, interfaces.ControlFlagSufficient)
}

func configureSSL(ctx context.Context, r *run) error {
	return sslconf.DisableHostnameVerification(ctx, r.session, r.params.AdminServerName)
}

func persistDomain(ctx context.Context, r *run) error {
	return r.session.UpdateDomain(ctx)
}

func closeDomain(ctx context.Context, r *run) error {
	return r.session.CloseDomain(ctx)
}
