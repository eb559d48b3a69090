package wlst

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
)

// Names of the objects found in the base template.
const (
	TemplateDomainName      = "base_domain"
	TemplateAdminServerName = "AdminServer"
	TemplateAdminUserName   = "weblogic"

	defaultAuthenticatorClass = "weblogic.security.providers.authentication.DefaultAuthenticator"
)

type sessionState int

const (
	stateIdle sessionState = iota
	stateTemplate
	stateTemplateWritten
	stateDomain
	stateDomainUpdated
)

func (s sessionState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateTemplate:
		return "template open"
	case stateTemplateWritten:
		return "template written"
	case stateDomain:
		return "domain open"
	case stateDomainUpdated:
		return "domain updated"
	default:
		return "unknown"
	}
}

// Session is an offline DomainSession. It is not safe for concurrent use.
type Session struct {
	runner Runner
	log    *slog.Logger

	state   sessionState
	root    *node
	options map[string]string
	home    string
	batch   *batch
	batches int

	// written holds the domains persisted by this session, keyed by domain home.
	written map[string]*node
}

var _ interfaces.DomainSession = (*Session)(nil)

func NewSession(runner Runner, log *slog.Logger) *Session {
	return &Session{
		runner:  runner,
		log:     log,
		written: map[string]*node{},
	}
}

func (s *Session) check(ctx context.Context, op string, allowed ...sessionState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, a := range allowed {
		if s.state == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s with %s", interfaces.ErrSessionState, op, s.state)
}

func (s *Session) nextBatch(kind string) *batch {
	s.batches++
	return newBatch(fmt.Sprintf("%02d-%s", s.batches, kind))
}

func (s *Session) ReadTemplate(ctx context.Context, templatePath string) error {
	if err := s.check(ctx, "readTemplate", stateIdle); err != nil {
		return err
	}

	s.root = baseTemplate()
	s.options = map[string]string{}
	s.batch = s.nextBatch("template")
	s.batch.add("readTemplate(%s)", quote(templatePath))
	s.state = stateTemplate
	return nil
}

func (s *Session) SetOption(ctx context.Context, name, value string) error {
	if err := s.check(ctx, "setOption", stateTemplate); err != nil {
		return err
	}
	s.options[name] = value
	s.batch.add("setOption(%s, %s)", quote(name), quote(value))
	return nil
}

// WriteDomain executes the template batch. The domain is only recorded as written
// when the batch succeeds.
func (s *Session) WriteDomain(ctx context.Context, domainHome string) error {
	if err := s.check(ctx, "writeDomain", stateTemplate); err != nil {
		return err
	}
	if _, exists := s.written[domainHome]; exists && s.options["OverwriteDomain"] != "true" {
		return fmt.Errorf("%w: domain %s already written and OverwriteDomain is not set", interfaces.ErrChildExists, domainHome)
	}

	s.batch.cd("/")
	s.batch.add("writeDomain(%s)", quote(domainHome))
	s.batch.add("closeTemplate()")

	s.log.Debug("Executing template batch", "script", s.batch.name, "domainHome", domainHome)

	if err := s.runner.Run(ctx, s.batch.script()); err != nil {
		return fmt.Errorf("could not write domain %s: %w", domainHome, err)
	}

	s.written[domainHome] = s.domainFromTemplate()
	s.state = stateTemplateWritten
	return nil
}

// CloseTemplate releases the template. A template that was never written is discarded.
func (s *Session) CloseTemplate(ctx context.Context) error {
	if err := s.check(ctx, "closeTemplate", stateTemplate, stateTemplateWritten); err != nil {
		return err
	}
	s.reset()
	return nil
}

// ReadDomain opens a domain written earlier by this session.
func (s *Session) ReadDomain(ctx context.Context, domainHome string) error {
	if err := s.check(ctx, "readDomain", stateIdle); err != nil {
		return err
	}
	domain, ok := s.written[domainHome]
	if !ok {
		return fmt.Errorf("%w: no domain written at %s", interfaces.ErrNoSuchPath, domainHome)
	}

	s.root = domain.clone()
	s.home = domainHome
	s.batch = s.nextBatch("domain")
	s.batch.add("readDomain(%s)", quote(domainHome))
	s.state = stateDomain
	return nil
}

// UpdateDomain executes the domain batch.
func (s *Session) UpdateDomain(ctx context.Context) error {
	if err := s.check(ctx, "updateDomain", stateDomain); err != nil {
		return err
	}

	s.batch.add("updateDomain()")
	s.batch.add("closeDomain()")

	s.log.Debug("Executing domain batch", "script", s.batch.name, "domainHome", s.home)

	if err := s.runner.Run(ctx, s.batch.script()); err != nil {
		return fmt.Errorf("could not update domain %s: %w", s.home, err)
	}

	s.written[s.home] = s.root.clone()
	s.state = stateDomainUpdated
	return nil
}

// CloseDomain releases the domain. Changes not committed by UpdateDomain are discarded.
func (s *Session) CloseDomain(ctx context.Context) error {
	if err := s.check(ctx, "closeDomain", stateDomain, stateDomainUpdated); err != nil {
		return err
	}
	s.reset()
	return nil
}

func (s *Session) reset() {
	s.root = nil
	s.options = nil
	s.home = ""
	s.batch = nil
	s.state = stateIdle
}

func (s *Session) Get(ctx context.Context, address, attribute string) (any, error) {
	if err := s.check(ctx, "get", stateTemplate, stateTemplateWritten, stateDomain, stateDomainUpdated); err != nil {
		return nil, err
	}
	n, _, err := s.root.resolve(address)
	if err != nil {
		return nil, err
	}
	return n.attrs[attribute], nil
}

// Set writes an attribute. Setting Name renames the object.
func (s *Session) Set(ctx context.Context, address, attribute string, value any) error {
	if err := s.check(ctx, "set", stateTemplate, stateDomain); err != nil {
		return err
	}
	n, parent, err := s.root.resolve(address)
	if err != nil {
		return err
	}

	rendered, err := s.batch.value(value)
	if err != nil {
		return fmt.Errorf("could not set %s on %s: %w", attribute, address, err)
	}

	if attribute == "Name" {
		name, ok := value.(string)
		if !ok || name == "" || parent == nil {
			return fmt.Errorf("%w: cannot rename %s to %v", interfaces.ErrSessionState, address, value)
		}
		if err := n.rename(parent, name); err != nil {
			return err
		}
		s.batch.cd(address)
		s.batch.add("set('Name', %s)", rendered)
		// The old address is gone.
		s.batch.cwd = ""
		return nil
	}

	n.attrs[attribute] = value
	s.batch.cd(address)
	s.batch.add("set(%s, %s)", quote(attribute), rendered)
	return nil
}

func (s *Session) List(ctx context.Context, parent, kind string) ([]string, error) {
	if err := s.check(ctx, "ls", stateTemplate, stateTemplateWritten, stateDomain, stateDomainUpdated); err != nil {
		return nil, err
	}
	n, _, err := s.root.resolve(parent)
	if err != nil {
		return nil, err
	}
	return n.names(kind), nil
}

func (s *Session) Create(ctx context.Context, parent, kind, name string) (string, error) {
	if err := s.check(ctx, "create", stateTemplate, stateDomain); err != nil {
		return "", err
	}
	n, _, err := s.root.resolve(parent)
	if err != nil {
		return "", err
	}
	if _, err := n.add(kind, name); err != nil {
		return "", fmt.Errorf("could not create %s under %s: %w", name, parent, err)
	}

	s.batch.cd(parent)
	s.batch.add("create(%s, %s)", quote(name), quote(kind))
	return joinAddress(parent, kind, name), nil
}

func (s *Session) CreateProvider(ctx context.Context, realmPath, name, providerType, baseType string) (string, error) {
	if err := s.check(ctx, "create", stateTemplate, stateDomain); err != nil {
		return "", err
	}
	realm, _, err := s.root.resolve(realmPath)
	if err != nil {
		return "", err
	}

	collection := baseType + "s"
	provider, err := realm.add(collection, name)
	if err != nil {
		return "", fmt.Errorf("could not create provider %s: %w", name, err)
	}
	provider.attrs["ProviderClassName"] = providerType

	s.batch.cd(realmPath)
	s.batch.add("create(%s, %s, %s)", quote(name), quote(providerType), quote(baseType))
	return joinAddress(realmPath, collection, name), nil
}

// SetProviderOrder is not available offline.
func (s *Session) SetProviderOrder(ctx context.Context, realmPath, baseType string, names []string) error {
	if err := s.check(ctx, "set", stateTemplate, stateDomain); err != nil {
		return err
	}
	return interfaces.ErrReorderUnsupported
}

func baseTemplate() *node {
	root := newNode("", "")
	root.ensure("Security", TemplateDomainName).ensure("User", TemplateAdminUserName)
	root.ensure("Server", TemplateAdminServerName).attrs["ListenPort"] = 7001
	return root
}

// domainFromTemplate builds the configuration tree a written template turns into.
func (s *Session) domainFromTemplate() *node {
	domainName := s.options["DomainName"]
	if domainName == "" {
		domainName = TemplateDomainName
	}

	domain := newNode("", "")
	for _, server := range s.root.children["Server"] {
		*domain.ensure("Server", server.name) = *server.clone()
	}

	security := domain.ensure("SecurityConfiguration", domainName)
	realm := security.ensure("Realms", interfaces.DefaultRealm)
	authenticator := realm.ensure("AuthenticationProviders", "DefaultAuthenticator")
	authenticator.attrs["ControlFlag"] = string(interfaces.ControlFlagRequired)
	authenticator.attrs["ProviderClassName"] = defaultAuthenticatorClass
	return domain
}
