package realm

import (
	"cmp"
	"errors"
	"fmt"
	"net"
	"slices"
	"strconv"
	"strings"

	"github.com/miekg/dns"
)

// SRVPrefix marks an LDAP host that is discovered through DNS SRV records, e.g. srv:corp.example.com.
const SRVPrefix = "srv:"

// DefaultResolver is the local stub resolver.
const DefaultResolver = "127.0.0.53:53"

var ErrNoLDAPServers = errors.New("no LDAP servers found")

// ResolveLDAPHosts expands an srv:<domain> host into the space separated host:port list
// accepted by the authenticator's Host attribute. Any other host is returned unchanged.
//
// Records are ordered by priority, then by descending weight.
func ResolveLDAPHosts(host, resolverAddr string) (string, error) {
	domain, ok := strings.CutPrefix(host, SRVPrefix)
	if !ok {
		return host, nil
	}
	if resolverAddr == "" {
		resolverAddr = DefaultResolver
	}

	records, err := lookupSRV("_ldap._tcp."+dns.Fqdn(domain), resolverAddr)
	if err != nil {
		return "", fmt.Errorf("could not resolve LDAP servers of %s: %w", domain, err)
	}
	if len(records) == 0 {
		return "", fmt.Errorf("%w for %s", ErrNoLDAPServers, domain)
	}

	slices.SortStableFunc(records, func(a, b *dns.SRV) int {
		if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
			return c
		}
		return cmp.Compare(b.Weight, a.Weight)
	})

	hosts := make([]string, 0, len(records))
	for _, srv := range records {
		hosts = append(hosts, net.JoinHostPort(strings.TrimSuffix(srv.Target, "."), strconv.Itoa(int(srv.Port))))
	}
	return strings.Join(hosts, " "), nil
}

func lookupSRV(name, resolverAddr string) ([]*dns.SRV, error) {
	m := new(dns.Msg)
	m.SetQuestion(name, dns.TypeSRV)
	m.RecursionDesired = true

	c := new(dns.Client)
	in, _, err := c.Exchange(m, resolverAddr)
	if err != nil {
		return nil, err
	}
	if in.Rcode != dns.RcodeSuccess && in.Rcode != dns.RcodeNameError {
		return nil, fmt.Errorf("dns query for %s failed: %s", name, dns.RcodeToString[in.Rcode])
	}

	records := make([]*dns.SRV, 0, len(in.Answer))
	for _, answer := range in.Answer {
		if srv, ok := answer.(*dns.SRV); ok {
			records = append(records, srv)
		}
	}
	return records, nil
}
