// Package main (cmd/domainctl) provisions WebLogic domains.
//
// Commands:
//
//   - create: build a new domain from the base template, wire the Active Directory
//     authenticator into the default realm, disable hostname verification on the
//     administration server and write boot.properties, readme.txt and
//     nodemanager.properties.
//   - relayout: rewrite readme.txt and nodemanager.properties of an existing domain.
//   - layout: print the paths derived from the inputs.
//   - restore: rewrite the files of an archived run, given the manifest id logged by
//     create or relayout.
//   - serve: expose create and relayout over HTTP, one run at a time.
//
// Every input is a flag backed by an environment variable of the same name
// (DOMAIN_NAME, CFG_HOME, NM_MODE, ...). Inputs missing from flags and environment are
// read from --params-file. WLS_HOME and CFG_BASE are accepted from the environment in
// place of WL_HOME and CFG_HOME.
//
// Example usage:
//
//	DOMAIN_NAME=acme CFG_HOME=/u01/config ... domainctl create --archive file:///var/lib/domainctl
//
//	domainctl restore --archive file:///var/lib/domainctl 3f1c...e9
//
//	domainctl --log-json serve --params-file /etc/domainctl/acme.yaml --listen-addr 0.0.0.0:8080
//
// Configuration steps are never retried. A failing step halts the run and the process
// exits non-zero naming the step and the last state reached.
package main
