// Package provisioner drives the domain provisioning workflow.
//
// A create run executes a fixed sequence of steps against an administrative session:
//
//	load-template -> set-options -> save -> reopen -> configure-security -> configure-ssl -> persist -> close
//
// followed by generation of the derived files. The first failing step halts the run. Steps
// are never retried and applied steps are never rolled back; whatever earlier steps wrote
// to disk stays there. A relayout run opens no session and only regenerates the files.
//
// A Provisioner owns its session and performs at most one run.
//
// When an archive is configured every generated file is copied into it, followed by a
// manifest listing the copies. Restore rewrites the files of a run from its manifest.
package provisioner
