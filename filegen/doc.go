// Package filegen writes generated domain files.
//
// Every Write creates the target directory if needed, writes the content to a temporary
// sibling, always releases its handle and renames it over the target. What happens when the
// handle cannot be released cleanly is decided by the generator's WritePolicy.
package filegen
