// Package tempfile securely creates and manages temporary files and
// directories.
//
// The library distinguishes two kinds of temporary files with very
// different guarantees:
//
//   - Anonymous files ([Anonymous], [AnonymousIn]) either never get a name
//     in the filesystem at all (Linux O_TMPFILE), have their only name
//     removed immediately after creation (other Unix), or are marked
//     delete-on-close (Windows). The OS reclaims them when the last handle
//     closes, no matter how the process exits. They are reliable even when
//     a pathological temporary file cleaner patrols the directory and are
//     the preferred variant.
//
//   - Named files ([NamedFile]) keep a path alive for the lifetime of the
//     resource. Cleanup is the caller's responsibility (defer Close or
//     Cleanup) and does not survive a crash; the path can also be deleted
//     or swapped by an aggressive cleaner. Use them only when something
//     else needs to see the file by name, and verify reopened handles with
//     [NamedFile.Reopen], which detects a swapped path.
//
// All creation goes through an atomic exclusive-create primitive plus a
// retry loop over freshly generated random names, so racing processes can
// never be handed the same file.
package tempfile
