// Package doctor provides diagnostic and repair functionality for hk's
// hook setup.
//
// The doctor package detects and optionally repairs issues including:
//
//   - Config issues: hooks bound to events without a command (which abort
//     every run of those events), and hooks with a command but no events.
//
//   - Hook-dir issues: hook files under <gitdir>/hooks that exist but are
//     not executable, so they are silently skipped at run time.
//
// # Usage
//
// Run diagnostics:
//
//	err := doctor.Run(ctx, cfg, repo, false)  // check only
//	err := doctor.Run(ctx, cfg, repo, true)   // check and fix
//
// Each [Issue] includes a description and, where repair is possible, the
// fix action applied by --fix (currently: marking hook files executable).
package doctor
