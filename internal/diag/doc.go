// Package diag defines the diagnostic model shared by every pass of the
// documentation pipeline.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     the lexer, the declaration extractor and the correlator.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// Domain findings (unparsable declarations, orphan comments, unresolved
// @copybrief targets) are diagnostics, never Go errors. Go errors are reserved
// for collaborator failures such as unreadable files.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – compact numeric identifier with a stable string form
//     (LEX1xxx, SYN2xxx, DOC3xxx, IO4xxx, OBS6xxx).
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the source.Span pointing to the issue.
//   - Notes – optional secondary spans (e.g. the competing comment).
//   - Fixes – optional edits (e.g. insert a missing @endcode).
//
// # Emitting diagnostics
//
// Passes receive a diag.Reporter. Use ReportError/ReportWarning/ReportInfo to
// build a diagnostic with notes and call Emit, or call Reporter.Report
// directly. BagReporter aggregates into a Bag which supports sorting,
// deduplication and filtering. Rendering lives in internal/diagfmt.
package diag
