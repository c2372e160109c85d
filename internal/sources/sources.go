// Package sources ingests the flat-file collaborators: the hotel-listing
// scrape export, the manual research sheet, and the unionization directory.
// Adapters normalize sentinel zeros to nulls and drop rows with malformed
// identifiers; they do no reconciliation of their own.
package sources

import "errors"

// ErrMissingRequiredSource indicates a declared source file is unreachable.
// This is fatal: the run aborts before producing any output, never a
// partial set.
var ErrMissingRequiredSource = errors.New("required source is unreachable")
