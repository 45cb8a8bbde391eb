package doctree

import "fmt"

// DiagnosticKind classifies a recoverable problem found while scanning or
// parsing. Diagnostics never abort the pipeline.
type DiagnosticKind int

const (
	DiagUnclosedBlock DiagnosticKind = iota
	DiagUnknownKeyword
	DiagDuplicateKeyword
	DiagMalformedCompound
	DiagInvalidAttribute
	DiagMalformedRuby
	DiagWorkerFailure
	DiagCacheFailure
)

// String returns a stable name for the diagnostic kind.
func (k DiagnosticKind) String() string {
	switch k {
	case DiagUnclosedBlock:
		return "missing closing marker"
	case DiagUnknownKeyword:
		return "unknown keyword"
	case DiagDuplicateKeyword:
		return "duplicate keyword"
	case DiagMalformedCompound:
		return "malformed compound keyword"
	case DiagInvalidAttribute:
		return "invalid attribute value"
	case DiagMalformedRuby:
		return "malformed ruby"
	case DiagWorkerFailure:
		return "segment processing failed"
	case DiagCacheFailure:
		return "cache failure"
	}
	return "unknown"
}

// Diagnostic records a non-fatal structural or syntax issue. Immutable once
// created.
type Diagnostic struct {
	Line       int // 1-based source line
	Kind       DiagnosticKind
	Message    string
	Suggestion string // optional fix hint
}

func (d Diagnostic) String() string {
	if d.Suggestion != "" {
		return fmt.Sprintf("line %d: %s: %s (%s)", d.Line, d.Kind, d.Message, d.Suggestion)
	}
	return fmt.Sprintf("line %d: %s: %s", d.Line, d.Kind, d.Message)
}
