// Package pipeline coordinates chunked, parallel parsing of block-notation
// documents.
//
// It splits a document into segments whose boundaries never fall inside an
// open block, fans segments out to a bounded worker pool, and merges the
// per-segment trees and diagnostics back in document order. An adaptive
// tuner adjusts the segment target and worker count between runs from
// measured chunk durations and heap pressure.
//
// HTML rendering is handled separately by internal/render; this package
// ends at the merged document tree.
package pipeline
