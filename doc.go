// Package bn2html converts block-notation documents to HTML.
//
// Block notation is a line-oriented markup: a block opens with a line like
// `[[bold+box color=red[[`, contains free text or nested blocks, and closes
// with a bare `]]` line. Single-line blocks (`[[italic[[ text ]]`), ruby
// annotations (`漢字《かんじ》`), footnotes (`[*note1]`), code and markdown
// islands, and generated tables of contents are all supported.
//
// # Quick Start
//
// Create a converter, convert a document, and close when done:
//
//	conv := bn2html.New()
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, bn2html.Input{
//	    Source: "[[h1[[ Hello ]]\n\nWorld.",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.html", []byte(result.HTML), 0644)
//
// Conversion is tolerant: malformed notation degrades to visible error
// markers and the problems are reported in result.Diagnostics, never as an
// error. Convert fails only on empty input, invalid configuration, or
// context cancellation.
//
// # Conversion Pipeline
//
//  1. Line scanning (marker detection, keyword and attribute parsing)
//  2. Tree building with a TTL-backed block cache for repeated content
//  3. Chunked parallel parsing for large documents, merged in order
//  4. HTML rendering (embedded CSS, syntax highlighting via chroma,
//     markdown islands via goldmark, footnotes, numbered TOC)
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv := bn2html.New(
//	    bn2html.WithTimeout(2 * time.Minute),
//	    bn2html.WithWorkers(4),
//	    bn2html.WithCacheTTL(time.Hour),
//	)
//
// Per-conversion options are passed via Input:
//
//	result, err := conv.Convert(ctx, bn2html.Input{
//	    Source:      content,
//	    Title:       "Report",
//	    CSS:         "body { font-size: 14px; }",
//	    SyntaxStyle: "monokai",
//	    Minify:      true,
//	})
//
// # Parallel Processing
//
// A Converter is not safe for concurrent use. For batch conversion, use
// ConverterPool so each goroutine owns a converter:
//
//	pool := bn2html.NewConverterPool(4)
//	defer pool.Close()
//
//	conv := pool.Acquire()
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
package bn2html
