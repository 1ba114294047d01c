// Package docxscrub removes a configurable set of invisible or otherwise
// unwanted Unicode characters from the text content of DOCX documents.
//
// A DOCX file is a ZIP container holding XML parts. docxscrub rewrites only
// the text-bearing parts (the main document body, headers, footers,
// footnotes, endnotes, and comments) and copies every other entry through
// byte for byte, preserving entry order, compression method, and metadata.
// Within a rewritten part, only the character content of run text nodes is
// touched; element structure, attributes, and ordering are preserved.
//
// # Basic Usage
//
// To scrub a file on disk:
//
//	set, err := docxscrub.LoadCharset("charset.json")
//	if err != nil {
//		...
//	}
//	summary, err := docxscrub.Process("report.docx", "report_cleaned.docx", set)
//
// To scrub an in-memory container:
//
//	out, summary, err := docxscrub.Scrub(data, set)
//
// The charset is a JSON object keyed by the character itself or by U+XXXX
// escape notation, with a human-readable description as the value. See
// [ParseCharset] for the accepted shapes.
//
// # Failure Semantics
//
// A malformed text-bearing part aborts the whole run; Process never leaves
// a partially written output file behind. A part whose root element is not
// recognized degrades to a verbatim copy and is recorded as a warning in
// the [Summary] rather than risking a corrupting rewrite.
//
// # Security Considerations
//
// The package includes built-in protection against oversized allocations
// and decompression bombs via configurable [Limits]. Limits are enforced
// while reading text-bearing parts; pass-through entries are copied in
// their stored compressed form and never inflated.
package docxscrub
