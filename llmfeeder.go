// Package llmfeeder converts web pages into clean Markdown for pasting into
// LLM chat interfaces. It extracts the readable content of a page (or of a
// selection), stitches in the content of embedded iframes, converts the
// result to Markdown and optionally merges or archives many pages at once.
//
// This package contains domain types, interfaces and the pure text
// functions of the pipeline following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., goquery/, htmltomarkdown/, rod/, sqlite/).
package llmfeeder
