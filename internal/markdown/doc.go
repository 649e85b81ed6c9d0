// Package markdown discovers park guide files on disk and turns their
// Markdown into the ordered block sequence consumed by the park extractor.
// Parsing is delegated to goldmark; only top-level headings, paragraphs and
// GFM tables are surfaced with content, everything else is reported as an
// OtherBlock.
package markdown
