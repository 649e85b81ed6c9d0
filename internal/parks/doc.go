// Package parks turns the block sequence of one park guide into a Record.
//
// The Extractor is a two-field state machine: a details flag that is on
// between the first H1 and the next H2, and the Section selected by the most
// recent H2. Paragraphs feed either the details map or the description;
// column-oriented tables feed the four list sections.
package parks
