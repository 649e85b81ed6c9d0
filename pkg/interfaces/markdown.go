package interfaces

// BlockParser converts raw Markdown into the ordered sequence of top-level
// blocks consumed by the park extractor. Implementations must emit tables in
// column-oriented form; row-oriented tables are not supported downstream.
type BlockParser interface {
	ParseBlocks(markdown []byte) ([]Block, error)
}

// BlockKind identifies the variant of a Block.
type BlockKind string

const (
	BlockHeader    BlockKind = "header"
	BlockParagraph BlockKind = "paragraph"
	BlockTable     BlockKind = "table"
	BlockOther     BlockKind = "other"
)

// Block is one structurally typed unit of parsed Markdown. The set of
// implementations is closed: HeaderBlock, ParagraphBlock, TableBlock and
// OtherBlock.
type Block interface {
	Kind() BlockKind
	sealed()
}

// HeaderBlock is an ATX or setext heading.
type HeaderBlock struct {
	Level int
	Text  string
}

// ParagraphBlock carries the raw source of a paragraph, inline markup included.
type ParagraphBlock struct {
	Text string
}

// TableBlock is a column-oriented table: Headers lists the column names in
// document order and Columns maps each name to its cells top to bottom.
// Columns may differ in length when source rows were short.
type TableBlock struct {
	Headers []string
	Columns map[string][]string
}

// OtherBlock stands in for block types the extractor ignores (lists, code,
// quotes, thematic breaks, raw HTML).
type OtherBlock struct {
	Type string
}

func (HeaderBlock) Kind() BlockKind    { return BlockHeader }
func (ParagraphBlock) Kind() BlockKind { return BlockParagraph }
func (TableBlock) Kind() BlockKind     { return BlockTable }
func (OtherBlock) Kind() BlockKind     { return BlockOther }

func (HeaderBlock) sealed()    {}
func (ParagraphBlock) sealed() {}
func (TableBlock) sealed()     {}
func (OtherBlock) sealed()     {}

// RowCount returns the number of rows implied by the first column.
func (t TableBlock) RowCount() int {
	if len(t.Headers) == 0 {
		return 0
	}
	return len(t.Columns[t.Headers[0]])
}

// Document is a Markdown file read from disk, front matter split from body.
type Document struct {
	FilePath    string
	Body        []byte
	FrontMatter map[string]any
	Checksum    []byte
}
