package markdown

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-parks/pkg/interfaces"
)

// ParseOptions customises the goldmark engine used for block parsing.
type ParseOptions struct {
	// Extensions names goldmark extensions to enable. Tables are always on
	// because the extractor depends on them.
	Extensions []string
}

// GoldmarkParser implements interfaces.BlockParser using the goldmark engine.
// The parser is stateless so a single instance can be shared.
type GoldmarkParser struct {
	engine goldmark.Markdown
}

var _ interfaces.BlockParser = (*GoldmarkParser)(nil)

// NewGoldmarkParser constructs a parser with GFM tables enabled plus any
// extension listed in opts.
func NewGoldmarkParser(opts ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{
		engine: goldmark.New(goldmark.WithExtensions(collectExtensions(opts.Extensions)...)),
	}
}

// ParseBlocks walks the top level of the goldmark AST and converts each node
// into a Block.
func (p *GoldmarkParser) ParseBlocks(markdown []byte) (blocks []interfaces.Block, err error) {
	defer func() {
		if r := recover(); r != nil {
			blocks = nil
			err = fmt.Errorf("markdown parse: %v", r)
		}
	}()

	doc := p.engine.Parser().Parse(text.NewReader(markdown))
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		blocks = append(blocks, convertNode(node, markdown))
	}
	return blocks, nil
}

func convertNode(node ast.Node, source []byte) interfaces.Block {
	switch n := node.(type) {
	case *ast.Heading:
		return interfaces.HeaderBlock{Level: n.Level, Text: strings.TrimSpace(inlineText(n, source))}
	case *ast.Paragraph:
		return interfaces.ParagraphBlock{Text: rawLines(n, source)}
	case *east.Table:
		return convertTable(n, source)
	default:
		return interfaces.OtherBlock{Type: node.Kind().String()}
	}
}

// rawLines returns the paragraph source with inline markup intact so detail
// lines such as "**Size:** 10 acres" survive. Lines are trimmed.
func rawLines(node ast.Node, source []byte) string {
	lines := node.Lines()
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		if line := strings.TrimSpace(string(segment.Value(source))); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "\n")
}

// convertTable pivots a goldmark table into columns. goldmark pads short rows
// with cells that carry no source lines; padding at the end of a column is
// dropped so the column comes out shorter, padding followed by real cells
// stays as "" to keep rows aligned.
func convertTable(table *east.Table, source []byte) interfaces.TableBlock {
	block := interfaces.TableBlock{Columns: map[string][]string{}}
	padded := map[string][]bool{}

	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		switch row.(type) {
		case *east.TableHeader:
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				name := uniqueHeader(block.Columns, strings.TrimSpace(inlineText(cell, source)))
				block.Headers = append(block.Headers, name)
				block.Columns[name] = []string{}
			}
		case *east.TableRow:
			index := 0
			for cell := row.FirstChild(); cell != nil && index < len(block.Headers); cell = cell.NextSibling() {
				name := block.Headers[index]
				block.Columns[name] = append(block.Columns[name], strings.TrimSpace(inlineText(cell, source)))
				padded[name] = append(padded[name], cell.Lines().Len() == 0)
				index++
			}
		}
	}

	for name, flags := range padded {
		keep := len(flags)
		for keep > 0 && flags[keep-1] {
			keep--
		}
		block.Columns[name] = block.Columns[name][:keep]
	}
	return block
}

// uniqueHeader keeps column names distinct: a repeated "Notes" becomes
// "Notes 2", then "Notes 3".
func uniqueHeader(columns map[string][]string, name string) string {
	if _, taken := columns[name]; !taken {
		return name
	}
	for n := 2; ; n++ {
		candidate := name + " " + strconv.Itoa(n)
		if _, taken := columns[candidate]; !taken {
			return candidate
		}
	}
}

// inlineText flattens the inline children of node into plain text, dropping
// emphasis and link markup.
func inlineText(node ast.Node, source []byte) string {
	var b strings.Builder
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			switch c := child.(type) {
			case *ast.Text:
				b.Write(decodeText(c.Segment.Value(source)))
				if c.SoftLineBreak() || c.HardLineBreak() {
					b.WriteByte(' ')
				}
			case *ast.String:
				b.Write(c.Value)
			case *ast.RawHTML:
				continue
			default:
				walk(child)
			}
		}
	}
	walk(node)
	return b.String()
}

// decodeText resolves backslash escapes and character references the way
// goldmark's HTML writer does, so "Fees &amp; Passes" reads "Fees & Passes".
func decodeText(value []byte) []byte {
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	return util.ResolveEntityNames(value)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

// gfmBundle lists the extenders extension.GFM already registers.
var gfmBundle = map[goldmark.Extender]struct{}{
	extension.Table:         {},
	extension.Strikethrough: {},
	extension.Linkify:       {},
	extension.TaskList:      {},
}

func collectExtensions(names []string) []goldmark.Extender {
	var extenders []goldmark.Extender
	seen := map[goldmark.Extender]struct{}{}
	hasTables := false

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		if _, dup := seen[ext]; dup {
			continue
		}
		seen[ext] = struct{}{}
		extenders = append(extenders, ext)
		if ext == extension.GFM || ext == extension.Table {
			hasTables = true
		}
	}

	if !hasTables {
		return append([]goldmark.Extender{extension.Table}, extenders...)
	}
	if _, gfm := seen[extension.GFM]; gfm {
		filtered := extenders[:0]
		for _, ext := range extenders {
			if _, bundled := gfmBundle[ext]; !bundled {
				filtered = append(filtered, ext)
			}
		}
		extenders = filtered
	}
	return extenders
}
