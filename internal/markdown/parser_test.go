package markdown

import (
	"os"
	"testing"

	"github.com/goliatone/go-parks/pkg/interfaces"
	"github.com/yuin/goldmark/extension"
)

func TestGoldmarkParser_ParseBlocks(t *testing.T) {
	parser := NewGoldmarkParser(ParseOptions{})
	source := []byte("# Zion\n\n**Location:** Utah\n**Size:** 10 acres\n\n## Fees & Passes\n\n| Category | Cost |\n|---|---|\n| Car | $35 |\n| Bike | $20 |\n\n- item\n")

	blocks, err := parser.ParseBlocks(source)
	if err != nil {
		t.Fatalf("ParseBlocks: %v", err)
	}
	if len(blocks) != 5 {
		t.Fatalf("expected 5 blocks, got %d: %#v", len(blocks), blocks)
	}

	h1, ok := blocks[0].(interfaces.HeaderBlock)
	if !ok || h1.Level != 1 || h1.Text != "Zion" {
		t.Fatalf("expected H1 Zion, got %#v", blocks[0])
	}

	para, ok := blocks[1].(interfaces.ParagraphBlock)
	if !ok {
		t.Fatalf("expected paragraph, got %#v", blocks[1])
	}
	if para.Text != "**Location:** Utah\n**Size:** 10 acres" {
		t.Fatalf("expected raw paragraph lines, got %q", para.Text)
	}

	h2, ok := blocks[2].(interfaces.HeaderBlock)
	if !ok || h2.Level != 2 || h2.Text != "Fees & Passes" {
		t.Fatalf("expected H2 Fees & Passes, got %#v", blocks[2])
	}

	table, ok := blocks[3].(interfaces.TableBlock)
	if !ok {
		t.Fatalf("expected table, got %#v", blocks[3])
	}
	if len(table.Headers) != 2 || table.Headers[0] != "Category" || table.Headers[1] != "Cost" {
		t.Fatalf("unexpected headers %v", table.Headers)
	}
	if got := table.Columns["Cost"]; len(got) != 2 || got[0] != "$35" || got[1] != "$20" {
		t.Fatalf("unexpected Cost column %v", got)
	}
	if table.RowCount() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.RowCount())
	}

	if other, ok := blocks[4].(interfaces.OtherBlock); !ok || other.Type != "List" {
		t.Fatalf("expected list to surface as OtherBlock, got %#v", blocks[4])
	}
}

func TestGoldmarkParser_DuplicateHeadersAndInlineMarkup(t *testing.T) {
	parser := NewGoldmarkParser(ParseOptions{Extensions: []string{"gfm"}})
	source := []byte("| Notes | **Notes** |\n|---|---|\n| a | *b* |\n")

	blocks, err := parser.ParseBlocks(source)
	if err != nil {
		t.Fatalf("ParseBlocks: %v", err)
	}
	table, ok := blocks[0].(interfaces.TableBlock)
	if !ok {
		t.Fatalf("expected table, got %#v", blocks[0])
	}
	if table.Headers[1] != "Notes 2" {
		t.Fatalf("expected duplicate header to be suffixed, got %v", table.Headers)
	}
	if table.Columns["Notes 2"][0] != "b" {
		t.Fatalf("expected emphasis markup to be dropped, got %v", table.Columns["Notes 2"])
	}
}

func TestGoldmarkParser_EmptyInput(t *testing.T) {
	blocks, err := NewGoldmarkParser(ParseOptions{}).ParseBlocks(nil)
	if err != nil {
		t.Fatalf("ParseBlocks: %v", err)
	}
	if len(blocks) != 0 {
		t.Fatalf("expected no blocks, got %#v", blocks)
	}
}

func TestSplitFrontMatter(t *testing.T) {
	data := readFixture(t, "testdata/parks/zion.md")

	meta, body, err := SplitFrontMatter(data)
	if err != nil {
		t.Fatalf("SplitFrontMatter: %v", err)
	}
	if meta["source"] != "nps.gov" {
		t.Fatalf("expected source metadata, got %#v", meta)
	}
	blocks, err := NewGoldmarkParser(ParseOptions{}).ParseBlocks(body)
	if err != nil {
		t.Fatalf("ParseBlocks: %v", err)
	}
	if h, ok := blocks[0].(interfaces.HeaderBlock); !ok || h.Level != 1 {
		t.Fatalf("expected body to start with the H1, got %#v", blocks[0])
	}
}

func TestSplitFrontMatterWithoutBlock(t *testing.T) {
	meta, body, err := SplitFrontMatter([]byte("# Arches\n"))
	if err != nil {
		t.Fatalf("SplitFrontMatter: %v", err)
	}
	if meta != nil {
		t.Fatalf("expected nil metadata, got %#v", meta)
	}
	if string(body) != "# Arches\n" {
		t.Fatalf("expected body unchanged, got %q", body)
	}
}

func readFixture(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}

func TestGoldmarkParser_ShortRowsShortenColumns(t *testing.T) {
	parser := NewGoldmarkParser(ParseOptions{})
	source := []byte("| Type | Capacity |\n|---|---|\n| Tent | 20 |\n| RV |\n")

	blocks, err := parser.ParseBlocks(source)
	if err != nil {
		t.Fatalf("ParseBlocks: %v", err)
	}
	table, ok := blocks[0].(interfaces.TableBlock)
	if !ok {
		t.Fatalf("expected table, got %#v", blocks[0])
	}
	if got := table.Columns["Type"]; len(got) != 2 || got[1] != "RV" {
		t.Fatalf("unexpected Type column %v", got)
	}
	if got := table.Columns["Capacity"]; len(got) != 1 || got[0] != "20" {
		t.Fatalf("expected padded cell to be dropped, got %q", got)
	}
	if table.RowCount() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.RowCount())
	}
}

func TestGoldmarkParser_ShortRowInTheMiddleKeepsAlignment(t *testing.T) {
	parser := NewGoldmarkParser(ParseOptions{})
	source := []byte("| Type | Capacity |\n|---|---|\n| Tent | 20 |\n| RV |\n| Cabin | 4 |\n")

	blocks, err := parser.ParseBlocks(source)
	if err != nil {
		t.Fatalf("ParseBlocks: %v", err)
	}
	table := blocks[0].(interfaces.TableBlock)
	got := table.Columns["Capacity"]
	if len(got) != 3 || got[0] != "20" || got[1] != "" || got[2] != "4" {
		t.Fatalf("expected Cabin to keep its own capacity, got %q", got)
	}
}

func TestGoldmarkParser_DecodesCharacterReferences(t *testing.T) {
	parser := NewGoldmarkParser(ParseOptions{})
	source := []byte("## Fees &amp; Passes\n\n| Category | Cost |\n|---|---|\n| Annual &#43; Senior | \\$80 |\n")

	blocks, err := parser.ParseBlocks(source)
	if err != nil {
		t.Fatalf("ParseBlocks: %v", err)
	}
	if h2 := blocks[0].(interfaces.HeaderBlock); h2.Text != "Fees & Passes" {
		t.Fatalf("expected decoded heading, got %q", h2.Text)
	}
	table := blocks[1].(interfaces.TableBlock)
	if got := table.Columns["Category"][0]; got != "Annual + Senior" {
		t.Fatalf("expected numeric reference decoded, got %q", got)
	}
	if got := table.Columns["Cost"][0]; got != "$80" {
		t.Fatalf("expected backslash escape removed, got %q", got)
	}
}

func TestCollectExtensions(t *testing.T) {
	if got := collectExtensions(nil); len(got) != 1 || got[0] != extension.Table {
		t.Fatalf("expected tables by default, got %v", got)
	}

	got := collectExtensions([]string{"gfm", "table", "strikethrough", "footnote", "GFM"})
	if len(got) != 2 || got[0] != extension.GFM || got[1] != extension.Footnote {
		t.Fatalf("expected GFM to cover its bundled extensions, got %v", got)
	}

	got = collectExtensions([]string{"tables", "linkify"})
	if len(got) != 2 || got[0] != extension.Table || got[1] != extension.Linkify {
		t.Fatalf("unexpected extensions %v", got)
	}
}
