package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// SplitFrontMatter separates an optional YAML/TOML/JSON front matter block
// from the Markdown body. Files without front matter are returned unchanged
// with a nil metadata map. Stripping the block matters because its closing
// "---" would otherwise turn the preceding line into a setext heading.
func SplitFrontMatter(source []byte) (map[string]any, []byte, error) {
	var meta map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if len(meta) == 0 {
		return nil, body, nil
	}
	return meta, bytes.TrimLeft(body, "\r\n"), nil
}
