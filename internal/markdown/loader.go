package markdown

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-parks/pkg/interfaces"
)

// ErrNotDirectory is returned when the discovery root exists but is a file.
var ErrNotDirectory = errors.New("markdown loader: path is not a directory")

// LoaderConfig configures how Markdown files are discovered.
type LoaderConfig struct {
	// Pattern limits discovered files to those matching the glob (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader enumerates and reads park guide files from a filesystem.
type Loader struct {
	fs        fs.FS
	pattern   string
	recursive bool
}

// NewLoader constructs a Loader over filesystem, typically os.DirFS(root).
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = "*.md"
	}
	return &Loader{
		fs:        filesystem,
		pattern:   filepath.ToSlash(pattern),
		recursive: cfg.Recursive,
	}
}

// Discover returns the slash-separated paths of every matching file under
// dir, sorted lexically. A missing dir is reported as fs.ErrNotExist.
func (l *Loader) Discover(ctx context.Context, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root := cleanRelative(dir)
	info, err := fs.Stat(l.fs, root)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	var paths []string
	walkErr := fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != root && !l.recursive {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if l.matches(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Strings(paths)
	return paths, nil
}

// LoadFile reads one file and splits its front matter from the body.
func (l *Loader) LoadFile(ctx context.Context, path string) (*interfaces.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel := cleanRelative(path)
	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}

	meta, body, err := SplitFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("markdown loader %s: %w", rel, err)
	}
	sum := sha256.Sum256(data)

	return &interfaces.Document{
		FilePath:    rel,
		Body:        body,
		FrontMatter: meta,
		Checksum:    sum[:],
	}, nil
}

func (l *Loader) matches(path string) bool {
	pattern := l.pattern
	if strings.Contains(pattern, "**") {
		pattern = strings.ReplaceAll(pattern, "**/", "")
	}
	target := path
	if !strings.Contains(pattern, "/") {
		target = filepath.Base(path)
	}
	match, err := filepath.Match(pattern, target)
	return err == nil && match
}

func cleanRelative(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "."
	}
	clean := filepath.ToSlash(filepath.Clean(trimmed))
	return strings.TrimPrefix(clean, "/")
}
