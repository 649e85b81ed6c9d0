package markdown

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"testing"
	"testing/fstest"
)

func TestLoaderDiscoverRecursive(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata/parks"), LoaderConfig{Recursive: true})

	paths, err := loader.Discover(context.Background(), ".")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{"utah/arches.md", "zion.md"}
	if len(paths) != len(want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, paths)
		}
	}
}

func TestLoaderDiscoverNonRecursive(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata/parks"), LoaderConfig{Recursive: false})

	paths, err := loader.Discover(context.Background(), "")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(paths) != 1 || paths[0] != "zion.md" {
		t.Fatalf("expected only top-level file, got %v", paths)
	}
}

func TestLoaderDiscoverErrors(t *testing.T) {
	loader := NewLoader(fstest.MapFS{
		"file.md": &fstest.MapFile{Data: []byte("# x")},
	}, LoaderConfig{})

	if _, err := loader.Discover(context.Background(), "missing"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
	if _, err := loader.Discover(context.Background(), "file.md"); !errors.Is(err, ErrNotDirectory) {
		t.Fatalf("expected ErrNotDirectory, got %v", err)
	}
}

func TestLoaderDiscoverHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := NewLoader(os.DirFS("testdata/parks"), LoaderConfig{Recursive: true})
	if _, err := loader.Discover(ctx, "."); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoaderLoadFile(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata/parks"), LoaderConfig{})

	doc, err := loader.LoadFile(context.Background(), "zion.md")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if doc.FilePath != "zion.md" {
		t.Fatalf("expected FilePath zion.md, got %q", doc.FilePath)
	}
	if len(doc.Checksum) != 32 {
		t.Fatalf("expected sha256 checksum, got %d bytes", len(doc.Checksum))
	}
	if doc.FrontMatter["source"] != "nps.gov" {
		t.Fatalf("expected front matter to be captured, got %#v", doc.FrontMatter)
	}
	if len(doc.Body) == 0 || doc.Body[0] != '#' {
		t.Fatalf("expected body to start at the heading, got %q", doc.Body)
	}
}

func TestLoaderLoadFileMissing(t *testing.T) {
	loader := NewLoader(fstest.MapFS{}, LoaderConfig{})
	if _, err := loader.LoadFile(context.Background(), "nope.md"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}
