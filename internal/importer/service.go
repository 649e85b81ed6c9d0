package importer

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-parks/internal/logging"
	"github.com/goliatone/go-parks/internal/markdown"
	"github.com/goliatone/go-parks/internal/parks"
	"github.com/goliatone/go-parks/internal/storage"
	"github.com/goliatone/go-parks/internal/validation"
	"github.com/goliatone/go-parks/pkg/interfaces"
	"github.com/google/uuid"
)

var (
	// ErrContentDirMissing is fatal: the content root is absent or not a directory.
	ErrContentDirMissing = errors.New("importer: content directory not found")
	// ErrStoreRequired is returned when a non dry run has nowhere to load into.
	ErrStoreRequired = errors.New("importer: park store is required")
)

// ParkStore loads one record transactionally.
type ParkStore interface {
	Upsert(ctx context.Context, record *parks.Record) (*storage.UpsertResult, error)
}

// DetailValidator checks extracted details. Failures are warnings only.
type DetailValidator interface {
	Validate(details map[string]any) error
}

type Option func(*Service)

func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithParser(parser interfaces.BlockParser) Option {
	return func(s *Service) {
		if parser != nil {
			s.parser = parser
		}
	}
}

func WithExtractor(extractor *parks.Extractor) Option {
	return func(s *Service) {
		if extractor != nil {
			s.extractor = extractor
		}
	}
}

func WithValidator(validator DetailValidator) Option {
	return func(s *Service) {
		s.validator = validator
	}
}

// WithLoaderConfig sets the discovery glob and recursion.
func WithLoaderConfig(cfg markdown.LoaderConfig) Option {
	return func(s *Service) {
		s.loaderCfg = cfg
	}
}

// WithDryRun extracts and validates without touching the store.
func WithDryRun(enabled bool) Option {
	return func(s *Service) {
		s.dryRun = enabled
	}
}

func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.now = clock
		}
	}
}

func WithRunIDGenerator(next func() string) Option {
	return func(s *Service) {
		if next != nil {
			s.runID = next
		}
	}
}

// Service runs the import pipeline.
type Service struct {
	store     ParkStore
	parser    interfaces.BlockParser
	extractor *parks.Extractor
	validator DetailValidator
	logger    interfaces.Logger
	loaderCfg markdown.LoaderConfig
	dryRun    bool
	now       func() time.Time
	runID     func() string
}

// NewService wires the pipeline. Unset collaborators fall back to a goldmark
// parser, a silent extractor and no detail validation.
func NewService(store ParkStore, opts ...Option) *Service {
	s := &Service{
		store:     store,
		logger:    logging.NoOp(),
		loaderCfg: markdown.LoaderConfig{Pattern: "*.md", Recursive: true},
		now:       time.Now,
		runID:     func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.parser == nil {
		s.parser = markdown.NewGoldmarkParser(markdown.ParseOptions{})
	}
	if s.extractor == nil {
		s.extractor = parks.NewExtractor(nil)
	}
	return s
}

// RunOptions adjust a single run.
type RunOptions struct {
	// DryRun skips the store for this run. A service built WithDryRun(true)
	// is always dry.
	DryRun bool
}

// Run imports every matching file under dir. Only a missing content root, a
// missing store or context cancellation is returned as an error; per-file
// problems are reported in the summary.
func (s *Service) Run(ctx context.Context, dir string) (*Summary, error) {
	return s.RunWithOptions(ctx, dir, RunOptions{})
}

// RunWithOptions is Run with per-run overrides.
func (s *Service) RunWithOptions(ctx context.Context, dir string, opts RunOptions) (*Summary, error) {
	started := s.now()
	dryRun := s.dryRun || opts.DryRun
	summary := &Summary{
		RunID:     s.runID(),
		Directory: dir,
		DryRun:    dryRun,
	}
	logger := logging.WithRunID(s.logger, summary.RunID).WithContext(ctx)

	if !dryRun && s.store == nil {
		return summary, ErrStoreRequired
	}
	if err := checkDirectory(dir); err != nil {
		logger.Error("importer.run.content_dir_missing", "dir", dir, "error", err)
		return summary, err
	}

	loader := markdown.NewLoader(os.DirFS(dir), s.loaderCfg)
	paths, err := loader.Discover(ctx, ".")
	if err != nil {
		logger.Error("importer.run.discovery_failed", "dir", dir, "error", err)
		return summary, fmt.Errorf("importer: discover %s: %w", dir, err)
	}
	summary.Found = len(paths)
	logger.Info("importer.run.started", "dir", dir, "files", len(paths), "dry_run", dryRun)

	for _, rel := range paths {
		if err := ctx.Err(); err != nil {
			summary.Duration = s.now().Sub(started)
			logger.Warn("importer.run.cancelled", "error", err, "attempted", summary.Attempted)
			return summary, err
		}
		summary.record(s.importOne(ctx, loader, filepath.Join(dir, filepath.FromSlash(rel)), rel, dryRun, logger))
	}

	summary.Duration = s.now().Sub(started)
	logger.Info("importer.run.completed",
		"found", summary.Found,
		"succeeded", summary.Succeeded,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"duration", summary.Duration.String(),
	)
	return summary, nil
}

// ImportFile runs the pipeline for a single file on disk.
func (s *Service) ImportFile(ctx context.Context, path string) (FileResult, error) {
	if !s.dryRun && s.store == nil {
		return FileResult{Path: path, Status: StatusFailed, Error: ErrStoreRequired}, ErrStoreRequired
	}
	logger := logging.WithRunID(s.logger, s.runID()).WithContext(ctx)
	loader := markdown.NewLoader(os.DirFS(filepath.Dir(path)), s.loaderCfg)
	return s.importOne(ctx, loader, path, filepath.Base(path), s.dryRun, logger), nil
}

func (s *Service) importOne(ctx context.Context, loader *markdown.Loader, path, rel string, dryRun bool, runLogger interfaces.Logger) FileResult {
	result := FileResult{Path: path}
	logger := logging.WithFileContext(runLogger, path, "")
	logger.Debug("importer.file.started")

	doc, err := loader.LoadFile(ctx, rel)
	if err != nil {
		return skip(logger, result, "importer.file.read_failed", err)
	}
	logger.Debug("importer.file.loaded",
		"checksum", hex.EncodeToString(doc.Checksum),
		"front_matter", frontMatterKeys(doc.FrontMatter),
	)

	blocks, err := s.parser.ParseBlocks(doc.Body)
	if err != nil {
		return skip(logger, result, "importer.file.parse_failed", err)
	}
	if len(blocks) == 0 {
		return skip(logger, result, "importer.file.empty", parks.ErrNoBlocks)
	}

	record, err := s.extractor.Extract(path, blocks)
	if err != nil {
		return skip(logger, result, "importer.file.extract_failed", err)
	}
	result.Park = record.Name
	logger = logging.WithFileContext(runLogger, path, record.Name)

	if s.validator != nil {
		if err := s.validator.Validate(record.Details); err != nil {
			for _, issue := range validation.Issues(err) {
				logger.Warn("importer.details.invalid", "location", issue.Location, "issue", issue.Message)
			}
		}
	}

	if dryRun {
		result.Status = StatusImported
		result.Rows = plannedRows(record)
		logger.Info("importer.file.dry_run", "rows", result.Rows)
		return result
	}

	stored, err := s.store.Upsert(ctx, record)
	if err != nil {
		result.Status = StatusFailed
		result.Error = err
		logger.Error("importer.file.failed", "error", err)
		return result
	}

	result.Status = StatusImported
	result.Created = stored.Created
	result.Rows = stored.Counts
	logger.Info("importer.file.imported",
		"park_id", stored.ParkID,
		"created", stored.Created,
		"rows", stored.Counts,
	)
	return result
}

func skip(logger interfaces.Logger, result FileResult, event string, err error) FileResult {
	result.Status = StatusSkipped
	result.Error = err
	logger.Warn(event, "error", err)
	return result
}

func checkDirectory(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("%w: empty path", ErrContentDirMissing)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrContentDirMissing, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrContentDirMissing, dir)
	}
	return nil
}

func plannedRows(record *parks.Record) map[string]int {
	return map[string]int{
		storage.TableDetails:     1,
		storage.TableCamping:     len(record.Camping),
		storage.TableFees:        len(record.Fees),
		storage.TableSeasons:     len(record.Seasons),
		storage.TableAttractions: len(record.Attractions),
	}
}

func frontMatterKeys(meta map[string]any) []string {
	if len(meta) == 0 {
		return nil
	}
	keys := make([]string, 0, len(meta))
	for key := range meta {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
