package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-parks/internal/logging"
	"github.com/goliatone/go-parks/internal/parks"
	"github.com/goliatone/go-parks/pkg/interfaces"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-slug"
	"github.com/uptrace/bun"
)

var (
	// ErrDatabaseNotConfigured is returned when the repository has no handle.
	ErrDatabaseNotConfigured = errors.New("storage: database not configured")
	// ErrRecordRequired is returned for nil records or records without a name.
	ErrRecordRequired = errors.New("storage: record with park name required")
)

// detailColumns are the detail keys stored in dedicated columns. Everything
// else lands in details.extra.
var detailColumns = map[string]struct{}{
	"location":              {},
	parks.DetailEstablished: {},
	parks.DetailSizeAcres:   {},
	parks.DetailSizeRaw:     {},
	"ecosystems":            {},
	"unique_feature":        {},
}

// UpsertResult reports what a load wrote.
type UpsertResult struct {
	ParkID int64
	// Created is false when an existing park had its children replaced.
	Created bool
	// Counts holds the rows inserted per child table.
	Counts map[string]int
}

// RepositoryOption customises a ParkRepository.
type RepositoryOption func(*ParkRepository)

// WithLogger overrides the repository logger.
func WithLogger(logger interfaces.Logger) RepositoryOption {
	return func(r *ParkRepository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSlugNormalizer overrides how park slugs are derived from names.
func WithSlugNormalizer(normalizer slug.Normalizer) RepositoryOption {
	return func(r *ParkRepository) {
		if normalizer != nil {
			r.slugs = normalizer
		}
	}
}

// ParkRepository loads park records, one transaction per record.
type ParkRepository struct {
	db       *bun.DB
	parks    repository.Repository[*Park]
	details  repository.Repository[*Details]
	children []childTable
	logger   interfaces.Logger
	slugs    slug.Normalizer
}

func NewParkRepository(db *bun.DB, opts ...RepositoryOption) *ParkRepository {
	repo := &ParkRepository{
		db:     db,
		logger: logging.NoOp(),
		slugs:  slug.Default(),
	}
	if db != nil {
		repo.parks = NewParkRecordRepository(db)
		repo.details = NewDetailsRepository(db)
		repo.children = []childTable{
			newChildTable(TableCamping, NewCampingRepository(db), func(r *parks.Record) []parks.Row { return r.Camping }, campingRow),
			newChildTable(TableFees, NewFeeRepository(db), func(r *parks.Record) []parks.Row { return r.Fees }, feeRow),
			newChildTable(TableSeasons, NewSeasonRepository(db), func(r *parks.Record) []parks.Row { return r.Seasons }, seasonRow),
			newChildTable(TableAttractions, NewAttractionRepository(db), func(r *parks.Record) []parks.Row { return r.Attractions }, attractionRow),
		}
	}
	for _, opt := range opts {
		if opt != nil {
			opt(repo)
		}
	}
	return repo
}

// Upsert writes record inside a single transaction. An existing park keeps its
// ID and has all child rows replaced; a new park is inserted. Any failure
// rolls the whole record back.
func (r *ParkRepository) Upsert(ctx context.Context, record *parks.Record) (*UpsertResult, error) {
	if r == nil || r.db == nil {
		return nil, ErrDatabaseNotConfigured
	}
	if record == nil || strings.TrimSpace(record.Name) == "" {
		return nil, ErrRecordRequired
	}

	var result *UpsertResult
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		park, created, err := r.resolvePark(ctx, tx, record.Name)
		if err != nil {
			return err
		}

		counts := map[string]int{}
		if _, err := r.details.CreateTx(ctx, tx, detailsRow(park.ParkID, record)); err != nil {
			return fmt.Errorf("insert details: %w", err)
		}
		counts[TableDetails] = 1

		for _, child := range r.children {
			inserted, err := child.create(ctx, tx, park.ParkID, child.rows(record))
			if err != nil {
				return err
			}
			counts[child.table] = inserted
		}

		result = &UpsertResult{ParkID: park.ParkID, Created: created, Counts: counts}
		return nil
	})
	if err != nil {
		r.logger.Error("storage.park.rollback", "park", record.Name, "error", err)
		return nil, fmt.Errorf("storage: load park %q: %w", record.Name, err)
	}

	r.logger.Debug("storage.park.committed",
		"park", record.Name,
		"park_id", result.ParkID,
		"created", result.Created,
	)
	return result, nil
}

// resolvePark finds the park by exact name and clears its children, or
// inserts a new park row.
func (r *ParkRepository) resolvePark(ctx context.Context, tx bun.Tx, name string) (*Park, bool, error) {
	slugValue := r.slugFor(name)

	existing, err := r.parks.GetByIdentifierTx(ctx, tx, name)
	switch {
	case err == nil:
		if err := r.details.DeleteWhereTx(ctx, tx, byPark(existing.ParkID)); err != nil {
			return nil, false, fmt.Errorf("delete %s: %w", TableDetails, err)
		}
		for _, child := range r.children {
			if err := child.clear(ctx, tx, existing.ParkID); err != nil {
				return nil, false, err
			}
		}
		if existing.Slug != slugValue {
			existing.Slug = slugValue
			if _, err := r.parks.UpdateTx(ctx, tx, existing, repository.UpdateColumns("slug")); err != nil {
				return nil, false, fmt.Errorf("update park slug: %w", err)
			}
		}
		return existing, false, nil
	case repository.IsRecordNotFound(err):
	default:
		return nil, false, fmt.Errorf("select park: %w", err)
	}

	park, err := r.parks.CreateTx(ctx, tx, &Park{Name: name, Slug: slugValue})
	if err != nil {
		return nil, false, fmt.Errorf("insert park: %w", err)
	}
	if park.ParkID == 0 {
		// drivers without RETURNING support
		reloaded, err := r.parks.GetByIdentifierTx(ctx, tx, name)
		if err != nil {
			return nil, false, fmt.Errorf("reload park: %w", err)
		}
		park = reloaded
	}
	return park, true, nil
}

func (r *ParkRepository) slugFor(name string) string {
	value, err := r.slugs.Normalize(name)
	if err != nil {
		r.logger.Warn("storage.park.slug_failed", "park", name, "error", err)
		return ""
	}
	return value
}

func detailsRow(parkID int64, record *parks.Record) *Details {
	details := &Details{
		ParkID:        parkID,
		Location:      record.DetailString("location"),
		Established:   record.DetailInt(parks.DetailEstablished),
		SizeAcres:     record.DetailInt(parks.DetailSizeAcres),
		SizeRaw:       record.DetailString(parks.DetailSizeRaw),
		Ecosystems:    record.DetailString("ecosystems"),
		UniqueFeature: record.DetailString("unique_feature"),
		Description:   record.Description,
		Extra:         extraDetails(record.Details),
	}
	if details.Established == nil {
		details.EstablishedRaw = record.DetailString(parks.DetailEstablished)
	}
	return details
}

func extraDetails(details map[string]any) map[string]string {
	var extra map[string]string
	for key, value := range details {
		if _, ok := detailColumns[key]; ok {
			continue
		}
		if extra == nil {
			extra = map[string]string{}
		}
		extra[key] = fmt.Sprint(value)
	}
	return extra
}

func campingRow(parkID int64, row parks.Row) *Camping {
	return &Camping{
		ParkID:    parkID,
		Type:      row.Value("type"),
		Capacity:  row.Value("capacity"),
		Amenities: row.Value("amenities"),
		Notes:     row.Value("notes"),
	}
}

func feeRow(parkID int64, row parks.Row) *Fee {
	return &Fee{
		ParkID:   parkID,
		Category: row.Value("category"),
		Cost:     row.Value("cost"),
		Notes:    row.Value("notes"),
	}
}

func seasonRow(parkID int64, row parks.Row) *Season {
	return &Season{
		ParkID:          parkID,
		SeasonName:      row.Value("season_name"),
		Dates:           row.Value("dates"),
		Characteristics: row.Value("characteristics"),
	}
}

func attractionRow(parkID int64, row parks.Row) *Attraction {
	return &Attraction{
		ParkID:         parkID,
		AttractionName: row.Value("attraction_name"),
		Description:    row.Value("description"),
		Notes:          row.Value("notes"),
	}
}
