package storage

import (
	"context"
	"fmt"

	"github.com/goliatone/go-parks/internal/parks"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// integerKeyHandlers builds handlers for models keyed by database assigned
// integers. The repository only asks for UUIDs to fill empty keys, so the ID
// hooks are inert and the autoincrement column is populated on insert.
func integerKeyHandlers[T any](newRecord func() T) repository.ModelHandlers[T] {
	return repository.ModelHandlers[T]{
		NewRecord: newRecord,
		GetID:     func(T) uuid.UUID { return uuid.Nil },
		SetID:     func(T, uuid.UUID) {},
	}
}

// NewParkRecordRepository creates a repository for park rows looked up by name.
func NewParkRecordRepository(db *bun.DB) repository.Repository[*Park] {
	handlers := integerKeyHandlers(func() *Park { return &Park{} })
	handlers.GetIdentifier = func() string { return "name" }
	handlers.GetIdentifierValue = func(park *Park) string { return park.Name }
	return repository.MustNewRepository(db, handlers)
}

// NewDetailsRepository creates a repository for details rows.
func NewDetailsRepository(db *bun.DB) repository.Repository[*Details] {
	return repository.MustNewRepository(db, integerKeyHandlers(func() *Details { return &Details{} }))
}

// NewCampingRepository creates a repository for camping rows.
func NewCampingRepository(db *bun.DB) repository.Repository[*Camping] {
	return repository.MustNewRepository(db, integerKeyHandlers(func() *Camping { return &Camping{} }))
}

// NewFeeRepository creates a repository for fee rows.
func NewFeeRepository(db *bun.DB) repository.Repository[*Fee] {
	return repository.MustNewRepository(db, integerKeyHandlers(func() *Fee { return &Fee{} }))
}

// NewSeasonRepository creates a repository for season rows.
func NewSeasonRepository(db *bun.DB) repository.Repository[*Season] {
	return repository.MustNewRepository(db, integerKeyHandlers(func() *Season { return &Season{} }))
}

// NewAttractionRepository creates a repository for attraction rows.
func NewAttractionRepository(db *bun.DB) repository.Repository[*Attraction] {
	return repository.MustNewRepository(db, integerKeyHandlers(func() *Attraction { return &Attraction{} }))
}

// byPark scopes a delete to the rows of one park.
func byPark(parkID int64) repository.DeleteCriteria {
	return func(q *bun.DeleteQuery) *bun.DeleteQuery {
		return q.Where("? = ?", bun.Ident("park_ID"), parkID)
	}
}

// childTable clears and fills one child table inside a park load.
type childTable struct {
	table  string
	rows   func(*parks.Record) []parks.Row
	clear  func(ctx context.Context, tx bun.IDB, parkID int64) error
	create func(ctx context.Context, tx bun.IDB, parkID int64, rows []parks.Row) (int, error)
}

func newChildTable[T any](table string, repo repository.Repository[T], rows func(*parks.Record) []parks.Row, build func(int64, parks.Row) T) childTable {
	return childTable{
		table: table,
		rows:  rows,
		clear: func(ctx context.Context, tx bun.IDB, parkID int64) error {
			if err := repo.DeleteWhereTx(ctx, tx, byPark(parkID)); err != nil {
				return fmt.Errorf("delete %s: %w", table, err)
			}
			return nil
		},
		create: func(ctx context.Context, tx bun.IDB, parkID int64, rows []parks.Row) (int, error) {
			if len(rows) == 0 {
				return 0, nil
			}
			records := make([]T, 0, len(rows))
			for _, row := range rows {
				records = append(records, build(parkID, row))
			}
			if _, err := repo.CreateManyTx(ctx, tx, records); err != nil {
				return 0, fmt.Errorf("insert %s rows: %w", table, err)
			}
			return len(records), nil
		},
	}
}
