package testsupport

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-parks/internal/storage"
	"github.com/uptrace/bun"
)

// NewParksDB opens a shared in-memory SQLite database private to the test,
// with the parks schema applied. The handle is closed on cleanup.
func NewParksDB(t testing.TB, prefix string) *bun.DB {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := storage.Open(ctx, storage.Config{
		Driver: storage.DriverSQLite,
		DSN:    "file:" + prefix + "_" + name + "?mode=memory&cache=shared",
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := storage.EnsureSchema(ctx, db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return db
}

// TableCounts returns the row count of every parks table keyed by table name.
func TableCounts(t testing.TB, db *bun.DB) map[string]int {
	t.Helper()
	counts := map[string]int{}
	for table, model := range map[string]any{
		"parks":                  (*storage.Park)(nil),
		storage.TableDetails:     (*storage.Details)(nil),
		storage.TableCamping:     (*storage.Camping)(nil),
		storage.TableFees:        (*storage.Fee)(nil),
		storage.TableSeasons:     (*storage.Season)(nil),
		storage.TableAttractions: (*storage.Attraction)(nil),
	} {
		count, err := db.NewSelect().Model(model).Count(context.Background())
		if err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		counts[table] = count
	}
	return counts
}
