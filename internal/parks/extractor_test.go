package parks

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-parks/pkg/interfaces"
)

func h(level int, text string) interfaces.Block {
	return interfaces.HeaderBlock{Level: level, Text: text}
}

func p(text string) interfaces.Block {
	return interfaces.ParagraphBlock{Text: text}
}

func tbl(headers []string, columns map[string][]string) interfaces.Block {
	return interfaces.TableBlock{Headers: headers, Columns: columns}
}

func str(s string) *string { return &s }

func TestExtractDetailCoercion(t *testing.T) {
	record, err := NewExtractor(nil).Extract("zion.md", []interfaces.Block{
		h(1, "Zion National Park"),
		p("**Established:** 1976"),
		p("**Size:** 142,500 acres"),
		p("**Unique Feature:** Narrows\n**Location:** Utah"),
		p("Not a detail line"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Zion National Park", record.Name)
	assert.Equal(t, 1976, record.Details["established"])
	assert.Equal(t, 142500, record.Details["size_acres"])
	assert.NotContains(t, record.Details, "size")
	assert.Equal(t, "Narrows", record.Details["unique_feature"])
	assert.Equal(t, "Utah", record.Details["location"])
	assert.Len(t, record.Details, 4)
}

func TestExtractDetailCoercionFallbacks(t *testing.T) {
	record, err := NewExtractor(nil).Extract("x.md", []interfaces.Block{
		h(1, "Mystery Park"),
		p("**Size:** unknown"),
		p("**Established:** circa 1900"),
	})
	require.NoError(t, err)

	assert.Equal(t, "unknown", record.Details["size_raw"])
	assert.NotContains(t, record.Details, "size_acres")
	assert.Equal(t, "circa 1900", record.Details["established"])
	assert.Nil(t, record.DetailInt("established"))
	assert.Equal(t, "circa 1900", *record.DetailString("established"))
}

func TestExtractDetailsStopAtFirstH2(t *testing.T) {
	record, err := NewExtractor(nil).Extract("x.md", []interfaces.Block{
		h(1, "Arches"),
		h(2, "Something Else"),
		p("**Location:** Utah"),
	})
	require.NoError(t, err)
	assert.Empty(t, record.Details)
}

func TestExtractRequiresParkName(t *testing.T) {
	_, err := NewExtractor(nil).Extract("nameless.md", []interfaces.Block{
		h(2, "Park Description"),
		p("Some text"),
	})
	if !errors.Is(err, ErrParkNameMissing) {
		t.Fatalf("expected ErrParkNameMissing, got %v", err)
	}

	_, err = NewExtractor(nil).Extract("empty.md", nil)
	if !errors.Is(err, ErrNoBlocks) {
		t.Fatalf("expected ErrNoBlocks, got %v", err)
	}
}

func TestExtractFirstH1Wins(t *testing.T) {
	record, err := NewExtractor(nil).Extract("x.md", []interfaces.Block{
		h(1, "First"),
		h(1, "Second"),
	})
	require.NoError(t, err)
	assert.Equal(t, "First", record.Name)
}

func TestExtractDescription(t *testing.T) {
	record, err := NewExtractor(nil).Extract("x.md", []interfaces.Block{
		h(1, "Zion"),
		h(2, "Park Description"),
		p("Red cliffs."),
		interfaces.OtherBlock{Type: "List"},
		p("A river canyon."),
		h(2, "Camping Information"),
		p("Not description."),
	})
	require.NoError(t, err)
	assert.Equal(t, "Red cliffs.\nA river canyon.", record.Description)
}

func TestExtractSectionScoping(t *testing.T) {
	fees := tbl([]string{"Category", "Cost"}, map[string][]string{
		"Category": {"Vehicle"},
		"Cost":     {"$35"},
	})

	record, err := NewExtractor(nil).Extract("x.md", []interfaces.Block{
		fees,
		h(1, "Zion"),
		fees,
		h(2, "Visitor Centers"),
		fees,
		h(2, "Fees & Passes"),
		fees,
		h(2, "Park Description"),
		fees,
	})
	require.NoError(t, err)

	require.Len(t, record.Fees, 1)
	assert.Equal(t, "Vehicle", *record.Fees[0]["category"])
	assert.Equal(t, "$35", *record.Fees[0]["cost"])
	assert.Empty(t, record.Camping)
}

func TestExtractSectionMatchIsCaseInsensitiveSubstring(t *testing.T) {
	record, err := NewExtractor(nil).Extract("x.md", []interfaces.Block{
		h(1, "Zion"),
		h(2, "🗓 SEASONAL OPERATIONS and hours"),
		tbl([]string{"Season", "Dates"}, map[string][]string{
			"Season": {"Summer"},
			"Dates":  {"Jun-Aug"},
		}),
	})
	require.NoError(t, err)
	require.Len(t, record.Seasons, 1)
	assert.Equal(t, "Summer", *record.Seasons[0]["season_name"])
}

func TestExtractColumnReconstruction(t *testing.T) {
	record, err := NewExtractor(nil).Extract("x.md", []interfaces.Block{
		h(1, "Zion"),
		h(2, "Camping Information"),
		tbl([]string{"Type", "Capacity", "Reservation Window"}, map[string][]string{
			"Type":               {"Tent", "RV"},
			"Capacity":           {"20", "10"},
			"Reservation Window": {"6 months"},
		}),
	})
	require.NoError(t, err)

	require.Len(t, record.Camping, 2)
	assert.Equal(t, Row{
		"type":               str("Tent"),
		"capacity":           str("20"),
		"reservation_window": str("6 months"),
	}, record.Camping[0])
	assert.Equal(t, "RV", *record.Camping[1]["type"])
	assert.Equal(t, "10", *record.Camping[1]["capacity"])
	assert.Contains(t, record.Camping[1], "reservation_window")
	assert.Nil(t, record.Camping[1]["reservation_window"])
}

func TestExtractAttractionHeaderMapIsExact(t *testing.T) {
	record, err := NewExtractor(nil).Extract("x.md", []interfaces.Block{
		h(1, "Arches"),
		h(2, "Key Attractions"),
		tbl([]string{"Attraction", "NOTES", "Best Time"}, map[string][]string{
			"Attraction": {"Delicate Arch"},
			"NOTES":      {"3 miles"},
			"Best Time":  {"Sunset"},
		}),
	})
	require.NoError(t, err)
	require.Len(t, record.Attractions, 1)

	row := record.Attractions[0]
	assert.Equal(t, "Delicate Arch", *row.Value("attraction_name"))
	assert.Equal(t, "3 miles", *row.Value("notes"))
	assert.Equal(t, "Sunset", *row.Value("best_time"))
}

func TestExtractMalformedTablesAreSkipped(t *testing.T) {
	record, err := NewExtractor(nil).Extract("x.md", []interfaces.Block{
		h(1, "Zion"),
		p("**Location:** Utah"),
		h(2, "Fees & Passes"),
		tbl(nil, nil),
		tbl([]string{"Category", "Cost"}, map[string][]string{"Category": {"Car"}}),
		tbl([]string{"Category"}, map[string][]string{"Category": {}}),
		tbl([]string{"Category"}, map[string][]string{"Category": {"Bike"}}),
	})
	require.NoError(t, err)

	require.Len(t, record.Fees, 1)
	assert.Equal(t, "Bike", *record.Fees[0]["category"])
	assert.Equal(t, "Utah", record.Details["location"])
}

func TestExtractIgnoresNilAndDeepHeaders(t *testing.T) {
	record, err := NewExtractor(nil).Extract("x.md", []interfaces.Block{
		h(1, "Zion"),
		nil,
		h(2, "Fees & Passes"),
		h(3, "Notes"),
		tbl([]string{"Category"}, map[string][]string{"Category": {"Car"}}),
	})
	require.NoError(t, err)
	assert.Len(t, record.Fees, 1)
}
