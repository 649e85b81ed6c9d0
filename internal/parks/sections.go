package parks

import (
	"strings"

	"golang.org/x/text/cases"
)

// Section is the document region selected by the most recent H2.
type Section int

const (
	SectionNone Section = iota
	SectionDescription
	SectionCamping
	SectionFees
	SectionSeasons
	SectionAttractions
)

// String names the section as its rows are stored.
func (s Section) String() string {
	switch s {
	case SectionDescription:
		return "description"
	case SectionCamping:
		return "camping"
	case SectionFees:
		return "fees"
	case SectionSeasons:
		return "seasons"
	case SectionAttractions:
		return "attractions"
	default:
		return "none"
	}
}

// IsList reports whether tables under the section become rows.
func (s Section) IsList() bool {
	return s >= SectionCamping && s <= SectionAttractions
}

// ListSections enumerates the table-backed sections in load order.
var ListSections = []Section{SectionCamping, SectionFees, SectionSeasons, SectionAttractions}

type sectionTitle struct {
	title   string
	section Section
}

// sectionTitles is checked in order; the first title contained in the H2
// text wins.
var sectionTitles = []sectionTitle{
	{title: "park description", section: SectionDescription},
	{title: "camping information", section: SectionCamping},
	{title: "fees & passes", section: SectionFees},
	{title: "seasonal operations", section: SectionSeasons},
	{title: "key attractions", section: SectionAttractions},
}

// MatchSection maps H2 text onto a Section using a case-folded substring
// match. Unknown titles return SectionNone and false.
func MatchSection(heading string) (Section, bool) {
	folded := cases.Fold().String(heading)
	for _, candidate := range sectionTitles {
		if strings.Contains(folded, cases.Fold().String(candidate.title)) {
			return candidate.section, true
		}
	}
	return SectionNone, false
}

// columnKeys maps Markdown column headers to row keys per section. Lookups
// are exact; anything else falls back to fallbackColumnKey.
var columnKeys = map[Section]map[string]string{
	SectionCamping: {
		"Type":      "type",
		"Capacity":  "capacity",
		"Amenities": "amenities",
		"Notes":     "notes",
	},
	SectionFees: {
		"Category": "category",
		"Cost":     "cost",
		"Notes":    "notes",
	},
	SectionSeasons: {
		"Season":          "season_name",
		"Dates":           "dates",
		"Characteristics": "characteristics",
	},
	SectionAttractions: {
		"Attraction":  "attraction_name",
		"Description": "description",
		"NOTES":       "notes",
	},
}

// ColumnKey returns the row key for a table header under section.
func ColumnKey(section Section, header string) string {
	if key, ok := columnKeys[section][header]; ok {
		return key
	}
	return fallbackColumnKey(header)
}

func fallbackColumnKey(header string) string {
	return strings.ReplaceAll(strings.ToLower(header), " ", "_")
}
