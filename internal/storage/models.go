package storage

import "github.com/uptrace/bun"

// Park is the parent row; name is the upsert key.
type Park struct {
	bun.BaseModel `bun:"table:parks"`

	ParkID int64  `bun:"park_ID,pk,autoincrement"`
	Name   string `bun:"name,notnull,unique"`
	Slug   string `bun:"slug"`
}

// Details is the one row of free-form facts per park.
type Details struct {
	bun.BaseModel `bun:"table:details"`

	DetailID       int64             `bun:"detail_ID,pk,autoincrement"`
	ParkID         int64             `bun:"park_ID,notnull"`
	Location       *string           `bun:"location"`
	Established    *int64            `bun:"established"`
	EstablishedRaw *string           `bun:"established_raw"`
	SizeAcres      *int64            `bun:"size_acres"`
	SizeRaw        *string           `bun:"size_raw"`
	Ecosystems     *string           `bun:"ecosystems"`
	UniqueFeature  *string           `bun:"unique_feature"`
	Description    string            `bun:"description"`
	Extra          map[string]string `bun:"extra,type:jsonb,nullzero"`
}

// Camping is one campground row.
type Camping struct {
	bun.BaseModel `bun:"table:camping"`

	CampingID int64   `bun:"camping_ID,pk,autoincrement"`
	ParkID    int64   `bun:"park_ID,notnull"`
	Type      *string `bun:"type"`
	Capacity  *string `bun:"capacity"`
	Amenities *string `bun:"amenities"`
	Notes     *string `bun:"notes"`
}

// Fee is one entry of the fees and passes table.
type Fee struct {
	bun.BaseModel `bun:"table:fees"`

	FeeID    int64   `bun:"fee_ID,pk,autoincrement"`
	ParkID   int64   `bun:"park_ID,notnull"`
	Category *string `bun:"category"`
	Cost     *string `bun:"cost"`
	Notes    *string `bun:"notes"`
}

// Season is one entry of the seasonal operations table.
type Season struct {
	bun.BaseModel `bun:"table:seasons"`

	SeasonID        int64   `bun:"season_ID,pk,autoincrement"`
	ParkID          int64   `bun:"park_ID,notnull"`
	SeasonName      *string `bun:"season_name"`
	Dates           *string `bun:"dates"`
	Characteristics *string `bun:"characteristics"`
}

// Attraction is one entry of the key attractions table.
type Attraction struct {
	bun.BaseModel `bun:"table:attractions"`

	AttractionID   int64   `bun:"attraction_ID,pk,autoincrement"`
	ParkID         int64   `bun:"park_ID,notnull"`
	AttractionName *string `bun:"attraction_name"`
	Description    *string `bun:"description"`
	Notes          *string `bun:"notes"`
}

// Table names of the child tables, in the order they are cleared and filled.
const (
	TableDetails     = "details"
	TableCamping     = "camping"
	TableFees        = "fees"
	TableSeasons     = "seasons"
	TableAttractions = "attractions"
)

var childModels = []struct {
	table string
	model any
}{
	{TableDetails, (*Details)(nil)},
	{TableCamping, (*Camping)(nil)},
	{TableFees, (*Fee)(nil)},
	{TableSeasons, (*Season)(nil)},
	{TableAttractions, (*Attraction)(nil)},
}
