// Package summary defines the snapshot data model produced by ingestion and
// consumed by the aggregation and report packages.
//
// A Summary is built once per export and treated as immutable afterwards;
// every derived structure is a fresh object graph.
package summary

// Sentinel location keys used when a user has no country or city.
const (
	OtherCountry = "otherCountry"
	OtherCity    = "otherCity"
	// UnknownGender is recorded for users without a gender.
	UnknownGender = "unknown"
)

// Summary is one snapshot: consumption data of every user grouped by
// country, city and category.
type Summary struct {
	// Date is the snapshot time in epoch seconds.
	Date int64 `json:"date"`
	// DaysPeriod is the number of days the export covers.
	DaysPeriod int       `json:"daysPeriod"`
	Countries  []Country `json:"countries"`
}

// Country groups the cities of one country.
type Country struct {
	CountryID   string `json:"countryID"`
	CountryName string `json:"countryName"`
	CountryCode string `json:"countryCode"`
	Cities      []City `json:"cities"`
}

// City holds the user block and per-category totals of one city.
type City struct {
	CityID     string         `json:"cityID"`
	CityName   string         `json:"cityName"`
	Users      Users          `json:"users"`
	Categories []CategoryData `json:"categories"`
}

// Users counts the users of a city and their consumption records.
type Users struct {
	UserCount                  int           `json:"userCount"`
	ConsumptionsCount          int           `json:"consumptionsCount"`
	RecurringConsumptionsCount int           `json:"recurringConsumptionsCount"`
	Genders                    []GenderCount `json:"genders"`
}

// GenderCount is the number of users reporting one gender.
type GenderCount struct {
	Gender string `json:"gender"`
	Count  int    `json:"count"`
}

// CategoryData holds running totals for one category within a city.
type CategoryData struct {
	Category        Category       `json:"category"`
	Count           int            `json:"count"`
	CarbonEmissions float64        `json:"carbonEmissions"`
	EnergyExpended  float64        `json:"energyExpended"`
	SourceData      []SourceData   `json:"sourceData"`
	Temporal        []TemporalYear `json:"temporal"`
}

// SourceData holds running totals for one source within a category.
type SourceData struct {
	Source          string  `json:"source"`
	Count           int     `json:"count"`
	CarbonEmissions float64 `json:"carbonEmissions"`
	EnergyExpended  float64 `json:"energyExpended"`
	Value           float64 `json:"value"`
}

// TemporalYear is the monthly breakdown of one calendar year.
type TemporalYear struct {
	Year   int             `json:"year"`
	Months []TemporalMonth `json:"months"`
}

// TemporalMonth holds totals of the records dated in one month (1-12).
type TemporalMonth struct {
	Month           int     `json:"month"`
	Count           int     `json:"count"`
	CarbonEmissions float64 `json:"carbonEmissions"`
	EnergyExpended  float64 `json:"energyExpended"`
}

// GlobalSummary is the downloadable collection of snapshots.
type GlobalSummary struct {
	// GeneratedAt is when the collection was assembled, in epoch seconds.
	GeneratedAt int64     `json:"generatedAt"`
	Snapshots   []Summary `json:"snapshots"`
}

// Category returns the data of category c, if present.
func (c *City) Category(cat Category) (*CategoryData, bool) {
	for i := range c.Categories {
		if c.Categories[i].Category == cat {
			return &c.Categories[i], true
		}
	}
	return nil, false
}

// UserCount sums the users of every city.
func (c *Country) UserCount() int {
	total := 0
	for _, city := range c.Cities {
		total += city.Users.UserCount
	}
	return total
}
