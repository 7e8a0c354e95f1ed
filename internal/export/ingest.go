package export

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"time"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/logging"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/summary"
)

// DefaultDaysPeriod is the export period recorded when none is given.
const DefaultDaysPeriod = 30

type ingestOptions struct {
	daysPeriod int
	locations  Locations
}

// Option configures Ingest.
type Option func(*ingestOptions)

// WithDaysPeriod records the number of days the export covers.
func WithDaysPeriod(days int) Option {
	return func(o *ingestOptions) { o.daysPeriod = days }
}

// WithLocations sets the lookup used for country and city names.
func WithLocations(l Locations) Option {
	return func(o *ingestOptions) {
		if l != nil {
			o.locations = l
		}
	}
}

// Ingest folds an export into one Summary dated date (epoch seconds).
//
// Users are grouped by country and city, falling back to the otherCountry
// and otherCity sentinels. Each consumption record adds to its category and
// source totals and, when dated, to the UTC month it falls in. Records of an
// unknown category count as consumptions but are not bucketed; records
// without a source add to the category total only.
//
// The export is not modified and the returned Summary shares no memory with it.
func Ingest(ctx context.Context, exp Export, date int64, opts ...Option) summary.Summary {
	o := ingestOptions{daysPeriod: DefaultDaysPeriod, locations: &Directory{}}
	for _, opt := range opts {
		opt(&o)
	}

	logger := logging.FromContext(ctx).With().
		Str("component", "export").
		Str("operation", "Ingest").
		Logger()

	b := newBuilder(o.locations)
	skipped := 0
	for _, uid := range slices.Sorted(maps.Keys(exp)) {
		skipped += b.addUser(exp[uid])
	}

	result := b.build(date, o.daysPeriod)

	logger.Debug().Ctx(ctx).
		Int("user_count", len(exp)).
		Int("country_count", len(result.Countries)).
		Int("unbucketed_records", skipped).
		Int64("date", date).
		Msg("export ingested")

	return result
}

type builder struct {
	locations Locations
	countries map[string]*countryNode
}

type countryNode struct {
	id, name, code string
	cities         map[string]*cityNode
}

type cityNode struct {
	id, name   string
	users      summary.Users
	genders    map[string]int
	categories map[summary.Category]*categoryNode
}

type categoryNode struct {
	data     summary.CategoryData
	sources  map[string]*summary.SourceData
	temporal map[int]map[int]*summary.TemporalMonth
}

func newBuilder(l Locations) *builder {
	return &builder{locations: l, countries: make(map[string]*countryNode)}
}

func (b *builder) country(id string) *countryNode {
	if n, ok := b.countries[id]; ok {
		return n
	}
	name, code := b.locations.Country(id)
	n := &countryNode{id: id, name: name, code: code, cities: make(map[string]*cityNode)}
	b.countries[id] = n
	return n
}

func (b *builder) city(country *countryNode, id string) *cityNode {
	if n, ok := country.cities[id]; ok {
		return n
	}
	n := &cityNode{
		id:         id,
		name:       b.locations.City(id),
		genders:    make(map[string]int),
		categories: make(map[summary.Category]*categoryNode),
	}
	country.cities[id] = n
	return n
}

// addUser adds one user and returns the number of records that could not
// be bucketed into a category.
func (b *builder) addUser(u SingleUser) int {
	countryID := cmp.Or(u.Country, summary.OtherCountry)
	cityID := cmp.Or(u.City, summary.OtherCity)

	city := b.city(b.country(countryID), cityID)
	city.users.UserCount++
	city.genders[cmp.Or(u.Gender, summary.UnknownGender)]++

	skipped := 0
	for _, cid := range slices.Sorted(maps.Keys(u.Consumptions)) {
		if !city.addConsumption(u.Consumptions[cid]) {
			skipped++
		}
	}
	return skipped
}

func (c *cityNode) addConsumption(rec SingleConsumption) bool {
	c.users.ConsumptionsCount++
	if rec.Recurring() {
		c.users.RecurringConsumptionsCount++
	}

	switch rec.Category {
	case summary.CategoryElectricity, summary.CategoryHeating, summary.CategoryTransportation:
		c.category(rec.Category).add(rec)
		return true
	case summary.CategoryUnknown:
		return false
	default:
		return false
	}
}

func (c *cityNode) category(cat summary.Category) *categoryNode {
	if n, ok := c.categories[cat]; ok {
		return n
	}
	n := &categoryNode{
		data:     summary.CategoryData{Category: cat},
		sources:  make(map[string]*summary.SourceData),
		temporal: make(map[int]map[int]*summary.TemporalMonth),
	}
	c.categories[cat] = n
	return n
}

func (n *categoryNode) add(rec SingleConsumption) {
	carbon, energy := rec.Carbon(), rec.Energy()

	n.data.Count++
	n.data.CarbonEmissions += carbon
	n.data.EnergyExpended += energy

	if source := rec.Source(); source != "" {
		sd, ok := n.sources[source]
		if !ok {
			sd = &summary.SourceData{Source: source}
			n.sources[source] = sd
		}
		sd.Count++
		sd.CarbonEmissions += carbon
		sd.EnergyExpended += energy
		sd.Value += rec.Value
	}

	if secs, ok := rec.BucketDate(); ok {
		t := time.Unix(secs, 0).UTC()
		months, ok := n.temporal[t.Year()]
		if !ok {
			months = make(map[int]*summary.TemporalMonth)
			n.temporal[t.Year()] = months
		}
		m, ok := months[int(t.Month())]
		if !ok {
			m = &summary.TemporalMonth{Month: int(t.Month())}
			months[int(t.Month())] = m
		}
		m.Count++
		m.CarbonEmissions += carbon
		m.EnergyExpended += energy
	}
}

// build freezes the grouped nodes into a Summary with deterministically
// ordered slices.
func (b *builder) build(date int64, daysPeriod int) summary.Summary {
	out := summary.Summary{
		Date:       date,
		DaysPeriod: daysPeriod,
		Countries:  make([]summary.Country, 0, len(b.countries)),
	}

	for _, cid := range slices.Sorted(maps.Keys(b.countries)) {
		cn := b.countries[cid]
		country := summary.Country{
			CountryID:   cn.id,
			CountryName: cn.name,
			CountryCode: cn.code,
			Cities:      make([]summary.City, 0, len(cn.cities)),
		}
		for _, cityID := range slices.Sorted(maps.Keys(cn.cities)) {
			country.Cities = append(country.Cities, cn.cities[cityID].build())
		}
		out.Countries = append(out.Countries, country)
	}
	return out
}

func (c *cityNode) build() summary.City {
	city := summary.City{
		CityID:     c.id,
		CityName:   c.name,
		Users:      c.users,
		Categories: make([]summary.CategoryData, 0, len(c.categories)),
	}

	city.Users.Genders = make([]summary.GenderCount, 0, len(c.genders))
	for _, g := range slices.Sorted(maps.Keys(c.genders)) {
		city.Users.Genders = append(city.Users.Genders, summary.GenderCount{Gender: g, Count: c.genders[g]})
	}

	for _, cat := range summary.Categories {
		if n, ok := c.categories[cat]; ok {
			city.Categories = append(city.Categories, n.build())
		}
	}
	return city
}

func (n *categoryNode) build() summary.CategoryData {
	data := n.data
	data.SourceData = make([]summary.SourceData, 0, len(n.sources))
	for _, s := range slices.Sorted(maps.Keys(n.sources)) {
		data.SourceData = append(data.SourceData, *n.sources[s])
	}

	data.Temporal = make([]summary.TemporalYear, 0, len(n.temporal))
	for _, year := range slices.Sorted(maps.Keys(n.temporal)) {
		months := n.temporal[year]
		ty := summary.TemporalYear{Year: year, Months: make([]summary.TemporalMonth, 0, len(months))}
		for _, m := range slices.Sorted(maps.Keys(months)) {
			ty.Months = append(ty.Months, *months[m])
		}
		data.Temporal = append(data.Temporal, ty)
	}
	return data
}
