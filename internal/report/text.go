package report

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/aggregate"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/carbon"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/logging"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/summary"
)

// Message keys. English text doubles as the key.
const (
	msgHeadingAll       = "AURORA report for all countries"
	msgHeadingCountries = "AURORA report for %s"
	msgUsers            = "%d users took part: %d female, %d male, %d non-binary and %d with another or no stated gender."
	msgConsumptions     = "They recorded %d consumptions, %d of them recurring."
	msgCategory         = "%s: %d entries with %s kg CO2 and %s kWh."
	msgTotal            = "Overall %s kg CO2 were emitted and %s kWh of energy were used."
	msgEquivalency      = "That is as much CO2 as driving about %s km by car or charging %s smartphones."
	msgAnd              = "and"
)

//nolint:gochecknoglobals // Category display names per language.
var categoryNames = map[language.Tag]map[summary.Category]string{
	language.English: {
		summary.CategoryElectricity:    "Electricity",
		summary.CategoryHeating:        "Heating",
		summary.CategoryTransportation: "Transportation",
	},
	language.German: {
		summary.CategoryElectricity:    "Strom",
		summary.CategoryHeating:        "Heizung",
		summary.CategoryTransportation: "Mobilität",
	},
}

// SupportedLanguages lists the report languages, default first.
//
//nolint:gochecknoglobals // Read-only list.
var SupportedLanguages = []language.Tag{language.English, language.German}

//nolint:gochecknoglobals // Built once on first use.
var reportCatalog = sync.OnceValue(buildCatalog)

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	set := func(tag language.Tag, key string, msg catalog.Message) {
		if err := b.Set(tag, key, msg); err != nil {
			panic(fmt.Sprintf("report catalog %s %q: %v", tag, key, err))
		}
	}
	str := func(tag language.Tag, key, text string) {
		set(tag, key, catalog.String(text))
	}

	en, de := language.English, language.German

	str(en, msgHeadingAll, msgHeadingAll)
	str(en, msgHeadingCountries, msgHeadingCountries)
	set(en, msgUsers, plural.Selectf(1, "%d",
		"=1", "%d user took part: %d female, %d male, %d non-binary and %d with another or no stated gender.",
		"other", msgUsers,
	))
	str(en, msgConsumptions, msgConsumptions)
	str(en, msgCategory, msgCategory)
	str(en, msgTotal, msgTotal)
	str(en, msgEquivalency, msgEquivalency)
	str(en, msgAnd, msgAnd)

	str(de, msgHeadingAll, "AURORA-Bericht für alle Länder")
	str(de, msgHeadingCountries, "AURORA-Bericht für %s")
	set(de, msgUsers, plural.Selectf(1, "%d",
		"=1", "%d Person hat teilgenommen: %d weiblich, %d männlich, %d nicht-binär und %d mit anderem oder ohne angegebenes Geschlecht.",
		"other", "%d Personen haben teilgenommen: %d weiblich, %d männlich, %d nicht-binär und %d mit anderem oder ohne angegebenes Geschlecht.",
	))
	str(de, msgConsumptions, "Sie haben %d Verbräuche erfasst, davon %d wiederkehrend.")
	str(de, msgCategory, "%s: %d Einträge mit %s kg CO2 und %s kWh.")
	str(de, msgTotal, "Insgesamt wurden %s kg CO2 ausgestoßen und %s kWh Energie verbraucht.")
	str(de, msgEquivalency, "Das entspricht so viel CO2 wie etwa %s km Autofahrt oder %s Smartphone-Ladungen.")
	str(de, msgAnd, "und")

	return b
}

//nolint:gochecknoglobals // Matcher over SupportedLanguages.
var matcher = language.NewMatcher(SupportedLanguages)

// MatchLanguage maps any tag to the closest supported report language.
func MatchLanguage(tag language.Tag) language.Tag {
	_, idx, _ := matcher.Match(tag)
	return SupportedLanguages[idx]
}

// ParseLanguage parses a BCP 47 tag such as "de" or "en-GB" and matches it
// to a supported report language.
func ParseLanguage(s string) (language.Tag, error) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	return MatchLanguage(tag), nil
}

func newPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(MatchLanguage(tag), message.Catalog(reportCatalog()))
}

// Options configures AutoReport.
type Options struct {
	// Language of the text. Unsupported languages fall back to English.
	Language language.Tag
	// CountryIDs selects the countries to report on. Empty means all.
	CountryIDs []string
	// CarbonUnit is the unit of the carbon values in meta. Empty means kg.
	CarbonUnit string
	// Precision is the number of decimals for carbon and energy values.
	Precision int
}

// AutoReport renders the natural-language report for the selected
// countries. Integer counts are substituted exactly; carbon and energy are
// rounded to opts.Precision and locale-formatted. An equivalency sentence
// is appended when the carbon total reaches the equivalency threshold.
func AutoReport(ctx context.Context, meta []aggregate.MetaData, opts Options) string {
	logger := logging.FromContext(ctx).With().
		Str("component", "report").
		Str("operation", "AutoReport").
		Logger()

	tag := MatchLanguage(opts.Language)
	p := newPrinter(tag)
	f := carbon.NewFormatter(tag)
	totals := Aggregate(meta, opts.CountryIDs)

	kg := func(v float64) float64 {
		out, err := carbon.NormalizeToKg(v, opts.CarbonUnit)
		if err != nil {
			return v
		}
		return out
	}

	var lines []string
	switch {
	case len(opts.CountryIDs) == 0:
		lines = append(lines, p.Sprintf(msgHeadingAll))
	case len(totals.Countries) == 0:
		lines = append(lines, p.Sprintf(msgHeadingCountries, ConcatenatedCountries(opts.CountryIDs, tag)))
	default:
		lines = append(lines, p.Sprintf(msgHeadingCountries, ConcatenatedCountries(totals.Countries, tag)))
	}

	g := totals.Genders
	lines = append(lines,
		p.Sprintf(msgUsers, totals.UserCount, g.Female, g.Male, g.NonBinary, g.Other),
		p.Sprintf(msgConsumptions, totals.ConsumptionsCount, totals.RecurringConsumptionsCount),
	)

	for _, cat := range summary.Categories {
		ct := totals.For(cat)
		lines = append(lines, p.Sprintf(msgCategory,
			categoryNames[tag][cat],
			ct.Count,
			f.Float(kg(ct.CarbonEmissions), opts.Precision),
			f.Float(ct.EnergyExpended, opts.Precision),
		))
	}

	totalKg := kg(totals.CarbonEmissions())
	lines = append(lines, p.Sprintf(msgTotal,
		f.Float(totalKg, opts.Precision),
		f.Float(totals.EnergyExpended(), opts.Precision),
	))

	eq, err := carbon.Equivalencies(totalKg)
	switch {
	case err != nil:
		logger.Warn().Ctx(ctx).Err(err).Float64("carbon_kg", totalKg).Msg("equivalency skipped")
	case !eq.IsEmpty:
		miles, _ := eq.Result(carbon.EquivalencyMilesDriven)
		phones, _ := eq.Result(carbon.EquivalencySmartphonesCharged)
		lines = append(lines, p.Sprintf(msgEquivalency,
			f.Large(miles.Value*carbon.KmPerMile),
			f.Large(phones.Value),
		))
	}

	logger.Debug().Ctx(ctx).
		Str("language", tag.String()).
		Int("country_count", len(totals.Countries)).
		Int("user_count", totals.UserCount).
		Msg("report rendered")

	return strings.Join(lines, "\n")
}

// ConcatenatedCountries joins names as "A, B and C" using the localized
// conjunction. No names give "" and one name is returned unchanged.
func ConcatenatedCountries(names []string, lang language.Tag) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		and := newPrinter(lang).Sprintf(msgAnd)
		return strings.Join(names[:len(names)-1], ", ") + " " + and + " " + names[len(names)-1]
	}
}

// ValueFormatterPercentage formats a ratio as a percentage with at most one
// decimal: 0.5 gives "50%" and 0.1234 gives "12.3%". NaN and infinities
// give "N/A".
func ValueFormatterPercentage(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	pct := math.Round(v*1000) / 10
	if pct == 0 {
		// drop negative zero
		pct = 0
	}
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}
