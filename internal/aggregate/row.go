package aggregate

import (
	"bytes"
	"encoding/json"
	"maps"
	"math"
	"slices"
	"sort"
	"strconv"
	"time"
)

// Bucket label layouts.
const (
	MonthLabelLayout = "Jan 2006"
	DayLabelLayout   = "2006-01-02"
)

// DateColumn is the JSON key of a row's bucket label.
const DateColumn = "Date"

// CountryColumn returns the column a country name is stored under. A country
// named like the label column gets a " (country)" suffix so that both
// survive in JSON.
func CountryColumn(name string) string {
	if name == DateColumn {
		return name + " (country)"
	}
	return name
}

// TimelineRow is one calendar bucket of a timeline with one value per
// country name. It encodes to JSON as {"Date": label, "<country>": value}.
// A country called "Date" is stored under CountryColumn(name).
type TimelineRow struct {
	Date   string
	Values map[string]float64

	at time.Time
}

// NewTimelineRow creates an empty row for the bucket starting at t.
func NewTimelineRow(label string, t time.Time) TimelineRow {
	return TimelineRow{Date: label, Values: map[string]float64{}, at: t}
}

// Time returns the start of the row's bucket.
func (r TimelineRow) Time() time.Time {
	return r.at
}

// Countries returns the column names of the row, sorted.
func (r TimelineRow) Countries() []string {
	return slices.Sorted(maps.Keys(r.Values))
}

// MarshalJSON writes the Date label first, then the country columns in
// name order. NaN and infinities have no JSON form and are written as null.
func (r TimelineRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"` + DateColumn + `":`)
	label, err := json.Marshal(r.Date)
	if err != nil {
		return nil, err
	}
	buf.Write(label)

	for _, name := range r.Countries() {
		key, keyErr := json.Marshal(CountryColumn(name))
		if keyErr != nil {
			return nil, keyErr
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')

		v := r.Values[name]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf.WriteString("null")
			continue
		}
		buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// sortRows orders rows ascending by bucket time, keeping the input order of
// equal buckets.
func sortRows(rows []TimelineRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].at.Before(rows[j].at)
	})
}
