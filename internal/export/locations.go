package export

import "github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/summary"

// otherLabel is the display name of the sentinel locations.
const otherLabel = "Other"

// Locations resolves location ids to display names.
type Locations interface {
	Country(id string) (name, code string)
	City(id string) string
}

// CountryInfo describes one country of a Directory.
type CountryInfo struct {
	Name string `yaml:"name" json:"name"`
	Code string `yaml:"code" json:"code"`
}

// Directory is a static Locations backed by maps. Unknown ids resolve to
// themselves so that nothing is dropped when the directory is incomplete.
type Directory struct {
	Countries map[string]CountryInfo
	Cities    map[string]string
}

// NewDirectory copies the given maps into a Directory.
func NewDirectory(countries map[string]CountryInfo, cities map[string]string) *Directory {
	d := &Directory{
		Countries: make(map[string]CountryInfo, len(countries)),
		Cities:    make(map[string]string, len(cities)),
	}
	for k, v := range countries {
		d.Countries[k] = v
	}
	for k, v := range cities {
		d.Cities[k] = v
	}
	return d
}

// Country returns the display name and code of a country id.
func (d *Directory) Country(id string) (string, string) {
	if d != nil {
		if info, ok := d.Countries[id]; ok {
			name := info.Name
			if name == "" {
				name = id
			}
			return name, info.Code
		}
	}
	if id == summary.OtherCountry {
		return otherLabel, ""
	}
	return id, ""
}

// City returns the display name of a city id.
func (d *Directory) City(id string) string {
	if d != nil {
		if name, ok := d.Cities[id]; ok && name != "" {
			return name
		}
	}
	if id == summary.OtherCity {
		return otherLabel
	}
	return id
}
