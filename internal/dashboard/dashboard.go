// Package dashboard provides the figures shown on the landing page: the stat
// cards and the two chart series. They come from a YAML file when one is
// configured and fall back to built-in values otherwise.
package dashboard

import (
	"os"

	"github.com/go-faster/errors"
	"gopkg.in/yaml.v3"

	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/charts"
)

// Stat is one summary card.
type Stat struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// Data is everything the dashboard page renders.
type Data struct {
	Stats      []Stat         `yaml:"stats"`
	AreaTitle  string         `yaml:"area_title"`
	Area       []charts.Point `yaml:"area"`
	DonutTitle string         `yaml:"donut_title"`
	Donut      []charts.Slice `yaml:"donut"`
}

// Default returns the built-in dashboard figures.
func Default() Data {
	return Data{
		Stats: []Stat{
			{Label: "Total Users", Value: "1,234"},
			{Label: "Active Projects", Value: "87"},
			{Label: "Revenue", Value: "$45,000"},
			{Label: "Growth", Value: "+12%"},
		},
		AreaTitle: "User Growth",
		Area: []charts.Point{
			{Label: "Jan", Value: 100},
			{Label: "Feb", Value: 180},
			{Label: "Mar", Value: 160},
			{Label: "Apr", Value: 220},
			{Label: "May", Value: 260},
			{Label: "Jun", Value: 300},
			{Label: "Jul", Value: 350},
			{Label: "Aug", Value: 400},
			{Label: "Sep", Value: 420},
			{Label: "Oct", Value: 480},
			{Label: "Nov", Value: 500},
			{Label: "Dec", Value: 600},
		},
		DonutTitle: "Employee Distribution",
		Donut: []charts.Slice{
			{Label: "Active", Value: 60, Color: "#38bdf8"},
			{Label: "On Leave", Value: 25, Color: "#0ea5e9"},
			{Label: "Inactive", Value: 10, Color: "#818cf8"},
			{Label: "Contract", Value: 5, Color: "#a5b4fc"},
		},
	}
}

// Load returns Default when path is empty and LoadFile otherwise.
func Load(path string) (Data, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a YAML file over the defaults; keys absent from the file
// keep their built-in value.
func LoadFile(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, errors.Wrap(err, "read dashboard data")
	}
	return Parse(raw)
}

// Parse decodes YAML over the defaults.
func Parse(raw []byte) (Data, error) {
	d := Default()
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return Data{}, errors.Wrap(err, "parse dashboard data")
	}
	return d, nil
}
