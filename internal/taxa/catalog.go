package taxa

import "time"

// Profile describes how one taxon responds to flight conditions. All
// parameters are fixed at process start; catalog order carries no meaning
// beyond tie-breaking in ranked output.
type Profile struct {
	Genus   string
	Species string // empty when the profile covers the whole genus

	// Months in which the taxon is known to fly.
	ActiveMonths []time.Month

	OptimalTempC    float64 // centre of the Gaussian temperature response
	TempTolerance   float64 // width of the temperature response
	HumiditySlope   float64 // logistic slope of the humidity response
	RainSensitivity float64 // multiplier on the rain-recency term
	WindPenalty     float64 // fraction of the wind term lost to wind aversion
}

// ActiveIn reports whether the profile flies in the given month.
func (p Profile) ActiveIn(m time.Month) bool {
	for _, am := range p.ActiveMonths {
		if am == m {
			return true
		}
	}
	return false
}

var catalog = []Profile{
	{
		Genus:           "Lasius",
		Species:         "niger",
		ActiveMonths:    []time.Month{time.June, time.July, time.August, time.September},
		OptimalTempC:    27,
		TempTolerance:   5,
		HumiditySlope:   0.12,
		RainSensitivity: 1.2,
		WindPenalty:     0.3,
	},
	{
		Genus:           "Lasius",
		Species:         "flavus",
		ActiveMonths:    []time.Month{time.July, time.August, time.September},
		OptimalTempC:    25,
		TempTolerance:   5,
		HumiditySlope:   0.10,
		RainSensitivity: 1.1,
		WindPenalty:     0.35,
	},
	{
		Genus:           "Formica",
		ActiveMonths:    []time.Month{time.May, time.June, time.July, time.August},
		OptimalTempC:    24,
		TempTolerance:   6,
		HumiditySlope:   0.08,
		RainSensitivity: 0.8,
		WindPenalty:     0.2,
	},
	{
		Genus:           "Myrmica",
		ActiveMonths:    []time.Month{time.August, time.September, time.October},
		OptimalTempC:    22,
		TempTolerance:   5,
		HumiditySlope:   0.14,
		RainSensitivity: 1.0,
		WindPenalty:     0.4,
	},
	{
		Genus:           "Tetramorium",
		ActiveMonths:    []time.Month{time.June, time.July, time.August},
		OptimalTempC:    28,
		TempTolerance:   4,
		HumiditySlope:   0.11,
		RainSensitivity: 1.3,
		WindPenalty:     0.25,
	},
	{
		Genus:           "Solenopsis",
		Species:         "invicta",
		ActiveMonths:    []time.Month{time.April, time.May, time.June, time.July, time.August, time.September},
		OptimalTempC:    30,
		TempTolerance:   5,
		HumiditySlope:   0.13,
		RainSensitivity: 1.4,
		WindPenalty:     0.3,
	},
	{
		Genus:           "Camponotus",
		ActiveMonths:    []time.Month{time.April, time.May, time.June, time.July},
		OptimalTempC:    26,
		TempTolerance:   6,
		HumiditySlope:   0.09,
		RainSensitivity: 0.7,
		WindPenalty:     0.2,
	},
	{
		Genus:           "Pheidole",
		ActiveMonths:    []time.Month{time.May, time.June, time.July, time.August, time.September},
		OptimalTempC:    29,
		TempTolerance:   5,
		HumiditySlope:   0.12,
		RainSensitivity: 1.2,
		WindPenalty:     0.35,
	},
	{
		Genus:           "Crematogaster",
		ActiveMonths:    []time.Month{time.September, time.October, time.November},
		OptimalTempC:    27,
		TempTolerance:   5,
		HumiditySlope:   0.10,
		RainSensitivity: 0.9,
		WindPenalty:     0.3,
	},
	{
		Genus:           "Prenolepis",
		Species:         "imparis",
		ActiveMonths:    []time.Month{time.February, time.March, time.April},
		OptimalTempC:    16,
		TempTolerance:   4,
		HumiditySlope:   0.08,
		RainSensitivity: 0.6,
		WindPenalty:     0.25,
	},
}

// Catalog returns the shared taxon catalog. Callers must treat the returned
// slice as read-only.
func Catalog() []Profile {
	return catalog
}

// Name returns the display identity of the profile.
func (p Profile) Name() string {
	if p.Species == "" {
		return p.Genus
	}
	return p.Genus + " " + p.Species
}
