package pairing

import "sort"

// Summary contains aggregate counts over a set of pairs
type Summary struct {
	Total     int `json:"total" yaml:"total"`
	Calving   int `json:"calving" yaml:"calving"`
	NoCalving int `json:"no_calving" yaml:"no_calving"`
	Unlabeled int `json:"unlabeled" yaml:"unlabeled"`

	// Areas of calving pairs that carry one; augmented pairs do not
	Area AreaStats `json:"area" yaml:"area"`
}

// AreaStats contains statistics over calving box areas
type AreaStats struct {
	Count  int     `json:"count" yaml:"count"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
}

// Summarize counts pairs per label and aggregates calving areas
func Summarize(pairs []Pair) Summary {
	summary := Summary{Total: len(pairs)}

	var areas []float64
	for _, p := range pairs {
		switch p.Label {
		case Calving:
			summary.Calving++
			if p.Area != nil {
				areas = append(areas, *p.Area)
			}
		case NoCalving:
			summary.NoCalving++
		case Unlabeled:
			summary.Unlabeled++
		}
	}

	summary.Area = calculateAreaStats(areas)
	return summary
}

// Areas returns the area of every calving pair that has one, in order
func Areas(pairs []Pair) []float64 {
	var areas []float64
	for _, p := range pairs {
		if p.Label == Calving && p.Area != nil {
			areas = append(areas, *p.Area)
		}
	}
	return areas
}

func calculateAreaStats(areas []float64) AreaStats {
	stats := AreaStats{Count: len(areas)}
	if len(areas) == 0 {
		return stats
	}

	sorted := append([]float64(nil), areas...)
	sort.Float64s(sorted)

	sum := 0.0
	for _, a := range sorted {
		sum += a
	}
	stats.Mean = sum / float64(len(sorted))

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		stats.Median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		stats.Median = sorted[mid]
	}

	stats.Min = sorted[0]
	stats.Max = sorted[len(sorted)-1]

	return stats
}
