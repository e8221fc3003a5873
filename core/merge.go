package core

import (
	"sort"

	"emistat/schema"
)

// MergeSeries combines a historical and a forecast sequence into one
// display-ready sequence sorted ascending by year. Each row is tagged as
// historical-only or forecast-only. Coinciding years are not deduplicated;
// the stable sort preserves input order between them.
func MergeSeries(history, forecast []schema.SeriesPoint) []schema.MergedPoint {
	merged := make([]schema.MergedPoint, 0, len(history)+len(forecast))
	for _, p := range history {
		v := p.Value
		merged = append(merged, schema.MergedPoint{Year: p.Year, Historical: &v})
	}
	for _, p := range forecast {
		v := p.Value
		merged = append(merged, schema.MergedPoint{Year: p.Year, Forecast: &v})
	}
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Year < merged[j].Year })
	return merged
}
