package schema

import "sort"

// Year bounds accepted for stored observations.
const (
	MinYear = 1900
	MaxYear = 2100
)

// PointsFromRows projects stored rows onto a bare series, sorted ascending
// by year. Rows are assumed to belong to a single series key.
func PointsFromRows(rows []SeriesRow) []SeriesPoint {
	points := make([]SeriesPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, SeriesPoint{Year: r.Year, Value: r.Value})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })
	return points
}

// FilterYears keeps the points with Year in [from, to]. A zero bound means
// no limit on that side.
func FilterYears(points []SeriesPoint, from, to int) []SeriesPoint {
	out := make([]SeriesPoint, 0, len(points))
	for _, p := range points {
		if from != 0 && p.Year < from {
			continue
		}
		if to != 0 && p.Year > to {
			continue
		}
		out = append(out, p)
	}
	return out
}

// LastYear returns the final year of an ascending series, or 0 when empty.
func LastYear(points []SeriesPoint) int {
	if len(points) == 0 {
		return 0
	}
	return points[len(points)-1].Year
}
