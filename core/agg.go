package core

import (
	"sort"
	"strconv"

	"emistat/schema"
)

// YearlyTotals reduces stored rows to one total per year across all series
// keys, ascending by year. Suitable for line, area and bar charts.
func YearlyTotals(rows []schema.SeriesRow) schema.ChartResult {
	totals := make(map[int]float64)
	for _, r := range rows {
		totals[r.Year] += r.Value
	}

	years := make([]int, 0, len(totals))
	for y := range totals {
		years = append(years, y)
	}
	sort.Ints(years)

	points := make([]schema.ChartPoint, 0, len(years))
	for _, y := range years {
		points = append(points, schema.ChartPoint{Label: strconv.Itoa(y), Value: totals[y]})
	}
	return schema.ChartResult{Kind: schema.YearlyChart, Points: points}
}

// YearShare reduces stored rows to each series key's share of a single
// year, sorted descending by value. Suitable for pie and donut charts.
func YearShare(rows []schema.SeriesRow, year int) schema.ChartResult {
	byKey := make(map[string]float64)
	for _, r := range rows {
		if r.Year == year {
			byKey[r.SeriesKey] += r.Value
		}
	}

	points := make([]schema.ChartPoint, 0, len(byKey))
	for key, v := range byKey {
		points = append(points, schema.ChartPoint{Label: key, Value: v})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Value != points[j].Value {
			return points[i].Value > points[j].Value
		}
		return points[i].Label < points[j].Label
	})
	return schema.ChartResult{Kind: schema.ShareChart, Points: points}
}

// Summaries computes per-key descriptive statistics over stored rows,
// sorted by series key. Suitable for radar-style comparisons.
func Summaries(rows []schema.SeriesRow) []schema.SeriesSummary {
	grouped := make(map[string][]schema.SeriesRow)
	for _, r := range rows {
		grouped[r.SeriesKey] = append(grouped[r.SeriesKey], r)
	}

	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	summaries := make([]schema.SeriesSummary, 0, len(keys))
	for _, key := range keys {
		points := schema.PointsFromRows(grouped[key])
		s := schema.SeriesSummary{
			SeriesKey: key,
			Count:     len(points),
			FirstYear: points[0].Year,
			LastYear:  points[len(points)-1].Year,
			Latest:    points[len(points)-1].Value,
			Min:       points[0].Value,
			Max:       points[0].Value,
		}
		var sum float64
		for _, p := range points {
			sum += p.Value
			if p.Value < s.Min {
				s.Min = p.Value
			}
			if p.Value > s.Max {
				s.Max = p.Value
			}
		}
		s.Mean = sum / float64(len(points))
		summaries = append(summaries, s)
	}
	return summaries
}

// FilterRows keeps the rows matching the dataset, key and year window
// filters. Empty string and zero values mean no filter.
func FilterRows(rows []schema.SeriesRow, dataset, seriesKey string, fromYear, toYear int) []schema.SeriesRow {
	out := make([]schema.SeriesRow, 0, len(rows))
	for _, r := range rows {
		if dataset != "" && r.Dataset != dataset {
			continue
		}
		if seriesKey != "" && r.SeriesKey != seriesKey {
			continue
		}
		if fromYear != 0 && r.Year < fromYear {
			continue
		}
		if toYear != 0 && r.Year > toYear {
			continue
		}
		out = append(out, r)
	}
	return out
}
