// Package timebucket builds count histograms over timestamps for trend
// charts. Buckets are daily, ISO-weekly or monthly; keys sort
// lexicographically in chronological order.
package timebucket

import (
	"fmt"
	"sort"
	"time"
)

type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// Key returns the bucket label for a timestamp: "2006-01-02" for daily,
// "2006-01" for monthly, and "2006-W##" for weekly using ISO-8601 week
// numbering (weeks belong to the year holding their Thursday, so
// 2024-01-01 falls in 2024-W01 and 2023-12-31 in 2023-W52).
func Key(t time.Time, g Granularity) string {
	switch g {
	case Weekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case Monthly:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// Aggregate counts timestamps per bucket.
func Aggregate(times []time.Time, g Granularity) map[string]int {
	buckets := make(map[string]int)
	for _, t := range times {
		buckets[Key(t, g)]++
	}
	return buckets
}

// Series is a chart-ready label/count pair list.
type Series struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

// ToSeries flattens a histogram into sorted parallel slices. Bucket keys
// sort chronologically for all three granularities.
func ToSeries(buckets map[string]int) Series {
	labels := make([]string, 0, len(buckets))
	for label := range buckets {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	counts := make([]int, len(labels))
	for i, label := range labels {
		counts[i] = buckets[label]
	}
	return Series{Labels: labels, Counts: counts}
}

// AggregateSeries is Aggregate followed by ToSeries.
func AggregateSeries(times []time.Time, g Granularity) Series {
	return ToSeries(Aggregate(times, g))
}
