package uv

import (
	"time"

	"github.com/uvify/uv-monitor/internal/common"
)

// Period names a time window over the reading history.
type Period string

const (
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	PeriodLastWeek  Period = "lastWeek"
	PeriodLastMonth Period = "lastMonth"
	PeriodCustom    Period = "custom"
)

// ValidPeriod reports whether p is one of the supported window names.
func ValidPeriod(p Period) bool {
	switch p {
	case PeriodToday, PeriodYesterday, PeriodLastWeek, PeriodLastMonth, PeriodCustom:
		return true
	}
	return false
}

// Stats is the derived-aggregate bundle recomputed from the canonical set on
// every call. Pointer fields are nil when the relevant window is empty.
type Stats struct {
	CurrentReading *float64 `json:"currentReading"`
	TodaysPeak     *float64 `json:"todaysPeak"`
	TodaysPeakTime string   `json:"todaysPeakTime,omitempty"`
	AvgThisWeek    *float64 `json:"avgThisWeek"`
	TotalReadings  int      `json:"totalReadings"`
	TodayReadings  int      `json:"todayReadings"`
	WeekReadings   int      `json:"weekReadings"`
}

// Accumulation holds summed UV exposure per window plus its classification.
// Today is rounded to 2 decimals, week and month to 1; displays depend on
// that asymmetry.
type Accumulation struct {
	Today float64 `json:"todayAccumulated"`
	Week  float64 `json:"weekAccumulated"`
	Month float64 `json:"monthAccumulated"`

	TodayReadings int `json:"todayReadings"`
	WeekReadings  int `json:"weekReadings"`
	MonthReadings int `json:"monthReadings"`

	TodayLevel AccumulationLevelInfo `json:"todayLevel"`
	WeekLevel  AccumulationLevelInfo `json:"weekLevel"`
	MonthLevel AccumulationLevelInfo `json:"monthLevel"`

	// AvgDailyExposure is the week total divided by the number of distinct
	// days in the window that actually have readings.
	AvgDailyExposure float64 `json:"avgDailyExposure"`
}

// FilterWindow returns the readings falling inside the named window,
// preserving input order. Window membership is decided at date granularity
// with an inclusive lower bound: a reading dated exactly seven days before
// now is part of lastWeek. customDate matches exact date equality.
// ISO dates compare correctly as strings, so no time parsing is needed here.
func FilterWindow(readings []Reading, p Period, customDate string, now time.Time) []Reading {
	todayStr := DateOf(now)

	var keep func(Reading) bool
	switch p {
	case PeriodToday:
		keep = func(r Reading) bool { return r.Date == todayStr }
	case PeriodYesterday:
		yStr := DateOf(now.AddDate(0, 0, -1))
		keep = func(r Reading) bool { return r.Date == yStr }
	case PeriodLastWeek:
		lower := DateOf(now.AddDate(0, 0, -7))
		keep = func(r Reading) bool { return r.Date >= lower && r.Date <= todayStr }
	case PeriodLastMonth:
		lower := DateOf(now.AddDate(0, 0, -30))
		keep = func(r Reading) bool { return r.Date >= lower && r.Date <= todayStr }
	case PeriodCustom:
		keep = func(r Reading) bool { return r.Date == customDate }
	default:
		return readings
	}

	var out []Reading
	for _, r := range readings {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// ComputeStats derives the stats bundle from a history sorted newest first.
// An empty history yields a zero-valued bundle, never an error.
func ComputeStats(history []Reading, now time.Time) Stats {
	stats := Stats{TotalReadings: len(history)}
	if len(history) == 0 {
		return stats
	}

	current := float64(history[0].UVI)
	stats.CurrentReading = &current

	todays := FilterWindow(history, PeriodToday, "", now)
	week := FilterWindow(history, PeriodLastWeek, "", now)
	stats.TodayReadings = len(todays)
	stats.WeekReadings = len(week)

	if len(todays) > 0 {
		// First reading holding the max wins ties; iteration order is the
		// sorted history order, so the result is stable across calls.
		peak := todays[0]
		for _, r := range todays[1:] {
			if r.UVI > peak.UVI {
				peak = r
			}
		}
		peakVal := float64(peak.UVI)
		stats.TodaysPeak = &peakVal
		stats.TodaysPeakTime = peak.FormattedDateTime
	}

	if len(week) > 0 {
		var sum float64
		for _, r := range week {
			sum += float64(r.UVI)
		}
		avg := common.Round1(sum / float64(len(week)))
		stats.AvgThisWeek = &avg
	}

	return stats
}

// ComputeAccumulation derives the summed-exposure bundle from a history
// sorted newest first.
func ComputeAccumulation(history []Reading, now time.Time) Accumulation {
	todays := FilterWindow(history, PeriodToday, "", now)
	week := FilterWindow(history, PeriodLastWeek, "", now)
	month := FilterWindow(history, PeriodLastMonth, "", now)

	sum := func(readings []Reading) float64 {
		var s float64
		for _, r := range readings {
			s += float64(r.UVI)
		}
		return s
	}

	weekSum := sum(week)

	acc := Accumulation{
		Today:         common.Round2(sum(todays)),
		Week:          common.Round1(weekSum),
		Month:         common.Round1(sum(month)),
		TodayReadings: len(todays),
		WeekReadings:  len(week),
		MonthReadings: len(month),
	}
	acc.TodayLevel = ClassifyAccumulation(acc.Today)
	acc.WeekLevel = ClassifyAccumulation(acc.Week)
	acc.MonthLevel = ClassifyAccumulation(acc.Month)

	if days := distinctDates(week); days > 0 {
		acc.AvgDailyExposure = common.Round1(weekSum / float64(days))
	}
	return acc
}

func distinctDates(readings []Reading) int {
	seen := make(map[string]struct{}, len(readings))
	for _, r := range readings {
		seen[r.Date] = struct{}{}
	}
	return len(seen)
}

// Page is one slice of a filtered history view.
type Page struct {
	Readings   []Reading `json:"readings"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalPages int       `json:"totalPages"`
	TotalItems int       `json:"totalItems"`
}

// Paginate slices an already-filtered, already-sorted sequence. Out-of-range
// page numbers clamp to [1, totalPages]; an empty sequence yields a single
// empty page.
func Paginate(readings []Reading, page, size int) Page {
	if size <= 0 {
		size = 20
	}

	totalPages := (len(readings) + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := start + size
	if start > len(readings) {
		start = len(readings)
	}
	if end > len(readings) {
		end = len(readings)
	}

	return Page{
		Readings:   readings[start:end],
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
		TotalItems: len(readings),
	}
}
