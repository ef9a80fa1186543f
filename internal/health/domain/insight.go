package domain

import (
	"fmt"
	"time"

	catalog "github.com/Samod99/NourishFoods-sub000/internal/catalog/domain"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

type RecommendationKind string

const (
	RecommendationDietary   RecommendationKind = "dietary"
	RecommendationCalorie   RecommendationKind = "calorie"
	RecommendationHydration RecommendationKind = "hydration"
)

type Recommendation struct {
	Kind     RecommendationKind `json:"kind"`
	Priority Priority           `json:"priority"`
	Message  string             `json:"message"`
}

const recentEntryWindow = 10

// BuildRecommendations recomputes the full recommendation set from the most
// recent entries; nothing is updated incrementally.
func BuildRecommendations(entries []Entry, todayTotal, target int) []Recommendation {
	recent := entries
	if len(recent) > recentEntryWindow {
		recent = recent[len(recent)-recentEntryWindow:]
	}

	healthy, unhealthy := 0, 0
	for _, e := range recent {
		c := catalog.Category(e.Category)
		switch {
		case catalog.UnhealthyCategories[c]:
			unhealthy++
		case catalog.HealthyCategories[c]:
			healthy++
		}
	}

	var recs []Recommendation
	if unhealthy > healthy {
		recs = append(recs, Recommendation{
			Kind:     RecommendationDietary,
			Priority: PriorityHigh,
			Message:  "Recent meals lean heavily on fast food, desserts and snacks. Try swapping one for a salad or fruit.",
		})
	}
	if target > 0 && todayTotal > target {
		recs = append(recs, Recommendation{
			Kind:     RecommendationCalorie,
			Priority: PriorityHigh,
			Message:  fmt.Sprintf("You are %d calories over today's target of %d.", todayTotal-target, target),
		})
	}
	recs = append(recs, Recommendation{
		Kind:     RecommendationHydration,
		Priority: PriorityMedium,
		Message:  "Remember to drink water throughout the day.",
	})
	return recs
}

type InsightSeverity string

const (
	InsightInfo    InsightSeverity = "info"
	InsightWarning InsightSeverity = "warning"
)

type InsightKind string

const (
	InsightTrend     InsightKind = "trend"
	InsightLateNight InsightKind = "late_night"
)

type Insight struct {
	Kind     InsightKind     `json:"kind"`
	Severity InsightSeverity `json:"severity"`
	Message  string          `json:"message"`
}

// trendIncreaseThreshold is the fractional rise between the earliest and the
// most recent third of the week that triggers the trend warning.
const trendIncreaseThreshold = 0.2

// TrendInsight compares the average of the most recent 3 of the given 7 daily
// totals (oldest to newest) against the average of the earliest 3. It returns
// nil when the rise stays within the threshold.
func TrendInsight(weekTotals []int) *Insight {
	if len(weekTotals) < 7 {
		return nil
	}
	early := float64(weekTotals[0]+weekTotals[1]+weekTotals[2]) / 3
	recent := float64(weekTotals[4]+weekTotals[5]+weekTotals[6]) / 3
	if early <= 0 {
		return nil
	}
	if recent > early*(1+trendIncreaseThreshold) {
		return &Insight{
			Kind:     InsightTrend,
			Severity: InsightWarning,
			Message:  "Your calorie intake has risen sharply over the past week.",
		}
	}
	return nil
}

// LateNightInsight flags eating between 22:00 and 04:59. One insight is
// emitted regardless of how many entries fall in the window.
func LateNightInsight(todayEntries []Entry, loc *time.Location) *Insight {
	for _, e := range todayEntries {
		h := e.Timestamp.In(loc).Hour()
		if h >= 22 || h <= 4 {
			return &Insight{
				Kind:     InsightLateNight,
				Severity: InsightInfo,
				Message:  "Late-night eating logged today. Earlier meals may improve sleep and digestion.",
			}
		}
	}
	return nil
}
