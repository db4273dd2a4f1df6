// Package analytics computes community metrics and leaderboard rankings
// from activity log snapshots. All computation happens over caller-supplied
// in-memory slices; scope filtering (global vs a single community) is the
// caller's job. Functions here never fail: empty input produces zero-valued
// aggregates and unresolved contributor identities degrade to placeholders.
package analytics

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// LogEntry is the slice of an activity log row the engine needs:
// who saved carbon, how much, and when.
type LogEntry struct {
	UserID       uuid.UUID
	CommunityID  *uuid.UUID
	CarbonSaved  float64
	ActivityDate time.Time
}

// MetricsSnapshot summarizes a set of activity logs. Totals and averages
// are rounded to 2 decimal places; date fields are nil for an empty set.
type MetricsSnapshot struct {
	TotalCarbonSaved         float64    `json:"totalCarbonSaved"`
	TotalActivities          int        `json:"totalActivities"`
	AverageCarbonPerActivity float64    `json:"averageCarbonPerActivity"`
	UniqueContributors       int        `json:"uniqueContributors"`
	FirstActivityDate        *time.Time `json:"firstActivityDate"`
	LastActivityDate         *time.Time `json:"lastActivityDate"`
}

// RankedContributor is one grouped-and-summed row of a ranking, before
// identity enrichment.
type RankedContributor struct {
	Rank             int
	UserID           uuid.UUID
	TotalCarbonSaved float64
}

// Identity is the display data joined onto a ranked contributor.
type Identity struct {
	Name  string
	Image *string
}

// LeaderboardEntry is a fully enriched leaderboard row.
type LeaderboardEntry struct {
	Rank             int       `json:"rank"`
	UserID           uuid.UUID `json:"userId"`
	Name             string    `json:"name"`
	Image            *string   `json:"image"`
	TotalCarbonSaved float64   `json:"totalCarbonSaved"`
}

// Aggregate folds a set of activity logs into a metrics snapshot.
// Accumulation runs at full float64 precision; rounding happens once at
// the end. An empty input yields zeros and nil dates, never an error.
func Aggregate(entries []LogEntry) MetricsSnapshot {
	if len(entries) == 0 {
		return MetricsSnapshot{}
	}

	var total float64
	contributors := make(map[uuid.UUID]struct{})
	first, last := entries[0].ActivityDate, entries[0].ActivityDate

	for _, e := range entries {
		total += e.CarbonSaved
		contributors[e.UserID] = struct{}{}
		if e.ActivityDate.Before(first) {
			first = e.ActivityDate
		}
		if e.ActivityDate.After(last) {
			last = e.ActivityDate
		}
	}

	count := len(entries)
	return MetricsSnapshot{
		TotalCarbonSaved:         round2(total),
		TotalActivities:          count,
		AverageCarbonPerActivity: round2(total / float64(count)),
		UniqueContributors:       len(contributors),
		FirstActivityDate:        &first,
		LastActivityDate:         &last,
	}
}

// Rank groups activity logs by contributor, sums carbon saved per
// contributor, and returns the top contributors in descending order of
// total. Ranks are the 1-based position in the sorted order; ties keep the
// contributors' first-appearance order from the input, so the result is
// deterministic for a given input ordering. limit <= 0 means no truncation.
func Rank(entries []LogEntry, limit int) []RankedContributor {
	totals := make(map[uuid.UUID]float64, len(entries))
	order := make([]uuid.UUID, 0, len(entries))

	for _, e := range entries {
		if _, seen := totals[e.UserID]; !seen {
			order = append(order, e.UserID)
		}
		totals[e.UserID] += e.CarbonSaved
	}

	ranked := make([]RankedContributor, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, RankedContributor{
			UserID:           id,
			TotalCarbonSaved: totals[id],
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalCarbonSaved > ranked[j].TotalCarbonSaved
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked
}

// Enrich joins display identities onto a ranking. A contributor missing
// from the identity map gets the name "Unknown" and a nil image; a ranking
// never fails because of an incomplete join.
func Enrich(ranked []RankedContributor, identities map[uuid.UUID]Identity) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(ranked))
	for _, rc := range ranked {
		entry := LeaderboardEntry{
			Rank:             rc.Rank,
			UserID:           rc.UserID,
			Name:             "Unknown",
			TotalCarbonSaved: rc.TotalCarbonSaved,
		}
		if id, ok := identities[rc.UserID]; ok {
			entry.Name = id.Name
			entry.Image = id.Image
		}
		entries = append(entries, entry)
	}
	return entries
}

// CompletionPercent renders a goal's progress toward its target as a
// percentage string with 2 decimal places. A non-positive target yields
// "0.00" rather than a division error.
func CompletionPercent(progress, targetValue float64) string {
	if targetValue <= 0 {
		return "0.00"
	}
	return strconv.FormatFloat(round2(progress/targetValue*100), 'f', 2, 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
