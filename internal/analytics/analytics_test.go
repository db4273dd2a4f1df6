package analytics

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	userA = uuid.New()
	userB = uuid.New()
	userC = uuid.New()
)

func entry(user uuid.UUID, carbon float64, date time.Time) LogEntry {
	return LogEntry{UserID: user, CarbonSaved: carbon, ActivityDate: date}
}

func TestAggregateEmpty(t *testing.T) {
	snap := Aggregate(nil)

	assert.Zero(t, snap.TotalCarbonSaved)
	assert.Zero(t, snap.TotalActivities)
	assert.Zero(t, snap.AverageCarbonPerActivity)
	assert.Zero(t, snap.UniqueContributors)
	assert.Nil(t, snap.FirstActivityDate)
	assert.Nil(t, snap.LastActivityDate)
}

func TestAggregate(t *testing.T) {
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	jun := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)

	snap := Aggregate([]LogEntry{
		entry(userA, 2.5, mar),
		entry(userB, 4.0, jan),
		entry(userA, 1.5, jun),
	})

	assert.Equal(t, 8.0, snap.TotalCarbonSaved)
	assert.Equal(t, 3, snap.TotalActivities)
	assert.InDelta(t, 2.67, snap.AverageCarbonPerActivity, 0.001)
	assert.Equal(t, 2, snap.UniqueContributors)
	require.NotNil(t, snap.FirstActivityDate)
	require.NotNil(t, snap.LastActivityDate)
	assert.Equal(t, jan, *snap.FirstActivityDate)
	assert.Equal(t, jun, *snap.LastActivityDate)
}

func TestAggregateRoundsToTwoDecimals(t *testing.T) {
	now := time.Now()
	snap := Aggregate([]LogEntry{
		entry(userA, 1.111, now),
		entry(userA, 2.222, now),
		entry(userA, 3.333, now),
	})

	assert.Equal(t, 6.67, snap.TotalCarbonSaved)
	assert.Equal(t, 2.22, snap.AverageCarbonPerActivity)
}

func TestAggregateOrderIndependent(t *testing.T) {
	now := time.Now()
	entries := []LogEntry{
		entry(userA, 5, now.Add(-48*time.Hour)),
		entry(userB, 3, now.Add(-24*time.Hour)),
		entry(userC, 7, now),
		entry(userA, 2, now.Add(-72*time.Hour)),
	}
	want := Aggregate(entries)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]LogEntry, len(entries))
		copy(shuffled, entries)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := Aggregate(shuffled)
		assert.Equal(t, want.TotalCarbonSaved, got.TotalCarbonSaved)
		assert.Equal(t, want.TotalActivities, got.TotalActivities)
		assert.Equal(t, want.AverageCarbonPerActivity, got.AverageCarbonPerActivity)
		assert.Equal(t, want.UniqueContributors, got.UniqueContributors)
		assert.Equal(t, *want.FirstActivityDate, *got.FirstActivityDate)
		assert.Equal(t, *want.LastActivityDate, *got.LastActivityDate)
	}
}

func TestRankGroupsAndSorts(t *testing.T) {
	now := time.Now()
	ranked := Rank([]LogEntry{
		entry(userA, 5, now),
		entry(userB, 5, now),
		entry(userA, 3, now),
	}, 10)

	require.Len(t, ranked, 2)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, userA, ranked[0].UserID)
	assert.Equal(t, 8.0, ranked[0].TotalCarbonSaved)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, userB, ranked[1].UserID)
	assert.Equal(t, 5.0, ranked[1].TotalCarbonSaved)
}

func TestRankNonIncreasingTotals(t *testing.T) {
	now := time.Now()
	rng := rand.New(rand.NewSource(7))

	var entries []LogEntry
	for i := 0; i < 100; i++ {
		user := uuid.NewSHA1(uuid.NameSpaceOID, []byte{byte(rng.Intn(20))})
		entries = append(entries, entry(user, rng.Float64()*10, now))
	}

	ranked := Rank(entries, 0)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].TotalCarbonSaved, ranked[i].TotalCarbonSaved)
		assert.Equal(t, i+1, ranked[i].Rank)
	}
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	now := time.Now()
	ranked := Rank([]LogEntry{
		entry(userC, 4, now),
		entry(userA, 4, now),
		entry(userB, 4, now),
	}, 0)

	require.Len(t, ranked, 3)
	assert.Equal(t, []uuid.UUID{userC, userA, userB},
		[]uuid.UUID{ranked[0].UserID, ranked[1].UserID, ranked[2].UserID})
}

func TestRankTruncates(t *testing.T) {
	now := time.Now()
	entries := []LogEntry{
		entry(userA, 9, now),
		entry(userB, 6, now),
		entry(userC, 3, now),
	}

	ranked := Rank(entries, 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, userA, ranked[0].UserID)
	assert.Equal(t, userB, ranked[1].UserID)
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Rank(nil, 10))
}

func TestEnrich(t *testing.T) {
	image := "https://cdn.example.com/a.png"
	ranked := []RankedContributor{
		{Rank: 1, UserID: userA, TotalCarbonSaved: 8},
		{Rank: 2, UserID: userB, TotalCarbonSaved: 5},
	}

	entries := Enrich(ranked, map[uuid.UUID]Identity{
		userA: {Name: "Ada", Image: &image},
	})

	require.Len(t, entries, 2)
	assert.Equal(t, "Ada", entries[0].Name)
	require.NotNil(t, entries[0].Image)
	assert.Equal(t, image, *entries[0].Image)

	// userB has no identity row; ranking degrades instead of failing.
	assert.Equal(t, "Unknown", entries[1].Name)
	assert.Nil(t, entries[1].Image)
	assert.Equal(t, 5.0, entries[1].TotalCarbonSaved)
}

func TestCompletionPercent(t *testing.T) {
	assert.Equal(t, "50.00", CompletionPercent(25, 50))
	assert.Equal(t, "100.00", CompletionPercent(50, 50))
	assert.Equal(t, "33.33", CompletionPercent(1, 3))
	assert.Equal(t, "150.00", CompletionPercent(75, 50))
	assert.Equal(t, "0.00", CompletionPercent(25, 0))
	assert.Equal(t, "0.00", CompletionPercent(25, -10))
}
