package raffle

import (
	"context"
	"crypto/ed25519"
	"sort"

	"github.com/code-payments/mad-raffle/pkg/apierror"
	"github.com/code-payments/mad-raffle/pkg/metrics"
	"github.com/code-payments/mad-raffle/pkg/solana"
	"github.com/code-payments/mad-raffle/pkg/solana/madraffle"
)

type ScoreboardEntry struct {
	User   ed25519.PublicKey
	Points uint32
}

type RankedScore struct {
	Rank   int
	User   ed25519.PublicKey
	Points uint32
}

// GetScoreboard returns the tracker's bonus points, in on-chain order
func (c *Client) GetScoreboard(ctx context.Context) ([]ScoreboardEntry, error) {
	if !c.IsReady() {
		return nil, ErrNotReady
	}

	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "GetScoreboard")
	defer tracer.End()

	tracker, err := c.getTracker(ctx)
	if err != nil {
		tracer.OnError(err)
		return nil, apierror.SolanaQueryError(apierror.UnableToFindCurrentRaffle).WithCause(err)
	}

	entries := make([]ScoreboardEntry, len(tracker.Scoreboard))
	for i, entry := range tracker.Scoreboard {
		entries[i] = ScoreboardEntry{
			User:   entry.User,
			Points: entry.Points,
		}
	}
	return entries, nil
}

// RankScoreboard orders entries by points, highest first, breaking ties by
// the user's base58 address. Ranks start at 1 and are unique.
func RankScoreboard(entries []ScoreboardEntry) []RankedScore {
	type keyed struct {
		entry ScoreboardEntry
		key   string
	}

	sorted := make([]keyed, len(entries))
	for i, entry := range entries {
		sorted[i] = keyed{entry: entry, key: solana.PublicKeyToBase58(entry.User)}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].entry.Points != sorted[j].entry.Points {
			return sorted[i].entry.Points > sorted[j].entry.Points
		}
		return sorted[i].key < sorted[j].key
	})

	ranked := make([]RankedScore, len(sorted))
	for i, item := range sorted {
		ranked[i] = RankedScore{
			Rank:   i + 1,
			User:   item.entry.User,
			Points: item.entry.Points,
		}
	}
	return ranked
}

// PointsMultiplier is the bonus applied to points earned during raffle
// current
func PointsMultiplier(current uint64) uint32 {
	return madraffle.PointsMultiplier(current)
}
