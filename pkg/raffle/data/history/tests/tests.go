package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/mad-raffle/pkg/raffle/data/history"
)

const (
	testMint   = "CLxN2mQsewGLsTKw3gML1AWFQjrWpG6WgLYTLX9BdhRp"
	testWinner = "AuthtWB95Cf3KaHh2gTsQLfKNtsGMgFg9BxgqbHjeLVy"
)

func RunTests(t *testing.T, s history.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s history.Store){
		testRoundTrip,
		testOverwrite,
		testEmptyList,
		testInvalidRecord,
	} {
		tf(t, s)
		teardown()
	}
}

func testRoundTrip(t *testing.T, s history.Store) {
	t.Run("testRoundTrip", func(t *testing.T) {
		ctx := context.Background()

		_, err := s.Load(ctx)
		assert.Equal(t, history.ErrNotFound, err)

		expected := makeRecords(3)
		cloned := cloneAll(expected)
		require.NoError(t, s.Save(ctx, expected))

		// Callers may mutate their slice afterwards
		*expected[0].PrizeNft = testWinner
		expected[1].Claimed = false

		actual, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, cloned, actual)
	})
}

func testOverwrite(t *testing.T, s history.Store) {
	t.Run("testOverwrite", func(t *testing.T) {
		ctx := context.Background()

		require.NoError(t, s.Save(ctx, makeRecords(5)))

		replacement := makeRecords(2)
		replacement[1].Claimed = false
		replacement[1].Winner = nil
		require.NoError(t, s.Save(ctx, replacement))

		actual, err := s.Load(ctx)
		require.NoError(t, err)
		require.Len(t, actual, 2)
		assert.Equal(t, replacement, actual)
	})
}

func testEmptyList(t *testing.T, s history.Store) {
	t.Run("testEmptyList", func(t *testing.T) {
		ctx := context.Background()

		require.NoError(t, s.Save(ctx, makeRecords(2)))
		require.NoError(t, s.Save(ctx, nil))

		actual, err := s.Load(ctx)
		if err == nil {
			assert.Empty(t, actual)
		} else {
			assert.Equal(t, history.ErrNotFound, err)
		}
	})
}

func testInvalidRecord(t *testing.T, s history.Store) {
	t.Run("testInvalidRecord", func(t *testing.T) {
		ctx := context.Background()

		require.NoError(t, s.Save(ctx, makeRecords(1)))

		invalid := "invalid0"
		records := makeRecords(2)
		records[1].Winner = &invalid
		assert.Error(t, s.Save(ctx, records))

		// The previous list is untouched
		actual, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, makeRecords(1), actual)
	})
}

// makeRecords returns n settled raffles with ids 1 through n
func makeRecords(n int) []*history.LocalRaffle {
	records := make([]*history.LocalRaffle, n)
	for i := range records {
		mint, winner := testMint, testWinner
		records[i] = &history.LocalRaffle{
			Id:         uint64(i + 1),
			Version:    1,
			Bump:       uint8(255 - i),
			Active:     false,
			NumTickets: uint32(10 * (i + 1)),
			StartTime:  int64(1_700_000_000 + 86400*i),
			EndTime:    int64(1_700_086_400 + 86400*i),
			PrizeNft:   &mint,
			Winner:     &winner,
			Claimed:    true,
		}
	}
	return records
}

func cloneAll(records []*history.LocalRaffle) []*history.LocalRaffle {
	cloned := make([]*history.LocalRaffle, len(records))
	for i, record := range records {
		c := record.Clone()
		cloned[i] = &c
	}
	return cloned
}
