package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/code-payments/mad-raffle/pkg/raffle/data/history/tests"
)

func TestHistorySqliteStore(t *testing.T) {
	testStore, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)

	teardown := func() {
		require.NoError(t, testStore.(*store).db.Exec("DELETE FROM local_raffles").Error)
	}
	tests.RunTests(t, testStore, teardown)
}
