package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/naqd/internal/db"
	"github.com/alexanderramin/naqd/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentAccess_NamingSeriesIsUnique allocates names from many
// goroutines, each in its own transaction, and expects no duplicates.
func TestConcurrentAccess_NamingSeriesIsUnique(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()
	at := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	const workers = 8
	const perWorker = 10

	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				var name string
				err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
					var err error
					name, err = NewSQLiteNamingSeriesRepo(tx).NewName(ctx, SeriesTask, at)
					return err
				})
				if err != nil {
					t.Errorf("allocating name: %v", err)
					return
				}
				mu.Lock()
				if seen[name] {
					t.Errorf("duplicate name %s", name)
				}
				seen[name] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
	assert.True(t, seen["TASK-2026-00080"])
}

// TestConcurrentAccess_DashboardReadsDuringWrites counts projects while
// another goroutine inserts them.
func TestConcurrentAccess_DashboardReadsDuringWrites(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	store := NewStore(database)
	ctx := context.Background()

	require.NoError(t, store.Customers.Create(ctx, testutil.NewTestCustomer("ACME")))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			if err := store.Projects.Create(ctx, testutil.NewTestProject("Load", testutil.WithCustomer("ACME"))); err != nil {
				t.Errorf("writer: %v", err)
				return
			}
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				if _, err := store.Projects.CountByStatus(ctx, "ACME"); err != nil {
					t.Errorf("reader: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	counts, err := store.Projects.CountByStatus(ctx, "ACME")
	require.NoError(t, err)
	assert.Equal(t, 20, counts["Open"])
}
