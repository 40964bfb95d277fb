package cumulative

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promowebkz/deal-report-api/internal/domain"
)

func testAggregate(date string, revenue float64) *domain.DailyAggregate {
	return &domain.DailyAggregate{
		Date:               date,
		TotalRevenue:       revenue,
		Margin:             revenue * 0.2,
		RevenuePerEmployee: map[string]float64{"A": revenue},
		DealStageCounts:    map[string]int{"successful": 1, "failed": 0, "in_progress": 0, "unclassified": 0},
	}
}

func newTestStore(t *testing.T) (Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cumulative_report.json")
	return NewFileStore(path), path
}

func TestFileStore_ReadAll_MissingFile(t *testing.T) {
	store, _ := newTestStore(t)

	entries, err := store.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStore_ReadAll_EmptyFile(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, []byte{}, 0o644))

	entries, err := store.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStore_ReadAll_CorruptFile(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"`), 0o644))

	entries, err := store.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, entries)

	// The pipeline keeps running: the next upsert rebuilds the log.
	require.NoError(t, store.Upsert(testAggregate("2024-01-01", 100)))

	entries, err = store.ReadAll()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_Upsert_InsertsOrdered(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Upsert(testAggregate("2024-01-03", 300)))
	require.NoError(t, store.Upsert(testAggregate("2024-01-01", 100)))
	require.NoError(t, store.Upsert(testAggregate("2024-01-02", 200)))

	entries, err := store.ReadAll()
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, "2024-01-01", entries[0].Date)
	assert.Equal(t, "2024-01-02", entries[1].Date)
	assert.Equal(t, "2024-01-03", entries[2].Date)
}

func TestFileStore_Upsert_ReplacesByDate(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Upsert(testAggregate("2024-01-01", 100)))
	require.NoError(t, store.Upsert(testAggregate("2024-01-02", 200)))

	// A rerun for the same date replaces the entry without growing the log.
	require.NoError(t, store.Upsert(testAggregate("2024-01-01", 150)))

	entries, err := store.ReadAll()
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, 150.0, entries[0].TotalRevenue)

	seen := make(map[string]int)
	for _, entry := range entries {
		seen[entry.Date]++
	}
	for date, count := range seen {
		assert.Equal(t, 1, count, "duplicate date %s", date)
	}
}

func TestFileStore_Upsert_Idempotent(t *testing.T) {
	store, path := newTestStore(t)

	aggregate := testAggregate("2024-01-01", 100)
	require.NoError(t, store.Upsert(aggregate))

	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, store.Upsert(aggregate))

	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFileStore_RoundTrip(t *testing.T) {
	store, path := newTestStore(t)

	require.NoError(t, store.Upsert(testAggregate("2024-01-01", 100)))
	require.NoError(t, store.Upsert(testAggregate("2024-01-02", 200)))

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	// Reading the log and writing it back unchanged keeps the document
	// byte-for-byte identical.
	entries, err := store.ReadAll()
	require.NoError(t, err)
	for _, entry := range entries {
		require.NoError(t, store.Upsert(entry))
	}

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFileStore_GetByDate(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Upsert(testAggregate("2024-01-01", 100)))

	entry, err := store.GetByDate("2024-01-01")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 100.0, entry.TotalRevenue)

	missing, err := store.GetByDate("2030-12-31")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFileStore_NoTempFilesLeftBehind(t *testing.T) {
	store, path := newTestStore(t)

	require.NoError(t, store.Upsert(testAggregate("2024-01-01", 100)))

	files, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Base(path), files[0].Name())
}

func TestFileStore_ReadFailureFailsTheUpsert(t *testing.T) {
	dir := t.TempDir()

	// The log path sits under a regular file, so reads fail with a
	// not-a-directory error rather than a missing-file one.
	parent := filepath.Join(dir, "data")
	require.NoError(t, os.WriteFile(parent, []byte("occupied"), 0o644))

	store := NewFileStore(filepath.Join(parent, "log.json"))

	// An unreadable log must never be mistaken for an empty one: the
	// upsert fails instead of rewriting the file with a single entry.
	assert.Error(t, store.Upsert(testAggregate("2024-01-01", 100)))

	_, err := store.ReadAll()
	assert.Error(t, err)

	_, err = store.GetByDate("2024-01-01")
	assert.Error(t, err)
}

func TestFileStore_ConcurrentReadersAndWriters(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Upsert(testAggregate("2024-01-01", 100)))

	var wg sync.WaitGroup

	// Writers rewrite the same ten dates while readers walk the log,
	// mirroring the scheduled pipeline racing the query path.
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for day := 1; day <= 10; day++ {
				date := fmt.Sprintf("2024-02-%02d", day)
				assert.NoError(t, store.Upsert(testAggregate(date, float64(w*100+day))))
			}
		}(w)
	}

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				entries, err := store.ReadAll()
				assert.NoError(t, err)
				for j := 1; j < len(entries); j++ {
					assert.Less(t, entries[j-1].Date, entries[j].Date)
				}

				entry, err := store.GetByDate("2024-01-01")
				assert.NoError(t, err)
				assert.NotNil(t, entry)
			}
		}()
	}

	wg.Wait()

	entries, err := store.ReadAll()
	require.NoError(t, err)
	assert.Len(t, entries, 11)
}

func TestFileStore_Upsert_RequiresDate(t *testing.T) {
	store, _ := newTestStore(t)

	assert.Error(t, store.Upsert(&domain.DailyAggregate{}))
	assert.Error(t, store.Upsert(nil))
}
