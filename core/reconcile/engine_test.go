package reconcile

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"change-detector/core/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// segmentAdapter is a simple test adapter with overlap grouping and a tight gate.
type segmentAdapter struct {
	keepMatched bool
	deadZone    float64
}

func (a *segmentAdapter) Name() string  { return "segments" }
func (a *segmentAdapter) Title() string { return "Segment Comparison" }

func (a *segmentAdapter) Columns() Columns {
	return Columns{Road: "ROADNAME", From: "From", To: "To"}
}

func (a *segmentAdapter) Normalize(v float64) float64 { return v }

func (a *segmentAdapter) Joins(open Range, next Span) bool { return next.From <= open.End }

func (a *segmentAdapter) Absorb(open Range, next Span) Range {
	open.End = math.Max(open.End, next.To)
	open.Count++
	return open
}

func (a *segmentAdapter) Qualifies(start, end float64) bool { return start <= 0.1 && end <= 0.3 }

func (a *segmentAdapter) Accepts(start, end float64) bool {
	return !(start > 0 && start <= a.deadZone)
}

func (a *segmentAdapter) Describe(road string, r Range) string {
	return fmt.Sprintf("%s %.3f-%.3f (%d)", road, r.Start, r.End, r.Count)
}

func (a *segmentAdapter) Labels() Labels {
	return Labels{
		Resized:  "Resized segments",
		Moved:    "Moved segments",
		Internal: "Internal segments",
		Removed:  "Removed segments",
		Added:    "Added segments",
	}
}

func (a *segmentAdapter) KeepMatched() bool { return a.keepMatched }

func segmentTable(t *testing.T, rows ...[]any) *dataset.Table {
	t.Helper()
	table := dataset.New("ROADNAME", "From", "To")
	for _, r := range rows {
		require.NoError(t, table.Append(r...))
	}
	return table
}

func TestCompare_IdenticalSnapshots(t *testing.T) {
	export := segmentTable(t, []any{"A", 0.0, 1.0}, []any{"B", 2.0, 3.0})
	database := segmentTable(t, []any{"A", "0", "1"}, []any{"B", "2", "3"})

	report, err := Compare(export, database, []string{"ROADNAME", "From", "To"}, &segmentAdapter{keepMatched: true})
	require.NoError(t, err)

	require.Len(t, report.Categories, 5)
	for _, c := range report.Categories {
		assert.Empty(t, c.Items, c.Label)
	}
	assert.Equal(t, 0, report.Summary.RemovedRows)
	assert.Equal(t, 0, report.Summary.AddedRows)
	assert.Contains(t, report.String(), "No removed segments.")
}

func TestCompare_RemovedAndAddedDirection(t *testing.T) {
	export := segmentTable(t, []any{"A", 0.0, 1.0}, []any{"New", 5.0, 6.0})
	database := segmentTable(t, []any{"A", 0.0, 1.0}, []any{"Old", 7.0, 8.0})

	report, err := Compare(export, database, []string{"ROADNAME", "From", "To"}, &segmentAdapter{keepMatched: true})
	require.NoError(t, err)

	removed, ok := report.Category("Removed segments")
	require.True(t, ok)
	assert.Equal(t, []string{"Old 7.000-8.000 (1)"}, removed.Items)

	added, ok := report.Category("Added segments")
	require.True(t, ok)
	assert.Equal(t, []string{"New 5.000-6.000 (1)"}, added.Items)

	assert.Equal(t, 1, report.Summary.RemovedRows)
	assert.Equal(t, 1, report.Summary.AddedRows)
	assert.Empty(t, report.Matches)
}

func TestCompare_Classification(t *testing.T) {
	tests := []struct {
		name     string
		database [][]any
		export   [][]any
		kind     ChangeKind
	}{
		{
			name:     "resized",
			database: [][]any{{"A", 0.0, 1.0}},
			export:   [][]any{{"A", 0.0, 0.5}, {"A", 0.5, 1.0}},
			kind:     ChangeResized,
		},
		{
			name:     "moved",
			database: [][]any{{"A", 0.0, 1.0}},
			export:   [][]any{{"A", 0.05, 1.1}},
			kind:     ChangeMoved,
		},
		{
			name:     "internal",
			database: [][]any{{"A", 0.0, 0.6}, {"A", 0.4, 1.0}},
			export:   [][]any{{"A", 0.0, 0.7}, {"A", 0.3, 1.0}},
			kind:     ChangeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Compare(
				segmentTable(t, tt.export...),
				segmentTable(t, tt.database...),
				[]string{"ROADNAME", "From", "To"},
				&segmentAdapter{keepMatched: true},
			)
			require.NoError(t, err)
			require.Len(t, report.Matches, 1)
			assert.Equal(t, tt.kind, report.Matches[0].Kind)

			// Intersecting roads never appear in removed/added buckets.
			removed, _ := report.Category("Removed segments")
			added, _ := report.Category("Added segments")
			assert.Empty(t, removed.Items)
			assert.Empty(t, added.Items)
		})
	}
}

func TestCompare_UnmatchedIntersectingRoadIsSilent(t *testing.T) {
	export := segmentTable(t, []any{"Road1", 0.0, 1.5})
	database := segmentTable(t, []any{"Road1", 0.0, 1.0})

	report, err := Compare(export, database, []string{"ROADNAME", "From", "To"}, &segmentAdapter{keepMatched: true})
	require.NoError(t, err)

	assert.Empty(t, report.Matches)
	for _, c := range report.Categories {
		assert.Empty(t, c.Items, c.Label)
	}
}

func TestCompare_DropsMatchedCategories(t *testing.T) {
	export := segmentTable(t, []any{"A", 0.05, 1.0}, []any{"B", 1.0, 2.0})
	database := segmentTable(t, []any{"A", 0.0, 1.0})

	report, err := Compare(export, database, []string{"ROADNAME", "From", "To"}, &segmentAdapter{})
	require.NoError(t, err)

	require.Len(t, report.Categories, 2)
	assert.Equal(t, "Removed segments", report.Categories[0].Label)
	assert.Equal(t, "Added segments", report.Categories[1].Label)
	assert.Equal(t, []string{"B 1.000-2.000 (1)"}, report.Categories[1].Items)
	assert.Len(t, report.Matches, 1)
}

func TestCompare_DeadZoneRejectsBestWithoutFallback(t *testing.T) {
	// The closest candidate lies in the dead zone; the runner-up must not replace it.
	export := segmentTable(t, []any{"A", 0.001, 1.0}, []any{"A", 5.05, 6.0})
	database := segmentTable(t, []any{"A", 0.0, 1.0})

	adapter := &segmentAdapter{keepMatched: true, deadZone: 0.002}
	report, err := Compare(export, database, []string{"ROADNAME", "From", "To"}, adapter)
	require.NoError(t, err)
	assert.Empty(t, report.Matches)
}

func TestCompare_Errors(t *testing.T) {
	adapter := &segmentAdapter{keepMatched: true}

	t.Run("no identity columns", func(t *testing.T) {
		_, err := Compare(segmentTable(t), segmentTable(t), nil, adapter)
		assert.Error(t, err)
	})

	t.Run("missing identity column", func(t *testing.T) {
		_, err := Compare(segmentTable(t), segmentTable(t), []string{"ROADNAME", "Nope"}, adapter)
		assert.ErrorIs(t, err, dataset.ErrMissingColumn)
	})

	t.Run("missing measure column", func(t *testing.T) {
		export := dataset.New("ROADNAME", "From")
		_, err := Compare(export, segmentTable(t), []string{"ROADNAME"}, adapter)
		assert.ErrorIs(t, err, dataset.ErrMissingColumn)
	})

	t.Run("null measure", func(t *testing.T) {
		database := segmentTable(t, []any{"A", nil, 1.0})
		_, err := Compare(segmentTable(t), database, []string{"ROADNAME", "From", "To"}, adapter)
		assert.ErrorIs(t, err, ErrInvalidMeasure)
	})

	t.Run("non numeric measure", func(t *testing.T) {
		export := segmentTable(t, []any{"A", "abc", 1.0})
		_, err := Compare(export, segmentTable(t), []string{"ROADNAME", "From", "To"}, adapter)
		assert.ErrorIs(t, err, ErrInvalidMeasure)
	})
}

func TestCompare_DoesNotModifyInputs(t *testing.T) {
	export := segmentTable(t, []any{"A", "0", "1"})
	database := segmentTable(t, []any{"A", "0", "2"})

	_, err := Compare(export, database, []string{"ROADNAME", "From", "To"}, &segmentAdapter{keepMatched: true})
	require.NoError(t, err)
	assert.Equal(t, "0", export.Rows[0][1])
	assert.Equal(t, "2", database.Rows[0][2])
}

// fakeSource is a snapshot source counting its loads.
type fakeSource struct {
	export    *dataset.Table
	database  *dataset.Table
	exportErr error
	dbErr     error
	loads     atomic.Int32
	delay     time.Duration
}

func (f *fakeSource) LoadExport(ctx context.Context) (*dataset.Table, error) {
	f.loads.Add(1)
	time.Sleep(f.delay)
	return f.export, f.exportErr
}

func (f *fakeSource) LoadDatabase(ctx context.Context) (*dataset.Table, error) {
	return f.database, f.dbErr
}

func TestRun_ErrorHandling(t *testing.T) {
	tests := []struct {
		name      string
		exportErr error
		dbErr     error
		expectErr string
	}{
		{name: "Export load error", exportErr: errors.New("export error"), expectErr: "export error"},
		{name: "Database load error", dbErr: errors.New("database error"), expectErr: "database error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := &Spec{
				Adapter:         &segmentAdapter{},
				IdentityColumns: []string{"ROADNAME", "From", "To"},
				Source: &fakeSource{
					export:    segmentTable(t),
					database:  segmentTable(t),
					exportErr: tt.exportErr,
					dbErr:     tt.dbErr,
				},
			}

			_, err := Run(context.Background(), spec, NewCache())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectErr)
		})
	}
}

func TestRun_NoSource(t *testing.T) {
	spec := &Spec{Adapter: &segmentAdapter{}, IdentityColumns: []string{"ROADNAME"}}
	_, err := Run(context.Background(), spec, nil)
	assert.Error(t, err)
}

func TestCache_GetOrLoad(t *testing.T) {
	source := &fakeSource{
		export:   segmentTable(t, []any{"A", 0.0, 1.0}),
		database: segmentTable(t, []any{"A", 0.0, 1.0}),
		delay:    10 * time.Millisecond,
	}
	spec := &Spec{
		Adapter:         &segmentAdapter{},
		IdentityColumns: []string{"ROADNAME", "From", "To"},
		Source:          source,
		CacheTTL:        time.Minute,
	}
	cache := NewCache()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := Run(context.Background(), spec, cache)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), source.loads.Load())

	cache.Invalidate(spec)
	_, err := Run(context.Background(), spec, cache)
	require.NoError(t, err)
	assert.Equal(t, int32(2), source.loads.Load())
}

func TestCache_DisabledWithoutTTL(t *testing.T) {
	source := &fakeSource{export: segmentTable(t), database: segmentTable(t)}
	spec := &Spec{
		Adapter:         &segmentAdapter{},
		IdentityColumns: []string{"ROADNAME"},
		Source:          source,
	}
	cache := NewCache()

	for i := 0; i < 3; i++ {
		_, err := Run(context.Background(), spec, cache)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), source.loads.Load())
}

func TestSnapshots_IsExpired(t *testing.T) {
	assert.True(t, (&Snapshots{Loaded: time.Now()}).IsExpired())
	assert.False(t, (&Snapshots{Loaded: time.Now(), TTL: time.Hour}).IsExpired())
	assert.True(t, (&Snapshots{Loaded: time.Now().Add(-2 * time.Hour), TTL: time.Hour}).IsExpired())
}

func TestSpec_CacheKey(t *testing.T) {
	spec := &Spec{Adapter: &segmentAdapter{}, IdentityColumns: []string{"ROADNAME", "From"}}
	assert.Equal(t, "segments|ROADNAME|From", spec.CacheKey())
}
