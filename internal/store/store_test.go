package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/austin/contracts-mcp/internal/kv"
	"github.com/austin/contracts-mcp/internal/models"
	"github.com/austin/contracts-mcp/internal/seed"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	kvStore, err := kv.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { kvStore.Close() })
	return New(kvStore, Options{ExportDir: t.TempDir()})
}

func zeroSyncMarkers(contracts []models.Contract) []models.Contract {
	for i := range contracts {
		contracts[i].LastSyncedAt = time.Time{}
	}
	return contracts
}

func TestLoadSeedFallback(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	contracts, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed.Contracts(), contracts)

	mode, err := s.Mode()
	require.NoError(t, err)
	assert.Equal(t, models.ModeLocal, mode)
}

func TestAddHourLog(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	before, err := s.SyncStatus(ctx)
	require.NoError(t, err)
	assert.Nil(t, before.LastSynced)

	// Contract "3" ships with no hour logs.
	updated, err := s.AddHourLog(ctx, "3", LogFields{
		Description: "Connectivity audit",
		Duration:    "1.5",
	}, "Alex Doe")
	require.NoError(t, err)

	require.Len(t, updated.HourLogs, 1)
	log := updated.HourLogs[0]
	assert.Equal(t, "Alex", log.Engineer, "only the first name is recorded")
	assert.Equal(t, "1.5 hrs", log.Duration)
	assert.Equal(t, "Connectivity audit", log.Description)
	assert.Equal(t, "Completed", log.Status)
	assert.NotEmpty(t, log.Date, "date defaults to today")
	assert.False(t, updated.LastSyncedAt.IsZero())

	// The mutation is persisted, not just returned.
	reloaded, err := s.Contract(ctx, "3")
	require.NoError(t, err)
	require.Len(t, reloaded.HourLogs, 1)
	assert.Equal(t, log.ID, reloaded.HourLogs[0].ID)

	after, err := s.SyncStatus(ctx)
	require.NoError(t, err)
	require.NotNil(t, after.LastSynced)
}

func TestAddHourLogPrepends(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.AddHourLog(ctx, "1", LogFields{Description: "First", Duration: "1"}, "Alex")
	require.NoError(t, err)
	// Log IDs derive from the wall clock at millisecond resolution.
	time.Sleep(2 * time.Millisecond)
	second, err := s.AddHourLog(ctx, "1", LogFields{Description: "Second", Duration: "2"}, "Alex")
	require.NoError(t, err)

	assert.Equal(t, "Second", second.HourLogs[0].Description)
	assert.Equal(t, "First", second.HourLogs[1].Description)
	assert.NotEqual(t, first.HourLogs[0].ID, second.HourLogs[0].ID)
}

func TestAddHourLogUnknownContract(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	_, err := s.AddHourLog(context.Background(), "nope", LogFields{Duration: "1"}, "Alex")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrContractNotFound)
}

func TestUpdateHourLogMergesPartialFields(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	// Seed log on contract "1".
	updated, err := s.UpdateHourLog(ctx, "1", "log-1-0", LogUpdate{Description: "Recalibrated sensors"})
	require.NoError(t, err)

	log := updated.HourLogs[0]
	require.Equal(t, "log-1-0", log.ID)
	assert.Equal(t, "Recalibrated sensors", log.Description)
	assert.Equal(t, "2.5 hrs", log.Duration, "unset fields stay as they were")
	assert.Equal(t, "08/06/25", log.Date)

	updated, err = s.UpdateHourLog(ctx, "1", "log-1-0", LogUpdate{Duration: "4"})
	require.NoError(t, err)
	assert.Equal(t, "4 hrs", updated.HourLogs[0].Duration)
	assert.Equal(t, "Recalibrated sensors", updated.HourLogs[0].Description)
}

func TestUpdateHourLogUnknownLog(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	_, err := s.UpdateHourLog(context.Background(), "1", "log-nope", LogUpdate{Status: "Pending"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLogNotFound)

	_, err = s.UpdateHourLog(context.Background(), "nope", "log-1-0", LogUpdate{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrContractNotFound)
}

func TestSyncMarkerAdvances(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddHourLog(ctx, "1", LogFields{Description: "First", Duration: "1"}, "Alex")
	require.NoError(t, err)
	first, err := s.SyncStatus(ctx)
	require.NoError(t, err)
	require.NotNil(t, first.LastSynced)

	time.Sleep(2 * time.Millisecond)
	_, err = s.AddHourLog(ctx, "1", LogFields{Description: "Second", Duration: "1"}, "Alex")
	require.NoError(t, err)
	second, err := s.SyncStatus(ctx)
	require.NoError(t, err)
	require.NotNil(t, second.LastSynced)

	assert.True(t, second.LastSynced.After(*first.LastSynced), "marker must move forward on every mutation")
}

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	contracts, err := s.Load(ctx)
	require.NoError(t, err)

	path, err := s.ExportToFile(ctx, contracts)
	require.NoError(t, err)
	assert.Equal(t, ExportFileName, filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	imported, err := s.ImportFromFile(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, zeroSyncMarkers(contracts), zeroSyncMarkers(imported))

	mode, err := s.Mode()
	require.NoError(t, err)
	assert.Equal(t, models.ModeExcel, mode, "import switches to workbook mode")

	// The imported dataset is now what Load serves.
	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, zeroSyncMarkers(imported), zeroSyncMarkers(loaded))
}

func TestImportFailureKeepsData(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	updated, err := s.AddHourLog(ctx, "3", LogFields{Description: "Audit", Duration: "2"}, "Alex")
	require.NoError(t, err)
	require.Len(t, updated.HourLogs, 1)

	_, err = s.ImportFromFile(ctx, []byte("definitely not xlsx"))
	require.Error(t, err)

	mode, err := s.Mode()
	require.NoError(t, err)
	assert.Equal(t, models.ModeLocal, mode, "failed import must not switch modes")

	reloaded, err := s.Contract(ctx, "3")
	require.NoError(t, err)
	assert.Len(t, reloaded.HourLogs, 1, "failed import must not drop existing data")
}

func TestReset(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddHourLog(ctx, "3", LogFields{Description: "Audit", Duration: "2"}, "Alex")
	require.NoError(t, err)
	require.NoError(t, s.SetMode(models.ModeExcel))

	require.NoError(t, s.Reset(ctx))

	mode, err := s.Mode()
	require.NoError(t, err)
	assert.Equal(t, models.ModeLocal, mode)

	contracts, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed.Contracts(), contracts)

	status, err := s.SyncStatus(ctx)
	require.NoError(t, err)
	assert.Nil(t, status.LastSynced)
}

func TestExportTemplate(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	path, err := s.ExportTemplate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, TemplateFileName, filepath.Base(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestContractLookup(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	c, err := s.Contract(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "BioGreen", c.Client)

	_, err = s.Contract(ctx, "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrContractNotFound)
}

func TestAddDocument(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	updated, err := s.AddDocument(ctx, "2", models.ContractDocument{
		DocumentName: "Renewal.pdf",
		DocumentType: "Contract",
	})
	require.NoError(t, err)

	require.Len(t, updated.Documents, 1)
	doc := updated.Documents[0]
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "2", doc.ContractID)
	assert.NotEmpty(t, doc.UploadDate)
}
