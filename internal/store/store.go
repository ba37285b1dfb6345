// Package store is the persistence façade over the contract graph: it
// picks the active backing store (local cache or imported workbook),
// exposes load and mutate operations that replace the graph wholesale,
// and keeps the last-synced markers the sync indicator reads.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/austin/contracts-mcp/internal/graph"
	"github.com/austin/contracts-mcp/internal/hours"
	"github.com/austin/contracts-mcp/internal/kv"
	"github.com/austin/contracts-mcp/internal/models"
	"github.com/austin/contracts-mcp/internal/workbook"
)

var (
	ErrContractNotFound = errors.New("contract not found")
	ErrLogNotFound      = errors.New("hour log not found")
)

// ExportFileName is the fixed name exports are saved under.
const ExportFileName = "timesheet_database.xlsx"

// TemplateFileName is the fixed name of the downloadable empty template.
const TemplateFileName = "timesheet_template.xlsx"

// Options configures a Store instance explicitly; there is no ambient
// process-wide provider state.
type Options struct {
	// DefaultMode is used until a mode has been persisted.
	DefaultMode models.StorageMode
	// ExportDir receives exported workbook files.
	ExportDir string
}

type Store struct {
	kv   *kv.Store
	opts Options
}

func New(kvStore *kv.Store, opts Options) *Store {
	if opts.DefaultMode == "" {
		opts.DefaultMode = models.ModeLocal
	}
	return &Store{kv: kvStore, opts: opts}
}

// Mode returns the active backing-store mode.
func (s *Store) Mode() (models.StorageMode, error) {
	raw, ok, err := s.kv.Get(keyMode)
	if err != nil {
		return "", err
	}
	if !ok {
		return s.opts.DefaultMode, nil
	}
	return models.ParseStorageMode(raw), nil
}

func (s *Store) SetMode(mode models.StorageMode) error {
	return s.kv.Set(keyMode, string(mode))
}

func (s *Store) provider() (Provider, error) {
	mode, err := s.Mode()
	if err != nil {
		return nil, err
	}
	if mode == models.ModeExcel {
		return &workbookProvider{kv: s.kv}, nil
	}
	return &localProvider{kv: s.kv}, nil
}

// Load returns the current contract list from the active backing store.
func (s *Store) Load(ctx context.Context) ([]models.Contract, error) {
	p, err := s.provider()
	if err != nil {
		return nil, err
	}
	return p.GetContracts(ctx)
}

// Contract returns a single contract by identifier.
func (s *Store) Contract(ctx context.Context, contractID string) (*models.Contract, error) {
	contracts, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range contracts {
		if contracts[i].ID == contractID {
			return &contracts[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrContractNotFound, contractID)
}

// LogFields are the caller-supplied fields of a new hour log.
type LogFields struct {
	Description string
	Duration    string
	Date        string
}

// AddHourLog prepends a new log to the contract's list (newest first),
// persists the whole graph and returns the updated contract.
func (s *Store) AddHourLog(ctx context.Context, contractID string, fields LogFields, engineerName string) (*models.Contract, error) {
	p, err := s.provider()
	if err != nil {
		return nil, err
	}
	contracts, err := p.GetContracts(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range contracts {
		if contracts[i].ID == contractID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrContractNotFound, contractID)
	}

	now := time.Now().UTC()

	engineer := engineerName
	if parts := strings.Fields(engineerName); len(parts) > 0 {
		engineer = parts[0]
	}

	date := fields.Date
	if date == "" {
		date = hours.FormatDate(now)
	}

	newLog := models.HourLog{
		ID:          fmt.Sprintf("L-%d", now.UnixMilli()),
		Engineer:    engineer,
		Description: fields.Description,
		Duration:    hours.NormalizeDuration(fields.Duration),
		Date:        date,
		Status:      "Completed",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	updated := contracts[idx]
	updated.HourLogs = append([]models.HourLog{newLog}, updated.HourLogs...)
	updated.LastSyncedAt = now
	contracts[idx] = updated

	if err := s.persist(ctx, p, contracts, now); err != nil {
		return nil, err
	}
	return &contracts[idx], nil
}

// LogUpdate carries partial hour-log fields; empty strings leave the
// existing value in place.
type LogUpdate struct {
	Description string
	Duration    string
	Date        string
	Status      string
}

// UpdateHourLog merges partial fields into an existing log entry,
// refreshes its update timestamp and re-persists the graph.
func (s *Store) UpdateHourLog(ctx context.Context, contractID, logID string, upd LogUpdate) (*models.Contract, error) {
	p, err := s.provider()
	if err != nil {
		return nil, err
	}
	contracts, err := p.GetContracts(ctx)
	if err != nil {
		return nil, err
	}

	cIdx := -1
	for i := range contracts {
		if contracts[i].ID == contractID {
			cIdx = i
			break
		}
	}
	if cIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrContractNotFound, contractID)
	}

	lIdx := -1
	for i := range contracts[cIdx].HourLogs {
		if contracts[cIdx].HourLogs[i].ID == logID {
			lIdx = i
			break
		}
	}
	if lIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrLogNotFound, logID)
	}

	now := time.Now().UTC()
	log := &contracts[cIdx].HourLogs[lIdx]
	if upd.Description != "" {
		log.Description = upd.Description
	}
	if upd.Duration != "" {
		log.Duration = hours.NormalizeDuration(upd.Duration)
	}
	if upd.Date != "" {
		log.Date = upd.Date
	}
	if upd.Status != "" {
		log.Status = upd.Status
	}
	log.UpdatedAt = now
	contracts[cIdx].LastSyncedAt = now

	if err := s.persist(ctx, p, contracts, now); err != nil {
		return nil, err
	}
	return &contracts[cIdx], nil
}

// AddDocument appends a document entry to a contract and persists.
func (s *Store) AddDocument(ctx context.Context, contractID string, doc models.ContractDocument) (*models.Contract, error) {
	p, err := s.provider()
	if err != nil {
		return nil, err
	}
	contracts, err := p.GetContracts(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range contracts {
		if contracts[i].ID == contractID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrContractNotFound, contractID)
	}

	now := time.Now().UTC()
	doc.ContractID = contractID
	if doc.ID == "" {
		doc.ID = graph.NewID("doc")
	}
	if doc.UploadDate == "" {
		doc.UploadDate = hours.FormatDate(now)
	}
	contracts[idx].Documents = append(contracts[idx].Documents, doc)
	contracts[idx].LastSyncedAt = now

	if err := s.persist(ctx, p, contracts, now); err != nil {
		return nil, err
	}
	return &contracts[idx], nil
}

func (s *Store) persist(ctx context.Context, p Provider, contracts []models.Contract, now time.Time) error {
	if err := p.SaveContracts(ctx, contracts); err != nil {
		return err
	}
	return s.kv.Set(keyLastSync, now.Format(time.RFC3339Nano))
}

// ImportFromFile decodes and assembles workbook bytes, switches to
// workbook mode and caches the result. Decode failures leave the
// previously active dataset untouched.
func (s *Store) ImportFromFile(ctx context.Context, data []byte) ([]models.Contract, error) {
	tables, err := workbook.Read(data)
	if err != nil {
		return nil, err
	}
	contracts := graph.Assemble(tables)

	if err := s.SetMode(models.ModeExcel); err != nil {
		return nil, err
	}
	p := &workbookProvider{kv: s.kv}
	if err := p.SaveContracts(ctx, contracts); err != nil {
		return nil, err
	}
	if err := s.kv.Set(keyLastLoaded, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return nil, err
	}
	return contracts, nil
}

// ExportToFile flattens the contract list, encodes it and saves the
// workbook under the fixed export name. Returns the written path.
func (s *Store) ExportToFile(ctx context.Context, contracts []models.Contract) (string, error) {
	data, err := workbook.Write(graph.Flatten(contracts))
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.opts.ExportDir, ExportFileName)
	if err := os.MkdirAll(s.opts.ExportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	p := &workbookProvider{kv: s.kv}
	if err := p.SaveContracts(ctx, contracts); err != nil {
		return "", err
	}
	return path, nil
}

// ExportTemplate writes a header-only workbook users can fill in.
func (s *Store) ExportTemplate(ctx context.Context) (string, error) {
	data, err := workbook.WriteTemplate()
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.opts.ExportDir, TemplateFileName)
	if err := os.MkdirAll(s.opts.ExportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write template file: %w", err)
	}
	return path, nil
}

// Reset clears every cached key and reverts to the bundled dataset.
func (s *Store) Reset(ctx context.Context) error {
	for _, key := range []string{keyContracts, keyLastSync, keyWorkbook, keyLastLoaded, keyLastSaved} {
		if err := s.kv.Delete(key); err != nil {
			return err
		}
	}
	return s.SetMode(models.ModeLocal)
}

// SyncStatus reports the active mode and its last-synchronized marker.
func (s *Store) SyncStatus(ctx context.Context) (models.SyncStatus, error) {
	mode, err := s.Mode()
	if err != nil {
		return models.SyncStatus{}, err
	}

	key := keyLastSync
	if mode == models.ModeExcel {
		key = keyLastSaved
	}
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		return models.SyncStatus{}, err
	}

	status := models.SyncStatus{Status: "online", Mode: mode}
	if ok {
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			status.LastSynced = &t
		}
	}
	return status, nil
}
