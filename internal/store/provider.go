package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/austin/contracts-mcp/internal/kv"
	"github.com/austin/contracts-mcp/internal/models"
	"github.com/austin/contracts-mcp/internal/seed"
)

// Storage keys. Two logical key spaces: the local cache and the workbook
// cache, each with its own sync markers.
const (
	keyContracts  = "contract_lookup_data"
	keyLastSync   = "contract_lookup_data_last_sync"
	keyMode       = "contract_storage_mode"
	keyWorkbook   = "contract_excel_data_v2"
	keyLastLoaded = "contract_excel_data_v2_last_loaded"
	keyLastSaved  = "contract_excel_data_v2_last_saved"
)

// Provider is one persistence strategy. The contract list is always read
// and written wholesale; there is no partial update.
type Provider interface {
	Mode() models.StorageMode
	GetContracts(ctx context.Context) ([]models.Contract, error)
	SaveContracts(ctx context.Context, contracts []models.Contract) error
}

// localProvider keeps the serialized contract list in the key-value store,
// falling back to the bundled sample dataset when nothing was ever saved.
type localProvider struct {
	kv *kv.Store
}

func (p *localProvider) Mode() models.StorageMode { return models.ModeLocal }

func (p *localProvider) GetContracts(ctx context.Context) ([]models.Contract, error) {
	raw, ok, err := p.kv.Get(keyContracts)
	if err != nil {
		return nil, err
	}
	if !ok {
		return seed.Contracts(), nil
	}
	var contracts []models.Contract
	if err := json.Unmarshal([]byte(raw), &contracts); err != nil {
		// A corrupt cache should not lock the user out of the app.
		return seed.Contracts(), nil
	}
	return contracts, nil
}

func (p *localProvider) SaveContracts(ctx context.Context, contracts []models.Contract) error {
	raw, err := json.Marshal(contracts)
	if err != nil {
		return fmt.Errorf("failed to serialize contracts: %w", err)
	}
	return p.kv.Set(keyContracts, string(raw))
}

// workbookProvider serves the graph assembled from the last imported
// workbook file. Empty until an import happens.
type workbookProvider struct {
	kv *kv.Store
}

func (p *workbookProvider) Mode() models.StorageMode { return models.ModeExcel }

func (p *workbookProvider) GetContracts(ctx context.Context) ([]models.Contract, error) {
	raw, ok, err := p.kv.Get(keyWorkbook)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Contract{}, nil
	}
	var contracts []models.Contract
	if err := json.Unmarshal([]byte(raw), &contracts); err != nil {
		return []models.Contract{}, nil
	}
	return contracts, nil
}

func (p *workbookProvider) SaveContracts(ctx context.Context, contracts []models.Contract) error {
	raw, err := json.Marshal(contracts)
	if err != nil {
		return fmt.Errorf("failed to serialize contracts: %w", err)
	}
	if err := p.kv.Set(keyWorkbook, string(raw)); err != nil {
		return err
	}
	return p.kv.Set(keyLastSaved, time.Now().UTC().Format(time.RFC3339Nano))
}
