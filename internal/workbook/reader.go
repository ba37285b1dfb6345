package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/austin/contracts-mcp/internal/models"
)

var (
	// ErrMissingRootSheet means the workbook has no Contracts sheet. Imports
	// abort without touching previously loaded data.
	ErrMissingRootSheet = errors.New("workbook: Contracts sheet not found")

	// ErrDecode wraps any failure from the underlying xlsx parser.
	ErrDecode = errors.New("workbook: decode failed")
)

// Read decodes raw xlsx bytes into the seven flat row tables. Optional
// sheets that are missing yield empty tables; a missing Contracts sheet is
// a hard failure.
func Read(data []byte) (*models.Tables, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer f.Close()

	found := false
	for _, name := range f.GetSheetList() {
		if name == models.SheetContracts {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrMissingRootSheet
	}

	t := &models.Tables{}

	contractRecs, err := sheetRecords(f, models.SheetContracts)
	if err != nil {
		return nil, err
	}
	for _, rec := range contractRecs {
		t.Contracts = append(t.Contracts, models.ContractRow{
			ContractID:              pick(rec, "ContractID", "ID"),
			Client:                  rec["Client"],
			Site:                    rec["Site"],
			Address:                 rec["Address"],
			Status:                  rec["Status"],
			ExpiresDate:             pick(rec, "ExpiresDate", "EndDate"),
			SystelineContractNumber: rec["SystelineContractNumber"],
			ContractNumber:          rec["ContractNumber"],
			ContractType:            rec["ContractType"],
			CreatedDate:             rec["CreatedDate"],
		})
	}

	detailRecs, err := sheetRecords(f, models.SheetContractDetails)
	if err != nil {
		return nil, err
	}
	for _, rec := range detailRecs {
		t.Details = append(t.Details, models.ContractDetailRow{
			ContractID:     pick(rec, "ContractID", "ID"),
			ServiceContent: rec["ServiceContent"],
			ContractAmount: rec["ContractAmount"],
			RemainingHours: rec["RemainingHours"],
			BudgetedHours:  rec["BudgetedHours"],
			HourlyRate:     rec["HourlyRate"],
			Category:       rec["Category"],
			LastModified:   rec["LastModified"],
		})
	}

	documentRecs, err := sheetRecords(f, models.SheetContractDocuments)
	if err != nil {
		return nil, err
	}
	for _, rec := range documentRecs {
		t.Documents = append(t.Documents, models.ContractDocumentRow{
			DocumentID:   rec["DocumentID"],
			ContractID:   rec["ContractID"],
			DocumentName: rec["DocumentName"],
			DocumentType: rec["DocumentType"],
			FileLink:     rec["FileLink"],
			UploadDate:   rec["UploadDate"],
			Description:  rec["Description"],
		})
	}

	contactRecs, err := sheetRecords(f, models.SheetContacts)
	if err != nil {
		return nil, err
	}
	for _, rec := range contactRecs {
		t.Contacts = append(t.Contacts, models.ContactRow{
			ContactID:  rec["ContactID"],
			ContractID: rec["ContractID"],
			Name:       rec["Name"],
			Position:   pick(rec, "Position", "Role"),
			Department: rec["Department"],
			Email:      rec["Email"],
			Phone:      rec["Phone"],
		})
	}

	equipmentRecs, err := sheetRecords(f, models.SheetEquipment)
	if err != nil {
		return nil, err
	}
	for _, rec := range equipmentRecs {
		t.Equipment = append(t.Equipment, models.EquipmentRow{
			EquipmentID:      rec["EquipmentID"],
			ContractID:       rec["ContractID"],
			SerialNumber:     rec["SerialNumber"],
			Model:            rec["Model"],
			Manufacturer:     rec["Manufacturer"],
			Status:           rec["Status"],
			InstallationDate: rec["InstallationDate"],
			LastServiceDate:  rec["LastServiceDate"],
			NextServiceDate:  rec["NextServiceDate"],
		})
	}

	logRecs, err := sheetRecords(f, models.SheetHourLogs)
	if err != nil {
		return nil, err
	}
	for _, rec := range logRecs {
		t.HourLogs = append(t.HourLogs, models.HourLogRow{
			LogID:      rec["LogID"],
			ContractID: rec["ContractID"],
			Engineer:   rec["Engineer"],
			Task:       rec["Task"],
			Date:       rec["Date"],
			Duration:   rec["Duration"],
			Status:     rec["Status"],
			CreatedAt:  rec["CreatedAt"],
		})
	}

	detailRowRecs, err := sheetRecords(f, models.SheetHourLogsDetails)
	if err != nil {
		return nil, err
	}
	for _, rec := range detailRowRecs {
		hoursVal, err := strconv.ParseFloat(rec["Hours"], 64)
		if err != nil {
			hoursVal = 0
		}
		t.HourLogDetails = append(t.HourLogDetails, models.HourLogDetailRow{
			DetailID:     rec["DetailID"],
			LogID:        rec["LogID"],
			Activity:     rec["Activity"],
			TaskCategory: rec["TaskCategory"],
			StartTime:    rec["StartTime"],
			EndTime:      rec["EndTime"],
			Hours:        hoursVal,
			Notes:        rec["Notes"],
		})
	}

	return t, nil
}

// sheetRecords returns the sheet's data rows as header-keyed maps. A sheet
// that does not exist yields no records and no error.
func sheetRecords(f *excelize.File, sheet string) ([]map[string]string, error) {
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(header))
		empty := true
		for i, name := range header {
			if name == "" {
				continue
			}
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			if cell != "" {
				empty = false
			}
			rec[name] = cell
		}
		// Trailing formatting-only rows come back as all-empty; skip them.
		if empty {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// pick returns the first non-empty value among alternate header names.
func pick(rec map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := rec[k]; v != "" {
			return v
		}
	}
	return ""
}
