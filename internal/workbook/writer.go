package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/austin/contracts-mcp/internal/models"
)

var sheetHeaders = map[string][]string{
	models.SheetContracts:         {"ContractID", "Client", "Site", "Address", "Status", "ExpiresDate", "SystelineContractNumber", "ContractNumber", "ContractType", "CreatedDate"},
	models.SheetContractDetails:   {"ContractID", "ServiceContent", "ContractAmount", "RemainingHours", "BudgetedHours", "HourlyRate", "Category", "LastModified"},
	models.SheetContractDocuments: {"DocumentID", "ContractID", "DocumentName", "DocumentType", "FileLink", "UploadDate", "Description"},
	models.SheetContacts:          {"ContactID", "ContractID", "Name", "Position", "Department", "Email", "Phone"},
	models.SheetEquipment:         {"EquipmentID", "ContractID", "SerialNumber", "Model", "Manufacturer", "Status", "InstallationDate", "LastServiceDate", "NextServiceDate"},
	models.SheetHourLogs:          {"LogID", "ContractID", "Engineer", "Task", "Date", "Duration", "Status", "CreatedAt"},
	models.SheetHourLogsDetails:   {"DetailID", "LogID", "Activity", "TaskCategory", "StartTime", "EndTime", "Hours", "Notes"},
}

// Sheet order inside the file matters only for humans opening it, but keep
// it fixed so exports diff cleanly.
var sheetOrder = []string{
	models.SheetContracts,
	models.SheetContractDetails,
	models.SheetContractDocuments,
	models.SheetContacts,
	models.SheetEquipment,
	models.SheetHourLogs,
	models.SheetHourLogsDetails,
}

// Write encodes the seven flat tables into xlsx bytes in the exact field
// layout Read expects, so export/import cycles round-trip.
func Write(t *models.Tables) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", models.SheetContracts); err != nil {
		return nil, fmt.Errorf("failed to create Contracts sheet: %w", err)
	}
	for _, name := range sheetOrder[1:] {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	for _, name := range sheetOrder {
		if err := writeSheet(f, name, sheetRows(t, name)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteTemplate produces a workbook holding only the seven header rows, for
// users starting a database file from scratch.
func WriteTemplate() ([]byte, error) {
	return Write(&models.Tables{})
}

func sheetRows(t *models.Tables, sheet string) [][]interface{} {
	var rows [][]interface{}
	switch sheet {
	case models.SheetContracts:
		for _, r := range t.Contracts {
			rows = append(rows, []interface{}{r.ContractID, r.Client, r.Site, r.Address, r.Status, r.ExpiresDate, r.SystelineContractNumber, r.ContractNumber, r.ContractType, r.CreatedDate})
		}
	case models.SheetContractDetails:
		for _, r := range t.Details {
			rows = append(rows, []interface{}{r.ContractID, r.ServiceContent, r.ContractAmount, r.RemainingHours, r.BudgetedHours, r.HourlyRate, r.Category, r.LastModified})
		}
	case models.SheetContractDocuments:
		for _, r := range t.Documents {
			rows = append(rows, []interface{}{r.DocumentID, r.ContractID, r.DocumentName, r.DocumentType, r.FileLink, r.UploadDate, r.Description})
		}
	case models.SheetContacts:
		for _, r := range t.Contacts {
			rows = append(rows, []interface{}{r.ContactID, r.ContractID, r.Name, r.Position, r.Department, r.Email, r.Phone})
		}
	case models.SheetEquipment:
		for _, r := range t.Equipment {
			rows = append(rows, []interface{}{r.EquipmentID, r.ContractID, r.SerialNumber, r.Model, r.Manufacturer, r.Status, r.InstallationDate, r.LastServiceDate, r.NextServiceDate})
		}
	case models.SheetHourLogs:
		for _, r := range t.HourLogs {
			rows = append(rows, []interface{}{r.LogID, r.ContractID, r.Engineer, r.Task, r.Date, r.Duration, r.Status, r.CreatedAt})
		}
	case models.SheetHourLogsDetails:
		for _, r := range t.HourLogDetails {
			rows = append(rows, []interface{}{r.DetailID, r.LogID, r.Activity, r.TaskCategory, r.StartTime, r.EndTime, r.Hours, r.Notes})
		}
	}
	return rows
}

func writeSheet(f *excelize.File, sheet string, rows [][]interface{}) error {
	header := make([]interface{}, len(sheetHeaders[sheet]))
	for i, h := range sheetHeaders[sheet] {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d of %s: %w", i+2, sheet, err)
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, sheet, err)
		}
	}
	return nil
}
