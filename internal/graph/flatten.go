package graph

import (
	"time"

	"github.com/austin/contracts-mcp/internal/models"
)

// Flatten is the inverse of Assemble: contracts in input order, each
// contract's sub-lists in their own order, one detail row per contract.
// Field values are written verbatim so Assemble(Flatten(x)) preserves x.
func Flatten(contracts []models.Contract) *models.Tables {
	t := &models.Tables{}

	for _, c := range contracts {
		contractType := c.ContractType
		if contractType == "" {
			contractType = c.ContractPlan
		}

		t.Contracts = append(t.Contracts, models.ContractRow{
			ContractID:              c.ID,
			Client:                  c.Client,
			Site:                    c.Site,
			Address:                 c.Address,
			Status:                  string(c.Status),
			ExpiresDate:             c.ExpiresDate,
			SystelineContractNumber: c.SystelineContractNumber,
			ContractNumber:          c.ContractNumber,
			ContractType:            contractType,
			CreatedDate:             c.CreatedDate,
		})

		t.Details = append(t.Details, models.ContractDetailRow{
			ContractID:     c.ID,
			ServiceContent: c.ServiceContent,
			ContractAmount: c.Amount,
			RemainingHours: c.RemainingHours,
			BudgetedHours:  c.RemainingHours,
			Category:       c.Category,
			LastModified:   c.LastModified,
		})

		for _, d := range c.Documents {
			t.Documents = append(t.Documents, models.ContractDocumentRow{
				DocumentID:   d.ID,
				ContractID:   c.ID,
				DocumentName: d.DocumentName,
				DocumentType: d.DocumentType,
				FileLink:     d.FileLink,
				UploadDate:   d.UploadDate,
				Description:  d.Description,
			})
		}

		for _, contact := range c.Contacts {
			position := contact.Position
			if position == "" {
				position = contact.Role
			}
			t.Contacts = append(t.Contacts, models.ContactRow{
				ContactID:  contact.ID,
				ContractID: c.ID,
				Name:       contact.Name,
				Position:   position,
				Department: contact.Department,
				Email:      contact.Email,
				Phone:      contact.Phone,
			})
		}

		for _, e := range c.Equipment {
			t.Equipment = append(t.Equipment, models.EquipmentRow{
				EquipmentID:      e.ID,
				ContractID:       c.ID,
				SerialNumber:     e.SN,
				Model:            e.Model,
				Manufacturer:     e.Manufacturer,
				Status:           string(e.Status),
				InstallationDate: e.InstallationDate,
				LastServiceDate:  e.LastServiceDate,
				NextServiceDate:  e.NextServiceDate,
			})
		}

		for _, log := range c.HourLogs {
			status := log.Status
			if status == "" {
				status = "Completed"
			}
			t.HourLogs = append(t.HourLogs, models.HourLogRow{
				LogID:      log.ID,
				ContractID: c.ID,
				Engineer:   log.Engineer,
				Task:       log.Description,
				Date:       log.Date,
				Duration:   log.Duration,
				Status:     status,
				CreatedAt:  log.CreatedAt.UTC().Format(time.RFC3339Nano),
			})

			for _, b := range log.Breakdown {
				t.HourLogDetails = append(t.HourLogDetails, models.HourLogDetailRow{
					DetailID:     b.ID,
					LogID:        log.ID,
					Activity:     b.Activity,
					TaskCategory: b.TaskCategory,
					StartTime:    b.StartTime,
					EndTime:      b.EndTime,
					Hours:        b.Hours,
					Notes:        b.Notes,
				})
			}
		}
	}

	return t
}
