// Package graph joins the seven flat workbook tables into Contract
// aggregates and flattens them back. Joins are linear scans on foreign
// keys, which is fine at the data volumes involved (tens of contracts,
// low hundreds of logs).
package graph

import (
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/austin/contracts-mcp/internal/hours"
	"github.com/austin/contracts-mcp/internal/models"
)

var idCounter atomic.Int64

// NewID synthesizes a table-prefixed identifier, unique for the lifetime of
// the in-memory graph.
func NewID(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixMilli(), idCounter.Add(1))
}

// Assemble joins the flat tables into one aggregate per root row, in root
// table order. Rows whose foreign key matches no root row are dropped
// silently. Malformed cells degrade to defaults instead of aborting, so
// dirty data never hides the rest of the dataset.
func Assemble(t *models.Tables) []models.Contract {
	now := time.Now().UTC()
	contracts := make([]models.Contract, 0, len(t.Contracts))

	for _, row := range t.Contracts {
		contractID := row.ContractID
		if contractID == "" {
			contractID = NewID("c")
		}

		var detail models.ContractDetailRow
		for _, d := range t.Details {
			if row.ContractID != "" && d.ContractID == row.ContractID {
				detail = d
				break
			}
		}

		var documents []models.ContractDocument
		for _, d := range t.Documents {
			if row.ContractID == "" || d.ContractID != row.ContractID {
				continue
			}
			id := d.DocumentID
			if id == "" {
				id = NewID("doc")
			}
			documents = append(documents, models.ContractDocument{
				ID:           id,
				ContractID:   contractID,
				DocumentName: d.DocumentName,
				DocumentType: d.DocumentType,
				FileLink:     d.FileLink,
				UploadDate:   d.UploadDate,
				Description:  d.Description,
			})
		}

		contacts := make([]models.Contact, 0)
		for _, c := range t.Contacts {
			if row.ContractID == "" || c.ContractID != row.ContractID {
				continue
			}
			id := c.ContactID
			if id == "" {
				id = NewID("con")
			}
			contacts = append(contacts, models.Contact{
				ID:         id,
				Name:       c.Name,
				Role:       c.Position,
				Position:   c.Position,
				Email:      c.Email,
				Phone:      c.Phone,
				Department: c.Department,
			})
		}

		equipment := make([]models.Equipment, 0)
		for _, e := range t.Equipment {
			if row.ContractID == "" || e.ContractID != row.ContractID {
				continue
			}
			id := e.EquipmentID
			if id == "" {
				id = NewID("eq")
			}
			equipment = append(equipment, models.Equipment{
				ID:               id,
				SN:               e.SerialNumber,
				Model:            e.Model,
				Manufacturer:     e.Manufacturer,
				Status:           models.NormalizeEquipmentStatus(e.Status),
				InstallationDate: e.InstallationDate,
				LastServiceDate:  e.LastServiceDate,
				NextServiceDate:  e.NextServiceDate,
			})
		}

		hourLogs := make([]models.HourLog, 0)
		for _, l := range t.HourLogs {
			if row.ContractID == "" || l.ContractID != row.ContractID {
				continue
			}
			hourLogs = append(hourLogs, assembleLog(l, t.HourLogDetails, now))
		}
		// Newest first; stable keeps table order for equal timestamps.
		sort.SliceStable(hourLogs, func(i, j int) bool {
			return hourLogs[i].CreatedAt.After(hourLogs[j].CreatedAt)
		})

		remaining := detail.RemainingHours
		if remaining == "" {
			remaining = "0 hrs"
		} else {
			remaining = hours.NormalizeDuration(remaining)
		}
		amount := detail.ContractAmount
		if amount == "" {
			amount = "$0"
		}

		contractPlan := row.ContractType
		if contractPlan == "" {
			contractPlan = detail.Category
		}

		contracts = append(contracts, models.Contract{
			ID:                      contractID,
			Client:                  row.Client,
			Site:                    row.Site,
			Address:                 row.Address,
			ExpiresDate:             canonicalDate(row.ExpiresDate),
			SystelineContractNumber: row.SystelineContractNumber,
			ContractNumber:          row.ContractNumber,
			ContractPlan:            contractPlan,
			ContractType:            row.ContractType,
			ServiceContent:          detail.ServiceContent,
			RemainingHours:          remaining,
			Amount:                  amount,
			Status:                  models.NormalizeContractStatus(row.Status),
			Category:                detail.Category,
			Location:                row.Site,
			Documents:               documents,
			Contacts:                contacts,
			Equipment:               equipment,
			HourLogs:                hourLogs,
			CreatedDate:             row.CreatedDate,
			LastModified:            detail.LastModified,
			LastSyncedAt:            now,
		})
	}

	return contracts
}

func assembleLog(l models.HourLogRow, details []models.HourLogDetailRow, now time.Time) models.HourLog {
	logID := l.LogID
	if logID == "" {
		logID = NewID("log")
	}

	// Breakdown stays nil when no detail rows match; callers rely on the
	// nil/empty distinction surviving round-trips.
	var breakdown []models.HourLogBreakdown
	for _, d := range details {
		if d.LogID != l.LogID || l.LogID == "" {
			continue
		}
		id := d.DetailID
		if id == "" {
			id = NewID("detail")
		}
		breakdown = append(breakdown, models.HourLogBreakdown{
			ID:           id,
			LogID:        logID,
			StartTime:    d.StartTime,
			EndTime:      d.EndTime,
			Activity:     d.Activity,
			Hours:        d.Hours,
			TaskCategory: d.TaskCategory,
			Notes:        d.Notes,
		})
	}

	createdAt, err := hours.ParseTimestamp(l.CreatedAt)
	if err != nil {
		createdAt = now
	}
	createdAt = createdAt.UTC()

	status := l.Status
	if status == "" {
		status = "Completed"
	}

	return models.HourLog{
		ID:          logID,
		Engineer:    l.Engineer,
		Description: l.Task,
		Duration:    hours.NormalizeDuration(l.Duration),
		Date:        canonicalDate(l.Date),
		Status:      status,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
		Breakdown:   breakdown,
	}
}

// canonicalDate reformats parseable dates to DD/MM/YY and leaves anything
// unparseable alone.
func canonicalDate(s string) string {
	if s == "" {
		return ""
	}
	t, err := hours.ParseDate(s)
	if err != nil {
		return s
	}
	return hours.FormatDate(t)
}
