// Package seed provides the bundled fallback dataset returned when nothing
// has ever been persisted. Deterministic so tests and fresh installs see
// the same contracts.
package seed

import (
	"time"

	"github.com/austin/contracts-mcp/internal/models"
)

var baseTime = time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)

// Contracts returns a fresh copy of the sample dataset.
func Contracts() []models.Contract {
	return []models.Contract{
		{
			ID:             "1",
			Client:         "Acme Corp",
			Site:           "Downtown Site",
			Address:        "12 Harbor Rd",
			ExpiresDate:    "24/10/26",
			ContractNumber: "CN-2023-849",
			ContractPlan:   "Wlan-T1",
			ContractType:   "Wlan-T1",
			ServiceContent: "HVAC maintenance and repair for the main data center and satellite offices.",
			RemainingHours: "120 hrs",
			Amount:         "$12,500",
			Status:         models.StatusActive,
			Category:       "Wlan-T1",
			Location:       "Downtown Site",
			Contacts: []models.Contact{
				{ID: "con-1-0", Name: "Sarah Jenkins", Role: "Facility Manager", Position: "Facility Manager", Email: "s.jenkins@acme.com", Phone: "555-0101"},
				{ID: "con-1-1", Name: "Marcus Chen", Role: "Site Engineer", Position: "Site Engineer", Email: "m.chen@acme.com", Phone: "555-0102"},
			},
			Equipment: []models.Equipment{
				{ID: "eq-1-0", SN: "998877", Model: "AHU-200X", Status: models.EquipmentActive},
				{ID: "eq-1-1", SN: "112233", Model: "CT-500", Status: models.EquipmentInactive},
			},
			HourLogs: []models.HourLog{
				{
					ID:          "log-1-0",
					Engineer:    "Alex",
					Description: "Routine maintenance and sensor calibration",
					Duration:    "2.5 hrs",
					Date:        "08/06/25",
					Status:      "Completed",
					CreatedAt:   baseTime,
					UpdatedAt:   baseTime,
					Breakdown: []models.HourLogBreakdown{
						{ID: "detail-1-0", LogID: "log-1-0", StartTime: "08:00", EndTime: "09:30", Activity: "Sensor calibration", Hours: 1.5, TaskCategory: "Technical"},
						{ID: "detail-1-1", LogID: "log-1-0", StartTime: "09:30", EndTime: "10:30", Activity: "Filter replacement", Hours: 1, TaskCategory: "Maintenance"},
					},
				},
				{
					ID:          "log-1-1",
					Engineer:    "Jordan",
					Description: "WiFi troubleshoot and AP repositioning",
					Duration:    "1.5 hrs",
					Date:        "05/06/25",
					Status:      "Completed",
					CreatedAt:   baseTime.AddDate(0, 0, -3),
					UpdatedAt:   baseTime.AddDate(0, 0, -3),
				},
			},
			Documents: []models.ContractDocument{
				{ID: "doc-1-0", ContractID: "1", DocumentName: "Service Agreement.pdf", DocumentType: "Contract", FileLink: "documents/acme-agreement.pdf", UploadDate: "10/01/25", Description: "Signed master agreement"},
			},
			CreatedDate: "10/01/25",
		},
		{
			ID:             "2",
			Client:         "BioGreen",
			Site:           "North Campus",
			ExpiresDate:    "01/11/26",
			ContractNumber: "BG-8842",
			ContractPlan:   "Wlan-T2",
			ContractType:   "Wlan-T2",
			ServiceContent: "Greenhouse automation and smart irrigation control systems support.",
			RemainingHours: "45 hrs",
			Amount:         "$5,200",
			Status:         models.StatusActive,
			Category:       "Wlan-T2",
			Location:       "North Campus",
			Contacts: []models.Contact{
				{ID: "con-2-0", Name: "Elena Ortiz", Role: "Operations Lead", Position: "Operations Lead", Email: "e.ortiz@biogreen.io", Phone: "555-0199"},
			},
			Equipment: []models.Equipment{
				{ID: "eq-2-0", SN: "445566", Model: "IRR-90", Status: models.EquipmentActive},
			},
			HourLogs: []models.HourLog{
				{
					ID:          "log-2-0",
					Engineer:    "Sam",
					Description: "Firmware update for core switches",
					Duration:    "3.0 hrs",
					Date:        "02/06/25",
					Status:      "Completed",
					CreatedAt:   baseTime.AddDate(0, 0, -8),
					UpdatedAt:   baseTime.AddDate(0, 0, -8),
				},
			},
			CreatedDate: "02/02/25",
		},
		{
			ID:             "3",
			Client:         "Northwind Logistics",
			Site:           "Warehouse 7",
			ExpiresDate:    "15/03/26",
			ContractNumber: "NW-1107",
			ContractPlan:   "Wlan-T1",
			ContractType:   "Wlan-T1",
			ServiceContent: "Warehouse connectivity audits and access point servicing.",
			RemainingHours: "80 hrs",
			Amount:         "$9,800",
			Status:         models.StatusPending,
			Category:       "Wlan-T1",
			Location:       "Warehouse 7",
			Contacts:       []models.Contact{},
			Equipment:      []models.Equipment{},
			HourLogs:       []models.HourLog{},
			CreatedDate:    "15/03/25",
		},
	}
}
