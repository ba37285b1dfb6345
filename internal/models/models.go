package models

import (
	"time"
)

// Sheet names of the workbook database file. Contracts is the root table;
// every other sheet keys back to it (HourLogsDetails keys to HourLogs).
const (
	SheetContracts         = "Contracts"
	SheetContractDetails   = "ContractDetails"
	SheetContractDocuments = "ContractDocuments"
	SheetContacts          = "Contacts"
	SheetEquipment         = "Equipment"
	SheetHourLogs          = "HourLogs"
	SheetHourLogsDetails   = "HourLogsDetails"
)

type ContractStatus string

const (
	StatusActive  ContractStatus = "Active"
	StatusExpired ContractStatus = "Expired"
	StatusPending ContractStatus = "Pending"
)

type EquipmentStatus string

const (
	EquipmentActive   EquipmentStatus = "Active"
	EquipmentInactive EquipmentStatus = "Inactive"
)

type StorageMode string

const (
	ModeLocal StorageMode = "local"
	ModeExcel StorageMode = "excel"
	ModeCloud StorageMode = "cloud"
)

// ContractRow mirrors one row of the Contracts sheet.
type ContractRow struct {
	ContractID              string `json:"contract_id"`
	Client                  string `json:"client"`
	Site                    string `json:"site"`
	Address                 string `json:"address,omitempty"`
	Status                  string `json:"status"`
	ExpiresDate             string `json:"expires_date"`
	SystelineContractNumber string `json:"systeline_contract_number,omitempty"`
	ContractNumber          string `json:"contract_number"`
	ContractType            string `json:"contract_type,omitempty"`
	CreatedDate             string `json:"created_date,omitempty"`
}

// ContractDetailRow mirrors one row of the ContractDetails sheet.
// Zero-or-one per contract.
type ContractDetailRow struct {
	ContractID     string `json:"contract_id"`
	ServiceContent string `json:"service_content"`
	ContractAmount string `json:"contract_amount"`
	RemainingHours string `json:"remaining_hours"`
	BudgetedHours  string `json:"budgeted_hours,omitempty"`
	HourlyRate     string `json:"hourly_rate,omitempty"`
	Category       string `json:"category,omitempty"`
	LastModified   string `json:"last_modified,omitempty"`
}

type ContractDocumentRow struct {
	DocumentID   string `json:"document_id"`
	ContractID   string `json:"contract_id"`
	DocumentName string `json:"document_name"`
	DocumentType string `json:"document_type"`
	FileLink     string `json:"file_link"`
	UploadDate   string `json:"upload_date"`
	Description  string `json:"description,omitempty"`
}

type ContactRow struct {
	ContactID  string `json:"contact_id"`
	ContractID string `json:"contract_id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Department string `json:"department,omitempty"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

type EquipmentRow struct {
	EquipmentID      string `json:"equipment_id"`
	ContractID       string `json:"contract_id"`
	SerialNumber     string `json:"serial_number"`
	Model            string `json:"model"`
	Manufacturer     string `json:"manufacturer,omitempty"`
	Status           string `json:"status"`
	InstallationDate string `json:"installation_date,omitempty"`
	LastServiceDate  string `json:"last_service_date,omitempty"`
	NextServiceDate  string `json:"next_service_date,omitempty"`
}

type HourLogRow struct {
	LogID      string `json:"log_id"`
	ContractID string `json:"contract_id"`
	Engineer   string `json:"engineer"`
	Task       string `json:"task"`
	Date       string `json:"date"`     // DD/MM/YY
	Duration   string `json:"duration"` // e.g. "2.5 hrs"
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"` // RFC 3339
}

type HourLogDetailRow struct {
	DetailID     string  `json:"detail_id"`
	LogID        string  `json:"log_id"`
	Activity     string  `json:"activity"`
	TaskCategory string  `json:"task_category"`
	StartTime    string  `json:"start_time"` // HH:mm
	EndTime      string  `json:"end_time"`   // HH:mm
	Hours        float64 `json:"hours"`
	Notes        string  `json:"notes,omitempty"`
}

// Tables holds the seven flat row tables decoded from (or flattened into)
// a workbook, in sheet row order.
type Tables struct {
	Contracts      []ContractRow
	Details        []ContractDetailRow
	Documents      []ContractDocumentRow
	Contacts       []ContactRow
	Equipment      []EquipmentRow
	HourLogs       []HourLogRow
	HourLogDetails []HourLogDetailRow
}

// HourLogBreakdown is one fine-grained activity entry under an hour log.
type HourLogBreakdown struct {
	ID           string  `json:"id"`
	LogID        string  `json:"logId"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Activity     string  `json:"activity"`
	Hours        float64 `json:"hours"`
	TaskCategory string  `json:"taskCategory"`
	Notes        string  `json:"notes,omitempty"`
}

// HourLog is one logged unit of work. Breakdown stays nil, not empty, when
// the workbook carried no detail rows for the log.
type HourLog struct {
	ID          string             `json:"id"`
	Engineer    string             `json:"engineer"`
	Description string             `json:"description"`
	Duration    string             `json:"duration"`
	Date        string             `json:"date"`
	Status      string             `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	Breakdown   []HourLogBreakdown `json:"breakdown,omitempty"`
}

type Contact struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Position   string `json:"position,omitempty"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department,omitempty"`
}

type Equipment struct {
	ID               string          `json:"id"`
	SN               string          `json:"sn"`
	Model            string          `json:"model"`
	Manufacturer     string          `json:"manufacturer,omitempty"`
	Status           EquipmentStatus `json:"status"`
	InstallationDate string          `json:"installationDate,omitempty"`
	LastServiceDate  string          `json:"lastServiceDate,omitempty"`
	NextServiceDate  string          `json:"nextServiceDate,omitempty"`
}

type ContractDocument struct {
	ID           string `json:"id"`
	ContractID   string `json:"contractId"`
	DocumentName string `json:"documentName"`
	DocumentType string `json:"documentType"`
	FileLink     string `json:"fileLink"`
	UploadDate   string `json:"uploadDate"`
	Description  string `json:"description"`
}

// Contract is the fully joined aggregate: one root row merged with its
// detail row plus every entity that references it.
type Contract struct {
	ID                      string             `json:"id"`
	Client                  string             `json:"client"`
	Site                    string             `json:"site"`
	Address                 string             `json:"address,omitempty"`
	ExpiresDate             string             `json:"expiresDate"`
	SystelineContractNumber string             `json:"systelineContractNumber,omitempty"`
	ContractNumber          string             `json:"contractNumber"`
	ContractPlan            string             `json:"contractPlan"`
	ContractType            string             `json:"contractType,omitempty"`
	ServiceContent          string             `json:"serviceContent"`
	RemainingHours          string             `json:"remainingHours"`
	Amount                  string             `json:"amount"`
	Status                  ContractStatus     `json:"status"`
	Category                string             `json:"category"`
	Location                string             `json:"location"`
	Documents               []ContractDocument `json:"documents,omitempty"`
	Contacts                []Contact          `json:"contacts"`
	Equipment               []Equipment        `json:"equipment"`
	HourLogs                []HourLog          `json:"hourLogs"`
	CreatedDate             string             `json:"createdDate,omitempty"`
	LastModified            string             `json:"lastModified,omitempty"`
	LastSyncedAt            time.Time          `json:"_lastSyncedAt"`
}

// SyncStatus is read by the caller's sync indicator after each mutation.
type SyncStatus struct {
	LastSynced *time.Time  `json:"lastSynced"`
	Status     string      `json:"status"`
	Mode       StorageMode `json:"mode"`
}

// NormalizeContractStatus maps a raw status cell to a valid status,
// defaulting to Active for empty or unknown values.
func NormalizeContractStatus(s string) ContractStatus {
	switch ContractStatus(s) {
	case StatusActive, StatusExpired, StatusPending:
		return ContractStatus(s)
	default:
		return StatusActive
	}
}

// NormalizeEquipmentStatus defaults empty or unknown values to Active.
func NormalizeEquipmentStatus(s string) EquipmentStatus {
	switch EquipmentStatus(s) {
	case EquipmentActive, EquipmentInactive:
		return EquipmentStatus(s)
	default:
		return EquipmentActive
	}
}

// ParseStorageMode defaults to local for anything unrecognized.
func ParseStorageMode(s string) StorageMode {
	switch StorageMode(s) {
	case ModeLocal, ModeExcel, ModeCloud:
		return StorageMode(s)
	default:
		return ModeLocal
	}
}
