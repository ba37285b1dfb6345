package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/austin/contracts-mcp/internal/models"
)

func fixtureTables() *models.Tables {
	return &models.Tables{
		Contracts: []models.ContractRow{
			{
				ContractID:     "1",
				Client:         "Acme Corp",
				Site:           "Downtown Site",
				Status:         "Active",
				ExpiresDate:    "24/10/26",
				ContractNumber: "CN-2023-849",
				ContractType:   "Wlan-T1",
				CreatedDate:    "10/01/25",
			},
			{
				ContractID:     "2",
				Client:         "BioGreen",
				Site:           "North Campus",
				Status:         "Pending",
				ExpiresDate:    "01/11/26",
				ContractNumber: "BG-8842",
				ContractType:   "Wlan-T2",
			},
		},
		Details: []models.ContractDetailRow{
			{ContractID: "1", ServiceContent: "HVAC maintenance", ContractAmount: "$12,500", RemainingHours: "120 hrs", Category: "Wlan-T1", LastModified: "2025-06-01T08:00:00Z"},
		},
		Documents: []models.ContractDocumentRow{
			{DocumentID: "doc-1", ContractID: "1", DocumentName: "Agreement.pdf", DocumentType: "Contract", FileLink: "docs/agreement.pdf", UploadDate: "10/01/25", Description: "Signed"},
			{DocumentID: "doc-orphan", ContractID: "999", DocumentName: "Lost.pdf"},
		},
		Contacts: []models.ContactRow{
			{ContactID: "con-1", ContractID: "1", Name: "Sarah Jenkins", Position: "Facility Manager", Email: "s.jenkins@acme.com", Phone: "555-0101"},
			{ContactID: "con-orphan", ContractID: "999", Name: "Nobody"},
		},
		Equipment: []models.EquipmentRow{
			{EquipmentID: "eq-1", ContractID: "1", SerialNumber: "998877", Model: "AHU-200X", Status: "Active"},
			{EquipmentID: "eq-2", ContractID: "1", SerialNumber: "112233", Model: "CT-500", Status: "Inactive"},
		},
		HourLogs: []models.HourLogRow{
			{LogID: "log-old", ContractID: "1", Engineer: "Jordan", Task: "WiFi troubleshoot", Date: "05/06/25", Duration: "1.5 hrs", Status: "Completed", CreatedAt: "2025-06-05T10:00:00Z"},
			{LogID: "log-new", ContractID: "1", Engineer: "Alex", Task: "Sensor calibration", Date: "08/06/25", Duration: "2.5 hrs", Status: "Completed", CreatedAt: "2025-06-08T10:00:00Z"},
			{LogID: "log-orphan", ContractID: "999", Engineer: "Ghost", Task: "Nothing", Duration: "1 hrs", CreatedAt: "2025-06-01T10:00:00Z"},
		},
		HourLogDetails: []models.HourLogDetailRow{
			{DetailID: "detail-1", LogID: "log-new", Activity: "Calibration", TaskCategory: "Technical", StartTime: "08:00", EndTime: "09:30", Hours: 1.5},
			{DetailID: "detail-2", LogID: "log-new", Activity: "Filter swap", TaskCategory: "Maintenance", StartTime: "09:30", EndTime: "10:30", Hours: 1},
			{DetailID: "detail-orphan", LogID: "log-unknown", Activity: "Lost", Hours: 2},
		},
	}
}

func TestAssembleJoinsByForeignKey(t *testing.T) {
	t.Parallel()

	contracts := Assemble(fixtureTables())
	require.Len(t, contracts, 2)

	acme := contracts[0]
	assert.Equal(t, "1", acme.ID)
	assert.Equal(t, "Acme Corp", acme.Client)
	assert.Equal(t, "HVAC maintenance", acme.ServiceContent)
	assert.Equal(t, "120 hrs", acme.RemainingHours)
	assert.Equal(t, "$12,500", acme.Amount)
	assert.Len(t, acme.Documents, 1)
	assert.Len(t, acme.Contacts, 1)
	assert.Len(t, acme.Equipment, 2)
	assert.Len(t, acme.HourLogs, 2)

	// Root table order is preserved.
	assert.Equal(t, "2", contracts[1].ID)
}

func TestAssembleDropsOrphans(t *testing.T) {
	t.Parallel()

	contracts := Assemble(fixtureTables())

	for _, c := range contracts {
		for _, d := range c.Documents {
			assert.NotEqual(t, "doc-orphan", d.ID)
		}
		for _, contact := range c.Contacts {
			assert.NotEqual(t, "con-orphan", contact.ID)
		}
		for _, l := range c.HourLogs {
			assert.NotEqual(t, "log-orphan", l.ID)
			for _, b := range l.Breakdown {
				assert.NotEqual(t, "detail-orphan", b.ID)
			}
		}
	}

	// Orphans do not reappear after a flatten either.
	flat := Flatten(contracts)
	for _, l := range flat.HourLogs {
		assert.NotEqual(t, "log-orphan", l.LogID)
	}
	for _, d := range flat.HourLogDetails {
		assert.NotEqual(t, "detail-orphan", d.DetailID)
	}
}

func TestAssembleNewestFirst(t *testing.T) {
	t.Parallel()

	contracts := Assemble(fixtureTables())
	logs := contracts[0].HourLogs
	require.Len(t, logs, 2)
	assert.Equal(t, "log-new", logs[0].ID)
	assert.Equal(t, "log-old", logs[1].ID)
	for i := 0; i < len(logs)-1; i++ {
		assert.False(t, logs[i].CreatedAt.Before(logs[i+1].CreatedAt))
	}
}

func TestAssembleNewestFirstStableOnTies(t *testing.T) {
	t.Parallel()

	tables := &models.Tables{
		Contracts: []models.ContractRow{{ContractID: "1", Client: "Acme"}},
		HourLogs: []models.HourLogRow{
			{LogID: "a", ContractID: "1", CreatedAt: "2025-06-08T10:00:00Z"},
			{LogID: "b", ContractID: "1", CreatedAt: "2025-06-08T10:00:00Z"},
		},
	}
	logs := Assemble(tables)[0].HourLogs
	require.Len(t, logs, 2)
	assert.Equal(t, "a", logs[0].ID)
	assert.Equal(t, "b", logs[1].ID)
}

func TestAssembleBreakdownOptionality(t *testing.T) {
	t.Parallel()

	contracts := Assemble(fixtureTables())
	logs := contracts[0].HourLogs

	withBreakdown := logs[0]
	require.Equal(t, "log-new", withBreakdown.ID)
	require.Len(t, withBreakdown.Breakdown, 2)
	assert.Equal(t, "Calibration", withBreakdown.Breakdown[0].Activity)

	withoutBreakdown := logs[1]
	assert.Nil(t, withoutBreakdown.Breakdown)
}

func TestAssembleMissingDetailDefaults(t *testing.T) {
	t.Parallel()

	tables := &models.Tables{
		Contracts: []models.ContractRow{{ContractID: "9", Client: "Solo"}},
	}
	contracts := Assemble(tables)
	require.Len(t, contracts, 1)
	assert.Equal(t, "0 hrs", contracts[0].RemainingHours)
	assert.Equal(t, "$0", contracts[0].Amount)
}

func TestAssembleFieldDefaults(t *testing.T) {
	t.Parallel()

	tables := &models.Tables{
		Contracts: []models.ContractRow{
			{ContractID: "1", Client: "Acme", Status: ""},
			{ContractID: "2", Client: "Bad", Status: "Bananas"},
		},
		Equipment: []models.EquipmentRow{
			{EquipmentID: "eq-1", ContractID: "1", SerialNumber: "111", Status: ""},
		},
		HourLogs: []models.HourLogRow{
			{LogID: "l1", ContractID: "1", Duration: "", CreatedAt: "not a timestamp"},
		},
	}

	before := time.Now().UTC()
	contracts := Assemble(tables)

	assert.Equal(t, models.StatusActive, contracts[0].Status)
	assert.Equal(t, models.StatusActive, contracts[1].Status)
	assert.Equal(t, models.EquipmentActive, contracts[0].Equipment[0].Status)

	log := contracts[0].HourLogs[0]
	assert.Equal(t, "0 hrs", log.Duration)
	assert.False(t, log.CreatedAt.Before(before), "malformed timestamp should default to assembly time")
}

func TestAssembleSynthesizesMissingIDs(t *testing.T) {
	t.Parallel()

	tables := &models.Tables{
		Contracts: []models.ContractRow{{ContractID: "1", Client: "Acme"}},
		Documents: []models.ContractDocumentRow{{ContractID: "1", DocumentName: "NoID.pdf"}},
		Contacts:  []models.ContactRow{{ContractID: "1", Name: "Anon"}},
	}
	c := Assemble(tables)[0]
	require.Len(t, c.Documents, 1)
	require.Len(t, c.Contacts, 1)
	assert.NotEmpty(t, c.Documents[0].ID)
	assert.NotEmpty(t, c.Contacts[0].ID)
	assert.NotEqual(t, c.Documents[0].ID, c.Contacts[0].ID)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	x := Assemble(fixtureTables())
	y := Assemble(Flatten(x))

	require.Len(t, y, len(x))
	for i := range x {
		// The sync marker is stamped at assembly time and is not part of
		// the persisted shape.
		x[i].LastSyncedAt = time.Time{}
		y[i].LastSyncedAt = time.Time{}
		assert.Equal(t, x[i], y[i])
	}
}

func TestNewIDUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID("L")
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
