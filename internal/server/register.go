package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/austin/contracts-mcp/internal/assistant"
	"github.com/austin/contracts-mcp/internal/models"
	"github.com/austin/contracts-mcp/internal/pdf"
	"github.com/austin/contracts-mcp/internal/store"
)

type Handler struct {
	store     *store.Store
	assistant *assistant.Assistant
	exportDir string
}

// RegisterTools registers all tools with the MCP server
func RegisterTools(server *mcp.Server, st *store.Store, ai *assistant.Assistant, exportDir string) {
	h := &Handler{store: st, assistant: ai, exportDir: exportDir}

	// List Contracts tool
	type listContractsArgs struct{}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_contracts",
		Description: "List all service contracts with status and remaining hours",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args listContractsArgs) (*mcp.CallToolResult, any, error) {
		contracts, err := h.store.Load(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load contracts: %w", err)
		}

		text := fmt.Sprintf("Found %d contracts:\n", len(contracts))
		for _, c := range contracts {
			text += fmt.Sprintf("- [%s] %s @ %s — %s, %s remaining, %d logs\n",
				c.ID, c.Client, c.Site, c.Status, c.RemainingHours, len(c.HourLogs))
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: text},
			},
		}, contracts, nil
	})

	// Get Contract tool
	type getContractArgs struct {
		ContractID string `json:"contract_id" jsonschema:"Contract identifier"`
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_contract",
		Description: "Get one contract with its contacts, equipment, documents and hour logs",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args getContractArgs) (*mcp.CallToolResult, any, error) {
		contract, err := h.store.Contract(ctx, args.ContractID)
		if err != nil {
			return nil, nil, err
		}

		text := fmt.Sprintf("%s @ %s (%s)\nStatus: %s | Expires: %s | Remaining: %s | Amount: %s\nContacts: %d | Equipment: %d | Documents: %d | Hour logs: %d",
			contract.Client, contract.Site, contract.ContractNumber,
			contract.Status, contract.ExpiresDate, contract.RemainingHours, contract.Amount,
			len(contract.Contacts), len(contract.Equipment), len(contract.Documents), len(contract.HourLogs))

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: text},
			},
		}, contract, nil
	})

	// Add Hour Log tool
	type addHourLogArgs struct {
		ContractID  string `json:"contract_id" jsonschema:"Contract identifier"`
		Description string `json:"description" jsonschema:"What work was done"`
		Duration    string `json:"duration" jsonschema:"Duration in hours, e.g. '2.5' or '2.5 hrs'"`
		Date        string `json:"date,omitempty" jsonschema:"Date in DD/MM/YY (defaults to today)"`
		Engineer    string `json:"engineer" jsonschema:"Engineer display name"`
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_hour_log",
		Description: "Log hours worked against a contract",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args addHourLogArgs) (*mcp.CallToolResult, any, error) {
		contract, err := h.store.AddHourLog(ctx, args.ContractID, store.LogFields{
			Description: args.Description,
			Duration:    args.Duration,
			Date:        args.Date,
		}, args.Engineer)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to add hour log: %w", err)
		}

		newLog := contract.HourLogs[0]
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{
					Text: fmt.Sprintf("Logged %s for %s on %s (log ID: %s)", newLog.Duration, contract.Client, newLog.Date, newLog.ID),
				},
			},
		}, contract, nil
	})

	// Update Hour Log tool
	type updateHourLogArgs struct {
		ContractID  string `json:"contract_id" jsonschema:"Contract identifier"`
		LogID       string `json:"log_id" jsonschema:"Hour log identifier"`
		Description string `json:"description,omitempty" jsonschema:"New task description (optional)"`
		Duration    string `json:"duration,omitempty" jsonschema:"New duration (optional)"`
		Date        string `json:"date,omitempty" jsonschema:"New date in DD/MM/YY (optional)"`
		Status      string `json:"status,omitempty" jsonschema:"New status (optional)"`
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_hour_log",
		Description: "Edit an existing hour log entry",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args updateHourLogArgs) (*mcp.CallToolResult, any, error) {
		contract, err := h.store.UpdateHourLog(ctx, args.ContractID, args.LogID, store.LogUpdate{
			Description: args.Description,
			Duration:    args.Duration,
			Date:        args.Date,
			Status:      args.Status,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to update hour log: %w", err)
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Updated log %s on contract %s", args.LogID, contract.Client)},
			},
		}, contract, nil
	})

	// Log Hours From Command tool
	type logFromCommandArgs struct {
		Command  string `json:"command" jsonschema:"Free-text command, e.g. 'log 2.5 hours for Acme \"AP replacement\"'"`
		Engineer string `json:"engineer" jsonschema:"Engineer display name"`
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_hours_from_command",
		Description: "Parse a free-text command and log the hours it describes",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args logFromCommandArgs) (*mcp.CallToolResult, any, error) {
		cmd, err := h.assistant.ParseCommand(ctx, args.Command)
		if err != nil {
			return nil, nil, err
		}

		contract, err := h.findContractByClient(ctx, cmd.ClientName)
		if err != nil {
			return nil, nil, err
		}

		updated, err := h.store.AddHourLog(ctx, contract.ID, store.LogFields{
			Description: cmd.WorkDescription,
			Duration:    fmt.Sprintf("%g", cmd.DurationInHours),
		}, args.Engineer)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to add hour log: %w", err)
		}

		newLog := updated.HourLogs[0]
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{
					Text: fmt.Sprintf("Logged %s for %s: %s", newLog.Duration, updated.Client, newLog.Description),
				},
			},
		}, updated, nil
	})

	// Summarize Contract Logs tool
	type summarizeLogsArgs struct {
		ContractID string `json:"contract_id" jsonschema:"Contract identifier"`
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "summarize_contract_logs",
		Description: "Produce a one-sentence summary of a contract's recent hour logs",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args summarizeLogsArgs) (*mcp.CallToolResult, any, error) {
		contract, err := h.store.Contract(ctx, args.ContractID)
		if err != nil {
			return nil, nil, err
		}

		var sb strings.Builder
		for _, log := range contract.HourLogs {
			fmt.Fprintf(&sb, "%s: %s (%s, %s)\n", log.Date, log.Description, log.Engineer, log.Duration)
		}

		summary := h.assistant.SummarizeLogs(ctx, sb.String())
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: summary},
			},
		}, nil, nil
	})

	// List Equipment tool
	type listEquipmentArgs struct {
		ContractID string `json:"contract_id" jsonschema:"Contract identifier"`
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_equipment",
		Description: "List the equipment covered by a contract",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args listEquipmentArgs) (*mcp.CallToolResult, any, error) {
		contract, err := h.store.Contract(ctx, args.ContractID)
		if err != nil {
			return nil, nil, err
		}

		text := fmt.Sprintf("%d equipment items on %s:\n", len(contract.Equipment), contract.Client)
		for _, e := range contract.Equipment {
			text += fmt.Sprintf("- SN %s %s (%s)\n", e.SN, e.Model, e.Status)
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: text},
			},
		}, contract.Equipment, nil
	})

	// List Contacts tool
	type listContactsArgs struct {
		ContractID string `json:"contract_id" jsonschema:"Contract identifier"`
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_contacts",
		Description: "List the contacts attached to a contract",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args listContactsArgs) (*mcp.CallToolResult, any, error) {
		contract, err := h.store.Contract(ctx, args.ContractID)
		if err != nil {
			return nil, nil, err
		}

		text := fmt.Sprintf("%d contacts on %s:\n", len(contract.Contacts), contract.Client)
		for _, c := range contract.Contacts {
			text += fmt.Sprintf("- %s, %s <%s> %s\n", c.Name, c.Role, c.Email, c.Phone)
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: text},
			},
		}, contract.Contacts, nil
	})

	// List Documents tool
	type listDocumentsArgs struct {
		ContractID string `json:"contract_id" jsonschema:"Contract identifier"`
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the documents attached to a contract",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args listDocumentsArgs) (*mcp.CallToolResult, any, error) {
		contract, err := h.store.Contract(ctx, args.ContractID)
		if err != nil {
			return nil, nil, err
		}

		text := fmt.Sprintf("%d documents on %s:\n", len(contract.Documents), contract.Client)
		for _, d := range contract.Documents {
			text += fmt.Sprintf("- %s (%s) uploaded %s\n", d.DocumentName, d.DocumentType, d.UploadDate)
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: text},
			},
		}, contract.Documents, nil
	})

	// Add Document tool
	type addDocumentArgs struct {
		ContractID   string `json:"contract_id" jsonschema:"Contract identifier"`
		DocumentName string `json:"document_name" jsonschema:"Document name"`
		DocumentType string `json:"document_type" jsonschema:"Document type, e.g. Contract, Report"`
		FileLink     string `json:"file_link,omitempty" jsonschema:"Path or URL of the file (optional)"`
		Description  string `json:"description,omitempty" jsonschema:"Description (optional)"`
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_document",
		Description: "Attach a document entry to a contract",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args addDocumentArgs) (*mcp.CallToolResult, any, error) {
		doc := models.ContractDocument{
			ID:           fmt.Sprintf("doc-%s", uuid.New().String()[:8]),
			DocumentName: args.DocumentName,
			DocumentType: args.DocumentType,
			FileLink:     args.FileLink,
			Description:  args.Description,
		}

		contract, err := h.store.AddDocument(ctx, args.ContractID, doc)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to add document: %w", err)
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Attached '%s' to %s (ID: %s)", doc.DocumentName, contract.Client, doc.ID)},
			},
		}, contract, nil
	})

	// Import Workbook tool
	type importWorkbookArgs struct {
		Path string `json:"path" jsonschema:"Path of the xlsx database file to import"`
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "import_workbook",
		Description: "Import an xlsx database file and switch to workbook mode",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args importWorkbookArgs) (*mcp.CallToolResult, any, error) {
		data, err := os.ReadFile(args.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read workbook file: %w", err)
		}

		contracts, err := h.store.ImportFromFile(ctx, data)
		if err != nil {
			return nil, nil, err
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Imported %d contracts from %s", len(contracts), args.Path)},
			},
		}, contracts, nil
	})

	// Export Workbook tool
	type exportWorkbookArgs struct{}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export_workbook",
		Description: "Export the current contracts to an xlsx database file",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args exportWorkbookArgs) (*mcp.CallToolResult, any, error) {
		contracts, err := h.store.Load(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load contracts: %w", err)
		}

		path, err := h.store.ExportToFile(ctx, contracts)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to export workbook: %w", err)
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Exported %d contracts to %s", len(contracts), path)},
			},
		}, nil, nil
	})

	// Export Template tool
	type exportTemplateArgs struct{}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export_template",
		Description: "Write an empty xlsx template with the expected sheets and headers",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args exportTemplateArgs) (*mcp.CallToolResult, any, error) {
		path, err := h.store.ExportTemplate(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to export template: %w", err)
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Template written to %s", path)},
			},
		}, nil, nil
	})

	// Generate Timesheet PDF tool
	type generatePDFArgs struct {
		ContractID string `json:"contract_id" jsonschema:"Contract identifier"`
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_timesheet_pdf",
		Description: "Render a contract's hour-log history as a PDF timesheet",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args generatePDFArgs) (*mcp.CallToolResult, any, error) {
		contract, err := h.store.Contract(ctx, args.ContractID)
		if err != nil {
			return nil, nil, err
		}

		if err := os.MkdirAll(h.exportDir, 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create export directory: %w", err)
		}
		pdfPath := filepath.Join(h.exportDir, fmt.Sprintf("timesheet_%s_%s.pdf", contract.ID, time.Now().Format("2006-01-02")))

		generator := pdf.NewTimesheetGenerator()
		if err := generator.Generate(*contract, pdfPath); err != nil {
			return nil, nil, fmt.Errorf("failed to generate timesheet PDF: %w", err)
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Timesheet for %s written to %s", contract.Client, pdfPath)},
			},
		}, nil, nil
	})

	// Sync Status tool
	type syncStatusArgs struct{}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sync_status",
		Description: "Show the active storage mode and last-synchronized time",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args syncStatusArgs) (*mcp.CallToolResult, any, error) {
		status, err := h.store.SyncStatus(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read sync status: %w", err)
		}

		lastSynced := "never"
		if status.LastSynced != nil {
			lastSynced = status.LastSynced.Format(time.RFC3339)
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Mode: %s | Status: %s | Last synced: %s", status.Mode, status.Status, lastSynced)},
			},
		}, status, nil
	})

	// Set Storage Mode tool
	type setModeArgs struct {
		Mode string `json:"mode" jsonschema:"Storage mode: local or excel"`
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_storage_mode",
		Description: "Switch the active backing store between local cache and workbook mode",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args setModeArgs) (*mcp.CallToolResult, any, error) {
		mode := models.ParseStorageMode(args.Mode)
		if err := h.store.SetMode(mode); err != nil {
			return nil, nil, fmt.Errorf("failed to set storage mode: %w", err)
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Storage mode set to %s", mode)},
			},
		}, nil, nil
	})

	// Reset Data tool
	type resetDataArgs struct{}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "reset_data",
		Description: "Clear all cached data and revert to the bundled sample dataset",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args resetDataArgs) (*mcp.CallToolResult, any, error) {
		if err := h.store.Reset(ctx); err != nil {
			return nil, nil, fmt.Errorf("failed to reset data: %w", err)
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: "All cached data cleared; sample dataset restored"},
			},
		}, nil, nil
	})
}

func (h *Handler) findContractByClient(ctx context.Context, clientName string) (*models.Contract, error) {
	contracts, err := h.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(clientName))
	for i := range contracts {
		if strings.Contains(strings.ToLower(contracts[i].Client), needle) {
			return &contracts[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no contract for client %q", store.ErrContractNotFound, clientName)
}
