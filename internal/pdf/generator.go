package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/austin/contracts-mcp/internal/hours"
	"github.com/austin/contracts-mcp/internal/models"
)

type TimesheetGenerator struct{}

func NewTimesheetGenerator() *TimesheetGenerator {
	return &TimesheetGenerator{}
}

// Generate renders one contract's hour-log history as a PDF timesheet.
func (g *TimesheetGenerator) Generate(contract models.Contract, outputPath string) error {
	m := maroto.New(config.NewBuilder().Build())

	m.AddRow(10,
		col.New(8).Add(
			text.New(contract.Client, props.Text{
				Size:  16,
				Style: fontstyle.Bold,
			}),
		),
		col.New(4).Add(
			text.New("TIMESHEET", props.Text{
				Size:  20,
				Style: fontstyle.BoldItalic,
				Align: align.Right,
			}),
		),
	)

	m.AddRow(6,
		col.New(8).Add(
			text.New(contract.Site, props.Text{
				Size: 10,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("Contract #: %s", contract.ContractNumber), props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
		),
	)

	if contract.Address != "" {
		m.AddRow(5,
			col.New(8).Add(
				text.New(contract.Address, props.Text{
					Size: 9,
				}),
			),
			col.New(4).Add(
				text.New(fmt.Sprintf("Expires: %s", contract.ExpiresDate), props.Text{
					Size:  9,
					Align: align.Right,
				}),
			),
		)
	} else {
		m.AddRow(5,
			col.New(8),
			col.New(4).Add(
				text.New(fmt.Sprintf("Expires: %s", contract.ExpiresDate), props.Text{
					Size:  9,
					Align: align.Right,
				}),
			),
		)
	}

	m.AddRow(5,
		col.New(8).Add(
			text.New(fmt.Sprintf("Plan: %s", contract.ContractPlan), props.Text{
				Size: 9,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("Status: %s", contract.Status), props.Text{
				Size:  9,
				Align: align.Right,
			}),
		),
	)

	if contract.ServiceContent != "" {
		m.AddRow(8,
			col.New(12).Add(
				text.New(contract.ServiceContent, props.Text{
					Size: 9,
				}),
			),
		)
	}

	m.AddRow(10)

	m.AddRow(8,
		col.New(12).Add(
			text.New("Hour Logs", props.Text{
				Size:  12,
				Style: fontstyle.Bold,
			}),
		),
	)

	m.AddRow(8,
		col.New(2).Add(
			text.New("Date", props.Text{
				Size:  9,
				Style: fontstyle.Bold,
			}),
		),
		col.New(2).Add(
			text.New("Engineer", props.Text{
				Size:  9,
				Style: fontstyle.Bold,
			}),
		),
		col.New(6).Add(
			text.New("Task", props.Text{
				Size:  9,
				Style: fontstyle.Bold,
			}),
		),
		col.New(2).Add(
			text.New("Duration", props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
		),
	)

	var totalHours float64

	for _, log := range contract.HourLogs {
		totalHours += hours.ParseDuration(log.Duration)

		m.AddRow(6,
			col.New(2).Add(
				text.New(log.Date, props.Text{
					Size: 8,
				}),
			),
			col.New(2).Add(
				text.New(log.Engineer, props.Text{
					Size: 8,
				}),
			),
			col.New(6).Add(
				text.New(log.Description, props.Text{
					Size: 8,
				}),
			),
			col.New(2).Add(
				text.New(log.Duration, props.Text{
					Size:  8,
					Align: align.Right,
				}),
			),
		)

		for _, b := range log.Breakdown {
			m.AddRow(5,
				col.New(2),
				col.New(4).Add(
					text.New(fmt.Sprintf("%s - %s  %s", b.StartTime, b.EndTime, b.Activity), props.Text{
						Size: 7,
					}),
				),
				col.New(4).Add(
					text.New(b.TaskCategory, props.Text{
						Size: 7,
					}),
				),
				col.New(2).Add(
					text.New(fmt.Sprintf("%.2f", b.Hours), props.Text{
						Size:  7,
						Align: align.Right,
					}),
				),
			)
		}
	}

	m.AddRow(8)

	m.AddRow(8,
		col.New(6),
		col.New(4).Add(
			text.New("Total Hours:", props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
		),
		col.New(2).Add(
			text.New(fmt.Sprintf("%.2f", totalHours), props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
		),
	)

	m.AddRow(6,
		col.New(6),
		col.New(4).Add(
			text.New("Remaining:", props.Text{
				Size:  9,
				Align: align.Right,
			}),
		),
		col.New(2).Add(
			text.New(contract.RemainingHours, props.Text{
				Size:  9,
				Align: align.Right,
			}),
		),
	)

	document, err := m.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate PDF document: %w", err)
	}

	if err := document.Save(outputPath); err != nil {
		return fmt.Errorf("failed to save PDF: %w", err)
	}

	return nil
}
