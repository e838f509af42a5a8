// Package pdf renders the executive S&OP cycle report handed out at the
// Executive S&OP meeting.
//
// A4 layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Cycle name + period      │  Status + current step  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Step | Name | Status | Due date                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DECISIONS / ACTION ITEMS / NOTES                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/genxsop/genxsop/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// CycleReportGenerator renders an SOPCycle into a printable PDF using Maroto v2.
type CycleReportGenerator struct{}

func NewCycleReportGenerator() *CycleReportGenerator { return &CycleReportGenerator{} }

// GenerateCycleReport renders the report and returns its bytes.
func (g *CycleReportGenerator) GenerateCycleReport(_ context.Context, cycle *entity.SOPCycle) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("S&OP Cycle Report", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(cycle))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(stepTableHeader())
	for _, r := range stepRows(cycle) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(narrativeRows(cycle)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate cycle report: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(cycle *entity.SOPCycle) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(cycle.CycleName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Period: "+cycle.Period.Format("January 2006"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("S&OP CYCLE REPORT", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Status: "+cycle.OverallStatus, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("Current step: %d — %s", cycle.CurrentStep, entity.StepName(cycle.CurrentStep)), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func stepTableHeader() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}
	return row.New(8).Add(
		col.New(1).Add(text.New("#", header)),
		col.New(5).Add(text.New("Step", header)),
		col.New(3).Add(text.New("Status", header)),
		col.New(3).Add(text.New("Due date", header)),
	)
}

func stepRows(cycle *entity.SOPCycle) []core.Row {
	rows := make([]core.Row, 0, entity.NumSteps)
	body := props.Text{Size: 9, Top: 1}
	for i, step := range cycle.Steps {
		due := "-"
		if step.DueDate != nil {
			due = step.DueDate.Format("02/01/2006")
		}
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", i+1), body)),
			col.New(5).Add(text.New(entity.StepName(i+1), body)),
			col.New(3).Add(text.New(step.Status, body)),
			col.New(3).Add(text.New(due, body)),
		))
	}
	return rows
}

func narrativeRows(cycle *entity.SOPCycle) []core.Row {
	sections := []struct {
		title string
		body  string
	}{
		{"Decisions", cycle.Decisions},
		{"Action items", cycle.ActionItems},
		{"Notes", cycle.Notes},
	}

	rows := []core.Row{}
	for _, s := range sections {
		if s.body == "" {
			continue
		}
		rows = append(rows,
			row.New(7).Add(col.New(12).Add(
				text.New(s.title, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2}),
			)),
			row.New(12).Add(col.New(12).Add(
				text.New(s.body, props.Text{Size: 9, Top: 1}),
			)),
		)
	}
	return rows
}
