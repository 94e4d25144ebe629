// Package report renders a draw for non-interactive output.
package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/kingrea/roledraw/internal/assign"
	"github.com/kingrea/roledraw/internal/roster"
)

// Counts summarizes how many participants received a role.
type Counts struct {
	Assigned int
	Vacant   int
}

// Summary counts assigned and vacant entries.
func Summary(assignments []assign.Assignment) Counts {
	vacant := lo.CountBy(assignments, func(a assign.Assignment) bool { return a.Vacant })
	return Counts{Assigned: len(assignments) - vacant, Vacant: vacant}
}

// String renders the counts as a one-line summary.
func (c Counts) String() string {
	return fmt.Sprintf("%d assigned, %d without a role", c.Assigned, c.Vacant)
}

// Table writes the draw as a Participant/Role table followed by a summary line.
func Table(w io.Writer, draw roster.Draw) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Participant", "Role"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.AppendBulk(lo.Map(draw.Assignments, func(a assign.Assignment, _ int) []string {
		return []string{a.Participant, a.Role}
	}))
	table.Render()

	_, err := fmt.Fprintln(w, Summary(draw.Assignments))
	return err
}
