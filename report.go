package glgen

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Result is the outcome for one registry module.
type Result struct {
	Name         string
	RawPath      string
	FriendlyPath string

	RawWritten      bool
	FriendlyWritten bool
}

// Report summarizes a generator run.
type Report struct {
	// Results are in registry order. Failed and disabled modules are
	// not included.
	Results  []Result
	Disabled int
	Failed   int

	TimeLoad     time.Duration
	TimeGenerate time.Duration
}

// Changed reports whether any file was (or in a dry run, would be)
// written.
func (r *Report) Changed() bool {
	for _, res := range r.Results {
		if res.RawWritten || res.FriendlyWritten {
			return true
		}
	}
	return false
}

// ChangedPaths lists the written files.
func (r *Report) ChangedPaths() []string {
	var res []string
	for _, m := range r.Results {
		if m.RawWritten {
			res = append(res, m.RawPath)
		}
		if m.FriendlyWritten {
			res = append(res, m.FriendlyPath)
		}
	}
	return res
}

// Render prints the summary and timing tables.
func (r *Report) Render(w io.Writer) {
	var nRaw, nFriendly int
	for _, res := range r.Results {
		if res.RawWritten {
			nRaw++
		}
		if res.FriendlyWritten {
			nFriendly++
		}
	}

	fmt.Fprintf(w, "==Module stats==\n")
	{
		total := len(r.Results)
		tbl := tablewriter.NewWriter(w)
		tbl.SetHeader([]string{"Category", "Written/Total"})
		tbl.AppendBulk([][]string{
			{"Raw modules", fmt.Sprintf("%v/%v", nRaw, total)},
			{"Friendly modules", fmt.Sprintf("%v/%v", nFriendly, total)},
			{"Disabled", strconv.Itoa(r.Disabled)},
			{"Failed", strconv.Itoa(r.Failed)},
		})
		tbl.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})
		tbl.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
		tbl.SetCenterSeparator("|")
		tbl.Render()
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "==Timing stats==\n")
	{
		timeTotal := r.TimeLoad + r.TimeGenerate
		timePercent := func(t time.Duration) string {
			if timeTotal == 0 {
				return "0.00"
			}
			return strconv.FormatFloat(
				float64(t)/float64(timeTotal)*100,
				'f', 2, 64,
			)
		}

		tbl := tablewriter.NewWriter(w)
		tbl.SetHeader([]string{"Task", "Time", "Time %"})
		tbl.AppendBulk([][]string{
			{"Load registry", r.TimeLoad.String(), timePercent(r.TimeLoad)},
			{"Generate modules", r.TimeGenerate.String(), timePercent(r.TimeGenerate)},
			{"==TOTAL==", timeTotal.String(), "100"},
		})
		tbl.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})
		tbl.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
		tbl.SetCenterSeparator("|")
		tbl.Render()
	}
}
