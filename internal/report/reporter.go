package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"scenelink/internal/extract"
	"scenelink/internal/resolve"
)

// Reporter writes human-readable diagnostics for a pipeline run.
type Reporter struct {
	out    io.Writer
	styled bool
}

// New constructs a Reporter. Table styling is enabled only when out is a
// terminal.
func New(out io.Writer) *Reporter {
	styled := false
	if file, ok := out.(*os.File); ok {
		fd := file.Fd()
		styled = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return &Reporter{out: out, styled: styled}
}

// MatchSummary renders the matched pairs and the overall counts.
func (r *Reporter) MatchSummary(outcome resolve.Outcome) {
	if len(outcome.Matched) > 0 {
		rows := make([][]string, len(outcome.Matched))
		for i, match := range outcome.Matched {
			rows[i] = []string{match.CandidateID, match.MatchedID, strconv.Itoa(match.Score)}
		}
		fmt.Fprintln(r.out, r.renderTable(
			[]string{"Candidate", "Matched", "Score"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight},
		))
	}
	fmt.Fprintf(r.out, "%d of %d candidates matched\n", len(outcome.Matched), outcome.Total())
}

// UnmatchedSummary enumerates every unmatched candidate id with the literal
// count, or confirms that everything matched.
func (r *Reporter) UnmatchedSummary(outcome resolve.Outcome) {
	if len(outcome.Unmatched) == 0 {
		fmt.Fprintln(r.out, "All candidate identifiers successfully matched.")
		return
	}
	fmt.Fprintf(r.out, "Unmatched candidate identifiers (%d):\n", len(outcome.Unmatched))
	for _, match := range outcome.Unmatched {
		fmt.Fprintf(r.out, " - %s\n", match.CandidateID)
	}
}

// Records renders an extraction result.
func (r *Reporter) Records(records []extract.Record) {
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{record.SourcePath, record.CandidateID}
	}
	fmt.Fprintln(r.out, r.renderTable(
		[]string{"Source Path", "Candidate ID"},
		rows,
		[]columnAlignment{alignLeft, alignLeft},
	))
	fmt.Fprintf(r.out, "%d records extracted\n", len(records))
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func (r *Reporter) renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	if r.styled {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleLight)
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		tr := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				tr[i] = row[i]
			} else {
				tr[i] = ""
			}
		}
		tw.AppendRow(tr)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
