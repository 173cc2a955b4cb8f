package main

import (
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"recording-logs/internal/client"
	"recording-logs/internal/domain"
)

var statusGlyphs = map[string]string{
	"plus-circle":  "+",
	"check-circle": "✔",
	"times-circle": "✘",
	"hourglass":    "⧗",
	"refresh":      "↻",
}

func renderRecordsTable(records []client.Record) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	tw.AppendHeader(table.Row{
		"Task ID", "Form Name", "Program", "Case Number",
		"Application Number", "Documentum ID", "Uploaded On", "Status",
	})

	for _, rec := range records {
		tw.AppendRow(table.Row{
			rec.TaskID,
			rec.FormName,
			rec.Program,
			rec.CaseNumber,
			rec.AppNumber,
			rec.DocumentumID,
			formatUploadedOn(rec.UploadedOn),
			statusCell(rec.Status),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AlignHeader: text.AlignLeft},
		{Number: 7, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

func statusCell(status domain.Status) string {
	display := status.Display()
	if display.Label == "" {
		return ""
	}
	glyph, ok := statusGlyphs[display.Icon]
	if !ok {
		return display.Label
	}
	return display.Label + " " + glyph
}

// formatUploadedOn renders the raw ISO-8601 instant as MM/DD/YYYY HH:mm:ss,
// matching the table's date style. Unparseable values pass through verbatim.
func formatUploadedOn(raw string) string {
	if raw == "" {
		return ""
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return ts.Format("01/02/2006 15:04:05")
}
