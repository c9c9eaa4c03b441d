package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/wichananm65/entries-backend/internal/interface/presenter"
)

var (
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var listHeaders = []string{"ID", "NAME", "EMAIL", "PHONE", "HOBBIES", "PLACE", "GENDER"}

// renderEntries draws entries as a bordered table.
func renderEntries(entries []*presenter.EntryResponse) string {
	if len(entries) == 0 {
		return mutedStyle.Render("No entries found.")
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.ID,
			e.Name,
			e.Email,
			e.Phone,
			strings.Join(e.Hobbies, ", "),
			e.Place,
			e.Gender,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(listHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

// renderEntry draws one entry as label/value lines.
func renderEntry(e *presenter.EntryResponse) string {
	fields := []struct{ label, value string }{
		{"ID", e.ID},
		{"Name", e.Name},
		{"Email", e.Email},
		{"Phone", e.Phone},
		{"Hobbies", strings.Join(e.Hobbies, ", ")},
		{"Place", e.Place},
		{"Gender", e.Gender},
		{"Created", e.CreatedAt},
		{"Updated", e.UpdatedAt},
	}

	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, labelStyle.Width(9).Render(f.label)+f.value)
	}
	return strings.Join(lines, "\n")
}

func summary(res *presenter.ListResponse) string {
	if res.Total == 0 || len(res.Data) == 0 {
		return mutedStyle.Render(fmt.Sprintf("Page %d, 0 of %d entries", res.Page, res.Total))
	}
	first := (res.Page-1)*res.Limit + 1
	last := first + len(res.Data) - 1
	return mutedStyle.Render(fmt.Sprintf("Page %d, showing %d-%d of %d entries", res.Page, first, last, res.Total))
}
