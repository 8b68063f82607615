package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SimpleTable renders static rows for non-interactive commands.
type SimpleTable struct {
	Title   string
	Headers []string
	Rows    [][]string
	// Right lists column indexes rendered right-aligned (amounts, counts).
	Right map[int]bool
}

// NewSimpleTable creates a new SimpleTable with the given title and headers.
func NewSimpleTable(title string, headers ...string) *SimpleTable {
	return &SimpleTable{Title: title, Headers: headers, Right: map[int]bool{}}
}

// AlignRight right-aligns the given columns.
func (t *SimpleTable) AlignRight(cols ...int) *SimpleTable {
	for _, c := range cols {
		t.Right[c] = true
	}
	return t
}

// AddRow adds a row to the table. Missing cells render empty; extra cells
// are dropped.
func (t *SimpleTable) AddRow(cells ...string) {
	row := make([]string, len(t.Headers))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// View renders the table using the provided styles.
func (t *SimpleTable) View(styles Styles) string {
	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}
	if len(t.Rows) == 0 {
		sb.WriteString(styles.Muted.Render("No results."))
		sb.WriteString("\n")
		return sb.String()
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	sep := styles.Muted.Render("│")
	cell := func(base lipgloss.Style, i int, s string) string {
		st := base.Padding(0, 1).Width(widths[i] + 2)
		if t.Right[i] {
			st = st.Align(lipgloss.Right)
		}
		return st.Render(s)
	}

	header := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = cell(styles.Bold, i, h)
	}
	sb.WriteString(strings.Join(header, sep))
	sb.WriteString("\n")

	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("─", w+2)
	}
	sb.WriteString(styles.Muted.Render(strings.Join(rule, "┼")))
	sb.WriteString("\n")

	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = cell(styles.Body, i, c)
		}
		sb.WriteString(strings.Join(cells, sep))
		sb.WriteString("\n")
	}
	return sb.String()
}
