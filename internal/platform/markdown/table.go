package markdown

import "strings"

// Table renders a pipe table. Pipes inside cells are escaped; short rows are
// padded with empty cells.
func Table(header []string, rows [][]string) string {
	if len(header) == 0 {
		return ""
	}
	b := strings.Builder{}
	writeRow(&b, header, len(header))
	rule := make([]string, len(header))
	for i := range rule {
		rule[i] = "---"
	}
	writeRow(&b, rule, len(header))
	for _, row := range rows {
		writeRow(&b, row, len(header))
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string, width int) {
	b.WriteString("|")
	for i := 0; i < width; i++ {
		cell := ""
		if i < len(cells) {
			cell = strings.ReplaceAll(cells[i], "|", `\|`)
		}
		b.WriteString(" ")
		b.WriteString(cell)
		b.WriteString(" |")
	}
	b.WriteString("\n")
}
