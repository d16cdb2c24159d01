package diag

import "strings"

// FormatShort renders one line per diagnostic (notes indented below it).
// Newlines inside messages are folded into spaces.
func FormatShort(diags []Diagnostic, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}
	lines := make([]string, 0, len(diags))
	for _, d := range diags {
		d.Message = foldLines(d.Message)
		lines = append(lines, d.Short())
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			line := "  note " + d.Code.ID()
			if n.Subject != "" {
				line += " " + n.Subject + ":"
			}
			lines = append(lines, line+" "+foldLines(n.Msg))
		}
	}
	return strings.Join(lines, "\n")
}

func foldLines(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
