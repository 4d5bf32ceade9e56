package comment

import "strings"

// Clean removes the common leading indentation of the non-blank lines,
// trailing blanks of each line and leading/trailing empty lines.
func Clean(s string) string {
	lines := strings.Split(s, "\n")
	pad := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if pad < 0 || n < pad {
			pad = n
		}
	}
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			lines[i] = ""
			continue
		}
		if pad > 0 {
			l = l[pad:]
		}
		lines[i] = strings.TrimRight(l, " \t")
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
