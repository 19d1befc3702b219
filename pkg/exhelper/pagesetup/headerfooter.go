package pagesetup

import "strings"

// Sections holds the three parts of a header or footer line.
type Sections struct {
	Left, Center, Right string
}

// ParseHeaderFooter splits a header/footer format string such as
// "&LDraft&C&P / &N&R&D" into its sections. Text before any section code
// belongs to the center section. Other format codes are kept verbatim.
func ParseHeaderFooter(s string) Sections {
	var parts [3]strings.Builder
	current := 1
	for i := 0; i < len(s); i++ {
		if s[i] == '&' && i+1 < len(s) {
			switch s[i+1] {
			case 'L', 'l':
				current = 0
				i++
				continue
			case 'C', 'c':
				current = 1
				i++
				continue
			case 'R', 'r':
				current = 2
				i++
				continue
			case '&':
				parts[current].WriteString("&&")
				i++
				continue
			}
		}
		parts[current].WriteByte(s[i])
	}
	return Sections{Left: parts[0].String(), Center: parts[1].String(), Right: parts[2].String()}
}

// hasSectionCode reports whether text contains &L, &C or &R. Such text
// cannot be stored in one section: it would split into several on reading.
// "&&" is an escaped ampersand and does not start a code.
func hasSectionCode(text string) bool {
	for i := 0; i+1 < len(text); i++ {
		if text[i] != '&' {
			continue
		}
		switch text[i+1] {
		case 'L', 'l', 'C', 'c', 'R', 'r':
			return true
		}
		i++
	}
	return false
}

// Compose renders the sections as a header/footer format string, omitting
// empty sections. Section texts must not contain section codes.
func (s Sections) Compose() string {
	var b strings.Builder
	if s.Left != "" {
		b.WriteString("&L" + s.Left)
	}
	if s.Center != "" {
		b.WriteString("&C" + s.Center)
	}
	if s.Right != "" {
		b.WriteString("&R" + s.Right)
	}
	return b.String()
}
