package docparse

import (
	"strconv"
	"strings"
	"unicode"
)

// Section represents a heading in a markdown document.
type Section struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

// ExtractSections parses markdown and returns all headings (H1-H6) in
// document order. Headings inside fenced code blocks are ignored. Anchors
// are URL-safe; duplicates get numeric suffixes.
func ExtractSections(markdown string) []Section {
	if markdown == "" {
		return nil
	}

	var sections []Section
	anchorCounts := make(map[string]int)
	inFence := false

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		level := headingLevel(line)
		if level == 0 {
			continue
		}
		title := strings.TrimSpace(line[level:])
		if title == "" {
			continue
		}

		anchor := anchorFor(title)
		if n, ok := anchorCounts[anchor]; ok {
			anchorCounts[anchor] = n + 1
			anchor = anchor + "-" + strconv.Itoa(n)
		} else {
			anchorCounts[anchor] = 1
		}

		sections = append(sections, Section{
			Level:  level,
			Title:  title,
			Anchor: anchor,
		})
	}

	return sections
}

// headingLevel returns the ATX heading level of a line, or 0 if the line is
// not a heading. A heading is 1-6 leading # characters followed by a space.
func headingLevel(line string) int {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 6 || n >= len(line) || line[n] != ' ' {
		return 0
	}
	return n
}

// anchorFor creates a URL-safe anchor from a heading title: lowercase,
// letters and digits kept, runs of spaces and hyphens collapsed to one
// hyphen, everything else dropped.
func anchorFor(title string) string {
	var sb strings.Builder
	pendingHyphen := false

	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
			}
			pendingHyphen = false
			sb.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			pendingHyphen = true
		}
	}

	return sb.String()
}
