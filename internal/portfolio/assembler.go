package portfolio

import (
	"fmt"
	"sort"
	"strings"
)

// blockSeparator joins rendered repository blocks. Its length counts
// against the budget like any other character.
const blockSeparator = "\n\n"

// Assemble renders entries into one bounded context document. Entries are
// ordered most recently updated first, ties broken by name ascending, so
// identical input always produces byte-identical output. Blocks are
// included whole in priority order; the first block that would push the
// document past budget is dropped along with everything after it.
func Assemble(entries []Entry, budget int) ContextDocument {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Summary, sorted[j].Summary
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return a.Name < b.Name
	})

	var b strings.Builder
	var included []string
	for _, e := range sorted {
		block := renderBlock(e)
		need := len(block)
		if b.Len() > 0 {
			need += len(blockSeparator)
		}
		if b.Len()+need > budget {
			break
		}
		if b.Len() > 0 {
			b.WriteString(blockSeparator)
		}
		b.WriteString(block)
		included = append(included, e.Summary.Name)
	}

	return ContextDocument{
		Text:     b.String(),
		Included: included,
		TotalLen: b.Len(),
	}
}

// renderBlock produces the fixed-shape text block for one repository.
// Sections without content are skipped entirely rather than rendered as
// empty headers.
func renderBlock(e Entry) string {
	s := e.Summary
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n", s.Name)
	if s.Description != "" {
		b.WriteString(s.Description)
		b.WriteByte('\n')
	}
	if s.Language != "" {
		fmt.Fprintf(&b, "Language: %s\n", s.Language)
	}
	if len(s.Topics) > 0 {
		fmt.Fprintf(&b, "Topics: %s\n", strings.Join(s.Topics, ", "))
	}
	fmt.Fprintf(&b, "Stars: %d | Updated: %s\n", s.Stars, s.UpdatedAt.UTC().Format("2006-01-02"))

	m := e.Metadata
	if m.Purpose != "" {
		fmt.Fprintf(&b, "Purpose: %s\n", m.Purpose)
	}
	if len(m.Components) > 0 {
		b.WriteString("Key Components:\n")
		for _, c := range m.Components {
			fmt.Fprintf(&b, "- %s\n", c)
		}
	}
	if len(m.Highlights) > 0 {
		b.WriteString("Highlights:\n")
		for _, h := range m.Highlights {
			fmt.Fprintf(&b, "- %s\n", h)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
