// Package metadata extracts structured fields from the special marker files
// a repository may carry (.repo-context.json, PROJECT-MANIFEST.md).
package metadata

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"
)

// Recognized special filenames, in resolution priority order.
const (
	RepoContextFile = ".repo-context.json"
	ManifestFile    = "PROJECT-MANIFEST.md"
)

// Extracted holds whatever the special files yielded. Absent fields stay
// zero-valued; ParseErrors records malformed input without failing the
// pipeline.
type Extracted struct {
	Purpose     string   `json:"purpose,omitempty"`
	Components  []string `json:"components,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
	ParseErrors []string `json:"parse_errors,omitempty"`
}

// Empty reports whether no content fields were extracted.
func (e Extracted) Empty() bool {
	return e.Purpose == "" && len(e.Components) == 0 && len(e.Highlights) == 0
}

// Recognize filters a repository's root file listing down to the special
// filenames we know how to parse, in priority order. Matching is exact:
// the files are a tooling convention with fixed names.
func Recognize(files []string) []string {
	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f] = true
	}
	var out []string
	for _, name := range []string{RepoContextFile, ManifestFile} {
		if present[name] {
			out = append(out, name)
		}
	}
	return out
}

// Extract builds metadata from the fetched special file contents, keyed by
// filename. The JSON context file wins when it parses; a malformed context
// file is recorded as a parse error and the manifest is used instead. With
// neither file the result is simply empty.
func Extract(contents map[string]string) Extracted {
	var out Extracted

	if raw, ok := contents[RepoContextFile]; ok {
		parsed, err := fromRepoContext(raw)
		if err == nil {
			return parsed
		}
		out.ParseErrors = append(out.ParseErrors, fmt.Sprintf("%s: %v", RepoContextFile, err))
	}

	if raw, ok := contents[ManifestFile]; ok {
		parsed := fromManifest(raw)
		parsed.ParseErrors = append(out.ParseErrors, parsed.ParseErrors...)
		return parsed
	}

	return out
}

// componentList accepts either plain strings or the original convention of
// {name, description} objects.
type componentList []string

func (c *componentList) UnmarshalJSON(b []byte) error {
	var plain []string
	if err := json.Unmarshal(b, &plain); err == nil {
		*c = plain
		return nil
	}
	var objs []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(b, &objs); err != nil {
		return err
	}
	items := make([]string, 0, len(objs))
	for _, o := range objs {
		switch {
		case o.Name != "" && o.Description != "":
			items = append(items, o.Name+": "+o.Description)
		case o.Name != "":
			items = append(items, o.Name)
		case o.Description != "":
			items = append(items, o.Description)
		}
	}
	*c = items
	return nil
}

type repoContext struct {
	Purpose     string        `json:"purpose"`
	Description string        `json:"description"`
	Components  componentList `json:"components"`
	Highlights  []string      `json:"highlights"`
}

func fromRepoContext(raw string) (Extracted, error) {
	var rc repoContext
	if err := json.Unmarshal([]byte(raw), &rc); err != nil {
		return Extracted{}, err
	}
	purpose := rc.Purpose
	if purpose == "" {
		purpose = rc.Description
	}
	return Extracted{
		Purpose:    strings.TrimSpace(purpose),
		Components: rc.Components,
		Highlights: rc.Highlights,
	}, nil
}

// Manifest heading vocabulary. Headings are matched case-insensitively
// after trimming trailing colons; unrecognized headings end the previous
// section and are otherwise ignored.
var manifestSections = map[string]string{
	"purpose":                   "purpose",
	"overview":                  "purpose",
	"summary":                   "purpose",
	"key components":            "components",
	"components":                "components",
	"structure":                 "components",
	"project structure":         "components",
	"highlights":                "highlights",
	"features":                  "highlights",
	"demonstrated competencies": "highlights",
	"skills":                    "highlights",
}

func fromManifest(raw string) Extracted {
	var out Extracted

	section := ""
	var items []string
	var text []string

	flush := func() {
		switch section {
		case "purpose":
			if out.Purpose == "" && len(text) > 0 {
				out.Purpose = strings.Join(text, " ")
			}
		case "components":
			out.Components = append(out.Components, pickItems(items, text)...)
		case "highlights":
			out.Highlights = append(out.Highlights, pickItems(items, text)...)
		}
		section, items, text = "", nil, nil
	}

	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		line := scanner.Text()
		if heading, ok := headingOf(line); ok {
			flush()
			section = manifestSections[heading]
			continue
		}
		if section == "" {
			continue
		}
		if item, ok := listItemOf(line); ok {
			items = append(items, item)
			continue
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			text = append(text, trimmed)
		}
	}
	flush()

	return out
}

func headingOf(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	heading := strings.TrimLeft(trimmed, "#")
	if heading == trimmed {
		return "", false
	}
	heading = strings.ToLower(strings.TrimSpace(strings.TrimRight(strings.TrimSpace(heading), ":")))
	return heading, heading != ""
}

func listItemOf(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, marker := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(trimmed, marker) {
			return strings.TrimSpace(trimmed[len(marker):]), true
		}
	}
	// Numbered items: "1. foo"
	for i, r := range trimmed {
		if r >= '0' && r <= '9' {
			continue
		}
		if i > 0 && (r == '.' || r == ')') && len(trimmed) > i+1 && trimmed[i+1] == ' ' {
			return strings.TrimSpace(trimmed[i+2:]), true
		}
		break
	}
	return "", false
}

// pickItems prefers explicit list items; a section written as prose
// contributes its non-empty lines instead.
func pickItems(items, text []string) []string {
	if len(items) > 0 {
		return items
	}
	return text
}
