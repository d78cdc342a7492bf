package portfolio

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/metadata"
)

func entryAt(name string, updated time.Time) Entry {
	return Entry{Summary: RepositorySummary{
		Name:        name,
		Owner:       "octocat",
		Description: "description of " + name,
		Language:    "Go",
		UpdatedAt:   updated,
	}}
}

func TestAssembleOrdering(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("most recently updated first", func(t *testing.T) {
		entries := []Entry{
			entryAt("oldest", base.Add(-48*time.Hour)),
			entryAt("newest", base),
			entryAt("middle", base.Add(-24*time.Hour)),
		}
		doc := Assemble(entries, 10000)

		assert.Equal(t, []string{"newest", "middle", "oldest"}, doc.Included)
	})

	t.Run("ties break by name ascending", func(t *testing.T) {
		entries := []Entry{
			entryAt("zeta", base),
			entryAt("alpha", base),
			entryAt("mid", base),
		}
		doc := Assemble(entries, 10000)

		assert.Equal(t, []string{"alpha", "mid", "zeta"}, doc.Included)
	})
}

func TestAssembleBudget(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("length never exceeds budget over random inputs", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		for trial := 0; trial < 200; trial++ {
			n := rng.Intn(12)
			entries := make([]Entry, 0, n)
			for i := 0; i < n; i++ {
				e := entryAt(fmt.Sprintf("repo-%d", i), base.Add(time.Duration(rng.Intn(1000))*time.Hour))
				e.Summary.Description = strings.Repeat("x", rng.Intn(400))
				entries = append(entries, e)
			}
			budget := rng.Intn(2000)

			doc := Assemble(entries, budget)

			require.LessOrEqual(t, doc.TotalLen, budget,
				"trial %d: %d entries, budget %d", trial, n, budget)
			require.Equal(t, len(doc.Text), doc.TotalLen)
		}
	})

	t.Run("blocks are included whole or dropped whole", func(t *testing.T) {
		entries := []Entry{
			entryAt("first", base.Add(2*time.Hour)),
			entryAt("second", base.Add(time.Hour)),
			entryAt("third", base),
		}
		full := Assemble(entries, 100000)
		require.Equal(t, 3, len(full.Included))

		firstBlock := strings.Split(full.Text, blockSeparator)[0]

		// Budget fits exactly one block: the second must be dropped whole.
		doc := Assemble(entries, len(firstBlock)+10)
		assert.Equal(t, []string{"first"}, doc.Included)
		assert.Equal(t, firstBlock, doc.Text)
	})

	t.Run("zero budget yields empty document", func(t *testing.T) {
		doc := Assemble([]Entry{entryAt("a", base)}, 0)
		assert.Empty(t, doc.Included)
		assert.Zero(t, doc.TotalLen)
	})
}

func TestAssembleDeterminism(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	entries := []Entry{
		entryAt("b", base),
		entryAt("a", base.Add(time.Hour)),
	}
	entries[0].Metadata = metadata.Extracted{
		Purpose:    "storage engine",
		Components: []string{"wal", "compactor"},
	}

	first := Assemble(entries, 500)
	second := Assemble(entries, 500)

	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, first.Included, second.Included)
}

func TestRenderBlock(t *testing.T) {
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("omits empty sections entirely", func(t *testing.T) {
		e := Entry{Summary: RepositorySummary{Name: "bare", UpdatedAt: base}}
		block := renderBlock(e)

		assert.Contains(t, block, "## bare")
		assert.NotContains(t, block, "Language:")
		assert.NotContains(t, block, "Topics:")
		assert.NotContains(t, block, "Purpose:")
		assert.NotContains(t, block, "Key Components:")
		assert.NotContains(t, block, "Highlights:")
	})

	t.Run("renders metadata sections", func(t *testing.T) {
		e := entryAt("full", base)
		e.Summary.Topics = []string{"go", "cli"}
		e.Metadata = metadata.Extracted{
			Purpose:    "terminal multiplexer",
			Components: []string{"session manager"},
			Highlights: []string{"zero deps"},
		}
		block := renderBlock(e)

		assert.Contains(t, block, "Topics: go, cli")
		assert.Contains(t, block, "Purpose: terminal multiplexer")
		assert.Contains(t, block, "Key Components:\n- session manager")
		assert.Contains(t, block, "Highlights:\n- zero deps")
	})
}

// Three repositories, one carrying a valid .repo-context.json, all fitting
// in a 1000 character budget: every block is included and the most recent
// one carries the extracted purpose.
func TestAssembleEndToEnd(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	newest := entryAt("newest", base)
	newest.Metadata = metadata.Extract(map[string]string{
		metadata.RepoContextFile: `{"purpose":"demo"}`,
	})
	entries := []Entry{
		entryAt("older", base.Add(-time.Hour)),
		newest,
		entryAt("oldest", base.Add(-2*time.Hour)),
	}

	doc := Assemble(entries, 1000)

	require.Equal(t, []string{"newest", "older", "oldest"}, doc.Included)
	require.LessOrEqual(t, doc.TotalLen, 1000)

	blocks := strings.Split(doc.Text, blockSeparator)
	require.Len(t, blocks, 3)
	assert.Contains(t, blocks[0], "demo")
}
