package changelog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFragments creates root/<category>/<name> for every entry.
func writeFragments(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func newTestCollector() *Collector {
	return NewCollector(Options{Repository: "org/repo", EnsureTrailingNewline: true})
}

func TestCollect_Backlinks(t *testing.T) {
	tests := map[string]struct {
		category string
		files    map[string]string
		want     string
	}{
		"bugfix bullet gets link": {
			category: "bugfixes",
			files:    map[string]string{"42.md": "- Fixed the thing\n"},
			want:     "- Fixed the thing [#42](https://github.com/org/repo/pull/42)",
		},
		"feature bullet gets link": {
			category: "features",
			files:    map[string]string{"7.md": "- Added a thing\n"},
			want:     "- Added a thing [#7](https://github.com/org/repo/pull/7)",
		},
		"issues never linked": {
			category: "issues",
			files:    map[string]string{"42.md": "- Known problem\n"},
			want:     "- Known problem",
		},
		"other never linked": {
			category: "other",
			files:    map[string]string{"42.md": "- Bumped a dependency\n"},
			want:     "- Bumped a dependency",
		},
		"non bullet lines untouched": {
			category: "features",
			files:    map[string]string{"5.md": "Intro text\n- Bullet\n  continuation\n-not a bullet\n"},
			want:     "Intro text\n- Bullet [#5](https://github.com/org/repo/pull/5)\n  continuation\n-not a bullet",
		},
		"identical lines all rewritten": {
			category: "bugfixes",
			files:    map[string]string{"9.md": "- Same\n- Same\n"},
			want:     "- Same [#9](https://github.com/org/repo/pull/9)\n- Same [#9](https://github.com/org/repo/pull/9)",
		},
		"last line without newline": {
			category: "bugfixes",
			files:    map[string]string{"3.md": "- First\n- Last"},
			want:     "- First [#3](https://github.com/org/repo/pull/3)\n- Last [#3](https://github.com/org/repo/pull/3)",
		},
		"id is text before first dot": {
			category: "features",
			files:    map[string]string{"12.v2.md": "- Thing\n"},
			want:     "- Thing [#12](https://github.com/org/repo/pull/12)",
		},
		"crlf line endings": {
			category: "features",
			files:    map[string]string{"8.md": "- Windows\r\n"},
			want:     "- Windows [#8](https://github.com/org/repo/pull/8)",
		},
		"crlf mixed with plain lines": {
			category: "features",
			files:    map[string]string{"8.md": "Intro\r\n- a\r\nOutro\r\n"},
			want:     "Intro\n- a [#8](https://github.com/org/repo/pull/8)\nOutro",
		},
		"nested line repeating a bullet": {
			category: "bugfixes",
			files:    map[string]string{"42.md": "- Fix crash\n  - Fix crash\n"},
			want: "- Fix crash [#42](https://github.com/org/repo/pull/42)\n" +
				"  - Fix crash [#42](https://github.com/org/repo/pull/42)",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root := t.TempDir()
			files := make(map[string]string, len(tt.files))
			for n, c := range tt.files {
				files[tt.category+"/"+n] = c
			}
			writeFragments(t, root, files)

			got, err := newTestCollector().Collect(filepath.Join(root, tt.category))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCollect_MissingDirectory(t *testing.T) {
	got, err := newTestCollector().Collect(filepath.Join(t.TempDir(), "bugfixes"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCollect_NotADirectory(t *testing.T) {
	root := t.TempDir()
	writeFragments(t, root, map[string]string{"bugfixes": "oops"})

	_, err := newTestCollector().Collect(filepath.Join(root, "bugfixes"))
	assert.Error(t, err)
}

func TestCollect_OrderAndSkips(t *testing.T) {
	root := t.TempDir()
	writeFragments(t, root, map[string]string{
		"other/20.md":       "- twenty\n",
		"other/100.md":      "- hundred\n",
		"other/3.md":        "- three\n",
		"other/.gitkeep":    "",
		"other/nested/1.md": "- nested\n",
	})

	got, err := newTestCollector().Collect(filepath.Join(root, "other"))
	require.NoError(t, err)
	// Fragments are concatenated in lexical file name order.
	assert.Equal(t, "- hundred\n- twenty\n- three", got)
}

func TestCollect_TrailingNewline(t *testing.T) {
	tests := map[string]struct {
		ensure bool
		want   string
	}{
		"normalized": {
			ensure: true,
			want:   "- one\n- two",
		},
		"raw concatenation": {
			ensure: false,
			want:   "- one- two",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root := t.TempDir()
			writeFragments(t, root, map[string]string{
				"issues/1.md": "- one",
				"issues/2.md": "- two",
			})

			c := NewCollector(Options{Repository: "org/repo", EnsureTrailingNewline: tt.ensure})
			got, err := c.Collect(filepath.Join(root, "issues"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCollect_TrimsSurroundingWhitespace(t *testing.T) {
	root := t.TempDir()
	writeFragments(t, root, map[string]string{
		"other/1.md": "\n\n- padded\n\n\n",
	})

	got, err := newTestCollector().Collect(filepath.Join(root, "other"))
	require.NoError(t, err)
	assert.Equal(t, "- padded", got)
}

func TestNewCollector_DefaultRepository(t *testing.T) {
	c := NewCollector(Options{})
	assert.Equal(t, "https://github.com/mapbox/mapbox-navigation-android/pull/1", c.PullRequestURL("1"))
}

func TestAddBacklinks(t *testing.T) {
	suffix := " [#1](u)\n"
	assert.Equal(t, "", AddBacklinks("", suffix))
	assert.Equal(t, "text\n", AddBacklinks("text\n", suffix))
	assert.Equal(t, "- a [#1](u)\n", AddBacklinks("- a\n", suffix))
	assert.Equal(t, "-  a [#1](u)\n", AddBacklinks("-  a\n", suffix))
	assert.Equal(t, "- a [#1](u)\n  - a [#1](u)\n", AddBacklinks("- a\n  - a\n", suffix))
}

func TestReadFragments_NormalizesLineEndings(t *testing.T) {
	root := t.TempDir()
	writeFragments(t, root, map[string]string{"other/1.md": "one\r\ntwo\rthree\n"})

	fragments, err := newTestCollector().ReadFragments(filepath.Join(root, "other"))
	require.NoError(t, err)
	require.Len(t, fragments, 1)
	assert.Equal(t, "one\ntwo\nthree\n", fragments[0].Content)
}
