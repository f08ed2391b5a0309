package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libreria/internal/catalog"
	"libreria/internal/testutil"
)

func exportSnapshot() catalog.Snapshot {
	return catalog.NormalizeSnapshot(catalog.Snapshot{
		Books: []catalog.Book{
			{
				ID:         1,
				ISBN:       "9780307474728",
				Title:      "Cien años de soledad",
				Synopsis:   "La historia de la familia Buendía.",
				AuthorID:   1,
				CategoryID: 1,
				Publisher:  "Sudamericana",
				Year:       1967,
				Language:   "Español",
				PageCount:  471,
				Format:     catalog.FormatSoftcover,
				Price:      19.99,
				Stock:      12,
			},
			{
				ID:         2,
				ISBN:       "9788437604947",
				Title:      "Poema 20: Puedo escribir",
				AuthorID:   99,
				CategoryID: 99,
				Language:   "Español",
				Format:     catalog.FormatEbook,
				Price:      9.99,
				Stock:      5,
			},
		},
		Authors:    []catalog.Author{{ID: 1, Name: "Gabriel García Márquez"}},
		Categories: []catalog.Category{{ID: 1, Name: "Ficción"}},
	})
}

func TestWriteCatalogWritesOneFilePerBook(t *testing.T) {
	env := testutil.NewTestEnv(t)
	outDir := env.Path("markdown")

	written, err := WriteCatalog(exportSnapshot(), outDir)
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	files := env.ListFiles("markdown")
	assert.Len(t, files, 2)
	assert.True(t, env.FileExists("markdown/Cien años de soledad.md"))
}

func TestWriteCatalogRendersFrontmatterAndBody(t *testing.T) {
	env := testutil.NewTestEnv(t)
	outDir := env.Path("markdown")

	_, err := WriteCatalog(exportSnapshot(), outDir)
	require.NoError(t, err)

	content := env.ReadFileString("markdown/Cien años de soledad.md")

	assert.Contains(t, content, "title: Cien años de soledad\n")
	assert.Contains(t, content, "isbn: \"9780307474728\"\n")
	assert.Contains(t, content, "author: Gabriel García Márquez\n")
	assert.Contains(t, content, "category: Ficción\n")
	assert.Contains(t, content, "year: 1967\n")
	assert.Contains(t, content, "# Cien años de soledad\n")
	assert.Contains(t, content, "La historia de la familia Buendía.\n")
}

func TestWriteCatalogDanglingReferencesRenderEmpty(t *testing.T) {
	env := testutil.NewTestEnv(t)
	outDir := env.Path("markdown")

	_, err := WriteCatalog(exportSnapshot(), outDir)
	require.NoError(t, err)

	content := env.ReadFileString("markdown/Poema 20 - Puedo escribir.md")

	assert.Contains(t, content, "author: \"\"\n")
	assert.Contains(t, content, "category: \"\"\n")
	assert.NotContains(t, content, "publisher:")
	assert.NotContains(t, content, "year:")
}

func TestWriteCatalogDisambiguatesDuplicateTitles(t *testing.T) {
	env := testutil.NewTestEnv(t)
	outDir := env.Path("markdown")

	snap := catalog.NormalizeSnapshot(catalog.Snapshot{
		Books: []catalog.Book{
			{ID: 1, Title: "Antología", Synopsis: "Primera selección."},
			{ID: 2, Title: "Antología", Synopsis: "Segunda selección."},
		},
	})

	written, err := WriteCatalog(snap, outDir)
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	files := env.ListFiles("markdown")
	assert.Len(t, files, 2, "a duplicate title must not overwrite the earlier note")
	assert.True(t, env.FileExists("markdown/Antología.md"))
	assert.True(t, env.FileExists("markdown/Antología-2.md"))
	assert.Contains(t, env.ReadFileString("markdown/Antología.md"), "Primera selección.")
	assert.Contains(t, env.ReadFileString("markdown/Antología-2.md"), "Segunda selección.")
}

func TestWriteCatalogEmptySnapshot(t *testing.T) {
	env := testutil.NewTestEnv(t)
	outDir := env.Path("markdown")

	written, err := WriteCatalog(catalog.Snapshot{}, outDir)
	require.NoError(t, err)
	assert.Equal(t, 0, written)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "A Title - Subtitle", sanitizeFilename("A Title: Subtitle"))
	assert.Equal(t, "a-b-c", sanitizeFilename("a/b\\c"))
	assert.Equal(t, "untitled", sanitizeFilename(""))
}
