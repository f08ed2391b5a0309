package googlebooks

import (
	"testing"

	"github.com/stretchr/testify/require"

	"libreria/internal/catalog"
)

func TestISBNPrefersISBN13(t *testing.T) {
	vol := Volume{VolumeInfo: VolumeInfo{IndustryIdentifiers: []IndustryIdentifier{
		{Type: "ISBN_10", Identifier: "8408163388"},
		{Type: "ISBN_13", Identifier: "9788408163381"},
	}}}

	isbn := isbnForVolume(vol, map[string]bool{})
	require.Equal(t, "9788408163381", isbn)
}

func TestISBNFallsBackToISBN10(t *testing.T) {
	vol := Volume{VolumeInfo: VolumeInfo{IndustryIdentifiers: []IndustryIdentifier{
		{Type: "ISBN_10", Identifier: "8408163388"},
	}}}

	isbn := isbnForVolume(vol, map[string]bool{})
	require.Equal(t, "8408163388", isbn)
}

func TestISBNFallsBackToFirstIdentifier(t *testing.T) {
	vol := Volume{VolumeInfo: VolumeInfo{IndustryIdentifiers: []IndustryIdentifier{
		{Type: "OTHER", Identifier: "OCLC:1234"},
	}}}

	isbn := isbnForVolume(vol, map[string]bool{})
	require.Equal(t, "OCLC:1234", isbn)
}

func TestISBNSynthesizedWhenAbsent(t *testing.T) {
	used := map[string]bool{}
	first := isbnForVolume(Volume{}, used)
	second := isbnForVolume(Volume{}, used)

	require.NotEmpty(t, first)
	require.NotEmpty(t, second)
	require.NotEqual(t, first, second, "synthesized identifiers are unique within a batch")
}

func TestISBNCollisionSynthesizesFresh(t *testing.T) {
	vol := Volume{VolumeInfo: VolumeInfo{IndustryIdentifiers: []IndustryIdentifier{
		{Type: "ISBN_13", Identifier: "9788408163381"},
	}}}

	used := map[string]bool{}
	first := isbnForVolume(vol, used)
	second := isbnForVolume(vol, used)
	require.Equal(t, "9788408163381", first)
	require.NotEqual(t, first, second)
}

func TestLanguageNameMapping(t *testing.T) {
	require.Equal(t, "Español", languageName("es", "es"))
	require.Equal(t, "Inglés", languageName("en", "es"))
	require.Equal(t, "eu", languageName("eu", "es"), "unknown codes pass through")
	require.Equal(t, "Español", languageName("", "es"), "absent codes use the default")
}

func TestYearFromDate(t *testing.T) {
	require.Equal(t, 1985, yearFromDate("1985-06-01"))
	require.Equal(t, 2011, yearFromDate("2011"))
	require.Equal(t, 1999, yearFromDate("circa 1999, reprint"))
	require.Equal(t, fallbackYear, yearFromDate(""))
	require.Equal(t, fallbackYear, yearFromDate("unknown"))
}

func TestFormatClassification(t *testing.T) {
	require.Equal(t, catalog.FormatSoftcover, formatForPrintType("BOOK"))
	require.Equal(t, catalog.FormatEbook, formatForPrintType("MAGAZINE"))
	require.Equal(t, catalog.FormatEbook, formatForPrintType(""))
}

func TestSynthesizedCommerceDataStaysInBounds(t *testing.T) {
	for i := 0; i < 200; i++ {
		price := randomPrice()
		require.GreaterOrEqual(t, price, minPrice)
		require.LessOrEqual(t, price, maxPrice)

		stock := randomStock()
		require.GreaterOrEqual(t, stock, minStock)
		require.LessOrEqual(t, stock, maxStock)
	}
}

func TestMapVolumesDeduplicatesNamesCaseInsensitively(t *testing.T) {
	volumes := []Volume{
		volumeFixture("v1", "Uno", "Isabel Allende", "Fiction", true),
		volumeFixture("v2", "Dos", "ISABEL ALLENDE", "FICTION", true),
		volumeFixture("v3", "Tres", "Jorge Luis Borges", "Poetry", true),
	}

	snap := mapVolumes(volumes, "es")
	require.Len(t, snap.Authors, 2, "repeated author names reuse one id")
	require.Len(t, snap.Categories, 2)
	require.Equal(t, snap.Books[0].AuthorID, snap.Books[1].AuthorID)
	require.Equal(t, snap.Books[0].CategoryID, snap.Books[1].CategoryID)
}

func TestMapVolumesTranslatesKnownCategories(t *testing.T) {
	volumes := []Volume{
		volumeFixture("v1", "Uno", "Autor", "Fiction", true),
		volumeFixture("v2", "Dos", "Autor", "Subterranean Studies", true),
	}

	snap := mapVolumes(volumes, "es")
	require.Equal(t, "Ficción", snap.Categories[0].Name)
	require.Equal(t, "Subterranean Studies", snap.Categories[1].Name, "unknown categories pass through")
}

func TestMapVolumesUsesPlaceholders(t *testing.T) {
	vol := volumeFixture("v1", "Anónimo", "", "", true)
	vol.VolumeInfo.Authors = nil
	vol.VolumeInfo.Categories = nil

	snap := mapVolumes([]Volume{vol}, "es")
	require.Equal(t, "unknown author", snap.Authors[0].Name)
	require.Equal(t, "general", snap.Categories[0].Name)
}

func TestMapVolumesNumbersFromOne(t *testing.T) {
	volumes := []Volume{
		volumeFixture("v1", "Uno", "A", "Fiction", true),
		volumeFixture("v2", "Dos", "B", "History", true),
		volumeFixture("v3", "Tres", "C", "Science", true),
	}

	snap := mapVolumes(volumes, "es")
	for i, b := range snap.Books {
		require.Equal(t, i+1, b.ID)
	}
	for i, a := range snap.Authors {
		require.Equal(t, i+1, a.ID)
	}
	for i, c := range snap.Categories {
		require.Equal(t, i+1, c.ID)
	}
}

func TestMapVolumesProducesNormalizedEntities(t *testing.T) {
	snap := mapVolumes([]Volume{volumeFixture("v1", "Uno", "Autora", "Fiction", true)}, "es")

	book := snap.Books[0]
	require.Equal(t, book.Title, book.Titulo)
	require.Equal(t, book.Price, book.Precio)
	require.Equal(t, book.Status, book.Estado)
	require.Equal(t, "Español", book.Language)
	require.Equal(t, catalog.FormatSoftcover, book.Format)

	author := snap.Authors[0]
	require.Equal(t, author.Name, author.Nombre)
}
