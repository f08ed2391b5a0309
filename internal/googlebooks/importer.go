package googlebooks

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"libreria/internal/catalog"
	"libreria/internal/store"
)

const (
	// Placeholders for volumes missing author or category data.
	unknownAuthorName   = "unknown author"
	generalCategoryName = "general"

	// Commerce data is synthesized; the source has none.
	minPrice = 9.99
	maxPrice = 59.99
	minStock = 5
	maxStock = 35

	// fallbackYear is used when no 4-digit year can be parsed.
	fallbackYear = 2000
)

// languageNames maps known two-letter codes to display names. Unknown codes
// pass through unchanged.
var languageNames = map[string]string{
	"es": "Español",
	"en": "Inglés",
	"fr": "Francés",
	"de": "Alemán",
	"it": "Italiano",
	"pt": "Portugués",
	"ca": "Catalán",
	"ja": "Japonés",
	"ru": "Ruso",
}

// categoryTranslations rewrites the category names Google Books commonly
// returns into the storefront's display language.
var categoryTranslations = map[string]string{
	"fiction":                   "Ficción",
	"juvenile fiction":          "Ficción juvenil",
	"biography & autobiography": "Biografía",
	"history":                   "Historia",
	"science":                   "Ciencia",
	"computers":                 "Informática",
	"philosophy":                "Filosofía",
	"poetry":                    "Poesía",
	"drama":                     "Teatro",
	"religion":                  "Religión",
	"business & economics":      "Economía",
	"cooking":                   "Cocina",
	"art":                       "Arte",
	"travel":                    "Viajes",
}

var yearPattern = regexp.MustCompile(`\d{4}`)

// Compile-time check that Importer satisfies the store's importer port.
var _ store.Importer = (*Importer)(nil)

// Importer populates an empty catalog from Google Books subject searches.
type Importer struct {
	client   *Client
	subjects []string
	language string
}

// NewImporter creates an importer that queries the given subjects,
// restricted to the given two-letter language code.
func NewImporter(client *Client, subjects []string, language string) *Importer {
	if len(subjects) == 0 {
		subjects = []string{"fiction"}
	}
	return &Importer{
		client:   client,
		subjects: subjects,
		language: language,
	}
}

// Import fetches up to limit volumes and maps them into a freshly numbered
// snapshot. Any page fetch failure aborts the whole import; no partial
// result is returned.
func (imp *Importer) Import(ctx context.Context, limit int) (catalog.Snapshot, error) {
	if limit <= 0 {
		return catalog.Snapshot{Books: []catalog.Book{}, Authors: []catalog.Author{}, Categories: []catalog.Category{}}, nil
	}

	volumes, err := imp.collect(ctx, limit)
	if err != nil {
		return catalog.Snapshot{}, err
	}

	snap := mapVolumes(volumes, imp.language)
	slog.Info("Catalog import complete",
		"books", len(snap.Books),
		"authors", len(snap.Authors),
		"categories", len(snap.Categories),
	)
	return snap, nil
}

// collect pages through the subject queries, filtering out coverless
// volumes and deduplicating by volume id, until limit volumes are gathered
// or every subject is exhausted.
func (imp *Importer) collect(ctx context.Context, limit int) ([]Volume, error) {
	seen := make(map[string]bool)
	var collected []Volume

	pageSize := limit
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

subjects:
	for _, subject := range imp.subjects {
		for startIndex := 0; ; startIndex += pageSize {
			page, err := imp.client.SearchSubject(ctx, subject, imp.language, pageSize, startIndex)
			if err != nil {
				return nil, fmt.Errorf("fetching subject %q: %w", subject, err)
			}
			if len(page) == 0 {
				break // subject exhausted
			}

			for _, vol := range page {
				if !vol.HasCover() {
					continue
				}
				if seen[vol.ID] {
					continue
				}
				seen[vol.ID] = true
				collected = append(collected, vol)
				if len(collected) >= limit {
					break subjects
				}
			}

			if len(page) < pageSize {
				break // short page, subject exhausted
			}
		}
	}

	if len(collected) > limit {
		collected = collected[:limit]
	}
	return collected, nil
}

// mapVolumes converts raw volumes into the three catalog collections.
// Author and category names are deduplicated case-insensitively so repeated
// names reuse one id; identifiers start at 1 within each collection.
func mapVolumes(volumes []Volume, language string) catalog.Snapshot {
	snap := catalog.Snapshot{
		Books:      make([]catalog.Book, 0, len(volumes)),
		Authors:    []catalog.Author{},
		Categories: []catalog.Category{},
	}

	authorIDs := make(map[string]int)
	categoryIDs := make(map[string]int)
	usedISBNs := make(map[string]bool)

	for i, vol := range volumes {
		info := vol.VolumeInfo

		authorName := unknownAuthorName
		if len(info.Authors) > 0 && info.Authors[0] != "" {
			authorName = info.Authors[0]
		}
		authorID, ok := authorIDs[strings.ToLower(authorName)]
		if !ok {
			authorID = len(snap.Authors) + 1
			authorIDs[strings.ToLower(authorName)] = authorID
			snap.Authors = append(snap.Authors, catalog.NormalizeAuthor(catalog.Author{
				ID:   authorID,
				Name: authorName,
			}))
		}

		categoryName := generalCategoryName
		if len(info.Categories) > 0 && info.Categories[0] != "" {
			categoryName = translateCategory(info.Categories[0])
		}
		categoryID, ok := categoryIDs[strings.ToLower(categoryName)]
		if !ok {
			categoryID = len(snap.Categories) + 1
			categoryIDs[strings.ToLower(categoryName)] = categoryID
			snap.Categories = append(snap.Categories, catalog.NormalizeCategory(catalog.Category{
				ID:   categoryID,
				Name: categoryName,
			}))
		}

		book := catalog.Book{
			ID:         i + 1,
			ISBN:       isbnForVolume(vol, usedISBNs),
			Title:      info.Title,
			Subtitle:   info.Subtitle,
			Synopsis:   info.Description,
			AuthorID:   authorID,
			Publisher:  info.Publisher,
			CategoryID: categoryID,
			Year:       yearFromDate(info.PublishedDate),
			Language:   languageName(info.Language, language),
			PageCount:  info.PageCount,
			Format:     formatForPrintType(info.PrintType),
			Price:      randomPrice(),
			Stock:      randomStock(),
			CoverURL:   vol.CoverURL(),
			Status:     catalog.StatusAvailable,
		}
		snap.Books = append(snap.Books, catalog.NormalizeBook(book))
	}

	return snap
}

// isbnForVolume prefers ISBN-13 over ISBN-10 over the first identifier of
// any type. Volumes without identifiers get a synthesized unique one.
func isbnForVolume(vol Volume, used map[string]bool) string {
	var isbn13, isbn10, first string
	for _, id := range vol.VolumeInfo.IndustryIdentifiers {
		if first == "" {
			first = id.Identifier
		}
		switch id.Type {
		case "ISBN_13":
			if isbn13 == "" {
				isbn13 = id.Identifier
			}
		case "ISBN_10":
			if isbn10 == "" {
				isbn10 = id.Identifier
			}
		}
	}

	isbn := isbn13
	if isbn == "" {
		isbn = isbn10
	}
	if isbn == "" {
		isbn = first
	}
	if isbn == "" || used[isbn] {
		isbn = "GEN-" + uuid.NewString()
	}
	used[isbn] = true
	return isbn
}

// languageName maps a two-letter code to its display name. Unknown codes
// pass through; an absent code falls back to the default import language.
func languageName(code, defaultCode string) string {
	if code == "" {
		code = defaultCode
	}
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	return code
}

// yearFromDate extracts the first 4-digit run from a free-text date.
func yearFromDate(published string) int {
	if m := yearPattern.FindString(published); m != "" {
		if year, err := strconv.Atoi(m); err == nil {
			return year
		}
	}
	return fallbackYear
}

// formatForPrintType classifies print volumes as softcover and everything
// else as e-book.
func formatForPrintType(printType string) string {
	if strings.EqualFold(printType, "BOOK") {
		return catalog.FormatSoftcover
	}
	return catalog.FormatEbook
}

func randomPrice() float64 {
	price := minPrice + rand.Float64()*(maxPrice-minPrice)
	return math.Round(price*100) / 100
}

func randomStock() int {
	return minStock + rand.IntN(maxStock-minStock+1)
}

func translateCategory(name string) string {
	if translated, ok := categoryTranslations[strings.ToLower(name)]; ok {
		return translated
	}
	return name
}
