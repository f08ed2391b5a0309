package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"libreria/internal/catalog"
)

// volumeFixture builds a minimal raw volume for the fake API.
func volumeFixture(id, title, author, category string, withCover bool) Volume {
	vol := Volume{
		ID: id,
		VolumeInfo: VolumeInfo{
			Title:         title,
			Authors:       []string{author},
			Categories:    []string{category},
			PublishedDate: "1985-06-01",
			Language:      "es",
			PrintType:     "BOOK",
			PageCount:     300,
			IndustryIdentifiers: []IndustryIdentifier{
				{Type: "ISBN_13", Identifier: "978" + id},
			},
		},
	}
	if withCover {
		vol.VolumeInfo.ImageLinks.Thumbnail = "https://books.test/covers/" + id
	}
	return vol
}

// fakeVolumesServer serves the given volumes page by page, honoring
// startIndex and maxResults, and counts requests.
func fakeVolumesServer(t *testing.T, volumes []Volume, requests *int) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/volumes", func(w http.ResponseWriter, r *http.Request) {
		*requests++
		start, _ := strconv.Atoi(r.URL.Query().Get("startIndex"))
		size, _ := strconv.Atoi(r.URL.Query().Get("maxResults"))

		page := []Volume{}
		if start < len(volumes) {
			end := start + size
			if end > len(volumes) {
				end = len(volumes)
			}
			page = volumes[start:end]
		}
		require.NoError(t, json.NewEncoder(w).Encode(volumesResponse{
			TotalItems: len(volumes),
			Items:      page,
		}))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestImporter(server *httptest.Server, subjects ...string) *Importer {
	client := NewClient(
		WithBaseURL(server.URL),
		WithHTTPClient(server.Client()),
		WithAPIKey(""),
	)
	return NewImporter(client, subjects, "es")
}

func TestImportFiltersVolumesWithoutCover(t *testing.T) {
	volumes := []Volume{
		volumeFixture("v1", "Con portada", "Autor Uno", "Fiction", true),
		volumeFixture("v2", "Sin portada", "Autor Dos", "Fiction", false),
		volumeFixture("v3", "También con portada", "Autor Tres", "Fiction", true),
	}
	var requests int
	server := fakeVolumesServer(t, volumes, &requests)

	snap, err := newTestImporter(server, "fiction").Import(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, snap.Books, 2)
	for _, b := range snap.Books {
		require.NotEmpty(t, b.CoverURL)
		require.Equal(t, catalog.StatusAvailable, b.Status)
	}
}

func TestImportScenarioTwelveMatchingThreeCoverless(t *testing.T) {
	var volumes []Volume
	for i := 0; i < 12; i++ {
		volumes = append(volumes, volumeFixture(fmt.Sprintf("m%d", i), fmt.Sprintf("Libro %d", i), "Autora", "Fiction", true))
	}
	for i := 0; i < 3; i++ {
		volumes = append(volumes, volumeFixture(fmt.Sprintf("n%d", i), fmt.Sprintf("Sin %d", i), "Autora", "Fiction", false))
	}
	var requests int
	server := fakeVolumesServer(t, volumes, &requests)

	snap, err := newTestImporter(server, "fiction").Import(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, snap.Books, 10)
	for _, b := range snap.Books {
		require.NotEmpty(t, b.CoverURL)
		require.Equal(t, catalog.StatusAvailable, b.Status)
	}
}

func TestImportDeduplicatesByVolumeID(t *testing.T) {
	dup := volumeFixture("same", "Repetido", "Autor", "Fiction", true)
	volumes := []Volume{dup, volumeFixture("other", "Otro", "Autor", "Fiction", true), dup}
	var requests int
	server := fakeVolumesServer(t, volumes, &requests)

	snap, err := newTestImporter(server, "fiction").Import(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, snap.Books, 2)
}

func TestImportShortCircuitsAtLimit(t *testing.T) {
	var volumes []Volume
	for i := 0; i < 100; i++ {
		volumes = append(volumes, volumeFixture(fmt.Sprintf("v%d", i), fmt.Sprintf("Libro %d", i), "Autor", "Fiction", true))
	}
	var requests int
	server := fakeVolumesServer(t, volumes, &requests)

	snap, err := newTestImporter(server, "fiction", "history").Import(context.Background(), 40)
	require.NoError(t, err)
	require.Len(t, snap.Books, 40)
	require.Equal(t, 1, requests, "limit reached on the first page, no further fetches")
}

func TestImportExhaustsSubjectsWhenSourceIsSmall(t *testing.T) {
	volumes := []Volume{
		volumeFixture("v1", "Único", "Autor", "Fiction", true),
	}
	var requests int
	server := fakeVolumesServer(t, volumes, &requests)

	snap, err := newTestImporter(server, "fiction").Import(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, snap.Books, 1, "fewer results than the limit is not an error")
}

func TestImportAbortsOnServerError(t *testing.T) {
	mux := http.NewServeMux()
	var requests int
	mux.HandleFunc("/volumes", func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			// A full page with one coverless volume, so the importer
			// still needs a second page to reach the limit.
			page := []Volume{
				volumeFixture("v1", "Primera", "Autor", "Fiction", true),
				volumeFixture("v2", "Sin portada", "Autor", "Fiction", false),
				volumeFixture("v3", "Segunda", "Autor", "Fiction", true),
			}
			_ = json.NewEncoder(w).Encode(volumesResponse{TotalItems: 100, Items: page})
			return
		}
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()), WithAPIKey(""))
	imp := NewImporter(client, []string{"fiction"}, "es")

	// The second page fails; the whole import aborts and the volumes
	// from the first page are discarded.
	_, err := imp.Import(context.Background(), 3)
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
}

func TestImportZeroLimitSkipsFetching(t *testing.T) {
	var requests int
	server := fakeVolumesServer(t, nil, &requests)

	snap, err := newTestImporter(server, "fiction").Import(context.Background(), 0)
	require.NoError(t, err)
	require.Empty(t, snap.Books)
	require.Zero(t, requests)
}
