// Package catalog defines the storefront entity types and the schema
// normalizer that keeps their dual field naming consistent.
//
// Every entity carries two parallel naming conventions for the same values:
// the current English names and the legacy Spanish names the original
// storefront persisted. Both are serialized, and the normalizer guarantees
// each pair mirrors the same value.
package catalog

import "time"

// Book status values.
const (
	StatusAvailable    = "available"
	StatusOutOfStock   = "out-of-stock"
	StatusUpcoming     = "upcoming"
	StatusDiscontinued = "discontinued"
)

// Book format values. Free-text by contract, but these are the ones the
// importer and the admin screens produce.
const (
	FormatHardcover = "hardcover"
	FormatSoftcover = "softcover"
	FormatEbook     = "e-book"
	FormatAudiobook = "audiobook"
)

// Book is one catalog entry. AuthorID and CategoryID are foreign keys into
// their collections; the store never enforces that they resolve.
type Book struct {
	ID        int    `json:"id"`
	ISBN      string `json:"isbn"`
	Title     string `json:"title"`
	Titulo    string `json:"titulo"`
	Subtitle  string `json:"subtitle,omitempty"`
	Subtitulo string `json:"subtitulo,omitempty"`
	Synopsis  string `json:"synopsis"`
	Sinopsis  string `json:"sinopsis"`

	AuthorID    int    `json:"authorId"`
	AutorID     int    `json:"autor_id"`
	Publisher   string `json:"publisher"`
	Editorial   string `json:"editorial"`
	CategoryID  int    `json:"categoryId"`
	CategoriaID int    `json:"categoria_id"`

	Year            int    `json:"publicationYear"`
	AnioPublicacion int    `json:"anio_publicacion"`
	Language        string `json:"language"`
	Idioma          string `json:"idioma"`
	PageCount       int    `json:"pageCount"`
	Paginas         int    `json:"paginas"`
	Format          string `json:"format"`
	Formato         string `json:"formato"`

	Price       float64 `json:"price"`
	Precio      float64 `json:"precio"`
	Stock       int     `json:"stock"`
	Existencias int     `json:"existencias"`

	CoverURL string `json:"coverUrl,omitempty"`
	Portada  string `json:"portada,omitempty"`
	Status   string `json:"status"`
	Estado   string `json:"estado"`
}

// Author is one catalog author. BirthDate is optional; the persistence
// layer stores it as a string and revives it on read.
type Author struct {
	ID              int        `json:"id"`
	Name            string     `json:"name"`
	Nombre          string     `json:"nombre"`
	Biography       string     `json:"biography"`
	Biografia       string     `json:"biografia"`
	Nationality     string     `json:"nationality"`
	Nacionalidad    string     `json:"nacionalidad"`
	BirthDate       *time.Time `json:"birthDate,omitempty"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento,omitempty"`
	PhotoURL        string     `json:"photoUrl,omitempty"`
	Foto            string     `json:"foto,omitempty"`
}

// Category is one catalog category.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Nombre      string `json:"nombre"`
	Description string `json:"description"`
	Descripcion string `json:"descripcion"`
	Icon        string `json:"icon,omitempty"`
	Icono       string `json:"icono,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Imagen      string `json:"imagen,omitempty"`
}

// Counters holds the next-id state of each collection plus the seed marker.
// They are persisted next to the collections and never decrease, so ids are
// monotonic and never reused after a delete. Initialized records that a seed
// completed, so an empty catalog stays terminal across restarts.
type Counters struct {
	Books       int  `json:"books"`
	Authors     int  `json:"authors"`
	Categories  int  `json:"categories"`
	Initialized bool `json:"initialized"`
}

// Snapshot is the full catalog state at a point in time, as exchanged with
// the persistence adapter and produced by the importer.
type Snapshot struct {
	Books      []Book     `json:"books"`
	Authors    []Author   `json:"authors"`
	Categories []Category `json:"categories"`
}

// Clone returns a deep copy of the snapshot so callers can hand it out
// without exposing the store's internal slices.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Books:      make([]Book, len(s.Books)),
		Authors:    make([]Author, len(s.Authors)),
		Categories: make([]Category, len(s.Categories)),
	}
	copy(out.Books, s.Books)
	copy(out.Authors, s.Authors)
	copy(out.Categories, s.Categories)
	for i, a := range s.Authors {
		if a.BirthDate != nil {
			d := *a.BirthDate
			out.Authors[i].BirthDate = &d
		}
		if a.FechaNacimiento != nil {
			d := *a.FechaNacimiento
			out.Authors[i].FechaNacimiento = &d
		}
	}
	return out
}
