package store

import (
	"time"

	"libreria/internal/catalog"
)

// Patches carry the fields an update supplies. Nil fields leave the stored
// value unchanged; non-nil fields apply even when they hold a zero value,
// so stock can drop to 0, price can be zeroed and text fields cleared.
// Applying a field writes both of its names, so the normalizer cannot
// re-adopt a stale legacy value afterwards.

// BookPatch is a partial book update.
type BookPatch struct {
	ISBN       *string
	Title      *string
	Subtitle   *string
	Synopsis   *string
	AuthorID   *int
	Publisher  *string
	CategoryID *int
	Year       *int
	Language   *string
	PageCount  *int
	Format     *string
	Price      *float64
	Stock      *int
	CoverURL   *string
	Status     *string
}

func (p BookPatch) apply(b catalog.Book) catalog.Book {
	if p.ISBN != nil {
		b.ISBN = *p.ISBN
	}
	if p.Title != nil {
		b.Title, b.Titulo = *p.Title, *p.Title
	}
	if p.Subtitle != nil {
		b.Subtitle, b.Subtitulo = *p.Subtitle, *p.Subtitle
	}
	if p.Synopsis != nil {
		b.Synopsis, b.Sinopsis = *p.Synopsis, *p.Synopsis
	}
	if p.AuthorID != nil {
		b.AuthorID, b.AutorID = *p.AuthorID, *p.AuthorID
	}
	if p.Publisher != nil {
		b.Publisher, b.Editorial = *p.Publisher, *p.Publisher
	}
	if p.CategoryID != nil {
		b.CategoryID, b.CategoriaID = *p.CategoryID, *p.CategoryID
	}
	if p.Year != nil {
		b.Year, b.AnioPublicacion = *p.Year, *p.Year
	}
	if p.Language != nil {
		b.Language, b.Idioma = *p.Language, *p.Language
	}
	if p.PageCount != nil {
		b.PageCount, b.Paginas = *p.PageCount, *p.PageCount
	}
	if p.Format != nil {
		b.Format, b.Formato = *p.Format, *p.Format
	}
	if p.Price != nil {
		b.Price, b.Precio = *p.Price, *p.Price
	}
	if p.Stock != nil {
		b.Stock, b.Existencias = *p.Stock, *p.Stock
	}
	if p.CoverURL != nil {
		b.CoverURL, b.Portada = *p.CoverURL, *p.CoverURL
	}
	if p.Status != nil {
		b.Status, b.Estado = *p.Status, *p.Status
	}
	return b
}

// AuthorPatch is a partial author update. A nil BirthDate leaves the stored
// date unchanged; there is no way to remove a date once set.
type AuthorPatch struct {
	Name        *string
	Biography   *string
	Nationality *string
	BirthDate   *time.Time
	PhotoURL    *string
}

func (p AuthorPatch) apply(a catalog.Author) catalog.Author {
	if p.Name != nil {
		a.Name, a.Nombre = *p.Name, *p.Name
	}
	if p.Biography != nil {
		a.Biography, a.Biografia = *p.Biography, *p.Biography
	}
	if p.Nationality != nil {
		a.Nationality, a.Nacionalidad = *p.Nationality, *p.Nationality
	}
	if p.BirthDate != nil {
		d := *p.BirthDate
		a.BirthDate, a.FechaNacimiento = &d, &d
	}
	if p.PhotoURL != nil {
		a.PhotoURL, a.Foto = *p.PhotoURL, *p.PhotoURL
	}
	return a
}

// CategoryPatch is a partial category update.
type CategoryPatch struct {
	Name        *string
	Description *string
	Icon        *string
	ImageURL    *string
}

func (p CategoryPatch) apply(c catalog.Category) catalog.Category {
	if p.Name != nil {
		c.Name, c.Nombre = *p.Name, *p.Name
	}
	if p.Description != nil {
		c.Description, c.Descripcion = *p.Description, *p.Description
	}
	if p.Icon != nil {
		c.Icon, c.Icono = *p.Icon, *p.Icon
	}
	if p.ImageURL != nil {
		c.ImageURL, c.Imagen = *p.ImageURL, *p.ImageURL
	}
	return c
}
