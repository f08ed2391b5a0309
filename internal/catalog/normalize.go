package catalog

import "time"

// The normalizer is the single place dual naming is reconciled. For every
// field pair the current name wins when set; a value present only under the
// legacy name is adopted; afterwards both names carry the same value.
// Normalizing an already-normalized entity is a no-op.

// NormalizeBook fills defaults and mirrors the legacy field names on b.
func NormalizeBook(b Book) Book {
	b.Title = pickString(b.Title, b.Titulo)
	b.Titulo = b.Title
	b.Subtitle = pickString(b.Subtitle, b.Subtitulo)
	b.Subtitulo = b.Subtitle
	b.Synopsis = pickString(b.Synopsis, b.Sinopsis)
	b.Sinopsis = b.Synopsis
	b.Publisher = pickString(b.Publisher, b.Editorial)
	b.Editorial = b.Publisher
	b.Language = pickString(b.Language, b.Idioma)
	b.Idioma = b.Language
	b.Format = pickString(b.Format, b.Formato)
	b.Formato = b.Format
	b.CoverURL = pickString(b.CoverURL, b.Portada)
	b.Portada = b.CoverURL

	b.AuthorID = pickInt(b.AuthorID, b.AutorID)
	b.AutorID = b.AuthorID
	b.CategoryID = pickInt(b.CategoryID, b.CategoriaID)
	b.CategoriaID = b.CategoryID
	b.Year = pickInt(b.Year, b.AnioPublicacion)
	b.AnioPublicacion = b.Year
	b.PageCount = pickInt(b.PageCount, b.Paginas)
	b.Paginas = b.PageCount
	b.Stock = pickInt(b.Stock, b.Existencias)
	b.Existencias = b.Stock

	if b.Price == 0 {
		b.Price = b.Precio
	}
	b.Precio = b.Price

	b.Status = pickString(b.Status, b.Estado)
	if b.Status == "" {
		b.Status = StatusAvailable
	}
	b.Estado = b.Status

	return b
}

// NormalizeAuthor fills defaults and mirrors the legacy field names on a.
func NormalizeAuthor(a Author) Author {
	a.Name = pickString(a.Name, a.Nombre)
	a.Nombre = a.Name
	a.Biography = pickString(a.Biography, a.Biografia)
	a.Biografia = a.Biography
	a.Nationality = pickString(a.Nationality, a.Nacionalidad)
	a.Nacionalidad = a.Nationality
	a.PhotoURL = pickString(a.PhotoURL, a.Foto)
	a.Foto = a.PhotoURL

	a.BirthDate = pickDate(a.BirthDate, a.FechaNacimiento)
	if a.BirthDate != nil {
		d := *a.BirthDate
		a.FechaNacimiento = &d
	} else {
		a.FechaNacimiento = nil
	}

	return a
}

// NormalizeCategory fills defaults and mirrors the legacy field names on c.
func NormalizeCategory(c Category) Category {
	c.Name = pickString(c.Name, c.Nombre)
	c.Nombre = c.Name
	c.Description = pickString(c.Description, c.Descripcion)
	c.Descripcion = c.Description
	c.Icon = pickString(c.Icon, c.Icono)
	c.Icono = c.Icon
	c.ImageURL = pickString(c.ImageURL, c.Imagen)
	c.Imagen = c.ImageURL
	return c
}

// NormalizeSnapshot normalizes every entity in s, in place of the originals.
func NormalizeSnapshot(s Snapshot) Snapshot {
	for i, b := range s.Books {
		s.Books[i] = NormalizeBook(b)
	}
	for i, a := range s.Authors {
		s.Authors[i] = NormalizeAuthor(a)
	}
	for i, c := range s.Categories {
		s.Categories[i] = NormalizeCategory(c)
	}
	return s
}

func pickString(current, legacy string) string {
	if current != "" {
		return current
	}
	return legacy
}

func pickInt(current, legacy int) int {
	if current != 0 {
		return current
	}
	return legacy
}

func pickDate(current, legacy *time.Time) *time.Time {
	if current != nil {
		d := *current
		return &d
	}
	if legacy != nil {
		d := *legacy
		return &d
	}
	return nil
}
