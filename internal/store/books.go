package store

import (
	"log/slog"

	"libreria/internal/catalog"
)

// Books returns a copy of the book collection.
func (s *Store) Books() []catalog.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]catalog.Book, len(s.snap.Books))
	copy(out, s.snap.Books)
	return out
}

// BookByID returns the book with the given id.
func (s *Store) BookByID(id int) (catalog.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.snap.Books {
		if b.ID == id {
			return b, nil
		}
	}
	return catalog.Book{}, NewNotFoundError(KindBook, id)
}

// CreateBook assigns the next book id, normalizes the entity, appends it
// and persists the snapshot. The stored book is returned.
func (s *Store) CreateBook(b catalog.Book) (catalog.Book, error) {
	defer s.beginMutation()()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters.Books++
	b.ID = s.counters.Books
	b = catalog.NormalizeBook(b)
	s.snap.Books = append(s.snap.Books, b)

	slog.Debug("Book created", "id", b.ID, "title", b.Title)
	if err := s.persist("create book"); err != nil {
		return b, err
	}
	return b, nil
}

// UpdateBook applies the supplied patch fields onto the stored book,
// re-normalizes and persists. Collection order is preserved.
func (s *Store) UpdateBook(id int, patch BookPatch) (catalog.Book, error) {
	defer s.beginMutation()()
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.snap.Books {
		if existing.ID != id {
			continue
		}
		merged := catalog.NormalizeBook(patch.apply(existing))
		s.snap.Books[i] = merged

		slog.Debug("Book updated", "id", merged.ID)
		if err := s.persist("update book"); err != nil {
			return merged, err
		}
		return merged, nil
	}
	return catalog.Book{}, NewNotFoundError(KindBook, id)
}

// DeleteBook removes the book with the given id and persists. Authors and
// categories referencing it are untouched; deletion never cascades.
func (s *Store) DeleteBook(id int) error {
	defer s.beginMutation()()
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.snap.Books {
		if b.ID != id {
			continue
		}
		s.snap.Books = append(s.snap.Books[:i], s.snap.Books[i+1:]...)

		slog.Debug("Book deleted", "id", id)
		return s.persist("delete book")
	}
	return NewNotFoundError(KindBook, id)
}
