package store

import (
	"log/slog"

	"libreria/internal/catalog"
)

// Authors returns a copy of the author collection.
func (s *Store) Authors() []catalog.Author {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]catalog.Author, len(s.snap.Authors))
	copy(out, s.snap.Authors)
	return out
}

// AuthorByID returns the author with the given id.
func (s *Store) AuthorByID(id int) (catalog.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.snap.Authors {
		if a.ID == id {
			return a, nil
		}
	}
	return catalog.Author{}, NewNotFoundError(KindAuthor, id)
}

// CreateAuthor assigns the next author id, normalizes, appends and
// persists.
func (s *Store) CreateAuthor(a catalog.Author) (catalog.Author, error) {
	defer s.beginMutation()()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters.Authors++
	a.ID = s.counters.Authors
	a = catalog.NormalizeAuthor(a)
	s.snap.Authors = append(s.snap.Authors, a)

	slog.Debug("Author created", "id", a.ID, "name", a.Name)
	if err := s.persist("create author"); err != nil {
		return a, err
	}
	return a, nil
}

// UpdateAuthor applies the supplied patch fields onto the stored author,
// re-normalizes and persists.
func (s *Store) UpdateAuthor(id int, patch AuthorPatch) (catalog.Author, error) {
	defer s.beginMutation()()
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.snap.Authors {
		if existing.ID != id {
			continue
		}
		merged := catalog.NormalizeAuthor(patch.apply(existing))
		s.snap.Authors[i] = merged

		slog.Debug("Author updated", "id", merged.ID)
		if err := s.persist("update author"); err != nil {
			return merged, err
		}
		return merged, nil
	}
	return catalog.Author{}, NewNotFoundError(KindAuthor, id)
}

// DeleteAuthor removes the author with the given id and persists. Books
// referencing the author keep their authorId; deletion never cascades.
func (s *Store) DeleteAuthor(id int) error {
	defer s.beginMutation()()
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.snap.Authors {
		if a.ID != id {
			continue
		}
		s.snap.Authors = append(s.snap.Authors[:i], s.snap.Authors[i+1:]...)

		slog.Debug("Author deleted", "id", id)
		return s.persist("delete author")
	}
	return NewNotFoundError(KindAuthor, id)
}
