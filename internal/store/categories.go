package store

import (
	"log/slog"

	"libreria/internal/catalog"
)

// Categories returns a copy of the category collection.
func (s *Store) Categories() []catalog.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]catalog.Category, len(s.snap.Categories))
	copy(out, s.snap.Categories)
	return out
}

// CategoryByID returns the category with the given id.
func (s *Store) CategoryByID(id int) (catalog.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.snap.Categories {
		if c.ID == id {
			return c, nil
		}
	}
	return catalog.Category{}, NewNotFoundError(KindCategory, id)
}

// CreateCategory assigns the next category id, normalizes, appends and
// persists.
func (s *Store) CreateCategory(c catalog.Category) (catalog.Category, error) {
	defer s.beginMutation()()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters.Categories++
	c.ID = s.counters.Categories
	c = catalog.NormalizeCategory(c)
	s.snap.Categories = append(s.snap.Categories, c)

	slog.Debug("Category created", "id", c.ID, "name", c.Name)
	if err := s.persist("create category"); err != nil {
		return c, err
	}
	return c, nil
}

// UpdateCategory applies the supplied patch fields onto the stored
// category, re-normalizes and persists.
func (s *Store) UpdateCategory(id int, patch CategoryPatch) (catalog.Category, error) {
	defer s.beginMutation()()
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.snap.Categories {
		if existing.ID != id {
			continue
		}
		merged := catalog.NormalizeCategory(patch.apply(existing))
		s.snap.Categories[i] = merged

		slog.Debug("Category updated", "id", merged.ID)
		if err := s.persist("update category"); err != nil {
			return merged, err
		}
		return merged, nil
	}
	return catalog.Category{}, NewNotFoundError(KindCategory, id)
}

// DeleteCategory removes the category with the given id and persists.
// Books referencing the category keep their categoryId; deletion never
// cascades.
func (s *Store) DeleteCategory(id int) error {
	defer s.beginMutation()()
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.snap.Categories {
		if c.ID != id {
			continue
		}
		s.snap.Categories = append(s.snap.Categories[:i], s.snap.Categories[i+1:]...)

		slog.Debug("Category deleted", "id", id)
		return s.persist("delete category")
	}
	return NewNotFoundError(KindCategory, id)
}
