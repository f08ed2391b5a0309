// Package cmd wires the kong CLI for the libreria catalog store.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"libreria/internal/catalog"
	"libreria/internal/config"
	"libreria/internal/export"
	"libreria/internal/googlebooks"
	"libreria/internal/persist"
	"libreria/internal/store"
)

// CLI represents the complete command structure for the libreria application
type CLI struct {
	// Global flags
	DBFile  string `help:"Path to catalog SQLite database file" default:""`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Seed   SeedCmd   `cmd:"" help:"Populate an empty catalog from Google Books"`
	List   ListCmd   `cmd:"" help:"List a catalog collection"`
	Get    GetCmd    `cmd:"" help:"Show one entity by id"`
	Add    AddCmd    `cmd:"" help:"Add an entity to the catalog"`
	Update UpdateCmd `cmd:"" help:"Update an entity by id"`
	Delete DeleteCmd `cmd:"" help:"Delete an entity by id"`
	Export ExportCmd `cmd:"" help:"Export the catalog as markdown notes"`
}

// SeedCmd populates the catalog when it is empty.
type SeedCmd struct {
	Limit int `help:"Number of books to import (defaults to seed.limit from config)"`
}

// ListCmd lists one collection.
type ListCmd struct {
	Kind string `arg:"" enum:"books,authors,categories" default:"books" help:"Collection to list"`
}

// GetCmd shows a single entity.
type GetCmd struct {
	Kind string `arg:"" enum:"book,author,category" help:"Entity kind"`
	ID   int    `arg:"" help:"Entity id"`
}

// AddCmd groups the per-kind add commands.
type AddCmd struct {
	Book     AddBookCmd     `cmd:"" help:"Add a book"`
	Author   AddAuthorCmd   `cmd:"" help:"Add an author"`
	Category AddCategoryCmd `cmd:"" help:"Add a category"`
}

// bookFlags are the book fields shared by add and update. Pointer fields
// record flag presence, so an update can set zero values (stock 0, empty
// subtitle) while absent flags leave the stored value alone.
type bookFlags struct {
	Title      *string  `help:"Book title"`
	ISBN       *string  `help:"ISBN (any format)"`
	Subtitle   *string  `help:"Subtitle"`
	Synopsis   *string  `help:"Synopsis"`
	AuthorID   *int     `help:"Author id (may dangle; not validated)"`
	CategoryID *int     `help:"Category id (may dangle; not validated)"`
	Publisher  *string  `help:"Publisher name"`
	Year       *int     `help:"Publication year"`
	Language   *string  `help:"Display language"`
	Pages      *int     `help:"Page count"`
	Format     *string  `help:"hardcover, softcover, e-book or audiobook"`
	Price      *float64 `help:"Price"`
	Stock      *int     `help:"Units in stock"`
	Cover      *string  `help:"Cover image URL"`
	Status     *string  `help:"available, out-of-stock, upcoming or discontinued"`
}

// AddBookCmd adds a book.
type AddBookCmd struct {
	bookFlags
}

// authorFlags are the author fields shared by add and update.
type authorFlags struct {
	Name        *string `help:"Author name"`
	Biography   *string `help:"Biography"`
	Nationality *string `help:"Nationality"`
	BirthDate   *string `help:"Birth date (YYYY-MM-DD)"`
	Photo       *string `help:"Photo URL"`
}

// AddAuthorCmd adds an author.
type AddAuthorCmd struct {
	authorFlags
}

// categoryFlags are the category fields shared by add and update.
type categoryFlags struct {
	Name        *string `help:"Category name"`
	Description *string `help:"Description"`
	Icon        *string `help:"Icon reference"`
	Image       *string `help:"Image URL"`
}

// AddCategoryCmd adds a category.
type AddCategoryCmd struct {
	categoryFlags
}

// UpdateCmd groups the per-kind update commands.
type UpdateCmd struct {
	Book     UpdateBookCmd     `cmd:"" help:"Update a book"`
	Author   UpdateAuthorCmd   `cmd:"" help:"Update an author"`
	Category UpdateCategoryCmd `cmd:"" help:"Update a category"`
}

// UpdateBookCmd updates a book; unset flags leave fields unchanged.
type UpdateBookCmd struct {
	ID int `arg:"" help:"Book id"`
	bookFlags
}

// UpdateAuthorCmd updates an author; unset flags leave fields unchanged.
type UpdateAuthorCmd struct {
	ID int `arg:"" help:"Author id"`
	authorFlags
}

// UpdateCategoryCmd updates a category; unset flags leave fields unchanged.
type UpdateCategoryCmd struct {
	ID int `arg:"" help:"Category id"`
	categoryFlags
}

// DeleteCmd deletes one entity.
type DeleteCmd struct {
	Kind string `arg:"" enum:"book,author,category" help:"Entity kind"`
	ID   int    `arg:"" help:"Entity id"`
}

// ExportCmd writes the catalog as markdown notes.
type ExportCmd struct {
	Output string `short:"o" help:"Output directory (defaults to markdown.outputdir from config)"`
}

// Execute runs the Kong-based CLI
func Execute() {
	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("libreria"),
		kong.Description("An embedded bookstore catalog with Google Books seeding."),
		kong.UsageOnError(),
	)

	initLogging(cli.Verbose)
	config.InitConfig()
	if cli.DBFile != "" {
		viper.Set("store.dbfile", cli.DBFile)
		config.Reload()
	}

	if err := ctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// openStore builds the store with its sqlite adapter and Google Books
// importer from the current configuration.
func openStore() (*store.Store, func(), error) {
	db, err := persist.Open(config.DBFile)
	if err != nil {
		return nil, nil, err
	}

	client := googlebooks.NewClient(googlebooks.WithAPIKey(config.APIKey()))
	importer := googlebooks.NewImporter(client, config.Subjects, config.Language)

	st, err := store.New(db, importer)
	if err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			slog.Warn("Failed to close database", "error", closeErr)
		}
		return nil, nil, err
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			slog.Warn("Failed to close database", "error", err)
		}
	}
	return st, cleanup, nil
}

// Run methods for each command

func (s *SeedCmd) Run() error {
	limit := s.Limit
	if limit <= 0 {
		limit = config.SeedLimit
	}

	st, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	snap, err := st.SeedIfEmpty(context.Background(), limit)
	if err != nil {
		return err
	}

	fmt.Printf("Catalog ready: %d books, %d authors, %d categories\n",
		len(snap.Books), len(snap.Authors), len(snap.Categories))
	return nil
}

func (l *ListCmd) Run() error {
	st, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	switch l.Kind {
	case "authors":
		fmt.Fprintln(w, "ID\tNAME\tNATIONALITY\tBORN")
		for _, a := range st.Authors() {
			born := ""
			if a.BirthDate != nil {
				born = a.BirthDate.Format("2006-01-02")
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", a.ID, a.Name, a.Nationality, born)
		}
	case "categories":
		fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
		for _, c := range st.Categories() {
			fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, c.Description)
		}
	default:
		fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tCATEGORY\tPRICE\tSTOCK\tSTATUS")
		for _, b := range st.Books() {
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%.2f\t%d\t%s\n",
				b.ID, b.Title, b.AuthorID, b.CategoryID, b.Price, b.Stock, b.Status)
		}
	}
	return nil
}

func (g *GetCmd) Run() error {
	st, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	var entity any
	switch g.Kind {
	case "book":
		entity, err = st.BookByID(g.ID)
	case "author":
		entity, err = st.AuthorByID(g.ID)
	case "category":
		entity, err = st.CategoryByID(g.ID)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%+v\n", entity)
	return nil
}

func (a *AddBookCmd) Run() error {
	if strVal(a.Title) == "" {
		return fmt.Errorf("--title is required")
	}

	st, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	book, err := st.CreateBook(a.book())
	if err != nil {
		return err
	}
	fmt.Printf("Created book %d: %s\n", book.ID, book.Title)
	return nil
}

func (a *AddAuthorCmd) Run() error {
	if strVal(a.Name) == "" {
		return fmt.Errorf("--name is required")
	}

	entity, err := a.author()
	if err != nil {
		return err
	}

	st, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	author, err := st.CreateAuthor(entity)
	if err != nil {
		return err
	}
	fmt.Printf("Created author %d: %s\n", author.ID, author.Name)
	return nil
}

func (a *AddCategoryCmd) Run() error {
	if strVal(a.Name) == "" {
		return fmt.Errorf("--name is required")
	}

	st, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	category, err := st.CreateCategory(a.category())
	if err != nil {
		return err
	}
	fmt.Printf("Created category %d: %s\n", category.ID, category.Name)
	return nil
}

func (u *UpdateBookCmd) Run() error {
	st, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	book, err := st.UpdateBook(u.ID, u.patch())
	if err != nil {
		return err
	}
	fmt.Printf("Updated book %d: %s\n", book.ID, book.Title)
	return nil
}

func (u *UpdateAuthorCmd) Run() error {
	patch, err := u.patch()
	if err != nil {
		return err
	}

	st, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	author, err := st.UpdateAuthor(u.ID, patch)
	if err != nil {
		return err
	}
	fmt.Printf("Updated author %d: %s\n", author.ID, author.Name)
	return nil
}

func (u *UpdateCategoryCmd) Run() error {
	st, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	category, err := st.UpdateCategory(u.ID, u.patch())
	if err != nil {
		return err
	}
	fmt.Printf("Updated category %d: %s\n", category.ID, category.Name)
	return nil
}

func (d *DeleteCmd) Run() error {
	st, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	switch d.Kind {
	case "book":
		err = st.DeleteBook(d.ID)
	case "author":
		err = st.DeleteAuthor(d.ID)
	case "category":
		err = st.DeleteCategory(d.ID)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Deleted %s %d\n", d.Kind, d.ID)
	return nil
}

func (e *ExportCmd) Run() error {
	output := e.Output
	if output == "" {
		output = config.MarkdownOutputDir
	}

	st, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	written, err := export.WriteCatalog(st.Snapshot(), output)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %d notes to %s\n", written, output)
	return nil
}

// flag-to-entity conversions

func (a *bookFlags) book() catalog.Book {
	return catalog.Book{
		ISBN:       strVal(a.ISBN),
		Title:      strVal(a.Title),
		Subtitle:   strVal(a.Subtitle),
		Synopsis:   strVal(a.Synopsis),
		AuthorID:   intVal(a.AuthorID),
		CategoryID: intVal(a.CategoryID),
		Publisher:  strVal(a.Publisher),
		Year:       intVal(a.Year),
		Language:   strVal(a.Language),
		PageCount:  intVal(a.Pages),
		Format:     strVal(a.Format),
		Price:      floatVal(a.Price),
		Stock:      intVal(a.Stock),
		CoverURL:   strVal(a.Cover),
		Status:     strVal(a.Status),
	}
}

func (a *bookFlags) patch() store.BookPatch {
	return store.BookPatch{
		ISBN:       a.ISBN,
		Title:      a.Title,
		Subtitle:   a.Subtitle,
		Synopsis:   a.Synopsis,
		AuthorID:   a.AuthorID,
		CategoryID: a.CategoryID,
		Publisher:  a.Publisher,
		Year:       a.Year,
		Language:   a.Language,
		PageCount:  a.Pages,
		Format:     a.Format,
		Price:      a.Price,
		Stock:      a.Stock,
		CoverURL:   a.Cover,
		Status:     a.Status,
	}
}

func (a *authorFlags) author() (catalog.Author, error) {
	author := catalog.Author{
		Name:        strVal(a.Name),
		Biography:   strVal(a.Biography),
		Nationality: strVal(a.Nationality),
		PhotoURL:    strVal(a.Photo),
	}
	born, err := a.birthDate()
	if err != nil {
		return catalog.Author{}, err
	}
	author.BirthDate = born
	return author, nil
}

func (a *authorFlags) patch() (store.AuthorPatch, error) {
	born, err := a.birthDate()
	if err != nil {
		return store.AuthorPatch{}, err
	}
	return store.AuthorPatch{
		Name:        a.Name,
		Biography:   a.Biography,
		Nationality: a.Nationality,
		BirthDate:   born,
		PhotoURL:    a.Photo,
	}, nil
}

func (a *authorFlags) birthDate() (*time.Time, error) {
	if a.BirthDate == nil || *a.BirthDate == "" {
		return nil, nil
	}
	born, err := time.Parse("2006-01-02", *a.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("invalid birth date %q: %w", *a.BirthDate, err)
	}
	return &born, nil
}

func (a *categoryFlags) category() catalog.Category {
	return catalog.Category{
		Name:        strVal(a.Name),
		Description: strVal(a.Description),
		Icon:        strVal(a.Icon),
		ImageURL:    strVal(a.Image),
	}
}

func (a *categoryFlags) patch() store.CategoryPatch {
	return store.CategoryPatch{
		Name:        a.Name,
		Description: a.Description,
		Icon:        a.Icon,
		ImageURL:    a.Image,
	}
}

func strVal(p *string) string {
	if p != nil {
		return *p
	}
	return ""
}

func intVal(p *int) int {
	if p != nil {
		return *p
	}
	return 0
}

func floatVal(p *float64) float64 {
	if p != nil {
		return *p
	}
	return 0
}
