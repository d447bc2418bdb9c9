package lending

// Catalog holds the books and patrons known to the library.
//
// Identifiers are not checked for uniqueness on insertion; lookups return the first match.
// A Catalog is not safe for concurrent use.
type Catalog struct {
	books   []*Book
	patrons []*Patron
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		books:   make([]*Book, 0),
		patrons: make([]*Patron, 0),
	}
}

// AddBook appends the book to the catalog. Nil books are ignored.
func (c *Catalog) AddBook(book *Book) {
	if book == nil {
		return
	}

	c.books = append(c.books, book)
}

// AddPatron appends the patron to the catalog. Nil patrons are ignored.
func (c *Catalog) AddPatron(patron *Patron) {
	if patron == nil {
		return
	}

	c.patrons = append(c.patrons, patron)
}

// FindBookByISBN returns the first book with the given ISBN.
func (c *Catalog) FindBookByISBN(isbn ISBNString) (*Book, bool) {
	for _, book := range c.books {
		if book.ISBN == isbn {
			return book, true
		}
	}

	return nil, false
}

// FindPatronByID returns the first patron with the given ID.
func (c *Catalog) FindPatronByID(id PatronIDInt) (*Patron, bool) {
	for _, patron := range c.patrons {
		if patron.ID == id {
			return patron, true
		}
	}

	return nil, false
}

// Books returns the live collection of books, not a copy.
func (c *Catalog) Books() []*Book {
	return c.books
}

// Patrons returns the live collection of patrons, not a copy.
func (c *Catalog) Patrons() []*Patron {
	return c.patrons
}
