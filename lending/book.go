package lending

// Book is a title held by the library.
// Available is false while the book has an open Loan; only the Ledger should flip it.
type Book struct {
	Title     string
	Author    string
	ISBN      ISBNString
	Available bool
}

// BuildBook creates a new Book which is available for lending.
func BuildBook(title string, author string, isbn ISBNString) *Book {
	return &Book{
		Title:     title,
		Author:    author,
		ISBN:      isbn,
		Available: true,
	}
}
