package lending

// Patron is a registered borrower.
type Patron struct {
	Name string
	ID   PatronIDInt
}

// BuildPatron creates a new Patron.
func BuildPatron(name string, id PatronIDInt) *Patron {
	return &Patron{
		Name: name,
		ID:   id,
	}
}
