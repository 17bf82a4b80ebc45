package domain

// Hotel identity is the trimmed, case-insensitive name: two differently-cased
// names collapse to one row.
type Hotel struct {
	ID       int64
	Name     string
	Location string
	ChainID  int64
}

type Chain struct {
	ID   int64
	Name string
}
