package shoppinglist

type List struct {
	ID    int64
	Name  string
	Notes string
}
