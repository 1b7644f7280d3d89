package product

// Product is a shopping list entry as it is persisted.
type Product struct {
	ID       int64
	ListID   int64
	Name     string
	Quantity int64
	Price    *float64
	Store    string
	Category string
	Notes    string
	Checked  bool
}

// Item is the transfer form of a Product exchanged with callers.
// Price and Quantity are kept as text; an empty Price means the price is unknown
// and an empty Quantity means DefaultQuantity.
type Item struct {
	ID                  string `json:"id"`
	ListID              string `json:"list_id"`
	Name                string `json:"name"`
	Quantity            string `json:"quantity"`
	Price               string `json:"price"`
	Store               string `json:"store"`
	Category            string `json:"category"`
	Notes               string `json:"notes"`
	Checked             bool   `json:"checked"`
	SelectedForDeletion bool   `json:"selected_for_deletion"`
}

const DefaultQuantity int64 = 1

// Total is computed over a set of items and never persisted.
type Total struct {
	Count         int    `json:"count"`
	Amount        string `json:"amount"`
	CheckedAmount string `json:"checked_amount"`
	EqualsZero    bool   `json:"equals_zero"`
}
