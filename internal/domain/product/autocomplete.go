package product

// AutoCompleteLists accumulates previously seen field values used to suggest
// completions for new entries. Values keep the order they were first seen in.
type AutoCompleteLists struct {
	Names      []string `json:"names"`
	Stores     []string `json:"stores"`
	Categories []string `json:"categories"`

	seen map[string]struct{}
}

func NewAutoCompleteLists() *AutoCompleteLists {
	return &AutoCompleteLists{
		Names:      []string{},
		Stores:     []string{},
		Categories: []string{},
	}
}

// Update folds the item's name, store and category into the lists.
func (l *AutoCompleteLists) Update(item Item) {
	if l.seen == nil {
		l.reindex()
	}
	l.Names = l.add("name", l.Names, item.Name)
	l.Stores = l.add("store", l.Stores, item.Store)
	l.Categories = l.add("category", l.Categories, item.Category)
}

func (l *AutoCompleteLists) add(field string, values []string, v string) []string {
	if v == "" {
		return values
	}
	key := field + "\x00" + v
	if _, ok := l.seen[key]; ok {
		return values
	}
	l.seen[key] = struct{}{}
	return append(values, v)
}

// reindex rebuilds the lookup set, e.g. after the lists were decoded from JSON.
func (l *AutoCompleteLists) reindex() {
	l.seen = make(map[string]struct{}, len(l.Names)+len(l.Stores)+len(l.Categories))
	for _, v := range l.Names {
		l.seen["name\x00"+v] = struct{}{}
	}
	for _, v := range l.Stores {
		l.seen["store\x00"+v] = struct{}{}
	}
	for _, v := range l.Categories {
		l.seen["category\x00"+v] = struct{}{}
	}
}
