package core

// Catalog returns the fixed category catalog. Transactions carry the
// category name as a free-form label; nothing enforces membership here,
// the catalog only feeds the entry forms.
func Catalog() []Category {
	return []Category{
		{ID: "food", Name: "食", Direction: Expense},
		{ID: "housing", Name: "住居", Direction: Expense},
		{ID: "transport", Name: "交通", Direction: Expense},
		{ID: "daily", Name: "日用品", Direction: Expense},
		{ID: "leisure", Name: "娯楽", Direction: Expense},
		{ID: "medical", Name: "医療", Direction: Expense},
		{ID: "other-expense", Name: "その他支出", Direction: Expense},
		{ID: "salary", Name: "給料", Direction: Income},
		{ID: "bonus", Name: "賞与", Direction: Income},
		{ID: "other-income", Name: "その他収入", Direction: Income},
	}
}

// CatalogByDirection filters the catalog for entry forms.
func CatalogByDirection(d Direction) []Category {
	var out []Category
	for _, c := range Catalog() {
		if c.Direction == d {
			out = append(out, c)
		}
	}
	return out
}
