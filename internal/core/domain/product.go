package domain

// Categories is the closed set of product categories, in display order.
var Categories = []string{"Makanan", "Minuman", "Rokok", "Sembako", "Lainnya"}

const (
	DefaultCategory  = "Lainnya"
	PlaceholderImage = "https://via.placeholder.com/150"
)

// Product price is in whole rupiah; the currency has no subunits.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Category string `json:"category"`
	Image    string `json:"image"`
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
