package domain

// Category represents a shop category. The shop listing filters products
// by the category Name, so the label is what clients send back.
type Category struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Description      *string `json:"description,omitempty"`        // Pointer for nullable fields, omitempty to exclude if nil
	ParentCategoryID *int64  `json:"parent_category_id,omitempty"` // Pointer for nullable fields
}

// Product represents a shop item as it appears in a listing snapshot.
type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	Price         float64 `json:"price"`
	StockQuantity int32   `json:"stock_quantity"`
	Category      string  `json:"category"` // Category label joined from products.categories, empty if uncategorised
	Brand         string  `json:"brand"`
	ImageURL      *string `json:"image_url,omitempty"` // Absolute URL or an object key in the image bucket
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.StockQuantity > 0
}
