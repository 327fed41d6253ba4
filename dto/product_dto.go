package dto

// CategoryRef points at a Section or Type either by identifier (lookup
// only, fails if absent) or by name (get-or-create).
type CategoryRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type CreateProductDTO struct {
	Title    string       `json:"title"`
	Price    float64      `json:"price"`
	Category string       `json:"category"`
	Rating   float64      `json:"rating"`
	SellerID string       `json:"sellerId"`
	Stock    int          `json:"stock"`
	Images   []string     `json:"images"`
	Section  *CategoryRef `json:"section"`
	Types    *CategoryRef `json:"types"`
}

// UpdateProductDTO — all fields are optional pointers; anything left
// nil is untouched. Unknown fields are rejected at decode time.
type UpdateProductDTO struct {
	Title    *string      `json:"title,omitempty"`
	Price    *float64     `json:"price,omitempty"`
	Category *string      `json:"category,omitempty"`
	Rating   *float64     `json:"rating,omitempty"`
	SellerID *string      `json:"sellerId,omitempty"`
	Stock    *int         `json:"stock,omitempty"`
	Images   *[]string    `json:"images,omitempty"`
	Section  *CategoryRef `json:"section,omitempty"`
	Types    *CategoryRef `json:"types,omitempty"`
}

func (d UpdateProductDTO) Empty() bool {
	return d.Title == nil && d.Price == nil && d.Category == nil &&
		d.Rating == nil && d.SellerID == nil && d.Stock == nil &&
		d.Images == nil && d.Section == nil && d.Types == nil
}
