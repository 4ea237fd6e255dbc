package domain

// Product represents a catalog product as served by the remote API.
// Immutable once fetched except through an update mutation.
type Product struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

// CreateProduct is the input to product creation: a Product minus the
// server-assigned id.
type CreateProduct struct {
	Title       string  `json:"title" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description" validate:"required"`
	Image       string  `json:"image" validate:"required,url"`
	Category    string  `json:"category" validate:"required"`
}

// AsProduct returns the payload as a Product with the given id.
func (c CreateProduct) AsProduct(id int64) Product {
	return Product{
		ID:          id,
		Title:       c.Title,
		Price:       c.Price,
		Description: c.Description,
		Image:       c.Image,
		Category:    c.Category,
	}
}
