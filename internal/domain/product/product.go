package product

import (
	"fmt"
	"unicode/utf8"

	"github.com/neusearch/neusearch/internal/domain"
)

// MaxDescriptionSize bounds the stored description length in runes.
const MaxDescriptionSize = 1000

// Product is the catalog product aggregate (immutable value object).
// The embedding never leaves the process: serialization goes through View.
type Product struct {
	id          int64
	title       string
	price       string
	description string
	features    string
	imageURL    string
	category    string
	productURL  string
	embedding   []float32
}

// Fields carries the public attributes used to build or hydrate a Product.
type Fields struct {
	Title       string
	Price       string
	Description string
	Features    string
	ImageURL    string
	Category    string
	ProductURL  string
}

// New validates and creates a Product ready for insertion.
// The id is zero until the store assigns one. Descriptions longer than
// MaxDescriptionSize are truncated, matching ingestion behavior.
func New(f Fields, embedding []float32) (Product, error) {
	if f.Title == "" {
		return Product{}, fmt.Errorf("%w: title is required", domain.ErrInvalidProduct)
	}
	if len(embedding) == 0 {
		return Product{}, fmt.Errorf("%w: embedding is required", domain.ErrInvalidProduct)
	}
	f.Description = TruncateRunes(f.Description, MaxDescriptionSize)

	return Product{
		title:       f.Title,
		price:       f.Price,
		description: f.Description,
		features:    f.Features,
		imageURL:    f.ImageURL,
		category:    f.Category,
		productURL:  f.ProductURL,
		embedding:   embedding,
	}, nil
}

// Reconstruct creates a Product without validation (storage hydration).
func Reconstruct(id int64, f Fields, embedding []float32) Product {
	return Product{
		id:          id,
		title:       f.Title,
		price:       f.Price,
		description: f.Description,
		features:    f.Features,
		imageURL:    f.ImageURL,
		category:    f.Category,
		productURL:  f.ProductURL,
		embedding:   embedding,
	}
}

// WithID returns a copy with the store-assigned identifier set.
func (p Product) WithID(id int64) Product {
	p.id = id
	return p
}

// ID returns the store-assigned identifier.
func (p Product) ID() int64 { return p.id }

// Title returns the product title.
func (p Product) Title() string { return p.title }

// Price returns the display price text.
func (p Product) Price() string { return p.price }

// Description returns the product description.
func (p Product) Description() string { return p.description }

// Features returns the free-text feature tag.
func (p Product) Features() string { return p.features }

// ImageURL returns the product image URL.
func (p Product) ImageURL() string { return p.imageURL }

// Category returns the product category.
func (p Product) Category() string { return p.category }

// ProductURL returns the product page URL.
func (p Product) ProductURL() string { return p.productURL }

// Embedding returns the embedding vector.
func (p Product) Embedding() []float32 { return p.embedding }

// View is the public projection of a Product. It deliberately has no
// embedding field, so no API response can ever leak the vector.
type View struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Features    string `json:"features"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
	ProductURL  string `json:"product_url"`
}

// View returns the serializable projection without the embedding.
func (p Product) View() View {
	return View{
		ID:          p.id,
		Title:       p.title,
		Price:       p.price,
		Description: p.description,
		Features:    p.features,
		ImageURL:    p.imageURL,
		Category:    p.category,
		ProductURL:  p.productURL,
	}
}

// Views maps a product slice to its public projections.
func Views(products []Product) []View {
	views := make([]View, len(products))
	for i, p := range products {
		views[i] = p.View()
	}
	return views
}

// TruncateRunes cuts s to at most n runes. Truncation never splits a
// multibyte rune, so the result is always valid UTF-8.
func TruncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
