package catalog

import (
	"encoding/binary"
	"math"

	"github.com/neusearch/neusearch/internal/domain/product"
)

// buildHashFields flattens a product into hash fields for HSET.
// The embedding is stored as binary float32 little-endian, matching the
// FT.SEARCH VECTOR field format.
func buildHashFields(p product.Product) map[string]string {
	return map[string]string{
		"title":       p.Title(),
		"price":       p.Price(),
		"description": p.Description(),
		"features":    p.Features(),
		"image_url":   p.ImageURL(),
		"category":    p.Category(),
		"product_url": p.ProductURL(),
		"embedding":   vectorToBytes(p.Embedding()),
	}
}

// parseHashFields hydrates a product from stored hash fields.
func parseHashFields(id int64, m map[string]string) product.Product {
	return product.Reconstruct(id, product.Fields{
		Title:       m["title"],
		Price:       m["price"],
		Description: m["description"],
		Features:    m["features"],
		ImageURL:    m["image_url"],
		Category:    m["category"],
		ProductURL:  m["product_url"],
	}, bytesToVector(m["embedding"]))
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
