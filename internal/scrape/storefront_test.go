package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/neusearch/neusearch/internal/usecase/ingest"
)

const listingHTML = `<!doctype html>
<html><body>
<div class="collection">
  <div class="product-card">
    <h3>Hair Ras</h3>
    <span class="price">Sale price ₹ 1,118</span>
    <a href="/products/hair-ras">view</a>
    <img src="//cdn.example.com/hair-ras.jpg">
  </div>
  <div class="grid__item">
    <div class="product-title">Health Tatva</div>
    <span class="money">₹649</span>
    <a href="https://shop.example.com/products/tatva">view</a>
    <img data-src="https://cdn.example.com/tatva.jpg">
  </div>
  <div class="product-item">
    <h3>Hair Ras</h3>
    <a href="/products/hair-ras">duplicate card</a>
  </div>
  <div class="product-card">
    <span class="price">₹ 99</span>
    <a href="/products/untitled">no title, dropped</a>
  </div>
</div>
</body></html>`

const detailHTML = `<!doctype html>
<html><body>
<div class="product-description">
  Ayurvedic tablets that nourish hair follicles.
</div>
</body></html>`

func TestDiscover(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != userAgent {
			t.Errorf("unexpected User-Agent %q", ua)
		}
		fmt.Fprint(w, listingHTML)
	}))
	defer server.Close()

	sf, err := New(server.URL + "/collections/all-products")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	candidates, err := sf.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(candidates), candidates)
	}

	first := candidates[0]
	if first.Title != "Hair Ras" {
		t.Errorf("title = %q", first.Title)
	}
	if first.RawPrice != "Sale price ₹ 1,118" {
		t.Errorf("raw price = %q", first.RawPrice)
	}
	if first.ProductURL != server.URL+"/products/hair-ras" {
		t.Errorf("relative link not resolved: %q", first.ProductURL)
	}
	if first.ImageURL != "https://cdn.example.com/hair-ras.jpg" {
		t.Errorf("protocol-relative image not fixed: %q", first.ImageURL)
	}

	second := candidates[1]
	if second.Title != "Health Tatva" {
		t.Errorf("fallback title selector failed: %q", second.Title)
	}
	if second.ProductURL != "https://shop.example.com/products/tatva" {
		t.Errorf("absolute link rewritten: %q", second.ProductURL)
	}
	if second.ImageURL != "https://cdn.example.com/tatva.jpg" {
		t.Errorf("data-src fallback failed: %q", second.ImageURL)
	}
}

func TestDescribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, detailHTML)
	}))
	defer server.Close()

	sf, err := New(server.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	desc, err := sf.Describe(context.Background(), ingest.Candidate{ProductURL: server.URL + "/products/hair-ras"})
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if desc != "Ayurvedic tablets that nourish hair follicles." {
		t.Errorf("description = %q", desc)
	}
}

func TestDescribe_NoDescription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html><body><h1>Hair Ras</h1></body></html>")
	}))
	defer server.Close()

	sf, _ := New(server.URL)
	desc, err := sf.Describe(context.Background(), ingest.Candidate{ProductURL: server.URL + "/p"})
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if desc != "" {
		t.Errorf("expected empty description, got %q", desc)
	}
}

func TestNew_RejectsInvalidURL(t *testing.T) {
	if _, err := New("not-a-url"); err == nil {
		t.Fatal("expected error for invalid url")
	}
}
