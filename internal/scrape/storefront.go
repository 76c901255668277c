// Package scrape discovers products on a storefront collection page and
// resolves their detail descriptions.
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/neusearch/neusearch/internal/usecase/ingest"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Selectors cover the common storefront themes: card containers on the
// listing page, then title/price/link/image inside each card.
const (
	cardSelector  = ".product-card, .product-item, .grid__item"
	priceSelector = ".price, .money, .price-item--sale"
	descSelector  = ".product-description, div[itemprop=description]"
)

// Storefront scrapes a shop collection page for product candidates.
type Storefront struct {
	listingURL string
	origin     string
	client     *http.Client
}

// New creates a Storefront for the given collection listing URL.
func New(listingURL string) (*Storefront, error) {
	u, err := url.Parse(listingURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid listing url %q", listingURL)
	}
	return &Storefront{
		listingURL: listingURL,
		origin:     u.Scheme + "://" + u.Host,
		client:     &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Discover fetches the listing page and extracts product candidates in
// page order. Cards without a title or link are dropped; overlapping
// card selectors can match the same product twice, so titles are
// deduplicated within a page.
func (s *Storefront) Discover(ctx context.Context) ([]ingest.Candidate, error) {
	doc, err := s.fetch(ctx, s.listingURL)
	if err != nil {
		return nil, fmt.Errorf("fetch listing: %w", err)
	}

	seen := make(map[string]bool)
	var candidates []ingest.Candidate
	doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		title := cardTitle(card)
		link, _ := card.Find("a").First().Attr("href")
		if title == "" || link == "" || seen[title] {
			return
		}
		seen[title] = true

		candidates = append(candidates, ingest.Candidate{
			Title:      title,
			RawPrice:   strings.TrimSpace(card.Find(priceSelector).First().Text()),
			ProductURL: s.absoluteURL(link),
			ImageURL:   cardImage(card),
		})
	})
	return candidates, nil
}

// Describe fetches the candidate's detail page and returns its
// description text, or empty when the page carries none.
func (s *Storefront) Describe(ctx context.Context, c ingest.Candidate) (string, error) {
	doc, err := s.fetch(ctx, c.ProductURL)
	if err != nil {
		return "", fmt.Errorf("fetch detail page: %w", err)
	}
	return strings.TrimSpace(doc.Find(descSelector).First().Text()), nil
}

func (s *Storefront) fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, pageURL)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

func cardTitle(card *goquery.Selection) string {
	title := strings.TrimSpace(card.Find("h3").First().Text())
	if title == "" {
		title = strings.TrimSpace(card.Find(".product-title").First().Text())
	}
	return title
}

func cardImage(card *goquery.Selection) string {
	img := card.Find("img").First()
	src, ok := img.Attr("src")
	if !ok || src == "" {
		src, _ = img.Attr("data-src")
	}
	if strings.HasPrefix(src, "//") {
		return "https:" + src
	}
	return src
}

func (s *Storefront) absoluteURL(link string) string {
	if strings.HasPrefix(link, "/") {
		return s.origin + link
	}
	return link
}
