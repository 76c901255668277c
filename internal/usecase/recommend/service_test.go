package recommend

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/neusearch/neusearch/internal/domain"
	"github.com/neusearch/neusearch/internal/domain/product"
	"github.com/neusearch/neusearch/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterPipelineMetrics()
	os.Exit(m.Run())
}

// --- Mocks ---

type mockCatalog struct {
	products []product.Product
	err      error
	calls    int
	lastK    int
}

func (m *mockCatalog) SearchNearest(_ context.Context, _ []float32, k int) ([]product.Product, error) {
	m.calls++
	m.lastK = k
	return m.products, m.err
}

type mockEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

type mockGenerator struct {
	reply      string
	err        error
	calls      int
	lastPrompt string
}

func (m *mockGenerator) Generate(_ context.Context, prompt string) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func testProducts(t *testing.T, titles ...string) []product.Product {
	t.Helper()
	products := make([]product.Product, 0, len(titles))
	for i, title := range titles {
		p, err := product.New(product.Fields{
			Title:       title,
			Price:       "₹ 499",
			Description: "Ayurvedic supplement for daily wellness.",
		}, []float32{0.1, 0.2, 0.3})
		if err != nil {
			t.Fatalf("product.New: %v", err)
		}
		products = append(products, p.WithID(int64(i+1)))
	}
	return products
}

// --- Tests ---

func TestChat_GreetingSkipsProviders(t *testing.T) {
	catalog := &mockCatalog{}
	embed := &mockEmbedder{vec: []float32{0.1}}
	gen := &mockGenerator{reply: "hi"}
	svc := New(catalog, embed, gen, 4)

	for _, query := range []string{"hi", " Hello ", "HEY", "good morning"} {
		reply, err := svc.Chat(context.Background(), query)
		if err != nil {
			t.Fatalf("Chat(%q): %v", query, err)
		}
		if reply.Response != greetingReply {
			t.Errorf("Chat(%q) = %q, want greeting", query, reply.Response)
		}
		if len(reply.Products) != 0 {
			t.Errorf("Chat(%q) returned %d products, want 0", query, len(reply.Products))
		}
	}

	if embed.calls != 0 || catalog.calls != 0 || gen.calls != 0 {
		t.Errorf("providers called for conversational queries: embed=%d catalog=%d gen=%d",
			embed.calls, catalog.calls, gen.calls)
	}
}

func TestChat_FarewellAndThanks(t *testing.T) {
	svc := New(&mockCatalog{}, &mockEmbedder{}, &mockGenerator{}, 4)

	reply, err := svc.Chat(context.Background(), "bye")
	if err != nil {
		t.Fatalf("Chat(bye): %v", err)
	}
	if reply.Response != farewellReply {
		t.Errorf("Chat(bye) = %q, want farewell", reply.Response)
	}

	reply, err = svc.Chat(context.Background(), "thank you")
	if err != nil {
		t.Fatalf("Chat(thank you): %v", err)
	}
	if reply.Response != thanksReply {
		t.Errorf("Chat(thank you) = %q, want thanks", reply.Response)
	}
}

func TestChat_RecommendsRetrievedProducts(t *testing.T) {
	products := testProducts(t, "Hair Ras", "Sleep Ras")
	catalog := &mockCatalog{products: products}
	embed := &mockEmbedder{vec: []float32{0.1, 0.2, 0.3}}
	gen := &mockGenerator{reply: "Both of these help with hair fall."}
	svc := New(catalog, embed, gen, 4)

	reply, err := svc.Chat(context.Background(), "I have hair fall")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}

	if embed.calls != 1 {
		t.Errorf("expected exactly 1 embed call, got %d", embed.calls)
	}
	if catalog.lastK != 4 {
		t.Errorf("expected k=4, got %d", catalog.lastK)
	}
	if gen.calls != 1 {
		t.Errorf("expected exactly 1 generate call, got %d", gen.calls)
	}
	if reply.Response != "Both of these help with hair fall." {
		t.Errorf("unexpected response %q", reply.Response)
	}
	if len(reply.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(reply.Products))
	}
	if reply.Products[0].Title() != "Hair Ras" {
		t.Errorf("retrieval order not preserved: first product %q", reply.Products[0].Title())
	}
}

func TestChat_ClarifyDropsProducts(t *testing.T) {
	catalog := &mockCatalog{products: testProducts(t, "Hair Ras")}
	svc := New(catalog, &mockEmbedder{vec: []float32{0.1}}, &mockGenerator{
		reply: "[CLARIFY] Could you tell me more about your hair type?",
	}, 4)

	reply, err := svc.Chat(context.Background(), "hair")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply.Response != "Could you tell me more about your hair type?" {
		t.Errorf("sentinel not stripped: %q", reply.Response)
	}
	if len(reply.Products) != 0 {
		t.Errorf("clarify reply must carry no products, got %d", len(reply.Products))
	}
}

func TestChat_EmbeddingErrorSurfaces(t *testing.T) {
	embed := &mockEmbedder{err: domain.ErrEmbeddingProvider}
	catalog := &mockCatalog{}
	gen := &mockGenerator{}
	svc := New(catalog, embed, gen, 4)

	_, err := svc.Chat(context.Background(), "shampoo for dry scalp")
	if !errors.Is(err, domain.ErrEmbeddingProvider) {
		t.Fatalf("expected ErrEmbeddingProvider, got %v", err)
	}
	if catalog.calls != 0 || gen.calls != 0 {
		t.Error("pipeline must stop after embedding failure")
	}
}

func TestChat_GenerationFailureKeepsProducts(t *testing.T) {
	products := testProducts(t, "Hair Ras")
	svc := New(&mockCatalog{products: products}, &mockEmbedder{vec: []float32{0.1}}, &mockGenerator{
		err: domain.ErrGenerationProvider,
	}, 4)

	reply, err := svc.Chat(context.Background(), "hair fall remedy")
	if err != nil {
		t.Fatalf("generation failure must not surface as error, got %v", err)
	}
	if reply.Response != fallbackReply {
		t.Errorf("expected fallback reply, got %q", reply.Response)
	}
	if len(reply.Products) != 1 {
		t.Errorf("fallback must keep retrieved products, got %d", len(reply.Products))
	}
}

func TestChat_EmptyCatalogShortCircuitsGenerator(t *testing.T) {
	gen := &mockGenerator{}
	svc := New(&mockCatalog{}, &mockEmbedder{vec: []float32{0.1}}, gen, 4)

	reply, err := svc.Chat(context.Background(), "protein powder")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply.Response != noMatchReply {
		t.Errorf("expected no-match reply, got %q", reply.Response)
	}
	if len(reply.Products) != 0 {
		t.Errorf("expected no products, got %d", len(reply.Products))
	}
	if gen.calls != 0 {
		t.Error("generator must not run on an empty catalog")
	}
}

func TestChat_PromptCarriesQueryAndProducts(t *testing.T) {
	products := testProducts(t, "Hair Ras", "Sleep Ras")
	gen := &mockGenerator{reply: "ok"}
	svc := New(&mockCatalog{products: products}, &mockEmbedder{vec: []float32{0.1}}, gen, 4)

	if _, err := svc.Chat(context.Background(), "help me sleep"); err != nil {
		t.Fatalf("Chat: %v", err)
	}

	if !strings.Contains(gen.lastPrompt, "User Query: help me sleep") {
		t.Error("prompt missing user query")
	}
	if !strings.Contains(gen.lastPrompt, "1. Hair Ras") || !strings.Contains(gen.lastPrompt, "2. Sleep Ras") {
		t.Errorf("prompt missing numbered products:\n%s", gen.lastPrompt)
	}
}
