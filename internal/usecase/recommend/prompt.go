package recommend

import (
	"fmt"
	"strings"

	"github.com/neusearch/neusearch/internal/domain/product"
)

// clarifySentinel marks a reply that asks for clarification instead of
// recommending. The model is instructed to prefix such replies with it,
// but detection is permissive: any occurrence counts.
const clarifySentinel = "[CLARIFY]"

// contextDescriptionLimit caps per-product description length inside
// the prompt, to keep prompts small.
const contextDescriptionLimit = 300

const systemInstruction = `You are a helpful shopping assistant for Neusearch.

INSTRUCTIONS:
1. Analyze the User Query and the Available Products.
2. If the user's query is specific (e.g., "dandruff", "sleep"), recommend the TOP 4 matching products from the list.
3. Briefly explain WHY each of the 4 products is a good fit.
4. CRITICAL: If the query is too vague (e.g., just "hair", "best product", "help"), DO NOT recommend random items. Instead, ask a polite CLARIFYING QUESTION.
5. SIGNAL: If you are asking a clarifying question, start your response with the tag "[CLARIFY]".`

// buildPrompt assembles the generation prompt from the user query and
// the retrieved candidate products, numbered in retrieval order.
func buildPrompt(query string, products []product.Product) string {
	var context strings.Builder
	for i, p := range products {
		desc := product.TruncateRunes(p.Description(), contextDescriptionLimit)
		fmt.Fprintf(&context, "%d. %s - %s\n   Description: %s...\n\n", i+1, p.Title(), p.Price(), desc)
	}

	return fmt.Sprintf("%s\n\nUser Query: %s\n\nAvailable Products:\n%s", systemInstruction, query, context.String())
}

// parseReply detects and strips the clarify sentinel. The cleaned reply
// has every sentinel occurrence removed and surrounding space trimmed.
func parseReply(raw string) (reply string, clarify bool) {
	if !strings.Contains(raw, clarifySentinel) {
		return strings.TrimSpace(raw), false
	}
	return strings.TrimSpace(strings.ReplaceAll(raw, clarifySentinel, "")), true
}
