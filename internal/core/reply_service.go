package core

import (
	"fmt"
	"strings"

	"github.com/quickmart/support-bot/internal/store"
)

// ComposeReply builds the reply text from the resolved context. It is a
// pure function of its inputs: no randomness, no clock, no external calls.
// Paragraphs are emitted in a fixed order, empty ones are dropped, and the
// rest are joined with blank lines.
func ComposeReply(userMessage string, customer *store.Customer, selected *store.ResolvedStore, offers []Document, items []store.InventoryItem) string {
	name := "there"
	favoriteDrink := ""
	if customer != nil {
		if customer.Name != "" {
			name = customer.Name
		}
		favoriteDrink = customer.FavoriteDrink
	}

	greeting := fmt.Sprintf("Hi %s! 👋", name)

	parts := []string{
		greeting,
		suggestionFor(userMessage, favoriteDrink),
		storeParagraph(selected),
		offersParagraph(offers),
		inventoryParagraph(items),
	}

	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}

// suggestionFor picks a suggestion by keyword triggers on the lowercased
// message. First match wins; no trigger means no suggestion paragraph.
func suggestionFor(userMessage, favoriteDrink string) string {
	msg := strings.ToLower(userMessage)
	switch {
	case strings.Contains(msg, "cold") && favoriteDrink != "":
		return fmt.Sprintf("Since you're feeling cold and you often enjoy %s, you could come inside and warm up with one!", favoriteDrink)
	case strings.Contains(msg, "cold"):
		return "Since you're feeling cold, you might like a hot drink like Hot Cocoa or a Latte."
	case strings.Contains(msg, "offer") || strings.Contains(msg, "coupon"):
		return "Here are the offers I can see for you right now."
	case strings.Contains(msg, "open") || strings.Contains(msg, "timing"):
		return "Let me tell you about the nearest store and its timings."
	}
	return ""
}

func storeParagraph(selected *store.ResolvedStore) string {
	if selected == nil {
		return "I couldn't find a nearby store."
	}
	distanceText := "nearby"
	if selected.DistanceM != nil {
		distanceText = fmt.Sprintf("%dm", int(*selected.DistanceM))
	}
	status := "CLOSED"
	if selected.IsOpen {
		status = "OPEN"
	}
	return fmt.Sprintf("The nearest store is %s about %s away. It is currently %s.", selected.Name, distanceText, status)
}

func offersParagraph(offers []Document) string {
	if len(offers) == 0 {
		return "There are no special offers I can find right now."
	}
	lines := make([]string, 0, len(offers))
	for _, doc := range offers {
		lines = append(lines, "- "+doc.Text)
	}
	return "Here are some offers for you:\n" + strings.Join(lines, "\n")
}

func inventoryParagraph(items []store.InventoryItem) string {
	if len(items) == 0 {
		return "" // omitted entirely, not even a placeholder
	}
	descs := make([]string, 0, len(items))
	for _, item := range items {
		descs = append(descs, fmt.Sprintf("%s (%s)", item.Product, item.Size))
	}
	return "We have these relevant items in stock: " + strings.Join(descs, ", ") + "."
}
