package core

import (
	"testing"

	"github.com/quickmart/support-bot/internal/store"
)

func indexFromDescriptions(descs ...string) *RAGService {
	dataset := &store.Dataset{}
	for i, desc := range descs {
		dataset.Offers = append(dataset.Offers, store.Offer{
			OfferID:     string(rune('A' + i)),
			Description: desc,
			StoreID:     store.WildcardStoreID,
		})
	}
	return NewRAGService(dataset)
}

func TestQueryScoreCountsDistinctWords(t *testing.T) {
	rag := indexFromDescriptions("fresh hot latte every morning")

	results := rag.Query("hot latte", 3)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	// Both query words are present, so the doc must also beat a one-word match.
	rag = indexFromDescriptions("only latte here", "fresh hot latte every morning")
	results = rag.Query("hot latte", 3)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Text != "fresh hot latte every morning" {
		t.Errorf("expected the two-word match first, got %q", results[0].Text)
	}
}

func TestQueryIsCaseInsensitive(t *testing.T) {
	rag := indexFromDescriptions("Fresh Hot LATTE")
	if results := rag.Query("latte", 3); len(results) != 1 {
		t.Fatalf("expected case-insensitive match, got %d results", len(results))
	}
}

func TestQueryMatchesSubstrings(t *testing.T) {
	// A query word inside a longer document word still counts.
	rag := indexFromDescriptions("10% off on all Lattes today")
	if results := rag.Query("latte", 3); len(results) != 1 {
		t.Fatalf("expected substring match, got %d results", len(results))
	}
}

func TestQueryDuplicateWordsCollapse(t *testing.T) {
	rag := indexFromDescriptions("one latte", "latte and cocoa and more")
	// Repeating "latte" must not boost either doc; both score 1 and keep
	// insertion order.
	results := rag.Query("latte latte latte", 3)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Text != "one latte" {
		t.Errorf("expected insertion order on equal scores, got %q first", results[0].Text)
	}
}

func TestQueryExcludesZeroScores(t *testing.T) {
	rag := indexFromDescriptions("nothing relevant here", "free cocoa today")
	results := rag.Query("cocoa", 3)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Text != "free cocoa today" {
		t.Errorf("unexpected result %q", results[0].Text)
	}
}

func TestQueryTruncatesToTopK(t *testing.T) {
	rag := indexFromDescriptions("latte one", "latte two", "latte three", "latte four")
	if results := rag.Query("latte", 3); len(results) != 3 {
		t.Errorf("expected top-3 truncation, got %d results", len(results))
	}
	if results := rag.Query("latte", 0); len(results) != 0 {
		t.Errorf("expected empty result for K=0, got %d", len(results))
	}
}

func TestQueryEmptyInputs(t *testing.T) {
	rag := indexFromDescriptions("free cocoa today")
	if results := rag.Query("", 3); len(results) != 0 {
		t.Errorf("expected empty result for empty query, got %d", len(results))
	}
	empty := NewRAGService(&store.Dataset{})
	if results := empty.Query("cocoa", 3); len(results) != 0 {
		t.Errorf("expected empty result for empty index, got %d", len(results))
	}
}

func TestQueryStableTieOrder(t *testing.T) {
	rag := indexFromDescriptions("cocoa a", "cocoa b", "cocoa c")
	results := rag.Query("cocoa", 3)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, want := range []string{"cocoa a", "cocoa b", "cocoa c"} {
		if results[i].Text != want {
			t.Errorf("position %d: expected %q, got %q", i, want, results[i].Text)
		}
	}
}
