package core

import (
	"sort"
	"strings"

	"github.com/quickmart/support-bot/internal/store"
)

// DefaultTopK is the number of documents retrieved for a chat exchange.
const DefaultTopK = 3

type DocumentMeta struct {
	Type    string `json:"type"`
	StoreID string `json:"store_id"`
	Product string `json:"product,omitempty"`
}

// Document is an indexed piece of text with retrieval metadata.
type Document struct {
	ID   string       `json:"id"`
	Text string       `json:"text"`
	Meta DocumentMeta `json:"meta"`
}

// RAGService answers queries over an in-memory document list by keyword
// overlap. Deliberately not semantic retrieval: a query word counts when it
// appears as a substring of the lowercased document text, and downstream
// reply content depends on that permissive matching.
type RAGService struct {
	docs []Document
}

// NewRAGService indexes one document per offer row.
func NewRAGService(dataset *store.Dataset) *RAGService {
	docs := make([]Document, 0, len(dataset.Offers))
	for _, offer := range dataset.Offers {
		docs = append(docs, Document{
			ID:   "offer_" + offer.OfferID,
			Text: offer.Description,
			Meta: DocumentMeta{
				Type:    "offer",
				StoreID: offer.StoreID,
				Product: offer.Product,
			},
		})
	}
	return &RAGService{docs: docs}
}

type scoredDoc struct {
	score int
	doc   Document
}

// Query returns at most topK documents sorted by descending score. Equal
// scores keep insertion order. An empty query, empty index or topK <= 0
// yields an empty result, never an error.
func (s *RAGService) Query(query string, topK int) []Document {
	if topK <= 0 || len(s.docs) == 0 {
		return nil
	}
	words := queryWords(query)
	if len(words) == 0 {
		return nil
	}

	var scored []scoredDoc
	for _, doc := range s.docs {
		if score := scoreDocument(doc.Text, words); score > 0 {
			scored = append(scored, scoredDoc{score: score, doc: doc})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	results := make([]Document, 0, len(scored))
	for _, sc := range scored {
		results = append(results, sc.doc)
	}
	return results
}

// queryWords tokenizes by whitespace into a set of lowercase words.
// Duplicates collapse: repeating a keyword does not increase its weight.
func queryWords(query string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(query))
	words := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		words[f] = struct{}{}
	}
	return words
}

// scoreDocument counts the distinct query words contained in the
// lowercased document text.
func scoreDocument(text string, words map[string]struct{}) int {
	textLower := strings.ToLower(text)
	score := 0
	for w := range words {
		if strings.Contains(textLower, w) {
			score++
		}
	}
	return score
}
