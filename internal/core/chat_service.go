package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quickmart/support-bot/internal/pii"
	"github.com/quickmart/support-bot/internal/store"
)

// ChatService orchestrates one chat exchange: resolve customer, nearest
// store, offers and inventory, then compose and redact the reply.
type ChatService struct {
	snapshots   *SnapshotProvider
	topK        int
	redactDebug bool
	now         func() time.Time
}

func NewChatService(snapshots *SnapshotProvider, topK int, redactDebug bool) *ChatService {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &ChatService{
		snapshots:   snapshots,
		topK:        topK,
		redactDebug: redactDebug,
		now:         time.Now,
	}
}

// DebugContext echoes the records an exchange resolved. By default these
// are the raw loaded values and may carry PII; see redactDebugContext.
type DebugContext struct {
	Customer       *store.Customer       `json:"customer"`
	SelectedStore  *store.ResolvedStore  `json:"selected_store"`
	RAGDocs        []Document            `json:"rag_docs"`
	InventoryItems []store.InventoryItem `json:"inventory_items"`
}

type ChatResult struct {
	ExchangeID string
	Reply      string
	UsedStore  string // empty when no store resolved
	Debug      DebugContext
}

// Chat handles a single request. Every failure mode degrades to an empty
// or default result; this method never returns an error.
func (s *ChatService) Chat(userID, message string, location *store.Coordinate) *ChatResult {
	snapshot := s.snapshots.Current()
	dataset := snapshot.Dataset

	customer := dataset.FindCustomer(userID)

	var selected *store.ResolvedStore
	if location != nil {
		selected = FindNearestStore(*location, dataset.Stores)
		if selected != nil {
			selected.IsOpen = storeOpenAt(selected.Store, s.now())
		}
	}

	ragDocs := snapshot.Index.Query(message, s.topK)

	// Prefer offers tied to the resolved store (or the ALL wildcard), but
	// fall back to the unfiltered set rather than returning nothing.
	offerDocs := ragDocs
	if selected != nil {
		var matched []Document
		for _, doc := range ragDocs {
			if doc.Meta.StoreID == selected.StoreID || doc.Meta.StoreID == store.WildcardStoreID {
				matched = append(matched, doc)
			}
		}
		if len(matched) > 0 {
			offerDocs = matched
		}
	}

	var items []store.InventoryItem
	if selected != nil {
		items = filterInventory(dataset.Inventory, selected.StoreID, message)
	}

	reply := ComposeReply(message, customer, selected, offerDocs, items)

	debug := DebugContext{
		Customer:       customer,
		SelectedStore:  selected,
		RAGDocs:        offerDocs,
		InventoryItems: items,
	}
	if s.redactDebug {
		debug = redactDebugContext(debug)
	}

	usedStore := ""
	if selected != nil {
		usedStore = selected.Name
	}

	return &ChatResult{
		ExchangeID: uuid.NewString(),
		Reply:      pii.Redact(reply),
		UsedStore:  usedStore,
		Debug:      debug,
	}
}

// storeOpenAt compares the clock's time-of-day against the store's
// open/close window. Unparseable times mark the store closed.
func storeOpenAt(s store.Store, now time.Time) bool {
	openT, err := time.Parse("15:04", s.OpenTime)
	if err != nil {
		return false
	}
	closeT, err := time.Parse("15:04", s.CloseTime)
	if err != nil {
		return false
	}
	nowSecs := now.Hour()*3600 + now.Minute()*60 + now.Second()
	openSecs := openT.Hour()*3600 + openT.Minute()*60
	closeSecs := closeT.Hour()*3600 + closeT.Minute()*60
	return openSecs <= nowSecs && nowSecs <= closeSecs
}

// filterInventory keeps in-stock items of the given store that the message
// plausibly asks about: the product or size appears in the lowercased
// message, or the message mentions stock/availability at all.
func filterInventory(items []store.InventoryItem, storeID, message string) []store.InventoryItem {
	msg := strings.ToLower(message)
	wantsStock := strings.Contains(msg, "stock") || strings.Contains(msg, "available")

	var relevant []store.InventoryItem
	for _, item := range items {
		if item.StoreID != storeID || !item.InStock {
			continue
		}
		if wantsStock ||
			strings.Contains(msg, strings.ToLower(item.Product)) ||
			strings.Contains(msg, strings.ToLower(item.Size)) {
			relevant = append(relevant, item)
		}
	}
	return relevant
}

// redactDebugContext applies the reply redactor to the string fields of
// the debug context. Opt-in via REDACT_DEBUG_CONTEXT; the historical
// behavior is to return the raw resolved records.
func redactDebugContext(d DebugContext) DebugContext {
	if d.Customer != nil {
		c := *d.Customer
		c.Name = pii.Redact(c.Name)
		c.FavoriteDrink = pii.Redact(c.FavoriteDrink)
		c.Phone = pii.Redact(c.Phone)
		c.Email = pii.Redact(c.Email)
		d.Customer = &c
	}
	if d.SelectedStore != nil {
		s := *d.SelectedStore
		s.Name = pii.Redact(s.Name)
		s.OpenTime = pii.Redact(s.OpenTime)
		s.CloseTime = pii.Redact(s.CloseTime)
		d.SelectedStore = &s
	}
	if d.RAGDocs != nil {
		docs := make([]Document, len(d.RAGDocs))
		for i, doc := range d.RAGDocs {
			doc.Text = pii.Redact(doc.Text)
			doc.Meta.Product = pii.Redact(doc.Meta.Product)
			docs[i] = doc
		}
		d.RAGDocs = docs
	}
	if d.InventoryItems != nil {
		items := make([]store.InventoryItem, len(d.InventoryItems))
		for i, item := range d.InventoryItems {
			item.Product = pii.Redact(item.Product)
			item.Size = pii.Redact(item.Size)
			items[i] = item
		}
		d.InventoryItems = items
	}
	return d
}
