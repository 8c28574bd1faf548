package store

// WildcardStoreID marks an offer as applicable to every store.
const WildcardStoreID = "ALL"

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Customer struct {
	UserID        string `json:"user_id"`
	Name          string `json:"name"`
	FavoriteDrink string `json:"favorite_drink,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
}

// Store is a retail location. Coord is nil when the source row carried
// coordinates that did not parse; such a store can never be selected as
// nearest but is kept for everything else.
type Store struct {
	StoreID   string      `json:"store_id"`
	Name      string      `json:"name"`
	Coord     *Coordinate `json:"coordinate,omitempty"`
	OpenTime  string      `json:"open_time"`  // "HH:MM"
	CloseTime string      `json:"close_time"` // "HH:MM"
}

// ResolvedStore is a per-request copy of a Store annotated with derived
// fields. The underlying Store is never mutated.
type ResolvedStore struct {
	Store
	DistanceM *float64 `json:"distance_in_m,omitempty"`
	IsOpen    bool     `json:"is_open"`
}

type Offer struct {
	OfferID     string `json:"offer_id"`
	Description string `json:"description"`
	StoreID     string `json:"store_id"` // a store ID or WildcardStoreID
	Product     string `json:"product,omitempty"`
}

type InventoryItem struct {
	StoreID string `json:"store_id"`
	Product string `json:"product"`
	Size    string `json:"size"`
	InStock bool   `json:"in_stock"`
}

// Dataset holds the four read-only tables. It is built once (per load or
// reload) and never mutated afterwards.
type Dataset struct {
	Customers []Customer
	Stores    []Store
	Inventory []InventoryItem
	Offers    []Offer
}

// FindCustomer returns the first customer whose user ID matches exactly,
// or nil if none does.
func (d *Dataset) FindCustomer(userID string) *Customer {
	for i := range d.Customers {
		if d.Customers[i].UserID == userID {
			return &d.Customers[i]
		}
	}
	return nil
}
