package store

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// LoadSQLiteDataset loads the four tables from a SQLite database file.
// The database is opened read-only for the duration of the load and
// closed again; nothing is written back.
func LoadSQLiteDataset(path string) (*Dataset, error) {
	// sql.Open would happily create an empty database at a wrong path.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database file not accessible: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	dataset := &Dataset{}
	if dataset.Customers, err = loadCustomers(db); err != nil {
		return nil, err
	}
	if dataset.Stores, err = loadStores(db); err != nil {
		return nil, err
	}
	if dataset.Inventory, err = loadInventory(db); err != nil {
		return nil, err
	}
	if dataset.Offers, err = loadOffers(db); err != nil {
		return nil, err
	}
	return dataset, nil
}

func loadCustomers(db *sql.DB) ([]Customer, error) {
	rows, err := db.Query("SELECT user_id, name, favorite_drink, phone, email FROM customers")
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		var c Customer
		var drink, phone, email sql.NullString
		if err := rows.Scan(&c.UserID, &c.Name, &drink, &phone, &email); err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		c.FavoriteDrink = drink.String
		c.Phone = phone.String
		c.Email = email.String
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func loadStores(db *sql.DB) ([]Store, error) {
	rows, err := db.Query("SELECT store_id, name, latitude, longitude, open_time, close_time FROM stores")
	if err != nil {
		return nil, fmt.Errorf("failed to query stores: %w", err)
	}
	defer rows.Close()

	var stores []Store
	for rows.Next() {
		var s Store
		// Coordinates are stored as text so malformed values survive until
		// the shared parse step instead of failing the whole load.
		var lat, lon, openTime, closeTime sql.NullString
		if err := rows.Scan(&s.StoreID, &s.Name, &lat, &lon, &openTime, &closeTime); err != nil {
			return nil, fmt.Errorf("failed to scan store row: %w", err)
		}
		s.Coord = parseCoordinate(lat.String, lon.String)
		s.OpenTime = openTime.String
		s.CloseTime = closeTime.String
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

func loadInventory(db *sql.DB) ([]InventoryItem, error) {
	rows, err := db.Query("SELECT store_id, product, size, in_stock FROM inventory")
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	var items []InventoryItem
	for rows.Next() {
		var item InventoryItem
		var inStock sql.NullString
		if err := rows.Scan(&item.StoreID, &item.Product, &item.Size, &inStock); err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		item.InStock = parseBoolFlag(inStock.String)
		items = append(items, item)
	}
	return items, rows.Err()
}

func loadOffers(db *sql.DB) ([]Offer, error) {
	rows, err := db.Query("SELECT offer_id, description, store_id, product FROM offers")
	if err != nil {
		return nil, fmt.Errorf("failed to query offers: %w", err)
	}
	defer rows.Close()

	var offers []Offer
	for rows.Next() {
		var o Offer
		var product sql.NullString
		if err := rows.Scan(&o.OfferID, &o.Description, &o.StoreID, &product); err != nil {
			return nil, fmt.Errorf("failed to scan offer row: %w", err)
		}
		o.Product = product.String
		offers = append(offers, o)
	}
	return offers, rows.Err()
}
