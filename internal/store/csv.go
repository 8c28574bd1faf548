package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadCSVDataset loads the four tables from customers.csv, stores.csv,
// inventory.csv and offers.csv in dir. All files are required.
func LoadCSVDataset(dir string) (*Dataset, error) {
	customers, err := readRecords(filepath.Join(dir, "customers.csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}
	stores, err := readRecords(filepath.Join(dir, "stores.csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to load stores: %w", err)
	}
	inventory, err := readRecords(filepath.Join(dir, "inventory.csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	offers, err := readRecords(filepath.Join(dir, "offers.csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to load offers: %w", err)
	}

	dataset := &Dataset{}
	for _, rec := range customers {
		dataset.Customers = append(dataset.Customers, customerFromRecord(rec))
	}
	for _, rec := range stores {
		dataset.Stores = append(dataset.Stores, storeFromRecord(rec))
	}
	for _, rec := range inventory {
		dataset.Inventory = append(dataset.Inventory, inventoryItemFromRecord(rec))
	}
	for _, rec := range offers {
		dataset.Offers = append(dataset.Offers, offerFromRecord(rec))
	}
	return dataset, nil
}

// readRecords reads a CSV file into a list of header-keyed rows.
func readRecords(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, missing cells stay empty
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[strings.TrimSpace(col)] = strings.TrimSpace(row[i])
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func customerFromRecord(rec map[string]string) Customer {
	return Customer{
		UserID:        rec["user_id"],
		Name:          rec["name"],
		FavoriteDrink: rec["favorite_drink"],
		Phone:         rec["phone"],
		Email:         rec["email"],
	}
}

func storeFromRecord(rec map[string]string) Store {
	return Store{
		StoreID:   rec["store_id"],
		Name:      rec["name"],
		Coord:     parseCoordinate(rec["latitude"], rec["longitude"]),
		OpenTime:  rec["open_time"],
		CloseTime: rec["close_time"],
	}
}

func inventoryItemFromRecord(rec map[string]string) InventoryItem {
	return InventoryItem{
		StoreID: rec["store_id"],
		Product: rec["product"],
		Size:    rec["size"],
		InStock: parseBoolFlag(rec["in_stock"]),
	}
}

func offerFromRecord(rec map[string]string) Offer {
	return Offer{
		OfferID:     rec["offer_id"],
		Description: rec["description"],
		StoreID:     rec["store_id"],
		Product:     rec["product"],
	}
}

// parseCoordinate converts raw latitude/longitude cells once at load time.
// A malformed pair yields nil rather than an error.
func parseCoordinate(lat, lon string) *Coordinate {
	latF, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return nil
	}
	lonF, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return nil
	}
	return &Coordinate{Lat: latF, Lon: lonF}
}

func parseBoolFlag(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
