package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type sampleProduct struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
}

// main writes data/catalog.jsonl.gz, a seed file for CATALOG_SEED_FILE.
// The last record has no category and is skipped by the importer.
func main() {
	dataDir := "data"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	products := []sampleProduct{
		{"Wireless Mouse", "Ergonomic 2.4GHz mouse with silent clicks", "Electronics", 24.99, "/images/mouse.jpg"},
		{"Mechanical Keyboard", "Tenkeyless keyboard with brown switches", "Electronics", 89.0, "/images/keyboard.jpg"},
		{"USB-C Hub", "7-in-1 hub with HDMI and card reader", "Electronics", 39.5, ""},
		{"Desk Lamp", "Dimmable LED lamp with USB charging port", "Home", 32.0, "/images/lamp.jpg"},
		{"Ceramic Mug", "350ml stoneware mug, dishwasher safe", "Kitchen", 12.0, ""},
		{"Chef Knife", "20cm stainless steel chef knife", "Kitchen", 54.9, "/images/knife.jpg"},
		{"Trail Running Shoes", "Waterproof shoes with grippy outsole", "Outdoor", 119.0, "/images/shoes.jpg"},
		{"Camping Lantern", "Rechargeable lantern, 300 lumens", "Outdoor", 27.75, ""},
		{"Yoga Mat", "6mm non-slip mat with carry strap", "Fitness", 29.99, "/images/mat.jpg"},
		{"Adjustable Dumbbells", "Pair of 2-24kg dumbbells", "Fitness", 249.0, ""},
		{"Building Blocks Set", "500 piece creative set", "Toys", 45.0, "/images/blocks.jpg"},
		{"Board Game", "Strategy game for 2-4 players", "Toys", 34.5, ""},
		{"Mystery Item", "Missing its category", "", 9.99, ""},
	}

	filePath := filepath.Join(dataDir, "catalog.jsonl.gz")
	if err := createCatalogFile(filePath, products); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d products\n", filePath, len(products))
	fmt.Println("\nRun the API with:")
	fmt.Printf("  CATALOG_SEED_FILE=%s go run ./cmd/api\n", filePath)
}

func createCatalogFile(filePath string, products []sampleProduct) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := json.NewEncoder(gzipWriter)
	for _, p := range products {
		if err := encoder.Encode(p); err != nil {
			return fmt.Errorf("failed to write product: %w", err)
		}
	}

	return nil
}
