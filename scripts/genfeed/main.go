package main

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Writes a sample price feed for variants 1 to 4. Empty cells leave the
// variant's value unchanged:
//
//	1: reprice to 1200
//	2: restock to 40
//	3: reprice and sell out
//	4: reprice to 899 and restock to 12
func main() {
	dataDir := "data/pricefeed"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	rows := [][]string{
		{"variant_id", "price", "quantity"},
		{"1", "1200", ""},
		{"2", "", "40"},
		{"3", "2500", "0"},
		{"4", "899", "12"},
	}

	filePath := filepath.Join(dataDir, "feed.csv.gz")
	if err := createFeedFile(filePath, rows); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d rows\n", filePath, len(rows)-1)
}

func createFeedFile(filePath string, rows [][]string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	w := csv.NewWriter(gzipWriter)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write feed: %w", err)
	}
	return nil
}
