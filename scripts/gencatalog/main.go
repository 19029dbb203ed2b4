package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"stockwatch/internal/catalog"
	"stockwatch/internal/model"
)

// gencatalog writes a sample product feed with dates relative to today, so
// each lifecycle branch is hit when the feed is handled on the same day:
//   - USB Cable, USB Dongle: normal
//   - Watermelon: in season, restock before season end (delay)
//   - Grapes: restock after season end (out of stock, cleared)
//   - Pumpkin: season not started (out of stock)
//   - Butter: fresh (one unit consumed)
//   - Milk: expired (expiration, cleared)
func main() {
	out := flag.String("out", "data/catalog/products.jsonl.gz", "output feed path")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	day := func(n int) *time.Time {
		t := today.AddDate(0, 0, n)
		return &t
	}

	products := []model.Product{
		{ID: 1, Type: model.ProductTypeNormal, Name: "USB Cable", LeadTime: 15, Available: 30},
		{ID: 2, Type: model.ProductTypeNormal, Name: "USB Dongle", LeadTime: 10, Available: 0},
		{ID: 3, Type: model.ProductTypeSeasonal, Name: "Watermelon", LeadTime: 5, Available: 30,
			SeasonStartDate: day(-10), SeasonEndDate: day(30)},
		{ID: 4, Type: model.ProductTypeSeasonal, Name: "Grapes", LeadTime: 15, Available: 30,
			SeasonStartDate: day(-10), SeasonEndDate: day(10)},
		{ID: 5, Type: model.ProductTypeSeasonal, Name: "Pumpkin", LeadTime: 5, Available: 12,
			SeasonStartDate: day(20), SeasonEndDate: day(90)},
		{ID: 6, Type: model.ProductTypeExpirable, Name: "Butter", LeadTime: 15, Available: 30,
			ExpiryDate: day(26)},
		{ID: 7, Type: model.ProductTypeExpirable, Name: "Milk", LeadTime: 15, Available: 30,
			ExpiryDate: day(-2)},
	}

	file, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}
	defer file.Close()

	if err := catalog.Encode(file, products); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}

	fmt.Printf("Created %s with %d products\n", *out, len(products))
}
