// Package catalog reads product feeds and seeds them into a product store.
//
// A feed is a gzipped file holding one JSON encoded model.Product per line.
package catalog

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"stockwatch/internal/model"
)

// Loader defines the interface for loading product feeds.
type Loader interface {
	// Load reads a gzipped feed and returns its products in file order.
	Load(ctx context.Context, path string) ([]model.Product, error)
}

// Decode reads a gzipped JSON-lines feed from r. Blank lines are skipped.
func Decode(ctx context.Context, r io.Reader) ([]model.Product, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gz.Close()

	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var products []model.Product
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%10_000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var p model.Product
		if err := json.Unmarshal([]byte(line), &p); err != nil {
			return nil, fmt.Errorf("line %d: invalid product: %w", lineNo, err)
		}
		if err := Validate(&p); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		products = append(products, p)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}

	return products, nil
}

// Encode writes products to w as a gzipped JSON-lines feed.
func Encode(w io.Writer, products []model.Product) error {
	gz := gzip.NewWriter(w)
	enc := json.NewEncoder(gz)
	for i := range products {
		if err := enc.Encode(&products[i]); err != nil {
			gz.Close()
			return fmt.Errorf("failed to encode product %d: %w", products[i].ID, err)
		}
	}
	return gz.Close()
}

// Validate checks that a product carries the fields its type relies on.
func Validate(p *model.Product) error {
	switch {
	case p.ID <= 0:
		return fmt.Errorf("product id must be positive, got %d", p.ID)
	case !p.Type.Valid():
		return fmt.Errorf("product %d: unknown type %q", p.ID, p.Type)
	case p.Name == "":
		return fmt.Errorf("product %d: name is required", p.ID)
	case p.Available < 0:
		return fmt.Errorf("product %d: available must not be negative", p.ID)
	case p.LeadTime < 0:
		return fmt.Errorf("product %d: lead time must not be negative", p.ID)
	}

	switch p.Type {
	case model.ProductTypeSeasonal:
		if p.SeasonStartDate == nil || p.SeasonEndDate == nil {
			return fmt.Errorf("product %d: seasonal products need season start and end dates", p.ID)
		}
	case model.ProductTypeExpirable:
		if p.ExpiryDate == nil {
			return fmt.Errorf("product %d: expirable products need an expiry date", p.ID)
		}
	}

	return nil
}
