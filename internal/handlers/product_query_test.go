package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestPriceBucketFilter(t *testing.T) {
	under, ok := priceBucketFilter("under10k")
	if !ok || under["$lt"] != int64(10000) {
		t.Fatalf("unexpected under10k filter: %v", under)
	}

	mid, ok := priceBucketFilter("10to30k")
	if !ok || mid["$gte"] != int64(10000) || mid["$lte"] != int64(30000) {
		t.Fatalf("unexpected 10to30k filter: %v", mid)
	}

	over, ok := priceBucketFilter("over30k")
	if !ok || over["$gt"] != int64(30000) {
		t.Fatalf("unexpected over30k filter: %v", over)
	}

	if _, ok := priceBucketFilter("cheap"); ok {
		t.Fatal("expected unknown bucket to be rejected")
	}
}

func TestProductSortKeys(t *testing.T) {
	sort, ok := productSort("")
	if !ok || sort[0].Key != "createdAt" || sort[0].Value != -1 {
		t.Fatalf("expected default sort newest first, got %v", sort)
	}

	tests := map[string]struct {
		key   string
		value int
	}{
		"name":       {"name", 1},
		"price_asc":  {"price", 1},
		"price_desc": {"price", -1},
		"rating":     {"rating", -1},
	}
	for input, want := range tests {
		sort, ok := productSort(input)
		if !ok || sort[0].Key != want.key || sort[0].Value != want.value {
			t.Fatalf("sort %q: got %v", input, sort)
		}
	}

	if _, ok := productSort("popularity"); ok {
		t.Fatal("expected unknown sort key to be rejected")
	}
}

func TestNormalizeProductDocumentLegacyFeaturesString(t *testing.T) {
	product, err := normalizeProductDocument(bson.M{
		"name":     "Nord Premium",
		"price":    int64(15000),
		"features": "Kill Switch",
	})
	if err != nil {
		t.Fatalf("normalizeProductDocument returned error: %v", err)
	}
	if len(product.Features) != 1 || product.Features[0] != "Kill Switch" {
		t.Fatalf("expected single feature, got %v", product.Features)
	}
}

func TestNormalizeProductDocumentNumericCoercion(t *testing.T) {
	product, err := normalizeProductDocument(bson.M{
		"name":   "Nord Premium",
		"price":  int32(15000),
		"rating": int32(4),
	})
	if err != nil {
		t.Fatalf("normalizeProductDocument returned error: %v", err)
	}
	if product.Price != 15000 {
		t.Fatalf("expected price 15000, got %d", product.Price)
	}
	if product.Rating != 4 {
		t.Fatalf("expected rating 4, got %v", product.Rating)
	}

	product, err = normalizeProductDocument(bson.M{
		"name":  "Nord Premium",
		"price": 15000.0,
	})
	if err != nil {
		t.Fatalf("normalizeProductDocument returned error: %v", err)
	}
	if product.Price != 15000 {
		t.Fatalf("expected float price coerced to 15000, got %d", product.Price)
	}
}

func TestNormalizeProductDocumentMissingPrice(t *testing.T) {
	product, err := normalizeProductDocument(bson.M{"name": "Nord Premium"})
	if err != nil {
		t.Fatalf("normalizeProductDocument returned error: %v", err)
	}
	if product.Price != 0 {
		t.Fatalf("expected missing price to default to 0, got %d", product.Price)
	}
}
