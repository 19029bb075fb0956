package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
)

// normalizeProductDocument tolerates legacy documents where numeric fields
// were written with a different BSON number type or features as a bare string.
func normalizeProductDocument(raw bson.M) (models.Product, error) {
	if features, ok := raw["features"].(string); ok {
		raw["features"] = []string{features}
	}

	if val, ok := raw["price"]; ok {
		switch typed := val.(type) {
		case int32:
			raw["price"] = int64(typed)
		case int64:
			// already canonical
		case float64:
			raw["price"] = int64(typed)
		case int:
			raw["price"] = int64(typed)
		default:
			raw["price"] = int64(0)
		}
	} else {
		raw["price"] = int64(0)
	}

	if val, ok := raw["rating"]; ok {
		switch typed := val.(type) {
		case int32:
			raw["rating"] = float64(typed)
		case int64:
			raw["rating"] = float64(typed)
		case float64:
			// already canonical
		default:
			raw["rating"] = 0.0
		}
	}

	data, err := bson.Marshal(raw)
	if err != nil {
		return models.Product{}, err
	}

	var p models.Product
	if err := bson.Unmarshal(data, &p); err != nil {
		return models.Product{}, err
	}

	return p, nil
}

func decodeProducts(ctx context.Context, cursor *mongo.Cursor) ([]models.Product, error) {
	products := make([]models.Product, 0)

	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}

		product, err := normalizeProductDocument(raw)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
