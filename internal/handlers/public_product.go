package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
GET /products
- search matches name, duration or any feature (case-insensitive substring)
- category: Premium | Standard
- price: under10k | 10to30k | over30k
- sort: name | price_asc | price_desc | rating (default: newest first)
- pagination applied only when both page and limit are present
*/
func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		filter := bson.M{
			"isActive":  true,
			"isDeleted": bson.M{"$ne": true},
		}

		if category := strings.TrimSpace(c.Query("category")); category != "" {
			filter["category"] = category
		}

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			pattern := bson.M{"$regex": search, "$options": "i"}
			filter["$or"] = []bson.M{
				{"name": pattern},
				{"duration": pattern},
				{"features": pattern},
			}
		}

		if price := strings.TrimSpace(c.Query("price")); price != "" {
			bucket, ok := priceBucketFilter(price)
			if !ok {
				respondWithError(c, http.StatusBadRequest, route, "invalid price filter")
				return
			}
			filter["price"] = bucket
		}

		sortKey, ok := productSort(c.Query("sort"))
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid sort key")
			return
		}

		findOptions := options.Find().SetSort(sortKey)

		pageStr := c.Query("page")
		limitStr := c.Query("limit")
		if pageStr != "" && limitStr != "" {
			page, limit, err := parsePaginationParams(pageStr, limitStr)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
				return
			}
			findOptions.
				SetSkip((page - 1) * limit).
				SetLimit(limit)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("products").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		products, err := decodeProducts(ctx, cursor)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, products)
	}
}

func priceBucketFilter(bucket string) (bson.M, bool) {
	switch bucket {
	case "under10k":
		return bson.M{"$lt": int64(10000)}, true
	case "10to30k":
		return bson.M{"$gte": int64(10000), "$lte": int64(30000)}, true
	case "over30k":
		return bson.M{"$gt": int64(30000)}, true
	default:
		return nil, false
	}
}

func productSort(key string) (bson.D, bool) {
	switch strings.TrimSpace(key) {
	case "":
		return bson.D{{Key: "createdAt", Value: -1}}, true
	case "name":
		return bson.D{{Key: "name", Value: 1}}, true
	case "price_asc":
		return bson.D{{Key: "price", Value: 1}}, true
	case "price_desc":
		return bson.D{{Key: "price", Value: -1}}, true
	case "rating":
		return bson.D{{Key: "rating", Value: -1}}, true
	default:
		return nil, false
	}
}
