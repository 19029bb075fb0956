package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"backend/internal/logging"
	"backend/internal/workflow"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		logging.GetLogger().Error("panic recovered",
			zap.String("route", route), zap.Any("panic", r))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func ensureDBConnection(ctx context.Context, db *mongo.Database) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return db.Client().Ping(checkCtx, readpref.Primary())
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	logging.GetLogger().Warn("request failed",
		zap.String("route", route),
		zap.Int("status", status),
		zap.String("message", message))
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondWorkflowError maps the workflow error taxonomy onto HTTP statuses:
// validation 400, not found 404, conflict 409, anything else 500.
func respondWorkflowError(c *gin.Context, route string, err error) {
	var ve workflow.ValidationError
	if errors.As(err, &ve) {
		respondWithError(c, http.StatusBadRequest, route, ve.Error())
		return
	}
	var nf workflow.NotFoundError
	if errors.As(err, &nf) {
		respondWithError(c, http.StatusNotFound, route, nf.Error())
		return
	}
	var ce workflow.ConflictError
	if errors.As(err, &ce) {
		respondWithError(c, http.StatusConflict, route, ce.Error())
		return
	}
	logging.GetLogger().Error("request failed",
		zap.String("route", route), zap.Error(err))
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
