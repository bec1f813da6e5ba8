package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/robertopeiro12/buscocredito-sub002/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Health returns a JSON health check response.
// Checks Postgres, MongoDB and Redis connectivity; never exposes credentials or internals.
func Health(db *gorm.DB, mdb *mongo.Database, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		mongoStatus := "connected"
		if mdb.Client().Ping(ctx, nil) != nil {
			mongoStatus = "error"
		}

		redisStatus := "connected"
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		status := http.StatusOK
		if dbStatus != "connected" || mongoStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		body := gin.H{
			"ok":    status == http.StatusOK,
			"db":    dbStatus,
			"mongo": mongoStatus,
			"redis": redisStatus,
		}
		if redisStatus == "connected" {
			if n, err := worker.DLQLength(ctx, rdb, worker.QueueEmail); err == nil {
				body["email_dlq"] = n
			}
		}
		c.JSON(status, body)
	}
}
