package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/worker"
)

// Health reports DB and Redis connectivity plus how many background jobs
// sit on the dead letter lists. Never exposes credentials or internals.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		var deadLettered int64
		if redisStatus == "connected" {
			for _, q := range []string{worker.QueueInvoicePDF, worker.QueueEmail} {
				n, err := worker.DeadLetterCount(ctx, rdb, q)
				if err != nil {
					break
				}
				deadLettered += n
			}
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":            status == http.StatusOK,
			"db":            dbStatus,
			"redis":         redisStatus,
			"dead_lettered": deadLettered,
		})
	}
}
