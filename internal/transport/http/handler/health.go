package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rag-assistant/internal/bootstrap"
)

var errMQClosed = errors.New("connection closed")

type HealthHandler struct {
	app *bootstrap.App
}

func NewHealthHandler(app *bootstrap.App) *HealthHandler {
	return &HealthHandler{app: app}
}

// Check reports per-dependency reachability. Any failing dependency turns
// the whole response into a 503 so load balancers pull the instance.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	deps := gin.H{}
	healthy := true
	for name, err := range map[string]error{
		"mysql":    h.pingMySQL(ctx),
		"redis":    h.app.Redis.Ping(ctx).Err(),
		"rabbitmq": h.checkMQ(),
	} {
		if err != nil {
			deps[name] = err.Error()
			healthy = false
		} else {
			deps[name] = "up"
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"app":          h.app.Config.App.Name,
		"env":          h.app.Config.App.Env,
		"uptime_sec":   int(time.Since(h.app.StartedAt).Seconds()),
		"dependencies": deps,
	})
}

func (h *HealthHandler) pingMySQL(ctx context.Context) error {
	sqlDB, err := h.app.MySQL.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (h *HealthHandler) checkMQ() error {
	if h.app.MQConn == nil || h.app.MQConn.IsClosed() {
		return errMQClosed
	}
	return nil
}
