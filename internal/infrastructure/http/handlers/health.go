package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

const readinessTimeout = 3 * time.Second

// HealthHandler handles GET /health, the liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// HealthDependenciesHandler handles GET /health/ready, the readiness probe.
// The SQL store is required. Mongo and Redis are optional: when not
// configured they are reported as "disabled" and do not fail readiness.
type HealthDependenciesHandler struct {
	sql   *gorm.DB
	mongo *mongo.Database
	redis *redis.Client
}

func NewHealthDependenciesHandler(sql *gorm.DB, db *mongo.Database, rdb *redis.Client) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{
		sql:   sql,
		mongo: db,
		redis: rdb,
	}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	deps := map[string]dependencyStatus{
		"database": h.pingSQL(ctx),
		"mongodb":  disabled(),
		"redis":    disabled(),
	}
	if h.mongo != nil {
		deps["mongodb"] = check(h.mongo.Client().Ping(ctx, nil))
	}
	if h.redis != nil {
		deps["redis"] = check(h.redis.Ping(ctx).Err())
	}

	healthy := true
	for _, d := range deps {
		if d.Status == "unhealthy" {
			healthy = false
		}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}

func (h *HealthDependenciesHandler) pingSQL(ctx context.Context) dependencyStatus {
	if h.sql == nil {
		return dependencyStatus{Status: "unhealthy", Error: "not configured"}
	}
	sqlDB, err := h.sql.DB()
	if err != nil {
		return check(err)
	}
	return check(sqlDB.PingContext(ctx))
}

func check(err error) dependencyStatus {
	if err != nil {
		return dependencyStatus{Status: "unhealthy", Error: err.Error()}
	}
	return dependencyStatus{Status: "ok"}
}

func disabled() dependencyStatus {
	return dependencyStatus{Status: "disabled"}
}
