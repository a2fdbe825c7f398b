// Package http exposes the coordinator's operational endpoints: liveness,
// Prometheus metrics and a read-only view of the fleet.
package http

import (
	"context"
	"net/http"

	"ups/internal/core/application/usecases/queries"
	"ups/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// FleetReader returns the fleet read model.
type FleetReader interface {
	Handle(ctx context.Context, query queries.GetAllTrucksQuery) ([]queries.GetAllTrucksQueryResponse, error)
}

// Error is the JSON body of failed requests.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Location is a point on the world grid.
type Location struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Truck is one fleet entry.
type Truck struct {
	ID       int      `json:"id"`
	Location Location `json:"location"`
	Status   string   `json:"status"`
}

// Server handles HTTP requests against the read side of the application for
// the world the process is serving.
type Server struct {
	worldID             kernel.WorldID
	getAllTrucksHandler FleetReader
}

// NewServer creates a new HTTP server with the required query handlers.
func NewServer(worldID kernel.WorldID, getAllTrucksHandler FleetReader) *Server {
	return &Server{
		worldID:             worldID,
		getAllTrucksHandler: getAllTrucksHandler,
	}
}

// Register mounts every route on e. Metrics are served from gatherer.
func (s *Server) Register(e *echo.Echo, gatherer prometheus.Gatherer) {
	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	e.GET("/api/v1/trucks", s.GetTrucks)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// GetTrucks handles GET /api/v1/trucks - retrieves the fleet of the current world.
func (s *Server) GetTrucks(ctx echo.Context) error {
	query := queries.NewGetAllTrucksQuery(s.worldID)

	trucks, err := s.getAllTrucksHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve trucks",
		})
	}

	response := make([]Truck, len(trucks))
	for i, t := range trucks {
		response[i] = Truck{
			ID: int(t.ID),
			Location: Location{
				X: int(t.Location.X()),
				Y: int(t.Location.Y()),
			},
			Status: t.Status.String(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
