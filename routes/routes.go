package routes

import (
	"net/http"
	"time"

	"slotwise/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAvailabilityRoutes registers the stateless availability endpoints:
// the caller supplies the full schedule snapshot inline.
func RegisterAvailabilityRoutes(r *gin.Engine, ah *handlers.AvailabilityHandler) {
	api := r.Group("/api/availability")
	{
		api.POST("/resolve", ah.ResolveHandler)
		api.POST("/window", ah.WindowHandler)
		api.POST("/team-window", ah.TeamWindowHandler)
		api.POST("/label", ah.LabelHandler)
	}
}

// RegisterScheduleRoutes registers the stored-schedule endpoints: companies
// publish templates and blocks, availability is derived from the documents.
func RegisterScheduleRoutes(r *gin.Engine, sh *handlers.ScheduleHandler) {
	api := r.Group("/api/companies")
	{
		api.PUT("/:id/schedule", sh.PublishScheduleHandler)
		api.POST("/:id/blocks", sh.AddCompanyBlockHandler)
		api.DELETE("/:id/blocks/:blockID", sh.RemoveCompanyBlockHandler)
		api.POST("/:id/workers/:workerID/blocks", sh.AddWorkerBlockHandler)
		api.DELETE("/:id/workers/:workerID/blocks/:blockID", sh.RemoveWorkerBlockHandler)
		api.GET("/:id/workers/:workerID/availability", sh.WorkerAvailabilityHandler)
		api.POST("/:id/workers/:workerID/booking-window", sh.WorkerWindowHandler)
		api.POST("/:id/team-window", sh.TeamWindowHandler)
	}
}

// CORSMiddleware returns the shared CORS policy.
func CORSMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}

// RegisterHealthRoute registers the liveness endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
