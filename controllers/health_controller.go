package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Jaykaran24/fitbot/services"
)

type HealthController struct {
	DB         *gorm.DB
	LocalFoods *services.LocalFoodDB
	Metrics    *services.Metrics
	AdminEmail string
}

func NewHealthController(db *gorm.DB, localFoods *services.LocalFoodDB, metrics *services.Metrics, adminEmail string) *HealthController {
	return &HealthController{DB: db, LocalFoods: localFoods, Metrics: metrics, AdminEmail: adminEmail}
}

func (hc *HealthController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"localFoodItems": hc.LocalFoods.Len(),
	})
}

// Live only proves the process is serving.
func (hc *HealthController) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Ready checks the database connection so load balancers stop routing to an
// instance that lost it.
func (hc *HealthController) Ready(c *gin.Context) {
	sqlDB, err := hc.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": "database unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// MetricsSnapshot is admin-only: the authenticated email must match the
// configured admin address.
func (hc *HealthController) MetricsSnapshot(c *gin.Context) {
	if hc.AdminEmail == "" || c.GetString("email") != hc.AdminEmail {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}
	c.JSON(http.StatusOK, hc.Metrics.Snapshot())
}
