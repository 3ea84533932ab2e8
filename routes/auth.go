package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kroklik/digitalstore-api/auth"
	"github.com/kroklik/digitalstore-api/config"
)

func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.Register(db))
		authGroup.POST("/login", auth.Login(db, cfg.JWT))
		authGroup.POST("/logout", auth.Logout())
	}
}
