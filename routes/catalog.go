package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	catalogControllers "github.com/kroklik/digitalstore-api/controllers/catalog"
)

func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/", catalogControllers.GetRootCategories(db))
	r.GET("/categories/:slug", catalogControllers.GetCategoryBySlug(db))
	r.GET("/products/export", catalogControllers.ExportProducts(db))
	r.GET("/products/:slug", catalogControllers.GetProductBySlug(db))
	r.GET("/search", catalogControllers.SearchProducts(db))
	r.GET("/cities", catalogControllers.GetCities(db))
}
