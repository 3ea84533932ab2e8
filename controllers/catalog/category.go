package catalogControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kroklik/digitalstore-api/models"
)

// GET /
//
// Root categories with their subcategories, the storefront landing data.
func GetRootCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		err := db.Preload("Subcategories").Where("parent_id IS NULL").Order("title").Find(&categories).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// GET /categories/:slug
func GetCategoryBySlug(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")

		var category models.Category
		if err := db.Preload("Subcategories").Where("slug = ?", slug).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
			return
		}

		var products []models.Product
		err := db.Preload("Images").Preload("Brand").
			Where("category_id = ?", category.ID).
			Order("created_at DESC").
			Find(&products).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"category": category, "products": products})
	}
}

// GET /cities
//
// Shipping city choices for the checkout form.
func GetCities(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cities []models.City
		if err := db.Order("name").Find(&cities).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cities"})
			return
		}
		c.JSON(http.StatusOK, cities)
	}
}
