package catalogControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kroklik/digitalstore-api/models"
)

const suggestionCount = 4

// GET /products/:slug
func GetProductBySlug(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")

		var product models.Product
		err := db.Preload("Images").Preload("Parameters").Preload("Brand").Preload("Category").
			Where("slug = ?", slug).First(&product).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		// a handful of random other products for the "you may also like" block
		var suggestions []models.Product
		err = db.Preload("Images").
			Where("id <> ?", product.ID).
			Order("RANDOM()").
			Limit(suggestionCount).
			Find(&suggestions).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"product": product, "suggestions": suggestions})
	}
}

// GET /search?q=word
//
// Case-insensitive substring match on the title, newest first.
func SearchProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		word := strings.TrimSpace(c.Query("q"))
		if word == "" {
			c.JSON(http.StatusOK, []models.Product{})
			return
		}

		likePattern := "%" + strings.ToLower(word) + "%"
		var products []models.Product
		err := db.Preload("Images").
			Where("LOWER(title) LIKE ?", likePattern).
			Order("created_at DESC").
			Find(&products).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search products"})
			return
		}

		c.JSON(http.StatusOK, products)
	}
}
