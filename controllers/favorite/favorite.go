package favoriteControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kroklik/digitalstore-api/middleware"
	"github.com/kroklik/digitalstore-api/models"
)

// Toggle flips (user, product) membership in the favorites ledger as a
// single conditional delete-or-insert. The composite unique index makes a
// racing insert a no-op instead of a duplicate. Returns the new membership.
func Toggle(db *gorm.DB, userID, productID uint) (bool, error) {
	var favorite bool

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.FavoriteProduct{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			favorite = false
			return nil
		}

		favorite = true
		row := models.FavoriteProduct{UserID: userID, ProductID: productID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
	})

	return favorite, err
}

// POST /user/favorites/:slug
func ToggleFavorite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var product models.Product
		if err := db.Where("slug = ?", c.Param("slug")).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		favorite, err := Toggle(db, userID, product.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle favorite"})
			return
		}

		message := "Product " + product.Title + " removed from favorites"
		if favorite {
			message = "Product " + product.Title + " added to favorites"
		}
		c.JSON(http.StatusOK, gin.H{"message": message, "favorite": favorite})
	}
}

// GET /user/favorites
func GetFavorites(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var products []models.Product
		err := db.Preload("Images").
			Joins("JOIN favorite_products fp ON fp.product_id = products.id").
			Where("fp.user_id = ?", userID).
			Order("fp.created_at DESC").
			Find(&products).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
			return
		}

		c.JSON(http.StatusOK, products)
	}
}
