package catalogControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/kroklik/digitalstore-api/models"
)

// GET /products/export
//
// Downloadable price list of the whole catalog.
func ExportProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Category").Preload("Brand").Order("id").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sheet"})
			return
		}

		headers := []string{"ID", "Title", "Slug", "Price", "Stock", "Category", "Brand", "CreatedAt"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Title)
			row.AddCell().SetValue(p.Slug)
			row.AddCell().SetValue(p.Price.String())
			row.AddCell().SetValue(p.Quantity)
			if p.Category != nil {
				row.AddCell().SetValue(p.Category.Title)
			} else {
				row.AddCell().SetValue("")
			}
			if p.Brand != nil {
				row.AddCell().SetValue(p.Brand.Title)
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write file"})
			return
		}
	}
}
