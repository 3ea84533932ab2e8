package catalogControllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kroklik/digitalstore-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Customer{},
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.Gallery{},
		&models.ProductDescription{},
		&models.FavoriteProduct{},
		&models.Order{},
		&models.OrderProduct{},
		&models.City{},
		&models.ShippingAddress{},
	))
	return db
}

func testRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", GetRootCategories(db))
	r.GET("/categories/:slug", GetCategoryBySlug(db))
	r.GET("/products/:slug", GetProductBySlug(db))
	r.GET("/search", SearchProducts(db))
	return r
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()

	root := models.Category{Title: "Electronics", Slug: "electronics"}
	require.NoError(t, db.Create(&root).Error)
	child := models.Category{Title: "Laptops", Slug: "laptops", ParentID: &root.ID}
	require.NoError(t, db.Create(&child).Error)

	for _, p := range []models.Product{
		{Title: "Gaming Laptop", Slug: "gaming-laptop", Price: decimal.RequireFromString("1500"), Quantity: 5, CategoryID: child.ID},
		{Title: "Office Laptop", Slug: "office-laptop", Price: decimal.RequireFromString("700"), Quantity: 7, CategoryID: child.ID},
		{Title: "Smartphone", Slug: "smartphone", Price: decimal.RequireFromString("900"), Quantity: 9, CategoryID: root.ID},
	} {
		require.NoError(t, db.Create(&p).Error)
	}
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRootCategories(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	r := testRouter(db)

	w := get(r, "/")
	require.Equal(t, http.StatusOK, w.Code)

	var categories []models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	require.Len(t, categories, 1, "only root categories on the landing page")
	assert.Equal(t, "electronics", categories[0].Slug)
	assert.Len(t, categories[0].Subcategories, 1)
}

func TestCategoryBySlug(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	r := testRouter(db)

	w := get(r, "/categories/laptops")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Category models.Category  `json:"category"`
		Products []models.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Laptops", resp.Category.Title)
	assert.Len(t, resp.Products, 2)

	assert.Equal(t, http.StatusNotFound, get(r, "/categories/no-such-category").Code)
}

func TestProductBySlug(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	r := testRouter(db)

	w := get(r, "/products/smartphone")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Product     models.Product   `json:"product"`
		Suggestions []models.Product `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Smartphone", resp.Product.Title)
	for _, s := range resp.Suggestions {
		assert.NotEqual(t, resp.Product.ID, s.ID, "product must not suggest itself")
	}

	assert.Equal(t, http.StatusNotFound, get(r, "/products/no-such-product").Code)
}

func TestSearchSubstringCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	r := testRouter(db)

	w := get(r, "/search?q=LAPTOP")
	require.Equal(t, http.StatusOK, w.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	assert.Len(t, products, 2)

	w = get(r, "/search?q=")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	assert.Empty(t, products)
}
