package accountControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
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

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Profile{}, &models.Customer{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("old-password-1"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Username: "frank", Email: "frank@example.com", PasswordHash: string(hash)}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.Profile{UserID: user.ID}).Error)
	require.NoError(t, db.Create(&models.Customer{UserID: &user.ID, Email: user.Email}).Error)
	return &user
}

func testRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	r.GET("/user", GetAccount(db))
	r.PUT("/user/profile", UpdateProfile(db))
	r.PUT("/user/account", UpdateAccount(db))
	r.PUT("/user/password", ChangePassword(db))
	return r
}

func putJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetAccount(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	r := testRouter(db, user.ID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "frank", resp.Username)
	assert.NotNil(t, resp.Profile)
	assert.NotNil(t, resp.Customer)
	assert.NotContains(t, w.Body.String(), "password_hash")
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	r := testRouter(db, user.ID)

	w := putJSON(t, r, "/user/profile", gin.H{"phone_number": "+7 700 123 45 67", "city": "Astana"})
	require.Equal(t, http.StatusOK, w.Code)

	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, "+7 700 123 45 67", profile.PhoneNumber)
	assert.Equal(t, "Astana", profile.City)
}

func TestUpdateAccountSyncsEmail(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	r := testRouter(db, user.ID)

	w := putJSON(t, r, "/user/account", gin.H{
		"first_name": "Frank",
		"last_name":  "Ocean",
		"email":      "frank.ocean@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var customer models.Customer
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&customer).Error)
	assert.Equal(t, "Frank", customer.FirstName)
	assert.Equal(t, "frank.ocean@example.com", customer.Email)

	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, "frank.ocean@example.com", fresh.Email)
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	r := testRouter(db, user.ID)

	w := putJSON(t, r, "/user/password", gin.H{
		"old_password":     "wrong",
		"new_password":     "new-password-1",
		"confirm_password": "new-password-1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = putJSON(t, r, "/user/password", gin.H{
		"old_password":     "old-password-1",
		"new_password":     "new-password-1",
		"confirm_password": "does-not-match",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = putJSON(t, r, "/user/password", gin.H{
		"old_password":     "old-password-1",
		"new_password":     "new-password-1",
		"confirm_password": "new-password-1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(fresh.PasswordHash), []byte("new-password-1")))
}
