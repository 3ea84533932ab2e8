package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kroklik/digitalstore-api/config"
	"github.com/kroklik/digitalstore-api/middleware"
	"github.com/kroklik/digitalstore-api/models"
)

var testJWT = config.JWTConfig{Secret: "test-secret", TTL: time.Hour}

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

func testRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/register", Register(db))
	r.POST("/auth/login", Login(db, testJWT))

	protected := r.Group("/user")
	protected.Use(middleware.ValidateToken(testJWT.Secret))
	protected.GET("", func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerBody(username string) gin.H {
	return gin.H{
		"username":         username,
		"email":            username + "@example.com",
		"password":         "secret-password",
		"confirm_password": "secret-password",
	}
}

func TestRegisterBootstrapsAccount(t *testing.T) {
	db := newTestDB(t)
	r := testRouter(db)

	w := postJSON(t, r, "/auth/register", registerBody("alice"))
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&user).Error)
	assert.NotEqual(t, "secret-password", user.PasswordHash)

	var profileCount, customerCount int64
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&profileCount).Error)
	require.NoError(t, db.Model(&models.Customer{}).Where("user_id = ?", user.ID).Count(&customerCount).Error)
	assert.EqualValues(t, 1, profileCount)
	assert.EqualValues(t, 1, customerCount)
}

func TestRegisterDuplicate(t *testing.T) {
	db := newTestDB(t)
	r := testRouter(db)

	require.Equal(t, http.StatusCreated, postJSON(t, r, "/auth/register", registerBody("bob")).Code)
	assert.Equal(t, http.StatusConflict, postJSON(t, r, "/auth/register", registerBody("bob")).Code)
}

func TestRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	r := testRouter(db)

	w := postJSON(t, r, "/auth/register", gin.H{
		"username":         "carol",
		"email":            "not-an-email",
		"password":         "short",
		"confirm_password": "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "email")
	assert.Contains(t, resp.Errors, "password")
}

func TestLoginAndTokenRoundTrip(t *testing.T) {
	db := newTestDB(t)
	r := testRouter(db)

	require.Equal(t, http.StatusCreated, postJSON(t, r, "/auth/register", registerBody("dave")).Code)

	w := postJSON(t, r, "/auth/login", gin.H{"username": "dave", "password": "secret-password"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	r := testRouter(db)

	require.Equal(t, http.StatusCreated, postJSON(t, r, "/auth/register", registerBody("eve")).Code)

	w := postJSON(t, r, "/auth/login", gin.H{"username": "eve", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRouteRejectsMissingToken(t *testing.T) {
	db := newTestDB(t)
	r := testRouter(db)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
