package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"papertrade/internal/handlers"
	"papertrade/internal/ledger"
	"papertrade/internal/logger"
	"papertrade/internal/market"
	"papertrade/internal/middleware"
	"papertrade/internal/models"
	"papertrade/internal/services"
	"papertrade/internal/store"
	"papertrade/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Store  ledger.Store
	Feed   *fixedFeed
	Router *gin.Engine
}

// fixedFeed serves deterministic prices so trading assertions are exact.
type fixedFeed struct {
	prices map[string]float64
}

func (f *fixedFeed) Quotes() []market.Quote {
	out := make([]market.Quote, 0, len(f.prices))
	for symbol, price := range f.prices {
		out = append(out, market.Quote{Symbol: symbol, Name: symbol + " Ltd", Price: price})
	}
	return out
}

func (f *fixedFeed) Quote(symbol string) (market.Quote, bool) {
	price, ok := f.prices[symbol]
	if !ok {
		return market.Quote{}, false
	}
	return market.Quote{Symbol: symbol, Name: symbol + " Ltd", Price: price}, true
}

func (f *fixedFeed) Price(symbol string) (float64, bool) {
	price, ok := f.prices[symbol]
	return price, ok
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Portfolio{},
		&models.Position{},
		&models.Order{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack: user accounts in an isolated
// SQLite database, the portfolio ledger in the relational store over the
// same database, and a deterministic market feed.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	ledgerStore := store.NewGorm(db)
	feed := &fixedFeed{prices: map[string]float64{
		"TCS":  100,
		"INFY": 1500,
	}}

	// Services
	userService := services.NewUserService(db)
	tradingService := services.NewTradingService(ledgerStore, feed)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	tradingHandler := handlers.NewTradingHandler(tradingService)
	marketHandler := handlers.NewMarketHandler(feed)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	marketGroup := v1.Group("/market")
	marketGroup.GET("/quotes", marketHandler.GetQuotes)
	marketGroup.GET("/quotes/:symbol", marketHandler.GetQuote)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/portfolio", tradingHandler.GetPortfolio)
	protected.POST("/portfolio/reset", tradingHandler.ResetPortfolio)
	protected.POST("/portfolio/refresh", tradingHandler.RefreshPortfolio)
	protected.POST("/orders", tradingHandler.PlaceOrder)
	protected.GET("/orders", tradingHandler.GetOrders)

	return &testApp{DB: db, Store: ledgerStore, Feed: feed, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), result["refresh_token"].(string), user["id"].(float64)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["token"].(string), result["refresh_token"].(string)
}

// getPortfolio fetches the portfolio view for the given token.
func (app *testApp) getPortfolio(t *testing.T, token string) map[string]interface{} {
	t.Helper()
	rec := app.request("GET", "/api/v1/portfolio", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("get portfolio failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["portfolio"].(map[string]interface{})
}

// placeOrder submits an order and returns the recorder.
func (app *testApp) placeOrder(t *testing.T, token, symbol, side, orderType string, quantity int, price float64) *httptest.ResponseRecorder {
	t.Helper()
	body := fmt.Sprintf(`{"symbol":%q,"name":"%s Ltd","type":%q,"order_type":%q,"quantity":%d,"price":%v}`,
		symbol, symbol, side, orderType, quantity, price)
	return app.request("POST", "/api/v1/orders", body, token)
}
