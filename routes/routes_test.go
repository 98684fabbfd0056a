package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Kariqs/agroxhub-api/checkout"
	"github.com/Kariqs/agroxhub-api/controllers"
	"github.com/Kariqs/agroxhub-api/fulfillment"
	"github.com/Kariqs/agroxhub-api/logistics"
	"github.com/Kariqs/agroxhub-api/middlewares"
	"github.com/Kariqs/agroxhub-api/models"
	"github.com/Kariqs/agroxhub-api/payments"
	"github.com/Kariqs/agroxhub-api/testutil"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const secret = "routes-secret"

type fixedResolver struct{ km float64 }

func (f fixedResolver) ResolveDistanceKm(context.Context, logistics.Coordinates, logistics.Coordinates) (float64, error) {
	return f.km, nil
}

type nopGateway struct{}

func (nopGateway) Initialize(context.Context, string, int64, string) (payments.Initialization, error) {
	return payments.Initialization{}, nil
}

func (nopGateway) Verify(context.Context, string) (bool, error) { return false, nil }

type APISuite struct {
	suite.Suite
	db       *gorm.DB
	router   *gin.Engine
	region   models.Region
	buyer    models.User
	product  models.Product
	provider models.LogisticsProvider
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	t := s.T()
	gin.SetMode(gin.TestMode)
	s.db = testutil.NewDB(t)
	log := zap.NewNop()

	s.region = testutil.Region(t, s.db, "Nairobi", -1.28, 36.82)
	category := testutil.Category(t, s.db, "Grains")
	s.buyer = testutil.User(t, s.db, "Jane Wanjiku", models.UserTypeBuyer, &s.region.ID)
	seller := testutil.User(t, s.db, "Kamau Farms", models.UserTypeFarmer, &s.region.ID)
	s.product = testutil.Product(t, s.db, "Maize", seller.ID, category.ID, 500)
	s.provider = testutil.Provider(t, s.db, "Swift Movers", []uint{s.region.ID}, map[uint]float64{category.ID: 50})

	checkoutService := checkout.NewService(s.db, fixedResolver{km: 1}, logistics.SelectFirstFit, log)
	s.router = gin.New()
	Register(s.router, secret, Controllers{
		Checkout:  controllers.NewCheckoutController(checkoutService, log),
		Order:     controllers.NewOrderController(checkoutService, log),
		Payment:   controllers.NewPaymentController(payments.NewService(s.db, nopGateway{}, log), log),
		Logistics: controllers.NewLogisticsController(fulfillment.NewService(s.db, log), log),
		Cart:      controllers.NewCartController(s.db, log),
		Region:    controllers.NewRegionController(s.db, log),
	})
}

func (s *APISuite) token(kind string, id uint) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  fmt.Sprint(id),
		"type": kind,
	}).SignedString([]byte(secret))
	s.Require().NoError(err)
	return token
}

func (s *APISuite) do(method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func (s *APISuite) TestCheckoutFlow() {
	user := s.token(middlewares.TokenTypeUser, s.buyer.ID)

	w, _ := s.do(http.MethodPost, "/cart", user, gin.H{"productId": s.product.ID, "quantity": 1})
	s.Require().Equal(http.StatusCreated, w.Code)

	w, body := s.do(http.MethodGet, "/cart", user, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	cartID := body["cart"].(map[string]any)["ID"].(float64)

	w, body = s.do(http.MethodPost, "/checkout", user, gin.H{
		"cartId":           uint(cartID),
		"deliveryAddress":  "Moi Avenue 12",
		"deliveryRegionId": s.region.ID,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	order := body["data"].(map[string]any)
	s.InDelta(737.0, order["totalAmount"].(float64), 1e-9)
	orderNumber := order["orderNumber"].(string)

	w, body = s.do(http.MethodGet, "/checkout/"+orderNumber, user, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	groups := body["data"].(map[string]any)["orderGroups"].([]any)
	s.Require().Len(groups, 1)
	group := groups[0].(map[string]any)
	s.NotContains(group, "orderCompletionCode")
	item := group["orderItems"].([]any)[0].(map[string]any)

	w, body = s.do(http.MethodPatch, "/checkout", user, gin.H{"itemId": item["ID"], "type": "decrement"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(false, body["status"])

	w, body = s.do(http.MethodPatch, "/checkout", user, gin.H{"itemId": item["ID"], "type": "bogus"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Unknown update type provided", body["message"])

	w, _ = s.do(http.MethodGet, fmt.Sprintf("/checkout/%v/providers", group["ID"]), user, nil)
	s.Equal(http.StatusOK, w.Code)

	w, body = s.do(http.MethodGet, "/order", user, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(body["orders"].([]any), 1)
}

func (s *APISuite) TestErrorMapping() {
	user := s.token(middlewares.TokenTypeUser, s.buyer.ID)

	w, body := s.do(http.MethodPost, "/checkout", user, gin.H{"deliveryAddress": "x"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(body["errors"], "cartID")

	w, _ = s.do(http.MethodGet, "/checkout/NOPE-1", user, nil)
	s.Equal(http.StatusNotFound, w.Code)

	w, _ = s.do(http.MethodGet, "/checkout", user, nil)
	s.Equal(http.StatusNotFound, w.Code)

	w, _ = s.do(http.MethodGet, "/logistics/orders", user, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodGet, "/cart", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *APISuite) TestLogisticsRoutes() {
	token := s.token(middlewares.TokenTypeLogistics, s.provider.ID)

	w, body := s.do(http.MethodGet, "/logistics/orders", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Empty(body["data"])

	w, _ = s.do(http.MethodGet, "/logistics/orders?status=lost", token, nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodPatch, "/logistics/orders/9999/transit", token, nil)
	s.Equal(http.StatusNotFound, w.Code)

	w, _ = s.do(http.MethodPatch, "/logistics/orders/9999/complete", token, gin.H{})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APISuite) TestPublicRoutes() {
	w, body := s.do(http.MethodGet, "/region", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(body["data"], 1)

	w, _ = s.do(http.MethodGet, "/", "", nil)
	s.Equal(http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, "/metrics", "", nil)
	s.Equal(http.StatusOK, w.Code)
}
