package controllers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lngateway/lngateway/config"
	"github.com/lngateway/lngateway/controllers"
	"github.com/lngateway/lngateway/lib"
	"github.com/lngateway/lngateway/lib/middlewares"
	"github.com/lngateway/lngateway/lib/responses"
	"github.com/lngateway/lngateway/lib/security"
	"github.com/lngateway/lngateway/lib/service"
	"github.com/lngateway/lngateway/lib/session"
	"github.com/lngateway/lngateway/ln"
)

type mockNode struct {
	payErr error
}

func (m *mockNode) GetInfo(ctx context.Context) (*ln.NodeInfo, error) {
	return &ln.NodeInfo{Alias: "mock", IdentityPubkey: "02mock"}, nil
}

func (m *mockNode) CreateInvoice(ctx context.Context, msat uint64, label, desc string) (string, error) {
	return "lnbc1mock", nil
}

func (m *mockNode) GetBalance(ctx context.Context) (*ln.Balance, error) {
	return &ln.Balance{OnchainSat: 10, ChannelMsat: 2000}, nil
}

func (m *mockNode) ListInvoices(ctx context.Context, limit int) ([]ln.Invoice, error) {
	return []ln.Invoice{{Hash: "aa", State: ln.InvoiceStatePaid}}, nil
}

func (m *mockNode) DecodeInvoice(ctx context.Context, bolt11 string) (*ln.DecodedInvoice, error) {
	return &ln.DecodedInvoice{}, nil
}

func (m *mockNode) PayInvoice(ctx context.Context, bolt11 string) (*ln.PaymentResult, error) {
	if m.payErr != nil {
		return nil, m.payErr
	}
	return &ln.PaymentResult{Hash: "bb", AmountMsat: 5000}, nil
}

func newGatewayFixture(t *testing.T, node ln.LightningClient) *echo.Echo {
	t.Helper()

	hash, err := security.HashPassword("correct horse")
	require.NoError(t, err)

	svc := &service.GatewayService{
		Config: &service.Config{SessionTTL: 60},
		Settings: &config.Settings{
			Api: config.ApiConfig{PasswordHash: hash},
		},
		Node:       ln.NewConn(node),
		Sessions:   session.NewStore(time.Minute),
		SessionKey: []byte("0123456789abcdef0123456789abcdef"),
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: validator.New()}

	authCtrl := controllers.NewAuthController(svc)
	e.POST("/login", authCtrl.Login)
	e.DELETE("/logout", authCtrl.Logout)

	api := e.Group("/api", middlewares.Session(svc))
	api.GET("/info", controllers.NewGetInfoController(svc).GetInfo)
	api.POST("/invoice", controllers.NewAddInvoiceController(svc).AddInvoice)
	api.GET("/balance", controllers.NewBalanceController(svc).Balance)
	api.GET("/invoices", controllers.NewListInvoicesController(svc).ListInvoices)
	api.POST("/decode", controllers.NewDecodeInvoiceController(svc).DecodeInvoice)
	api.POST("/pay", controllers.NewPayInvoiceController(svc).PayInvoice)

	return e
}

func doRequest(e *echo.Echo, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, e *echo.Echo, password string) []*http.Cookie {
	t.Helper()
	rec := doRequest(e, http.MethodPost, "/login", `{"password":"`+password+`"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestLoginWrongPassword(t *testing.T) {
	e := newGatewayFixture(t, &mockNode{})

	rec := doRequest(e, http.MethodPost, "/login", `{"password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid password")
}

func TestLoginMissingPassword(t *testing.T) {
	e := newGatewayFixture(t, &mockNode{})

	rec := doRequest(e, http.MethodPost, "/login", `{}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedEndpointWithoutSession(t *testing.T) {
	e := newGatewayFixture(t, &mockNode{})

	rec := doRequest(e, http.MethodGet, "/api/info", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "login required")
}

func TestLoginThenInfo(t *testing.T) {
	e := newGatewayFixture(t, &mockNode{})
	cookies := login(t, e, "correct horse")

	rec := doRequest(e, http.MethodGet, "/api/info", "", cookies)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"identity_pubkey":"02mock"`)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	e := newGatewayFixture(t, &mockNode{})
	cookies := login(t, e, "correct horse")

	rec := doRequest(e, http.MethodGet, "/api/info", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodDelete, "/logout", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "logged out")

	// the retained cookie must not replay after logout
	rec = doRequest(e, http.MethodGet, "/api/info", "", cookies)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTamperedCookieRejected(t *testing.T) {
	e := newGatewayFixture(t, &mockNode{})

	rec := doRequest(e, http.MethodGet, "/api/info", "", []*http.Cookie{
		{Name: "session", Value: "forged.token.value"},
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddInvoice(t *testing.T) {
	e := newGatewayFixture(t, &mockNode{})
	cookies := login(t, e, "correct horse")

	rec := doRequest(e, http.MethodPost, "/api/invoice", `{"msat":21000,"desc":"coffee"}`, cookies)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bolt11":"lnbc1mock"`)
}

func TestAddInvoiceValidation(t *testing.T) {
	e := newGatewayFixture(t, &mockNode{})
	cookies := login(t, e, "correct horse")

	rec := doRequest(e, http.MethodPost, "/api/invoice", `{"desc":"no amount"}`, cookies)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBalance(t *testing.T) {
	e := newGatewayFixture(t, &mockNode{})
	cookies := login(t, e, "correct horse")

	rec := doRequest(e, http.MethodGet, "/api/balance", "", cookies)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"onchain_sat":10`)
	assert.Contains(t, rec.Body.String(), `"channel_msat":2000`)
}

func TestPayFailureSurfacesReason(t *testing.T) {
	e := newGatewayFixture(t, &mockNode{payErr: &ln.PaymentError{Reason: "no route"}})
	cookies := login(t, e, "correct horse")

	rec := doRequest(e, http.MethodPost, "/api/pay", `{"bolt11":"lnbc1xyz"}`, cookies)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "no route")
}

func TestPayUnsupportedBackendSurfacesExplicitError(t *testing.T) {
	e := newGatewayFixture(t, &mockNode{payErr: fmt.Errorf("pay: %w", ln.ErrUnsupported)})
	cookies := login(t, e, "correct horse")

	rec := doRequest(e, http.MethodPost, "/api/pay", `{"bolt11":"lnbc1xyz"}`, cookies)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "not supported")
}
