package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lngateway/lngateway/lib/middlewares"
	"github.com/lngateway/lngateway/lib/responses"
	"github.com/lngateway/lngateway/lib/security"
	"github.com/lngateway/lngateway/lib/service"
	"github.com/lngateway/lngateway/lib/tokens"
)

// AuthController : Login / logout handlers
type AuthController struct {
	svc *service.GatewayService
}

func NewAuthController(svc *service.GatewayService) *AuthController {
	return &AuthController{svc: svc}
}

// Login verifies the submitted password against the stored argon2id hash and
// opens a session. A failed attempt is always a plain 401; whether the
// stored hash was malformed is deliberately not distinguishable.
func (controller *AuthController) Login(c echo.Context) error {
	type RequestBody struct {
		Password string `json:"password" validate:"required"`
	}

	var body RequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusUnauthorized, responses.InvalidPasswordError)
	}

	if !security.VerifyPassword(controller.svc.Settings.Api.PasswordHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, responses.InvalidPasswordError)
	}

	sessionID, err := controller.svc.Sessions.Create()
	if err != nil {
		return err
	}
	token, err := tokens.GenerateSessionToken(controller.svc.SessionKey, sessionID, controller.svc.SessionTTL())
	if err != nil {
		return err
	}
	c.SetCookie(middlewares.SessionCookie(token, controller.svc.SessionTTL()))

	return c.JSON(http.StatusOK, echo.Map{"status": "success"})
}

// Logout destroys the server-held ticket, so a retained cookie cannot be
// replayed, and expires the cookie itself.
func (controller *AuthController) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(tokens.SessionCookieName); err == nil {
		if sessionID, err := tokens.ParseSessionToken(controller.svc.SessionKey, cookie.Value); err == nil {
			controller.svc.Sessions.Destroy(sessionID)
		}
	}

	expired := middlewares.SessionCookie("", 0)
	expired.MaxAge = -1
	c.SetCookie(expired)

	return c.JSON(http.StatusOK, echo.Map{"status": "logged out"})
}
