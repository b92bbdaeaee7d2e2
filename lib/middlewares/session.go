package middlewares

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lngateway/lngateway/lib/responses"
	"github.com/lngateway/lngateway/lib/service"
	"github.com/lngateway/lngateway/lib/tokens"
)

// Session gates the protected API group. The check runs before any backend
// call: the cookie token must verify and the server-held ticket must still
// be live. A passing request slides the ticket's expiry and gets a freshly
// signed cookie back.
func Session(svc *service.GatewayService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(tokens.SessionCookieName)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, responses.BadAuthError)
			}

			sessionID, err := tokens.ParseSessionToken(svc.SessionKey, cookie.Value)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, responses.BadAuthError)
			}

			if !svc.Sessions.Touch(sessionID) {
				return c.JSON(http.StatusUnauthorized, responses.BadAuthError)
			}

			if token, err := tokens.GenerateSessionToken(svc.SessionKey, sessionID, svc.SessionTTL()); err == nil {
				c.SetCookie(SessionCookie(token, svc.SessionTTL()))
			}

			c.Set("SessionID", sessionID)
			return next(c)
		}
	}
}

// SessionCookie builds the session cookie shared by login and renewal.
func SessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     tokens.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
