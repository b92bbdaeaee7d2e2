package responses

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"

	"github.com/lngateway/lngateway/ln"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

var BadAuthError = ErrorResponse{
	Error: "login required",
}

var InvalidPasswordError = ErrorResponse{
	Error: "invalid password",
}

var BadArgumentsError = ErrorResponse{
	Error: "bad arguments",
}

// HTTPErrorHandler maps backend errors to the API's error body. Every
// failure carries the underlying message; nothing is swallowed or retried
// here. Payment failures, unsupported operations and protocol errors all
// surface as 500 with their reason text, per the contract.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			hub.CaptureException(err)
		})
	}

	var paymentErr *ln.PaymentError
	switch {
	case errors.As(err, &paymentErr),
		errors.Is(err, ln.ErrUnreachable),
		errors.Is(err, ln.ErrProtocol),
		errors.Is(err, ln.ErrDecode),
		errors.Is(err, ln.ErrUnsupported):
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, ErrorResponse{Error: fmt.Sprintf("%v", he.Message)})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}
