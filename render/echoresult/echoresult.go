// Package echoresult renders response.Result values on echo.
package echoresult

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/leeforge/webresult/logging"
	"github.com/leeforge/webresult/render"
	"github.com/leeforge/webresult/response"
)

// Write renders res on c.
//
// When res cannot be encoded the fallback body is written and the encode
// error is returned, so echo's error handler sees it on a committed
// response.
func Write(c echo.Context, res response.Result) error {
	out, err := render.Render(res)
	if err != nil {
		fb := render.Fallback()
		copyHeader(c, fb)
		if werr := c.Blob(fb.Status, render.ContentTypeJSON, fb.Body); werr != nil {
			return errors.Wrap(werr, "echoresult: write fallback")
		}
		return err
	}

	copyHeader(c, out)
	return c.Blob(out.Status, render.ContentTypeJSON, out.Body)
}

// Handler adapts a Result-returning function to echo.
func Handler(fn func(echo.Context) response.Result) echo.HandlerFunc {
	return func(c echo.Context) error {
		return Write(c, fn(c))
	}
}

// HTTPErrorHandler renders errors returned by echo handlers and middleware
// as Error Responses:
//   - anything carrying error objects, and validator errors, go through
//     response.FromError;
//   - *echo.HTTPError keeps its code and message;
//   - other errors are logged and answered with a generic 500.
func HTTPErrorHandler(logger logging.Logger) echo.HTTPErrorHandler {
	if logger == nil {
		logger = logging.Global()
	}
	return func(err error, c echo.Context) {
		log := logging.WithContext(logger, c.Request().Context())
		if c.Response().Committed {
			log.Error("render.after_commit", zap.Error(err))
			return
		}

		if werr := Write(c, response.Fail(toErrorResponse(err, log, c))); werr != nil {
			log.Error("render.encode_failed", zap.Error(werr))
		}
	}
}

func toErrorResponse(err error, log logging.Logger, c echo.Context) response.ErrorResponse {
	var responder response.ErrorResponder
	var invalid validator.ValidationErrors
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &responder), errors.As(err, &invalid):
		return response.FromError(err)
	case errors.As(err, &httpErr):
		detail := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			detail = msg
		}
		return response.FromErrorObject(response.ErrorObjectf(httpErr.Code, "%s", detail))
	}

	log.Error("http.unhandled_error",
		zap.Error(err),
		zap.String("method", c.Request().Method),
		zap.String("path", c.Request().URL.Path),
	)
	return response.FromErrorObject(
		response.ErrorObjectf(http.StatusInternalServerError, "internal server error").
			With(response.WithStatusTitle()),
	)
}

func copyHeader(c echo.Context, out *render.Rendered) {
	h := c.Response().Header()
	for k, v := range out.Header {
		h[k] = v
	}
}
