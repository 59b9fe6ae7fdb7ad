package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	reqctx "github.com/yatralink/bustrack/internal/pkg/context"
)

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("generates id", func(t *testing.T) {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		err := RequestIDMiddleware()(func(c echo.Context) error { return nil })(c)

		assert.NoError(t, err)
		_, parseErr := uuid.Parse(rec.Header().Get(HeaderRequestID))
		assert.NoError(t, parseErr)
		assert.Equal(t, rec.Header().Get(HeaderRequestID), c.Get("request_id"))
	})

	t.Run("keeps caller id", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "from-caller")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		var fromContext string
		err := RequestIDMiddleware()(func(c echo.Context) error {
			fromContext = reqctx.GetRequestID(c.Request().Context())
			return nil
		})(c)

		assert.NoError(t, err)
		assert.Equal(t, "from-caller", rec.Header().Get(HeaderRequestID))
		assert.Equal(t, "from-caller", fromContext, "request context carries the id")
	})
}
