package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/credchain/credential-registry/internal/config"
	"github.com/credchain/credential-registry/internal/middleware"
)

// testCfg uses bcrypt's minimum cost so handler tests stay fast. The secret
// is per-test-run state, never a package-level global.
var testCfg = config.Config{
	JWTSecret:    "handler-test-secret",
	AccessTTLMin: 24 * 60,
	BcryptCost:   4,
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// newTestContext builds an echo context carrying a JSON body, with the DTO
// validator installed the same way main wires it.
func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asIdentity injects the context values the JWT middleware would have set.
func asIdentity(c echo.Context, userID uint64, email, role string) {
	c.Set(middleware.CtxUserID, userID)
	c.Set(middleware.CtxEmail, email)
	c.Set(middleware.CtxRole, role)
}

// decodeBody unmarshals a recorded JSON response into a generic map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
