package response

import (
	"encoding/json"
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shopping-api/domain/shared"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createBody struct {
	UserIdentifier string `json:"userIdentifier" binding:"required"`
	Items          []struct {
		ProductIdentifier string `json:"productIdentifier" binding:"required"`
	} `json:"items" binding:"required,min=1,dive"`
}

func run(handler gin.HandlerFunc, body string) (*httptest.ResponseRecorder, ErrorResponse) {
	gin.SetMode(gin.TestMode)
	UseJSONFieldNames()

	engine := gin.New()
	engine.POST("/", func(c *gin.Context) {
		c.Set(RequestIDKey, "req-9")
		handler(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	var out ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestHandleAppError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"shopping not found", shared.NewNotFoundError("shopping", "7"), http.StatusNotFound, "SHOPPING_NOT_FOUND", ""},
		{"product not found", shared.NewNotFoundError("product", "p"), http.StatusNotFound, "PRODUCT_NOT_FOUND", ""},
		{"invalid", shared.NewValidationError("shopping", "startDate", "startDate is required"), http.StatusBadRequest, "VALIDATION_ERROR", ""},
		{"internal hides message", stdErrors.New("dial tcp 10.0.0.1: refused"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := run(func(c *gin.Context) { HandleAppError(c, tt.err) }, "")
			require.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.status, body.Status)
			assert.Equal(t, tt.code, body.ErrorCode)
			assert.Equal(t, "req-9", body.RequestID)
			if tt.message != "" {
				assert.Equal(t, tt.message, body.Message)
			}
			assert.NotContains(t, w.Body.String(), "10.0.0.1")
		})
	}
}

func TestHandleBindError(t *testing.T) {
	bind := func(c *gin.Context) {
		var req createBody
		err := c.ShouldBindJSON(&req)
		require.Error(t, err)
		HandleBindError(c, err)
	}

	w, body := run(bind, `{"items":[{"productIdentifier":"a"},{}]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", body.ErrorCode)
	assert.Equal(t, "invalid fields: [userIdentifier: must not be empty] [items[1].productIdentifier: must not be empty]", body.Message)

	_, body = run(bind, `not json`)
	assert.Equal(t, "malformed request body", body.Message)
}

func TestTimestampUsesLocation(t *testing.T) {
	SetLocation(time.UTC)
	_, body := run(func(c *gin.Context) { HandleAppError(c, shared.ErrNotFound) }, "")

	ts, err := time.ParseInLocation(TimestampLayout, body.Timestamp, time.UTC)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}
