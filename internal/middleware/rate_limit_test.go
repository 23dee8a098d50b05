package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/send-verify/:userId",
		RateLimit("to many request please wait for 15 minutes", 5, 15*time.Minute),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	hit := func(userID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/send-verify/"+userID, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("budget of five then 429", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			require.Equal(t, http.StatusOK, hit("u1").Code)
		}

		rec := hit("u1")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Contains(t, rec.Body.String(), "to many request please wait for 15 minutes")
	})

	t.Run("budget is tracked per key", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, hit("u2").Code)
	})
}
