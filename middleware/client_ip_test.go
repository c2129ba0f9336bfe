package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestClientIPPrecedence(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		xff    string
		xri    string
		remote string
		want   string
	}{
		{"forwarded chain wins", "203.0.113.9, 10.0.0.1", "198.51.100.4", "192.0.2.1:5555", "203.0.113.9"},
		{"unparseable forwarded entry skipped", "not-an-ip, 203.0.113.9", "", "192.0.2.1:5555", "203.0.113.9"},
		{"real ip when forwarded absent", "", "198.51.100.4", "192.0.2.1:5555", "198.51.100.4"},
		{"real ip must parse", "", "garbage", "192.0.2.1:5555", "192.0.2.1"},
		{"remote host without port kept as-is", "", "", "192.0.2.7", "192.0.2.7"},
		{"remote host stripped of port", "", "", "192.0.2.1:5555", "192.0.2.1"},
	}

	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.RemoteAddr = tc.remote
		if tc.xff != "" {
			c.Request.Header.Set("X-Forwarded-For", tc.xff)
		}
		if tc.xri != "" {
			c.Request.Header.Set("X-Real-IP", tc.xri)
		}

		if got := clientIP(c); got != tc.want {
			t.Errorf("%s: expected %q got %q", tc.name, tc.want, got)
		}
	}
}
