package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDefaultKeyFunc(t *testing.T) {
	cases := []struct {
		intention string
		header    string
		trustXFF  bool
		setup     func(r *http.Request)
		want      string
	}{
		{
			"header wins",
			"X-Client",
			true,
			func(r *http.Request) {
				r.Header.Set("X-Client", " client-123 ")
				r.Header.Set("X-Forwarded-For", "1.2.3.4")
			},
			"client-123",
		},
		{
			"blank header falls through to remote",
			"X-Client",
			false,
			func(r *http.Request) { r.Header.Set("X-Client", "   ") },
			"10.0.0.9",
		},
		{
			"first xff address",
			"",
			true,
			func(r *http.Request) { r.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8") },
			"1.2.3.4",
		},
		{
			"xff ignored when untrusted",
			"",
			false,
			func(r *http.Request) { r.Header.Set("X-Forwarded-For", "1.2.3.4") },
			"10.0.0.9",
		},
		{
			"remote addr without port",
			"",
			false,
			func(r *http.Request) { r.RemoteAddr = "pipe" },
			"pipe",
		},
		{
			"nothing at all",
			"",
			false,
			func(r *http.Request) { r.RemoteAddr = "" },
			"unknown",
		},
	}

	for _, tc := range cases {
		t.Run(tc.intention, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "http://example/load", nil)
			r.RemoteAddr = "10.0.0.9:5555"
			tc.setup(r)

			if got := DefaultKeyFunc(tc.header, tc.trustXFF)(r); got != tc.want {
				t.Errorf("DefaultKeyFunc() = %q, want %q", got, tc.want)
			}
		})
	}
}
