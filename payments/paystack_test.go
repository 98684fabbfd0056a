package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaystackGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/transaction/initialize":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "jane@example.com", body["email"])
			assert.Equal(t, float64(250000), body["amount"])
			_, _ = w.Write([]byte(`{"status":true,"message":"ok","data":{"authorization_url":"https://pay.example/x","access_code":"acc","reference":"ref-9"}}`))
		case "/transaction/verify/ref-9":
			_, _ = w.Write([]byte(`{"status":true,"message":"ok","data":{"status":"success","reference":"ref-9"}}`))
		case "/transaction/verify/ref-abandoned":
			_, _ = w.Write([]byte(`{"status":true,"message":"ok","data":{"status":"abandoned","reference":"ref-abandoned"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status":false,"message":"not found"}`))
		}
	}))
	defer srv.Close()

	gw := NewPaystackGateway(srv.URL, "sk_test", time.Second)
	ctx := context.Background()

	started, err := gw.Initialize(ctx, "jane@example.com", 250000, "ref-9")
	require.NoError(t, err)
	assert.Equal(t, Initialization{AuthorizationURL: "https://pay.example/x", AccessCode: "acc", Reference: "ref-9"}, started)

	ok, err := gw.Verify(ctx, "ref-9")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = gw.Verify(ctx, "ref-abandoned")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = gw.Verify(ctx, "ref-unknown")
	assert.Error(t, err)
}
