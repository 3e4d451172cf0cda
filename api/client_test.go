package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client := NewClient()

	assert.NotNil(t, client)
	assert.Equal(t, "https://api.author.today", client.baseURL)
	assert.Equal(t, "guest", client.token)
}

func TestClient_AuthHeader(t *testing.T) {
	var capturedHeaders http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedHeaders = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)
	_, err := client.get(context.Background(), "/test")
	require.NoError(t, err)

	assert.Equal(t, "Bearer guest", capturedHeaders.Get("Authorization"))
	assert.Equal(t, "application/json", capturedHeaders.Get("Accept"))
}

func TestClient_ErrorResponse(t *testing.T) {
	tests := []struct {
		name           string
		statusCode     int
		responseBody   string
		expectedErrMsg string
	}{
		{
			name:           "404 with message",
			statusCode:     404,
			responseBody:   `{"message": "Work not found"}`,
			expectedErrMsg: "Work not found",
		},
		{
			name:           "500 with message",
			statusCode:     500,
			responseBody:   `{"message": "Internal server error"}`,
			expectedErrMsg: "Internal server error",
		},
		{
			name:           "plain text body",
			statusCode:     502,
			responseBody:   `bad gateway`,
			expectedErrMsg: "API error (status 502)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.responseBody))
			}))
			defer server.Close()

			client := NewClientWithBaseURL(server.URL)
			_, err := client.get(context.Background(), "/test")

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErrMsg)
		})
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.get(ctx, "/test")
	require.Error(t, err)
}

func TestClient_URLConstruction(t *testing.T) {
	var capturedPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)

	tests := []struct {
		inputPath    string
		expectedPath string
	}{
		{"/v1/work/1/meta-info", "/v1/work/1/meta-info"},
		{"v1/work/1/meta-info", "/v1/work/1/meta-info"},
	}

	for _, tt := range tests {
		_, err := client.get(context.Background(), tt.inputPath)
		require.NoError(t, err)
		assert.Equal(t, tt.expectedPath, capturedPath)
	}
}
