package bing

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bingrab/pkg/errors"
)

func newTestClient(serverURL string) *Client {
	c := NewClient(5*time.Second, nil)
	c.SetBaseURL(serverURL)
	return c
}

func TestFetchResultPage(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "puppy", r.URL.Query().Get("q"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte("page body"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	body, err := client.FetchResultPage(SearchRequest{Query: "puppy", AdultFilter: true, Count: 35})

	require.NoError(t, err)
	assert.Equal(t, "page body", body)
	assert.Equal(t, SearchEndpoint, gotPath)
}

func TestFetchResultPageServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchResultPage(SearchRequest{Query: "puppy", AdultFilter: true})

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNetwork))

	var typed *errors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, http.StatusServiceUnavailable, typed.Code)
}

func TestFetchResultPageConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	client := newTestClient(server.URL)
	_, err := client.FetchResultPage(SearchRequest{Query: "puppy", AdultFilter: true})

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNetwork))
}

func TestDownloadImage(t *testing.T) {
	imageData := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(imageData)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	data, err := client.DownloadImage(server.URL + "/image.jpg")

	require.NoError(t, err)
	assert.Equal(t, imageData, data)
}

func TestDownloadImageNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.DownloadImage(server.URL + "/missing.jpg")

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNetwork))
}

func TestSetHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "custom-agent", r.Header.Get("User-Agent"))
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.SetHeader("User-Agent", "custom-agent")

	_, err := client.FetchResultPage(SearchRequest{Query: "puppy", AdultFilter: true})
	require.NoError(t, err)
}
