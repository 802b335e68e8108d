package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointReaderRead(t *testing.T) {
	var gotURI, gotAuth, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.RequestURI
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("# Page\n\nbody"))
	}))
	defer srv.Close()

	r := NewEndpointReader(srv.URL+"/", "secret")

	body, err := r.Read(context.Background(), "https://ex.com/page")
	require.NoError(t, err)
	assert.Equal(t, "# Page\n\nbody", body)
	assert.Equal(t, "/https://ex.com/page", gotURI)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, defaultUserAgent, gotUA)
}

func TestEndpointReaderNoKey(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	_, err := NewEndpointReader(srv.URL, "", WithUserAgent("custom/1.0")).Read(context.Background(), "https://ex.com")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestEndpointReaderStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := NewEndpointReader(srv.URL, "k")
	_, err := r.Read(context.Background(), "https://ex.com/a")
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, srv.URL+"/https://ex.com/a", se.URL)
	assert.Contains(t, err.Error(), "500")
}

func TestEndpointReaderTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	r := NewEndpointReader(srv.URL, "k", WithTimeout(50*time.Millisecond))
	_, err := r.Read(context.Background(), "https://ex.com")
	assert.Error(t, err)
}

func TestNewEndpointReaderDefaults(t *testing.T) {
	r := NewEndpointReader("", "k")
	assert.Equal(t, "https://r.jina.ai/https://ex.com/x", r.RequestURL("https://ex.com/x"))
	assert.Equal(t, defaultTimeout, r.client.Timeout)

	client := &http.Client{}
	r = NewEndpointReader("http://reader.local", "k", WithHTTPClient(client))
	assert.Same(t, client, r.client)
}

func TestEndpointReaderTimeoutKeepsCallerClient(t *testing.T) {
	shared := &http.Client{Timeout: 5 * time.Second}

	r := NewEndpointReader("http://reader.local", "k", WithHTTPClient(shared), WithTimeout(time.Second))
	assert.Equal(t, 5*time.Second, shared.Timeout)
	assert.Equal(t, time.Second, r.client.Timeout)
	assert.NotSame(t, shared, r.client)

	r = NewEndpointReader("http://reader.local", "k", WithHTTPClient(nil), WithTimeout(time.Second))
	require.NotNil(t, r.client)
	assert.Equal(t, time.Second, r.client.Timeout)
}
