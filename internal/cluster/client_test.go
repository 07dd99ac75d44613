package cluster

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

func TestLabelSuccess(t *testing.T) {
	var gotBody request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"clusters": []map[string]string{{"label": "family"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	label, err := c.Label(context.Background(), "t1", "Call mom")

	require.NoError(t, err)
	assert.Equal(t, "family", label)
	require.Len(t, gotBody.Tasks, 1)
	assert.Equal(t, "t1", gotBody.Tasks[0].ID)
	assert.Equal(t, "Call mom", gotBody.Tasks[0].Title)
}

func TestLabelUnconfigured(t *testing.T) {
	c := New("", time.Second)
	_, err := c.Label(context.Background(), "t1", "Call mom")
	assert.Error(t, err)
}

func TestLabelServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Label(context.Background(), "t1", "Call mom")
	assert.Error(t, err)
}

func TestLabelHTMLGuard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>maintenance</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Label(context.Background(), "t1", "Call mom")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "html")
}

func TestLabelEmptyClusters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"clusters": []}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Label(context.Background(), "t1", "Call mom")
	assert.Error(t, err)
}

func TestLabelRetriesThenSucceeds(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			http.Error(w, "flaky", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"clusters": [{"label": "errands"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	label, err := c.Label(context.Background(), "t1", "Buy milk")

	require.NoError(t, err)
	assert.Equal(t, "errands", label)
	assert.Equal(t, 2, calls)
}
