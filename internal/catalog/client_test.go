package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StinkyLord/ibuildhw/internal/model"
)

const psuPayload = `[
	{"id": 1, "name": "Seasonic 650", "price": "899 kr", "wattage": "650", "efficiency": "80+ Gold"},
	{"id": "2", "name": "Corsair 850", "price": 1299.0, "wattage": 850},
	{"id": "", "name": "broken entry", "price": 1}
]`

func TestClient_Fetch(t *testing.T) {
	var gotPath, gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(psuPayload))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", "secret", 5*time.Second)
	components, err := client.Fetch(context.Background(), model.CategoryPSU)
	require.NoError(t, err)

	assert.Equal(t, "/api/psus", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	_, err = uuid.Parse(gotRequestID)
	assert.NoError(t, err, "X-Request-ID should be a UUID")

	require.Len(t, components, 2)
	assert.Equal(t, "1", components[0].ID)
	assert.Equal(t, model.Price(899), components[0].Price)
	watts, ok := components[0].SupplyWattage()
	assert.True(t, ok)
	assert.Equal(t, 650, watts)
	assert.Equal(t, model.Price(1299), components[1].Price)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	components, err := NewClient(srv.URL, "", time.Second).Fetch(context.Background(), model.CategoryCase)
	require.NoError(t, err)
	assert.Empty(t, components)
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", time.Second).Fetch(context.Background(), model.CategoryGPU)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, "database unavailable", statusErr.Body)
	assert.Contains(t, err.Error(), "/api/gpus")
}

func TestClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", time.Second).Fetch(context.Background(), model.CategoryCPU)
	assert.Error(t, err)
}

func TestClient_RejectsCategoriesWithoutCatalog(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", "", time.Second)
	for _, category := range []model.Category{model.CategoryPurpose, model.CategoryExtra} {
		_, err := client.Fetch(context.Background(), category)
		assert.ErrorIs(t, err, ErrUnknownCategory, category)
	}
}

func TestClient_URL(t *testing.T) {
	client := NewClient("https://parts.example.com/", "", time.Second)
	assert.Equal(t, "https://parts.example.com/api/motherboards", client.URL(model.CategoryMotherboard))
	assert.Equal(t, "https://parts.example.com/api/ram", client.URL(model.CategoryRAM))
}
