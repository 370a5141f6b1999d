package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfund-labs/mf-backend/internal/domain/entity"
)

func newTestES(t *testing.T, status int, seen func(r *http.Request, body map[string]any)) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if seen != nil {
			seen(r, body)
		}
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return es
}

func TestIndexUser(t *testing.T) {
	var path string
	var doc map[string]any
	es := newTestES(t, http.StatusCreated, func(r *http.Request, body map[string]any) {
		path = r.URL.Path
		doc = body
	})
	ix := NewUserIndexer(es, "users")

	err := ix.IndexUser(context.Background(), &entity.User{
		ID: "65f1c0ffee0000000000002a", Email: "a@x.com", Name: "Alice", Password: "$2a$10$secret",
		Provider: entity.ProviderGoogle, Role: entity.RoleUser, KYCStatus: entity.KYCPending,
		CreatedAt: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "/users/_doc/65f1c0ffee0000000000002a", path)
	assert.Equal(t, "a@x.com", doc["email"])
	assert.Equal(t, "google", doc["provider"])
	assert.Equal(t, "PENDING", doc["kyc_status"])
	assert.NotContains(t, doc, "password")
	assert.NotContains(t, doc, "profile_picture")
}

func TestIndexUser_ErrorStatus(t *testing.T) {
	ix := NewUserIndexer(newTestES(t, http.StatusBadRequest, nil), "users")

	err := ix.IndexUser(context.Background(), &entity.User{ID: "1"})
	assert.ErrorContains(t, err, "400")
}

func TestIndexUser_Disabled(t *testing.T) {
	var ix *UserIndexer
	assert.NoError(t, ix.IndexUser(context.Background(), &entity.User{ID: "1"}))
	assert.NoError(t, NewUserIndexer(nil, "users").IndexUser(context.Background(), &entity.User{ID: "1"}))
}
