package qdrant_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"assistant-kit/pkg/qdrant"
)

func TestQdrantClient(t *testing.T) {
	var (
		created    []qdrant.CreateCollectionRequest
		lastSearch qdrant.SearchRequest
		lastAPIKey string
	)
	existing := map[string]bool{"intents": true}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		lastAPIKey = r.Header.Get("api-key")

		path := r.URL.Path

		switch {
		case r.Method == http.MethodGet && strings.HasSuffix(path, "/exists"):
			name := strings.TrimSuffix(strings.TrimPrefix(path, "/collections/"), "/exists")
			if name == "cause_500" {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"status":{"error":"storage offline"}}`))
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"result": map[string]bool{"exists": existing[name]},
			})

		case r.Method == http.MethodPut && strings.HasSuffix(path, "/points"):
			if r.URL.Query().Get("wait") != "true" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			var req qdrant.UpsertPointsRequest
			json.NewDecoder(r.Body).Decode(&req)
			if len(req.Points) > 0 {
				if val, ok := req.Points[0].Payload["cause_500"]; ok && val == true {
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
			}
			w.WriteHeader(http.StatusOK)

		case r.Method == http.MethodPut && strings.HasPrefix(path, "/collections/"):
			var req qdrant.CreateCollectionRequest
			json.NewDecoder(r.Body).Decode(&req)
			req.Name = strings.TrimPrefix(path, "/collections/")
			created = append(created, req)
			w.WriteHeader(http.StatusCreated)

		case r.Method == http.MethodPost && strings.HasSuffix(path, "/points/search"):
			json.NewDecoder(r.Body).Decode(&lastSearch)
			if lastSearch.Limit == 999 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{
				"result": [
					{"id": "5b2f6f0e-4b9c-5c2f-9d55-8c1a1f3f0a11", "version": 1, "score": 0.95, "payload": {"intent": "purchase a widget"}},
					{"id": 42, "version": 1, "score": 0.31, "payload": {}}
				],
				"status": "ok",
				"time": 0.05
			}`))

		case r.Method == http.MethodPost && strings.HasSuffix(path, "/points/delete"):
			var req qdrant.DeletePointsRequest
			json.NewDecoder(r.Body).Decode(&req)
			if len(req.Points) > 0 && req.Points[0] == "cause_500" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	client := qdrant.NewClient(ts.URL + "/").WithAPIKey("secret")

	t.Run("CollectionExists", func(t *testing.T) {
		ok, err := client.CollectionExists(context.Background(), "intents")
		if err != nil || !ok {
			t.Fatalf("expected intents to exist, got %v %v", ok, err)
		}
		if lastAPIKey != "secret" {
			t.Errorf("api-key header not sent, got %q", lastAPIKey)
		}
	})

	t.Run("CollectionExists Error", func(t *testing.T) {
		_, err := client.CollectionExists(context.Background(), "cause_500")
		if err == nil || !strings.Contains(err.Error(), "storage offline") {
			t.Fatalf("expected decoded error, got %v", err)
		}
	})

	t.Run("EnsureCollection", func(t *testing.T) {
		created = nil
		if err := client.EnsureCollection(context.Background(), "intents", 256); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(created) != 0 {
			t.Fatalf("existing collection should not be recreated")
		}

		if err := client.EnsureCollection(context.Background(), "fresh", 256); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(created) != 1 || created[0].Name != "fresh" || created[0].Vectors.Size != 256 || created[0].Vectors.Distance != qdrant.DistanceCosine {
			t.Errorf("unexpected create request: %+v", created)
		}
	})

	t.Run("UpsertPoints Success", func(t *testing.T) {
		err := client.UpsertPoints(context.Background(), "intents", qdrant.UpsertPointsRequest{
			Points: []qdrant.Point{
				{
					ID:      "5b2f6f0e-4b9c-5c2f-9d55-8c1a1f3f0a11",
					Payload: map[string]interface{}{"intent": "purchase a widget"},
					Vector:  []float32{0.1, 0.2},
				},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("UpsertPoints Error", func(t *testing.T) {
		err := client.UpsertPoints(context.Background(), "intents", qdrant.UpsertPointsRequest{
			Points: []qdrant.Point{{ID: 1, Payload: map[string]interface{}{"cause_500": true}}},
		})
		if err == nil {
			t.Fatalf("expected error from 500 response")
		}
	})

	t.Run("SearchPoints Success", func(t *testing.T) {
		threshold := 0.3
		resp, err := client.SearchPoints(context.Background(), "intents", qdrant.SearchRequest{
			Limit:          1,
			WithPayload:    true,
			ScoreThreshold: &threshold,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lastSearch.ScoreThreshold == nil || *lastSearch.ScoreThreshold != 0.3 {
			t.Errorf("score_threshold not sent: %+v", lastSearch)
		}
		if len(resp.Result) != 2 {
			t.Fatalf("unexpected search results: %v", resp)
		}
		if resp.Result[0].ID.String() != "5b2f6f0e-4b9c-5c2f-9d55-8c1a1f3f0a11" {
			t.Errorf("unexpected uuid id: %s", resp.Result[0].ID)
		}
		if resp.Result[1].ID.String() != "42" {
			t.Errorf("unexpected numeric id: %s", resp.Result[1].ID)
		}
	})

	t.Run("SearchPoints Error", func(t *testing.T) {
		_, err := client.SearchPoints(context.Background(), "intents", qdrant.SearchRequest{Limit: 999})
		if err == nil {
			t.Fatalf("expected error from 500 response")
		}
	})

	t.Run("DeletePoints", func(t *testing.T) {
		if err := client.DeletePoints(context.Background(), "intents", []string{"123", "456"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := client.DeletePoints(context.Background(), "intents", []string{"cause_500"}); err == nil {
			t.Fatalf("expected error from 500 response")
		}
	})

	t.Run("Context Cancelation Error", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := client.CreateCollection(ctx, qdrant.CreateCollectionRequest{Name: "test"}); err == nil {
			t.Errorf("expected error on canceled context")
		}
		if _, err := client.SearchPoints(ctx, "test", qdrant.SearchRequest{}); err == nil {
			t.Errorf("expected error on canceled context")
		}
	})
}
