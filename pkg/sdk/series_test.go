package sdk_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/syncscope/syncscope/pkg/sdk"
)

func TestListVersions(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/versions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"versions":["cardano-db-sync 13.6.0.4 mainnet","cardano-db-sync 13.5.0.2 mainnet"]}`)); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	}))
	defer srv.Close()

	s := sdk.NewSDK(sdk.Config{ServerURL: srv.URL})

	versions, err := s.ListVersions()
	if err != nil {
		t.Fatalf("failed to list versions: %v", err)
	}
	if len(versions) != 2 {
		t.Fatalf("expected 2 versions, got %d", len(versions))
	}
	if versions[0] != "cardano-db-sync 13.6.0.4 mainnet" {
		t.Errorf("unexpected first version: %s", versions[0])
	}
}

func TestSeries(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/series" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("versions"); got != "v 1,v 2" {
			t.Errorf("unexpected versions query: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"versions":["v 1","v 2"],"memory":{"v 1":[{"key":5,"value":100}]},"cpu":{"v 1":[],"v 2":[]}}`)); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	}))
	defer srv.Close()

	s := sdk.NewSDK(sdk.Config{ServerURL: srv.URL})

	set, err := s.Series([]string{"v 1", "v 2"})
	if err != nil {
		t.Fatalf("failed to fetch series: %v", err)
	}
	if len(set.Versions) != 2 {
		t.Fatalf("expected 2 versions, got %d", len(set.Versions))
	}
	if len(set.Memory["v 1"]) != 1 {
		t.Fatalf("expected 1 memory point, got %d", len(set.Memory["v 1"]))
	}
	if set.Memory["v 1"][0].Key != 5 || set.Memory["v 1"][0].Value != 100 {
		t.Errorf("unexpected memory point: %+v", set.Memory["v 1"][0])
	}
}

func TestSeriesUnexpectedStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := sdk.NewSDK(sdk.Config{ServerURL: srv.URL})

	if _, err := s.Series([]string{"v1"}); err == nil {
		t.Fatal("expected error on 500 response")
	}
}

func TestSeriesSetJSONFieldNames(t *testing.T) {
	t.Parallel()

	set := sdk.SeriesSet{
		Versions: []string{"v1"},
		Memory:   map[string][]sdk.Point{"v1": {{Key: 10, Value: 512.5}}},
		CPU:      map[string][]sdk.Point{"v1": {}},
	}

	data, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("failed to marshal set: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("failed to unmarshal raw: %v", err)
	}

	for _, key := range []string{"versions", "memory", "cpu"} {
		if _, exists := raw[key]; !exists {
			t.Errorf("expected %q key in payload", key)
		}
	}
}
