package sonar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neox5/sonarbox/internal/config"
)

func newClient(url, token string) *Client {
	return NewClient(&config.SonarConfig{
		URL:     url,
		Token:   token,
		Timeout: 5 * time.Second,
	})
}

func TestSearchProjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/components/search", r.URL.Path)
		assert.Equal(t, ProjectQualifier, r.URL.Query().Get("qualifiers"))
		assert.Equal(t, "500", r.URL.Query().Get("ps"))
		assert.Equal(t, "2", r.URL.Query().Get("p"))

		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "squ_token", user)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"paging": {"pageIndex": 2, "pageSize": 500, "total": 501},
			"components": [{"key": "P2", "name": "Proj Two", "qualifier": "TRK"}]
		}`))
	}))
	defer srv.Close()

	resp, err := newClient(srv.URL, "squ_token").SearchProjects(context.Background(), 500, 2)
	require.NoError(t, err)

	assert.Equal(t, 501, resp.Paging.Total)
	require.Len(t, resp.Components, 1)
	assert.Equal(t, "P2", resp.Components[0].Key)
	assert.Equal(t, "Proj Two", resp.Components[0].Name)
}

func TestListBranches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/project_branches/list", r.URL.Path)
		assert.Equal(t, "P1", r.URL.Query().Get("project"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"branches": [
				{"name": "main", "isMain": true, "type": "BRANCH"},
				{"name": "develop", "isMain": false, "type": "BRANCH"}
			]
		}`))
	}))
	defer srv.Close()

	resp, err := newClient(srv.URL, "").ListBranches(context.Background(), "P1")
	require.NoError(t, err)

	require.Len(t, resp.Branches, 2)
	assert.Equal(t, "main", resp.Branches[0].Name)
	assert.True(t, resp.Branches[0].IsMain)
	assert.Equal(t, "develop", resp.Branches[1].Name)
}

func TestMeasures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/measures/component", r.URL.Path)
		assert.Equal(t, "P1", r.URL.Query().Get("component"))
		assert.Equal(t, "main", r.URL.Query().Get("branch"))
		assert.Equal(t, "bugs,coverage", r.URL.Query().Get("metricKeys"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"component": {
				"key": "P1",
				"name": "Proj One",
				"measures": [
					{"metric": "bugs", "value": "7"},
					{"metric": "coverage", "periods": [{"index": 1, "value": "83.4"}]}
				]
			}
		}`))
	}))
	defer srv.Close()

	resp, err := newClient(srv.URL, "").Measures(context.Background(), "P1", "main", []string{"bugs", "coverage"})
	require.NoError(t, err)

	require.Len(t, resp.Component.Measures, 2)
	assert.Equal(t, "bugs", resp.Component.Measures[0].Metric)
	assert.Equal(t, "7", resp.Component.Measures[0].Value)
	assert.Empty(t, resp.Component.Measures[1].Value)
	require.Len(t, resp.Component.Measures[1].Periods, 1)
	assert.Equal(t, "83.4", resp.Component.Measures[1].Periods[0].Value)
}

func TestErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no access", http.StatusForbidden)
	}))
	defer srv.Close()

	client := newClient(srv.URL, "")

	_, err := client.SearchProjects(context.Background(), 500, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedStatus))

	_, err = client.ListBranches(context.Background(), "P1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedStatus))

	_, err = client.Measures(context.Background(), "P1", "main", []string{"bugs"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedStatus))
}

func TestUnreachableServer(t *testing.T) {
	client := newClient("http://127.0.0.1:1", "")

	_, err := client.SearchProjects(context.Background(), 500, 1)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnexpectedStatus))
}
