package exporter

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neox5/sonarbox/internal/catalog"
)

func familyNames(t *testing.T, r *Registry) []string {
	t.Helper()
	families, err := r.Gatherer().Gather()
	require.NoError(t, err)

	names := make([]string, len(families))
	for i, f := range families {
		names[i] = f.GetName()
	}
	return names
}

func TestRebuildMatchesEnabledSet(t *testing.T) {
	r := NewRegistry()

	r.Rebuild([]catalog.Metric{
		{Key: "bugs", Description: "Bugs"},
		{Key: "coverage", Description: "Coverage"},
	})
	r.SetValue("bugs", Labels{ProjectKey: "P1", ProjectName: "Proj One", Branch: "main"}, 7)
	r.SetValue("coverage", Labels{ProjectKey: "P1", ProjectName: "Proj One", Branch: "main"}, 83.4)

	assert.ElementsMatch(t, []string{"sonarqube_bugs", "sonarqube_coverage"}, familyNames(t, r))

	// Disabling coverage removes its gauge on the next rebuild
	r.Rebuild([]catalog.Metric{{Key: "bugs", Description: "Bugs"}})
	assert.Empty(t, familyNames(t, r), "rebuild must clear previous values too")

	r.SetValue("bugs", Labels{ProjectKey: "P1", ProjectName: "Proj One", Branch: "main"}, 8)
	assert.Equal(t, []string{"sonarqube_bugs"}, familyNames(t, r))
}

func TestRebuildEmptySet(t *testing.T) {
	r := NewRegistry()
	r.Rebuild([]catalog.Metric{{Key: "bugs", Description: "Bugs"}})
	r.SetValue("bugs", Labels{ProjectKey: "P1", ProjectName: "Proj One", Branch: "main"}, 7)

	r.Rebuild(nil)
	assert.Empty(t, familyNames(t, r))
}

func TestSetValueUnknownKeyIsNoOp(t *testing.T) {
	r := NewRegistry()
	r.Rebuild([]catalog.Metric{{Key: "bugs", Description: "Bugs"}})

	require.NotPanics(t, func() {
		r.SetValue("coverage", Labels{ProjectKey: "P1", ProjectName: "Proj One", Branch: "main"}, 1)
	})
	assert.Empty(t, familyNames(t, r))
}

func TestSetValueLastWriteWins(t *testing.T) {
	r := NewRegistry()
	r.Rebuild([]catalog.Metric{{Key: "bugs", Description: "Bugs"}})

	labels := Labels{ProjectKey: "P1", ProjectName: "Proj One", Branch: "main"}
	r.SetValue("bugs", labels, 7)
	r.SetValue("bugs", labels, 9)

	expected := `
# HELP sonarqube_bugs Bugs
# TYPE sonarqube_bugs gauge
sonarqube_bugs{branch="main",key="P1",name="Proj One"} 9
`
	require.NoError(t, testutil.GatherAndCompare(r.Gatherer(), strings.NewReader(expected), "sonarqube_bugs"))
}

func TestGaugeNamingAndLabels(t *testing.T) {
	r := NewRegistry()
	r.Rebuild([]catalog.Metric{{Key: "duplicated_lines_density", Description: "Duplicated Lines (%)"}})
	r.SetValue("duplicated_lines_density", Labels{ProjectKey: "P1", ProjectName: "Proj One", Branch: "feature/x"}, 12.3)

	expected := `
# HELP sonarqube_duplicated_lines_density Duplicated Lines (%)
# TYPE sonarqube_duplicated_lines_density gauge
sonarqube_duplicated_lines_density{branch="feature/x",key="P1",name="Proj One"} 12.3
`
	require.NoError(t, testutil.GatherAndCompare(r.Gatherer(), strings.NewReader(expected), "sonarqube_duplicated_lines_density"))
}
