package exporter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/neox5/sonarbox/internal/sonar"
)

// pageSize is the fixed page size for the project search.
const pageSize = 500

var errNoValue = errors.New("no value and no period value")

// MeasurementSource is the slice of the SonarQube Web API the fetcher needs.
type MeasurementSource interface {
	SearchProjects(ctx context.Context, pageSize, page int) (*sonar.ProjectSearchResponse, error)
	ListBranches(ctx context.Context, projectKey string) (*sonar.BranchListResponse, error)
	Measures(ctx context.Context, componentKey, branch string, metricKeys []string) (*sonar.MeasuresResponse, error)
}

// ValueSink receives resolved measurement values.
type ValueSink interface {
	SetValue(metricKey string, labels Labels, value float64)
}

// Sample is one resolved measurement applied to the sink.
type Sample struct {
	MetricKey   string
	ProjectKey  string
	ProjectName string
	Branch      string
	Value       float64
}

// Drop records a measurement skipped during value resolution.
type Drop struct {
	MetricKey   string
	ProjectKey  string
	ProjectName string
	Branch      string
	RawValue    string
	Reason      string
}

// Report summarizes one collection cycle. Unresolvable measurements never
// fail the cycle; they end up in Drops with their reason.
type Report struct {
	Projects int
	Samples  []Sample
	Drops    []Drop
}

// Fetcher pulls measurements for all projects and branches from the source
// and applies them to a sink as it goes. A source error aborts the remaining
// walk but leaves already-applied values in place.
type Fetcher struct {
	source MeasurementSource
}

// NewFetcher creates a fetcher over the given measurement source.
func NewFetcher(source MeasurementSource) *Fetcher {
	return &Fetcher{source: source}
}

// Collect walks projects, branches and measurements for the given metric
// keys. Calls per cycle: one count probe, ceil(total/500) pages, one branch
// listing per project and one measures fetch per project/branch pair.
func (f *Fetcher) Collect(ctx context.Context, metricKeys []string, sink ValueSink) (*Report, error) {
	report := &Report{}

	projects, err := f.listProjects(ctx)
	if err != nil {
		return report, err
	}
	report.Projects = len(projects)

	for _, project := range projects {
		branches, err := f.source.ListBranches(ctx, project.Key)
		if err != nil {
			return report, err
		}

		for _, branch := range branches.Branches {
			measures, err := f.source.Measures(ctx, project.Key, branch.Name, metricKeys)
			if err != nil {
				return report, err
			}

			for _, m := range measures.Component.Measures {
				f.apply(report, sink, project, branch.Name, m)
			}
		}
	}

	return report, nil
}

// listProjects pages through the full project listing. The first call only
// establishes the total; the walk then covers pages 1..ceil(total/pageSize),
// so a total of zero issues no page request and an exact page-size multiple
// no trailing empty one.
func (f *Fetcher) listProjects(ctx context.Context) ([]sonar.Component, error) {
	probe, err := f.source.SearchProjects(ctx, pageSize, 1)
	if err != nil {
		return nil, fmt.Errorf("project count: %w", err)
	}

	total := probe.Paging.Total
	pages := (total + pageSize - 1) / pageSize

	var projects []sonar.Component
	for page := 1; page <= pages; page++ {
		resp, err := f.source.SearchProjects(ctx, pageSize, page)
		if err != nil {
			return nil, fmt.Errorf("project page %d: %w", page, err)
		}
		projects = append(projects, resp.Components...)
	}

	return projects, nil
}

// apply resolves one measurement and either sets it on the sink or records a
// drop with a warning. Resolution failures never propagate.
func (f *Fetcher) apply(report *Report, sink ValueSink, project sonar.Component, branch string, m sonar.Measure) {
	value, err := resolveValue(m)
	if err != nil {
		slog.Warn("dropping unresolvable measurement",
			"project_key", project.Key,
			"project_name", project.Name,
			"branch", branch,
			"metric", m.Metric,
			"raw_value", m.Value,
			"reason", err)

		report.Drops = append(report.Drops, Drop{
			MetricKey:   m.Metric,
			ProjectKey:  project.Key,
			ProjectName: project.Name,
			Branch:      branch,
			RawValue:    m.Value,
			Reason:      err.Error(),
		})
		return
	}

	labels := Labels{ProjectKey: project.Key, ProjectName: project.Name, Branch: branch}
	sink.SetValue(m.Metric, labels, value)

	report.Samples = append(report.Samples, Sample{
		MetricKey:   m.Metric,
		ProjectKey:  project.Key,
		ProjectName: project.Name,
		Branch:      branch,
		Value:       value,
	})
}

// resolveValue turns a raw measurement into a number: the direct value when
// present, otherwise the first period value.
func resolveValue(m sonar.Measure) (float64, error) {
	if m.Value != "" {
		return strconv.ParseFloat(m.Value, 64)
	}
	if len(m.Periods) > 0 {
		return strconv.ParseFloat(m.Periods[0].Value, 64)
	}
	return 0, errNoValue
}
