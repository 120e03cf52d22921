package sonar

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/neox5/sonarbox/internal/config"
)

// ErrUnexpectedStatus marks non-2xx responses from the SonarQube Web API.
var ErrUnexpectedStatus = errors.New("unexpected status from sonarqube")

// Client talks to the SonarQube Web API.
type Client struct {
	http *resty.Client
}

// NewClient creates a Web API client. The token, when set, authenticates as
// HTTP basic auth with the token as username and an empty password, which is
// how SonarQube user tokens work.
func NewClient(cfg *config.SonarConfig) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	if cfg.Token != "" {
		c.SetBasicAuth(cfg.Token, "")
	}

	return &Client{http: c}
}

// SearchProjects lists analyzed projects, one page at a time. Pages are
// 1-based; the response carries the total count for the caller's paging
// arithmetic.
func (c *Client) SearchProjects(ctx context.Context, pageSize, page int) (*ProjectSearchResponse, error) {
	var out ProjectSearchResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"qualifiers": ProjectQualifier,
			"ps":         strconv.Itoa(pageSize),
			"p":          strconv.Itoa(page),
		}).
		SetResult(&out).
		Get("/api/components/search")
	if err != nil {
		return nil, fmt.Errorf("search projects: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("search projects: %w: %s", ErrUnexpectedStatus, resp.Status())
	}

	return &out, nil
}

// ListBranches lists all branches of a project, main branch included.
func (c *Client) ListBranches(ctx context.Context, projectKey string) (*BranchListResponse, error) {
	var out BranchListResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("project", projectKey).
		SetResult(&out).
		Get("/api/project_branches/list")
	if err != nil {
		return nil, fmt.Errorf("list branches for %s: %w", projectKey, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list branches for %s: %w: %s", projectKey, ErrUnexpectedStatus, resp.Status())
	}

	return &out, nil
}

// Measures fetches the given metrics for one component and branch. Metrics
// without a recorded value are absent from the result rather than null.
func (c *Client) Measures(ctx context.Context, componentKey, branch string, metricKeys []string) (*MeasuresResponse, error) {
	var out MeasuresResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"component":  componentKey,
			"branch":     branch,
			"metricKeys": strings.Join(metricKeys, ","),
		}).
		SetResult(&out).
		Get("/api/measures/component")
	if err != nil {
		return nil, fmt.Errorf("measures for %s@%s: %w", componentKey, branch, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("measures for %s@%s: %w: %s", componentKey, branch, ErrUnexpectedStatus, resp.Status())
	}

	return &out, nil
}
