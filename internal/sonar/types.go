package sonar

// Qualifier used by the components search to restrict results to projects.
const ProjectQualifier = "TRK"

// Paging describes the pagination state of a search response.
type Paging struct {
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
	Total     int `json:"total"`
}

// Component is a project entry from the components search.
type Component struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Qualifier string `json:"qualifier"`
}

// ProjectSearchResponse is the payload of api/components/search.
type ProjectSearchResponse struct {
	Paging     Paging      `json:"paging"`
	Components []Component `json:"components"`
}

// Branch is one entry from the project branch listing. The listing always
// includes the main branch.
type Branch struct {
	Name   string `json:"name"`
	IsMain bool   `json:"isMain"`
	Type   string `json:"type"`
}

// BranchListResponse is the payload of api/project_branches/list.
type BranchListResponse struct {
	Branches []Branch `json:"branches"`
}

// Period is a secondary measure value relative to the new-code baseline.
type Period struct {
	Index int    `json:"index"`
	Value string `json:"value"`
}

// Measure is one metric value for a component. Value may be empty when the
// metric only carries period values.
type Measure struct {
	Metric  string   `json:"metric"`
	Value   string   `json:"value"`
	Periods []Period `json:"periods"`
}

// MeasuresComponent is the component section of a measures response.
type MeasuresComponent struct {
	Key      string    `json:"key"`
	Name     string    `json:"name"`
	Measures []Measure `json:"measures"`
}

// MeasuresResponse is the payload of api/measures/component.
type MeasuresResponse struct {
	Component MeasuresComponent `json:"component"`
}
