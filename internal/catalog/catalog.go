package catalog

// Metric is one exportable SonarQube measure definition.
type Metric struct {
	Key         string
	Description string
}

// supported is the fixed set of measures eligible for export. Keys must be
// valid Prometheus name fragments as-is; no sanitization happens downstream.
var supported = []Metric{
	// Issues
	{Key: "violations", Description: "Issues"},
	{Key: "blocker_violations", Description: "Blocker issues"},
	{Key: "critical_violations", Description: "Critical issues"},
	{Key: "major_violations", Description: "Major issues"},
	{Key: "minor_violations", Description: "Minor issues"},
	{Key: "info_violations", Description: "Info issues"},
	{Key: "new_violations", Description: "New issues"},
	{Key: "new_blocker_violations", Description: "New Blocker issues"},
	{Key: "new_critical_violations", Description: "New Critical issues"},
	{Key: "new_major_violations", Description: "New Major issues"},
	{Key: "new_minor_violations", Description: "New Minor issues"},
	{Key: "new_info_violations", Description: "New Info issues"},
	{Key: "false_positive_issues", Description: "False positive issues"},
	{Key: "open_issues", Description: "Open issues"},
	{Key: "confirmed_issues", Description: "Confirmed issues"},
	{Key: "reopened_issues", Description: "Reopened issues"},

	// Maintainability
	{Key: "code_smells", Description: "Code Smells"},
	{Key: "new_code_smells", Description: "New Code Smells"},
	{Key: "sqale_rating", Description: "Maintainability Rating"},
	{Key: "sqale_index", Description: "Technical Debt"},
	{Key: "new_technical_debt", Description: "Added Technical Debt"},
	{Key: "sqale_debt_ratio", Description: "Technical Debt Ratio"},
	{Key: "new_sqale_debt_ratio", Description: "Technical Debt Ratio on New Code"},

	// Reliability
	{Key: "bugs", Description: "Bugs"},
	{Key: "new_bugs", Description: "New Bugs"},
	{Key: "reliability_rating", Description: "Reliability Rating"},
	{Key: "reliability_remediation_effort", Description: "Reliability Remediation Effort"},
	{Key: "new_reliability_remediation_effort", Description: "Reliability Remediation Effort on New Code"},

	// Security
	{Key: "vulnerabilities", Description: "Vulnerabilities"},
	{Key: "new_vulnerabilities", Description: "New Vulnerabilities"},
	{Key: "security_rating", Description: "Security Rating"},
	{Key: "security_remediation_effort", Description: "Security Remediation Effort"},
	{Key: "new_security_remediation_effort", Description: "Security Remediation Effort on New Code"},

	// Size
	{Key: "classes", Description: "Classes"},
	{Key: "comment_lines", Description: "Comment Lines"},
	{Key: "comment_lines_density", Description: "Comments (%)"},
	{Key: "files", Description: "Files"},
	{Key: "lines", Description: "Lines"},
	{Key: "generated_lines", Description: "Generated Lines"},
	{Key: "generated_ncloc", Description: "Generated Lines of Code"},
	{Key: "ncloc", Description: "Lines of Code"},
	{Key: "functions", Description: "Functions"},
	{Key: "statements", Description: "Statements"},
	{Key: "new_lines", Description: "New Lines"},

	// Coverage
	{Key: "lines_to_cover", Description: "Lines to Cover"},
	{Key: "new_lines_to_cover", Description: "Lines to Cover on New Code"},
	{Key: "coverage", Description: "Coverage"},
	{Key: "new_coverage", Description: "Coverage on New Code"},

	// Duplication
	{Key: "duplicated_lines_density", Description: "Duplicated Lines (%)"},
	{Key: "duplicated_blocks", Description: "Duplicated Blocks"},
	{Key: "duplicated_lines", Description: "Duplicated Lines"},
	{Key: "duplicated_files", Description: "Duplicated Files"},

	// Complexity
	{Key: "complexity", Description: "Cyclomatic Complexity"},
	{Key: "cognitive_complexity", Description: "Cognitive Complexity"},

	{Key: "projects", Description: "Project branches"},
}

// All returns the full catalog of supported metrics.
func All() []Metric {
	out := make([]Metric, len(supported))
	copy(out, supported)
	return out
}
