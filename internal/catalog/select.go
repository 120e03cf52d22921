package catalog

// ConfigPrefix namespaces the per-metric export flags. A metric is exported
// when the boolean setting ConfigPrefix + Metric.Key evaluates to true.
const ConfigPrefix = "prometheus.export."

// FlagSource reads boolean settings. The second return reports whether the
// key is present at all.
type FlagSource interface {
	GetBool(key string) (value bool, ok bool)
}

// Enabled returns the subset of the catalog whose export flag is set.
// Absent flags mean disabled; nothing is exported unless explicitly turned
// on. Called on every scrape since settings may change between scrapes.
func Enabled(flags FlagSource) []Metric {
	var enabled []Metric
	for _, m := range supported {
		if v, ok := flags.GetBool(ConfigPrefix + m.Key); ok && v {
			enabled = append(enabled, m)
		}
	}
	return enabled
}

// Keys returns the metric keys of the given set, in catalog order.
func Keys(metrics []Metric) []string {
	keys := make([]string, len(metrics))
	for i, m := range metrics {
		keys[i] = m.Key
	}
	return keys
}
