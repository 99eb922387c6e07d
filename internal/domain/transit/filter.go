package transit

import "sort"

// FilterState is the sidebar selection. A nil slice means "every value"
// while an empty non-nil slice selects nothing.
type FilterState struct {
	Types   []string `json:"tipos"`
	Regions []string `json:"regiones"`
}

// FilterOptions holds the distinct selectable values, sorted ascending.
type FilterOptions struct {
	Types   []string `json:"tipos"`
	Regions []string `json:"regiones"`
}

// Options collects the distinct transport types and regions present in routes.
func Options(routes []TransitRoute) FilterOptions {
	types := make(map[string]struct{})
	regions := make(map[string]struct{})
	for _, r := range routes {
		types[r.Type] = struct{}{}
		regions[r.Region] = struct{}{}
	}
	return FilterOptions{
		Types:   sortedKeys(types),
		Regions: sortedKeys(regions),
	}
}

// Resolve replaces nil selections with the full option lists.
func (s FilterState) Resolve(opts FilterOptions) FilterState {
	resolved := s
	if resolved.Types == nil {
		resolved.Types = append([]string{}, opts.Types...)
	}
	if resolved.Regions == nil {
		resolved.Regions = append([]string{}, opts.Regions...)
	}
	return resolved
}

// Filter keeps the routes whose type and region are both selected, preserving order.
// The state must already be resolved.
func Filter(routes []TransitRoute, state FilterState) []TransitRoute {
	types := toSet(state.Types)
	regions := toSet(state.Regions)

	filtered := make([]TransitRoute, 0, len(routes))
	for _, r := range routes {
		if _, ok := types[r.Type]; !ok {
			continue
		}
		if _, ok := regions[r.Region]; !ok {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
