package handler

import (
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/transmovil-cr/service-routes/internal/domain/transit"
)

// Query parameters of the filter form. filteredParam marks a submitted form
// so that an absent tipo/region means "nothing selected" instead of "all".
const (
	typeParam     = "tipo"
	regionParam   = "region"
	filteredParam = "filtered"
)

func parseFilterState(c *gin.Context) transit.FilterState {
	submitted := c.Query(filteredParam) != ""

	var state transit.FilterState
	if types, ok := c.GetQueryArray(typeParam); ok {
		state.Types = types
	} else if submitted {
		state.Types = []string{}
	}
	if regions, ok := c.GetQueryArray(regionParam); ok {
		state.Regions = regions
	} else if submitted {
		state.Regions = []string{}
	}
	return state
}

// encodeFilterState is the inverse of parseFilterState for a resolved selection.
func encodeFilterState(state transit.FilterState) string {
	q := url.Values{}
	q.Set(filteredParam, "1")
	for _, t := range state.Types {
		q.Add(typeParam, t)
	}
	for _, r := range state.Regions {
		q.Add(regionParam, r)
	}
	return q.Encode()
}
