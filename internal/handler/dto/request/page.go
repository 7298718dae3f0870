package request

import (
	"telescope-scheduler/internal/usecase/queries"
)

// PageQuery binds the keyset paging parameters shared by list endpoints.
type PageQuery struct {
	After string `form:"after"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Order string `form:"order" binding:"omitempty,oneof=asc desc"`
}

func (p PageQuery) ToPageRequest() queries.PageRequest {
	page := queries.PageRequest{
		Limit: p.Limit,
		Order: queries.SortOrder(p.Order),
	}
	if p.After != "" {
		page.Cursor = &queries.Cursor{After: p.After}
	}
	return page
}

// DateRangeQuery narrows a telescope listing to a window.
type DateRangeQuery struct {
	Start *string `form:"start"`
	End   *string `form:"end"`
}
