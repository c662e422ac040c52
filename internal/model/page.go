package model

// PageQuery is the query string of the paged list endpoints.
// Out-of-range values are clamped by the services.
type PageQuery struct {
	Page int `form:"page"`
	Size int `form:"size"`
}
