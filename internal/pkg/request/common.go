package request

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// Validate performs custom validation for ByIDRequest.
func (r *ByIDRequest) Validate() error {
	return nil
}

// ListParams holds offset pagination shared by list endpoints.
// From is a zero-based row offset, Size the page length.
type ListParams struct {
	From int `form:"from" binding:"omitempty,min=0"`
	Size int `form:"size" binding:"omitempty,min=1"`
}

// Normalized returns the params with defaults applied.
func (p ListParams) Normalized() ListParams {
	if p.From < 0 {
		p.From = 0
	}
	if p.Size < 1 {
		p.Size = 10
	}
	return p
}
