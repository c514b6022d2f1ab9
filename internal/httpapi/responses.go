package httpapi

// ListResponse is the uniform paginated collection body. Page and PerPage
// echo the normalized values, not the raw query parameters.
type ListResponse struct {
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
	Data    any `json:"data"`
}

// DeleteResponse acknowledges a hard delete.
type DeleteResponse struct {
	Message string `json:"message"`
	ID      any    `json:"id"`
}

// MessageResponse wraps a status message with the affected record.
type MessageResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func NewListResponse(total int, page Page, data any) ListResponse {
	return ListResponse{Total: total, Page: page.Page, PerPage: page.PerPage, Data: data}
}

func NewDeleteResponse(resource string, id any) DeleteResponse {
	return DeleteResponse{Message: resource + " deleted successfully", ID: id}
}
