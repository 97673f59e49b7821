package dto

type CreateClientRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type UpdateClientRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type ClientResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ClientListResponse struct {
	Clients []ClientResponse `json:"clients"`
	Total   int              `json:"total"`
}
