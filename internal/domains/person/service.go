package person

import "context"

// Service is the business contract consumed by the HTTP layer.
type Service interface {
	ListPersons(ctx context.Context, query ListQuery) (*PagedResult, error)
	CreatePerson(ctx context.Context, req *CreateRequest) (*PersonResponse, error)
	UpdatePerson(ctx context.Context, id int, req *UpdateRequest) (*PersonResponse, error)
}
