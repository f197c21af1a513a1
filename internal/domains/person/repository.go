package person

import "context"

// Repository is the record store contract.
// Delete is part of the contract but is never routed through the API.
type Repository interface {
	GetAll(ctx context.Context) ([]*PersonEntity, error)

	// GetPaged filters (case-insensitive substring over first name, last
	// name and address), orders by id ascending, then pages. The returned
	// count ignores paging.
	GetPaged(ctx context.Context, pageNumber, pageSize int, searchTerm string) ([]*PersonEntity, int, error)

	// Add assigns id and createdAt and returns the stored record.
	Add(ctx context.Context, entity *PersonEntity) (*PersonEntity, error)

	// Update replaces every writable field, stamps updatedAt and returns
	// the updated record; NewPersonNotFound when id does not exist.
	Update(ctx context.Context, id int, entity *PersonEntity) (*PersonEntity, error)

	Delete(ctx context.Context, id int) error
	Exists(ctx context.Context, id int) (bool, error)
}
