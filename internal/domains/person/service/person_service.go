package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"personaldata-backend/internal/domains/person"
	"personaldata-backend/pkg/agecalc"
	"personaldata-backend/pkg/cache"
)

const (
	listCacheTTL     = 30 * time.Second
	listCachePattern = "persons:list:*"
)

// personService implements person.Service.
// cache may be nil; caching is an optimization, never a requirement.
type personService struct {
	repo  person.Repository
	cache cache.Cache
}

func NewPersonService(repo person.Repository, cache cache.Cache) person.Service {
	return &personService{
		repo:  repo,
		cache: cache,
	}
}

// ListPersons returns one page of records plus the total match count.
// The handler clamps the inputs; the guards here only protect direct callers.
func (s *personService) ListPersons(ctx context.Context, query person.ListQuery) (*person.PagedResult, error) {
	if query.PageNumber < 1 {
		query.PageNumber = 1
	}
	if query.PageSize < 1 {
		query.PageSize = 10
	}

	cacheKey := fmt.Sprintf("persons:list:p%d:s%d:q%s",
		query.PageNumber, query.PageSize, query.SearchTerm)

	if s.cache != nil {
		var cached person.PagedResult
		found, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			log.Warn().Err(err).Msg("list cache read failed")
		} else if found {
			return &cached, nil
		}
	}

	entities, totalCount, err := s.repo.GetPaged(ctx, query.PageNumber, query.PageSize, query.SearchTerm)
	if err != nil {
		return nil, person.NewStoreFault("list", err)
	}

	responses := make([]*person.PersonResponse, len(entities))
	for i, e := range entities {
		responses[i] = e.ToResponse()
	}

	result := person.NewPagedResult(responses, totalCount, query.PageNumber, query.PageSize)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, result, listCacheTTL); err != nil {
			log.Warn().Err(err).Msg("list cache write failed")
		}
	}

	return result, nil
}

// CreatePerson trims the inputs, stamps the age as of today and persists
// the record. The stored age is not recomputed on later reads.
func (s *personService) CreatePerson(ctx context.Context, req *person.CreateRequest) (*person.PersonResponse, error) {
	if req == nil {
		return nil, person.NewValidationError(fmt.Errorf("request body is required"))
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, person.NewValidationError(err)
	}

	entity := &person.PersonEntity{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		BirthDate: req.BirthDate,
		Age:       agecalc.Today(req.BirthDate.Time),
	}

	created, err := s.repo.Add(ctx, entity)
	if err != nil {
		return nil, person.NewStoreFault("create", err)
	}

	s.invalidateListCache(ctx)

	return created.ToResponse(), nil
}

// UpdatePerson performs a full-field replace; the id always comes from the
// URL path. The store returns the updated record directly.
func (s *personService) UpdatePerson(ctx context.Context, id int, req *person.UpdateRequest) (*person.PersonResponse, error) {
	if req == nil {
		return nil, person.NewValidationError(fmt.Errorf("request body is required"))
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, person.NewValidationError(err)
	}

	entity := &person.PersonEntity{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		BirthDate: req.BirthDate,
		Age:       agecalc.Today(req.BirthDate.Time),
	}

	updated, err := s.repo.Update(ctx, id, entity)
	if err != nil {
		if person.IsNotFound(err) {
			return nil, err
		}
		return nil, person.NewStoreFault("update", err)
	}

	s.invalidateListCache(ctx)

	return updated.ToResponse(), nil
}

// invalidateListCache drops every cached list page after a write so list
// reads always see their own writes.
func (s *personService) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, listCachePattern); err != nil {
		log.Warn().Err(err).Msg("list cache invalidation failed")
	}
}
