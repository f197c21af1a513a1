package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"personaldata-backend/internal/domains/person"
	"personaldata-backend/pkg/agecalc"
)

// memoryRepository is the in-process fallback store. It keeps the exact
// filter/order/page semantics of the postgres repository and is used when
// STORE_DRIVER=memory or when PostgreSQL cannot be reached at startup.
type memoryRepository struct {
	mu      sync.RWMutex
	records map[int]*person.PersonEntity
	nextID  int
}

func NewMemoryRepository() person.Repository {
	return &memoryRepository{
		records: make(map[int]*person.PersonEntity),
		nextID:  1,
	}
}

// NewSeededMemoryRepository returns a memory store preloaded with the same
// example records the seed migration inserts.
func NewSeededMemoryRepository() person.Repository {
	r := &memoryRepository{
		records: make(map[int]*person.PersonEntity),
		nextID:  1,
	}

	seeds := []struct {
		firstName string
		lastName  string
		address   string
		birthDate person.Date
	}{
		{"สมชาย", "ใจดี", "123/45 หมู่ 2 ตำบลบางกะปิ เขตห้วยขวาง กรุงเทพมหานคร 10310", person.NewDate(1990, time.May, 15)},
		{"สมศรี", "รักดี", "456/78 ซอยลาดพร้าว 15 แขวงจตุจักร เขตจตุจักร กรุงเทพมหานคร 10900", person.NewDate(1985, time.August, 22)},
		{"วิชัย", "สุขใส", "789/12 ถนนสุขุมวิท แขวงคลองเตย เขตคลองเตย กรุงเทพมหานคร 10110", person.NewDate(1992, time.December, 3)},
		{"ปิยะดา", "หวานใจ", "321/67 หมู่บ้านสีลม ตำบลสีลม เขตบางรัก กรุงเทพมหานคร 10500", person.NewDate(1988, time.March, 18)},
		{"อนันต์", "มีสุข", "555/88 ซอยอารีย์ แขวงสามเสนใน เขตพญาไท กรุงเทพมหานคร 10400", person.NewDate(1995, time.July, 9)},
	}

	for _, s := range seeds {
		id := r.nextID
		r.nextID++
		r.records[id] = &person.PersonEntity{
			ID:        id,
			FirstName: s.firstName,
			LastName:  s.lastName,
			Address:   s.address,
			BirthDate: s.birthDate,
			Age:       agecalc.Today(s.birthDate.Time),
			CreatedAt: time.Now().UTC(),
		}
	}

	return r
}

func clone(p *person.PersonEntity) *person.PersonEntity {
	cp := *p
	if p.UpdatedAt != nil {
		t := *p.UpdatedAt
		cp.UpdatedAt = &t
	}
	return &cp
}

// sorted returns a snapshot of all records ordered by id ascending.
// Callers must hold at least a read lock.
func (r *memoryRepository) sorted() []*person.PersonEntity {
	all := make([]*person.PersonEntity, 0, len(r.records))
	for _, p := range r.records {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

func matches(p *person.PersonEntity, term string) bool {
	return strings.Contains(strings.ToLower(p.FirstName), term) ||
		strings.Contains(strings.ToLower(p.LastName), term) ||
		strings.Contains(strings.ToLower(p.Address), term)
}

func (r *memoryRepository) GetAll(_ context.Context) ([]*person.PersonEntity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.sorted()
	out := make([]*person.PersonEntity, len(all))
	for i, p := range all {
		out[i] = clone(p)
	}
	return out, nil
}

func (r *memoryRepository) GetPaged(_ context.Context, pageNumber, pageSize int, searchTerm string) ([]*person.PersonEntity, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	term := strings.ToLower(searchTerm)

	var filtered []*person.PersonEntity
	for _, p := range r.sorted() {
		if term == "" || matches(p, term) {
			filtered = append(filtered, p)
		}
	}

	totalCount := len(filtered)

	start := (pageNumber - 1) * pageSize
	if start > totalCount {
		start = totalCount
	}
	end := start + pageSize
	if end > totalCount {
		end = totalCount
	}

	page := make([]*person.PersonEntity, 0, end-start)
	for _, p := range filtered[start:end] {
		page = append(page, clone(p))
	}

	return page, totalCount, nil
}

func (r *memoryRepository) Add(_ context.Context, entity *person.PersonEntity) (*person.PersonEntity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := clone(entity)
	stored.ID = r.nextID
	r.nextID++
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = nil

	r.records[stored.ID] = stored
	return clone(stored), nil
}

func (r *memoryRepository) Update(_ context.Context, id int, entity *person.PersonEntity) (*person.PersonEntity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.records[id]
	if !ok {
		return nil, person.NewPersonNotFound(id)
	}

	now := time.Now().UTC()
	existing.FirstName = entity.FirstName
	existing.LastName = entity.LastName
	existing.Address = entity.Address
	existing.BirthDate = entity.BirthDate
	existing.Age = entity.Age
	existing.UpdatedAt = &now

	return clone(existing), nil
}

func (r *memoryRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return person.NewPersonNotFound(id)
	}

	delete(r.records, id)
	return nil
}

func (r *memoryRepository) Exists(_ context.Context, id int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.records[id]
	return ok, nil
}
