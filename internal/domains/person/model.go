package person

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without a time component.
// JSON accepts both "2006-01-02" and full RFC3339 timestamps (the SPA date
// picker sends the latter); output is always "2006-01-02".
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}

	for _, layout := range []string{dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return nil
		}
	}

	return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
}

// PersonEntity is the stored record.
// Age is stamped when the record is written and never recomputed on read.
type PersonEntity struct {
	ID        int        `json:"id" db:"id"`
	FirstName string     `json:"firstName" db:"first_name"`
	LastName  string     `json:"lastName" db:"last_name"`
	Address   string     `json:"address" db:"address"`
	BirthDate Date       `json:"birthDate" db:"birth_date"`
	Age       int        `json:"age" db:"age"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt *time.Time `json:"updatedAt" db:"updated_at"`
}

// FullName is derived, never stored.
func (p *PersonEntity) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p *PersonEntity) ToResponse() *PersonResponse {
	return &PersonResponse{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		FullName:  p.FullName(),
		Address:   p.Address,
		BirthDate: p.BirthDate,
		Age:       p.Age,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// CreateRequest carries the writable fields of a person record.
// The store assigns id and createdAt; age is stamped server-side.
type CreateRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	BirthDate Date   `json:"birthDate"`
}

// UpdateRequest mirrors CreateRequest; the target id comes from the URL
// path and overrides anything embedded in the body.
type UpdateRequest struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	BirthDate Date   `json:"birthDate"`
}

// Normalize trims the text fields; this runs before validation and storage.
func (r *CreateRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Address = strings.TrimSpace(r.Address)
}

func (r *UpdateRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Address = strings.TrimSpace(r.Address)
}

// Validate enforces the same rules the form applies client-side, so a
// malformed payload cannot sneak past the API boundary.
func (r CreateRequest) Validate() error {
	return validateFields(r.FirstName, r.LastName, r.Address, r.BirthDate)
}

func (r UpdateRequest) Validate() error {
	return validateFields(r.FirstName, r.LastName, r.Address, r.BirthDate)
}

func validateFields(firstName, lastName, address string, birthDate Date) error {
	// RuneLength, not Length: the limits are character counts and must hold
	// for multi-byte input such as the Thai records.
	return validation.Errors{
		"firstName": validation.Validate(firstName,
			validation.Required, validation.RuneLength(2, 50)),
		"lastName": validation.Validate(lastName,
			validation.Required, validation.RuneLength(2, 50)),
		"address": validation.Validate(address,
			validation.Required, validation.RuneLength(10, 500)),
		"birthDate": validateBirthDate(birthDate),
	}.Filter()
}

func validateBirthDate(d Date) error {
	if d.IsZero() {
		return fmt.Errorf("cannot be blank")
	}
	if d.After(time.Now()) {
		return fmt.Errorf("must not be in the future")
	}
	return nil
}

// PersonResponse is the record as returned over the API.
type PersonResponse struct {
	ID        int        `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	FullName  string     `json:"fullName"`
	Address   string     `json:"address"`
	BirthDate Date       `json:"birthDate"`
	Age       int        `json:"age"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// PagedResult is one page of records plus paging metadata.
type PagedResult struct {
	Data            []*PersonResponse `json:"data"`
	TotalCount      int               `json:"totalCount"`
	PageNumber      int               `json:"pageNumber"`
	PageSize        int               `json:"pageSize"`
	TotalPages      int               `json:"totalPages"`
	HasPreviousPage bool              `json:"hasPreviousPage"`
	HasNextPage     bool              `json:"hasNextPage"`
}

func NewPagedResult(data []*PersonResponse, totalCount, pageNumber, pageSize int) *PagedResult {
	if data == nil {
		data = []*PersonResponse{}
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}

	return &PagedResult{
		Data:            data,
		TotalCount:      totalCount,
		PageNumber:      pageNumber,
		PageSize:        pageSize,
		TotalPages:      totalPages,
		HasPreviousPage: pageNumber > 1,
		HasNextPage:     pageNumber < totalPages,
	}
}

// ListQuery is the input of the list/search operation, already clamped by
// the handler: pageNumber >= 1, pageSize in 1..100.
type ListQuery struct {
	PageNumber int
	PageSize   int
	SearchTerm string
}
