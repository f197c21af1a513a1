package person_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personaldata-backend/internal/domains/person"
)

func TestDateUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"plain date", `"1990-05-15"`, time.Date(1990, time.May, 15, 0, 0, 0, 0, time.UTC)},
		{"rfc3339 from date picker", `"1990-05-15T17:00:00Z"`, time.Date(1990, time.May, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d person.Date
			require.NoError(t, json.Unmarshal([]byte(tt.input), &d))
			assert.True(t, tt.want.Equal(d.Time), "got %v", d.Time)
		})
	}
}

func TestDateUnmarshalJSONInvalid(t *testing.T) {
	var d person.Date
	assert.Error(t, json.Unmarshal([]byte(`"15/05/1990"`), &d))
}

func TestDateMarshalJSON(t *testing.T) {
	d := person.NewDate(1990, time.May, 15)
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1990-05-15"`, string(raw))
}

func TestFullNameIsTrimmedConcatenation(t *testing.T) {
	p := &person.PersonEntity{FirstName: "Ann", LastName: "Lee"}
	assert.Equal(t, "Ann Lee", p.FullName())

	p = &person.PersonEntity{FirstName: "Ann", LastName: ""}
	assert.Equal(t, "Ann", p.FullName())
}

func TestCreateRequestNormalizeTrims(t *testing.T) {
	req := &person.CreateRequest{
		FirstName: " Ann ",
		LastName:  "Lee ",
		Address:   "  1 Main St, long enough  ",
		BirthDate: person.NewDate(2000, time.January, 1),
	}

	req.Normalize()

	assert.Equal(t, "Ann", req.FirstName)
	assert.Equal(t, "Lee", req.LastName)
	assert.Equal(t, "1 Main St, long enough", req.Address)
}

func TestCreateRequestValidate(t *testing.T) {
	valid := person.CreateRequest{
		FirstName: "Ann",
		LastName:  "Lee",
		Address:   "1 Main St, long enough",
		BirthDate: person.NewDate(2000, time.January, 1),
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*person.CreateRequest)
	}{
		{"missing first name", func(r *person.CreateRequest) { r.FirstName = "" }},
		{"first name too short", func(r *person.CreateRequest) { r.FirstName = "A" }},
		{"single thai character first name", func(r *person.CreateRequest) { r.FirstName = "ส" }},
		{"missing last name", func(r *person.CreateRequest) { r.LastName = "" }},
		{"address too short", func(r *person.CreateRequest) { r.Address = "short" }},
		{"missing birth date", func(r *person.CreateRequest) { r.BirthDate = person.Date{} }},
		{"future birth date", func(r *person.CreateRequest) {
			r.BirthDate = person.Date{Time: time.Now().AddDate(1, 0, 0)}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

// Limits are character counts, so multi-byte names within the column size
// must pass even though their byte length exceeds it.
func TestValidateCountsCharactersNotBytes(t *testing.T) {
	req := person.CreateRequest{
		FirstName: strings.Repeat("สม", 10), // 20 runes, 60 bytes
		LastName:  "ใจดี",
		Address:   "123/45 หมู่ 2 ตำบลบางกะปิ เขตห้วยขวาง กรุงเทพมหานคร 10310",
		BirthDate: person.NewDate(1990, time.May, 15),
	}
	assert.NoError(t, req.Validate())
}

func TestNewPagedResultDerivedFields(t *testing.T) {
	tests := []struct {
		name        string
		totalCount  int
		pageNumber  int
		pageSize    int
		wantPages   int
		wantHasPrev bool
		wantHasNext bool
	}{
		{"first of three pages", 25, 1, 10, 3, false, true},
		{"middle page", 25, 2, 10, 3, true, true},
		{"last page", 25, 3, 10, 3, true, false},
		{"exact fit", 20, 2, 10, 2, true, false},
		{"empty", 0, 1, 10, 0, false, false},
		{"page beyond range", 5, 9, 10, 1, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := person.NewPagedResult(nil, tt.totalCount, tt.pageNumber, tt.pageSize)
			assert.Equal(t, tt.wantPages, r.TotalPages)
			assert.Equal(t, tt.wantHasPrev, r.HasPreviousPage)
			assert.Equal(t, tt.wantHasNext, r.HasNextPage)
			assert.NotNil(t, r.Data)
		})
	}
}

func TestErrorDiscriminationByCode(t *testing.T) {
	notFound := person.NewPersonNotFound(99999)
	assert.True(t, person.IsNotFound(notFound))
	assert.False(t, person.IsValidationFailed(notFound))

	status, _, _ := person.GetErrorResponse(notFound)
	assert.Equal(t, 404, status)

	validation := person.NewValidationError(assert.AnError)
	status, _, errs := person.GetErrorResponse(validation)
	assert.Equal(t, 400, status)
	assert.NotEmpty(t, errs)

	fault := person.NewStoreFault("list", assert.AnError)
	status, _, _ = person.GetErrorResponse(fault)
	assert.Equal(t, 500, status)
}
