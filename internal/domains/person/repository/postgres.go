package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"personaldata-backend/internal/domains/person"
)

// postgresRepository implements person.Repository on a pgx pool.
// Connections are acquired per query and released on completion.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) person.Repository {
	return &postgresRepository{
		pool: pool,
	}
}

const personColumns = `id, first_name, last_name, address, birth_date, age, created_at, updated_at`

// escapeLikePattern neutralizes LIKE metacharacters so a search term always
// matches as a literal substring, same as the in-memory store.
func escapeLikePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}

func scanPerson(row pgx.Row) (*person.PersonEntity, error) {
	var p person.PersonEntity
	err := row.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.Address,
		&p.BirthDate.Time,
		&p.Age,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]*person.PersonEntity, error) {
	query := `
    SELECT ` + personColumns + `
    FROM persons
    ORDER BY id ASC
  `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	defer rows.Close()

	var persons []*person.PersonEntity
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan person row: %w", err)
		}
		persons = append(persons, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating person rows: %w", err)
	}

	return persons, nil
}

func (r *postgresRepository) GetPaged(ctx context.Context, pageNumber, pageSize int, searchTerm string) ([]*person.PersonEntity, int, error) {
	where := ``
	args := []interface{}{}

	if searchTerm != "" {
		where = `
    WHERE first_name ILIKE '%' || $1 || '%'
       OR last_name  ILIKE '%' || $1 || '%'
       OR address    ILIKE '%' || $1 || '%'`
		args = append(args, escapeLikePattern(searchTerm))
	}

	var totalCount int
	countQuery := `SELECT COUNT(*) FROM persons` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count persons: %w", err)
	}

	offset := (pageNumber - 1) * pageSize
	pageQuery := fmt.Sprintf(`
    SELECT `+personColumns+`
    FROM persons%s
    ORDER BY id ASC
    LIMIT $%d OFFSET $%d
  `, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.pool.Query(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to page persons: %w", err)
	}
	defer rows.Close()

	var persons []*person.PersonEntity
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan person row: %w", err)
		}
		persons = append(persons, p)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating person rows: %w", err)
	}

	return persons, totalCount, nil
}

func (r *postgresRepository) Add(ctx context.Context, entity *person.PersonEntity) (*person.PersonEntity, error) {
	query := `
    INSERT INTO persons (first_name, last_name, address, birth_date, age)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING ` + personColumns + `
  `

	row := r.pool.QueryRow(ctx, query,
		entity.FirstName,
		entity.LastName,
		entity.Address,
		entity.BirthDate.Time,
		entity.Age,
	)

	created, err := scanPerson(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert person: %w", err)
	}

	return created, nil
}

// Update replaces every writable field and returns the updated row, so the
// caller never needs a second read after the write.
func (r *postgresRepository) Update(ctx context.Context, id int, entity *person.PersonEntity) (*person.PersonEntity, error) {
	query := `
    UPDATE persons
    SET first_name = $1, last_name = $2, address = $3,
        birth_date = $4, age = $5, updated_at = NOW()
    WHERE id = $6
    RETURNING ` + personColumns + `
  `

	row := r.pool.QueryRow(ctx, query,
		entity.FirstName,
		entity.LastName,
		entity.Address,
		entity.BirthDate.Time,
		entity.Age,
		id,
	)

	updated, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, person.NewPersonNotFound(id)
		}
		return nil, fmt.Errorf("failed to update person: %w", err)
	}

	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM persons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}

	if result.RowsAffected() == 0 {
		return person.NewPersonNotFound(id)
	}

	return nil
}

func (r *postgresRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM persons WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check person existence: %w", err)
	}
	return exists, nil
}
