package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/repository"
)

const universityColumns = `id, photo_url, name, description, specials, financing, duration,
	to_char(application_deadline, 'YYYY-MM-DD'), gender, age, others, medicine, salary,
	dormitory, rewards, additional_others, official_link, created_at, updated_at`

type UniversityRepository struct {
	pool *pgxpool.Pool
}

func NewUniversityRepository(pool *pgxpool.Pool) *UniversityRepository {
	return &UniversityRepository{pool: pool}
}

func scanUniversity(row pgx.Row) (*entity.University, error) {
	u := &entity.University{}
	f := &u.UniversityFields
	if err := row.Scan(&u.ID, &f.PhotoURL, &f.Name, &f.Description, &f.Specials, &f.Financing,
		&f.Duration, &f.ApplicationDeadline, &f.Gender, &f.Age, &f.Others, &f.Medicine, &f.Salary,
		&f.Dormitory, &f.Rewards, &f.AdditionalOthers, &f.OfficialLink, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return u, nil
}

func collectUniversities(rows pgx.Rows) ([]entity.University, error) {
	defer rows.Close()
	out := []entity.University{}
	for rows.Next() {
		u, err := scanUniversity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *UniversityRepository) List(ctx context.Context) ([]entity.University, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+universityColumns+` FROM university ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectUniversities(rows)
}

func (r *UniversityRepository) GetByID(ctx context.Context, id int64) (*entity.University, error) {
	return scanUniversity(r.pool.QueryRow(ctx, `SELECT `+universityColumns+` FROM university WHERE id = $1`, id))
}

// GetByIDs returns the universities in the order of ids; unknown ids are skipped.
func (r *UniversityRepository) GetByIDs(ctx context.Context, ids []int64) ([]entity.University, error) {
	if len(ids) == 0 {
		return []entity.University{}, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+universityColumns+` FROM university WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	found, err := collectUniversities(rows)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]entity.University, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}
	out := make([]entity.University, 0, len(found))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// SearchByName matches q against the name in every locale, case-insensitively.
func (r *UniversityRepository) SearchByName(ctx context.Context, q string, limit int) ([]entity.University, error) {
	pattern := "%" + escapeLike(q) + "%"
	rows, err := r.pool.Query(ctx, `
		SELECT `+universityColumns+` FROM university
		WHERE name->>'en' ILIKE $1 OR name->>'ru' ILIKE $1 OR name->>'tm' ILIKE $1
		ORDER BY id
		LIMIT $2
	`, pattern, limit)
	if err != nil {
		return nil, err
	}
	return collectUniversities(rows)
}

func (r *UniversityRepository) Create(ctx context.Context, f entity.UniversityFields) (*entity.University, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO university (photo_url, name, description, specials, financing, duration,
			application_deadline, gender, age, others, medicine, salary, dormitory, rewards,
			additional_others, official_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7::text::date, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING `+universityColumns,
		f.PhotoURL, f.Name, f.Description, f.Specials, f.Financing, f.Duration,
		f.ApplicationDeadline, f.Gender, f.Age, f.Others, f.Medicine, f.Salary, f.Dormitory,
		f.Rewards, f.AdditionalOthers, f.OfficialLink)
	return scanUniversity(row)
}

// Update writes only the non-nil fields of patch. A missing id yields 0 affected rows.
func (r *UniversityRepository) Update(ctx context.Context, id int64, patch entity.UniversityFields) (int64, error) {
	sets, args := updateAssignments(patch)
	if len(sets) == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM university WHERE id = $1)`, id).Scan(&exists); err != nil {
			return 0, err
		}
		if exists {
			return 1, nil
		}
		return 0, nil
	}
	args = append(args, id)
	sql := fmt.Sprintf(`UPDATE university SET %s, updated_at = now() WHERE id = $%d`,
		strings.Join(sets, ", "), len(args))
	res, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, mapErr(err)
	}
	return res.RowsAffected(), nil
}

func (r *UniversityRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM university WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

func updateAssignments(p entity.UniversityFields) ([]string, []any) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.PhotoURL != nil {
		add("photo_url", p.PhotoURL)
	}
	if p.Name != nil {
		add("name", p.Name)
	}
	if p.Description != nil {
		add("description", p.Description)
	}
	if p.Specials != nil {
		add("specials", p.Specials)
	}
	if p.Financing != nil {
		add("financing", p.Financing)
	}
	if p.Duration != nil {
		add("duration", p.Duration)
	}
	if p.ApplicationDeadline != nil {
		args = append(args, p.ApplicationDeadline)
		sets = append(sets, fmt.Sprintf("application_deadline = $%d::text::date", len(args)))
	}
	if p.Gender != nil {
		add("gender", p.Gender)
	}
	if p.Age != nil {
		add("age", p.Age)
	}
	if p.Others != nil {
		add("others", p.Others)
	}
	if p.Medicine != nil {
		add("medicine", p.Medicine)
	}
	if p.Salary != nil {
		add("salary", p.Salary)
	}
	if p.Dormitory != nil {
		add("dormitory", p.Dormitory)
	}
	if p.Rewards != nil {
		add("rewards", p.Rewards)
	}
	if p.AdditionalOthers != nil {
		add("additional_others", p.AdditionalOthers)
	}
	if p.OfficialLink != nil {
		add("official_link", p.OfficialLink)
	}
	return sets, args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

var _ repository.UniversityRepository = (*UniversityRepository)(nil)
