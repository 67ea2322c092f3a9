package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sims/sims-backend/internal/model"
)

// batchChunkSize bounds the rows per INSERT so a bulk save stays well below
// PostgreSQL's 65535 bind parameter limit.
const batchChunkSize = 500

var studentColumns = []string{
	"id", "admission_number", "full_name", "date_of_birth", "gender",
	"address", "contact_number", "grade", "stream", "created_at", "updated_at",
}

var studentInsertColumns = []string{
	"admission_number", "full_name", "date_of_birth", "gender",
	"address", "contact_number", "grade", "stream",
}

// fieldColumns whitelists the columns usable in count and group queries.
var fieldColumns = map[model.StudentField]string{
	model.FieldGrade:  "grade",
	model.FieldGender: "gender",
	model.FieldStream: "stream",
}

// StudentRepository handles student data access.
type StudentRepository struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByID retrieves a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get student query: %w", err)
	}

	s, err := scanStudent(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get student %d: %w", id, err)
	}
	return s, nil
}

// List retrieves every student ordered by ID.
func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	return r.query(ctx, r.sb.Select(studentColumns...).From("students").OrderBy("id ASC"))
}

// Search retrieves the students matching every present filter.
func (r *StudentRepository) Search(ctx context.Context, filter model.StudentFilter) ([]model.Student, error) {
	return r.query(ctx, r.searchQuery(filter))
}

func (r *StudentRepository) searchQuery(filter model.StudentFilter) squirrel.SelectBuilder {
	q := r.sb.Select(studentColumns...).From("students")

	if filter.Query != nil {
		pattern := "%" + escapeLike(*filter.Query) + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"full_name": pattern},
			squirrel.ILike{"admission_number": pattern},
		})
	}
	if filter.Grade != nil {
		q = q.Where(squirrel.Eq{"grade": *filter.Grade})
	}
	if filter.Stream != nil {
		q = q.Where(squirrel.Eq{"stream": *filter.Stream})
	}

	return q.OrderBy("id ASC")
}

func (r *StudentRepository) query(ctx context.Context, b squirrel.SelectBuilder) ([]model.Student, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build student query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, *s)
	}
	return students, rows.Err()
}

// Create inserts a new student.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns(studentInsertColumns...).
		Values(insertValues(s)...).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create student query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateAdmissionNumber
		}
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// CreateBatch inserts all students in one transaction. A single failing row
// rolls back the whole batch.
func (r *StudentRepository) CreateBatch(ctx context.Context, students []*model.Student) error {
	if len(students) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	for start := 0; start < len(students); start += batchChunkSize {
		end := min(start+batchChunkSize, len(students))
		chunk := students[start:end]

		sql, args, err := r.batchInsertQuery(chunk).ToSql()
		if err != nil {
			return fmt.Errorf("build batch insert: %w", err)
		}

		rows, err := tx.Query(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("batch insert: %w", err)
		}
		i := 0
		for rows.Next() {
			s := chunk[i]
			if err := rows.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
				rows.Close()
				return fmt.Errorf("scan batch insert: %w", err)
			}
			i++
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateAdmissionNumber
			}
			return fmt.Errorf("batch insert: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateAdmissionNumber
		}
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

func (r *StudentRepository) batchInsertQuery(chunk []*model.Student) squirrel.InsertBuilder {
	q := r.sb.Insert("students").Columns(studentInsertColumns...)
	for _, s := range chunk {
		q = q.Values(insertValues(s)...)
	}
	// Postgres returns rows of a multi-row VALUES insert in input order.
	return q.Suffix("RETURNING id, created_at, updated_at")
}

// Update replaces every editable field of an existing student.
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	sql, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"admission_number": s.AdmissionNumber,
			"full_name":        s.FullName,
			"date_of_birth":    s.DateOfBirth,
			"gender":           nullable(s.Gender),
			"address":          nullable(s.Address),
			"contact_number":   nullable(s.ContactNumber),
			"grade":            nullable(s.Grade),
			"stream":           nullable(s.Stream),
			"updated_at":       squirrel.Expr("CURRENT_TIMESTAMP"),
		}).
		Where(squirrel.Eq{"id": s.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update student query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if isUniqueViolation(err) {
			return ErrDuplicateAdmissionNumber
		}
		return fmt.Errorf("update student %d: %w", s.ID, err)
	}
	return nil
}

// Delete removes a student by ID.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("students").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete student query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete student %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of students.
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx, r.sb.Select("COUNT(*)").From("students"))
}

// CountWhere returns the number of students whose field equals value.
func (r *StudentRepository) CountWhere(ctx context.Context, field model.StudentField, value string) (int, error) {
	q, err := r.countWhereQuery(field, value)
	if err != nil {
		return 0, err
	}
	return r.count(ctx, q)
}

func (r *StudentRepository) countWhereQuery(field model.StudentField, value string) (squirrel.SelectBuilder, error) {
	col, ok := fieldColumns[field]
	if !ok {
		return squirrel.SelectBuilder{}, fmt.Errorf("unsupported student field %q", field)
	}
	return r.sb.Select("COUNT(*)").From("students").Where(squirrel.Eq{col: value}), nil
}

func (r *StudentRepository) count(ctx context.Context, b squirrel.SelectBuilder) (int, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}
	var n int
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return n, nil
}

// GroupCount returns the number of students per distinct value of field.
// NULL values are reported as "". Group order is whatever the database yields.
func (r *StudentRepository) GroupCount(ctx context.Context, field model.StudentField) ([]model.DistributionItem, error) {
	b, err := r.groupCountQuery(field)
	if err != nil {
		return nil, err
	}
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build group count query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("group students by %s: %w", field, err)
	}
	defer rows.Close()

	items := []model.DistributionItem{}
	for rows.Next() {
		var item model.DistributionItem
		if err := rows.Scan(&item.Value, &item.Count); err != nil {
			return nil, fmt.Errorf("scan group count: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *StudentRepository) groupCountQuery(field model.StudentField) (squirrel.SelectBuilder, error) {
	col, ok := fieldColumns[field]
	if !ok {
		return squirrel.SelectBuilder{}, fmt.Errorf("unsupported student field %q", field)
	}
	return r.sb.Select("COALESCE("+col+", '')", "COUNT(*)").
		From("students").
		GroupBy(col), nil
}

func scanStudent(row pgx.Row) (*model.Student, error) {
	s := &model.Student{}
	var gender, address, contact, grade, stream *string
	err := row.Scan(
		&s.ID, &s.AdmissionNumber, &s.FullName, &s.DateOfBirth, &gender,
		&address, &contact, &grade, &stream, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Gender = deref(gender)
	s.Address = deref(address)
	s.ContactNumber = deref(contact)
	s.Grade = deref(grade)
	s.Stream = deref(stream)
	return s, nil
}

func insertValues(s *model.Student) []interface{} {
	return []interface{}{
		s.AdmissionNumber,
		s.FullName,
		s.DateOfBirth,
		nullable(s.Gender),
		nullable(s.Address),
		nullable(s.ContactNumber),
		nullable(s.Grade),
		nullable(s.Stream),
	}
}

// nullable stores empty optional strings as NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE metacharacters in user input match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
