package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursecatalog/internal/app/models"
	"github.com/yigit/coursecatalog/internal/pkg/dberrors"
	"github.com/yigit/coursecatalog/internal/pkg/logger"
)

const (
	coursesPrimaryKey      = "courses_pkey"
	prerequisiteForeignKey = "course_prerequisites_prerequisite_id_fkey"
)

// PostgresCourseRepository handles course database operations
type PostgresCourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new PostgreSQL-backed course repository
func NewCourseRepository(db *pgxpool.Pool) *PostgresCourseRepository {
	return &PostgresCourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// selectCourses builds the base query returning courses with their ordered prerequisite IDs
func (r *PostgresCourseRepository) selectCourses() squirrel.SelectBuilder {
	return r.sb.Select(
		"c.id",
		"c.title",
		"c.description",
		"COALESCE(array_agg(p.prerequisite_id ORDER BY p.position) FILTER (WHERE p.prerequisite_id IS NOT NULL), '{}')",
	).
		From("courses c").
		LeftJoin("course_prerequisites p ON p.course_id = c.id").
		GroupBy("c.id")
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	course := &models.Course{}
	if err := row.Scan(&course.ID, &course.Title, &course.Description, &course.Prerequisites); err != nil {
		return nil, err
	}
	return course, nil
}

// GetAll retrieves all courses in insertion order
func (r *PostgresCourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.selectCourses().OrderBy("c.seq ASC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all courses SQL")
		return nil, fmt.Errorf("failed to build get all courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning course row during get all")
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating course rows")
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// GetByID retrieves a course by ID
func (r *PostgresCourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	sql, args, err := r.selectCourses().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course by ID SQL")
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		logger.Error().Err(err).Str("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}

	return course, nil
}

// Exists checks if a course with the given ID is stored
func (r *PostgresCourseRepository) Exists(ctx context.Context, id string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building course exists SQL")
		return false, fmt.Errorf("failed to build course existence query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Str("courseID", id).Msg("Error checking course existence")
		return false, fmt.Errorf("error checking course existence: %w", err)
	}

	return exists, nil
}

// FindDependents returns the IDs of courses that list id as a prerequisite
func (r *PostgresCourseRepository) FindDependents(ctx context.Context, id string) ([]string, error) {
	sql, args, err := r.sb.Select("c.id").
		From("courses c").
		Where("EXISTS (SELECT 1 FROM course_prerequisites p WHERE p.course_id = c.id AND p.prerequisite_id = ?)", id).
		OrderBy("c.seq ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building find dependents SQL")
		return nil, fmt.Errorf("failed to build find dependents query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("courseID", id).Msg("Error executing find dependents query")
		return nil, fmt.Errorf("error querying dependent courses: %w", err)
	}

	dependents, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("error scanning dependent courses: %w", err)
	}
	if dependents == nil {
		dependents = []string{}
	}

	return dependents, nil
}

// Create inserts a course and its ordered prerequisites in one transaction
func (r *PostgresCourseRepository) Create(ctx context.Context, course *models.Course) error {
	courseSQL, courseArgs, err := r.sb.Insert("courses").
		Columns("id", "title", "description").
		Values(course.ID, course.Title, course.Description).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	var prereqSQL string
	var prereqArgs []interface{}
	if len(course.Prerequisites) > 0 {
		insert := r.sb.Insert("course_prerequisites").Columns("course_id", "prerequisite_id", "position")
		for position, prerequisiteID := range course.Prerequisites {
			insert = insert.Values(course.ID, prerequisiteID, position)
		}
		prereqSQL, prereqArgs, err = insert.ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building create prerequisites SQL")
			return fmt.Errorf("failed to build create prerequisites query: %w", err)
		}
	}

	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, courseSQL, courseArgs...); err != nil {
			return err
		}
		if prereqSQL != "" {
			if _, err := tx.Exec(ctx, prereqSQL, prereqArgs...); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, coursesPrimaryKey) {
			return ErrCourseAlreadyExists
		}
		if dberrors.IsForeignKeyConstraintError(err, prerequisiteForeignKey) {
			return ErrPrerequisiteNotFound
		}
		logger.Error().Err(err).Str("courseID", course.ID).Msg("Error executing create course transaction")
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// Delete deletes a course by ID; its own prerequisite rows cascade
func (r *PostgresCourseRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete course SQL")
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyConstraintError(err, prerequisiteForeignKey) {
			return ErrCourseReferenced
		}
		logger.Error().Err(err).Str("courseID", id).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrCourseNotFound
	}

	return nil
}
