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

const instanceTripleConstraint = "course_instances_course_year_semester_key"

// PostgresInstanceRepository handles course instance database operations
type PostgresInstanceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInstanceRepository creates a new PostgreSQL-backed instance repository
func NewInstanceRepository(db *pgxpool.Pool) *PostgresInstanceRepository {
	return &PostgresInstanceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func keyPredicate(key models.InstanceKey) squirrel.Eq {
	return squirrel.Eq{
		"course_id": key.CourseID,
		"year":      key.Year,
		"semester":  int(key.Semester),
	}
}

func scanInstance(row pgx.Row) (*models.CourseInstance, error) {
	instance := &models.CourseInstance{}
	var semester int
	if err := row.Scan(&instance.ID, &instance.CourseID, &instance.Year, &semester); err != nil {
		return nil, err
	}
	instance.Semester = models.Semester(semester)
	return instance, nil
}

// GetAll retrieves all instances matching the filter in insertion order
func (r *PostgresInstanceRepository) GetAll(ctx context.Context, filter models.InstanceFilter) ([]*models.CourseInstance, error) {
	query := r.sb.Select("id", "course_id", "year", "semester").
		From("course_instances").
		OrderBy("seq ASC")
	if filter.Year != nil {
		query = query.Where(squirrel.Eq{"year": *filter.Year})
	}
	if filter.Semester != nil {
		query = query.Where(squirrel.Eq{"semester": int(*filter.Semester)})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all instances SQL")
		return nil, fmt.Errorf("failed to build get all instances query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all instances query")
		return nil, fmt.Errorf("error querying instances: %w", err)
	}
	defer rows.Close()

	instances := []*models.CourseInstance{}
	for rows.Next() {
		instance, err := scanInstance(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning instance row during get all")
			return nil, fmt.Errorf("error scanning instance row: %w", err)
		}
		instances = append(instances, instance)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating instance rows")
		return nil, fmt.Errorf("error iterating instance rows: %w", err)
	}

	return instances, nil
}

// GetByKey retrieves an instance by its (course, year, semester) triple
func (r *PostgresInstanceRepository) GetByKey(ctx context.Context, key models.InstanceKey) (*models.CourseInstance, error) {
	sql, args, err := r.sb.Select("id", "course_id", "year", "semester").
		From("course_instances").
		Where(keyPredicate(key)).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get instance SQL")
		return nil, fmt.Errorf("failed to build get instance query: %w", err)
	}

	instance, err := scanInstance(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInstanceNotFound
		}
		logger.Error().Err(err).Stringer("instance", key).Msg("Error scanning instance row")
		return nil, fmt.Errorf("error getting instance: %w", err)
	}

	return instance, nil
}

// Create inserts a new instance
func (r *PostgresInstanceRepository) Create(ctx context.Context, instance *models.CourseInstance) error {
	sql, args, err := r.sb.Insert("course_instances").
		Columns("id", "course_id", "year", "semester").
		Values(instance.ID, instance.CourseID, instance.Year, int(instance.Semester)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create instance SQL")
		return fmt.Errorf("failed to build create instance query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, instanceTripleConstraint) {
			return ErrInstanceAlreadyExists
		}
		logger.Error().Err(err).Str("instanceID", instance.ID).Msg("Error executing create instance query")
		return fmt.Errorf("error creating instance: %w", err)
	}

	return nil
}

// Delete deletes an instance by its (course, year, semester) triple
func (r *PostgresInstanceRepository) Delete(ctx context.Context, key models.InstanceKey) error {
	sql, args, err := r.sb.Delete("course_instances").
		Where(keyPredicate(key)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete instance SQL")
		return fmt.Errorf("failed to build delete instance query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Stringer("instance", key).Msg("Error executing delete instance query")
		return fmt.Errorf("error deleting instance: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrInstanceNotFound
	}

	return nil
}
