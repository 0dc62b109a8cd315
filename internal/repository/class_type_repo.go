package repository

import (
	"context"

	"github.com/omnifyfit/StudioBack/internal/models"
)

type ClassTypeRepository struct {
	db DBTX
}

func NewClassTypeRepository(db DBTX) *ClassTypeRepository {
	return &ClassTypeRepository{db: db}
}

func (r *ClassTypeRepository) List(ctx context.Context) ([]models.ClassType, error) {
	query := `
		SELECT id, name, description
		FROM class_types
		ORDER BY name ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classTypes := make([]models.ClassType, 0)
	for rows.Next() {
		var classType models.ClassType
		if err := rows.Scan(&classType.ID, &classType.Name, &classType.Description); err != nil {
			return nil, err
		}
		classTypes = append(classTypes, classType)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return classTypes, nil
}

func (r *ClassTypeRepository) GetByName(ctx context.Context, name string) (*models.ClassType, error) {
	query := `
		SELECT id, name, description
		FROM class_types
		WHERE name = $1
	`
	var classType models.ClassType
	err := r.db.QueryRow(ctx, query, name).
		Scan(&classType.ID, &classType.Name, &classType.Description)
	if err != nil {
		return nil, err
	}
	return &classType, nil
}

func (r *ClassTypeRepository) Create(ctx context.Context, name, description string) (*models.ClassType, error) {
	query := `
		INSERT INTO class_types (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description
	`
	var classType models.ClassType
	err := r.db.QueryRow(ctx, query, name, description).
		Scan(&classType.ID, &classType.Name, &classType.Description)
	if err != nil {
		return nil, err
	}
	return &classType, nil
}
