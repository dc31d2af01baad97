package repository

import (
	"context"
	"database/sql"

	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
	"github.com/stavrosm/city-clinic/records-service/internal/core/ports"
)

type DiseaseRepository struct {
	db *sql.DB
}

var _ ports.DiseaseRepository = (*DiseaseRepository)(nil)

func NewDiseaseRepository(db *sql.DB) *DiseaseRepository {
	return &DiseaseRepository{db: db}
}

func (r *DiseaseRepository) Save(ctx context.Context, disease domain.Disease) (*domain.Disease, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO diseases (name, description, symptoms, treatment)
		 VALUES ($1, $2, $3, $4)
		 RETURNING disease_id`,
		disease.Name,
		disease.Description,
		disease.Symptoms,
		disease.Treatment,
	).Scan(&disease.ID)
	if err != nil {
		return nil, err
	}
	return &disease, nil
}

func (r *DiseaseRepository) FindAll(ctx context.Context) ([]domain.Disease, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT disease_id, name, COALESCE(description, ''), COALESCE(symptoms, ''), COALESCE(treatment, '')
		 FROM diseases ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var diseases []domain.Disease
	for rows.Next() {
		var d domain.Disease
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Symptoms, &d.Treatment); err != nil {
			return nil, err
		}
		diseases = append(diseases, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return diseases, nil
}

func (r *DiseaseRepository) FindByID(ctx context.Context, diseaseID int) (*domain.Disease, error) {
	var d domain.Disease
	err := r.db.QueryRowContext(ctx,
		`SELECT disease_id, name, COALESCE(description, ''), COALESCE(symptoms, ''), COALESCE(treatment, '')
		 FROM diseases WHERE disease_id = $1`,
		diseaseID,
	).Scan(&d.ID, &d.Name, &d.Description, &d.Symptoms, &d.Treatment)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}
