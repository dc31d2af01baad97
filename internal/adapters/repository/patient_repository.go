package repository

import (
	"context"
	"database/sql"

	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
	"github.com/stavrosm/city-clinic/records-service/internal/core/ports"
)

type PatientRepository struct {
	db *sql.DB
}

// Ensure PatientRepository implements ports.PatientRepository
var _ ports.PatientRepository = (*PatientRepository)(nil)

func NewPatientRepository(db *sql.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) Save(ctx context.Context, patient domain.Patient) (*domain.Patient, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO patients (first_name, last_name, date_of_birth, gender, contact_number, email, address, registration_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING patient_id`,
		patient.FirstName,
		patient.LastName,
		patient.DateOfBirth,
		patient.Gender,
		patient.ContactNumber,
		patient.Email,
		patient.Address,
		patient.RegistrationDate,
	).Scan(&patient.ID)
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *PatientRepository) Update(ctx context.Context, patient domain.Patient) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE patients SET first_name = $1, last_name = $2, date_of_birth = $3,
		 gender = $4, contact_number = $5, email = $6, address = $7
		 WHERE patient_id = $8`,
		patient.FirstName,
		patient.LastName,
		patient.DateOfBirth,
		patient.Gender,
		patient.ContactNumber,
		patient.Email,
		patient.Address,
		patient.ID,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PatientRepository) Delete(ctx context.Context, patientID int) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM patients WHERE patient_id = $1", patientID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PatientRepository) FindByID(ctx context.Context, patientID int) (*domain.Patient, error) {
	row := r.db.QueryRowContext(ctx,
		selectPatientColumns+" FROM patients WHERE patient_id = $1",
		patientID,
	)
	patient, err := scanPatient(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return patient, nil
}

func (r *PatientRepository) FindAll(ctx context.Context) ([]domain.Patient, error) {
	rows, err := r.db.QueryContext(ctx,
		selectPatientColumns+" FROM patients ORDER BY last_name, first_name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPatients(rows)
}

func (r *PatientRepository) SearchByName(ctx context.Context, term string) ([]domain.Patient, error) {
	rows, err := r.db.QueryContext(ctx,
		selectPatientColumns+` FROM patients
		 WHERE first_name ILIKE '%' || $1 || '%' OR last_name ILIKE '%' || $1 || '%'
		 ORDER BY last_name, first_name`,
		term,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPatients(rows)
}

const selectPatientColumns = `SELECT patient_id, first_name, last_name, date_of_birth, gender,
	COALESCE(contact_number, ''), COALESCE(email, ''), COALESCE(address, ''), registration_date`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPatient(row rowScanner) (*domain.Patient, error) {
	var p domain.Patient
	err := row.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.DateOfBirth,
		&p.Gender,
		&p.ContactNumber,
		&p.Email,
		&p.Address,
		&p.RegistrationDate,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPatients(rows *sql.Rows) ([]domain.Patient, error) {
	var patients []domain.Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		patients = append(patients, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return patients, nil
}
