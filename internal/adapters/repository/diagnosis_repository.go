package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
	"github.com/stavrosm/city-clinic/records-service/internal/core/ports"
)

type DiagnosisRepository struct {
	db *sql.DB
}

var _ ports.DiagnosisRepository = (*DiagnosisRepository)(nil)

func NewDiagnosisRepository(db *sql.DB) *DiagnosisRepository {
	return &DiagnosisRepository{db: db}
}

// Save inserts the diagnosis row and its audit event in one transaction, so
// the relay never sees an event for a row that failed to commit.
func (r *DiagnosisRepository) Save(ctx context.Context, diagnosis domain.Diagnosis, outboxPayload []byte) (*domain.Diagnosis, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO patient_diseases (patient_id, disease_id, diagnosis_date, notes, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING patient_disease_id`,
		diagnosis.PatientID,
		diagnosis.DiseaseID,
		diagnosis.DiagnosisDate,
		diagnosis.Notes,
		diagnosis.Status,
	).Scan(&diagnosis.ID)
	if err != nil {
		return nil, err
	}

	if err := insertOutboxEvent(ctx, tx, ports.EventDiagnosisRecorded, outboxPayload); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &diagnosis, nil
}

func (r *DiagnosisRepository) FindByPatientID(ctx context.Context, patientID int) ([]domain.DiagnosisRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT pd.patient_disease_id, pd.patient_id, pd.disease_id, pd.diagnosis_date,
		        COALESCE(pd.notes, ''), COALESCE(pd.status, ''),
		        d.name, COALESCE(d.description, ''), COALESCE(d.symptoms, ''), COALESCE(d.treatment, '')
		 FROM patient_diseases pd
		 JOIN diseases d ON pd.disease_id = d.disease_id
		 WHERE pd.patient_id = $1
		 ORDER BY pd.diagnosis_date DESC`,
		patientID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.DiagnosisRecord
	for rows.Next() {
		var rec domain.DiagnosisRecord
		err := rows.Scan(
			&rec.ID,
			&rec.PatientID,
			&rec.DiseaseID,
			&rec.DiagnosisDate,
			&rec.Notes,
			&rec.Status,
			&rec.DiseaseName,
			&rec.DiseaseDescription,
			&rec.DiseaseSymptoms,
			&rec.DiseaseTreatment,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Delete removes one diagnosis row. The audit event is only written when a
// row actually existed.
func (r *DiagnosisRepository) Delete(ctx context.Context, diagnosisID int, outboxPayload []byte) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"DELETE FROM patient_diseases WHERE patient_disease_id = $1",
		diagnosisID,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, tx.Commit()
	}

	if err := insertOutboxEvent(ctx, tx, ports.EventDiagnosisRemoved, outboxPayload); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// insertOutboxEvent stores the event and notifies the relay. The NOTIFY is
// issued inside the transaction, so Postgres delivers it only on commit.
func insertOutboxEvent(ctx context.Context, tx *sql.Tx, eventType string, payload []byte) error {
	eventID := uuid.NewString()
	_, err := tx.ExecContext(ctx,
		`INSERT INTO outbox_events (id, event_type, payload, created_at)
		 VALUES ($1, $2, $3, NOW())`,
		eventID,
		eventType,
		payload,
	)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, "SELECT pg_notify('outbox_channel', $1)", eventID)
	return err
}
