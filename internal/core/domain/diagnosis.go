package domain

import "time"

// Diagnosis links a patient to a disease for one diagnosis episode. The same
// (patient, disease) pair may recur; each episode is its own row with its own
// status and notes. DiagnosisDate is set at creation and immutable.
type Diagnosis struct {
	ID            int       `json:"id"`
	PatientID     int       `json:"patient_id"`
	DiseaseID     int       `json:"disease_id"`
	DiagnosisDate time.Time `json:"diagnosis_date"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status,omitempty"`
}

// DiagnosisRecord is the read view of a diagnosis joined with the referenced
// disease's catalog fields. Assembled at query time, never stored.
type DiagnosisRecord struct {
	Diagnosis
	DiseaseName        string `json:"disease_name"`
	DiseaseDescription string `json:"disease_description,omitempty"`
	DiseaseSymptoms    string `json:"disease_symptoms,omitempty"`
	DiseaseTreatment   string `json:"disease_treatment,omitempty"`
}
