package domain

// Disease is a catalog entry. Reference data only; it relates to patients
// exclusively through Diagnosis rows.
type Disease struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Symptoms    string `json:"symptoms,omitempty"`
	Treatment   string `json:"treatment,omitempty"`
}
