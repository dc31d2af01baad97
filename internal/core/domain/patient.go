package domain

import "time"

// Patient is a demographic record. ID and RegistrationDate are assigned at
// creation and never mutated afterwards.
type Patient struct {
	ID               int       `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	DateOfBirth      time.Time `json:"date_of_birth"`
	Gender           string    `json:"gender"`
	ContactNumber    string    `json:"contact_number,omitempty"`
	Email            string    `json:"email,omitempty"`
	Address          string    `json:"address,omitempty"`
	RegistrationDate time.Time `json:"registration_date"`
}

// Age returns whole calendar years since the date of birth.
func (p *Patient) Age() int {
	return ageAt(p.DateOfBirth, time.Now())
}

func ageAt(born, now time.Time) int {
	years := now.Year() - born.Year()
	anniversary := born.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
