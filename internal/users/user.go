package users

import "time"

// User holds the profile attributes plus the chosen training plan and
// its start date. CurrentPlanID is nil until the user picks a plan,
// which is a valid waiting state, not an error.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	DateOfBirth  *time.Time `json:"dob,omitempty"`
	HeightCm     int        `json:"height,omitempty"`
	Sex          string     `json:"sex,omitempty"`

	CurrentPlanID *string    `json:"currentPlanId,omitempty"`
	PlanStartDate *time.Time `json:"planStartDate,omitempty"`
}
