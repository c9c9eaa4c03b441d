package entity

import (
	"time"

	"github.com/google/uuid"
)

// Gender is the fixed enumeration accepted for Entry.Gender.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Genders lists every accepted Gender value.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// Valid reports whether g is one of the accepted values.
func (g Gender) Valid() bool {
	for _, v := range Genders {
		if g == v {
			return true
		}
	}
	return false
}

// Entry represents a core domain record without infrastructure concerns.
type Entry struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	Hobbies   []string
	Place     string
	Gender    Gender
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Fields are the user-supplied parts of an Entry. Create and update both
// take the full set.
type Fields struct {
	Name    string
	Email   string
	Phone   string
	Hobbies []string
	Place   string
	Gender  Gender
}

// Fields returns the user-supplied parts of e.
func (e Entry) Fields() Fields {
	hobbies := make([]string, len(e.Hobbies))
	copy(hobbies, e.Hobbies)
	return Fields{
		Name:    e.Name,
		Email:   e.Email,
		Phone:   e.Phone,
		Hobbies: hobbies,
		Place:   e.Place,
		Gender:  e.Gender,
	}
}

// Apply overwrites every user-supplied field of e with f.
func (e *Entry) Apply(f Fields) {
	e.Name = f.Name
	e.Email = f.Email
	e.Phone = f.Phone
	e.Hobbies = append([]string(nil), f.Hobbies...)
	e.Place = f.Place
	e.Gender = f.Gender
}

// HasAnyHobby reports whether e lists at least one of hobbies.
func (e Entry) HasAnyHobby(hobbies []string) bool {
	for _, want := range hobbies {
		for _, have := range e.Hobbies {
			if have == want {
				return true
			}
		}
	}
	return false
}
