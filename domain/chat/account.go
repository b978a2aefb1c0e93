// Package chat contains core concepts of the chat system.
// This file defines Account references and their category.
// Patients and providers live in disjoint directories, so every account
// reference carries the category used to resolve its profile.
package chat

import (
	"fmt"
	"strings"
)

type Category int

const (
	CategoryUnknown Category = iota
	CategoryPatient
	CategoryProvider
)

func (c Category) String() string {
	switch c {
	case CategoryPatient:
		return "patient"
	case CategoryProvider:
		return "provider"
	default:
		return "unknown"
	}
}

// ParseCategory maps the wire name of a category back to its value.
// "user" and "doctor" are accepted as legacy aliases.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "patient", "user":
		return CategoryPatient, nil
	case "provider", "doctor":
		return CategoryProvider, nil
	default:
		return CategoryUnknown, fmt.Errorf("unknown account category %q", s)
	}
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Account identifies a participant and the directory owning its profile.
type Account struct {
	ID       string   `json:"id" msgpack:"id" validate:"required"`
	Category Category `json:"category" msgpack:"category" validate:"oneof=1 2"`
}

func NewPatient(id string) Account {
	return Account{ID: id, Category: CategoryPatient}
}

func NewProvider(id string) Account {
	return Account{ID: id, Category: CategoryProvider}
}
