package archive

import (
	"fmt"
	"strings"
)

// PersonType is a role a person plays in footage.
type PersonType string

const (
	PersonEyewitness    PersonType = "eyewitness"
	PersonFire          PersonType = "fire"
	PersonPolice        PersonType = "police"
	PersonPortAuthority PersonType = "portauthority"
	PersonReporter      PersonType = "reporter"
	PersonSurvivor      PersonType = "survivor"
	PersonVictim        PersonType = "victim"
	PersonVideographer  PersonType = "videographer"
)

// PersonTypes lists every role in form order.
var PersonTypes = []PersonType{
	PersonEyewitness,
	PersonFire,
	PersonPolice,
	PersonPortAuthority,
	PersonReporter,
	PersonSurvivor,
	PersonVictim,
	PersonVideographer,
}

var personTypeLabels = map[PersonType]string{
	PersonEyewitness:    "Eyewitness",
	PersonFire:          "Fire",
	PersonPolice:        "Police",
	PersonPortAuthority: "Port Authority",
	PersonReporter:      "Reporter",
	PersonSurvivor:      "Survivor",
	PersonVictim:        "Victim",
	PersonVideographer:  "Videographer",
}

// String returns the human label, e.g. "Port Authority".
func (t PersonType) String() string {
	if label, ok := personTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// ParsePersonType accepts either the stored value ("portauthority") or the
// label ("Port Authority"), case-insensitively.
func ParsePersonType(value string) (PersonType, error) {
	key := folder.String(strings.ReplaceAll(strings.TrimSpace(value), " ", ""))
	for _, t := range PersonTypes {
		if string(t) == key {
			return t, nil
		}
	}
	return "", fmt.Errorf("%q is not a valid person type", value)
}

// Person is identified by name. Types accumulates every role the person has
// been tagged with.
type Person struct {
	ID              int64
	Name            string
	HistoricalTitle string
	Description     string
	Types           []PersonType
}

// HasType reports whether the person carries the role.
func (p Person) HasType(t PersonType) bool {
	for _, existing := range p.Types {
		if existing == t {
			return true
		}
	}
	return false
}

// AddType appends the role unless it is already present.
func (p *Person) AddType(t PersonType) {
	if !p.HasType(t) {
		p.Types = append(p.Types, t)
	}
}
