package editing

import "archivewit/internal/archive"

// roleFields pairs each master video role section with the person type it
// assigns, in form order.
var roleFields = []struct {
	Field string
	Type  archive.PersonType
}{
	{"Eyewitnesses", archive.PersonEyewitness},
	{"Fire", archive.PersonFire},
	{"Police", archive.PersonPolice},
	{"Port Authority", archive.PersonPortAuthority},
	{"Reporters", archive.PersonReporter},
	{"Survivors", archive.PersonSurvivor},
	{"Victims", archive.PersonVictim},
	{"Videographers", archive.PersonVideographer},
}

// peopleMerger collects people named under several roles into one entry per
// name, keeping the order names were first seen.
type peopleMerger struct {
	known  map[string]archive.Person
	index  map[string]int
	people []archive.Person
}

func newPeopleMerger(known []archive.Person) *peopleMerger {
	m := &peopleMerger{
		known: make(map[string]archive.Person, len(known)),
		index: make(map[string]int),
	}
	for _, p := range known {
		if _, dup := m.known[p.Name]; !dup {
			m.known[p.Name] = p
		}
	}
	return m
}

// add tags name with role, creating the entry on first sight. Existing people
// keep their identity, title and description; a name with no match gets ID 0.
func (m *peopleMerger) add(name string, role archive.PersonType) {
	if i, ok := m.index[name]; ok {
		m.people[i].AddType(role)
		return
	}
	person := archive.Person{Name: name}
	if existing, ok := m.known[name]; ok {
		person.ID = existing.ID
		person.HistoricalTitle = existing.HistoricalTitle
		person.Description = existing.Description
	}
	person.AddType(role)
	m.index[name] = len(m.people)
	m.people = append(m.people, person)
}

func (m *peopleMerger) result() []archive.Person { return m.people }

// peopleFromForm reads every role section of form and merges the names
// against the known people.
func peopleFromForm(form *Form, known []archive.Person) ([]archive.Person, error) {
	merger := newPeopleMerger(known)
	for _, role := range roleFields {
		names, err := form.List(role.Field)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			merger.add(name, role.Type)
		}
	}
	return merger.result(), nil
}
