package editing

import (
	"fmt"
	"strings"
)

// Delimiter separates the sections of a rendered form.
const Delimiter = "---\n"

// FieldSpec names one section of a form layout.
type FieldSpec struct {
	Name string
	Kind Kind
}

// Schema is the fixed, ordered layout of an entity's form.
type Schema []FieldSpec

// Form is an ordered collection of fields with unique names.
type Form struct {
	fields []Field
}

// NewForm builds a form from fields in render order.
func NewForm(fields ...Field) *Form {
	f := &Form{}
	for _, field := range fields {
		f.Add(field)
	}
	return f
}

// Add appends a field, replacing any existing field with the same name in
// place.
func (f *Form) Add(field Field) {
	for i := range f.fields {
		if f.fields[i].name == field.name {
			f.fields[i] = field
			return
		}
	}
	f.fields = append(f.fields, field)
}

// Len returns the number of sections.
func (f *Form) Len() int { return len(f.fields) }

// Fields returns a copy of the fields in render order.
func (f *Form) Fields() []Field { return append([]Field(nil), f.fields...) }

// Schema returns the form's layout.
func (f *Form) Schema() Schema {
	schema := make(Schema, len(f.fields))
	for i, field := range f.fields {
		schema[i] = FieldSpec{Name: field.name, Kind: field.kind}
	}
	return schema
}

// Field looks a field up by name.
func (f *Form) Field(name string) (Field, error) {
	for _, field := range f.fields {
		if field.name == name {
			return field, nil
		}
	}
	return Field{}, fieldError(ErrFieldNotFound, name)
}

// AddChoices injects candidates into a choice field. Candidates render only
// while the field is blank.
func (f *Form) AddChoices(name string, candidates []string) error {
	for i := range f.fields {
		if f.fields[i].name == name && f.fields[i].kind.Choice() {
			f.fields[i].choices = append([]string(nil), candidates...)
			return nil
		}
	}
	return fieldError(ErrChoiceFieldNotFound, name)
}

// Text returns the value of a single-value text or choice field.
func (f *Form) Text(name string) (string, error) {
	field, err := f.typed(name, familyText)
	if err != nil {
		return "", err
	}
	return field.text, nil
}

// List returns the items of a list or choice-list field.
func (f *Form) List(name string) ([]string, error) {
	field, err := f.typed(name, familyList)
	if err != nil {
		return nil, err
	}
	return field.Values(), nil
}

// Bool returns the value of a boolean field.
func (f *Form) Bool(name string) (bool, error) {
	field, err := f.typed(name, familyBool)
	if err != nil {
		return false, err
	}
	return field.flag, nil
}

func (f *Form) typed(name string, want family) (Field, error) {
	field, err := f.Field(name)
	if err != nil {
		return Field{}, err
	}
	if field.kind.family() != want {
		return Field{}, &FormError{Kind: ErrIncorrectType, Field: name, Msg: "field is " + field.kind.String()}
	}
	return field, nil
}

// String renders the form as the text handed to an editor.
func (f *Form) String() string {
	sections := make([]string, len(f.fields))
	for i, field := range f.fields {
		sections[i] = field.Render()
	}
	return strings.TrimSpace(strings.Join(sections, "\n"+Delimiter))
}

// Parse reads an edited document laid out by s. The document must have
// exactly one section per field.
func (s Schema) Parse(text string) (*Form, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	sections := strings.Split(text, Delimiter)
	if len(sections) != len(s) {
		return nil, &FormError{
			Kind: ErrMalformedForm,
			Msg:  fmt.Sprintf("expected %d sections separated by %q, found %d", len(s), strings.TrimSpace(Delimiter), len(sections)),
		}
	}
	form := &Form{fields: make([]Field, 0, len(s))}
	for i, spec := range s {
		field, err := ParseField(spec.Name, spec.Kind, sections[i])
		if err != nil {
			return nil, err
		}
		form.fields = append(form.fields, field)
	}
	return form, nil
}

// ParseForm is shorthand for schema.Parse(text).
func ParseForm(schema Schema, text string) (*Form, error) {
	return schema.Parse(text)
}
