package editing

import (
	"strings"
)

// Kind selects how a field renders, parses and treats blank input.
type Kind int

const (
	// KindText is a required single-line value: "Name: value".
	KindText Kind = iota
	// KindOptionalText is a single-line value that may be blank.
	KindOptionalText
	// KindMultilineText is a required value starting on the line after the label.
	KindMultilineText
	// KindOptionalMultilineText may be left blank.
	KindOptionalMultilineText
	// KindList is a required "; "-separated list on the label line.
	KindList
	// KindOptionalList may be left blank.
	KindOptionalList
	// KindMultilineList is a required list with one item per line.
	KindMultilineList
	// KindOptionalMultilineList may be left blank.
	KindOptionalMultilineList
	// KindChoice is a required value picked from injected candidates.
	KindChoice
	// KindOptionalChoice may be left blank.
	KindOptionalChoice
	// KindChoiceList is a multi-select over injected candidates; blank is allowed.
	KindChoiceList
	// KindBool renders as Yes/No.
	KindBool
)

// Placeholder markers shown above candidate lists.
const (
	MarkerChooseOne          = "## CHOOSE ONE ##"
	MarkerChooseOneOrNone    = "## CHOOSE ONE OR NONE ##"
	MarkerChooseOneOrDelete  = "## CHOOSE ONE OR DELETE ALL ##"
	listSeparator            = ";"
	listRenderSeparator      = "; "
	multilineRenderSeparator = "\n"
)

var kindNames = map[Kind]string{
	KindText:                  "text",
	KindOptionalText:          "optional text",
	KindMultilineText:         "multiline text",
	KindOptionalMultilineText: "optional multiline text",
	KindList:                  "list",
	KindOptionalList:          "optional list",
	KindMultilineList:         "multiline list",
	KindOptionalMultilineList: "optional multiline list",
	KindChoice:                "choice",
	KindOptionalChoice:        "optional choice",
	KindChoiceList:            "choice list",
	KindBool:                  "boolean",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Required reports whether a blank value is rejected.
func (k Kind) Required() bool {
	switch k {
	case KindText, KindMultilineText, KindList, KindMultilineList, KindChoice, KindBool:
		return true
	default:
		return false
	}
}

// Multiline reports whether the value starts on the line after the label.
func (k Kind) Multiline() bool {
	switch k {
	case KindMultilineText, KindOptionalMultilineText, KindMultilineList, KindOptionalMultilineList:
		return true
	default:
		return false
	}
}

// MultiValue reports whether the field holds a list of values.
func (k Kind) MultiValue() bool {
	switch k {
	case KindList, KindOptionalList, KindMultilineList, KindOptionalMultilineList, KindChoiceList:
		return true
	default:
		return false
	}
}

// Choice reports whether candidates can be injected with Form.AddChoices.
func (k Kind) Choice() bool {
	switch k {
	case KindChoice, KindOptionalChoice, KindChoiceList:
		return true
	default:
		return false
	}
}

func (k Kind) family() family {
	switch {
	case k == KindBool:
		return familyBool
	case k.MultiValue():
		return familyList
	default:
		return familyText
	}
}

type family int

const (
	familyText family = iota
	familyList
	familyBool
)

// Field is one labelled value of a form. The zero value is not useful; build
// fields with the New* constructors or ParseField.
type Field struct {
	name    string
	kind    Kind
	text    string
	values  []string
	flag    bool
	choices []string
}

// NewText builds a required single-line field.
func NewText(name, value string) Field { return textField(name, KindText, value) }

// NewOptionalText builds a single-line field that may be blank.
func NewOptionalText(name, value string) Field { return textField(name, KindOptionalText, value) }

// NewMultilineText builds a required multi-line field.
func NewMultilineText(name, value string) Field { return textField(name, KindMultilineText, value) }

// NewOptionalMultilineText builds a multi-line field that may be blank.
func NewOptionalMultilineText(name, value string) Field {
	return textField(name, KindOptionalMultilineText, value)
}

// NewChoice builds a required closed-choice field.
func NewChoice(name, value string) Field { return textField(name, KindChoice, value) }

// NewOptionalChoice builds a closed-choice field that may be blank.
func NewOptionalChoice(name, value string) Field { return textField(name, KindOptionalChoice, value) }

// NewList builds a required "; "-separated list.
func NewList(name string, values []string) Field { return listField(name, KindList, values) }

// NewOptionalList builds a "; "-separated list that may be empty.
func NewOptionalList(name string, values []string) Field {
	return listField(name, KindOptionalList, values)
}

// NewMultilineList builds a required one-per-line list.
func NewMultilineList(name string, values []string) Field {
	return listField(name, KindMultilineList, values)
}

// NewOptionalMultilineList builds a one-per-line list that may be empty.
func NewOptionalMultilineList(name string, values []string) Field {
	return listField(name, KindOptionalMultilineList, values)
}

// NewChoiceList builds a multi-select field.
func NewChoiceList(name string, values []string) Field {
	return listField(name, KindChoiceList, values)
}

// NewBool builds a Yes/No field.
func NewBool(name string, value bool) Field {
	return Field{name: name, kind: KindBool, flag: value}
}

func textField(name string, kind Kind, value string) Field {
	return Field{name: name, kind: kind, text: value}
}

func listField(name string, kind Kind, values []string) Field {
	f := Field{name: name, kind: kind}
	if len(values) > 0 {
		f.values = append([]string(nil), values...)
	}
	return f
}

// Name returns the field label.
func (f Field) Name() string { return f.name }

// Kind returns the field kind.
func (f Field) Kind() Kind { return f.kind }

// Choices returns the candidates injected for rendering.
func (f Field) Choices() []string { return append([]string(nil), f.choices...) }

// Values returns the items of a list field. Text fields return their value as
// a single item when it is not blank.
func (f Field) Values() []string {
	switch f.kind.family() {
	case familyList:
		return append([]string(nil), f.values...)
	case familyBool:
		return []string{f.Value()}
	default:
		if f.text == "" {
			return nil
		}
		return []string{f.text}
	}
}

// Bool returns the value of a boolean field.
func (f Field) Bool() bool { return f.flag }

// Value renders the value without its label: lists are joined with "; " (or a
// newline for multi-line lists) and booleans become Yes/No.
func (f Field) Value() string {
	switch f.kind {
	case KindList, KindOptionalList, KindChoiceList:
		return strings.Join(f.values, listRenderSeparator)
	case KindMultilineList, KindOptionalMultilineList:
		return strings.Join(f.values, multilineRenderSeparator)
	case KindBool:
		if f.flag {
			return "Yes"
		}
		return "No"
	default:
		return f.text
	}
}

// Render produces the field's section of a form document.
func (f Field) Render() string {
	var b strings.Builder
	b.WriteString(f.name)
	b.WriteByte(':')
	value := f.Value()

	switch f.kind {
	case KindMultilineText, KindOptionalMultilineText, KindMultilineList, KindOptionalMultilineList:
		b.WriteByte('\n')
		b.WriteString(value)
	case KindChoice, KindOptionalChoice, KindChoiceList:
		switch {
		case value != "":
			b.WriteByte(' ')
			b.WriteString(value)
		case len(f.choices) > 0:
			b.WriteByte('\n')
			b.WriteString(f.kind.marker())
			for _, choice := range f.choices {
				b.WriteByte('\n')
				b.WriteString(choice)
			}
		}
	default:
		if value != "" {
			b.WriteByte(' ')
			b.WriteString(value)
		}
	}
	return strings.TrimRight(b.String(), " \t\n")
}

func (k Kind) marker() string {
	switch k {
	case KindChoice:
		return MarkerChooseOne
	case KindOptionalChoice:
		return MarkerChooseOneOrNone
	default:
		return MarkerChooseOneOrDelete
	}
}

// ParseField rebuilds a field of the given kind from its section of an edited
// form. The section must start with "<name>:"; a missing label is a
// structural error.
func ParseField(name string, kind Kind, fragment string) (Field, error) {
	body := strings.TrimLeft(fragment, " \t\r\n")
	label := name + ":"
	if !strings.HasPrefix(body, label) {
		return Field{}, fieldError(ErrMalformedField, name)
	}
	rest := strings.TrimPrefix(body, label)
	if kind == KindMultilineText || kind == KindOptionalMultilineText {
		rest = strings.TrimPrefix(rest, ":")
	}
	rest = strings.TrimSpace(rest)
	if kind.Choice() {
		rest = stripMarkers(rest)
	}

	switch kind {
	case KindText, KindOptionalText, KindMultilineText, KindOptionalMultilineText, KindChoice, KindOptionalChoice:
		if rest == "" && kind.Required() {
			return Field{}, fieldError(ErrRequiredFieldEmpty, name)
		}
		return textField(name, kind, rest), nil
	case KindList, KindOptionalList:
		values := splitItems(rest, listSeparator)
		if len(values) == 0 && kind.Required() {
			return Field{}, fieldError(ErrRequiredFieldEmpty, name)
		}
		return listField(name, kind, values), nil
	case KindMultilineList, KindOptionalMultilineList:
		values := splitItems(rest, "\n")
		if len(values) == 0 && kind.Required() {
			return Field{}, fieldError(ErrRequiredFieldEmpty, name)
		}
		return listField(name, kind, values), nil
	case KindChoiceList:
		return listField(name, kind, splitItems(rest, listSeparator, "\n")), nil
	case KindBool:
		if rest == "" {
			return Field{}, fieldError(ErrRequiredFieldEmpty, name)
		}
		switch {
		case strings.EqualFold(rest, "yes"):
			return NewBool(name, true), nil
		case strings.EqualFold(rest, "no"):
			return NewBool(name, false), nil
		default:
			return Field{}, &FormError{Kind: ErrMalformedField, Field: name, Msg: "expected Yes or No"}
		}
	default:
		return Field{}, &FormError{Kind: ErrIncorrectType, Field: name, Msg: "unknown kind " + kind.String()}
	}
}

// splitItems splits s on any of the separators, trimming items and dropping
// blank ones.
func splitItems(s string, separators ...string) []string {
	if s == "" {
		return nil
	}
	for _, sep := range separators[1:] {
		s = strings.ReplaceAll(s, sep, separators[0])
	}
	var items []string
	for _, item := range strings.Split(s, separators[0]) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func stripMarkers(s string) string {
	if !strings.Contains(s, "##") {
		return s
	}
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		switch strings.TrimSpace(line) {
		case MarkerChooseOne, MarkerChooseOneOrNone, MarkerChooseOneOrDelete:
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
