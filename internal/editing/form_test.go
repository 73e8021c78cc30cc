package editing

import (
	"errors"
	"strings"
	"testing"
)

func sampleForm() *Form {
	return NewForm(
		NewText("Title", "Sample"),
		NewOptionalList("Links", []string{"https://example.com/a"}),
		NewBool("Primary", true),
		NewOptionalChoice("Network", ""),
	)
}

func TestFormString(t *testing.T) {
	want := "Title: Sample\n---\nLinks: https://example.com/a\n---\nPrimary: Yes\n---\nNetwork:"
	if got := sampleForm().String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestFormAccessors(t *testing.T) {
	form := sampleForm()
	if got, err := form.Text("Title"); err != nil || got != "Sample" {
		t.Fatalf("Text(Title) = %q, %v", got, err)
	}
	if got, err := form.List("Links"); err != nil || len(got) != 1 {
		t.Fatalf("List(Links) = %v, %v", got, err)
	}
	if got, err := form.Bool("Primary"); err != nil || !got {
		t.Fatalf("Bool(Primary) = %v, %v", got, err)
	}
	if got, err := form.Text("Network"); err != nil || got != "" {
		t.Fatalf("Text(Network) = %q, %v", got, err)
	}
}

func TestFormAccessorErrors(t *testing.T) {
	form := sampleForm()
	if _, err := form.Text("Missing"); !errors.Is(err, ErrFieldNotFound) {
		t.Fatalf("Text(Missing) err = %v, want ErrFieldNotFound", err)
	}
	if _, err := form.List("Title"); !errors.Is(err, ErrIncorrectType) {
		t.Fatalf("List(Title) err = %v, want ErrIncorrectType", err)
	}
	if _, err := form.Bool("Links"); !errors.Is(err, ErrIncorrectType) {
		t.Fatalf("Bool(Links) err = %v, want ErrIncorrectType", err)
	}
	if err := form.AddChoices("Title", []string{"x"}); !errors.Is(err, ErrChoiceFieldNotFound) {
		t.Fatalf("AddChoices(Title) err = %v, want ErrChoiceFieldNotFound", err)
	}
	if ErrorKindOf(form.AddChoices("Title", nil)) != KindLookup {
		t.Fatalf("lookup errors should classify as %q", KindLookup)
	}
}

func TestFormAddReplacesByName(t *testing.T) {
	form := sampleForm()
	form.Add(NewText("Title", "Replaced"))
	if form.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", form.Len())
	}
	if got, _ := form.Text("Title"); got != "Replaced" {
		t.Fatalf("Text(Title) = %q, want Replaced", got)
	}
}

func TestSchemaParseRoundTrip(t *testing.T) {
	form := sampleForm()
	parsed, err := form.Schema().Parse(form.String())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.String() != form.String() {
		t.Fatalf("round trip changed form:\n%s\nwant:\n%s", parsed.String(), form.String())
	}
}

func TestSchemaParseCRLF(t *testing.T) {
	form := sampleForm()
	text := strings.ReplaceAll(form.String(), "\n", "\r\n")
	if _, err := form.Schema().Parse(text); err != nil {
		t.Fatalf("Parse: %v", err)
	}
}

func TestSchemaParseSectionCount(t *testing.T) {
	schema := sampleForm().Schema()
	tests := []string{
		"Title: Sample",
		"Title: Sample\n---\nLinks:\n---\nPrimary: Yes\n---\nNetwork:\n---\nExtra:",
	}
	for _, text := range tests {
		_, err := schema.Parse(text)
		if !errors.Is(err, ErrMalformedForm) {
			t.Fatalf("Parse(%q) err = %v, want ErrMalformedForm", text, err)
		}
		if ErrorKindOf(err) != KindStructural {
			t.Fatalf("ErrorKindOf = %q, want %q", ErrorKindOf(err), KindStructural)
		}
	}
}
