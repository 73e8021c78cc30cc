package editing

import (
	"archivewit/internal/archive"
)

// NewNistTapeForm lays out the release files matched to a NIST tape.
func NewNistTapeForm(t archive.NistTape) *Form {
	paths := make([]string, len(t.ReleaseFiles))
	for i, f := range t.ReleaseFiles {
		paths[i] = f.Path
	}
	return NewForm(NewOptionalMultilineList("NIST Files", paths))
}

// NistTapeSchema is the layout of a NIST tape form.
var NistTapeSchema = NewNistTapeForm(archive.NistTape{}).Schema()

// ReleaseFilesFromForm returns the listed release files with sizes unset; the
// store resolves them against its catalog.
func ReleaseFilesFromForm(form *Form) ([]archive.ReleaseFile, error) {
	return releaseFiles(form, "NIST Files")
}

// ParseNistTapeFiles parses an edited NIST tape document.
func ParseNistTapeFiles(text string) ([]archive.ReleaseFile, error) {
	form, err := NistTapeSchema.Parse(text)
	if err != nil {
		return nil, err
	}
	return ReleaseFilesFromForm(form)
}

// NistVideoAnnotations is the editable part of a NIST video row.
type NistVideoAnnotations struct {
	IsMissing       bool
	AdditionalNotes string
}

// NewNistVideoForm lays out the archive's annotations on a NIST video.
func NewNistVideoForm(v archive.NistVideo) *Form {
	return NewForm(
		NewBool("Missing?", v.IsMissing),
		NewOptionalMultilineText("Additional Notes", v.AdditionalNotes),
	)
}

// NistVideoSchema is the layout of a NIST video form.
var NistVideoSchema = NewNistVideoForm(archive.NistVideo{}).Schema()

// NistVideoAnnotationsFromForm reads the annotations from a parsed form.
func NistVideoAnnotationsFromForm(form *Form) (NistVideoAnnotations, error) {
	var a NistVideoAnnotations
	var err error
	if a.IsMissing, err = form.Bool("Missing?"); err != nil {
		return NistVideoAnnotations{}, err
	}
	if a.AdditionalNotes, err = form.Text("Additional Notes"); err != nil {
		return NistVideoAnnotations{}, err
	}
	return a, nil
}

// ParseNistVideoAnnotations parses an edited NIST video document.
func ParseNistVideoAnnotations(text string) (NistVideoAnnotations, error) {
	form, err := NistVideoSchema.Parse(text)
	if err != nil {
		return NistVideoAnnotations{}, err
	}
	return NistVideoAnnotationsFromForm(form)
}

// Apply copies the annotations onto v.
func (a NistVideoAnnotations) Apply(v *archive.NistVideo) {
	v.IsMissing = a.IsMissing
	v.AdditionalNotes = a.AdditionalNotes
}
