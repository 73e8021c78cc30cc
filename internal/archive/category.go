package archive

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category classifies a master video.
type Category string

const (
	CategoryAmateurFootage      Category = "amateur-footage"
	CategoryCompilation         Category = "compilation"
	CategoryDocumentary         Category = "documentary"
	CategoryNews                Category = "news"
	CategoryProfessionalFootage Category = "professional-footage"
	CategorySurvivorAccount     Category = "survivor-account"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryAmateurFootage,
	CategoryCompilation,
	CategoryDocumentary,
	CategoryNews,
	CategoryProfessionalFootage,
	CategorySurvivorAccount,
}

var (
	folder = cases.Fold()
	titler = cases.Title(language.English)
)

// ParseCategory maps user input to a Category, ignoring case and surrounding
// whitespace.
func ParseCategory(value string) (Category, error) {
	folded := folder.String(strings.TrimSpace(value))
	for _, c := range Categories {
		if string(c) == folded {
			return c, nil
		}
	}
	return "", fmt.Errorf("%q is not a valid category", value)
}

func (c Category) String() string { return string(c) }

// Label renders the category for tables, e.g. "Amateur Footage".
func (c Category) Label() string {
	return titler.String(strings.ReplaceAll(string(c), "-", " "))
}
