// internal/app/system/categories/categories.go
package categories

// All is the sentinel category meaning "no filter". It is never stored on
// a project document.
const All = "All"

// Suggested is the category set offered to clients. It is advisory only:
// the server stores whatever category string a project submits, and list
// filtering matches the stored value exactly (case-sensitive).
var Suggested = []string{
	"Frontend",
	"Backend",
	"Full-Stack",
	"Mobile",
	"UI/UX",
	"Game Dev",
	"DevOps",
	"Data Science",
	"Machine Learning",
	"Cybersecurity",
	"Blockchain",
	"E-commerce",
	"Chatbots",
}

// IsFilter reports whether the given category value narrows a listing.
// Empty string and the All sentinel both mean "list everything".
func IsFilter(category string) bool {
	return category != "" && category != All
}
