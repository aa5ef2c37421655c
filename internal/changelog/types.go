package changelog

// Category is a changelog section backed by a directory of fragments.
type Category string

const (
	Features Category = "features"
	Bugfixes Category = "bugfixes"
	Issues   Category = "issues"
	Other    Category = "other"
)

// Heading returns the section heading text rendered after "#### ".
func (c Category) Heading() string {
	switch c {
	case Features:
		return "Features"
	case Bugfixes:
		return "Bug fixes and improvements"
	case Issues:
		return "Known issues :warning:"
	case Other:
		return "Other changes"
	default:
		return string(c)
	}
}

// Backlinks reports whether bullet lines in this category get a pull request link.
func (c Category) Backlinks() bool {
	return c == Bugfixes || c == Features
}

// Mode selects which product changelog is assembled.
type Mode string

const (
	// ModeStandard renders all four sections from the default root.
	ModeStandard Mode = "standard"
	// ModeAuto renders features and bug fixes from the product-variant root.
	ModeAuto Mode = "auto"
)

// Categories returns the sections of the mode in rendering order.
func (m Mode) Categories() []Category {
	if m == ModeAuto {
		return []Category{Features, Bugfixes}
	}
	return []Category{Features, Bugfixes, Issues, Other}
}

// Fragment is one pull request's contribution to a category.
type Fragment struct {
	// ID is the filename up to the first '.', normally the pull request number.
	ID string
	// Name is the file name.
	Name string
	// Content is the raw file text.
	Content string
}

// Section is a rendered category: its heading and trimmed body.
type Section struct {
	Category Category
	Body     string
}

// Document is an assembled changelog.
type Document struct {
	Mode     Mode
	Sections []Section
}
