// Package pdf builds printable employee documents. Layouts are plain data
// (Document); Render draws any Document with fpdf.
package pdf

// Document is a fixed sequence of pages.
type Document struct {
	Title string
	Pages []Page
}

// Page is drawn top to bottom; Number and AsOf go into the footer.
type Page struct {
	Number string
	AsOf   string
	Blocks []Block
}

// Block is one vertical element of a page.
type Block interface {
	isBlock()
}

// Header is the form title with the company line and the brand mark.
type Header struct {
	Title    string
	Subtitle string
	Company  string
	Brand    string
}

// NameBar is the shaded employee name and personnel number strip.
type NameBar struct {
	Label       string
	Value       string
	NumberLabel string
	Number      string
}

// Section is a framed group of rows under a shaded title bar.
type Section struct {
	Title string
	Note  string
	Rows  []Row
}

// Row is a line of cells sharing the page width by weight. Height is a
// minimum; cells with options may need more.
type Row struct {
	Height float64
	Cells  []Cell
}

// Cell is a labelled form field.
type Cell struct {
	Label   string
	Sub     string
	Value   string
	Weight  float64
	Shaded  bool
	Options []Option
	// Stacked lists options one per line instead of side by side.
	Stacked bool
	// Inline vertically centres a label-only cell.
	Inline bool
}

// Option is a checkbox with its caption.
type Option struct {
	Label   string
	Checked bool
}

// Declaration is a bold heading followed by a paragraph.
type Declaration struct {
	Title string
	Text  string
}

// Signatures is a row of signature lines with captions.
type Signatures struct {
	Labels []string
}

func (Header) isBlock()      {}
func (NameBar) isBlock()     {}
func (Section) isBlock()     {}
func (Declaration) isBlock() {}
func (Signatures) isBlock()  {}
