// Package navigation describes the page being rendered: its title and the
// breadcrumb trail.
package navigation

// Crumb is one breadcrumb link.
type Crumb struct {
	Title  string
	URL    string
	Active bool
}

// Page is the navigation state of one rendered page.
type Page struct {
	Title       string
	Breadcrumbs []Crumb
}

// NewPage creates the navigation state of a page.
func NewPage(title string) *Page {
	return &Page{
		Title:       title,
		Breadcrumbs: make([]Crumb, 0),
	}
}

// Crumb appends a breadcrumb. The last crumb is the active one.
func (p *Page) Crumb(title, url string) *Page {
	for i := range p.Breadcrumbs {
		p.Breadcrumbs[i].Active = false
	}

	p.Breadcrumbs = append(p.Breadcrumbs, Crumb{
		Title:  title,
		URL:    url,
		Active: true,
	})

	return p
}
