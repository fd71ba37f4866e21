// Package templates renders the dashboard pages and htmx fragments. Each
// exported constructor returns a templ.Component.
package templates

import (
	"bytes"
	"context"
	"html/template"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/dashboard"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/domain"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/notify"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/view"
)

// NavItem is one sidebar link.
type NavItem struct {
	Label  string
	Href   string
	Active bool
}

// Nav returns the sidebar with the entry for href marked active.
func Nav(active string) []NavItem {
	items := []NavItem{
		{Label: "Dashboard", Href: "/"},
		{Label: "Employees", Href: "/employees"},
		{Label: "Projects", Href: "/projects"},
		{Label: "Settings", Href: "/settings"},
	}
	for i := range items {
		items[i].Active = items[i].Href == active
	}
	return items
}

// Toasts is the notification stack. OOB marks it for an htmx out-of-band
// swap when it rides along with a fragment.
type Toasts struct {
	Items []notify.Notification
	TTL   time.Duration
	OOB   bool
}

// Shell is the chrome around every full page.
type Shell struct {
	Title  string
	Nav    []NavItem
	Toasts Toasts
}

// Row is one table line. Index is the 1-based position in the filtered list.
type Row struct {
	Index    int
	Employee domain.Employee
	Editing  bool
	Saving   bool
}

// Table is the employee table fragment.
type Table struct {
	Page view.Page
	Rows []Row
}

// EmployeePage is the stand-alone edit page.
type EmployeePage struct {
	Employee domain.Employee
	Found    bool
	Message  string
}

func execute(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return views.ExecuteTemplate(w, name, data)
	})
}

// Page wraps body in the layout.
func Page(shell Shell, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := body.Render(ctx, &buf); err != nil {
			return err
		}
		return views.ExecuteTemplate(w, "layout", struct {
			Shell Shell
			Body  template.HTML
		}{shell, template.HTML(buf.String())})
	})
}

// Fragment renders the parts one after another, e.g. a table followed by
// out-of-band toasts.
func Fragment(parts ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, p := range parts {
			if err := p.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

func Dashboard(d dashboard.Data) templ.Component {
	return execute("dashboard", d)
}

func Employees(t Table) templ.Component {
	return execute("employees", struct{ Table Table }{t})
}

func EmployeeTable(t Table) templ.Component {
	return execute("table", t)
}

func Employee(p EmployeePage) templ.Component {
	return execute("employee-page", p)
}

// ToastStack renders the notification container.
func ToastStack(t Toasts) templ.Component {
	return execute("toasts", t)
}

// Placeholder is the body of the sections that have no content yet.
func Placeholder(section string) templ.Component {
	return execute("placeholder", section)
}
