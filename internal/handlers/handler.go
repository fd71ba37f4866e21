package handlers

import (
	"bytes"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/a-h/templ"
	"github.com/go-faster/errors"
	"github.com/go-playground/form"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/adapters/pdf"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/adapters/xlsx"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/dashboard"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/domain"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/ports"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/templates"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/upload"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/view"
)

// Options tune the dashboard server. Zero values fall back to defaults.
type Options struct {
	PageSize          int
	MaxUploadSize     int64
	MaxImageDimension int
	NotifyTTL         time.Duration
	SessionTTL        time.Duration
	Dashboard         dashboard.Data
	Metrics           bool
	Logger            logrus.FieldLogger
}

type Handler struct {
	sessions *Sessions
	dash     dashboard.Data
	log      logrus.FieldLogger
	decoder  *form.Decoder
	now      func() time.Time

	maxUpload int64
	maxDim    int
	metrics   bool
}

func New(gw ports.EmployeeGateway, opts Options) *Handler {
	if opts.PageSize <= 0 {
		opts.PageSize = view.PageSize
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Dashboard.Stats == nil && opts.Dashboard.Area == nil && opts.Dashboard.Donut == nil {
		opts.Dashboard = dashboard.Default()
	}
	h := &Handler{
		dash:      opts.Dashboard,
		log:       opts.Logger,
		decoder:   form.NewDecoder(),
		now:       time.Now,
		maxUpload: opts.MaxUploadSize,
		maxDim:    opts.MaxImageDimension,
		metrics:   opts.Metrics,
	}
	h.sessions = NewSessions(opts.SessionTTL, func(id string) *Workspace {
		return newWorkspace(id, gw, opts.PageSize, opts.NotifyTTL)
	})
	return h
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("GET /projects", h.placeholder("Projects"))
	mux.HandleFunc("GET /settings", h.placeholder("Settings"))
	mux.HandleFunc("GET /employees", h.listEmployees)
	mux.HandleFunc("GET /employees/table", h.employeeTable)
	mux.HandleFunc("GET /employees/export.xlsx", h.exportSpreadsheet)
	mux.HandleFunc("POST /employees", h.addEmployee)
	mux.HandleFunc("GET /employees/{id}", h.editEmployeePage)
	mux.HandleFunc("GET /employees/{id}/edit", h.editEmployeeForm)
	mux.HandleFunc("GET /employees/{id}/row", h.cancelEdit)
	mux.HandleFunc("PUT /employees/{id}", h.updateEmployee)
	mux.HandleFunc("DELETE /employees/{id}", h.deleteEmployee)
	mux.HandleFunc("GET /employees/{id}/questionnaire.pdf", h.generatePDF)
	mux.HandleFunc("GET /healthz", h.healthz)
	if h.metrics {
		mux.Handle("GET /metrics", promhttp.Handler())
	}
	return gziphandler.GzipHandler(h.observe(mux))
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	ws := h.sessions.Get(w, r)
	render(w, r, templates.Page(h.shell(ws, "Dashboard", "/"), templates.Dashboard(h.dash)))
}

func (h *Handler) placeholder(section string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := h.sessions.Get(w, r)
		render(w, r, templates.Page(h.shell(ws, section, r.URL.Path), templates.Placeholder(section)))
	}
}

// listEmployees renders the employees page with a fresh copy of the list.
func (h *Handler) listEmployees(w http.ResponseWriter, r *http.Request) {
	ws := h.sessions.Get(w, r)
	if err := ws.Reload(r.Context()); err != nil {
		logger(r.Context()).WithError(err).Warn("list employees")
		ws.Notes.Fail(err, "Failed to fetch employees")
	}
	render(w, r, templates.Page(h.shell(ws, "Employees", "/employees"), templates.Employees(h.table(ws))))
}

// employeeTable applies the search and page parameters. A request without a
// page, such as a new search, starts on page 1.
func (h *Handler) employeeTable(w http.ResponseWriter, r *http.Request) {
	ws := h.sessions.Get(w, r)
	h.ensureLoaded(r, ws)
	q := r.URL.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil {
		page = 1
	}
	ws.SetCursor(view.Cursor{Query: strings.TrimSpace(q.Get("q")), Page: page})
	h.renderTable(w, r, ws)
}

func (h *Handler) addEmployee(w http.ResponseWriter, r *http.Request) {
	ws := h.sessions.Get(w, r)
	h.ensureLoaded(r, ws)

	u, err := upload.FromRequest(r, "file", h.maxUpload)
	if err == nil {
		u, err = upload.Normalize(u, h.maxDim)
	}
	if err == nil {
		_, err = ws.Store.Add(r.Context(), u)
	}
	if err != nil {
		logger(r.Context()).WithError(err).Warn("add employee")
		ws.Notes.Fail(err, "Scan failed")
	} else {
		ws.Notes.Success("Employee added from scan!")
	}
	h.renderTable(w, r, ws)
}

// editEmployeePage is the stand-alone edit page. It always fetches the list
// so a bookmarked URL shows current data.
func (h *Handler) editEmployeePage(w http.ResponseWriter, r *http.Request) {
	ws := h.sessions.Get(w, r)
	id := pathID(r, "id")
	page := templates.EmployeePage{}
	status := http.StatusOK

	rec, err := ws.Store.Find(r.Context(), id)
	switch {
	case err == nil:
		page.Employee, page.Found = rec, true
	case errors.Is(err, domain.ErrNotFound):
		page.Message = "Employee not found"
		status = http.StatusNotFound
	default:
		logger(r.Context()).WithError(err).Warn("fetch employee")
		page.Message = "Failed to fetch employee"
		status = http.StatusBadGateway
	}
	renderStatus(w, r, status, templates.Page(h.shell(ws, "Edit Employee", "/employees"), templates.Employee(page)))
}

// editEmployeeForm opens the inline editor on a row.
func (h *Handler) editEmployeeForm(w http.ResponseWriter, r *http.Request) {
	ws := h.sessions.Get(w, r)
	h.ensureLoaded(r, ws)
	if err := h.begin(ws, pathID(r, "id")); err != nil {
		ws.Notes.Fail(err, "Finish editing the current row first.")
	}
	h.renderTable(w, r, ws)
}

// cancelEdit drops the draft and shows the row read-only again.
func (h *Handler) cancelEdit(w http.ResponseWriter, r *http.Request) {
	ws := h.sessions.Get(w, r)
	ws.Editor.Release(pathID(r, "id"))
	h.renderTable(w, r, ws)
}

// updateEmployee saves the inline draft, or the stand-alone page's form when
// from=page is set.
func (h *Handler) updateEmployee(w http.ResponseWriter, r *http.Request) {
	ws := h.sessions.Get(w, r)
	id := pathID(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	var f employeeForm
	if err := h.decoder.Decode(&f, r.PostForm); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	fields := f.present(r.PostForm)

	if r.URL.Query().Get("from") == "page" {
		h.savePage(w, r, ws, id, fields)
		return
	}

	h.ensureLoaded(r, ws)
	if !ws.Editor.IsEditing(id) {
		if err := h.begin(ws, id); err != nil {
			ws.Notes.Fail(err, "Finish editing the current row first.")
			h.renderTable(w, r, ws)
			return
		}
	}
	err := ws.Editor.SetDraft(fields)
	if err == nil {
		_, err = ws.Editor.Save(r.Context(), ws.Store)
	}
	if err != nil {
		logger(r.Context()).WithError(err).Warn("update employee")
		ws.Notes.Fail(err, "Edit failed")
	} else {
		ws.Notes.Success("Employee updated!")
	}
	h.renderTable(w, r, ws)
}

func (h *Handler) savePage(w http.ResponseWriter, r *http.Request, ws *Workspace, id domain.EmployeeID, fields map[string]string) {
	rec, err := ws.Store.Find(r.Context(), id)
	if err == nil {
		for name, value := range fields {
			rec.SetField(name, value)
		}
		_, err = ws.Store.Update(r.Context(), id, domain.PatchFrom(rec))
	}
	if err != nil {
		logger(r.Context()).WithError(err).Warn("update employee")
		ws.Notes.Fail(err, "Edit failed")
		render(w, r, h.toasts(ws, true))
		return
	}
	ws.Editor.Release(id)
	ws.Notes.Success("Employee updated!")
	w.Header().Set("HX-Redirect", "/employees")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	ws := h.sessions.Get(w, r)
	id := pathID(r, "id")
	if err := ws.Store.Remove(r.Context(), id); err != nil {
		logger(r.Context()).WithError(err).Warn("delete employee")
		ws.Notes.Fail(err, "Delete failed")
	} else {
		ws.Editor.Release(id)
		ws.Notes.Success("Employee deleted!")
	}
	h.renderTable(w, r, ws)
}

// generatePDF streams the questionnaire for one employee.
func (h *Handler) generatePDF(w http.ResponseWriter, r *http.Request) {
	ws := h.sessions.Get(w, r)
	id := pathID(r, "id")
	rec, ok := ws.Store.Get(id)
	if !ok {
		var err error
		if rec, err = ws.Store.Find(r.Context(), id); err != nil {
			logger(r.Context()).WithError(err).Warn("questionnaire")
			ws.Notes.Fail(err, "Download failed")
			status := http.StatusBadGateway
			if errors.Is(err, domain.ErrNotFound) {
				status = http.StatusNotFound
			}
			http.Error(w, "Download failed", status)
			return
		}
	}
	var buf bytes.Buffer
	if err := pdf.Render(pdf.Questionnaire(rec, h.now().Format("02.01.2006")), &buf); err != nil {
		logger(r.Context()).WithError(err).Error("render questionnaire")
		ws.Notes.Fail(err, "Download failed")
		http.Error(w, "Download failed", 500)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", attachment(pdf.Filename(rec)))
	w.Write(buf.Bytes())
}

// exportSpreadsheet downloads the rows matching q, across all pages.
func (h *Handler) exportSpreadsheet(w http.ResponseWriter, r *http.Request) {
	ws := h.sessions.Get(w, r)
	h.ensureLoaded(r, ws)
	rows := view.Filter(ws.Store.Snapshot(), strings.TrimSpace(r.URL.Query().Get("q")))
	var buf bytes.Buffer
	if err := xlsx.Write(&buf, rows); err != nil {
		logger(r.Context()).WithError(err).Error("export employees")
		http.Error(w, err.Error(), 500)
		return
	}
	w.Header().Set("Content-Type", xlsx.ContentType)
	w.Header().Set("Content-Disposition", attachment(xlsx.Filename()))
	w.Write(buf.Bytes())
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// begin opens the editor on the cached record with the given id.
func (h *Handler) begin(ws *Workspace, id domain.EmployeeID) error {
	rec, ok := ws.Store.Get(id)
	if !ok {
		return domain.ErrNotFound
	}
	return ws.Editor.Begin(rec)
}

func (h *Handler) ensureLoaded(r *http.Request, ws *Workspace) {
	if err := ws.EnsureLoaded(r.Context()); err != nil {
		logger(r.Context()).WithError(err).Warn("list employees")
		ws.Notes.Fail(err, "Failed to fetch employees")
	}
}

// table builds the current page, showing drafts in place of stored values.
func (h *Handler) table(ws *Workspace) templates.Table {
	page := ws.Page()
	saving := ws.Editor.Saving()
	rows := make([]templates.Row, len(page.Rows))
	for i, rec := range page.Rows {
		rows[i] = templates.Row{
			Index:    page.Offset + i + 1,
			Employee: ws.Editor.View(rec),
			Editing:  ws.Editor.IsEditing(rec.ID),
			Saving:   saving,
		}
	}
	return templates.Table{Page: page, Rows: rows}
}

func (h *Handler) toasts(ws *Workspace, oob bool) templ.Component {
	return templates.ToastStack(templates.Toasts{Items: ws.Notes.Drain(), TTL: ws.Notes.TTL(), OOB: oob})
}

func (h *Handler) shell(ws *Workspace, title, active string) templates.Shell {
	return templates.Shell{
		Title:  title,
		Nav:    templates.Nav(active),
		Toasts: templates.Toasts{Items: ws.Notes.Drain(), TTL: ws.Notes.TTL()},
	}
}

// renderTable answers an htmx table action: the table plus the toasts as an
// out-of-band swap.
func (h *Handler) renderTable(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	render(w, r, templates.Fragment(templates.EmployeeTable(h.table(ws)), h.toasts(ws, true)))
}

// employeeForm is the edit form; every field is optional.
type employeeForm struct {
	Name           string `form:"name"`
	Surname        string `form:"surname"`
	IDNumber       string `form:"id_number"`
	BirthDate      string `form:"birth_date"`
	Sex            string `form:"sex"`
	Nationality    string `form:"nationality"`
	PersonalNumber string `form:"personal_number"`
}

// present returns the fields that were actually submitted.
func (f employeeForm) present(values url.Values) map[string]string {
	all := map[string]string{
		domain.FieldName:           f.Name,
		domain.FieldSurname:        f.Surname,
		domain.FieldIDNumber:       f.IDNumber,
		domain.FieldBirthDate:      f.BirthDate,
		domain.FieldSex:            f.Sex,
		domain.FieldNationality:    f.Nationality,
		domain.FieldPersonalNumber: f.PersonalNumber,
	}
	out := make(map[string]string, len(all))
	for name, v := range all {
		if values.Has(name) {
			out[name] = v
		}
	}
	return out
}

// render writes a templ component to the response.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), 500)
	}
}

// renderStatus renders into a buffer first so the status can still change
// when rendering fails.
func renderStatus(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func pathID(r *http.Request, key string) domain.EmployeeID {
	return domain.EmployeeID(r.PathValue(key))
}

// attachment builds a Content-Disposition value. Names come from scanned
// cards, so quotes are escaped and non-ASCII names use the RFC 2231 form.
func attachment(filename string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}
