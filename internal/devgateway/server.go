// Package devgateway is a local stand-in for the employee backend. It speaks
// the same REST contract over a SQLite table but performs no OCR: the
// employee fields of an upload are taken from optional form values.
package devgateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-faster/errors"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/adapters/pdf"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/domain"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/ports"
)

const defaultMaxUpload = 10 << 20

type Server struct {
	repo      ports.EmployeeRepository
	log       logrus.FieldLogger
	maxUpload int64
	origins   []string
}

type Options struct {
	MaxUploadSize int64
	// CORSOrigins lists the allowed browser origins; empty allows any.
	CORSOrigins []string
	Logger      logrus.FieldLogger
}

func New(repo ports.EmployeeRepository, opts Options) *Server {
	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = defaultMaxUpload
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &Server{repo: repo, log: opts.Logger, maxUpload: opts.MaxUploadSize, origins: opts.CORSOrigins}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /employees/list", s.listEmployees)
	mux.HandleFunc("POST /employees/add", s.addEmployee)
	mux.HandleFunc("PATCH /employees/edit/{id}", s.editEmployee)
	mux.HandleFunc("DELETE /employees/delete/{id}", s.deleteEmployee)
	mux.HandleFunc("GET /employees/pdf/{id}", s.employeePDF)

	origins := s.origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
	}).Handler(mux)
}

func (s *Server) listEmployees(w http.ResponseWriter, r *http.Request) {
	list, err := s.repo.ListEmployees(r.Context())
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, errors.Wrap(err, "Database error"))
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// addEmployee stores a record for an uploaded ID-card image.
func (s *Server) addEmployee(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload+(1<<20))
	if err := r.ParseMultipartForm(s.maxUpload); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		s.fail(w, r, http.StatusBadRequest, errors.Wrap(err, "Failed to read upload"))
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{
				"type": "missing",
				"loc":  []string{"body", "file"},
				"msg":  "Field required",
			}},
		})
		return
	}
	defer file.Close()

	mt, err := mimetype.DetectReader(file)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, errors.Wrap(err, "Failed to save uploaded file"))
		return
	}
	if !mt.Is("image/jpeg") && !mt.Is("image/png") && !mt.Is("image/webp") {
		s.fail(w, r, http.StatusBadRequest, errors.Errorf("Unsupported file type %s", mt.String()))
		return
	}

	e := &domain.Employee{}
	for _, name := range domain.EditableFields {
		e.SetField(name, r.FormValue(name))
	}
	if err := s.repo.AddEmployee(r.Context(), e); err != nil {
		s.fail(w, r, http.StatusInternalServerError, errors.Wrap(err, "Database error"))
		return
	}
	s.log.WithField("id", e.ID).Info("employee added")
	writeJSON(w, http.StatusOK, map[string]any{"message": "Employee added successfully", "employee": e})
}

// editEmployee applies the known fields of a JSON object. Values of any JSON
// type are stored in their textual form.
func (s *Server) editEmployee(w http.ResponseWriter, r *http.Request) {
	var data map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil || len(data) == 0 {
		writeDetail(w, http.StatusBadRequest, "No data provided for update.")
		return
	}
	var p domain.EmployeePatch
	set := 0
	for _, name := range domain.EditableFields {
		v, ok := data[name]
		if !ok {
			continue
		}
		text := ""
		if v != nil {
			text = fmt.Sprint(v)
		}
		setPatch(&p, name, text)
		set++
	}
	if set == 0 {
		writeDetail(w, http.StatusBadRequest, "No valid fields provided for update.")
		return
	}

	e, err := s.repo.UpdateEmployee(r.Context(), domain.EmployeeID(r.PathValue("id")), p)
	if errors.Is(err, domain.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Employee not found.")
		return
	}
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, errors.Wrap(err, "Database error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Employee updated successfully", "employee": e})
}

func (s *Server) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := domain.EmployeeID(r.PathValue("id"))
	if err := s.repo.DeleteEmployee(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// non-numeric id
			writeDetail(w, http.StatusUnprocessableEntity, "Invalid employee id.")
			return
		}
		s.fail(w, r, http.StatusInternalServerError, errors.Wrap(err, "Database error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Employee with id %s deleted successfully.", id)})
}

// employeePDF serves the questionnaire, as the dashboard would render it.
func (s *Server) employeePDF(w http.ResponseWriter, r *http.Request) {
	e, err := s.repo.GetEmployee(r.Context(), domain.EmployeeID(r.PathValue("id")))
	if errors.Is(err, domain.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Employee not found.")
		return
	}
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, errors.Wrap(err, "Database error"))
		return
	}
	var buf bytes.Buffer
	if err := pdf.Render(pdf.Questionnaire(*e, ""), &buf); err != nil {
		s.fail(w, r, http.StatusInternalServerError, errors.Wrap(err, "PDF generation error"))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": pdf.Filename(*e)}))
	w.Write(buf.Bytes())
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.log.WithError(err).WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path}).Warn("request failed")
	writeDetail(w, status, err.Error())
}

func setPatch(p *domain.EmployeePatch, name, v string) {
	switch name {
	case domain.FieldName:
		p.Name = &v
	case domain.FieldSurname:
		p.Surname = &v
	case domain.FieldIDNumber:
		p.IDNumber = &v
	case domain.FieldBirthDate:
		p.BirthDate = &v
	case domain.FieldSex:
		p.Sex = &v
	case domain.FieldNationality:
		p.Nationality = &v
	case domain.FieldPersonalNumber:
		p.PersonalNumber = &v
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
