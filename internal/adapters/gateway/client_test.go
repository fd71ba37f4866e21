package gateway_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/adapters/gateway"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/domain"
)

func newClient(t *testing.T, h http.HandlerFunc) *gateway.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := gateway.New(srv.URL + "/")
	require.NoError(t, err)
	return c
}

func TestNewRejectsRelativeURL(t *testing.T) {
	_, err := gateway.New("localhost:8000")
	require.Error(t, err)
}

func TestListEmployees(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/employees/list", r.URL.Path)
		_, _ = io.WriteString(w, `[
			{"id": 1, "name": "John", "surname": "Doe", "id_number": null, "birth_date": "01.02.1990"},
			{"id": "b7", "name": "Jane", "personal_number": 42}
		]`)
	})

	got, err := c.ListEmployees(t.Context())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.EmployeeID("1"), got[0].ID)
	assert.Equal(t, "", got[0].IDNumber)
	assert.Equal(t, "01.02.1990", got[0].BirthDate)
	assert.Equal(t, domain.EmployeeID("b7"), got[1].ID)
	assert.Equal(t, "42", got[1].PersonalNumber)
}

func TestListEmployeesNullBody(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `null`)
	})
	got, err := c.ListEmployees(t.Context())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAddEmployeeSendsMultipartFile(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/employees/add", r.URL.Path)
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "card.jpg", hdr.Filename)
		assert.Equal(t, "image/jpeg", hdr.Header.Get("Content-Type"))
		assert.Equal(t, []byte("jpegdata"), data)
		_, _ = io.WriteString(w, `{"message": "Employee added successfully", "employee": {"id": 9, "name": "Max"}}`)
	})

	got, err := c.AddEmployee(t.Context(), &domain.Upload{Filename: "card.jpg", ContentType: "image/jpeg", Data: []byte("jpegdata")})
	require.NoError(t, err)
	assert.Equal(t, domain.Employee{ID: "9", Name: "Max"}, got)
}

func TestAddEmployeeErrorDetail(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"detail": "OCR could not read the card"}`)
	})

	_, err := c.AddEmployee(t.Context(), &domain.Upload{Data: []byte("x")})
	var apiErr *gateway.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "OCR could not read the card", apiErr.Detail)
}

func TestAddEmployeeWithoutFile(t *testing.T) {
	called := false
	c := newClient(t, func(http.ResponseWriter, *http.Request) { called = true })
	_, err := c.AddEmployee(t.Context(), nil)
	require.Error(t, err)
	assert.False(t, called)
}

func TestEditEmployee(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"envelope", `{"message": "ok", "employee": {"id": 3, "name": "Jon", "surname": "Doe"}}`},
		{"bare record", `{"id": 3, "name": "Jon", "surname": "Doe"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPatch, r.Method)
				assert.Equal(t, "/employees/edit/3", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, map[string]string{"name": "Jon"}, body)
				_, _ = io.WriteString(w, tt.body)
			})

			name := "Jon"
			got, err := c.EditEmployee(t.Context(), "3", domain.EmployeePatch{Name: &name})
			require.NoError(t, err)
			assert.Equal(t, domain.Employee{ID: "3", Name: "Jon", Surname: "Doe"}, got)
		})
	}
}

func TestEditEmployeeNotFound(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail": "Employee not found."}`)
	})

	_, err := c.EditEmployee(t.Context(), "404", domain.EmployeePatch{})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "Employee not found.")
}

func TestDeleteEmployee(t *testing.T) {
	var path string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		path = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteEmployee(t.Context(), "12"))
	assert.Equal(t, "/employees/delete/12", path)
}

func TestValidationDetailList(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"detail": [{"msg": "field required"}, {"msg": "value is not a valid string"}]}`)
	})

	err := c.DeleteEmployee(t.Context(), "1")
	var apiErr *gateway.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "field required; value is not a valid string", apiErr.Detail)
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := gateway.New(url)
	require.NoError(t, err)
	_, err = c.ListEmployees(t.Context())
	require.Error(t, err)
	var apiErr *gateway.APIError
	assert.False(t, errors.As(err, &apiErr))
}
