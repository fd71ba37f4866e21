package domain

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a referenced employee does not exist on the
// gateway or in a freshly fetched list.
var ErrNotFound = errors.New("employee not found")

// EmployeeID is the opaque identifier assigned by the gateway. The backend
// currently emits integers; strings are accepted as-is.
type EmployeeID string

func (id EmployeeID) String() string { return string(id) }

// IsZero reports whether the gateway has not assigned an identifier yet.
func (id EmployeeID) IsZero() bool { return id == "" }

func (id *EmployeeID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = EmployeeID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = EmployeeID(n.String())
	return nil
}

// Employee mirrors the record shape served by the gateway. Every field but
// ID is free text extracted from an ID card; nothing is validated here.
type Employee struct {
	ID             EmployeeID `json:"id,omitempty"`
	Name           string     `json:"name"`
	Surname        string     `json:"surname"`
	IDNumber       string     `json:"id_number"`
	BirthDate      string     `json:"birth_date"`
	Sex            string     `json:"sex"`
	Nationality    string     `json:"nationality"`
	PersonalNumber string     `json:"personal_number"`
}

// UnmarshalJSON tolerates nulls and non-string scalars in the free-text
// fields, which the backend produces for OCR misses.
func (e *Employee) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID             EmployeeID `json:"id"`
		Name           looseString `json:"name"`
		Surname        looseString `json:"surname"`
		IDNumber       looseString `json:"id_number"`
		BirthDate      looseString `json:"birth_date"`
		Sex            looseString `json:"sex"`
		Nationality    looseString `json:"nationality"`
		PersonalNumber looseString `json:"personal_number"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*e = Employee{
		ID:             raw.ID,
		Name:           string(raw.Name),
		Surname:        string(raw.Surname),
		IDNumber:       string(raw.IDNumber),
		BirthDate:      string(raw.BirthDate),
		Sex:            string(raw.Sex),
		Nationality:    string(raw.Nationality),
		PersonalNumber: string(raw.PersonalNumber),
	}
	return nil
}

// FullName is "surname given-name", the form printed on the questionnaire.
func (e Employee) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(e.Surname) + " " + strings.TrimSpace(e.Name))
}

// Field names in the order they are shown in the table and edit forms.
const (
	FieldName           = "name"
	FieldSurname        = "surname"
	FieldIDNumber       = "id_number"
	FieldBirthDate      = "birth_date"
	FieldSex            = "sex"
	FieldNationality    = "nationality"
	FieldPersonalNumber = "personal_number"
)

// EditableFields lists the attributes a user may change, in display order.
var EditableFields = []string{
	FieldName,
	FieldSurname,
	FieldIDNumber,
	FieldBirthDate,
	FieldSex,
	FieldNationality,
	FieldPersonalNumber,
}

// FieldLabels are the column headings for EditableFields.
var FieldLabels = map[string]string{
	FieldName:           "Name",
	FieldSurname:        "Surname",
	FieldIDNumber:       "ID Number",
	FieldBirthDate:      "Birth Date",
	FieldSex:            "Sex",
	FieldNationality:    "Nationality",
	FieldPersonalNumber: "Personal Number",
}

// Field returns the value of the named attribute, "" for unknown names.
func (e Employee) Field(name string) string {
	switch name {
	case "id":
		return string(e.ID)
	case FieldName:
		return e.Name
	case FieldSurname:
		return e.Surname
	case FieldIDNumber:
		return e.IDNumber
	case FieldBirthDate:
		return e.BirthDate
	case FieldSex:
		return e.Sex
	case FieldNationality:
		return e.Nationality
	case FieldPersonalNumber:
		return e.PersonalNumber
	}
	return ""
}

// SetField assigns the named attribute and reports whether the name is known.
func (e *Employee) SetField(name, value string) bool {
	switch name {
	case FieldName:
		e.Name = value
	case FieldSurname:
		e.Surname = value
	case FieldIDNumber:
		e.IDNumber = value
	case FieldBirthDate:
		e.BirthDate = value
	case FieldSex:
		e.Sex = value
	case FieldNationality:
		e.Nationality = value
	case FieldPersonalNumber:
		e.PersonalNumber = value
	default:
		return false
	}
	return true
}

// Values returns every attribute, identifier first. Used by the search filter.
func (e Employee) Values() []string {
	return []string{
		string(e.ID),
		e.Name,
		e.Surname,
		e.IDNumber,
		e.BirthDate,
		e.Sex,
		e.Nationality,
		e.PersonalNumber,
	}
}

// EmployeePatch is a partial update. Nil fields are not sent.
type EmployeePatch struct {
	Name           *string `json:"name,omitempty"`
	Surname        *string `json:"surname,omitempty"`
	IDNumber       *string `json:"id_number,omitempty"`
	BirthDate      *string `json:"birth_date,omitempty"`
	Sex            *string `json:"sex,omitempty"`
	Nationality    *string `json:"nationality,omitempty"`
	PersonalNumber *string `json:"personal_number,omitempty"`
}

// PatchFrom builds a patch carrying every editable field of e.
func PatchFrom(e Employee) EmployeePatch {
	s := func(v string) *string { return &v }
	return EmployeePatch{
		Name:           s(e.Name),
		Surname:        s(e.Surname),
		IDNumber:       s(e.IDNumber),
		BirthDate:      s(e.BirthDate),
		Sex:            s(e.Sex),
		Nationality:    s(e.Nationality),
		PersonalNumber: s(e.PersonalNumber),
	}
}

// Empty reports whether no field is set.
func (p EmployeePatch) Empty() bool {
	return p.Name == nil && p.Surname == nil && p.IDNumber == nil &&
		p.BirthDate == nil && p.Sex == nil && p.Nationality == nil &&
		p.PersonalNumber == nil
}

// Apply returns e with the set fields of p copied over.
func (p EmployeePatch) Apply(e Employee) Employee {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Surname != nil {
		e.Surname = *p.Surname
	}
	if p.IDNumber != nil {
		e.IDNumber = *p.IDNumber
	}
	if p.BirthDate != nil {
		e.BirthDate = *p.BirthDate
	}
	if p.Sex != nil {
		e.Sex = *p.Sex
	}
	if p.Nationality != nil {
		e.Nationality = *p.Nationality
	}
	if p.PersonalNumber != nil {
		e.PersonalNumber = *p.PersonalNumber
	}
	return e
}

// Upload is an ID-card image headed for the gateway's OCR ingestion.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Empty reports whether there is no file to send.
func (u *Upload) Empty() bool { return u == nil || len(u.Data) == 0 }

// looseString decodes any JSON scalar into its textual form; null becomes "".
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		*s = ""
	case b[0] == '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = looseString(v)
	default:
		*s = looseString(b)
	}
	return nil
}
