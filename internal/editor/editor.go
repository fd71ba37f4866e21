// Package editor is the inline row editor: a two-state machine holding at
// most one draft.
package editor

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-faster/errors"

	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/domain"
)

var (
	// ErrEditInProgress is returned by Begin while another row is being
	// edited. The pending draft is kept; the user must save or cancel it.
	ErrEditInProgress = errors.New("another row is being edited")
	ErrNotEditing     = errors.New("no row is being edited")
	ErrSaveInFlight   = errors.New("save already in progress")
	ErrUnknownField   = errors.New("unknown field")
)

type State int

const (
	Viewing State = iota
	Editing
)

func (s State) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Updater persists a patch and returns the confirmed record. *store.Store
// satisfies it.
type Updater interface {
	Update(ctx context.Context, id domain.EmployeeID, p domain.EmployeePatch) (domain.Employee, error)
}

type Editor struct {
	mu     sync.Mutex
	state  State
	id     domain.EmployeeID
	draft  domain.Employee
	saving bool
}

func New() *Editor { return &Editor{} }

// State returns the current state and, when editing, the row id.
func (e *Editor) State() (State, domain.EmployeeID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state, e.id
}

// IsEditing reports whether id is the row under edit.
func (e *Editor) IsEditing(id domain.EmployeeID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == Editing && e.id == id
}

// Saving reports whether a save is in flight.
func (e *Editor) Saving() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saving
}

// Begin moves to Editing(rec.ID) with a copy of rec as the draft. Beginning
// the row that is already open keeps its draft.
func (e *Editor) Begin(rec domain.Employee) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Editing {
		if e.id == rec.ID {
			return nil
		}
		return ErrEditInProgress
	}
	e.state, e.id, e.draft = Editing, rec.ID, rec
	return nil
}

// Draft returns the pending draft.
func (e *Editor) Draft() (domain.Employee, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft, e.state == Editing
}

func (e *Editor) SetField(name, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Editing {
		return ErrNotEditing
	}
	if !e.draft.SetField(name, value) {
		return errors.Wrap(ErrUnknownField, name)
	}
	return nil
}

// SetDraft applies several fields at once; unknown names fail the whole call
// without changing the draft.
func (e *Editor) SetDraft(fields map[string]string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Editing {
		return ErrNotEditing
	}
	next := e.draft
	for name, value := range fields {
		if !next.SetField(name, value) {
			return errors.Wrap(ErrUnknownField, name)
		}
	}
	e.draft = next
	return nil
}

// Cancel discards the draft. It never touches the store or the gateway.
func (e *Editor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

// Release cancels the edit if id is the row under edit, e.g. after the row
// was deleted.
func (e *Editor) Release(id domain.EmployeeID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Editing && e.id == id {
		e.reset()
	}
}

// Save sends every editable field of the draft through u. On success the
// editor returns to Viewing; on failure it stays in Editing with the draft
// intact.
func (e *Editor) Save(ctx context.Context, u Updater) (domain.Employee, error) {
	e.mu.Lock()
	if e.state != Editing {
		e.mu.Unlock()
		return domain.Employee{}, ErrNotEditing
	}
	if e.saving {
		e.mu.Unlock()
		return domain.Employee{}, ErrSaveInFlight
	}
	e.saving = true
	id, draft := e.id, e.draft
	e.mu.Unlock()

	rec, err := u.Update(ctx, id, domain.PatchFrom(draft))

	e.mu.Lock()
	defer e.mu.Unlock()
	e.saving = false
	if err != nil {
		return domain.Employee{}, err
	}
	if e.state == Editing && e.id == id {
		e.reset()
	}
	return rec, nil
}

// View returns what the row for rec should display: the draft while rec is
// under edit, rec itself otherwise.
func (e *Editor) View(rec domain.Employee) domain.Employee {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Editing && e.id == rec.ID {
		return e.draft
	}
	return rec
}

func (e *Editor) reset() {
	e.state, e.id, e.draft = Viewing, "", domain.Employee{}
}
