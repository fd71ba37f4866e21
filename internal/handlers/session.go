package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/editor"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/notify"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/ports"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/store"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/view"
)

const sessionCookie = "gestionempl_session"

// Workspace is the UI state of one browser: the employee store, the table
// cursor, the inline editor and the pending notifications.
type Workspace struct {
	ID     string
	Store  *store.Store
	Editor *editor.Editor
	Notes  *notify.Center

	pageSize int

	mu     sync.Mutex
	cursor view.Cursor
	loaded bool

	// seen is guarded by Sessions.mu.
	seen time.Time
}

func newWorkspace(id string, gw ports.EmployeeGateway, pageSize int, ttl time.Duration) *Workspace {
	ws := &Workspace{
		ID:       id,
		Store:    store.New(gw),
		Editor:   editor.New(),
		Notes:    notify.NewCenter(ttl),
		pageSize: pageSize,
		cursor:   view.Cursor{Page: 1},
	}
	// Keep the cursor on a page that exists after rows disappear, and drop a
	// draft whose record is gone so the editor never stays locked.
	ws.Store.Subscribe(func(uint64) {
		ws.clamp()
		ws.releaseOrphanedDraft()
	})
	return ws
}

func (ws *Workspace) Cursor() view.Cursor {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.cursor
}

func (ws *Workspace) SetCursor(c view.Cursor) {
	ws.mu.Lock()
	ws.cursor = c
	ws.mu.Unlock()
	ws.clamp()
}

// Page is the current table page.
func (ws *Workspace) Page() view.Page {
	return ws.Cursor().Apply(ws.Store.Snapshot(), ws.pageSize)
}

func (ws *Workspace) releaseOrphanedDraft() {
	state, id := ws.Editor.State()
	if state != editor.Editing {
		return
	}
	if _, ok := ws.Store.Get(id); !ok {
		ws.Editor.Release(id)
	}
}

func (ws *Workspace) clamp() {
	records := ws.Store.Snapshot()
	ws.mu.Lock()
	ws.cursor = ws.cursor.Clamped(records, ws.pageSize)
	ws.mu.Unlock()
}

// Reload fetches the list from the gateway.
func (ws *Workspace) Reload(ctx context.Context) error {
	err := ws.Store.Load(ctx)
	ws.mu.Lock()
	ws.loaded = true
	ws.mu.Unlock()
	return err
}

// EnsureLoaded fetches the list once per workspace.
func (ws *Workspace) EnsureLoaded(ctx context.Context) error {
	ws.mu.Lock()
	loaded := ws.loaded
	ws.mu.Unlock()
	if loaded {
		return nil
	}
	return ws.Reload(ctx)
}

// Sessions maps the session cookie to a Workspace. Workspaces idle longer
// than ttl are dropped the next time any session is looked up.
type Sessions struct {
	ttl    time.Duration
	create func(id string) *Workspace
	now    func() time.Time

	mu    sync.Mutex
	items map[string]*Workspace
}

func NewSessions(ttl time.Duration, create func(id string) *Workspace) *Sessions {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Sessions{ttl: ttl, create: create, now: time.Now, items: make(map[string]*Workspace)}
}

// Get returns the caller's workspace, starting a new session and setting the
// cookie when there is none.
func (s *Sessions) Get(w http.ResponseWriter, r *http.Request) *Workspace {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ws := range s.items {
		if now.Sub(ws.seen) > s.ttl {
			delete(s.items, id)
		}
	}

	if c, err := r.Cookie(sessionCookie); err == nil {
		if ws, ok := s.items[c.Value]; ok {
			ws.seen = now
			return ws
		}
	}

	id := uuid.NewString()
	ws := s.create(id)
	ws.seen = now
	s.items[id] = ws
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return ws
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
