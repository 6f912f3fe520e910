package canvas

import (
	"fmt"

	"github.com/google/uuid"

	"flowcraft/internal/domain"
)

// screenByID looks a screen up through the index table. Callers must
// hold the engine lock.
func (e *Engine) screenByID(id string) (domain.Screen, bool) {
	i, ok := e.index[id]
	if !ok {
		return domain.Screen{}, false
	}
	return e.screens[i], true
}

func (e *Engine) noteByID(id string) (domain.StickyNote, bool) {
	for _, n := range e.notes {
		if n.ID == id {
			return n, true
		}
	}
	return domain.StickyNote{}, false
}

// reindex rebuilds the ID → position table after any change to the
// ordered screen sequence.
func (e *Engine) reindex() {
	e.index = make(map[string]int, len(e.screens))
	for i, s := range e.screens {
		e.index[s.ID] = i
	}
}

// SetScreens replaces the whole screen collection (a freshly generated
// flow). Screens without IDs get one; all connections are dropped.
func (e *Engine) SetScreens(screens []domain.Screen, platform domain.PlatformType) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.platform = platform
	e.screens = append([]domain.Screen(nil), screens...)
	for i := range e.screens {
		if e.screens[i].ID == "" {
			e.screens[i].ID = uuid.New().String()
		}
	}
	e.conns = nil
	e.draft = nil
	e.drag = DragState{}
	e.reindex()
}

// AddScreen creates a blank draft frame at the viewport center and
// returns it.
func (e *Engine) AddScreen() domain.Screen {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := domain.Screen{
		ID:          uuid.New().String(),
		Name:        fmt.Sprintf("New Screen %d", len(e.screens)+1),
		Type:        "Custom",
		Description: "Describe this screen...",
		Elements:    []string{},
		Position:    e.transform.ViewportCenter(e.viewport),
		Status:      domain.StatusDraft,
	}
	e.screens = append(e.screens, s)
	e.index[s.ID] = len(e.screens) - 1
	return s
}

// DeleteScreen removes a screen. Later screens shift down one position;
// edges incident to the screen are cascade-deleted, and an in-flight
// drag or connection draft referencing it is cleared.
func (e *Engine) DeleteScreen(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deleteScreenLocked(id)
}

func (e *Engine) deleteScreenLocked(id string) bool {
	i, ok := e.index[id]
	if !ok {
		return false
	}
	e.screens = append(e.screens[:i], e.screens[i+1:]...)
	e.reindex()

	kept := e.conns[:0]
	for _, c := range e.conns {
		if c.From != id && c.To != id {
			kept = append(kept, c)
		}
	}
	e.conns = kept

	if e.drag.Active && e.drag.TargetID == id {
		e.drag = DragState{}
	}
	if e.draft != nil && e.draft.SourceScreenID == id {
		e.draft = nil
	}
	return true
}

// MoveScreen places a screen at an absolute canvas-space position.
func (e *Engine) MoveScreen(id string, x, y float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	i, ok := e.index[id]
	if !ok {
		return false
	}
	e.screens[i].Position = domain.Point{X: x, Y: y}
	return true
}

// UpdateScreenDescription edits a screen's description in place.
func (e *Engine) UpdateScreenDescription(id, description string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	i, ok := e.index[id]
	if !ok {
		return false
	}
	e.screens[i].Description = description
	return true
}

// UpdateScreenStatus sets a screen's generation status, optionally
// replacing its markup.
func (e *Engine) UpdateScreenStatus(id string, status domain.ScreenStatus, html string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	i, ok := e.index[id]
	if !ok {
		return false
	}
	e.screens[i].Status = status
	if html != "" || status == domain.StatusDraft {
		e.screens[i].HTML = html
	}
	return true
}

// UpdateScreenHTML stores new markup for a screen, leaving its status
// untouched. Used when a rendering context reports an edit.
func (e *Engine) UpdateScreenHTML(id, html string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	i, ok := e.index[id]
	if !ok {
		return false
	}
	e.screens[i].HTML = html
	return true
}

// ScreenIDAt resolves an ordered index into a stable screen ID. The
// wire protocol speaks indices; everything past the boundary speaks
// IDs, so a deletion can never redirect an in-flight report onto the
// wrong screen.
func (e *Engine) ScreenIDAt(index int) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.screens) {
		return "", false
	}
	return e.screens[index].ID, true
}

// Screen returns a copy of the screen with the given ID.
func (e *Engine) Screen(id string) (domain.Screen, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.screenByID(id)
	if ok {
		s.Elements = append([]string(nil), s.Elements...)
	}
	return s, ok
}

// Screens returns a copy of the ordered screen collection.
func (e *Engine) Screens() []domain.Screen {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.copyScreensLocked()
}

func (e *Engine) copyScreensLocked() []domain.Screen {
	out := make([]domain.Screen, len(e.screens))
	copy(out, e.screens)
	for i := range out {
		out[i].Elements = append([]string(nil), out[i].Elements...)
	}
	return out
}

// AddNote creates a sticky note at the viewport center.
func (e *Engine) AddNote() domain.StickyNote {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := domain.StickyNote{
		ID:       uuid.New().String(),
		Text:     "New Note",
		Position: e.transform.ViewportCenter(e.viewport),
		Color:    domain.DefaultNoteColor,
	}
	e.notes = append(e.notes, n)
	return n
}

// UpdateNoteText edits a note's text.
func (e *Engine) UpdateNoteText(id, text string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.notes {
		if e.notes[i].ID == id {
			e.notes[i].Text = text
			return true
		}
	}
	return false
}

// MoveNote places a note at an absolute canvas-space position.
func (e *Engine) MoveNote(id string, x, y float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.notes {
		if e.notes[i].ID == id {
			e.notes[i].Position = domain.Point{X: x, Y: y}
			return true
		}
	}
	return false
}

// DeleteNote removes a sticky note.
func (e *Engine) DeleteNote(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deleteNoteLocked(id)
}

func (e *Engine) deleteNoteLocked(id string) bool {
	for i := range e.notes {
		if e.notes[i].ID == id {
			e.notes = append(e.notes[:i], e.notes[i+1:]...)
			if e.drag.Active && e.drag.TargetID == id {
				e.drag = DragState{}
			}
			return true
		}
	}
	return false
}

// Notes returns a copy of the sticky notes.
func (e *Engine) Notes() []domain.StickyNote {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.StickyNote(nil), e.notes...)
}
