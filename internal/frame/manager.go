package frame

import "sync"

// ContextState is where a rendering context sits in its interaction
// machine. The state is driven purely by TOOL_CHANGE broadcasts and the
// reports the context sends back — never by closures over outer state.
type ContextState string

const (
	// StateIdle: the context renders passively; clicks do nothing.
	StateIdle ContextState = "idle"
	// StateHoverable: the active tool paints hover affordances and a
	// click will mutate or mark an element.
	StateHoverable ContextState = "hoverable"
	// StateEditing: exactly one element is marked for magic edit.
	StateEditing ContextState = "editing"
)

// Selection is the element currently marked for magic edit.
type Selection struct {
	ScreenID     string      `json:"screenId"`
	Rect         ElementRect `json:"rect"`
	OriginalHTML string      `json:"originalHtml"`
}

// Manager mirrors the state of every rendering context on the Go side.
// It answers "what should this context be doing under the current
// tool", tracks the single magic-edit mark, and forgets contexts whose
// screens disappear.
type Manager struct {
	mu        sync.Mutex
	tool      string
	contexts  map[string]ContextState // screen ID → state
	selection *Selection
}

// NewManager returns a Manager with no mounted contexts.
func NewManager(tool string) *Manager {
	return &Manager{tool: tool, contexts: map[string]ContextState{}}
}

// stateForTool is the machine's transition on a tool broadcast.
func stateForTool(tool string) ContextState {
	switch tool {
	case "eraser", "wand":
		return StateHoverable
	default:
		return StateIdle
	}
}

// Mount registers a context when its screen first renders. The caller
// must follow up with a TOOL_CHANGE broadcast so the context reflects
// the current tool from its first frame.
func (m *Manager) Mount(screenID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contexts[screenID] = stateForTool(m.tool)
}

// Unmount forgets a context whose screen was deleted, dropping its
// mark if it held one.
func (m *Manager) Unmount(screenID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.contexts, screenID)
	if m.selection != nil && m.selection.ScreenID == screenID {
		m.selection = nil
	}
}

// SetTool applies a tool broadcast: every context transitions to the
// tool's base state and any magic-edit mark is cleared.
func (m *Manager) SetTool(tool string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tool = tool
	state := stateForTool(tool)
	for id := range m.contexts {
		m.contexts[id] = state
	}
	m.selection = nil
}

// Select records a MAGIC_SELECT report: the reporting context enters
// editing and any prior mark — in any context — is cleared, so exactly
// one element is ever marked.
func (m *Manager) Select(screenID string, rect ElementRect, originalHTML string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.selection != nil && m.selection.ScreenID != screenID {
		if _, ok := m.contexts[m.selection.ScreenID]; ok {
			m.contexts[m.selection.ScreenID] = stateForTool(m.tool)
		}
	}
	m.contexts[screenID] = StateEditing
	m.selection = &Selection{ScreenID: screenID, Rect: rect, OriginalHTML: originalHTML}
}

// ClearSelection drops the magic-edit mark, returning its context to
// the tool's base state.
func (m *Manager) ClearSelection() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selection == nil {
		return
	}
	if _, ok := m.contexts[m.selection.ScreenID]; ok {
		m.contexts[m.selection.ScreenID] = stateForTool(m.tool)
	}
	m.selection = nil
}

// Selection returns a copy of the current magic-edit mark, or nil.
func (m *Manager) Selection() *Selection {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selection == nil {
		return nil
	}
	s := *m.selection
	return &s
}

// State returns a context's current state. Unknown screens are idle.
func (m *Manager) State(screenID string) ContextState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.contexts[screenID]; ok {
		return s
	}
	return StateIdle
}

// Reset forgets every context; used when the canvas starts a new flow.
func (m *Manager) Reset(tool string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tool = tool
	m.contexts = map[string]ContextState{}
	m.selection = nil
}
