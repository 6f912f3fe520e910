package frame_test

import (
	"testing"

	"flowcraft/internal/frame"
)

func TestManager_MountStateFollowsTool(t *testing.T) {
	m := frame.NewManager("select")
	m.Mount("s1")
	if got := m.State("s1"); got != frame.StateIdle {
		t.Errorf("expected idle under select, got %q", got)
	}

	m = frame.NewManager("eraser")
	m.Mount("s1")
	if got := m.State("s1"); got != frame.StateHoverable {
		t.Errorf("expected hoverable under eraser, got %q", got)
	}
}

func TestManager_SetToolTransitionsAllContexts(t *testing.T) {
	m := frame.NewManager("select")
	m.Mount("s1")
	m.Mount("s2")

	m.SetTool("wand")

	for _, id := range []string{"s1", "s2"} {
		if got := m.State(id); got != frame.StateHoverable {
			t.Errorf("context %s: expected hoverable, got %q", id, got)
		}
	}

	m.SetTool("hand")
	if got := m.State("s1"); got != frame.StateIdle {
		t.Errorf("expected idle under hand, got %q", got)
	}
}

func TestManager_SelectMarksExactlyOneElement(t *testing.T) {
	m := frame.NewManager("wand")
	m.Mount("s1")
	m.Mount("s2")

	m.Select("s1", frame.ElementRect{Width: 10, Height: 10}, "<button>A</button>")
	m.Select("s2", frame.ElementRect{Width: 20, Height: 20}, "<button>B</button>")

	if got := m.State("s1"); got != frame.StateHoverable {
		t.Errorf("prior context not demoted, state %q", got)
	}
	if got := m.State("s2"); got != frame.StateEditing {
		t.Errorf("expected editing, got %q", got)
	}

	sel := m.Selection()
	if sel == nil || sel.ScreenID != "s2" || sel.OriginalHTML != "<button>B</button>" {
		t.Fatalf("unexpected selection: %+v", sel)
	}
}

func TestManager_ToolChangeClearsSelection(t *testing.T) {
	m := frame.NewManager("wand")
	m.Mount("s1")
	m.Select("s1", frame.ElementRect{}, "<b>x</b>")

	m.SetTool("select")

	if m.Selection() != nil {
		t.Fatal("selection survived tool change")
	}
	if got := m.State("s1"); got != frame.StateIdle {
		t.Errorf("expected idle after tool change, got %q", got)
	}
}

func TestManager_ClearSelection(t *testing.T) {
	m := frame.NewManager("wand")
	m.Mount("s1")
	m.Select("s1", frame.ElementRect{}, "<b>x</b>")

	m.ClearSelection()

	if m.Selection() != nil {
		t.Fatal("selection not cleared")
	}
	if got := m.State("s1"); got != frame.StateHoverable {
		t.Errorf("expected hoverable under wand after clear, got %q", got)
	}
}

func TestManager_UnmountDropsContextAndSelection(t *testing.T) {
	m := frame.NewManager("wand")
	m.Mount("s1")
	m.Select("s1", frame.ElementRect{}, "<b>x</b>")

	m.Unmount("s1")

	if m.Selection() != nil {
		t.Fatal("selection survived unmount")
	}
	// Unknown contexts report idle.
	if got := m.State("s1"); got != frame.StateIdle {
		t.Errorf("expected idle for unmounted context, got %q", got)
	}
}

func TestManager_SelectionReturnsCopy(t *testing.T) {
	m := frame.NewManager("wand")
	m.Mount("s1")
	m.Select("s1", frame.ElementRect{}, "<b>x</b>")

	sel := m.Selection()
	sel.OriginalHTML = "mutated"

	if m.Selection().OriginalHTML != "<b>x</b>" {
		t.Fatal("caller mutation leaked into manager state")
	}
}

func TestManager_Reset(t *testing.T) {
	m := frame.NewManager("wand")
	m.Mount("s1")
	m.Select("s1", frame.ElementRect{}, "<b>x</b>")

	m.Reset("select")

	if m.Selection() != nil {
		t.Fatal("selection survived reset")
	}
	m.Mount("s2")
	if got := m.State("s2"); got != frame.StateIdle {
		t.Errorf("expected idle under select after reset, got %q", got)
	}
}
