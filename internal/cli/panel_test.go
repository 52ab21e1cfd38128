package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pawlygon/shapekit/pkg/ops"
	"github.com/pawlygon/shapekit/pkg/pending"
	"github.com/pawlygon/shapekit/pkg/roster"
	"github.com/pawlygon/shapekit/pkg/scene"
	"github.com/pawlygon/shapekit/pkg/shapekey"
)

func panelFixture() (PanelModel, *scene.Scene) {
	sc := &scene.Scene{
		Objects: []*scene.Object{{
			Name:        "Face",
			VertexCount: 2,
			Groups: []scene.VertexGroup{
				{Name: "Left", Weights: []scene.VertexWeight{{Index: 0, Weight: 1}}},
				{Name: "Right", Weights: []scene.VertexWeight{{Index: 1, Weight: 1}}},
			},
			Keys: []*shapekey.Key{
				{Name: "Basis"},
				{Name: "Smile"},
				{Name: "Frown.old"},
			},
			ActiveKey: "Smile",
		}},
	}
	rs := &roster.Set{
		Lists: []roster.List{{Name: "Basics", Keys: []string{"Smile", "Wink"}}},
		Pairs: []roster.Pair{{A: "Left", B: "Right"}},
	}
	runner := ops.NewRunner(pending.NewMemoryStore(), rs)
	m := NewPanelModel(context.Background(), runner, sc, "scene.json", "", "Basics")
	return m, sc
}

func keyPress(m tea.Model, key string) tea.Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return next
}

func TestPanelPrune(t *testing.T) {
	m, sc := panelFixture()

	next := keyPress(m, "p").(PanelModel)
	if !next.Dirty {
		t.Error("prune did not mark the panel dirty")
	}
	if next.status != "Deleted 1 shapekey(s)" {
		t.Errorf("status = %q", next.status)
	}
	if len(sc.Objects[0].Keys) != 2 {
		t.Errorf("keys after prune = %d, want 2", len(sc.Objects[0].Keys))
	}
}

func TestPanelSplit(t *testing.T) {
	m, sc := panelFixture()

	next := keyPress(m, "s").(PanelModel)
	if next.status != "Created: SmileLeft and SmileRight" {
		t.Errorf("status = %q", next.status)
	}
	if len(sc.Objects[0].Keys) != 5 {
		t.Errorf("keys after split = %d, want 5", len(sc.Objects[0].Keys))
	}
}

func TestPanelSetActiveKey(t *testing.T) {
	m, sc := panelFixture()
	m.Cursor = 2

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	pm := next.(PanelModel)
	if sc.Objects[0].ActiveKey != "Frown.old" {
		t.Errorf("active key = %q, want Frown.old", sc.Objects[0].ActiveKey)
	}
	if !pm.Dirty {
		t.Error("setting the active key did not mark the panel dirty")
	}
}

func TestPanelViewShowsDisabledFill(t *testing.T) {
	m, _ := panelFixture()

	view := m.View()
	if !strings.Contains(view, "f fill") {
		t.Fatalf("view missing fill action:\n%s", view)
	}
	if !strings.Contains(view, "run check first") {
		t.Errorf("fill not shown as blocked before a check:\n%s", view)
	}
}

func TestPanelCheckThenFill(t *testing.T) {
	m, sc := panelFixture()

	next := keyPress(m, "c").(PanelModel)
	if next.status != "Found 1 missing shapekeys" {
		t.Errorf("check status = %q", next.status)
	}

	next = keyPress(next, "f").(PanelModel)
	if next.status != "Created 1 shapekey(s)" {
		t.Errorf("fill status = %q", next.status)
	}
	c, err := sc.Objects[0].Collection()
	if err != nil {
		t.Fatal(err)
	}
	if !c.Has("Wink") {
		t.Error("fill did not create Wink")
	}
}

func TestPanelQuit(t *testing.T) {
	m, _ := panelFixture()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q did not produce a command")
	}
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Errorf("q produced %T, want tea.QuitMsg", msg)
	}
}
