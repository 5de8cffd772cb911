package favorites

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rapheephat/hiewhub-tui/internal/model"
)

func newLoadedModel(favs []model.Favorite) Model {
	m := New(80, 24)
	m, _ = m.Update(LoadedMsg{Favorites: favs})
	return m
}

func press(m Model, key string) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

func sampleFavorites() []model.Favorite {
	return []model.Favorite{
		{ID: "f1", ProductID: "p1", Product: &model.Product{ID: "p1", Title: "Khao soi paste", Price: 120}},
		{ID: "f2", ProductID: "p2", Product: &model.Product{ID: "p2", Title: "Celadon bowl", Price: 450}},
	}
}

func TestEmptyStateOnlyWhenEmpty(t *testing.T) {
	empty := newLoadedModel(nil)
	if !strings.Contains(empty.View(), "Nothing saved yet") {
		t.Error("empty view is missing the empty state")
	}

	loaded := newLoadedModel(sampleFavorites())
	out := loaded.View()
	if strings.Contains(out, "Nothing saved yet") {
		t.Error("populated view still shows the empty state")
	}
	if !strings.Contains(out, "Khao soi paste") {
		t.Error("populated view is missing a saved product")
	}
}

func TestViewIsIdempotent(t *testing.T) {
	m := newLoadedModel(sampleFavorites())
	if m.View() != m.View() {
		t.Error("two renders of the same model differ")
	}
}

func TestEnterOpensSelectedProduct(t *testing.T) {
	m := newLoadedModel(sampleFavorites())
	m, _ = press(m, "j")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter produced no command")
	}
	msg, ok := cmd().(SelectedProductMsg)
	if !ok || msg.ProductID != "p2" {
		t.Fatalf("cmd = %#v", cmd())
	}
}

func TestRemoveEmitsRequestAndBlocksFurtherKeys(t *testing.T) {
	m := newLoadedModel(sampleFavorites())

	m, cmd := press(m, "f")
	if cmd == nil {
		t.Fatal("remove produced no command")
	}
	msg, ok := cmd().(RemoveRequestMsg)
	if !ok || msg.ProductID != "p1" {
		t.Fatalf("cmd = %#v", cmd())
	}

	if _, cmd := press(m, "f"); cmd != nil {
		t.Errorf("second remove while busy produced %#v", cmd())
	}
}
