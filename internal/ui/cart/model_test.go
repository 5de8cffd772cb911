package cart

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rapheephat/hiewhub-tui/internal/keys"
	"github.com/rapheephat/hiewhub-tui/internal/model"
)

func newTestModel() Model {
	return New(keys.DefaultKeyMap(), 80, 24)
}

func loaded(m Model, items []model.CartItem) Model {
	m, _ = m.Update(LoadedMsg{Items: items, FetchedAt: time.Now()})
	return m
}

func sampleItems() []model.CartItem {
	return []model.CartItem{
		{ID: "c1", VendorProductID: "vp1", Quantity: 2, VendorProduct: model.VendorProduct{Title: "Pad Thai Kit", Price: 250}},
		{ID: "c2", VendorProductID: "vp2", Quantity: 1, VendorProduct: model.VendorProduct{Title: "Ceramic Mug", Price: 350}},
	}
}

func TestCheckoutOnEmptyCartIsInert(t *testing.T) {
	m := loaded(newTestModel(), nil)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Errorf("checkout on empty cart produced %#v", cmd())
	}
	if m.busy {
		t.Error("model went busy with nothing to check out")
	}
}

func TestCheckoutEmitsRequest(t *testing.T) {
	m := loaded(newTestModel(), sampleItems())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("checkout produced no command")
	}
	if _, ok := cmd().(CheckoutRequestMsg); !ok {
		t.Fatalf("cmd = %#v, want CheckoutRequestMsg", cmd())
	}
	if !m.busy {
		t.Error("model not busy while checkout is in flight")
	}
}

func TestRemoveEmitsRequestForSelectedLine(t *testing.T) {
	m := loaded(newTestModel(), sampleItems())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if cmd == nil {
		t.Fatal("remove produced no command")
	}
	msg, ok := cmd().(RemoveRequestMsg)
	if !ok || msg.VendorProductID != "vp2" {
		t.Fatalf("cmd = %#v, want removal of vp2", cmd())
	}
	if !m.busy {
		t.Error("model not busy while removal is in flight")
	}
}

func TestKeysIgnoredWhileBusy(t *testing.T) {
	m := loaded(newTestModel(), sampleItems())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // now busy

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if cmd != nil {
		t.Errorf("busy model still emitted %#v", cmd())
	}
	if m.cursor != 0 {
		t.Errorf("busy model still moved cursor to %d", m.cursor)
	}
}

func TestReloadClearsBusyAndError(t *testing.T) {
	m := loaded(newTestModel(), sampleItems())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.SetError("could not place order")

	m = loaded(m, sampleItems()[:1])
	if m.busy || m.errMsg != "" {
		t.Errorf("reload left busy=%v errMsg=%q", m.busy, m.errMsg)
	}
	if m.Count() != 1 {
		t.Errorf("Count = %d, want 1", m.Count())
	}
}
