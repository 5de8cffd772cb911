package admin

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rapheephat/hiewhub-tui/internal/api"
	"github.com/rapheephat/hiewhub-tui/internal/keys"
	"github.com/rapheephat/hiewhub-tui/internal/model"
)

func newTestModel() Model {
	m := New(keys.DefaultKeyMap(), 80, 24)
	m, _ = m.Update(DataLoadedMsg{
		Requests: []model.VendorRequest{
			{ID: "r1", UserID: "applicant-1", ShopName: "Somchai's Kitchen", Status: model.VendorRequestPending},
			{ID: "r2", ShopName: "Mae's Mugs", Status: model.VendorRequestApproved},
			{ID: "r3", ShopName: "Lek's Loom", Status: model.VendorRequestPending},
		},
		Users: []model.User{
			{ID: "u1", Email: "a@example.com", Role: model.RoleCustomer},
			{ID: "u2", Email: "b@example.com", Role: model.RoleAdmin},
		},
	})
	return m
}

func press(m Model, key string) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

func TestPendingFilterDefaultsOn(t *testing.T) {
	m := newTestModel()

	vis := m.visibleRequests()
	if len(vis) != 2 {
		t.Fatalf("pending filter shows %d, want 2", len(vis))
	}
	for _, r := range vis {
		if r.Status != model.VendorRequestPending {
			t.Errorf("filtered list contains %s with status %s", r.ID, r.Status)
		}
	}

	m, _ = press(m, "p")
	if got := len(m.visibleRequests()); got != 3 {
		t.Errorf("after toggling filter off: %d, want 3", got)
	}
}

func TestApproveEmitsReview(t *testing.T) {
	m := newTestModel()

	_, cmd := press(m, "a")
	if cmd == nil {
		t.Fatal("approve produced no command")
	}
	msg, ok := cmd().(ReviewRequestMsg)
	if !ok || msg.RequestID != "r1" || msg.Action != api.AdminActionApprove {
		t.Fatalf("cmd = %#v", cmd())
	}
	if msg.UserID != "applicant-1" {
		t.Errorf("UserID = %q, want the applicant's ID", msg.UserID)
	}
}

func TestRejectSkipsResolvedRequest(t *testing.T) {
	m := newTestModel()
	m, _ = press(m, "p") // show all, cursor still 0
	m, _ = press(m, "j") // r2, already approved

	_, cmd := press(m, "x")
	if cmd != nil {
		t.Errorf("reject on a resolved request produced %#v", cmd())
	}
}

func TestRoleCycles(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})

	_, cmd := press(m, "r")
	if cmd == nil {
		t.Fatal("role change produced no command")
	}
	msg, ok := cmd().(ChangeRoleMsg)
	if !ok || msg.UserID != "u1" || msg.Role != model.RoleVendor {
		t.Fatalf("cmd = %#v, want u1 -> VENDOR", cmd())
	}

	// ADMIN wraps back to CUSTOMER.
	m, _ = press(m, "j")
	_, cmd = press(m, "r")
	msg = cmd().(ChangeRoleMsg)
	if msg.UserID != "u2" || msg.Role != model.RoleCustomer {
		t.Errorf("cmd = %#v, want u2 -> CUSTOMER", msg)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m := newTestModel()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})

	m, cmd := press(m, "d")
	if cmd != nil {
		t.Fatalf("delete fired without confirmation: %#v", cmd())
	}
	if m.confirmDel != "u1" {
		t.Fatalf("confirmDel = %q, want u1", m.confirmDel)
	}

	// Any key except y cancels.
	m, cmd = press(m, "n")
	if cmd != nil || m.confirmDel != "" {
		t.Errorf("cancel left confirmDel=%q cmd=%v", m.confirmDel, cmd)
	}

	m, _ = press(m, "d")
	m, cmd = press(m, "y")
	if cmd == nil {
		t.Fatal("confirmed delete produced no command")
	}
	msg, ok := cmd().(DeleteUserMsg)
	if !ok || msg.UserID != "u1" {
		t.Errorf("cmd = %#v, want DeleteUserMsg for u1", cmd())
	}
}

func TestTabSwitchResetsCursor(t *testing.T) {
	m := newTestModel()
	m, _ = press(m, "j")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.tab != tabUsers || m.cursor != 0 {
		t.Errorf("tab = %v cursor = %d after switch", m.tab, m.cursor)
	}
}
