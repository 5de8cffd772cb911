package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rapheephat/hiewhub-tui/internal/api"
	"github.com/rapheephat/hiewhub-tui/internal/keys"
	"github.com/rapheephat/hiewhub-tui/internal/livesync"
	"github.com/rapheephat/hiewhub-tui/internal/model"
	"github.com/rapheephat/hiewhub-tui/internal/session"
	"github.com/rapheephat/hiewhub-tui/internal/store"
	"github.com/rapheephat/hiewhub-tui/internal/ui"
	"github.com/rapheephat/hiewhub-tui/internal/ui/admin"
	"github.com/rapheephat/hiewhub-tui/internal/ui/cart"
	"github.com/rapheephat/hiewhub-tui/internal/ui/catalog"
	"github.com/rapheephat/hiewhub-tui/internal/ui/chat"
	"github.com/rapheephat/hiewhub-tui/internal/ui/detail"
	"github.com/rapheephat/hiewhub-tui/internal/ui/favorites"
	"github.com/rapheephat/hiewhub-tui/internal/ui/helpview"
	"github.com/rapheephat/hiewhub-tui/internal/ui/notifications"
	"github.com/rapheephat/hiewhub-tui/internal/ui/orders"
	"github.com/rapheephat/hiewhub-tui/internal/ui/profile"
	"github.com/rapheephat/hiewhub-tui/internal/ui/request"
	"github.com/rapheephat/hiewhub-tui/internal/ui/signin"
	"github.com/rapheephat/hiewhub-tui/internal/ui/vendor"
)

// Poller names used for ResultMsg routing.
const (
	pollerBadges = "badges"
	pollerChat   = "chat"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewSignIn ViewState = iota
	ViewCatalog
	ViewDetail
	ViewCart
	ViewOrders
	ViewChat
	ViewNotifications
	ViewFavorites
	ViewRequest
	ViewVendor
	ViewAdmin
	ViewProfile
	ViewHelp
)

// Model is the root Bubble Tea model: it routes messages between the
// storefront views, owns the pollers that keep the live surfaces
// fresh, and turns authentication failures into a forced sign-out.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	cfg          *model.AppConfig
	logger       *zap.Logger
	session      *session.Store
	store        store.Store
	services     *Services
	keys         *keys.KeyMap

	signIn      signin.Model
	catalog     catalog.Model
	detailView  detail.Model
	cartView    cart.Model
	ordersView  orders.Model
	chatView    chat.Model
	notifView   notifications.Model
	favView     favorites.Model
	requestView request.Model
	vendorView  vendor.Model
	adminView   admin.Model
	profileView profile.Model
	helpView    helpview.Model

	badgePoller *livesync.Poller
	chatPoller  *livesync.Poller

	role        string
	userID      string
	cartCount   int
	unreadCount int
	notice      string
	ready       bool
	signedIn    bool
}

// New creates the root application model.
func New(cfg *model.AppConfig, sess *session.Store, st store.Store, services *Services, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	k := keys.DefaultKeyMap()

	return Model{
		currentView: ViewSignIn,
		cfg:         cfg,
		logger:      logger,
		session:     sess,
		store:       st,
		services:    services,
		keys:        k,
		signIn:      signin.New(80, 24),
		catalog:     catalog.New(st, k, 80, 24),
		detailView:  detail.New(k, 80, 24),
		cartView:    cart.New(k, 80, 24),
		ordersView:  orders.New(st, k, 80, 24),
		chatView:    chat.New(k, 80, 24),
		notifView:   notifications.New(80, 24),
		favView:     favorites.New(80, 24),
		requestView: request.New(80, 24),
		vendorView:  vendor.New(80, 24),
		adminView:   admin.New(k, 80, 24),
		profileView: profile.New(80, 24),
		helpView:    helpview.New(k, 80, 24),
	}
}

// Init either resumes the persisted session or shows the sign-in gate.
func (m Model) Init() tea.Cmd {
	if m.session.IsActive() {
		// The Update loop receives the startup commands through a
		// synthetic message so session start stays in one place.
		return func() tea.Msg { return loginDoneMsg{} }
	}
	return m.signIn.StartLogin()
}

// startSession transitions into the signed-in storefront: claims are
// decoded for optimistic identity and the badge poller starts.
func (m Model) startSession() (Model, tea.Cmd) {
	m.signedIn = true
	m.currentView = ViewCatalog
	m.notice = ""

	if claims := m.session.Decode(); claims != nil {
		m.userID = claims.UserID
		m.role = claims.Role
		m.chatView.SetCurrentUser(claims.UserID)
	}

	badgeInterval := time.Duration(m.cfg.Sync.BadgeIntervalSec) * time.Second
	m.badgePoller = livesync.New(pollerBadges, badgeInterval, m.fetchBadgeCounts, m.logger)

	return m, tea.Batch(
		m.badgePoller.Start(),
		m.catalog.Init(),
		m.syncLatestProducts(),
		m.syncProducts(),
	)
}

// signOut clears the session, disposes every poller, and returns to the
// sign-in gate with the given message.
func (m Model) signOut(message string) (Model, tea.Cmd) {
	if err := m.session.Clear(); err != nil {
		m.logger.Warn("clearing session failed", zap.Error(err))
	}
	if m.badgePoller != nil {
		m.badgePoller.Dispose()
		m.badgePoller = nil
	}
	if m.chatPoller != nil {
		m.chatPoller.Dispose()
		m.chatPoller = nil
	}

	m.signedIn = false
	m.role = ""
	m.userID = ""
	m.cartCount = 0
	m.unreadCount = 0
	m.currentView = ViewSignIn

	var cmd tea.Cmd
	if message != "" {
		cmd = m.signIn.SetError(message)
	} else {
		cmd = m.signIn.StartLogin()
	}
	return m, cmd
}

// pollerByName resolves a ResultMsg source for re-subscription.
func (m Model) pollerByName(name string) *livesync.Poller {
	switch name {
	case pollerBadges:
		return m.badgePoller
	case pollerChat:
		return m.chatPoller
	}
	return nil
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w := m.layout.ContentWidth()
		h := m.layout.ContentHeight()
		m.signIn.SetSize(w, h)
		m.catalog.SetSize(w, h)
		m.detailView.SetSize(w, h)
		m.cartView.SetSize(w, h)
		m.ordersView.SetSize(w, h)
		m.chatView.SetSize(w, h)
		m.notifView.SetSize(w, h)
		m.favView.SetSize(w, h)
		m.requestView.SetSize(w, h)
		m.vendorView.SetSize(w, h)
		m.adminView.SetSize(w, h)
		m.profileView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		// Forward to the active view so huh forms can lay themselves out.
		return m.updateActiveView(msg)

	case livesync.ResultMsg:
		return m.handlePollResult(msg)

	// Sign-in flow.
	case signin.LoginSubmitMsg:
		m.signIn.SetBusy()
		return m, m.login(msg.Email, msg.Password)

	case signin.RegisterSubmitMsg:
		m.signIn.SetBusy()
		return m, m.registerAccount(registerRequest{
			firstname: msg.Firstname,
			lastname:  msg.Lastname,
			email:     msg.Email,
			password:  msg.Password,
		})

	case signin.QuitMsg:
		return m.quit()

	case loginDoneMsg:
		if msg.err != nil {
			return m, m.signIn.SetError(api.UserMessage(msg.err))
		}
		return m.startSession()

	case registerDoneMsg:
		if msg.err != nil {
			return m, m.signIn.SetError(api.UserMessage(msg.err))
		}
		return m, m.signIn.SetNotice("account created, sign in with your new credentials")

	case signin.ResetRequestMsg:
		m.signIn.SetBusy()
		return m, m.requestPasswordReset(msg.Email)

	case resetRequestedMsg:
		if msg.err != nil {
			return m, m.signIn.SetError(api.UserMessage(msg.err))
		}
		return m, m.signIn.StartResetConfirm("reset email sent, paste the token from it")

	case signin.ResetConfirmMsg:
		m.signIn.SetBusy()
		return m, m.confirmPasswordReset(msg.Token, msg.Password)

	case resetConfirmedMsg:
		if msg.err != nil {
			return m, m.signIn.SetError(api.UserMessage(msg.err))
		}
		return m, m.signIn.SetNotice("password updated, sign in with your new password")

	// Catalog.
	case productsSyncedMsg:
		if msg.err != nil {
			if api.IsAuthError(msg.err) {
				return m.signOut(sessionExpiredNotice)
			}
			// A failed request leaves the cached catalog usable;
			// anything outside the error taxonomy is worth a log.
			if !api.IsRequestError(msg.err) {
				m.logger.Warn("catalog sync failed", zap.Error(msg.err))
			}
			m.notice = api.UserMessage(msg.err)
		}
		return m, m.catalog.LoadProducts()

	case catalog.SelectedProductMsg:
		m.previousView = m.currentView
		m.currentView = ViewDetail
		m.detailView.SetLoading(true)
		return m, m.loadDetail(msg.ProductID)

	// Product detail.
	case detail.LoadedMsg:
		var cmd tea.Cmd
		m.detailView, cmd = m.detailView.Update(msg)
		return m, cmd

	case detailFailedMsg:
		if api.IsAuthError(msg.err) {
			return m.signOut(sessionExpiredNotice)
		}
		m.notice = api.UserMessage(msg.err)
		m.detailView.SetLoading(false)
		return m, nil

	case detail.BackMsg:
		m.currentView = ViewCatalog
		return m, nil

	case detail.ActionMsg:
		switch msg.Action {
		case detail.ActionAddToCart:
			return m, m.addToCart(msg.ProductID)
		case detail.ActionToggleFav:
			return m, m.toggleFavorite(msg.ProductID)
		case detail.ActionMessageVendor:
			return m, m.initiateChat(msg.VendorID)
		case detail.ActionVisitShop:
			return m, m.loadShop(msg.VendorID)
		}
		return m, nil

	case shopLoadedMsg:
		if msg.err != nil {
			if api.IsAuthError(msg.err) {
				return m.signOut(sessionExpiredNotice)
			}
			m.notice = api.UserMessage(msg.err)
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewCatalog
		return m, m.catalog.SetVendorFilter(msg.vendorID, msg.shopName)

	// Product requests (shop wishlist).
	case catalog.RequestProductMsg:
		m.previousView = m.currentView
		m.currentView = ViewRequest
		return m, m.requestView.Start(msg.VendorID, msg.ShopName)

	case request.SubmitMsg:
		return m, m.createProductRequest(msg.Input)

	case request.CancelMsg:
		m.currentView = ViewCatalog
		return m, nil

	case productRequestCreatedMsg:
		if msg.err != nil {
			if api.IsAuthError(msg.err) {
				return m.signOut(sessionExpiredNotice)
			}
			return m, m.requestView.SetError(api.UserMessage(msg.err))
		}
		m.notice = "request sent to the shop"
		m.currentView = ViewCatalog
		return m, nil

	case favoriteToggledMsg:
		if msg.err != nil {
			if api.IsAuthError(msg.err) {
				return m.signOut(sessionExpiredNotice)
			}
			m.notice = api.UserMessage(msg.err)
		}
		return m, nil

	// Cart.
	case cart.LoadedMsg:
		m.cartCount = len(msg.Items)
		var cmd tea.Cmd
		m.cartView, cmd = m.cartView.Update(msg)
		return m, cmd

	case cartFailedMsg:
		if api.IsAuthError(msg.err) {
			return m.signOut(sessionExpiredNotice)
		}
		m.cartView.SetError(api.UserMessage(msg.err))
		return m, nil

	case cart.RemoveRequestMsg:
		return m, m.removeFromCart(msg.VendorProductID)

	case cart.CheckoutRequestMsg:
		return m, m.checkout()

	case cartChangedMsg:
		if msg.err != nil {
			if api.IsAuthError(msg.err) {
				return m.signOut(sessionExpiredNotice)
			}
			if m.currentView == ViewCart {
				m.cartView.SetError(api.UserMessage(msg.err))
				return m, nil
			}
			m.notice = api.UserMessage(msg.err)
			return m, nil
		}
		m.notice = "cart updated"
		if m.badgePoller != nil {
			m.badgePoller.Refresh()
		}
		if m.currentView == ViewCart {
			return m, m.loadCart()
		}
		return m, nil

	case orderPlacedMsg:
		if msg.err != nil {
			if api.IsAuthError(msg.err) {
				return m.signOut(sessionExpiredNotice)
			}
			m.cartView.SetError(api.UserMessage(msg.err))
			return m, nil
		}
		m.notice = "order placed"
		if m.badgePoller != nil {
			m.badgePoller.Refresh()
		}
		return m, tea.Batch(m.loadCart(), m.syncOrders())

	// Orders.
	case orders.LoadedMsg:
		var cmd tea.Cmd
		m.ordersView, cmd = m.ordersView.Update(msg)
		return m, cmd

	case ordersFailedMsg:
		if api.IsAuthError(msg.err) {
			return m.signOut(sessionExpiredNotice)
		}
		m.ordersView.SetError(api.UserMessage(msg.err))
		return m, nil

	case orders.RefreshRequestMsg:
		return m, m.refreshOrder(msg.OrderID)

	// Chat.
	case chat.RoomOpenedMsg:
		if m.chatPoller != nil {
			m.chatPoller.SetFetch(m.fetchMessages(msg.RoomID))
			m.chatPoller.Refresh()
		}
		return m, nil

	case chat.RoomClosedMsg:
		if m.chatPoller != nil {
			m.chatPoller.SetFetch(m.fetchRooms)
			m.chatPoller.Refresh()
		}
		return m, nil

	case chat.SendRequestMsg:
		return m, m.sendMessage(msg.RoomID, msg.Content)

	case messageSentMsg:
		if msg.err != nil {
			if api.IsAuthError(msg.err) {
				return m.signOut(sessionExpiredNotice)
			}
			m.notice = api.UserMessage(msg.err)
			return m, nil
		}
		// The next poll would pick the message up anyway; refreshing
		// makes the echo immediate.
		if m.chatPoller != nil {
			m.chatPoller.Refresh()
		}
		return m, nil

	case roomInitiatedMsg:
		if msg.err != nil {
			if api.IsAuthError(msg.err) {
				return m.signOut(sessionExpiredNotice)
			}
			m.notice = api.UserMessage(msg.err)
			return m, nil
		}
		mm, enterCmd := m.enterChat()
		openCmd := mm.chatView.OpenRoom(*msg.room)
		return mm, tea.Batch(enterCmd, openCmd)

	// Notifications.
	case notifications.LoadedMsg:
		m.unreadCount = countUnread(msg.Notifications)
		var cmd tea.Cmd
		m.notifView, cmd = m.notifView.Update(msg)
		return m, cmd

	case notifFailedMsg:
		if api.IsAuthError(msg.err) {
			return m.signOut(sessionExpiredNotice)
		}
		m.notifView.SetError(api.UserMessage(msg.err))
		return m, nil

	case notifications.MarkReadRequestMsg:
		if m.unreadCount > 0 {
			m.unreadCount--
		}
		return m, m.markNotificationsRead([]string{msg.ID})

	case notifications.MarkAllReadRequestMsg:
		m.unreadCount = 0
		return m, m.markNotificationsRead(msg.IDs)

	case notificationsChangedMsg:
		if msg.err != nil {
			if api.IsAuthError(msg.err) {
				return m.signOut(sessionExpiredNotice)
			}
			m.notice = api.UserMessage(msg.err)
			// The optimistic counts may be off now; reload.
			return m, m.loadNotifications()
		}
		if m.badgePoller != nil {
			m.badgePoller.Refresh()
		}
		return m, nil

	// Favorites.
	case favorites.LoadedMsg:
		var cmd tea.Cmd
		m.favView, cmd = m.favView.Update(msg)
		return m, cmd

	case favoritesFailedMsg:
		if api.IsAuthError(msg.err) {
			return m.signOut(sessionExpiredNotice)
		}
		m.favView.SetError(api.UserMessage(msg.err))
		return m, nil

	case favorites.SelectedProductMsg:
		m.previousView = m.currentView
		m.currentView = ViewDetail
		m.detailView.SetLoading(true)
		return m, m.loadDetail(msg.ProductID)

	case favorites.RemoveRequestMsg:
		return m, m.removeFavorite(msg.ProductID)

	case favoritesChangedMsg:
		if msg.err != nil {
			if api.IsAuthError(msg.err) {
				return m.signOut(sessionExpiredNotice)
			}
			m.favView.SetError(api.UserMessage(msg.err))
			return m, nil
		}
		return m, m.loadFavorites()

	// Vendor application.
	case vendor.StatusLoadedMsg:
		var cmd tea.Cmd
		m.vendorView, cmd = m.vendorView.Update(msg)
		if msg.Status == model.VendorRequestApproved {
			// Approved vendors see their incoming orders and customer
			// product requests on the same screen.
			return m, tea.Batch(cmd, m.loadVendorOrders(), m.loadVendorRequests())
		}
		return m, cmd

	case vendor.OrdersLoadedMsg:
		var cmd tea.Cmd
		m.vendorView, cmd = m.vendorView.Update(msg)
		return m, cmd

	case vendor.RequestsLoadedMsg:
		var cmd tea.Cmd
		m.vendorView, cmd = m.vendorView.Update(msg)
		return m, cmd

	case vendor.ReviewProductRequestMsg:
		return m, m.reviewProductRequest(msg.RequestID, msg.Status)

	case productRequestReviewedMsg:
		if msg.err != nil {
			if api.IsAuthError(msg.err) {
				return m.signOut(sessionExpiredNotice)
			}
			m.vendorView.SetError(api.UserMessage(msg.err))
			return m, nil
		}
		m.notice = "request updated"
		return m, m.loadVendorRequests()

	case vendor.AdvanceOrderMsg:
		return m, m.advanceVendorOrder(msg.OrderID, msg.Status)

	case vendorOrderUpdatedMsg:
		if msg.err != nil {
			if api.IsAuthError(msg.err) {
				return m.signOut(sessionExpiredNotice)
			}
			m.vendorView.SetError(api.UserMessage(msg.err))
			return m, nil
		}
		m.notice = "order updated"
		return m, m.loadVendorOrders()

	case vendorFailedMsg:
		if api.IsAuthError(msg.err) {
			return m.signOut(sessionExpiredNotice)
		}
		m.vendorView.SetError(api.UserMessage(msg.err))
		return m, nil

	case vendor.SubmitMsg:
		return m, m.submitVendorApplication(msg)

	case vendorDoneMsg:
		if msg.err != nil {
			if api.IsAuthError(msg.err) {
				return m.signOut(sessionExpiredNotice)
			}
			m.vendorView.SetError(api.UserMessage(msg.err))
			return m, nil
		}
		m.notice = "application submitted"
		return m, m.loadVendorStatus()

	case vendor.BackMsg:
		m.currentView = ViewCatalog
		return m, nil

	// Admin console.
	case admin.DataLoadedMsg:
		var cmd tea.Cmd
		m.adminView, cmd = m.adminView.Update(msg)
		return m, cmd

	case adminFailedMsg:
		if api.IsAuthError(msg.err) {
			return m.signOut(sessionExpiredNotice)
		}
		m.adminView.SetError(api.UserMessage(msg.err))
		return m, nil

	case admin.ReviewRequestMsg:
		return m, m.reviewVendorRequest(msg.RequestID, msg.Action, msg.UserID)

	case admin.ChangeRoleMsg:
		return m, m.changeUserRole(msg.UserID, msg.Role)

	case admin.DeleteUserMsg:
		return m, m.deleteUser(msg.UserID)

	case adminActedMsg:
		if msg.err != nil {
			if api.IsAuthError(msg.err) {
				return m.signOut(sessionExpiredNotice)
			}
			m.adminView.SetError(api.UserMessage(msg.err))
			return m, nil
		}
		return m, m.loadAdminData()

	// Profile.
	case profile.LoadedMsg:
		if msg.Profile != nil {
			m.role = msg.Profile.User.Role
		}
		var cmd tea.Cmd
		m.profileView, cmd = m.profileView.Update(msg)
		return m, cmd

	case profileFailedMsg:
		if api.IsAuthError(msg.err) {
			return m.signOut(sessionExpiredNotice)
		}
		m.profileView.SetError(api.UserMessage(msg.err))
		var cmd tea.Cmd
		m.profileView, cmd = m.profileView.Update(profile.LoadedMsg{Claims: msg.claims})
		return m, cmd

	case tea.KeyMsg:
		m.notice = ""
		if handled, mm, cmd := m.handleGlobalKeys(msg); handled {
			return mm, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handlePollResult routes an accepted poller result and re-subscribes.
func (m Model) handlePollResult(msg livesync.ResultMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if p := m.pollerByName(msg.Name); p != nil {
		cmds = append(cmds, p.WaitForNextResult())
	}

	if msg.Err != nil {
		if api.IsAuthError(msg.Err) {
			mm, cmd := m.signOut(sessionExpiredNotice)
			return mm, tea.Batch(append(cmds, cmd)...)
		}
		// A surfaced (non-silent) failure from the eager first fetch.
		if msg.Name == pollerChat {
			m.chatView.SetError(api.UserMessage(msg.Err))
		} else {
			m.notice = api.UserMessage(msg.Err)
		}
		return m, tea.Batch(cmds...)
	}

	switch payload := msg.Payload.(type) {
	case badgeCountsMsg:
		m.cartCount = payload.cartCount
		m.unreadCount = payload.unreadCount

	case chat.RoomsLoadedMsg:
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(payload)
		cmds = append(cmds, cmd)

	case chat.MessagesLoadedMsg:
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(payload)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleGlobalKeys processes navigation and application-level keys.
// Returns false when the key should fall through to the active view.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		mm, cmd := m.quit()
		return true, mm, cmd
	}

	if !m.signedIn {
		return false, m, nil
	}

	// Views with focused text input keep every other key.
	if m.inputFocused() {
		return false, m, nil
	}

	switch msg.String() {
	case "q":
		if m.currentView == ViewCatalog {
			mm, cmd := m.quit()
			return true, mm, cmd
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, m, nil

	case "esc":
		return m.handleGlobalBack()

	case "r":
		// The admin user table uses r for role changes.
		if m.currentView == ViewAdmin {
			return false, m, nil
		}
		return true, m, m.refreshCurrent()

	case "C":
		return m.navigate(ViewCart, m.loadCart())

	case "M":
		mm, cmd := m.enterChat()
		return true, mm, cmd

	case "N":
		return m.navigate(ViewNotifications, m.loadNotifications())

	case "F":
		return m.navigate(ViewFavorites, m.loadFavorites())

	case "O":
		return m.navigate(ViewOrders, tea.Batch(m.ordersView.Init(), m.syncOrders()))

	case "P":
		return m.navigate(ViewProfile, m.loadProfile())

	case "V":
		if m.role != model.RoleAdmin {
			return m.navigate(ViewVendor, m.loadVendorStatus())
		}

	case "D":
		if m.role == model.RoleAdmin {
			return m.navigate(ViewAdmin, m.loadAdminData())
		}

	case "L":
		mm, cmd := m.signOut("")
		mm.notice = ""
		return true, mm, cmd
	}

	return false, m, nil
}

// inputFocused reports whether the active view owns the keyboard.
func (m Model) inputFocused() bool {
	switch m.currentView {
	case ViewSignIn, ViewVendor, ViewRequest:
		return true
	case ViewChat:
		// Typing happens only inside an open room.
		return m.chatView.ActiveRoomID() != ""
	case ViewCatalog:
		return m.catalog.SearchMode()
	}
	return false
}

// handleGlobalBack routes esc for views that have no deeper state.
func (m Model) handleGlobalBack() (bool, Model, tea.Cmd) {
	switch m.currentView {
	case ViewCart, ViewOrders, ViewNotifications, ViewFavorites, ViewProfile, ViewAdmin:
		m.currentView = ViewCatalog
		return true, m, nil
	case ViewCatalog:
		// Leaving a shop storefront restores the full catalog.
		if m.catalog.VendorFiltered() {
			return true, m, m.catalog.ClearVendorFilter()
		}
	case ViewChat:
		// Inside a room esc is the chat view's own back key.
		if m.chatView.ActiveRoomID() == "" {
			if m.chatPoller != nil {
				m.chatPoller.Suspend()
			}
			m.currentView = ViewCatalog
			return true, m, nil
		}
	case ViewHelp:
		m.currentView = m.previousView
		return true, m, nil
	}
	return false, m, nil
}

// navigate switches the current view and runs its load command.
func (m Model) navigate(view ViewState, cmd tea.Cmd) (bool, Model, tea.Cmd) {
	if m.currentView == ViewChat && m.chatPoller != nil {
		m.chatPoller.Suspend()
	}
	m.previousView = m.currentView
	m.currentView = view
	return true, m, cmd
}

// enterChat opens the chat surface and makes sure its poller runs.
func (m Model) enterChat() (Model, tea.Cmd) {
	m.previousView = m.currentView
	m.currentView = ViewChat

	if m.chatPoller == nil {
		chatInterval := time.Duration(m.cfg.Sync.ChatIntervalSec) * time.Second
		m.chatPoller = livesync.New(pollerChat, chatInterval, m.fetchRooms, m.logger)
		return m, m.chatPoller.Start()
	}

	m.chatPoller.Resume()
	m.chatPoller.Refresh()
	return m, nil
}

// refreshCurrent re-fetches whatever the active view shows.
func (m Model) refreshCurrent() tea.Cmd {
	if m.badgePoller != nil {
		m.badgePoller.Refresh()
	}
	switch m.currentView {
	case ViewCatalog:
		return m.syncProducts()
	case ViewDetail:
		if id := m.detailView.ProductID(); id != "" {
			return m.loadDetail(id)
		}
	case ViewCart:
		return m.loadCart()
	case ViewOrders:
		return m.syncOrders()
	case ViewChat:
		if m.chatPoller != nil {
			m.chatPoller.Refresh()
		}
	case ViewNotifications:
		return m.loadNotifications()
	case ViewFavorites:
		return m.loadFavorites()
	case ViewVendor:
		return m.loadVendorStatus()
	case ViewProfile:
		return m.loadProfile()
	}
	return nil
}

// quit disposes the pollers and exits.
func (m Model) quit() (Model, tea.Cmd) {
	if m.badgePoller != nil {
		m.badgePoller.Dispose()
	}
	if m.chatPoller != nil {
		m.chatPoller.Dispose()
	}
	return m, tea.Quit
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewSignIn:
		m.signIn, cmd = m.signIn.Update(msg)
	case ViewCatalog:
		m.catalog, cmd = m.catalog.Update(msg)
	case ViewDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	case ViewCart:
		m.cartView, cmd = m.cartView.Update(msg)
	case ViewOrders:
		m.ordersView, cmd = m.ordersView.Update(msg)
	case ViewChat:
		m.chatView, cmd = m.chatView.Update(msg)
	case ViewNotifications:
		m.notifView, cmd = m.notifView.Update(msg)
	case ViewFavorites:
		m.favView, cmd = m.favView.Update(msg)
	case ViewRequest:
		m.requestView, cmd = m.requestView.Update(msg)
	case ViewVendor:
		m.vendorView, cmd = m.vendorView.Update(msg)
	case ViewAdmin:
		m.adminView, cmd = m.adminView.Update(msg)
	case ViewProfile:
		m.profileView, cmd = m.profileView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	badges := ""
	if m.signedIn {
		badges = ui.Badges(m.cartCount, m.unreadCount)
	}
	header := m.layout.RenderHeader("HiewHub", badges, m.syncStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewSignIn:
		return m.signIn.View()
	case ViewCatalog:
		return m.catalog.View()
	case ViewDetail:
		return m.detailView.View()
	case ViewCart:
		return m.cartView.View()
	case ViewOrders:
		return m.ordersView.View()
	case ViewChat:
		return m.chatView.View()
	case ViewNotifications:
		return m.notifView.View()
	case ViewFavorites:
		return m.favView.View()
	case ViewRequest:
		return m.requestView.View()
	case ViewVendor:
		return m.vendorView.View()
	case ViewAdmin:
		return m.adminView.View()
	case ViewProfile:
		return m.profileView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// syncStatus returns a short string describing the polling state.
func (m Model) syncStatus() string {
	if !m.signedIn || m.badgePoller == nil {
		return ""
	}
	switch m.badgePoller.State() {
	case livesync.StateActive:
		return "live"
	case livesync.StateSuspended:
		return "paused"
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.notice != "" {
		return m.notice
	}

	switch m.currentView {
	case ViewSignIn:
		return "enter submit | ctrl+r switch mode | ctrl+f forgot password | esc quit"
	case ViewDetail:
		return "a add to cart | f favorite | m message vendor | S visit shop | esc back"
	case ViewCart:
		return "enter checkout | d remove | esc back"
	case ViewOrders:
		return "enter expand | r refresh | esc back"
	case ViewChat:
		if m.chatView.ActiveRoomID() != "" {
			return "enter send | esc room list"
		}
		return "enter open | esc back"
	case ViewNotifications:
		return "enter mark read | A mark all | tab filter | esc back"
	case ViewFavorites:
		return "enter open | f remove | esc back"
	case ViewRequest:
		return "enter submit | esc cancel"
	case ViewVendor:
		return "enter submit | tab orders/requests | u advance order | esc back"
	case ViewAdmin:
		return "tab switch | a approve | x reject | p pending | esc back"
	case ViewProfile:
		return "r refresh | esc back"
	case ViewHelp:
		return "? close help | esc back"
	default:
		if m.currentView == ViewCatalog && m.catalog.VendorFiltered() {
			return "enter open | w request a product | / search | s sort | esc full catalog"
		}
		hints := "q quit | ? help | / search | s sort | C cart | M messages | N inbox | O orders | F saved | P profile"
		if m.role == model.RoleAdmin {
			hints += " | D admin"
		} else {
			hints += " | V sell"
		}
		return hints
	}
}

// countUnread counts unread notifications in a snapshot.
func countUnread(items []model.Notification) int {
	n := 0
	for _, item := range items {
		if item.Status == model.NotificationUnread {
			n++
		}
	}
	return n
}
