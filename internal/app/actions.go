package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rapheephat/hiewhub-tui/internal/api"
	"github.com/rapheephat/hiewhub-tui/internal/model"
	"github.com/rapheephat/hiewhub-tui/internal/session"
	"github.com/rapheephat/hiewhub-tui/internal/ui/admin"
	"github.com/rapheephat/hiewhub-tui/internal/ui/cart"
	"github.com/rapheephat/hiewhub-tui/internal/ui/chat"
	"github.com/rapheephat/hiewhub-tui/internal/ui/detail"
	"github.com/rapheephat/hiewhub-tui/internal/ui/favorites"
	"github.com/rapheephat/hiewhub-tui/internal/ui/notifications"
	"github.com/rapheephat/hiewhub-tui/internal/ui/orders"
	"github.com/rapheephat/hiewhub-tui/internal/ui/profile"
	"github.com/rapheephat/hiewhub-tui/internal/ui/vendor"
)

// Result messages produced by the action commands below. Errors carried
// here have not been classified yet; the Update loop routes auth errors
// to the sign-out path and shows everything else on the source view.

type loginDoneMsg struct {
	err error
}

type registerDoneMsg struct {
	err error
}

type resetRequestedMsg struct {
	err error
}

type resetConfirmedMsg struct {
	err error
}

type badgeCountsMsg struct {
	cartCount   int
	unreadCount int
}

type productsSyncedMsg struct {
	err error
}

type detailFailedMsg struct {
	err error
}

type cartFailedMsg struct {
	err error
}

type cartChangedMsg struct {
	err error
}

type orderPlacedMsg struct {
	order *model.Order
	err   error
}

type favoriteToggledMsg struct {
	err error
}

type favoritesFailedMsg struct {
	err error
}

type favoritesChangedMsg struct {
	err error
}

type shopLoadedMsg struct {
	vendorID string
	shopName string
	err      error
}

type roomInitiatedMsg struct {
	room *model.Conversation
	err  error
}

type messageSentMsg struct {
	roomID string
	err    error
}

type notifFailedMsg struct {
	err error
}

type notificationsChangedMsg struct {
	err error
}

type ordersFailedMsg struct {
	err error
}

type vendorDoneMsg struct {
	err error
}

type vendorFailedMsg struct {
	err error
}

type vendorOrderUpdatedMsg struct {
	err error
}

type productRequestCreatedMsg struct {
	err error
}

type productRequestReviewedMsg struct {
	err error
}

type adminActedMsg struct {
	err error
}

type adminFailedMsg struct {
	err error
}

type profileFailedMsg struct {
	claims *session.Claims
	err    error
}

// login exchanges credentials for a token and persists it.
func (m Model) login(email, password string) tea.Cmd {
	svc := m.services.Auth
	sess := m.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		token, err := svc.Login(ctx, email, password)
		if err != nil {
			return loginDoneMsg{err: err}
		}
		if err := sess.Save(token); err != nil {
			return loginDoneMsg{err: err}
		}
		return loginDoneMsg{}
	}
}

// registerAccount creates a new account; the user signs in afterwards.
func (m Model) registerAccount(msg registerRequest) tea.Cmd {
	svc := m.services.Auth
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		err := svc.Register(ctx, msg.firstname, msg.lastname, msg.email, msg.password)
		return registerDoneMsg{err: err}
	}
}

// registerRequest mirrors the sign-up form payload.
type registerRequest struct {
	firstname string
	lastname  string
	email     string
	password  string
}

// requestPasswordReset asks the server to email a reset token.
func (m Model) requestPasswordReset(email string) tea.Cmd {
	svc := m.services.Auth
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return resetRequestedMsg{err: svc.RequestPasswordReset(ctx, email)}
	}
}

// confirmPasswordReset redeems the emailed token for a new password.
func (m Model) confirmPasswordReset(token, password string) tea.Cmd {
	svc := m.services.Auth
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return resetConfirmedMsg{err: svc.ConfirmPasswordReset(ctx, token, password)}
	}
}

// fetchBadgeCounts is the badge poller's FetchFunc: the cart line count
// and the unread notification count in one pass.
func (m Model) fetchBadgeCounts(ctx context.Context) (tea.Msg, error) {
	items, err := m.services.Cart.GetCart(ctx)
	if err != nil {
		return nil, err
	}
	unread, err := m.services.Notifications.GetUnreadCount(ctx)
	if err != nil {
		return nil, err
	}
	return badgeCountsMsg{cartCount: len(items), unreadCount: unread}, nil
}

// fetchRooms is the chat poller's FetchFunc while the room list is showing.
func (m Model) fetchRooms(ctx context.Context) (tea.Msg, error) {
	rooms, err := m.services.Chat.GetRooms(ctx)
	if err != nil {
		return nil, err
	}
	return chat.RoomsLoadedMsg{Rooms: rooms, FetchedAt: time.Now()}, nil
}

// fetchMessages returns the chat poller's FetchFunc for one open room.
func (m Model) fetchMessages(roomID string) func(ctx context.Context) (tea.Msg, error) {
	svc := m.services.Chat
	return func(ctx context.Context) (tea.Msg, error) {
		msgs, err := svc.GetMessages(ctx, roomID)
		if err != nil {
			return nil, err
		}
		return chat.MessagesLoadedMsg{RoomID: roomID, Messages: msgs, FetchedAt: time.Now()}, nil
	}
}

// syncProducts pulls the catalog from the API into the local cache.
// The catalog view re-reads the cache once the sync lands.
func (m Model) syncProducts() tea.Cmd {
	svc := m.services.Products
	st := m.store
	logger := m.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		products, err := svc.ListProducts(ctx, "", "")
		if err != nil {
			return productsSyncedMsg{err: err}
		}
		if err := st.UpsertProducts(ctx, products); err != nil {
			logger.Warn("caching products failed", zap.Error(err))
		}
		return productsSyncedMsg{}
	}
}

// syncLatestProducts pulls the small newest-listings page ahead of the
// full catalog sync so the first paint is fast after sign-in.
func (m Model) syncLatestProducts() tea.Cmd {
	svc := m.services.Products
	st := m.store
	logger := m.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		products, err := svc.LatestProducts(ctx)
		if err != nil {
			return productsSyncedMsg{err: err}
		}
		if err := st.UpsertProducts(ctx, products); err != nil {
			logger.Warn("caching products failed", zap.Error(err))
		}
		return productsSyncedMsg{}
	}
}

// loadShop pulls one vendor's storefront into the cache so the catalog
// can show it through a vendor filter.
func (m Model) loadShop(vendorID string) tea.Cmd {
	svc := m.services.Products
	st := m.store
	logger := m.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		shop, err := svc.GetShop(ctx, vendorID)
		if err != nil {
			return shopLoadedMsg{vendorID: vendorID, err: err}
		}
		if err := st.UpsertProducts(ctx, shop.Products); err != nil {
			logger.Warn("caching shop products failed", zap.Error(err))
		}
		return shopLoadedMsg{vendorID: vendorID, shopName: shop.Vendor.DisplayName()}
	}
}

// loadDetail assembles the product page: the product, its related
// items, and whether it is a favorite. Related and favorite lookups are
// cosmetic, their failures do not block the page.
func (m Model) loadDetail(productID string) tea.Cmd {
	svc := m.services
	st := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		product, err := svc.Products.GetProduct(ctx, productID)
		if err != nil {
			// The cache can still serve the page offline.
			if cached, cerr := st.GetProductByID(ctx, productID); cerr == nil && cached != nil {
				product = cached
			} else {
				return detailFailedMsg{err: err}
			}
		}

		related, err := svc.Products.RelatedProducts(ctx, productID)
		if err != nil {
			related = nil
		}
		isFav, err := svc.Favorites.Check(ctx, productID)
		if err != nil {
			isFav = false
		}
		return detail.LoadedMsg{Product: product, Related: related, IsFavorite: isFav}
	}
}

// loadCart fetches the cart for the cart view.
func (m Model) loadCart() tea.Cmd {
	svc := m.services.Cart
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		items, err := svc.GetCart(ctx)
		if err != nil {
			return cartFailedMsg{err: err}
		}
		return cart.LoadedMsg{Items: items, FetchedAt: time.Now()}
	}
}

// addToCart adds one unit of a product.
func (m Model) addToCart(vendorProductID string) tea.Cmd {
	svc := m.services.Cart
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return cartChangedMsg{err: svc.AddItem(ctx, vendorProductID, 1)}
	}
}

// removeFromCart drops a cart line.
func (m Model) removeFromCart(vendorProductID string) tea.Cmd {
	svc := m.services.Cart
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return cartChangedMsg{err: svc.RemoveItem(ctx, vendorProductID)}
	}
}

// checkout places an order against the user's default address.
func (m Model) checkout() tea.Cmd {
	svc := m.services
	st := m.store
	logger := m.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		prof, err := svc.Auth.GetProfile(ctx)
		if err != nil {
			return orderPlacedMsg{err: err}
		}
		addressID := defaultAddressID(prof)
		if addressID == "" {
			return orderPlacedMsg{err: errNoAddress}
		}

		order, err := svc.Orders.PlaceOrder(ctx, addressID)
		if err != nil {
			return orderPlacedMsg{err: err}
		}
		if order != nil {
			if err := st.UpsertOrders(ctx, []model.Order{*order}); err != nil {
				logger.Warn("caching order failed", zap.Error(err))
			}
		}
		return orderPlacedMsg{order: order}
	}
}

// toggleFavorite flips a product's favorite state against the server's
// current state.
func (m Model) toggleFavorite(productID string) tea.Cmd {
	svc := m.services.Favorites
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		isFav, err := svc.Check(ctx, productID)
		if err != nil {
			return favoriteToggledMsg{err: err}
		}
		if isFav {
			err = svc.Remove(ctx, productID)
		} else {
			err = svc.Add(ctx, productID)
		}
		return favoriteToggledMsg{err: err}
	}
}

// loadFavorites fetches the saved-products list.
func (m Model) loadFavorites() tea.Cmd {
	svc := m.services.Favorites
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		favs, err := svc.ListFavorites(ctx)
		if err != nil {
			return favoritesFailedMsg{err: err}
		}
		return favorites.LoadedMsg{Favorites: favs}
	}
}

// removeFavorite drops a product from the saved list.
func (m Model) removeFavorite(productID string) tea.Cmd {
	svc := m.services.Favorites
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return favoritesChangedMsg{err: svc.Remove(ctx, productID)}
	}
}

// initiateChat opens (or finds) the room with a vendor.
func (m Model) initiateChat(vendorID string) tea.Cmd {
	svc := m.services.Chat
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		room, err := svc.Initiate(ctx, vendorID)
		if err != nil {
			return roomInitiatedMsg{err: err}
		}
		return roomInitiatedMsg{room: room}
	}
}

// sendMessage posts one chat message.
func (m Model) sendMessage(roomID, content string) tea.Cmd {
	svc := m.services.Chat
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		err := svc.SendMessage(ctx, roomID, content, nil)
		return messageSentMsg{roomID: roomID, err: err}
	}
}

// loadNotifications fetches the full notification list.
func (m Model) loadNotifications() tea.Cmd {
	svc := m.services.Notifications
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		items, err := svc.GetNotifications(ctx)
		if err != nil {
			return notifFailedMsg{err: err}
		}
		return notifications.LoadedMsg{Notifications: items, FetchedAt: time.Now()}
	}
}

// markNotificationsRead marks the given notifications read, one call
// per notification; the first failure stops the batch.
func (m Model) markNotificationsRead(ids []string) tea.Cmd {
	svc := m.services.Notifications
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		for _, id := range ids {
			if err := svc.MarkAsRead(ctx, id); err != nil {
				return notificationsChangedMsg{err: err}
			}
		}
		return notificationsChangedMsg{}
	}
}

// syncOrders pulls the order history into the local cache.
func (m Model) syncOrders() tea.Cmd {
	svc := m.services.Orders
	st := m.store
	logger := m.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		list, err := svc.MyOrders(ctx)
		if err != nil {
			return ordersFailedMsg{err: err}
		}
		if err := st.UpsertOrders(ctx, list); err != nil {
			logger.Warn("caching orders failed", zap.Error(err))
		}
		return orders.LoadedMsg{Orders: list}
	}
}

// refreshOrder re-fetches one order so an expanded row shows its
// current status. The cached row still renders if the refresh fails,
// so only auth failures surface.
func (m Model) refreshOrder(orderID string) tea.Cmd {
	svc := m.services.Orders
	st := m.store
	logger := m.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		order, err := svc.GetOrder(ctx, orderID)
		if err != nil {
			if api.IsAuthError(err) {
				return ordersFailedMsg{err: err}
			}
			logger.Debug("order refresh failed", zap.Error(err))
			return nil
		}
		if err := st.UpsertOrders(ctx, []model.Order{*order}); err != nil {
			logger.Warn("caching order failed", zap.Error(err))
			return nil
		}
		list, err := st.GetOrders(ctx)
		if err != nil {
			return nil
		}
		return orders.LoadedMsg{Orders: list}
	}
}

// loadVendorStatus fetches the user's application state.
func (m Model) loadVendorStatus() tea.Cmd {
	svc := m.services.Vendor
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		status, err := svc.RequestStatus(ctx)
		if err != nil {
			return vendorFailedMsg{err: err}
		}
		return vendor.StatusLoadedMsg{Status: status}
	}
}

// submitVendorApplication posts the become-a-vendor form.
func (m Model) submitVendorApplication(msg vendor.SubmitMsg) tea.Cmd {
	svc := m.services.Vendor
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return vendorDoneMsg{err: svc.Register(ctx, msg.Registration)}
	}
}

// loadVendorOrders fetches the incoming orders for an approved vendor.
func (m Model) loadVendorOrders() tea.Cmd {
	svc := m.services.Orders
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		list, err := svc.VendorOrders(ctx)
		if err != nil {
			return vendorFailedMsg{err: err}
		}
		return vendor.OrdersLoadedMsg{Orders: list}
	}
}

// advanceVendorOrder moves an incoming order to its next status.
func (m Model) advanceVendorOrder(orderID, status string) tea.Cmd {
	svc := m.services.Orders
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return vendorOrderUpdatedMsg{err: svc.UpdateOrderStatus(ctx, orderID, status)}
	}
}

// createProductRequest posts a customer's ask to a shop.
func (m Model) createProductRequest(in api.ProductRequestInput) tea.Cmd {
	svc := m.services.Vendor
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return productRequestCreatedMsg{err: svc.CreateProductRequest(ctx, in)}
	}
}

// loadVendorRequests fetches the product requests customers sent to
// the vendor's own shop.
func (m Model) loadVendorRequests() tea.Cmd {
	svc := m.services.Vendor
	vendorID := m.userID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		list, err := svc.ProductRequests(ctx, vendorID)
		if err != nil {
			return vendorFailedMsg{err: err}
		}
		return vendor.RequestsLoadedMsg{Requests: list}
	}
}

// reviewProductRequest moves a customer request to a new status.
func (m Model) reviewProductRequest(requestID, status string) tea.Cmd {
	svc := m.services.Vendor
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return productRequestReviewedMsg{err: svc.UpdateProductRequest(ctx, requestID, status)}
	}
}

// loadAdminData fetches the applications and the user table together.
func (m Model) loadAdminData() tea.Cmd {
	svc := m.services.Admin
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		requests, err := svc.GetVendorRequests(ctx)
		if err != nil {
			return adminFailedMsg{err: err}
		}
		users, err := svc.GetUsers(ctx)
		if err != nil {
			return adminFailedMsg{err: err}
		}
		return admin.DataLoadedMsg{Requests: requests, Users: users}
	}
}

// reviewVendorRequest approves or rejects an application, then tells
// the applicant. The notification is best-effort: the review itself has
// already succeeded.
func (m Model) reviewVendorRequest(requestID, action, applicantID string) tea.Cmd {
	svc := m.services
	logger := m.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		if err := svc.Admin.ReviewVendorRequest(ctx, requestID, action); err != nil {
			return adminActedMsg{err: err}
		}
		if applicantID != "" {
			notifType := model.NotificationRequestApproved
			message := "Your vendor application was approved."
			if action == api.AdminActionReject {
				notifType = model.NotificationRequestRejected
				message = "Your vendor application was rejected."
			}
			if err := svc.Notifications.Send(ctx, applicantID, notifType, message); err != nil {
				logger.Warn("notifying applicant failed", zap.Error(err))
			}
		}
		return adminActedMsg{}
	}
}

// changeUserRole sets an account's role.
func (m Model) changeUserRole(userID, role string) tea.Cmd {
	svc := m.services.Admin
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return adminActedMsg{err: svc.UpdateUserRole(ctx, userID, role)}
	}
}

// deleteUser removes an account.
func (m Model) deleteUser(userID string) tea.Cmd {
	svc := m.services.Admin
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return adminActedMsg{err: svc.DeleteUser(ctx, userID)}
	}
}

// loadProfile fetches the account page, falling back to the locally
// decoded token claims when the endpoint is unreachable.
func (m Model) loadProfile() tea.Cmd {
	svc := m.services.Auth
	sess := m.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		prof, err := svc.GetProfile(ctx)
		if err != nil {
			return profileFailedMsg{claims: sess.Decode(), err: err}
		}
		return profile.LoadedMsg{Profile: prof}
	}
}

// defaultAddressID picks the default shipping address, or the first
// saved one when none is marked default.
func defaultAddressID(prof *model.Profile) string {
	if prof == nil {
		return ""
	}
	for _, a := range prof.Addresses {
		if a.IsDefault {
			return a.ID
		}
	}
	if len(prof.Addresses) > 0 {
		return prof.Addresses[0].ID
	}
	return ""
}
