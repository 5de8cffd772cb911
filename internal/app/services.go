package app

import "github.com/rapheephat/hiewhub-tui/internal/api"

// Services bundles the per-domain API wrappers the app consumes. They
// all share one underlying client and session.
type Services struct {
	Auth          *api.AuthService
	Products      *api.ProductService
	Cart          *api.CartService
	Chat          *api.ChatService
	Notifications *api.NotificationService
	Favorites     *api.FavoriteService
	Orders        *api.OrderService
	Vendor        *api.VendorService
	Admin         *api.AdminService
}

// NewServices creates the full service set on top of a shared client.
func NewServices(c *api.Client) *Services {
	return &Services{
		Auth:          api.NewAuthService(c),
		Products:      api.NewProductService(c),
		Cart:          api.NewCartService(c),
		Chat:          api.NewChatService(c),
		Notifications: api.NewNotificationService(c),
		Favorites:     api.NewFavoriteService(c),
		Orders:        api.NewOrderService(c),
		Vendor:        api.NewVendorService(c),
		Admin:         api.NewAdminService(c),
	}
}
