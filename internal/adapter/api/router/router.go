package router

import (
	"github.com/labstack/echo/v4"

	"soukly/internal/adapter/api/handler"
	"soukly/internal/adapter/api/middleware"
)

// Handlers bundles every handler so main wires them once.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Item         *handler.ItemHandler
	Order        *handler.OrderHandler
	Coupon       *handler.CouponHandler
	Review       *handler.ReviewHandler
	Follow       *handler.FollowHandler
	Report       *handler.ReportHandler
	Chat         *handler.ChatHandler
	Notification *handler.NotificationHandler
	Health       *handler.HealthHandler
	WebSocket    *handler.WebSocketHandler
}

func Setup(e *echo.Echo, h Handlers, authMW *middleware.AuthMiddleware, roleMW *middleware.RoleMiddleware) {
	SetupAuthRouter(e, h.Auth, authMW)
	SetupUserRouter(e, h.User, authMW, roleMW)
	SetupItemRouter(e, h.Item, authMW, roleMW)
	SetupOrderRouter(e, h.Order, authMW, roleMW)
	SetupCouponRouter(e, h.Coupon, authMW)
	SetupReviewRouter(e, h.Review, authMW)
	SetupFollowRouter(e, h.Follow, authMW)
	SetupReportRouter(e, h.Report, authMW, roleMW)
	SetupChatRouter(e, h.Chat, authMW)
	SetupNotificationRouter(e, h.Notification, authMW, roleMW)
	SetupHealthRouter(e, h.Health)
	SetupWebSocketRouter(e, h.WebSocket)
}
