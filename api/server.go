package api

import (
	"foodcart/bot"
	"foodcart/services"

	"github.com/gin-gonic/gin"
)

// Server wires the storefront and manager HTTP surface.
type Server struct {
	matcher  *services.Matcher
	notifier *bot.Notifier // nil when notifications are not configured
}

func NewServer(matcher *services.Matcher, notifier *bot.Notifier) *Server {
	return &Server{matcher: matcher, notifier: notifier}
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/api/products", s.listProducts)
	r.POST("/api/order", s.registerOrder)

	r.GET("/manager/orders", s.listOrderSummaries)
	r.POST("/manager/orders/:id/processed", s.markOrderProcessed)

	return r
}

func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}
