// Package v1 contains the handlers of the v1 API.
//
// Handlers only read from the store. Every change goes through the
// service, which applies it to the store once the remote service
// confirmed it.
package v1

import (
	"github.com/envelope-zero/envelopes/internal/events"
	"github.com/envelope-zero/envelopes/internal/service"
	"github.com/gin-gonic/gin"
)

type Controller struct {
	Envelopes *service.Envelopes
	Hub       *events.Hub // Change feed, disabled when nil
}

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)

	co.RegisterEnvelopeRoutes(r.Group("/envelopes"))
	co.RegisterSummaryRoutes(r.Group("/summary"))
	co.RegisterCategoryRoutes(r.Group("/categories"))
}
