package v1

import (
	"net/http"

	"github.com/envelope-zero/envelopes/internal/httputil"
	"github.com/envelope-zero/envelopes/internal/store"
	"github.com/gin-gonic/gin"
)

func (co Controller) RegisterSummaryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSummary)
	r.GET("", co.GetSummary)
}

func (co Controller) RegisterCategoryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsCategories)
	r.GET("", co.GetCategories)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Summary
// @Success		204
// @Router			/v1/summary [options]
func OptionsSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Budget summary
// @Description	Returns the totals over all envelopes and a breakdown per category
// @Tags			Summary
// @Produce		json
// @Success		200	{object}	SummaryResponse
// @Router			/v1/summary [get]
func (co Controller) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, SummaryResponse{
		Data: co.Envelopes.Store().Summary(),
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Router			/v1/categories [options]
func OptionsCategories(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get categories
// @Description	Returns all categories an envelope can have and the categories currently in use
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoriesResponse
// @Router			/v1/categories [get]
func (co Controller) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, CategoriesResponse{
		Data: Categories{
			Known: store.KnownCategories,
			InUse: co.Envelopes.Store().Categories(),
		},
	})
}
