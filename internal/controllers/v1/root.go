package v1

import (
	"net/http"

	"github.com/envelope-zero/envelopes/internal/httputil"
	"github.com/gin-gonic/gin"
)

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Envelopes  string `json:"envelopes" example:"https://example.com/api/v1/envelopes"`   // URL of Envelope collection endpoint
	Summary    string `json:"summary" example:"https://example.com/api/v1/summary"`       // URL of the budget summary
	Categories string `json:"categories" example:"https://example.com/api/v1/categories"` // URL of the category list
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(httputil.ContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Envelopes:  url + "/v1/envelopes",
			Summary:    url + "/v1/summary",
			Categories: url + "/v1/categories",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
