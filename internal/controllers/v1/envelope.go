package v1

import (
	"net/http"

	"github.com/envelope-zero/envelopes/internal/httputil"
	"github.com/envelope-zero/envelopes/internal/store"
	"github.com/gin-gonic/gin"
)

// RegisterEnvelopeRoutes registers the routes for envelopes with
// the RouterGroup that is passed.
func (co Controller) RegisterEnvelopeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsEnvelopeList)
		r.GET("", co.GetEnvelopes)
		r.POST("", co.CreateEnvelope)
	}

	// Remote service and change feed
	{
		r.OPTIONS("/sync", OptionsEnvelopeSync)
		r.POST("/sync", co.SyncEnvelopes)
		r.GET("/ws", co.EnvelopeFeed)
	}

	// Envelope with ID
	{
		r.OPTIONS("/:id", co.OptionsEnvelopeDetail)
		r.GET("/:id", co.GetEnvelope)
		r.PATCH("/:id", co.UpdateEnvelope)
		r.DELETE("/:id", co.DeleteEnvelope)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Envelopes
// @Success		204
// @Router			/v1/envelopes [options]
func OptionsEnvelopeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Envelopes
// @Success		204
// @Router			/v1/envelopes/sync [options]
func OptionsEnvelopeSync(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Envelopes
// @Success		204
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/envelopes/{id} [options]
func (co Controller) OptionsEnvelopeDetail(c *gin.Context) {
	if _, ok := co.Envelopes.Store().ByID(c.Param("id")); !ok {
		c.JSON(status(store.ErrNotFound), httpError{
			Error: store.ErrNotFound.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create envelope
// @Description	Creates a new envelope with the remote service and adds it to the store
// @Tags			Envelopes
// @Accept			json
// @Produce		json
// @Success		201			{object}	EnvelopeResponse
// @Failure		400			{object}	EnvelopeResponse
// @Failure		409			{object}	EnvelopeResponse
// @Failure		502			{object}	EnvelopeResponse
// @Param			envelope	body		v1.EnvelopeEditable	true	"Envelope"
// @Router			/v1/envelopes [post]
func (co Controller) CreateEnvelope(c *gin.Context) {
	var editable EnvelopeEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EnvelopeResponse{
			Error: &s,
		})
		return
	}

	envelope, err := co.Envelopes.Create(c.Request.Context(), editable.model())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EnvelopeResponse{
			Error: &s,
		})
		return
	}

	data := newEnvelope(c, envelope)
	c.JSON(http.StatusCreated, EnvelopeResponse{Data: &data})
}

// @Summary		Get envelopes
// @Description	Returns the envelopes in the store
// @Tags			Envelopes
// @Produce		json
// @Success		200			{object}	EnvelopeListResponse
// @Router			/v1/envelopes [get]
// @Param			category	query	string	false	"Filter by category"
// @Param			title		query	string	false	"Filter by title, '*' matches any number of characters"
// @Param			search		query	string	false	"Search for this text in title and category"
func (co Controller) GetEnvelopes(c *gin.Context) {
	var filter EnvelopeQueryFilter

	// The filters contain only strings, so this will always succeed
	_ = c.Bind(&filter)

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	s := co.Envelopes.Store()
	envelopes := s.Find(filter.query(setFields))
	snapshot := s.Snapshot()

	data := make([]Envelope, 0, len(envelopes))
	for _, envelope := range envelopes {
		data = append(data, newEnvelope(c, envelope))
	}

	c.JSON(http.StatusOK, EnvelopeListResponse{
		Data:    data,
		Loading: snapshot.Loading,
		Error:   snapshot.Error,
	})
}

// @Summary		Synchronize envelopes
// @Description	Replaces the envelopes in the store with the envelopes of the remote service
// @Tags			Envelopes
// @Produce		json
// @Success		200	{object}	EnvelopeListResponse
// @Failure		409	{object}	EnvelopeListResponse
// @Failure		502	{object}	EnvelopeListResponse
// @Router			/v1/envelopes/sync [post]
func (co Controller) SyncEnvelopes(c *gin.Context) {
	err := co.Envelopes.Load(c.Request.Context())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EnvelopeListResponse{
			Error: &s,
		})
		return
	}

	snapshot := co.Envelopes.Store().Snapshot()

	data := make([]Envelope, 0, len(snapshot.Envelopes))
	for _, envelope := range snapshot.Envelopes {
		data = append(data, newEnvelope(c, envelope))
	}

	c.JSON(http.StatusOK, EnvelopeListResponse{
		Data:    data,
		Loading: snapshot.Loading,
		Error:   snapshot.Error,
	})
}

// @Summary		Change feed
// @Description	Upgrades to a websocket connection that receives an event for every change of the store
// @Tags			Envelopes
// @Success		101
// @Failure		404	{object}	httpError
// @Router			/v1/envelopes/ws [get]
func (co Controller) EnvelopeFeed(c *gin.Context) {
	if co.Hub == nil {
		c.JSON(http.StatusNotFound, httpError{
			Error: errHubDisabled.Error(),
		})
		return
	}

	co.Hub.HandleRequest(c)
}

// @Summary		Get Envelope
// @Description	Returns a specific Envelope
// @Tags			Envelopes
// @Produce		json
// @Success		200	{object}	EnvelopeResponse
// @Failure		404	{object}	EnvelopeResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/envelopes/{id} [get]
func (co Controller) GetEnvelope(c *gin.Context) {
	envelope, ok := co.Envelopes.Store().ByID(c.Param("id"))
	if !ok {
		s := store.ErrNotFound.Error()
		c.JSON(status(store.ErrNotFound), EnvelopeResponse{
			Error: &s,
		})
		return
	}

	data := newEnvelope(c, envelope)
	c.JSON(http.StatusOK, EnvelopeResponse{Data: &data})
}

// @Summary		Update envelope
// @Description	Updates an existing envelope. Only values to be updated need to be specified.
// @Tags			Envelopes
// @Accept			json
// @Produce		json
// @Success		200			{object}	EnvelopeResponse
// @Failure		400			{object}	EnvelopeResponse
// @Failure		404			{object}	EnvelopeResponse
// @Failure		409			{object}	EnvelopeResponse
// @Failure		502			{object}	EnvelopeResponse
// @Param			id			path		string				true	"ID formatted as string"
// @Param			envelope	body		v1.EnvelopeEditable	true	"Envelope"
// @Router			/v1/envelopes/{id} [patch]
func (co Controller) UpdateEnvelope(c *gin.Context) {
	envelope, ok := co.Envelopes.Store().ByID(c.Param("id"))
	if !ok {
		s := store.ErrNotFound.Error()
		c.JSON(status(store.ErrNotFound), EnvelopeResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, EnvelopeEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EnvelopeResponse{
			Error: &s,
		})
		return
	}

	var data EnvelopeEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EnvelopeResponse{
			Error: &s,
		})
		return
	}

	updated, err := co.Envelopes.Update(c.Request.Context(), envelope.ID, data.merge(envelope.Fields, updateFields))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EnvelopeResponse{
			Error: &s,
		})
		return
	}

	apiResource := newEnvelope(c, updated)
	c.JSON(http.StatusOK, EnvelopeResponse{Data: &apiResource})
}

// @Summary		Delete envelope
// @Description	Deletes an envelope with the remote service and removes it from the store
// @Tags			Envelopes
// @Success		204
// @Failure		404	{object}	httpError
// @Failure		409	{object}	httpError
// @Failure		502	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/envelopes/{id} [delete]
func (co Controller) DeleteEnvelope(c *gin.Context) {
	err := co.Envelopes.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
