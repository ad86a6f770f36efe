package handler

import (
	"errors"
	"net/http"

	"github.com/gattabara/site/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const contactFailureMessage = "Failed to submit form."

type contactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

// SubmitContact accepts the pitch / contact form. Failures are reported with
// a generic message.
func (a *API) SubmitContact(c *gin.Context) {
	var payload contactRequest
	if err := c.ShouldBind(&payload); err != nil {
		respondError(c, http.StatusBadRequest, contactFailureMessage)
		return
	}
	if a.contacts == nil {
		a.logger.Error("contact form submitted without a database")
		respondError(c, http.StatusInternalServerError, contactFailureMessage)
		return
	}

	_, err := a.contacts.Submit(service.ContactInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Message:  payload.Message,
		RemoteIP: c.ClientIP(),
	})
	if err != nil {
		if errors.Is(err, service.ErrContactInvalidInput) {
			respondError(c, http.StatusBadRequest, contactFailureMessage)
			return
		}
		a.logger.Error("contact form submission failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, contactFailureMessage)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
