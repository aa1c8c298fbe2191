package handlers

import (
	"net/http"
	"strconv"

	"saferail/internal/service"

	"github.com/gin-gonic/gin"
)

// AddContactRequest is one emergency contact.
type AddContactRequest struct {
	Name   string `json:"name" binding:"required" example:"Mom"`
	Number string `json:"number" binding:"required,in_phone" example:"+91 98765 43210"`
}

// SOSRequest carries the optional location of the emergency.
type SOSRequest struct {
	Lat     string `json:"lat" example:"19.0176"`
	Lon     string `json:"lon" example:"72.8562"`
	Station string `json:"station" example:"Dadar"`
}

// @Summary      List emergency contacts
// @Tags         safety
// @Produce      json
// @Success      200  {array}  models.EmergencyContact
// @Router       /api/v1/safety/contacts [get]
// @Security     BearerAuth
func (h *Handler) listContacts(c *gin.Context) {
	contacts, err := h.services.Contacts(c.Request.Context(), userID(c))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load contacts", "contacts_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// @Summary      Add emergency contact
// @Tags         safety
// @Accept       json
// @Produce      json
// @Param        body  body      AddContactRequest  true  "Contact"
// @Success      201   {object}  models.EmergencyContact
// @Failure      400   {object}  map[string]interface{}
// @Router       /api/v1/safety/contacts [post]
// @Security     BearerAuth
func (h *Handler) addContact(c *gin.Context) {
	var req AddContactRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	contact, err := h.services.AddContact(c.Request.Context(), userID(c), req.Name, req.Number)
	if err != nil {
		h.writeError(c, err, "contacts_add_failed")
		return
	}
	c.JSON(http.StatusCreated, contact)
}

// @Summary      Delete emergency contact
// @Tags         safety
// @Param        id   path  int  true  "Contact ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/safety/contacts/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteContact(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact id"})
		return
	}
	if err := h.services.DeleteContact(c.Request.Context(), userID(c), id); err != nil {
		h.writeError(c, err, "contacts_delete_failed", "contact_id", id)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      Raise SOS
// @Description  Records the emergency, alerts the railway police stream and texts every emergency contact.
// @Tags         safety
// @Accept       json
// @Produce      json
// @Param        body  body      SOSRequest  false  "Location"
// @Success      200   {object}  service.SOSResult
// @Router       /api/v1/safety/sos [post]
// @Security     BearerAuth
func (h *Handler) sos(c *gin.Context) {
	var req SOSRequest
	if c.Request.ContentLength != 0 {
		if ok := h.bindJSONOrBadRequest(c, &req); !ok {
			return
		}
	}
	res, err := h.services.SOS(c.Request.Context(), userID(c), service.SOSRequest{
		Lat:     req.Lat,
		Lon:     req.Lon,
		Station: req.Station,
	})
	if err != nil {
		h.writeError(c, err, "sos_failed", "user_id", userID(c))
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Helplines
// @Tags         safety
// @Produce      json
// @Success      200  {array}  models.Helpline
// @Router       /api/v1/safety/helplines [get]
// @Security     BearerAuth
func (h *Handler) helplines(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Helplines())
}
