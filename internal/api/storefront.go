package api

import (
	"net/http"

	"gemilang-store/internal/service"

	"github.com/gin-gonic/gin"
)

// home serves the landing route: the catalog for signed-in customers, a
// sign-in prompt otherwise
func (h *Handler) home(c *gin.Context) {
	session := currentSession(c)
	if session == nil {
		c.JSON(http.StatusOK, gin.H{
			"signed_in": false,
			"message":   "Please sign in to browse the catalog",
		})
		return
	}

	parts, err := h.catalog.ListParts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"signed_in": true,
		"parts":     parts,
	})
}

// partDetail serves one part with its full specifications
func (h *Handler) partDetail(c *gin.Context) {
	part, err := h.catalog.GetPart(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

// me serves the header payload: client name, avatar and unread badge count
func (h *Handler) me(c *gin.Context) {
	session := currentSession(c)

	client, err := h.profile.GetProfile(c.Request.Context(), session.UserID, session.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	unread, err := h.notifications.UnreadCount(c.Request.Context(), session.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":       client.Name,
		"email":      client.Email,
		"avatar_url": client.AvatarURL,
		"unread":     unread,
	})
}

// getProfile serves the settings view
func (h *Handler) getProfile(c *gin.Context) {
	session := currentSession(c)

	client, err := h.profile.GetProfile(c.Request.Context(), session.UserID, session.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// updateProfile saves the settings view's fields
func (h *Handler) updateProfile(c *gin.Context) {
	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	session := currentSession(c)
	client, err := h.profile.UpdateProfile(c.Request.Context(), session.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// uploadAvatar stores a profile picture and saves its public URL
func (h *Handler) uploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Avatar file is required",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	session := currentSession(c)
	url, err := h.profile.UploadAvatar(c.Request.Context(), session.UserID,
		fileHeader.Filename, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}

// viewCart serves the principal's cart with its current total
func (h *Handler) viewCart(c *gin.Context) {
	session := currentSession(c)

	view, err := h.cart.View(c.Request.Context(), session.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type addCartItemRequest struct {
	PartID   string `json:"part_id" binding:"required"`
	Quantity int    `json:"quantity"`
}

// addCartItem puts a part in the cart
func (h *Handler) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	session := currentSession(c)
	item, err := h.cart.AddItem(c.Request.Context(), session.UserID, req.PartID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// updateCartItem changes a cart row's quantity and returns the refreshed view
func (h *Handler) updateCartItem(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	session := currentSession(c)
	view, err := h.cart.UpdateQuantity(c.Request.Context(), session.UserID, c.Param("id"), req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// removeCartItem deletes a cart row
func (h *Handler) removeCartItem(c *gin.Context) {
	session := currentSession(c)

	view, err := h.cart.RemoveItem(c.Request.Context(), session.UserID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// checkoutSummary serves the checkout page's total
func (h *Handler) checkoutSummary(c *gin.Context) {
	session := currentSession(c)

	total, err := h.checkout.Summary(c.Request.Context(), session.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

type placeOrderRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// placeOrder creates the order from the current cart
func (h *Handler) placeOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	session := currentSession(c)
	order, err := h.checkout.PlaceOrder(c.Request.Context(), session.UserID, req.PaymentMethod)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// listNotifications serves the principal's notifications, newest first
func (h *Handler) listNotifications(c *gin.Context) {
	session := currentSession(c)

	notifications, err := h.notifications.List(c.Request.Context(), session.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// markNotificationRead sets the read flag; re-marking a read notification is
// a no-op
func (h *Handler) markNotificationRead(c *gin.Context) {
	session := currentSession(c)

	if err := h.notifications.MarkRead(c.Request.Context(), session.UserID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}
