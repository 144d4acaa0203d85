package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdalla343/kushof/internal/services"
)

// PaymentHandler представляет обработчик оплаты премиум-доступа
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler создает новый обработчик оплаты
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// CheckoutRequest представляет запрос на создание платежной страницы
type CheckoutRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Checkout создает платежную страницу и возвращает URL для редиректа
func (h *PaymentHandler) Checkout(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	var req CheckoutRequest
	// Тело необязательно: пустой запрос означает параметры по умолчанию
	_ = c.ShouldBindJSON(&req)

	base := requestBaseURL(c)
	page, err := h.paymentService.Checkout(c.Request.Context(), user.ID, services.CheckoutInput{
		Amount:      req.Amount,
		Currency:    req.Currency,
		Name:        user.Name,
		Email:       user.Email,
		CallbackURL: base + "/api/payment/callback",
		ReturnURL:   base + "/api/payment/success",
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"redirect_url": page.RedirectURL,
		"tran_ref":     page.TranRef,
	})
}

// Callback обрабатывает колбэк платежного шлюза.
// Всегда отвечает 200, иначе шлюз будет повторять доставку.
func (h *PaymentHandler) Callback(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusOK, gin.H{"result": "OK", "message": "Payment failed or invalid data"})
		return
	}

	result := h.paymentService.HandleCallback(payload)
	if !result.Success {
		log.Printf("payment callback rejected: %s", result.Message)
	}

	c.JSON(http.StatusOK, gin.H{"result": "OK", "message": result.Message})
}

// Success отдает страницу подтверждения оплаты
func (h *PaymentHandler) Success(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(successPage))
}

// requestBaseURL восстанавливает внешний адрес сервера из запроса
func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, c.Request.Host)
}

const successPage = `<!DOCTYPE html>
<html>
<head>
  <title>Payment Successful</title>
</head>
<body>
  <h1>Payment Successful</h1>
  <p>Your premium subscription has been activated. You can close this page.</p>
</body>
</html>`
