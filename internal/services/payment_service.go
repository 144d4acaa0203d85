package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Abdalla343/kushof/internal/apperrors"
	"github.com/Abdalla343/kushof/internal/repository"
	"github.com/Abdalla343/kushof/pkg/paytabs"
)

// Префикс cart_id для связывания платежа с пользователем
const premiumCartPrefix = "premium-"

// Коды успешного платежа в колбэке PayTabs
var successStatuses = map[string]bool{
	"A":        true,
	"success":  true,
	"captured": true,
}

// PaymentPageCreator создает платежную страницу у шлюза
type PaymentPageCreator interface {
	CreatePaymentPage(ctx context.Context, req paytabs.PaymentRequest) (*paytabs.PaymentPage, error)
}

// PaymentService представляет сервис оплаты премиум-доступа
type PaymentService struct {
	gateway  PaymentPageCreator
	userRepo repository.UserRepository
}

// NewPaymentService создает новый сервис оплаты
func NewPaymentService(gateway PaymentPageCreator, userRepo repository.UserRepository) *PaymentService {
	return &PaymentService{
		gateway:  gateway,
		userRepo: userRepo,
	}
}

// CheckoutInput описывает параметры создания платежной страницы
type CheckoutInput struct {
	Amount      float64
	Currency    string
	Name        string
	Email       string
	ReturnURL   string
	CallbackURL string
}

// Checkout создает платежную страницу премиум-подписки для пользователя.
// Платеж привязывается к пользователю через cart_id вида premium-<userId>.
func (s *PaymentService) Checkout(ctx context.Context, userID uuid.UUID, in CheckoutInput) (*paytabs.PaymentPage, error) {
	amount := in.Amount
	if amount <= 0 {
		amount = 100
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if len(currency) != 3 {
		currency = "SAR"
	}

	req := paytabs.PaymentRequest{
		TranType:        "sale",
		TranClass:       "ecom",
		CartID:          premiumCartPrefix + userID.String(),
		CartCurrency:    currency,
		CartAmount:      amount,
		CartDescription: "Premium subscription upgrade",
		CallbackURL:     in.CallbackURL,
		ReturnURL:       in.ReturnURL,
	}

	if in.Name != "" || in.Email != "" {
		req.CustomerDetails = &paytabs.CustomerDetails{
			Name:  in.Name,
			Email: in.Email,
		}
	}

	page, err := s.gateway.CreatePaymentPage(ctx, req)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return page, nil
}

// CallbackResult представляет итог обработки колбэка шлюза
type CallbackResult struct {
	Success bool
	UserID  uuid.UUID
	Message string
}

// HandleCallback обрабатывает колбэк PayTabs и активирует премиум при успехе.
// Повторная доставка того же колбэка безопасна: флаг просто выставляется снова.
// Никогда не возвращает ошибку: любой сбой фиксируется как неуспех платежа,
// чтобы обработчик всегда подтверждал доставку шлюзу.
func (s *PaymentService) HandleCallback(payload map[string]interface{}) *CallbackResult {
	status := extractStatus(payload)
	cartID, _ := payload["cart_id"].(string)
	if cartID == "" {
		cartID, _ = payload["cartId"].(string)
	}

	if !successStatuses[status] || !strings.HasPrefix(cartID, premiumCartPrefix) {
		return &CallbackResult{Success: false, Message: "Payment failed or invalid data"}
	}

	userID, err := uuid.Parse(strings.TrimPrefix(cartID, premiumCartPrefix))
	if err != nil {
		return &CallbackResult{Success: false, Message: "Payment failed or invalid data"}
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return &CallbackResult{Success: false, Message: "Payment failed or invalid data"}
	}

	user.IsPrime = true
	if err := s.userRepo.Update(user); err != nil {
		// Шлюзу всегда отвечаем успехом доставки, сбой хранилища не исключение
		return &CallbackResult{Success: false, Message: "Payment failed or invalid data"}
	}

	return &CallbackResult{
		Success: true,
		UserID:  userID,
		Message: "Payment successful, premium activated",
	}
}

// extractStatus достает статус платежа из колбэка.
// Шлюз присылает payment_result строкой, объектом или массивом,
// поэтому разбор терпим к форме данных.
func extractStatus(payload map[string]interface{}) string {
	if result, ok := payload["payment_result"]; ok {
		switch v := result.(type) {
		case string:
			return v
		case map[string]interface{}:
			if st := stringOrFirst(v["response_status"]); st != "" {
				return st
			}
		case []interface{}:
			// Массив строк либо массив объектов
			if st := stringOrFirst(result); st != "" {
				return st
			}
			if len(v) > 0 {
				if m, ok := v[0].(map[string]interface{}); ok {
					if st := stringOrFirst(m["response_status"]); st != "" {
						return st
					}
				}
			}
		}
	}

	for _, key := range []string{"response_status", "respStatus", "status"} {
		if st := stringOrFirst(payload[key]); st != "" {
			return st
		}
	}

	return ""
}

// stringOrFirst возвращает строку как есть либо первый элемент массива строк
func stringOrFirst(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []interface{}:
		if len(val) > 0 {
			if s, ok := val[0].(string); ok {
				return s
			}
		}
	}
	return ""
}
