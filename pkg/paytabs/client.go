package paytabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Endpoints PayTabs по регионам
var regionEndpoints = map[string]string{
	"ARE":    "https://secure.paytabs.com",
	"SAU":    "https://secure.paytabs.sa",
	"OMN":    "https://secure-oman.paytabs.com",
	"JOR":    "https://secure-jordan.paytabs.com",
	"EGY":    "https://secure-egypt.paytabs.com",
	"GLOBAL": "https://secure-global.paytabs.com",
}

// Client представляет клиент платежного шлюза PayTabs
type Client struct {
	profileID  int64
	serverKey  string
	baseURL    string
	httpClient *http.Client
}

// NewClient создает новый клиент PayTabs для указанного региона
func NewClient(profileID int64, serverKey, region string) *Client {
	baseURL, ok := regionEndpoints[strings.ToUpper(region)]
	if !ok {
		baseURL = regionEndpoints["GLOBAL"]
	}
	return &Client{
		profileID: profileID,
		serverKey: serverKey,
		baseURL:   baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CustomerDetails описывает покупателя для платежной страницы
type CustomerDetails struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Street1 string `json:"street1,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	Zip     string `json:"zip,omitempty"`
	IP      string `json:"ip,omitempty"`
}

// PaymentRequest описывает запрос на создание платежной страницы
type PaymentRequest struct {
	TranType        string           `json:"tran_type"`
	TranClass       string           `json:"tran_class"`
	CartID          string           `json:"cart_id"`
	CartCurrency    string           `json:"cart_currency"`
	CartAmount      float64          `json:"cart_amount"`
	CartDescription string           `json:"cart_description"`
	PaymentMethods  []string         `json:"payment_methods,omitempty"`
	CustomerDetails *CustomerDetails `json:"customer_details,omitempty"`
	ShippingDetails *CustomerDetails `json:"shipping_details,omitempty"`
	CallbackURL     string           `json:"callback"`
	ReturnURL       string           `json:"return"`
}

// PaymentPage представляет созданную платежную страницу
type PaymentPage struct {
	TranRef     string `json:"tran_ref"`
	RedirectURL string `json:"redirect_url"`
}

// apiResponse объединяет поля успешного ответа и ответа с ошибкой
type apiResponse struct {
	PaymentPage
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// CreatePaymentPage создает платежную страницу и возвращает URL для редиректа
func (c *Client) CreatePaymentPage(ctx context.Context, req PaymentRequest) (*PaymentPage, error) {
	payload := struct {
		ProfileID int64 `json:"profile_id"`
		PaymentRequest
	}{
		ProfileID:      c.profileID,
		PaymentRequest: req,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payment request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payment/request", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build payment request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", c.serverKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("paytabs request failed: %w", err)
	}
	defer resp.Body.Close()

	var result apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode paytabs response: %w", err)
	}

	if result.Code != 0 || (resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated) {
		return nil, fmt.Errorf("paytabs payment error: %s (code %d)", result.Message, result.Code)
	}

	if result.RedirectURL == "" {
		return nil, fmt.Errorf("paytabs returned no redirect url")
	}

	return &result.PaymentPage, nil
}
