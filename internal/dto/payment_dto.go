package dto

type PaymentIntentRequest struct {
	// Amount in the currency's smallest unit (cents).
	Amount   int64  `json:"amount"   validate:"required,min=1"`
	Currency string `json:"currency" validate:"required,len=3"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
