package dto

// RegisterRequest is the request body for identity registration.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Password  string `json:"password" binding:"required,min=8,max=128" sanitize:"-"`
	FirstName string `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string `json:"last_name" binding:"required,min=1,max=100"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required" sanitize:"-"`
}

// RegisterResponse is the response body for successful registration.
type RegisterResponse struct {
	IdentityID int64  `json:"identity_id"`
	Email      string `json:"email"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// TopupRequest is the request body for a balance top-up.
type TopupRequest struct {
	Amount int64 `json:"top_up_amount" binding:"required,gt=0"`
}

// TransactionRequest is the request body for a service payment.
type TransactionRequest struct {
	ServiceCode string `json:"service_code" binding:"required,service_code"`
}

// BalanceResponse is the response for balance queries and top-ups.
type BalanceResponse struct {
	Balance int64 `json:"balance"`
}

// ServiceResponse is one catalog item.
type ServiceResponse struct {
	ServiceCode   string `json:"service_code"`
	ServiceName   string `json:"service_name"`
	ServiceTariff int64  `json:"service_tariff"`
}

// TransactionResponse is the response body for a completed payment.
type TransactionResponse struct {
	InvoiceNumber   string `json:"invoice_number"`
	ServiceCode     string `json:"service_code"`
	ServiceName     string `json:"service_name"`
	TransactionType string `json:"transaction_type"`
	TotalAmount     int64  `json:"total_amount"`
	CreatedOn       string `json:"created_on"`
}

// HistoryQuery binds the pagination parameters of the history endpoint.
// Pointers distinguish an absent limit from an explicit zero.
type HistoryQuery struct {
	Offset *int `form:"offset"`
	Limit  *int `form:"limit"`
}

// HistoryRecord is one ledger entry as shown in history.
type HistoryRecord struct {
	InvoiceNumber   string  `json:"invoice_number"`
	ServiceCode     *string `json:"service_code,omitempty"`
	TransactionType string  `json:"transaction_type"`
	Description     string  `json:"description"`
	TotalAmount     int64   `json:"total_amount"`
	CreatedOn       string  `json:"created_on"`
}

// HistoryResponse wraps one page of history.
type HistoryResponse struct {
	Offset  int             `json:"offset"`
	Limit   int             `json:"limit"`
	Records []HistoryRecord `json:"records"`
}

// SummaryResponse is the response for the ledger summary endpoint.
type SummaryResponse struct {
	Entries      int64 `json:"entries"`
	TotalTopup   int64 `json:"total_topup"`
	TotalPayment int64 `json:"total_payment"`
	Net          int64 `json:"net"`
}
