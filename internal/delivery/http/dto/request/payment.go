package request

// GeneratePaymentsRequest accepts RFC 3339 timestamps or plain dates.
type GeneratePaymentsRequest struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

type UpdatePaymentStatusRequest struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
}
