package response

type PaymentResponse struct {
	ID                 string   `json:"id"`
	UserID             string   `json:"user_id"`
	RoleAtPayment      string   `json:"role_at_payment"`
	SaleIDs            []string `json:"sales"`
	SalesCount         int      `json:"sales_count"`
	TotalSalesValue    string   `json:"total_sales_value"`
	CommissionEarned   string   `json:"commission_earned"`
	PaymentPeriodStart string   `json:"payment_period_start"`
	PaymentPeriodEnd   string   `json:"payment_period_end"`
	CalculationDate    string   `json:"calculation_date"`
	Status             string   `json:"status"`
	PaymentDate        *string  `json:"payment_date,omitempty"`
	TransactionID      string   `json:"transaction_id,omitempty"`
}

type RoleTotalsResponse struct {
	Payments         int    `json:"payments"`
	TotalSalesValue  string `json:"total_sales_value"`
	CommissionEarned string `json:"commission_earned"`
}

type GeneratePaymentsResponse struct {
	PaymentsCreated  int                           `json:"payments_created"`
	PendingProcessed int                           `json:"pending_processed"`
	TotalsByRole     map[string]RoleTotalsResponse `json:"totals_by_role"`
	Payments         []PaymentResponse             `json:"payments"`
}
