package response

type IngestSaleResponse struct {
	Status               string `json:"status"`
	SaleID               string `json:"sale_id,omitempty"`
	OrderID              string `json:"order_id"`
	Reason               string `json:"reason,omitempty"`
	InfluencerID         string `json:"influencer_id,omitempty"`
	ManagerID            string `json:"manager_id,omitempty"`
	SaleValue            string `json:"sale_value"`
	InfluencerPercentage string `json:"influencer_percentage,omitempty"`
	ManagerPercentage    string `json:"manager_percentage,omitempty"`
	InfluencerCommission string `json:"influencer_commission,omitempty"`
	ManagerCommission    string `json:"manager_commission,omitempty"`
}

type ProcessPendingResponse struct {
	ProcessedCount            int    `json:"processed_count"`
	TotalInfluencerCommission string `json:"total_influencer_commission"`
	TotalManagerCommission    string `json:"total_manager_commission"`
}
