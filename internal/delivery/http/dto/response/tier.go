package response

type TierResponse struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	MinSalesValue        string  `json:"min_sales_value"`
	MaxSalesValue        *string `json:"max_sales_value"`
	CommissionPercentage string  `json:"commission_percentage"`
	AppliesTo            string  `json:"applies_to"`
	IsActive             bool    `json:"is_active"`
	CreatedAt            string  `json:"created_at"`
	UpdatedAt            string  `json:"updated_at"`
}

type ReplaceTiersResponse struct {
	Role         string         `json:"role"`
	TiersCreated int            `json:"tiers_created"`
	Tiers        []TierResponse `json:"tiers"`
}

type PreviewResponse struct {
	Role       string `json:"role"`
	SaleValue  string `json:"sale_value"`
	Percentage string `json:"percentage"`
	Commission string `json:"commission"`
	TierID     string `json:"tier_id,omitempty"`
	TierName   string `json:"tier_name,omitempty"`
}
