package notifier

type gatewayRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}
