package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const commissionServiceName = "commission.v1.CommissionService"

type PreviewCommissionRequest struct {
	Role      string `json:"role"`
	SaleValue string `json:"sale_value"`
}

type PreviewCommissionResponse struct {
	Percentage string `json:"percentage"`
	Commission string `json:"commission"`
	TierID     string `json:"tier_id,omitempty"`
	TierName   string `json:"tier_name,omitempty"`
}

type Tier struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	MinSalesValue        string `json:"min_sales_value"`
	MaxSalesValue        string `json:"max_sales_value,omitempty"`
	CommissionPercentage string `json:"commission_percentage"`
	AppliesTo            string `json:"applies_to"`
	IsActive             bool   `json:"is_active"`
}

type ListTiersRequest struct {
	Role            string `json:"role"`
	IncludeInactive bool   `json:"include_inactive"`
}

type ListTiersResponse struct {
	Tiers []Tier `json:"tiers"`
}

type ProcessPendingRequest struct{}

type ProcessPendingResponse struct {
	ProcessedCount            int32  `json:"processed_count"`
	TotalInfluencerCommission string `json:"total_influencer_commission"`
	TotalManagerCommission    string `json:"total_manager_commission"`
}

type Payment struct {
	ID                 string   `json:"id"`
	UserID             string   `json:"user_id"`
	RoleAtPayment      string   `json:"role_at_payment"`
	SaleIDs            []string `json:"sales"`
	TotalSalesValue    string   `json:"total_sales_value"`
	CommissionEarned   string   `json:"commission_earned"`
	PaymentPeriodStart string   `json:"payment_period_start"`
	PaymentPeriodEnd   string   `json:"payment_period_end"`
	Status             string   `json:"status"`
	TransactionID      string   `json:"transaction_id,omitempty"`
}

type GeneratePaymentsRequest struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

type GeneratePaymentsResponse struct {
	PaymentsCreated  int32     `json:"payments_created"`
	PendingProcessed int32     `json:"pending_processed"`
	Payments         []Payment `json:"payments"`
}

type GetPaymentRequest struct {
	PaymentID string `json:"payment_id"`
}

type UpdatePaymentStatusRequest struct {
	PaymentID     string `json:"payment_id"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
}

type PaymentResponse struct {
	Payment Payment `json:"payment"`
}

type CommissionServiceServer interface {
	PreviewCommission(context.Context, *PreviewCommissionRequest) (*PreviewCommissionResponse, error)
	ListTiers(context.Context, *ListTiersRequest) (*ListTiersResponse, error)
	ProcessPendingCommissions(context.Context, *ProcessPendingRequest) (*ProcessPendingResponse, error)
	GeneratePayments(context.Context, *GeneratePaymentsRequest) (*GeneratePaymentsResponse, error)
	GetPayment(context.Context, *GetPaymentRequest) (*PaymentResponse, error)
	UpdatePaymentStatus(context.Context, *UpdatePaymentStatusRequest) (*PaymentResponse, error)
}

type UnimplementedCommissionServiceServer struct{}

func (UnimplementedCommissionServiceServer) PreviewCommission(context.Context, *PreviewCommissionRequest) (*PreviewCommissionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PreviewCommission not implemented")
}
func (UnimplementedCommissionServiceServer) ListTiers(context.Context, *ListTiersRequest) (*ListTiersResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListTiers not implemented")
}
func (UnimplementedCommissionServiceServer) ProcessPendingCommissions(context.Context, *ProcessPendingRequest) (*ProcessPendingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ProcessPendingCommissions not implemented")
}
func (UnimplementedCommissionServiceServer) GeneratePayments(context.Context, *GeneratePaymentsRequest) (*GeneratePaymentsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GeneratePayments not implemented")
}
func (UnimplementedCommissionServiceServer) GetPayment(context.Context, *GetPaymentRequest) (*PaymentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPayment not implemented")
}
func (UnimplementedCommissionServiceServer) UpdatePaymentStatus(context.Context, *UpdatePaymentStatusRequest) (*PaymentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdatePaymentStatus not implemented")
}

func RegisterCommissionServiceServer(s grpc.ServiceRegistrar, srv CommissionServiceServer) {
	s.RegisterService(&commissionServiceDesc, srv)
}

// unary builds a method handler that decodes Req and calls fn.
func unary[Req any, Resp any](name string, fn func(CommissionServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + commissionServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			req := new(Req)
			if err := dec(req); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return fn(srv.(CommissionServiceServer), ctx, req)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			return interceptor(ctx, req, info, func(ctx context.Context, r any) (any, error) {
				return fn(srv.(CommissionServiceServer), ctx, r.(*Req))
			})
		},
	}
}

var commissionServiceDesc = grpc.ServiceDesc{
	ServiceName: commissionServiceName,
	HandlerType: (*CommissionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("PreviewCommission", CommissionServiceServer.PreviewCommission),
		unary("ListTiers", CommissionServiceServer.ListTiers),
		unary("ProcessPendingCommissions", CommissionServiceServer.ProcessPendingCommissions),
		unary("GeneratePayments", CommissionServiceServer.GeneratePayments),
		unary("GetPayment", CommissionServiceServer.GetPayment),
		unary("UpdatePaymentStatus", CommissionServiceServer.UpdatePaymentStatus),
	},
	Streams:  []grpc.StreamDesc{},
}
