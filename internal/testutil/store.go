// Package testutil holds in-memory implementations of the domain ports that
// mirror the postgres constraints, for use in package tests.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/google/uuid"
)

type SaleStore struct {
	mu      sync.Mutex
	sales   map[string]*domain.Sale
	batched map[string]bool // saleID|role

	// CreateHook runs before the uniqueness check, letting tests simulate a
	// concurrent insert of the same order.
	CreateHook func(sale *domain.Sale)
	CreateErr  error
}

func NewSaleStore() *SaleStore {
	return &SaleStore{sales: make(map[string]*domain.Sale), batched: make(map[string]bool)}
}

func (s *SaleStore) CreateSale(_ context.Context, sale *domain.Sale) error {
	if s.CreateHook != nil {
		s.CreateHook(sale)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CreateErr != nil {
		return s.CreateErr
	}
	for _, existing := range s.sales {
		if existing.OrderID == sale.OrderID {
			return domain.ErrSaleAlreadyExists
		}
	}
	if sale.ID == "" {
		sale.ID = uuid.NewString()
	}
	now := time.Now()
	sale.CreatedAt, sale.UpdatedAt = now, now
	cp := *sale
	s.sales[sale.ID] = &cp
	return nil
}

// Put stores a sale as-is, bypassing ingestion.
func (s *SaleStore) Put(sale *domain.Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sale.ID == "" {
		sale.ID = uuid.NewString()
	}
	cp := *sale
	s.sales[sale.ID] = &cp
}

func (s *SaleStore) GetSaleByID(_ context.Context, saleID string) (*domain.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sale, ok := s.sales[saleID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *sale
	return &cp, nil
}

func (s *SaleStore) GetSaleByOrderID(_ context.Context, orderID string) (*domain.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sale := range s.sales {
		if sale.OrderID == orderID {
			cp := *sale
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *SaleStore) FindUncalculatedSales(_ context.Context, limit int) ([]*domain.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Sale
	for _, sale := range s.sorted() {
		if sale.CommissionCalculated {
			continue
		}
		cp := *sale
		out = append(out, &cp)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *SaleStore) CountUncalculatedSales(_ context.Context, from, to time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, sale := range s.sales {
		if !sale.CommissionCalculated && inRange(sale.TransactionDate, from, to) {
			n++
		}
	}
	return n, nil
}

func (s *SaleStore) UpdateSaleCommission(_ context.Context, sale *domain.Sale) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.sales[sale.ID]
	if !ok || stored.CommissionCalculated {
		return false, nil
	}
	stored.CommissionCalculated = true
	stored.InfluencerPercentage = sale.InfluencerPercentage
	stored.ManagerPercentage = sale.ManagerPercentage
	stored.InfluencerCommissionEarned = sale.InfluencerCommissionEarned
	stored.ManagerCommissionEarned = sale.ManagerCommissionEarned
	stored.UpdatedAt = time.Now()
	return true, nil
}

func (s *SaleStore) FindUnbatchedSales(_ context.Context, role domain.Role, from, to time.Time) ([]*domain.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Sale
	for _, sale := range s.sorted() {
		if !sale.CommissionCalculated || !inRange(sale.TransactionDate, from, to) {
			continue
		}
		if role == domain.RoleManager && !sale.HasManager() {
			continue
		}
		if s.batched[batchKey(sale.ID, role)] {
			continue
		}
		cp := *sale
		out = append(out, &cp)
	}
	return out, nil
}

func (s *SaleStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sales)
}

func (s *SaleStore) sorted() []*domain.Sale {
	out := make([]*domain.Sale, 0, len(s.sales))
	for _, sale := range s.sales {
		out = append(out, sale)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TransactionDate.Equal(out[j].TransactionDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].TransactionDate.Before(out[j].TransactionDate)
	})
	return out
}

func (s *SaleStore) markBatched(saleIDs []string, role domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range saleIDs {
		if s.batched[batchKey(id, role)] {
			return domain.ErrSalesAlreadyBatched
		}
	}
	for _, id := range saleIDs {
		s.batched[batchKey(id, role)] = true
	}
	return nil
}

func (s *SaleStore) unmarkBatched(saleIDs []string, role domain.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range saleIDs {
		delete(s.batched, batchKey(id, role))
	}
}

func batchKey(saleID string, role domain.Role) string {
	return saleID + "|" + string(role)
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

type TierStore struct {
	mu    sync.Mutex
	tiers map[string]*domain.CommissionTier

	// ReplaceErr makes ReplaceTiers fail after staging, leaving state untouched.
	ReplaceErr error
}

func NewTierStore(tiers ...*domain.CommissionTier) *TierStore {
	s := &TierStore{tiers: make(map[string]*domain.CommissionTier)}
	for _, t := range tiers {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		cp := *t
		s.tiers[t.ID] = &cp
	}
	return s
}

func (s *TierStore) ListTiers(_ context.Context, role domain.Role, includeInactive bool) ([]*domain.CommissionTier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.CommissionTier
	for _, t := range s.tiers {
		if role != "" && t.AppliesTo != role {
			continue
		}
		if !includeInactive && !t.IsActive {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AppliesTo != out[j].AppliesTo {
			return out[i].AppliesTo < out[j].AppliesTo
		}
		return out[i].MinSalesValue.LessThan(out[j].MinSalesValue)
	})
	return out, nil
}

func (s *TierStore) GetTierByID(_ context.Context, tierID string) (*domain.CommissionTier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tiers[tierID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *TierStore) CreateTier(_ context.Context, tier *domain.CommissionTier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tier.ID == "" {
		tier.ID = uuid.NewString()
	}
	cp := *tier
	s.tiers[tier.ID] = &cp
	return nil
}

func (s *TierStore) UpdateTier(_ context.Context, tier *domain.CommissionTier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tiers[tier.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *tier
	s.tiers[tier.ID] = &cp
	return nil
}

func (s *TierStore) DeactivateTier(_ context.Context, tierID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tiers[tierID]
	if !ok {
		return domain.ErrNotFound
	}
	t.IsActive = false
	return nil
}

func (s *TierStore) ReplaceTiers(_ context.Context, role domain.Role, tiers []*domain.CommissionTier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := make(map[string]*domain.CommissionTier, len(s.tiers))
	for id, t := range s.tiers {
		if t.AppliesTo != role {
			staged[id] = t
		}
	}
	for _, t := range tiers {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		cp := *t
		staged[t.ID] = &cp
	}
	if s.ReplaceErr != nil {
		return s.ReplaceErr
	}
	s.tiers = staged
	return nil
}

type PaymentStore struct {
	mu       sync.Mutex
	payments map[string]*domain.CommissionPayment
	sales    *SaleStore

	CreateErr error
}

// NewPaymentStore records batch membership in sales so FindUnbatchedSales
// sees it, like the shared database does.
func NewPaymentStore(sales *SaleStore) *PaymentStore {
	return &PaymentStore{payments: make(map[string]*domain.CommissionPayment), sales: sales}
}

func (s *PaymentStore) CreatePayments(_ context.Context, payments []*domain.CommissionPayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateErr != nil {
		return s.CreateErr
	}

	var done []*domain.CommissionPayment
	for _, p := range payments {
		if err := s.sales.markBatched(p.SaleIDs, p.RoleAtPayment); err != nil {
			for _, prev := range done {
				s.sales.unmarkBatched(prev.SaleIDs, prev.RoleAtPayment)
			}
			return err
		}
		done = append(done, p)
	}
	for _, p := range payments {
		cp := *p
		cp.SaleIDs = append([]string(nil), p.SaleIDs...)
		s.payments[p.ID] = &cp
	}
	return nil
}

func (s *PaymentStore) GetPaymentByID(_ context.Context, paymentID string) (*domain.CommissionPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[paymentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *PaymentStore) ListPayments(_ context.Context, filter domain.PaymentFilter) ([]*domain.CommissionPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.CommissionPayment
	for _, p := range s.payments {
		if filter.UserID != "" && p.UserID != filter.UserID {
			continue
		}
		if filter.Role != "" && p.RoleAtPayment != filter.Role {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *PaymentStore) UpdatePaymentStatus(_ context.Context, payment *domain.CommissionPayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.payments[payment.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Status != domain.PaymentPending {
		return domain.ErrInvalidStatusTransition
	}
	stored.Status = payment.Status
	stored.PaymentDate = payment.PaymentDate
	stored.TransactionID = payment.TransactionID
	stored.UpdatedAt = payment.UpdatedAt
	return nil
}

type UserDirectory struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func NewUserDirectory(users ...*domain.User) *UserDirectory {
	d := &UserDirectory{users: make(map[string]*domain.User)}
	for _, u := range users {
		d.Put(u)
	}
	return d
}

func (d *UserDirectory) Put(u *domain.User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	cp := *u
	d.users[u.ID] = &cp
}

func (d *UserDirectory) FindUserByCoupon(_ context.Context, code string) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	code = strings.TrimSpace(code)
	for _, u := range d.users {
		if code != "" && strings.EqualFold(u.CouponCode, code) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (d *UserDirectory) FindUserByID(_ context.Context, id string) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}
