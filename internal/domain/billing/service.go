package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rental-app-go/internal/domain/access"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ResolveRate returns the property's active per-unit rate for the utility
// type, or zero when the property has not configured one. The zero default is
// deliberate: bill creation must not block on a missing rate, at the cost of
// silently under-billing that line.
func (s *Service) ResolveRate(ctx context.Context, propertyID string, utilityType string) (decimal.Decimal, error) {
	rate, ok, err := s.repo.LatestRate(ctx, propertyID, utilityType, time.Now().UTC())
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !ok {
		return decimal.Decimal{}, nil
	}
	return rate, nil
}

func (s *Service) resolveRates(ctx context.Context, propertyID string) (Rates, error) {
	return s.ratesWithin(ctx, s.repo, propertyID)
}

// CreateBill computes line items from the booking's pricing chain and the
// property's current rates, then persists the bill as unpaid.
func (s *Service) CreateBill(ctx context.Context, scope access.Scope, input CreateBillInput) (*Bill, error) {
	pricing, err := s.repo.GetBookingPricing(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if !scope.AllowsProperty(pricing.PropertyID) {
		return nil, access.ErrForbidden
	}

	rates, err := s.resolveRates(ctx, pricing.PropertyID)
	if err != nil {
		return nil, err
	}

	lines := Compute(pricing.BillingCycle, pricing.PriceMonthly, pricing.PriceTerm, rates, input.Readings, input.IncludeRoomPrice)

	bill := Bill{
		ID:            uuid.NewString(),
		BookingID:     pricing.BookingID,
		BillingDate:   time.Now().UTC(),
		BillingCycle:  pricing.BillingCycle,
		RoomPrice:     lines.RoomPrice,
		WaterUnits:    lines.WaterUnits,
		ElectricUnits: lines.ElectricUnits,
		OtherCharges:  lines.OtherTotal,
		Note:          input.Note,
		TotalAmount:   lines.Total,
		Status:        StatusUnpaid,
	}
	if err := s.repo.Create(ctx, &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

// UpdateBill recomputes the bill against current pricing and rates. An edit
// always invalidates a prior payment claim: status resets to unpaid and
// paid_at clears, whatever state the bill was in.
func (s *Service) UpdateBill(ctx context.Context, scope access.Scope, input UpdateBillInput) (*Bill, error) {
	var updated *Bill
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		bill, err := tx.GetByID(ctx, input.BillID)
		if err != nil {
			return err
		}

		bookingID := input.BookingID
		if bookingID == "" {
			bookingID = bill.BookingID
		}
		pricing, err := tx.GetBookingPricing(ctx, bookingID)
		if err != nil {
			return err
		}
		if !scope.AllowsProperty(pricing.PropertyID) {
			return access.ErrForbidden
		}

		rates, err := s.ratesWithin(ctx, tx, pricing.PropertyID)
		if err != nil {
			return err
		}
		lines := Compute(pricing.BillingCycle, pricing.PriceMonthly, pricing.PriceTerm, rates, input.Readings, input.IncludeRoomPrice)

		bill.BookingID = pricing.BookingID
		bill.BillingCycle = pricing.BillingCycle
		bill.RoomPrice = lines.RoomPrice
		bill.WaterUnits = lines.WaterUnits
		bill.ElectricUnits = lines.ElectricUnits
		bill.OtherCharges = lines.OtherTotal
		bill.Note = input.Note
		bill.TotalAmount = lines.Total
		bill.Status = StatusUnpaid
		bill.PaidAt = nil
		bill.UpdatedAt = time.Now().UTC()

		if err := tx.Update(ctx, bill); err != nil {
			return err
		}
		updated = bill
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) ratesWithin(ctx context.Context, repo Repository, propertyID string) (Rates, error) {
	now := time.Now().UTC()
	water, ok, err := repo.LatestRate(ctx, propertyID, "water", now)
	if err != nil {
		return Rates{}, err
	}
	if !ok {
		water = decimal.Decimal{}
	}
	electric, ok, err := repo.LatestRate(ctx, propertyID, "electric", now)
	if err != nil {
		return Rates{}, err
	}
	if !ok {
		electric = decimal.Decimal{}
	}
	return Rates{Water: water, Electric: electric}, nil
}

// PayBill is the tenant's "I have paid" action: unpaid→pending, stamping
// paid_at. Confirmation is a separate owner/staff step.
func (s *Service) PayBill(ctx context.Context, tenantID, billID string) (*Bill, error) {
	owns, err := s.repo.BillBelongsToUser(ctx, billID, tenantID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, ErrBillNotFound
	}

	bill, err := s.repo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill.Status != StatusUnpaid {
		return nil, ErrInvalidTransition
	}

	now := time.Now().UTC()
	bill.Status = StatusPending
	bill.PaidAt = &now
	bill.UpdatedAt = now
	if err := s.repo.Update(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// ConfirmBill is the owner/staff confirmation: unpaid or pending → paid.
// The direct unpaid→paid jump covers manual (off-system) payment.
func (s *Service) ConfirmBill(ctx context.Context, scope access.Scope, billID string) (*Bill, error) {
	bill, err := s.repo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeManager(ctx, scope, bill); err != nil {
		return nil, err
	}
	if bill.Status == StatusPaid {
		return nil, ErrInvalidTransition
	}

	now := time.Now().UTC()
	bill.Status = StatusPaid
	if bill.PaidAt == nil {
		bill.PaidAt = &now
	}
	bill.UpdatedAt = now
	if err := s.repo.Update(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *Service) DeleteBill(ctx context.Context, scope access.Scope, billID string) error {
	bill, err := s.repo.GetByID(ctx, billID)
	if err != nil {
		return err
	}
	if err := s.authorizeManager(ctx, scope, bill); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, billID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBillNotFound
	}
	return nil
}

func (s *Service) GetBill(ctx context.Context, billID string) (*Bill, error) {
	return s.repo.GetByID(ctx, billID)
}

func (s *Service) GetBookingPricing(ctx context.Context, bookingID string) (*BookingPricing, error) {
	return s.repo.GetBookingPricing(ctx, bookingID)
}

// ListBillsByBooking returns the booking's bills. Managers must hold the
// booking's property in scope; a tenant only sees bookings of their own.
func (s *Service) ListBillsByBooking(ctx context.Context, scope access.Scope, bookingID string) ([]Bill, error) {
	pricing, err := s.repo.GetBookingPricing(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if scope.Manages() {
		if !scope.AllowsProperty(pricing.PropertyID) {
			return nil, access.ErrForbidden
		}
	} else if !scope.AllowsUser(pricing.TenantID) {
		return nil, access.ErrForbidden
	}
	return s.repo.ListByBooking(ctx, bookingID)
}

// ListRoomPrices is the owner/staff overview of priced rooms with their
// confirmed booking and latest bill.
func (s *Service) ListRoomPrices(ctx context.Context, scope access.Scope) ([]RoomPriceRow, error) {
	if !scope.Manages() {
		return nil, access.ErrForbidden
	}
	return s.repo.ListRoomPrices(ctx, scope)
}

// ListRent assembles the tenant rent view: every bill of every confirmed
// booking, with the property's current rates attached for display. Totals
// come straight off the persisted bills.
func (s *Service) ListRent(ctx context.Context, tenantID string) ([]RentItem, error) {
	bookings, err := s.repo.ListConfirmedBookingsByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	items := []RentItem{}
	for _, bk := range bookings {
		bills, err := s.repo.ListByBooking(ctx, bk.BookingID)
		if err != nil {
			return nil, err
		}
		if len(bills) == 0 {
			continue
		}

		rates, err := s.resolveRates(ctx, bk.PropertyID)
		if err != nil {
			return nil, err
		}

		for _, bill := range bills {
			items = append(items, RentItem{
				BookingID:       bk.BookingID,
				RoomName:        bk.RoomName,
				RoomCode:        bk.RoomCode,
				PropertyName:    bk.PropertyName,
				PropertyAddress: bk.PropertyAddress,
				BillingCycle:    bk.BillingCycle,
				Bill:            bill,
				WaterRate:       rates.Water,
				ElectricRate:    rates.Electric,
			})
		}
	}
	return items, nil
}

func (s *Service) authorizeManager(ctx context.Context, scope access.Scope, bill *Bill) error {
	if scope.Kind == access.Unrestricted {
		return nil
	}
	if scope.Kind != access.Properties {
		return access.ErrForbidden
	}
	pricing, err := s.repo.GetBookingPricing(ctx, bill.BookingID)
	if err != nil {
		return err
	}
	if !scope.AllowsProperty(pricing.PropertyID) {
		return access.ErrForbidden
	}
	return nil
}
