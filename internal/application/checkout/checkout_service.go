package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	cartapp "github.com/shop/storefront/internal/application/cart"
	"github.com/shop/storefront/internal/domain/cart"
	"github.com/shop/storefront/internal/domain/checkout"
	"github.com/shop/storefront/internal/domain/order"
	"github.com/shop/storefront/internal/domain/shared"
)

// CheckoutService orchestrates the checkout flow: draft editing, totals
// recomputation on delivery changes, and the submission paths. Gateway
// submissions run in three phases: create the order server-side, capture
// the payment externally, then verify the capture against the server. The
// same payment reference flows through all three phases of a session so a
// retried submission can never double-create or double-charge.
type CheckoutService struct {
	drafts    checkout.DraftRepository
	carts     cart.Repository
	orders    order.Repository
	gateway   checkout.Gateway
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	drafts checkout.DraftRepository,
	carts cart.Repository,
	orders order.Repository,
	gateway checkout.Gateway,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		drafts:    drafts,
		carts:     carts,
		orders:    orders,
		gateway:   gateway,
		publisher: publisher,
		logger:    logger,
	}
}

// Draft returns the current checkout draft
func (s *CheckoutService) Draft(ctx context.Context) (*DraftView, error) {
	d, err := s.drafts.Load(ctx)
	if err != nil {
		return nil, err
	}
	view := ToDraftView(d)
	return &view, nil
}

// UpdateDraft patches the draft and persists it. Changing the state resets
// a city that does not belong to the new state.
func (s *CheckoutService) UpdateDraft(ctx context.Context, req UpdateDraftRequest) (*DraftView, error) {
	d, err := s.drafts.Load(ctx)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Email != nil {
		d.Email = *req.Email
	}
	if req.State != nil {
		d.SetState(*req.State)
	}
	if req.City != nil {
		d.City = *req.City
	}
	if req.Address != nil {
		d.Address = *req.Address
	}
	if req.Phone != nil {
		d.Phone = *req.Phone
	}
	if req.AdditionalInfo != nil {
		d.AdditionalInfo = *req.AdditionalInfo
	}

	if err := s.drafts.Save(ctx, d); err != nil {
		return nil, err
	}

	view := ToDraftView(d)
	return &view, nil
}

// SetDeliveryMethod switches the delivery method and returns the totals
// recomputed under it in the same call, so the client never renders a
// method change with a stale total.
func (s *CheckoutService) SetDeliveryMethod(ctx context.Context, method cart.DeliveryMethod) (*cartapp.TotalsView, error) {
	d, err := s.drafts.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.SetDeliveryMethod(method); err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
	}
	if err := s.drafts.Save(ctx, d); err != nil {
		return nil, err
	}

	c, err := s.carts.Load(ctx)
	if err != nil {
		return nil, err
	}
	totals := ToTotalsView(cart.ComputeTotals(c, method), method)
	return &totals, nil
}

// SetPaymentMethod switches the payment method
func (s *CheckoutService) SetPaymentMethod(ctx context.Context, method checkout.PaymentMethod) (*DraftView, error) {
	d, err := s.drafts.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.SetPaymentMethod(method); err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
	}
	if err := s.drafts.Save(ctx, d); err != nil {
		return nil, err
	}
	view := ToDraftView(d)
	return &view, nil
}

// Summary returns the review step: the cart priced under the draft's
// delivery method plus the draft itself
func (s *CheckoutService) Summary(ctx context.Context) (*SummaryView, error) {
	d, err := s.drafts.Load(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.carts.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &SummaryView{
		Cart:  cartapp.ToCartView(c, d.DeliveryMethod),
		Draft: ToDraftView(d),
	}, nil
}

// attempt tracks one submission through the checkout state machine and
// logs every transition it takes
type attempt struct {
	state  checkout.State
	logger *zap.Logger
}

func newAttempt(logger *zap.Logger) *attempt {
	return &attempt{state: checkout.StateDrafting, logger: logger}
}

func (a *attempt) advance(to checkout.State) {
	if !a.state.CanTransitionTo(to) {
		a.logger.Warn("illegal checkout state transition",
			zap.String("from", a.state.String()),
			zap.String("to", to.String()))
		return
	}
	a.logger.Debug("checkout state transition",
		zap.String("from", a.state.String()),
		zap.String("to", to.String()))
	a.state = to
}

// fail walks Submitting (or later) through Failed back to Drafting
func (a *attempt) fail() {
	a.advance(checkout.StateFailed)
	a.advance(checkout.StateDrafting)
}

// Submit runs the checkout. Validation failures and upstream create
// failures leave everything intact. For gateway payments, a dismissal or a
// capture transport failure returns the session to drafting with the order
// left pending server-side; only a verified capture finalizes the session.
func (s *CheckoutService) Submit(ctx context.Context) (*SubmitResult, error) {
	d, err := s.drafts.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	c, err := s.carts.Load(ctx)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot check out an empty cart")
	}

	totals := cart.ComputeTotals(c, d.DeliveryMethod)

	// The reference is minted once per session, for gateway payments only,
	// and persisted before any network call so a retried submission reuses
	// it end to end. Non-gateway orders are created without one.
	if d.PaymentMethod == checkout.PaymentGatewayCard && d.PaymentReference == "" {
		d.PaymentReference = "SF-" + uuid.NewString()
		if err := s.drafts.Save(ctx, d); err != nil {
			return nil, err
		}
	}

	att := newAttempt(s.logger)
	att.advance(checkout.StateSubmitting)

	req := buildCreateRequest(c, totals, d)

	created, err := s.orders.Create(ctx, req)
	if err != nil {
		att.fail()
		return nil, err
	}

	if d.PaymentMethod != checkout.PaymentGatewayCard {
		if err := s.finalize(ctx); err != nil {
			return nil, err
		}
		att.advance(checkout.StateCompleted)
		return &SubmitResult{
			State:       att.state,
			OrderID:     created.OrderID,
			OrderNumber: created.OrderNumber,
		}, nil
	}

	return s.captureAndVerify(ctx, att, d, totals, created)
}

// captureAndVerify runs phases two and three of a gateway submission
func (s *CheckoutService) captureAndVerify(ctx context.Context, att *attempt, d checkout.Draft, totals cart.Totals, created *order.CreateResult) (*SubmitResult, error) {
	capReq := checkout.CaptureRequest{
		Reference:   d.PaymentReference,
		AmountMinor: totals.TotalMoney().MinorUnits(),
		Currency:    "NGN",
		Email:       d.Email,
		Name:        d.Name,
		Metadata:    map[string]string{"order_id": created.OrderID},
	}
	if err := capReq.Validate(); err != nil {
		att.fail()
		return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
	}

	att.advance(checkout.StateAwaitingExternalPayment)

	captured, err := s.gateway.Capture(ctx, capReq)
	if err != nil {
		// A capture transport failure is indistinguishable from a dismissal
		// on this side; the order stays pending server-side and the session
		// returns to drafting with its reference intact.
		s.logger.Warn("payment capture failed, treating as dismissal",
			zap.String("reference", d.PaymentReference),
			zap.Error(err))
		return s.dismissed(att, d, created), nil
	}
	if captured.Status != checkout.CaptureSucceeded {
		return s.dismissed(att, d, created), nil
	}

	att.advance(checkout.StateVerifying)

	verified, err := s.orders.VerifyPayment(ctx, d.PaymentReference)
	if err != nil {
		att.advance(checkout.StateFailed)
		// The gateway reported success but the server did not confirm it.
		// Nothing local is cleared; the reference stays in the draft so the
		// session can be reconciled later.
		if errors.Is(err, shared.ErrPaymentReconciliation) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrPaymentReconciliation, err)
	}

	if err := s.finalize(ctx); err != nil {
		return nil, err
	}
	att.advance(checkout.StateCompleted)
	return &SubmitResult{
		State:            att.state,
		OrderID:          verified.OrderID,
		OrderNumber:      verified.OrderNumber,
		PaymentReference: d.PaymentReference,
	}, nil
}

func (s *CheckoutService) dismissed(att *attempt, d checkout.Draft, created *order.CreateResult) *SubmitResult {
	att.advance(checkout.StateDrafting)
	return &SubmitResult{
		State:            att.state,
		OrderID:          created.OrderID,
		OrderNumber:      created.OrderNumber,
		PaymentReference: d.PaymentReference,
		Dismissed:        true,
	}
}

// finalize clears the cart and the draft after a completed submission.
// The next checkout session starts fresh and mints a new reference.
func (s *CheckoutService) finalize(ctx context.Context) error {
	if err := s.carts.Clear(ctx); err != nil {
		return err
	}
	if err := s.publisher.Publish(ctx, cart.NewChangedEvent(cart.StorageKey, cart.Empty())); err != nil {
		s.logger.Warn("failed to publish cart.changed after checkout", zap.Error(err))
	}
	return s.drafts.Clear(ctx)
}

func buildCreateRequest(c cart.Cart, totals cart.Totals, d checkout.Draft) order.CreateRequest {
	items := make([]order.Item, 0, len(c.Items))
	for _, line := range c.Items {
		items = append(items, order.Item{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.EffectiveUnitPrice(),
			ImageRef:  line.ImageRef,
		})
	}
	// Only gateway orders carry a payment reference. The draft may hold a
	// stale one if the customer started a gateway attempt and then switched
	// methods; it must not leak into a bank-transfer or cash order.
	reference := ""
	if d.PaymentMethod == checkout.PaymentGatewayCard {
		reference = d.PaymentReference
	}
	return order.CreateRequest{
		Items:       items,
		Subtotal:    totals.Subtotal,
		Tax:         totals.Tax,
		DeliveryFee: totals.DeliveryFee,
		Total:       totals.Total,
		Shipping: order.ShippingInfo{
			Name:    d.Name,
			Address: d.Address,
			City:    d.City,
			State:   d.State,
			Phone:   d.Phone,
		},
		PaymentMethod:    d.PaymentMethod.String(),
		PaymentReference: reference,
	}
}
