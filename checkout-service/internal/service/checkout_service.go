package service

import (
	"context"
	"fmt"

	d "github.com/fjod/go_travel/checkout-service/domain"
	"github.com/fjod/go_travel/checkout-service/internal/customization"
	"github.com/fjod/go_travel/checkout-service/internal/wizard"
	"github.com/google/uuid"
)

func (s *CheckoutServiceImpl) ListPackages(ctx context.Context) ([]d.Package, error) {
	return s.catalog.ListPackages(ctx)
}

func (s *CheckoutServiceImpl) GetPackage(ctx context.Context, id int64) (d.Package, error) {
	return s.catalog.GetPackage(ctx, id)
}

// Start opens a new checkout session for a catalog package.
func (s *CheckoutServiceImpl) Start(ctx context.Context, req StartRequest) (wizard.View, error) {
	if req.PackageID == 0 {
		req.PackageID = DefaultPackageID
	}
	if req.Travelers == 0 {
		req.Travelers = DefaultTravelers
	}

	pkg, err := s.catalog.GetPackage(ctx, req.PackageID)
	if err != nil {
		return wizard.View{}, fmt.Errorf("package %d: %w", req.PackageID, err)
	}

	c, err := wizard.New(uuid.NewString(), pkg, req.Travelers, req.CheckIn, customization.DefaultOptions())
	if err != nil {
		return wizard.View{}, err
	}
	if err := s.store.Create(ctx, c); err != nil {
		return wizard.View{}, fmt.Errorf("failed to save checkout session: %w", err)
	}

	s.log.InfoContext(ctx, "checkout started",
		"session_id", c.ID(), "package_id", pkg.ID, "travelers", req.Travelers)
	return c.View(), nil
}

func (s *CheckoutServiceImpl) Get(ctx context.Context, id string) (wizard.View, error) {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return wizard.View{}, err
	}
	return c.View(), nil
}

func (s *CheckoutServiceImpl) Toggle(ctx context.Context, id, optionID string) (wizard.View, error) {
	return s.update(ctx, id, func(c *wizard.Checkout) error {
		return c.Toggle(optionID)
	})
}

func (s *CheckoutServiceImpl) ChangeQuantity(ctx context.Context, id, optionID string, delta int) (wizard.View, error) {
	return s.update(ctx, id, func(c *wizard.Checkout) error {
		return c.ChangeQuantity(optionID, delta)
	})
}

func (s *CheckoutServiceImpl) Continue(ctx context.Context, id string) (wizard.View, error) {
	view, err := s.update(ctx, id, func(c *wizard.Checkout) error {
		return c.Continue()
	})
	if err == nil {
		s.log.InfoContext(ctx, "checkout advanced", "session_id", id, "step", view.Step)
	}
	return view, err
}

func (s *CheckoutServiceImpl) Back(ctx context.Context, id string) (wizard.View, error) {
	return s.update(ctx, id, func(c *wizard.Checkout) error {
		return c.Back()
	})
}

func (s *CheckoutServiceImpl) UpdateTraveler(ctx context.Context, id string, index int, fields map[string]string) (wizard.View, error) {
	return s.update(ctx, id, func(c *wizard.Checkout) error {
		return c.UpdateTravelerFields(index, fields)
	})
}

// SubmitTravelers validates every traveler record and moves on to Payment.
// An invalid record is reported and the session is left untouched.
func (s *CheckoutServiceImpl) SubmitTravelers(ctx context.Context, id string) (wizard.View, error) {
	view, err := s.update(ctx, id, func(c *wizard.Checkout) error {
		return c.SubmitTravelers()
	})
	if err != nil {
		s.log.InfoContext(ctx, "traveler submission refused", "session_id", id, "error", err)
	}
	return view, err
}

// update applies fn to the stored session as one atomic step.
func (s *CheckoutServiceImpl) update(ctx context.Context, id string, fn func(*wizard.Checkout) error) (wizard.View, error) {
	c, err := s.store.Update(ctx, id, fn)
	if err != nil {
		return wizard.View{}, err
	}
	return c.View(), nil
}
