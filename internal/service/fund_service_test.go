package service_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"investmenttracker/internal/apperrors"
	"investmenttracker/internal/mfapi"
	"investmenttracker/internal/model"
	"investmenttracker/internal/service"
	"investmenttracker/internal/testutil"
)

func TestFundService_ListFunds(t *testing.T) {
	fb := testutil.NewFakeFirebase(t)
	uid, token := fb.AddUser("user@example.com", "secret")

	fb.SeedFund(uid, "120503", model.FundPosition{Name: "Axis Bluechip", Units: 100, PurchaseNAV: 40, CurrentNAV: 42})
	fb.SeedFund(uid, "118989", model.FundPosition{Name: "HDFC Index", Units: 50, PurchaseNAV: 150, CurrentNAV: 155})

	navs := &testutil.StubNAVClient{Schemes: map[string]mfapi.Scheme{
		"120503": {Code: "120503", Name: "Axis Bluechip Fund Direct Growth", LatestNAV: 45.50},
	}}

	svc := service.NewFundService(fb.AuthClient(), fb.Database(), navs)

	holdings, err := svc.ListFunds(context.Background(), token)
	if err != nil {
		t.Fatalf("ListFunds returned error: %v", err)
	}
	if len(holdings) != 2 {
		t.Fatalf("Expected 2 holdings, got %d", len(holdings))
	}

	t.Run("NAV lookup failure degrades to stored values", func(t *testing.T) {
		// Scheme-code order: 118989 first, unknown to the NAV stub.
		h := holdings[0]
		if h.SchemeCode != "118989" {
			t.Fatalf("Expected scheme 118989 first, got %s", h.SchemeCode)
		}
		if h.Name != "HDFC Index" {
			t.Errorf("Expected the stored name, got %q", h.Name)
		}
		if h.CurrentNAV != 155 {
			t.Errorf("Expected the stored NAV 155, got %v", h.CurrentNAV)
		}
	})

	t.Run("successful lookup refreshes name and NAV", func(t *testing.T) {
		h := holdings[1]
		if h.SchemeCode != "120503" {
			t.Fatalf("Expected scheme 120503 second, got %s", h.SchemeCode)
		}
		if h.Name != "Axis Bluechip Fund Direct Growth" {
			t.Errorf("Expected the refreshed name, got %q", h.Name)
		}
		if h.CurrentNAV != 45.50 {
			t.Errorf("Expected NAV 45.50, got %v", h.CurrentNAV)
		}
		if h.Value != 4550 {
			t.Errorf("Expected value 4550, got %v", h.Value)
		}
		if math.Abs(h.GainLossPct-13.75) > 1e-9 {
			t.Errorf("Expected 13.75%% gain, got %v", h.GainLossPct)
		}
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		if _, err := svc.ListFunds(context.Background(), "bogus"); !errors.Is(err, apperrors.ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestFundService_AddFund(t *testing.T) {
	fb := testutil.NewFakeFirebase(t)
	_, token := fb.AddUser("user@example.com", "secret")

	navs := &testutil.StubNAVClient{Schemes: map[string]mfapi.Scheme{
		"120503": {Code: "120503", Name: "Axis Bluechip Fund Direct Growth", LatestNAV: 45.50},
	}}
	svc := service.NewFundService(fb.AuthClient(), fb.Database(), navs)

	t.Run("verified scheme is stored with the latest NAV", func(t *testing.T) {
		holding, err := svc.AddFund(context.Background(), token, service.AddFundInput{
			SchemeCode:  "120503",
			Units:       100,
			PurchaseNAV: 40,
		})
		if err != nil {
			t.Fatalf("AddFund returned error: %v", err)
		}
		if holding.Name != "Axis Bluechip Fund Direct Growth" {
			t.Errorf("Expected the scheme name, got %q", holding.Name)
		}
		if holding.CurrentNAV != 45.50 {
			t.Errorf("Expected NAV 45.50, got %v", holding.CurrentNAV)
		}
	})

	t.Run("unknown scheme is rejected", func(t *testing.T) {
		_, err := svc.AddFund(context.Background(), token, service.AddFundInput{
			SchemeCode:  "999999",
			Units:       10,
			PurchaseNAV: 1,
		})
		if !errors.Is(err, apperrors.ErrSchemeNotFound) {
			t.Errorf("Expected ErrSchemeNotFound, got %v", err)
		}
	})

	t.Run("missing scheme code is rejected", func(t *testing.T) {
		_, err := svc.AddFund(context.Background(), token, service.AddFundInput{Units: 10})
		if !errors.Is(err, apperrors.ErrMissingSchemeCode) {
			t.Errorf("Expected ErrMissingSchemeCode, got %v", err)
		}
	})

	t.Run("non-positive units are rejected", func(t *testing.T) {
		_, err := svc.AddFund(context.Background(), token, service.AddFundInput{SchemeCode: "120503", Units: 0})
		if !errors.Is(err, apperrors.ErrInvalidQuantity) {
			t.Errorf("Expected ErrInvalidQuantity, got %v", err)
		}
	})
}

func TestFundService_DeleteFund(t *testing.T) {
	fb := testutil.NewFakeFirebase(t)
	uid, token := fb.AddUser("user@example.com", "secret")
	fb.SeedFund(uid, "120503", model.FundPosition{Name: "Axis Bluechip", Units: 100})

	svc := service.NewFundService(fb.AuthClient(), fb.Database(), &testutil.StubNAVClient{})

	if err := svc.DeleteFund(context.Background(), token, "120503"); err != nil {
		t.Fatalf("DeleteFund returned error: %v", err)
	}
	if err := svc.DeleteFund(context.Background(), token, ""); !errors.Is(err, apperrors.ErrMissingSchemeCode) {
		t.Errorf("Expected ErrMissingSchemeCode, got %v", err)
	}
}
