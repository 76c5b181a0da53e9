package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"investmenttracker/internal/apperrors"
	"investmenttracker/internal/firebase"
	"investmenttracker/internal/mfapi"
	"investmenttracker/internal/model"
)

// FundService handles mutual fund holdings. NAVs come from the NAV
// collaborator on every listing; a failed lookup falls back to the
// stored values for that scheme rather than failing the listing.
type FundService struct {
	auth  firebase.Auth
	store firebase.Store
	navs  mfapi.Client
}

// NewFundService creates a new FundService with the provided dependencies.
func NewFundService(auth firebase.Auth, store firebase.Store, navs mfapi.Client) *FundService {
	return &FundService{
		auth:  auth,
		store: store,
		navs:  navs,
	}
}

// AddFundInput carries the fields of an add-fund request.
type AddFundInput struct {
	SchemeCode  string
	Units       float64
	PurchaseNAV float64
}

// ListFunds returns the user's fund holdings with the latest NAVs and
// valuations.
func (s *FundService) ListFunds(ctx context.Context, token string) ([]model.FundHolding, error) {
	uid, err := s.auth.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	positions, err := s.store.MutualFunds(ctx, uid, token)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(positions))
	for code := range positions {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	holdings := make([]model.FundHolding, 0, len(positions))
	for _, code := range codes {
		holdings = append(holdings, s.fundHolding(ctx, code, positions[code]))
	}
	return holdings, nil
}

// fundHolding refreshes one scheme's NAV, degrading to stored values on
// lookup failure.
func (s *FundService) fundHolding(ctx context.Context, code string, position model.FundPosition) model.FundHolding {
	name := position.Name
	nav := position.CurrentNAV

	scheme, err := s.navs.Scheme(ctx, code)
	if err != nil {
		log.Printf("NAV lookup failed for scheme %s: %v", code, err)
	} else {
		name = scheme.Name
		nav = scheme.LatestNAV
	}
	if name == "" {
		name = fmt.Sprintf("Fund %s", code)
	}

	return model.FundHolding{
		SchemeCode:  code,
		Name:        name,
		Units:       position.Units,
		PurchaseNAV: position.PurchaseNAV,
		CurrentNAV:  nav,
		Value:       Value(nav, position.Units),
		GainLossPct: GainLossPct(nav, position.PurchaseNAV),
	}
}

// AddFund verifies the scheme code against the NAV collaborator and
// stores the position under it.
func (s *FundService) AddFund(ctx context.Context, token string, input AddFundInput) (model.FundHolding, error) {
	uid, err := s.auth.Verify(ctx, token)
	if err != nil {
		return model.FundHolding{}, err
	}
	if input.SchemeCode == "" {
		return model.FundHolding{}, apperrors.ErrMissingSchemeCode
	}
	if input.Units <= 0 {
		return model.FundHolding{}, apperrors.ErrInvalidQuantity
	}

	scheme, err := s.navs.Scheme(ctx, input.SchemeCode)
	if err != nil {
		return model.FundHolding{}, err
	}

	position := model.FundPosition{
		Name:        scheme.Name,
		Units:       input.Units,
		PurchaseNAV: input.PurchaseNAV,
		CurrentNAV:  scheme.LatestNAV,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.store.SetMutualFund(ctx, uid, token, input.SchemeCode, position); err != nil {
		return model.FundHolding{}, err
	}

	return model.FundHolding{
		SchemeCode:  input.SchemeCode,
		Name:        scheme.Name,
		Units:       input.Units,
		PurchaseNAV: input.PurchaseNAV,
		CurrentNAV:  scheme.LatestNAV,
		Value:       Value(scheme.LatestNAV, input.Units),
		GainLossPct: GainLossPct(scheme.LatestNAV, input.PurchaseNAV),
	}, nil
}

// DeleteFund removes a holding by scheme code.
func (s *FundService) DeleteFund(ctx context.Context, token, schemeCode string) error {
	uid, err := s.auth.Verify(ctx, token)
	if err != nil {
		return err
	}
	if schemeCode == "" {
		return apperrors.ErrMissingSchemeCode
	}
	return s.store.DeleteMutualFund(ctx, uid, token, schemeCode)
}
