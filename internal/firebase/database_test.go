package firebase_test

import (
	"context"
	"testing"

	"investmenttracker/internal/model"
	"investmenttracker/internal/testutil"
)

func TestDatabase_StocksRoundTrip(t *testing.T) {
	fb := testutil.NewFakeFirebase(t)
	uid, token := fb.AddUser("user@example.com", "secret")
	store := fb.Database()
	ctx := context.Background()

	t.Run("empty subtree reads as empty map", func(t *testing.T) {
		positions, err := store.Stocks(ctx, uid, token)
		if err != nil {
			t.Fatalf("Stocks returned error: %v", err)
		}
		if positions == nil || len(positions) != 0 {
			t.Errorf("Expected an empty non-nil map, got %v", positions)
		}
	})

	position := model.StockPosition{
		Name:          "Reliance Industries Ltd.",
		Quantity:      10,
		PurchasePrice: 2400,
		Exchange:      model.ExchangeNSE,
		Symbol:        "RELIANCE.NS",
		CurrentPrice:  2500.75,
	}

	t.Run("write then read", func(t *testing.T) {
		if err := store.SetStock(ctx, uid, token, "RELIANCE", position); err != nil {
			t.Fatalf("SetStock returned error: %v", err)
		}
		positions, err := store.Stocks(ctx, uid, token)
		if err != nil {
			t.Fatalf("Stocks returned error: %v", err)
		}
		if got := positions["RELIANCE"]; got != position {
			t.Errorf("Expected %+v, got %+v", position, got)
		}
	})

	t.Run("delete removes the record", func(t *testing.T) {
		if err := store.DeleteStock(ctx, uid, token, "RELIANCE"); err != nil {
			t.Fatalf("DeleteStock returned error: %v", err)
		}
		positions, err := store.Stocks(ctx, uid, token)
		if err != nil {
			t.Fatalf("Stocks returned error: %v", err)
		}
		if len(positions) != 0 {
			t.Errorf("Expected no positions after delete, got %v", positions)
		}
	})

	t.Run("store rejects a bad auth token", func(t *testing.T) {
		if _, err := store.Stocks(ctx, uid, "bad-token"); err == nil {
			t.Error("Expected an error for an unauthorized read")
		}
		if err := store.SetStock(ctx, uid, "bad-token", "RELIANCE", position); err == nil {
			t.Error("Expected an error for an unauthorized write")
		}
	})
}

func TestDatabase_MutualFundsRoundTrip(t *testing.T) {
	fb := testutil.NewFakeFirebase(t)
	uid, token := fb.AddUser("user@example.com", "secret")
	store := fb.Database()
	ctx := context.Background()

	position := model.FundPosition{
		Name:        "Axis Bluechip Fund Direct Growth",
		Units:       100,
		PurchaseNAV: 40,
		CurrentNAV:  45.50,
		LastUpdated: "2026-08-28T10:00:00Z",
	}

	if err := store.SetMutualFund(ctx, uid, token, "120503", position); err != nil {
		t.Fatalf("SetMutualFund returned error: %v", err)
	}

	positions, err := store.MutualFunds(ctx, uid, token)
	if err != nil {
		t.Fatalf("MutualFunds returned error: %v", err)
	}
	if got := positions["120503"]; got != position {
		t.Errorf("Expected %+v, got %+v", position, got)
	}

	if err := store.DeleteMutualFund(ctx, uid, token, "120503"); err != nil {
		t.Fatalf("DeleteMutualFund returned error: %v", err)
	}
	positions, err = store.MutualFunds(ctx, uid, token)
	if err != nil {
		t.Fatalf("MutualFunds returned error: %v", err)
	}
	if len(positions) != 0 {
		t.Errorf("Expected no positions after delete, got %v", positions)
	}
}
