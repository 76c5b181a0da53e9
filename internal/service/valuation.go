package service

// Value returns the current worth of a holding: price times quantity
// (or units for funds).
func Value(currentPrice, quantity float64) float64 {
	return currentPrice * quantity
}

// GainLossPct returns the percentage gain or loss against the purchase
// price. A non-positive purchase price yields 0 rather than a division
// fault.
func GainLossPct(currentPrice, purchasePrice float64) float64 {
	if purchasePrice <= 0 {
		return 0
	}
	return (currentPrice - purchasePrice) / purchasePrice * 100
}
