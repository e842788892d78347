// Package domain provides core domain types for the exchange connector.
package domain

// Price, Quantity, and Volume wrap the same underlying Decimal representation
// but are distinct types so a price can't be added to a quantity by accident.
// Each exposes the same arithmetic surface as the bare Decimal helpers.

// Price represents a price value in quote currency.
type Price struct{ V Decimal }

// NewPrice wraps a Decimal as a Price.
func NewPrice(d Decimal) Price { return Price{V: d} }

// Add returns the sum of two Prices.
func (p Price) Add(o Price) Price { return Price{V: Add(p.V, o.V)} }

// Sub returns the difference of two Prices.
func (p Price) Sub(o Price) Price { return Price{V: Sub(p.V, o.V)} }

// Cmp compares two Prices.
func (p Price) Cmp(o Price) int { return Cmp(p.V, o.V) }

// IsZero returns true if the Price is zero.
func (p Price) IsZero() bool { return IsZero(p.V) }

// String returns the string representation of the Price.
func (p Price) String() string { return String(p.V) }

// Quantity represents an amount of base currency.
type Quantity struct{ V Decimal }

// NewQuantity wraps a Decimal as a Quantity.
func NewQuantity(d Decimal) Quantity { return Quantity{V: d} }

// Add returns the sum of two Quantities.
func (q Quantity) Add(o Quantity) Quantity { return Quantity{V: Add(q.V, o.V)} }

// Sub returns the difference of two Quantities.
func (q Quantity) Sub(o Quantity) Quantity { return Quantity{V: Sub(q.V, o.V)} }

// Cmp compares two Quantities.
func (q Quantity) Cmp(o Quantity) int { return Cmp(q.V, o.V) }

// IsZero returns true if the Quantity is zero.
func (q Quantity) IsZero() bool { return IsZero(q.V) }

// String returns the string representation of the Quantity.
func (q Quantity) String() string { return String(q.V) }

// Volume represents a traded amount, typically in quote currency.
type Volume struct{ V Decimal }

// NewVolume wraps a Decimal as a Volume.
func NewVolume(d Decimal) Volume { return Volume{V: d} }

// Add returns the sum of two Volumes.
func (v Volume) Add(o Volume) Volume { return Volume{V: Add(v.V, o.V)} }

// Cmp compares two Volumes.
func (v Volume) Cmp(o Volume) int { return Cmp(v.V, o.V) }

// IsZero returns true if the Volume is zero.
func (v Volume) IsZero() bool { return IsZero(v.V) }

// String returns the string representation of the Volume.
func (v Volume) String() string { return String(v.V) }

// Mul returns the product of a Price and a Quantity as a Volume.
func (p Price) Mul(q Quantity) Volume { return Volume{V: Mul(p.V, q.V)} }
