// Package domain provides core domain types for the exchange connector.
package domain

import "time"

// FundingRate describes a perpetual contract's funding payment state.
// Every predictive field is optional because venues expose incomparable
// subsets of this information; a nil field means the venue did not report it.
type FundingRate struct {
	Exchange string `json:"exchange"`
	Symbol   Symbol `json:"symbol"`

	FundingRate         Decimal `json:"funding_rate,omitempty"`
	PreviousFundingRate Decimal `json:"previous_funding_rate,omitempty"`
	NextFundingRate     Decimal `json:"next_funding_rate,omitempty"`

	FundingTime     *time.Time `json:"funding_time,omitempty"`
	NextFundingTime *time.Time `json:"next_funding_time,omitempty"`

	MarkPrice  Decimal `json:"mark_price,omitempty"`
	IndexPrice Decimal `json:"index_price,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// PositionSide indicates the directional exposure of a perpetual position.
type PositionSide string

const (
	PositionSideLong  PositionSide = "LONG"
	PositionSideShort PositionSide = "SHORT"
	PositionSideFlat  PositionSide = "FLAT"
)

// Position describes an open perpetual futures position.
type Position struct {
	Exchange string       `json:"exchange"`
	Symbol   Symbol       `json:"symbol"`
	Side     PositionSide `json:"side"`

	Size             Decimal `json:"size"`
	EntryPrice       Decimal `json:"entry_price"`
	MarkPrice        Decimal `json:"mark_price"`
	UnrealizedPnL    Decimal `json:"unrealized_pnl"`
	Leverage         Decimal `json:"leverage,omitempty"`
	LiquidationPrice Decimal `json:"liquidation_price,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// IsFlat reports whether the position carries no exposure.
func (p *Position) IsFlat() bool {
	return p.Side == PositionSideFlat || IsZero(p.Size)
}
