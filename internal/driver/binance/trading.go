package binance

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/exactkit/exact/pkg/domain"
	"github.com/exactkit/exact/pkg/errors"
)

// GetMarkets returns every symbol Binance spot lists, converted from
// exchangeInfo's filter list into domain.Market.
func (rc *RESTClient) GetMarkets(ctx context.Context) ([]domain.Market, error) {
	info, err := rc.GetExchangeInfo(ctx)
	if err != nil {
		return nil, err
	}
	markets := make([]domain.Market, 0, len(info.Symbols))
	for _, s := range info.Symbols {
		markets = append(markets, symbolInfoToMarket(s))
	}
	return markets, nil
}

func symbolInfoToMarket(s SymbolInfo) domain.Market {
	m := domain.Market{
		Exchange:       exchange,
		Symbol:         domain.Symbol{Base: s.BaseAsset, Quote: s.QuoteAsset},
		Status:         s.Status,
		BasePrecision:  s.BaseAssetPrecision,
		QuotePrecision: s.QuotePrecision,
	}
	for _, f := range s.Filters {
		kind, _ := f["filterType"].(string)
		switch kind {
		case "LOT_SIZE":
			if v, ok := f["minQty"].(string); ok {
				m.MinQuantity = domain.StringToDecimal(v)
			}
			if v, ok := f["maxQty"].(string); ok {
				m.MaxQuantity = domain.StringToDecimal(v)
			}
		case "PRICE_FILTER":
			if v, ok := f["minPrice"].(string); ok {
				m.MinPrice = domain.StringToDecimal(v)
			}
			if v, ok := f["maxPrice"].(string); ok {
				m.MaxPrice = domain.StringToDecimal(v)
			}
		}
	}
	return m
}

// wireKline mirrors a single element of GET /api/v3/klines' array-of-arrays
// response.
type wireKline [12]any

func (rc *RESTClient) GetKlines(ctx context.Context, symbol domain.Symbol, interval domain.KlineInterval, limit int, start, end int64) ([]domain.Kline, error) {
	q := url.Values{}
	q.Set("symbol", symbol.Base+symbol.Quote)
	q.Set("interval", binanceInterval(interval))
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if start > 0 {
		q.Set("startTime", strconv.FormatInt(start, 10))
	}
	if end > 0 {
		q.Set("endTime", strconv.FormatInt(end, 10))
	}

	var raw []wireKline
	resp, err := rc.client.R().SetContext(ctx).SetResult(&raw).Get("/api/v3/klines?" + q.Encode())
	if err != nil {
		return nil, errors.NewConnectionError(exchange, "/api/v3/klines", err.Error(), true)
	}
	if !resp.IsSuccess() {
		return nil, rc.handleErrorResponse(resp)
	}

	klines := make([]domain.Kline, 0, len(raw))
	for _, k := range raw {
		klines = append(klines, wireKlineToDomain(symbol, string(interval), k))
	}
	return klines, nil
}

func wireKlineToDomain(symbol domain.Symbol, interval string, k wireKline) domain.Kline {
	str := func(v any) string {
		s, _ := v.(string)
		return s
	}
	num := func(v any) int64 {
		f, _ := v.(float64)
		return int64(f)
	}
	openTime := num(k[0])
	closeTime := num(k[6])
	return domain.Kline{
		Exchange:       exchange,
		Symbol:         symbol.String(),
		Interval:       interval,
		OpenTime:       time.UnixMilli(openTime),
		CloseTime:      time.UnixMilli(closeTime),
		Open:           domain.StringToDecimal(str(k[1])),
		High:           domain.StringToDecimal(str(k[2])),
		Low:            domain.StringToDecimal(str(k[3])),
		Close:          domain.StringToDecimal(str(k[4])),
		Volume:         domain.StringToDecimal(str(k[5])),
		QuoteVolume:    domain.StringToDecimal(str(k[7])),
		TradeCount:     num(k[8]),
		TakerBuyVolume: domain.StringToDecimal(str(k[9])),
		TakerBuyQuoteVolume: domain.StringToDecimal(str(k[10])),
		IsClosed:            true,
	}
}

// orderTypeWire maps domain.OrderType to Binance's wire order type.
func orderTypeWire(t domain.OrderType) string {
	switch t {
	case domain.OrderTypeMarket:
		return "MARKET"
	case domain.OrderTypeStopLoss:
		return "STOP_LOSS"
	case domain.OrderTypeStopLossLimit:
		return "STOP_LOSS_LIMIT"
	case domain.OrderTypeTakeProfit:
		return "TAKE_PROFIT"
	case domain.OrderTypeTakeProfitLimit:
		return "TAKE_PROFIT_LIMIT"
	default:
		return "LIMIT"
	}
}

// PlaceOrder submits a new order.
// API: POST /api/v3/order (HMAC SHA256)
func (rc *RESTClient) PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	if rc.signer == nil {
		return nil, errors.NewAuthError(exchange, "", "authentication required")
	}

	q := url.Values{}
	q.Set("symbol", req.Symbol)
	q.Set("side", string(req.Side))
	q.Set("type", orderTypeWire(req.Type))
	if !domain.IsZero(req.Quantity) {
		q.Set("quantity", domain.String(req.Quantity))
	}
	if !domain.IsZero(req.Price) {
		q.Set("price", domain.String(req.Price))
	}
	if req.TimeInForce != "" {
		q.Set("timeInForce", req.TimeInForce)
	} else if req.Type == domain.OrderTypeLimit {
		q.Set("timeInForce", "GTC")
	}
	if req.ClientOrderID != "" {
		q.Set("newClientOrderId", req.ClientOrderID)
	}
	if !domain.IsZero(req.StopPrice) {
		q.Set("stopPrice", domain.String(req.StopPrice))
	}

	_, signature := rc.signer.Sign(q)
	q.Set("signature", signature)

	var result wireOrderResponse
	resp, err := rc.client.R().SetContext(ctx).SetResult(&result).Post("/api/v3/order?" + q.Encode())
	if err != nil {
		return nil, errors.NewConnectionError(exchange, "/api/v3/order", err.Error(), true)
	}
	if !resp.IsSuccess() {
		return nil, rc.handleErrorResponse(resp)
	}
	return result.ToDomain(), nil
}

// CancelOrder cancels an open order by exchange order ID.
// API: DELETE /api/v3/order (HMAC SHA256)
func (rc *RESTClient) CancelOrder(ctx context.Context, symbol domain.Symbol, orderID string) error {
	if rc.signer == nil {
		return errors.NewAuthError(exchange, "", "authentication required")
	}

	q := url.Values{}
	q.Set("symbol", symbol.Base+symbol.Quote)
	q.Set("orderId", orderID)

	_, signature := rc.signer.Sign(q)
	q.Set("signature", signature)

	resp, err := rc.client.R().SetContext(ctx).Delete("/api/v3/order?" + q.Encode())
	if err != nil {
		return errors.NewConnectionError(exchange, "/api/v3/order", err.Error(), true)
	}
	if !resp.IsSuccess() {
		return rc.handleErrorResponse(resp)
	}
	return nil
}

// GetAccountBalance returns non-zero spot balances.
func (rc *RESTClient) GetAccountBalance(ctx context.Context) ([]domain.Balance, error) {
	acct, err := rc.GetAccount(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Balance, 0, len(acct.Balances))
	for _, b := range acct.Balances {
		if (b.Free == nil || domain.IsZero(b.Free)) && (b.Locked == nil || domain.IsZero(b.Locked)) {
			continue
		}
		out = append(out, domain.Balance{
			Exchange:  exchange,
			Asset:     b.Asset,
			Free:      b.Free,
			Locked:    b.Locked,
			Timestamp: time.Now(),
		})
	}
	return out, nil
}

// wireOrderResponse mirrors Binance's new-order-ack response shape.
type wireOrderResponse struct {
	Symbol              string `json:"symbol"`
	OrderID             int64  `json:"orderId"`
	ClientOrderID       string `json:"clientOrderId"`
	TransactTime        int64  `json:"transactTime"`
	Price               string `json:"price"`
	OrigQty             string `json:"origQty"`
	ExecutedQty         string `json:"executedQty"`
	Status              string `json:"status"`
	Side                string `json:"side"`
	Type                string `json:"type"`
}

func (r *wireOrderResponse) ToDomain() *domain.Order {
	return &domain.Order{
		Exchange:       exchange,
		Symbol:         domain.NormalizeSymbol(r.Symbol),
		ID:             strconv.FormatInt(r.OrderID, 10),
		ClientOrderID:  r.ClientOrderID,
		Side:           domain.OrderSide(r.Side),
		Type:           domain.OrderType(r.Type),
		Status:         wireStatusToDomain(r.Status),
		Price:          domain.StringToDecimal(r.Price),
		Quantity:       domain.StringToDecimal(r.OrigQty),
		FilledQuantity: domain.StringToDecimal(r.ExecutedQty),
		CreatedAt:      time.UnixMilli(r.TransactTime),
		UpdatedAt:      time.UnixMilli(r.TransactTime),
	}
}

func wireStatusToDomain(s string) domain.OrderStatus {
	switch s {
	case "NEW":
		return domain.OrderStatusNew
	case "PARTIALLY_FILLED":
		return domain.OrderStatusPartiallyFilled
	case "FILLED":
		return domain.OrderStatusFilled
	case "CANCELED":
		return domain.OrderStatusCanceled
	case "PENDING_CANCEL":
		return domain.OrderStatusCanceling
	case "REJECTED":
		return domain.OrderStatusRejected
	case "EXPIRED":
		return domain.OrderStatusExpired
	default:
		return domain.OrderStatusNew
	}
}
