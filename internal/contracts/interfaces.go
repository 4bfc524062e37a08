package contracts

import "context"

// PriceProvider fetches full price history for one instrument (S0)
// ⭐ SSOT: 가격 수집 인터페이스
type PriceProvider interface {
	Fetch(ctx context.Context, symbol, interval string) (*Series, error)
}

// Sink stores run artifacts (S4)
// ⭐ SSOT: 결과물 출력 인터페이스. 직렬화/저장 위치는 구현체 책임
type Sink interface {
	WriteOHLC(ctx context.Context, symbol string, points []OHLCPoint) error
	WritePayload(ctx context.Context, payload *Payload) error
}
