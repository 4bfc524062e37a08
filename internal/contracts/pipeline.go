package contracts

import "time"

// Pipeline Stage 정의 (SSOT)
// 모든 로그에서 이 상수를 사용해야 함
//
// 파이프라인 흐름:
//   S0 → S1 → S2 → S3 → S4
//   Fetch  Gate  Signals  Selection  Emit

// Stage represents a pipeline stage
type Stage string

const (
	// StageFetch S0: 가격 데이터 수집
	// 위치: internal/external/stooq/
	StageFetch Stage = "S0_FETCH"

	// StageGate S1: 히스토리 길이/유동성 필터
	// 위치: internal/universe/
	StageGate Stage = "S1_GATE"

	// StageSignals S2: 지표 계산 및 전략 평가
	// 위치: internal/indicator/, internal/strategy/
	StageSignals Stage = "S2_SIGNALS"

	// StageSelection S3: 랭킹 및 호라이즌별 상한 적용
	// 위치: internal/selection/
	StageSelection Stage = "S3_SELECTION"

	// StageEmit S4: 결과물 출력
	// 위치: internal/sink/
	StageEmit Stage = "S4_EMIT"
)

// String returns the stage name
func (s Stage) String() string {
	return string(s)
}

// ShortName returns abbreviated stage name (e.g., "S0", "S1")
func (s Stage) ShortName() string {
	switch s {
	case StageFetch:
		return "S0"
	case StageGate:
		return "S1"
	case StageSignals:
		return "S2"
	case StageSelection:
		return "S3"
	case StageEmit:
		return "S4"
	default:
		return "UNKNOWN"
	}
}

// AllStages returns all pipeline stages in order
func AllStages() []Stage {
	return []Stage{StageFetch, StageGate, StageSignals, StageSelection, StageEmit}
}

// Payload is the aggregate artifact of one run
type Payload struct {
	RunID       string        `json:"run_id"`
	GeneratedAt string        `json:"generated_at_utc"`
	ConfigHash  string        `json:"config_hash"`
	Watchlist   []string      `json:"watchlist"`
	MarketBias  MarketRegime  `json:"market_bias"`
	Ideas       []IdeaRecord  `json:"ideas"` // short-horizon first, then long
	Counts      PayloadCounts `json:"counts"`
	Disclaimer  string        `json:"disclaimer"`
}

// PayloadCounts summarises the idea list by horizon
type PayloadCounts struct {
	Short int `json:"short"`
	Long  int `json:"long"`
}

// TimestampFormat is the ISO-8601 UTC layout of GeneratedAt
const TimestampFormat = "2006-01-02T15:04:05Z"

// FormatTimestamp renders t in UTC using TimestampFormat
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}
