package strategyconfig

import "github.com/creasty/defaults"

// Config는 아이디어 생성 엔진의 전체 설정
// ⭐ SSOT: 실행 중 변경하지 않음. 모든 컴포넌트에 생성 시 전달
type Config struct {
	Meta      Meta      `yaml:"meta" json:"meta"`
	Universe  Universe  `yaml:"universe" json:"universe"`
	History   History   `yaml:"history" json:"history"`
	Liquidity Liquidity `yaml:"liquidity" json:"liquidity"`
	ShortTerm ShortTerm `yaml:"short_term" json:"short_term"`
	LongTerm  LongTerm  `yaml:"long_term" json:"long_term"`
	Regime    Regime    `yaml:"regime" json:"regime"`
	Output    Output    `yaml:"output" json:"output"`
}

// Meta 메타 정보
type Meta struct {
	StrategyID string `yaml:"strategy_id" json:"strategy_id" default:"daily_ideas_v1" validate:"required"`
	Version    string `yaml:"version" json:"version" default:"1.0" validate:"required"`
}

// Universe S0: 수집 대상
type Universe struct {
	Benchmark string   `yaml:"benchmark" json:"benchmark" default:"spy.us" validate:"required"`
	Watchlist []string `yaml:"watchlist" json:"watchlist" validate:"min=1,dive,required"`
	Interval  string   `yaml:"interval" json:"interval" default:"d" validate:"oneof=d"`
}

// SetDefaults fills the watchlist when none is configured
func (u *Universe) SetDefaults() {
	if defaults.CanUpdate(u.Watchlist) {
		u.Watchlist = DefaultWatchlist()
	}
}

// DefaultWatchlist returns the broad ETFs, sector ETFs and mega caps scanned by default
func DefaultWatchlist() []string {
	return []string{
		"spy.us", "qqq.us", "iwm.us",
		"xlk.us", "xlf.us", "xle.us", "xlv.us", "xly.us", "xlb.us", "xli.us", "xlp.us", "xlu.us", "xlc.us",
		"aapl.us", "msft.us", "nvda.us", "amzn.us", "goog.us", "meta.us", "tsla.us", "amd.us", "avgo.us",
	}
}

// History S1: 히스토리 길이
type History struct {
	MinBars  int `yaml:"min_bars" json:"min_bars" default:"210" validate:"gte=1"`
	OHLCBars int `yaml:"ohlc_bars" json:"ohlc_bars" default:"200" validate:"gte=1"`
}

// Liquidity S1: 유동성 필터
type Liquidity struct {
	MinPrice        float64 `yaml:"min_price" json:"min_price" default:"5" validate:"gte=0"`
	MinDollarVolume float64 `yaml:"min_dollar_volume" json:"min_dollar_volume" default:"10000000" validate:"gte=0"`
	Window          int     `yaml:"window" json:"window" default:"20" validate:"gte=1"`
}

// ShortTerm S2: 일봉 전략 상수
type ShortTerm struct {
	RiskMult        float64 `yaml:"risk_mult" json:"risk_mult" default:"1.0" validate:"gt=0"`
	RewardMult      float64 `yaml:"reward_mult" json:"reward_mult" default:"1.8" validate:"gt=0"`
	BreakoutOffset  float64 `yaml:"breakout_offset" json:"breakout_offset" default:"0.05" validate:"gte=0"`
	UptrendRSIMin   float64 `yaml:"uptrend_rsi_min" json:"uptrend_rsi_min" default:"50" validate:"gte=0,lte=100"`
	DowntrendRSIMax float64 `yaml:"downtrend_rsi_max" json:"downtrend_rsi_max" default:"50" validate:"gte=0,lte=100"`
	MRRSI2Max       float64 `yaml:"mr_rsi2_max" json:"mr_rsi2_max" default:"10" validate:"gte=0,lte=100"`
	MRRSI2Min       float64 `yaml:"mr_rsi2_min" json:"mr_rsi2_min" default:"90" validate:"gte=0,lte=100"`
	QualityWeight   float64 `yaml:"quality_weight" json:"quality_weight" default:"0.5" validate:"gte=0"`
}

// LongTerm S2: 주봉 전략 상수
type LongTerm struct {
	MinWeeks        int     `yaml:"min_weeks" json:"min_weeks" default:"60" validate:"gte=40"`
	RSIMin          float64 `yaml:"rsi_min" json:"rsi_min" default:"55" validate:"gte=0,lte=100"`
	StopMult        float64 `yaml:"stop_mult" json:"stop_mult" default:"2.0" validate:"gt=0"`
	TargetMult      float64 `yaml:"target_mult" json:"target_mult" default:"4.0" validate:"gt=0"`
	TrendWeight     float64 `yaml:"trend_weight" json:"trend_weight" default:"0.7" validate:"gte=0"`
	RSIWeight       float64 `yaml:"rsi_weight" json:"rsi_weight" default:"0.5" validate:"gte=0"`
	KeepPartialWeek bool    `yaml:"keep_partial_week" json:"keep_partial_week"`
}

// Regime 시장 국면 판정 기준
type Regime struct {
	RSIPivot     float64 `yaml:"rsi_pivot" json:"rsi_pivot" default:"50" validate:"gte=0,lte=100"`
	BullishScore int     `yaml:"bullish_score" json:"bullish_score" default:"2" validate:"gte=1,lte=4"`
	BearishScore int     `yaml:"bearish_score" json:"bearish_score" default:"-2" validate:"gte=-4,lte=-1"`
}

// Output S3/S4: 상한 및 고지문
type Output struct {
	MaxShort   int    `yaml:"max_short" json:"max_short" default:"12" validate:"gte=0"`
	MaxLong    int    `yaml:"max_long" json:"max_long" default:"8" validate:"gte=0"`
	Disclaimer string `yaml:"disclaimer" json:"disclaimer" default:"Educational use only. Not financial advice. Data provided as-is from public sources."`
}

// Default returns the built-in configuration
func Default() *Config {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		// struct tags are static; a failure here is a programming error
		panic(err)
	}
	return cfg
}
