package strategyconfig

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// 에러 필드명은 YAML 키 기준
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning 권장 위반 (경고만)
type Warning struct {
	Code    string
	Message string
}

// Validate checks all required constraints
// 실패 시 첫 번째 ValidationError 반환 (프로그램 중단)
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fromFieldError(fieldErrs[0])
		}
		return err
	}

	// === Universe ===
	seen := make(map[string]struct{}, len(cfg.Universe.Watchlist))
	for i, sym := range cfg.Universe.Watchlist {
		key := strings.ToLower(sym)
		if _, ok := seen[key]; ok {
			return ValidationError{fmt.Sprintf("universe.watchlist[%d]", i), "duplicate symbol " + sym}
		}
		seen[key] = struct{}{}
	}

	// === ShortTerm ===
	if cfg.ShortTerm.MRRSI2Max >= cfg.ShortTerm.MRRSI2Min {
		return ValidationError{"short_term.mr_rsi2_max", "must be below short_term.mr_rsi2_min"}
	}

	// === History ===
	if cfg.Liquidity.Window > cfg.History.MinBars {
		return ValidationError{"liquidity.window", "must be <= history.min_bars"}
	}

	return nil
}

// Warn checks recommended constraints (non-fatal)
func Warn(cfg *Config) []Warning {
	var warnings []Warning

	if cfg.Liquidity.MinDollarVolume < 1_000_000 {
		warnings = append(warnings, Warning{
			Code:    "LOW_LIQUIDITY",
			Message: "min_dollar_volume < 1M: 체결/슬리피지 리스크 높음",
		})
	}

	if cfg.ShortTerm.RewardMult <= cfg.ShortTerm.RiskMult {
		warnings = append(warnings, Warning{
			Code:    "LOW_REWARD_RISK",
			Message: "short_term.reward_mult <= risk_mult: ATR 기반 플랜의 rr이 1 이하",
		})
	}

	if cfg.History.MinBars < 200 {
		warnings = append(warnings, Warning{
			Code:    "SHORT_HISTORY",
			Message: "history.min_bars < 200: sma200 기반 조건이 항상 미충족",
		})
	}

	return warnings
}

func fromFieldError(fe validator.FieldError) ValidationError {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:] // drop root type name
	}

	var msg string
	switch fe.Tag() {
	case "required":
		msg = "required"
	case "min":
		msg = "must have at least " + fe.Param() + " entries"
	case "oneof":
		msg = "must be one of [" + fe.Param() + "]"
	case "gt":
		msg = "must be > " + fe.Param()
	case "gte":
		msg = "must be >= " + fe.Param()
	case "lte":
		msg = "must be <= " + fe.Param()
	default:
		msg = "failed " + fe.Tag() + " check"
	}

	return ValidationError{Field: field, Message: msg}
}
