package selection

import (
	"sort"
	"strings"

	"github.com/wonny/ideagen/internal/contracts"
	"github.com/wonny/ideagen/internal/strategyconfig"
	"github.com/wonny/ideagen/pkg/logger"
)

// Ranker implements S3: per-horizon ranking and caps
// ⭐ SSOT: S3 랭킹 로직은 여기서만
type Ranker struct {
	maxShort int
	maxLong  int
	logger   *logger.Logger
}

// Result holds the capped, ranked idea records per horizon
type Result struct {
	Short []contracts.IdeaRecord
	Long  []contracts.IdeaRecord
}

// Records returns short-horizon records first, then long
func (r Result) Records() []contracts.IdeaRecord {
	out := make([]contracts.IdeaRecord, 0, len(r.Short)+len(r.Long))
	out = append(out, r.Short...)
	return append(out, r.Long...)
}

// Counts summarises the result by horizon
func (r Result) Counts() contracts.PayloadCounts {
	return contracts.PayloadCounts{Short: len(r.Short), Long: len(r.Long)}
}

// NewRanker creates a new ranker
func NewRanker(cfg strategyconfig.Output, logger *logger.Logger) *Ranker {
	return &Ranker{
		maxShort: cfg.MaxShort,
		maxLong:  cfg.MaxLong,
		logger:   logger.WithStage(contracts.StageSelection),
	}
}

// Rank buckets ideas by horizon, sorts each bucket by (ranking score, rr) descending,
// truncates to the caps and strips the ranking score
func (r *Ranker) Rank(ideas []contracts.Idea) Result {
	var short, long []contracts.Idea
	for _, idea := range ideas {
		if idea.Plan.Horizon == contracts.HorizonLong {
			long = append(long, idea)
		} else {
			short = append(short, idea)
		}
	}

	res := Result{
		Short: r.rankBucket(short, r.maxShort),
		Long:  r.rankBucket(long, r.maxLong),
	}

	r.logger.WithFields(map[string]interface{}{
		"candidates": len(ideas),
		"short":      len(res.Short),
		"long":       len(res.Long),
	}).Info("Ranking completed")

	return res
}

func (r *Ranker) rankBucket(bucket []contracts.Idea, limit int) []contracts.IdeaRecord {
	// Sort by (score, rr) descending; ties keep evaluation order
	sort.SliceStable(bucket, func(i, j int) bool {
		a, b := bucket[i].Plan, bucket[j].Plan
		if a.RankingScore != b.RankingScore {
			return a.RankingScore > b.RankingScore
		}
		return a.RewardRisk > b.RewardRisk
	})

	if limit < 0 {
		limit = 0
	}
	if len(bucket) > limit {
		bucket = bucket[:limit]
	}

	records := make([]contracts.IdeaRecord, 0, len(bucket))
	for i := range bucket {
		records = append(records, contracts.IdeaRecord{
			Symbol: strings.ToUpper(bucket[i].Symbol),
			Plan:   bucket[i].Plan.View(),
		})
	}
	return records
}
