package analyzer

import (
	"fmt"

	"github.com/penwyp/go-timer-analyzer/internal/data/parser"
	"github.com/penwyp/go-timer-analyzer/internal/util"
)

// CacheStats counts how the files of one pass were obtained
type CacheStats struct {
	totalFiles  int
	cacheHits   int
	cacheMisses int
	failures    int
	missDetails []MissDetail
}

// MissDetail records details of a cache miss
type MissDetail struct {
	FilePath string
	Reason   parser.MissReason
}

// NewCacheStats creates a new CacheStats instance
func NewCacheStats() *CacheStats {
	return &CacheStats{
		missDetails: make([]MissDetail, 0),
	}
}

// Record accounts for one parse result
func (cs *CacheStats) Record(result parser.ParseResult) {
	cs.totalFiles++
	switch {
	case result.Error != nil:
		cs.failures++
	case result.Cached():
		cs.cacheHits++
	default:
		cs.cacheMisses++
		cs.missDetails = append(cs.missDetails, MissDetail{
			FilePath: result.File,
			Reason:   result.Miss,
		})
	}
}

// GetStats returns the current statistics and hit rate
func (cs *CacheStats) GetStats() (total, hits, misses, failures int, hitRate float64) {
	total, hits, misses, failures = cs.totalFiles, cs.cacheHits, cs.cacheMisses, cs.failures
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	return
}

// MissReasons counts misses per reason
func (cs *CacheStats) MissReasons() map[parser.MissReason]int {
	counts := make(map[parser.MissReason]int)
	for _, detail := range cs.missDetails {
		counts[detail.Reason]++
	}
	return counts
}

// LogStats logs the statistics of the pass and the files that were re-read
func (cs *CacheStats) LogStats() {
	total, hits, misses, failures, hitRate := cs.GetStats()

	util.LogDebug(fmt.Sprintf("Cache stats: total files %d, hits %d, misses %d, failures %d, hit rate %.1f%%",
		total, hits, misses, failures, hitRate))

	for _, detail := range cs.missDetails {
		util.LogDebug(fmt.Sprintf("  %s (%s)", detail.FilePath, detail.Reason))
	}
}
