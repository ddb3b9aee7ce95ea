package llmready

import "math"

// Check weights for the overall blend. They sum to 1.00.
var weights = map[string]float64{
	"structuredData":  0.25,
	"contentClarity":  0.20,
	"authorInfo":      0.20,
	"aiCrawlerAccess": 0.20,
	"citability":      0.15,
}

// Overall combines the per-check scores into a single 0-100 score.
func Overall(r Result) int {
	score := 0.0
	score += float64(r.StructuredData.Score) * weights["structuredData"]
	score += float64(r.ContentClarity.Score) * weights["contentClarity"]
	score += float64(r.AuthorInfo.Score) * weights["authorInfo"]
	score += float64(r.AICrawlerAccess.Score) * weights["aiCrawlerAccess"]
	score += float64(r.Citability.Score) * weights["citability"]
	return int(math.Round(score))
}
