package seo

import "math"

// Check weights for the overall blend. They sum to 1.00.
var weights = map[string]float64{
	"title":       0.15,
	"description": 0.12,
	"headings":    0.12,
	"images":      0.10,
	"links":       0.08,
	"technical":   0.18,
	"social":      0.10,
	"content":     0.10,
	"advanced":    0.05,
}

// Overall combines the per-check scores into a single 0-100 score.
func Overall(r Result) int {
	score := 0.0
	score += float64(r.Title.Score) * weights["title"]
	score += float64(r.Description.Score) * weights["description"]
	score += float64(r.Headings.Score) * weights["headings"]
	score += float64(r.Images.Score) * weights["images"]
	score += float64(r.Links.Score) * weights["links"]
	score += float64(r.Technical.Score) * weights["technical"]
	score += float64(r.Social.Score) * weights["social"]
	score += float64(r.Content.Score) * weights["content"]
	score += float64(r.Advanced.Score) * weights["advanced"]
	return int(math.Round(score))
}
