// Package query implements the browse-side search, location filter and sort
// that operate on an already-fetched campaign collection. It is purely
// in-memory; the server never sees these parameters.
package query

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"fundraiser/internal/model"
)

// SortKey selects a campaign ordering.
type SortKey string

const (
	SortRecent  SortKey = "recent"  // newest first
	SortFunding SortKey = "funding" // highest raised/goal ratio first
	SortEnding  SortKey = "ending"  // fewest days left first
	SortGoal    SortKey = "goal"    // largest goal first
)

// Filter keeps campaigns whose title, creator name or location contains the
// search term, case-insensitively. An empty term keeps everything.
func Filter(campaigns []model.CampaignSummary, term string) []model.CampaignSummary {
	if term == "" {
		return campaigns
	}
	needle := strings.ToLower(term)
	out := make([]model.CampaignSummary, 0, len(campaigns))
	for _, c := range campaigns {
		if containsFold(c.Title, needle) || containsFold(c.CreatorName, needle) || containsFold(c.Location, needle) {
			out = append(out, c)
		}
	}
	return out
}

// FilterLocation keeps campaigns whose location contains loc,
// case-insensitively, independent of the text filter.
func FilterLocation(campaigns []model.CampaignSummary, loc string) []model.CampaignSummary {
	if loc == "" {
		return campaigns
	}
	needle := strings.ToLower(loc)
	out := make([]model.CampaignSummary, 0, len(campaigns))
	for _, c := range campaigns {
		if containsFold(c.Location, needle) {
			out = append(out, c)
		}
	}
	return out
}

// Sort returns a copy of campaigns ordered by key. The sort is stable, so
// ties keep the collection order. Unknown keys leave the order unchanged.
func Sort(campaigns []model.CampaignSummary, key SortKey) []model.CampaignSummary {
	out := make([]model.CampaignSummary, len(campaigns))
	copy(out, campaigns)

	switch key {
	case SortRecent:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	case SortFunding:
		sort.SliceStable(out, func(i, j int) bool {
			return fundingRatio(out[i]).GreaterThan(fundingRatio(out[j]))
		})
	case SortEnding:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DaysLeft < out[j].DaysLeft
		})
	case SortGoal:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Goal.GreaterThan(out[j].Goal)
		})
	}
	return out
}

func fundingRatio(c model.CampaignSummary) decimal.Decimal {
	if c.Goal.IsZero() {
		return decimal.Zero
	}
	return c.Raised.Div(c.Goal)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
