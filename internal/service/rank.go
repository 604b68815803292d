package service

import (
	"fmt"
	"math"
	"strings"

	"gitlab.tepseg.com/ai/lol-accounts/internal/model"
	"gitlab.tepseg.com/ai/lol-accounts/internal/riot"
)

// RankSummary is the derived display quadruple. The four fields are
// always computed, and persisted, together.
type RankSummary struct {
	Rank     string
	LP       string
	WinRate  string
	ImageSrc string
}

// SummarizeRank reduces a set of ranked-queue entries to display fields
// for the solo/duo queue. Accounts with no solo-queue entry get the
// Unranked defaults.
func SummarizeRank(entries []riot.LeagueEntry) RankSummary {
	var solo *riot.LeagueEntry
	for i := range entries {
		if entries[i].QueueType == riot.QueueSolo {
			solo = &entries[i]
			break
		}
	}

	if solo == nil {
		return RankSummary{
			Rank:     model.DefaultRank,
			LP:       model.DefaultLP,
			WinRate:  model.DefaultWinRate,
			ImageSrc: badgePath(model.DefaultRank),
		}
	}

	return RankSummary{
		Rank:     fmt.Sprintf("%s %s", solo.Tier, solo.Rank),
		LP:       fmt.Sprintf("%d LP", solo.LeaguePoints),
		WinRate:  winRate(solo.Wins, solo.Losses),
		ImageSrc: badgePath(titleCase(solo.Tier)),
	}
}

func winRate(wins, losses int) string {
	total := wins + losses
	if total == 0 {
		return model.DefaultWinRate
	}
	return fmt.Sprintf("%d%%", int(math.Round(100*float64(wins)/float64(total))))
}

// titleCase normalizes an API tier name ("CHALLENGER") to the badge file
// form ("Challenger").
func titleCase(tier string) string {
	if tier == "" {
		return tier
	}
	return strings.ToUpper(tier[:1]) + strings.ToLower(tier[1:])
}

func badgePath(tier string) string {
	return fmt.Sprintf("/assets/ranks/%s.webp", tier)
}
