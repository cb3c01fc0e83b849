package httpapi

import (
	"time"

	"github.com/riskibarqy/match-crawler/internal/domain/player"
	"github.com/riskibarqy/match-crawler/internal/usecase"
)

type statusDTO struct {
	Service       string `json:"service"`
	Version       string `json:"version"`
	CPUs          int    `json:"cpus"`
	Goroutines    int    `json:"goroutines"`
	ActiveCrawls  int    `json:"active_crawls"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

type crawlAcceptedDTO struct {
	RunID      string `json:"run_id"`
	PlayerName string `json:"player_name"`
}

type crawlOutcomeDTO struct {
	PlayerName string `json:"player_name"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

type playerDTO struct {
	AccountID     string `json:"account_id"`
	SummonerID    string `json:"summoner_id,omitempty"`
	PUUID         string `json:"puuid,omitempty"`
	Name          string `json:"name"`
	ProfileIconID int    `json:"profile_icon_id"`
	SummonerLevel int64  `json:"summoner_level"`
	RevisionDate  string `json:"revision_date,omitempty"`
}

func crawlOutcomeToDTO(v usecase.CrawlOutcome) crawlOutcomeDTO {
	return crawlOutcomeDTO{
		PlayerName: v.PlayerName,
		Status:     v.Status,
		Message:    v.Message,
		DurationMs: v.DurationMs,
	}
}

func playerToDTO(v player.Player) playerDTO {
	out := playerDTO{
		AccountID:     v.AccountID,
		SummonerID:    v.SummonerID,
		PUUID:         v.PUUID,
		Name:          v.Name,
		ProfileIconID: v.ProfileIconID,
		SummonerLevel: v.SummonerLevel,
	}
	if !v.RevisionDate.IsZero() {
		out.RevisionDate = v.RevisionDate.UTC().Format(time.RFC3339)
	}
	return out
}
