package usecase

import (
	"context"

	"github.com/riskibarqy/match-crawler/internal/domain/rawmatch"
)

type SummonerSource interface {
	GetSummonerByName(ctx context.Context, name string) (rawmatch.Summoner, error)
	GetSummonerByAccount(ctx context.Context, accountID string) (rawmatch.Summoner, error)
}

// MatchlistSource serves one window [begin, end) of an account's match references.
type MatchlistSource interface {
	GetMatchlist(ctx context.Context, accountID string, begin, end int) (rawmatch.Matchlist, error)
}

type MatchSource interface {
	GetMatch(ctx context.Context, gameID int64) (rawmatch.Match, error)
	GetTimeline(ctx context.Context, gameID int64) (rawmatch.Timeline, error)
}

// RiotAPI is everything a crawl needs from the upstream service.
type RiotAPI interface {
	SummonerSource
	MatchlistSource
	MatchSource
}
