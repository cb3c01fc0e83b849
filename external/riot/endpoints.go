package riot

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/riskibarqy/match-crawler/internal/domain/rawmatch"
)

const (
	summonerPath  = "/lol/summoner/v4/summoners"
	matchlistPath = "/lol/match/v4/matchlists/by-account"
	matchPath     = "/lol/match/v4/matches"
	timelinePath  = "/lol/match/v4/timelines/by-match"
)

func (c *Client) GetSummonerByName(ctx context.Context, name string) (rawmatch.Summoner, error) {
	return c.getSummoner(ctx, summonerPath+"/by-name/"+url.PathEscape(name))
}

func (c *Client) GetSummonerByAccount(ctx context.Context, accountID string) (rawmatch.Summoner, error) {
	return c.getSummoner(ctx, summonerPath+"/by-account/"+url.PathEscape(accountID))
}

func (c *Client) GetSummonerByID(ctx context.Context, summonerID string) (rawmatch.Summoner, error) {
	return c.getSummoner(ctx, summonerPath+"/"+url.PathEscape(summonerID))
}

func (c *Client) getSummoner(ctx context.Context, path string) (rawmatch.Summoner, error) {
	var out rawmatch.Summoner
	if err := c.Fetch(ctx, http.MethodGet, path, nil, &out); err != nil {
		return rawmatch.Summoner{}, fmt.Errorf("fetch summoner: %w", err)
	}
	return out, nil
}

// GetMatchlist requests the references in [begin, end) for an account.
func (c *Client) GetMatchlist(ctx context.Context, accountID string, begin, end int) (rawmatch.Matchlist, error) {
	params := url.Values{}
	params.Set("beginIndex", strconv.Itoa(begin))
	params.Set("endIndex", strconv.Itoa(end))

	var out rawmatch.Matchlist
	if err := c.Fetch(ctx, http.MethodGet, matchlistPath+"/"+url.PathEscape(accountID), params, &out); err != nil {
		return rawmatch.Matchlist{}, fmt.Errorf("fetch matchlist begin=%d end=%d: %w", begin, end, err)
	}
	return out, nil
}

func (c *Client) GetMatch(ctx context.Context, gameID int64) (rawmatch.Match, error) {
	var out rawmatch.Match
	if err := c.Fetch(ctx, http.MethodGet, matchPath+"/"+strconv.FormatInt(gameID, 10), nil, &out); err != nil {
		return rawmatch.Match{}, fmt.Errorf("fetch match game_id=%d: %w", gameID, err)
	}
	return out, nil
}

func (c *Client) GetTimeline(ctx context.Context, gameID int64) (rawmatch.Timeline, error) {
	var out rawmatch.Timeline
	if err := c.Fetch(ctx, http.MethodGet, timelinePath+"/"+strconv.FormatInt(gameID, 10), nil, &out); err != nil {
		return rawmatch.Timeline{}, fmt.Errorf("fetch timeline game_id=%d: %w", gameID, err)
	}
	return out, nil
}
