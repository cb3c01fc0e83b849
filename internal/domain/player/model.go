package player

import (
	"fmt"
	"time"
)

// Player is an account in the remote game's identity system.
type Player struct {
	AccountID     string
	SummonerID    string
	PUUID         string
	Name          string
	ProfileIconID int
	SummonerLevel int64
	RevisionDate  time.Time
}

func (p Player) Validate() error {
	if p.AccountID == "" {
		return fmt.Errorf("player account id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.SummonerLevel < 0 {
		return fmt.Errorf("player level must be >= 0")
	}

	return nil
}
