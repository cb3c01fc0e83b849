package usecase

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/match-crawler/internal/domain/match"
	"github.com/riskibarqy/match-crawler/internal/domain/rawmatch"
)

// TeamPolicy names the rule used to split participants between the two teams.
type TeamPolicy string

const (
	// TeamPolicyExplicit trusts the teamId carried by every participant.
	TeamPolicyExplicit TeamPolicy = "explicit"
	// TeamPolicySlotThreshold puts slots 1-5 on the first team and 6-10 on the second.
	TeamPolicySlotThreshold TeamPolicy = "slot_threshold"
)

const winLabel = "Win"

// NormalizedMatch is the entity graph produced from one match payload.
//
// Teams and Participants reference each other by arena index. SlotIndex maps
// the upstream participantId to a participant's arena index so the timeline
// pass can address the same participants. Durable ids are assigned later by
// assignIdentifiers.
type NormalizedMatch struct {
	Match        match.Match
	Teams        [match.TeamsPerMatch]match.Team
	Participants []match.Participant
	SlotIndex    map[int]int
	Policy       TeamPolicy
}

// Identities lists the known participant identities in arena order.
func (n NormalizedMatch) Identities() []match.Identity {
	out := make([]match.Identity, 0, len(n.Participants))
	for _, p := range n.Participants {
		if p.Identity.Unknown {
			continue
		}
		out = append(out, p.Identity)
	}
	return out
}

// NormalizeMatch turns a match payload into teams, participants and the slot map.
// It performs no I/O. Missing optional fields stay unset; structural problems
// (participant count, duplicate slots, uneven split) return ErrMalformedMatch.
func NormalizeMatch(raw rawmatch.Match) (NormalizedMatch, error) {
	if raw.GameID <= 0 {
		return NormalizedMatch{}, fmt.Errorf("%w: game id must be > 0", ErrMalformedMatch)
	}
	if len(raw.Participants) != match.ParticipantsPerMatch {
		return NormalizedMatch{}, fmt.Errorf("%w: game_id=%d has %d participants, expected %d",
			ErrMalformedMatch, raw.GameID, len(raw.Participants), match.ParticipantsPerMatch)
	}

	identities := indexIdentities(raw.ParticipantIdentities)
	policy := resolveTeamPolicy(raw.Participants)

	out := NormalizedMatch{
		Match:        mapMatch(raw),
		Participants: make([]match.Participant, 0, len(raw.Participants)),
		SlotIndex:    make(map[int]int, len(raw.Participants)),
		Policy:       policy,
	}
	out.Teams[0] = mapTeam(raw, 0, match.SideBlue)
	out.Teams[1] = mapTeam(raw, 1, match.SideRed)

	var perTeam [match.TeamsPerMatch]int
	for idx, item := range raw.Participants {
		slot := item.ParticipantID
		if _, dup := out.SlotIndex[slot]; dup {
			return NormalizedMatch{}, fmt.Errorf("%w: game_id=%d duplicate participant slot %d", ErrMalformedMatch, raw.GameID, slot)
		}

		teamIndex, err := assignTeam(policy, item)
		if err != nil {
			return NormalizedMatch{}, fmt.Errorf("%w: game_id=%d: %v", ErrMalformedMatch, raw.GameID, err)
		}
		perTeam[teamIndex]++
		out.SlotIndex[slot] = idx

		participant := mapParticipant(item, identities)
		participant.Index = idx
		participant.TeamIndex = teamIndex
		participant.GameID = raw.GameID
		out.Participants = append(out.Participants, participant)
	}

	for teamIndex, count := range perTeam {
		if count != match.ParticipantsPerTeam {
			return NormalizedMatch{}, fmt.Errorf("%w: game_id=%d team %d has %d participants, expected %d",
				ErrMalformedMatch, raw.GameID, teamIndex, count, match.ParticipantsPerTeam)
		}
	}

	return out, nil
}

func resolveTeamPolicy(participants []rawmatch.Participant) TeamPolicy {
	for _, p := range participants {
		if p.TeamID == nil || (*p.TeamID != match.SideBlue && *p.TeamID != match.SideRed) {
			return TeamPolicySlotThreshold
		}
	}
	return TeamPolicyExplicit
}

func assignTeam(policy TeamPolicy, p rawmatch.Participant) (int, error) {
	if p.ParticipantID < 1 || p.ParticipantID > match.ParticipantsPerMatch {
		return 0, fmt.Errorf("participant slot %d outside 1..%d", p.ParticipantID, match.ParticipantsPerMatch)
	}
	if policy == TeamPolicyExplicit {
		if *p.TeamID == match.SideBlue {
			return 0, nil
		}
		return 1, nil
	}
	if p.ParticipantID <= match.ParticipantsPerTeam {
		return 0, nil
	}
	return 1, nil
}

func indexIdentities(items []rawmatch.ParticipantIdentity) map[int]match.Identity {
	out := make(map[int]match.Identity, len(items))
	for _, item := range items {
		if item.Player == nil {
			continue
		}
		out[item.ParticipantID] = match.Identity{
			AccountID:        strings.TrimSpace(item.Player.AccountID),
			CurrentAccountID: strings.TrimSpace(item.Player.CurrentAccountID),
			SummonerID:       strings.TrimSpace(item.Player.SummonerID),
			SummonerName:     strings.TrimSpace(item.Player.SummonerName),
			PlatformID:       firstNonEmpty(item.Player.CurrentPlatformID, item.Player.PlatformID),
			ProfileIcon:      item.Player.ProfileIcon,
		}
	}
	return out
}

func mapMatch(raw rawmatch.Match) match.Match {
	return match.Match{
		GameID:       raw.GameID,
		PlatformID:   strings.TrimSpace(raw.PlatformID),
		GameCreation: millisToTime(raw.GameCreation),
		GameDuration: time.Duration(raw.GameDuration) * time.Second,
		QueueID:      raw.QueueID,
		MapID:        raw.MapID,
		SeasonID:     raw.SeasonID,
		GameVersion:  raw.GameVersion,
		GameMode:     raw.GameMode,
		GameType:     raw.GameType,
	}
}

// mapTeam looks the side up by teamId and falls back to payload position.
func mapTeam(raw rawmatch.Match, index, side int) match.Team {
	team := match.Team{Index: index, GameID: raw.GameID, Side: side}

	var source *rawmatch.TeamStats
	for i := range raw.Teams {
		if raw.Teams[i].TeamID == side {
			source = &raw.Teams[i]
			break
		}
	}
	if source == nil && index < len(raw.Teams) {
		source = &raw.Teams[index]
	}
	if source == nil {
		return team
	}

	team.Win = strings.EqualFold(source.Win, winLabel)
	team.FirstBlood = source.FirstBlood
	team.FirstTower = source.FirstTower
	team.FirstInhibitor = source.FirstInhibitor
	team.FirstBaron = source.FirstBaron
	team.FirstDragon = source.FirstDragon
	team.FirstRiftHerald = source.FirstRiftHerald
	team.TowerKills = source.TowerKills
	team.InhibitorKills = source.InhibitorKills
	team.BaronKills = source.BaronKills
	team.DragonKills = source.DragonKills
	team.VilemawKills = source.VilemawKills
	team.RiftHeraldKills = source.RiftHeraldKills
	team.DominionVictoryScore = source.DominionVictoryScore
	if len(source.Bans) > 0 {
		team.Bans = make([]match.Ban, 0, len(source.Bans))
		for _, ban := range source.Bans {
			team.Bans = append(team.Bans, match.Ban{ChampionID: ban.ChampionID, PickTurn: ban.PickTurn})
		}
	}
	return team
}

func mapParticipant(item rawmatch.Participant, identities map[int]match.Identity) match.Participant {
	identity, ok := identities[item.ParticipantID]
	if !ok {
		identity = match.Identity{Unknown: true}
	}

	out := match.Participant{
		Slot:                      item.ParticipantID,
		Identity:                  identity,
		ChampionID:                item.ChampionID,
		Spell1ID:                  item.Spell1ID,
		Spell2ID:                  item.Spell2ID,
		HighestAchievedSeasonTier: item.HighestAchievedSeasonTier,
		Stat:                      mapStat(item.Stats),
		Timeline:                  mapParticipantTimeline(item.Timeline),
	}
	out.Role = out.Timeline.Role
	out.Lane = out.Timeline.Lane

	if item.Runes != nil {
		out.Runes = make([]match.Rune, 0, len(item.Runes))
		for _, r := range item.Runes {
			out.Runes = append(out.Runes, match.Rune{RuneID: r.RuneID, Rank: r.Rank})
		}
	}
	if item.Masteries != nil {
		out.Masteries = make([]match.Mastery, 0, len(item.Masteries))
		for _, m := range item.Masteries {
			out.Masteries = append(out.Masteries, match.Mastery{MasteryID: m.MasteryID, Rank: m.Rank})
		}
	}
	return out
}

func mapStat(s rawmatch.ParticipantStats) match.Stat {
	out := match.Stat{
		Items: [7]int{s.Item0, s.Item1, s.Item2, s.Item3, s.Item4, s.Item5, s.Item6},
		Win:   s.Win,

		Kills:                  s.Kills,
		Deaths:                 s.Deaths,
		Assists:                s.Assists,
		LargestKillingSpree:    s.LargestKillingSpree,
		LargestMultiKill:       s.LargestMultiKill,
		KillingSprees:          s.KillingSprees,
		LongestTimeSpentLiving: s.LongestTimeSpentLiving,
		DoubleKills:            s.DoubleKills,
		TripleKills:            s.TripleKills,
		QuadraKills:            s.QuadraKills,
		PentaKills:             s.PentaKills,
		UnrealKills:            s.UnrealKills,

		TotalDamageDealt:               s.TotalDamageDealt,
		MagicDamageDealt:               s.MagicDamageDealt,
		PhysicalDamageDealt:            s.PhysicalDamageDealt,
		TrueDamageDealt:                s.TrueDamageDealt,
		LargestCriticalStrike:          s.LargestCriticalStrike,
		TotalDamageDealtToChampions:    s.TotalDamageDealtToChampions,
		MagicDamageDealtToChampions:    s.MagicDamageDealtToChampions,
		PhysicalDamageDealtToChampions: s.PhysicalDamageDealtToChampions,
		TrueDamageDealtToChampions:     s.TrueDamageDealtToChampions,
		TotalHeal:                      s.TotalHeal,
		TotalUnitsHealed:               s.TotalUnitsHealed,
		DamageSelfMitigated:            s.DamageSelfMitigated,
		DamageDealtToObjectives:        s.DamageDealtToObjectives,
		DamageDealtToTurrets:           s.DamageDealtToTurrets,
		VisionScore:                    s.VisionScore,
		TimeCCingOthers:                s.TimeCCingOthers,
		TotalDamageTaken:               s.TotalDamageTaken,
		MagicalDamageTaken:             s.MagicalDamageTaken,
		PhysicalDamageTaken:            s.PhysicalDamageTaken,
		TrueDamageTaken:                s.TrueDamageTaken,
		GoldEarned:                     s.GoldEarned,
		GoldSpent:                      s.GoldSpent,
		TurretKills:                    s.TurretKills,
		InhibitorKills:                 s.InhibitorKills,
		TotalMinionsKilled:             s.TotalMinionsKilled,
		NeutralMinionsKilled:           s.NeutralMinionsKilled,
		TotalTimeCrowdControlDealt:     s.TotalTimeCrowdControlDealt,
		ChampLevel:                     s.ChampLevel,
		VisionWardsBoughtInGame:        s.VisionWardsBoughtInGame,
		SightWardsBoughtInGame:         s.SightWardsBoughtInGame,
		CombatPlayerScore:              s.CombatPlayerScore,
		ObjectivePlayerScore:           s.ObjectivePlayerScore,
		TotalPlayerScore:               s.TotalPlayerScore,
		TotalScoreRank:                 s.TotalScoreRank,
		PlayerScores: [10]int{
			s.PlayerScore0, s.PlayerScore1, s.PlayerScore2, s.PlayerScore3, s.PlayerScore4,
			s.PlayerScore5, s.PlayerScore6, s.PlayerScore7, s.PlayerScore8, s.PlayerScore9,
		},

		NeutralMinionsKilledTeamJungle:  s.NeutralMinionsKilledTeamJungle,
		NeutralMinionsKilledEnemyJungle: s.NeutralMinionsKilledEnemyJungle,
		WardsPlaced:                     s.WardsPlaced,
		WardsKilled:                     s.WardsKilled,
		FirstBloodKill:                  s.FirstBloodKill,
		FirstBloodAssist:                s.FirstBloodAssist,
		FirstTowerKill:                  s.FirstTowerKill,
		FirstTowerAssist:                s.FirstTowerAssist,
		FirstInhibitorKill:              s.FirstInhibitorKill,
		FirstInhibitorAssist:            s.FirstInhibitorAssist,

		PerkPrimaryStyle: s.PerkPrimaryStyle,
		PerkSubStyle:     s.PerkSubStyle,
	}

	perks := []struct {
		id   *int
		vars [3]int
	}{
		{s.Perk0, [3]int{s.Perk0Var1, s.Perk0Var2, s.Perk0Var3}},
		{s.Perk1, [3]int{s.Perk1Var1, s.Perk1Var2, s.Perk1Var3}},
		{s.Perk2, [3]int{s.Perk2Var1, s.Perk2Var2, s.Perk2Var3}},
		{s.Perk3, [3]int{s.Perk3Var1, s.Perk3Var2, s.Perk3Var3}},
		{s.Perk4, [3]int{s.Perk4Var1, s.Perk4Var2, s.Perk4Var3}},
		{s.Perk5, [3]int{s.Perk5Var1, s.Perk5Var2, s.Perk5Var3}},
	}
	for _, perk := range perks {
		if perk.id == nil {
			continue
		}
		out.Perks = append(out.Perks, match.Perk{ID: *perk.id, Vars: perk.vars})
	}
	for _, statPerk := range []*int{s.StatPerk0, s.StatPerk1, s.StatPerk2} {
		if statPerk == nil {
			continue
		}
		out.StatPerks = append(out.StatPerks, *statPerk)
	}
	return out
}

func mapParticipantTimeline(t *rawmatch.ParticipantTimeline) match.Timeline {
	if t == nil {
		return match.Timeline{}
	}
	return match.Timeline{
		Role:                        t.Role,
		Lane:                        t.Lane,
		CreepsPerMinDeltas:          copyDeltas(t.CreepsPerMinDeltas),
		XPPerMinDeltas:              copyDeltas(t.XPPerMinDeltas),
		GoldPerMinDeltas:            copyDeltas(t.GoldPerMinDeltas),
		CSDiffPerMinDeltas:          copyDeltas(t.CSDiffPerMinDeltas),
		XPDiffPerMinDeltas:          copyDeltas(t.XPDiffPerMinDeltas),
		DamageTakenPerMinDeltas:     copyDeltas(t.DamageTakenPerMinDeltas),
		DamageTakenDiffPerMinDeltas: copyDeltas(t.DamageTakenDiffPerMinDeltas),
	}
}

func copyDeltas(in map[string]float64) match.Deltas {
	if in == nil {
		return nil
	}
	out := make(match.Deltas, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// sortedSlots returns the keys of a slot map in ascending order.
func sortedSlots[V any](in map[int]V) []int {
	out := make([]int, 0, len(in))
	for slot := range in {
		out = append(out, slot)
	}
	sort.Ints(out)
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
