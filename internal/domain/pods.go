package domain

import (
	"math/rand"
	"sort"

	"draftbot/internal/domain/entities"
)

// Pod sizing bounds. Every table seats 6, 8 or 10 players.
const (
	MinPodSize = 6
	MaxPodSize = 10
	MaxPlayers = 64
)

// seatTable is the authoritative seat layout per player count, indexed by
// count/2 for counts 0..64. It is organizer policy, not a formula: each count
// is composed of as many 8-seat tables as possible, topped up with 6-seat
// tables, and a 10-seat table only where no mix of 6s and 8s covers the
// count (10 players). Do not regenerate it from an algorithm.
var seatTable = [33][]int{
	{},                     // 0
	{},                     // 2
	{},                     // 4
	{6},                    // 6
	{8},                    // 8
	{10},                   // 10
	{6, 6},                 // 12
	{8, 6},                 // 14
	{8, 8},                 // 16
	{6, 6, 6},              // 18
	{8, 6, 6},              // 20
	{8, 8, 6},              // 22
	{8, 8, 8},              // 24
	{8, 6, 6, 6},           // 26
	{8, 8, 6, 6},           // 28
	{8, 8, 8, 6},           // 30
	{8, 8, 8, 8},           // 32
	{8, 8, 6, 6, 6},        // 34
	{8, 8, 8, 6, 6},        // 36
	{8, 8, 8, 8, 6},        // 38
	{8, 8, 8, 8, 8},        // 40
	{8, 8, 8, 6, 6, 6},     // 42
	{8, 8, 8, 8, 6, 6},     // 44
	{8, 8, 8, 8, 8, 6},     // 46
	{8, 8, 8, 8, 8, 8},     // 48
	{8, 8, 8, 8, 6, 6, 6},  // 50
	{8, 8, 8, 8, 8, 6, 6},  // 52
	{8, 8, 8, 8, 8, 8, 6},  // 54
	{8, 8, 8, 8, 8, 8, 8},  // 56
	{8, 8, 8, 8, 8, 6, 6, 6}, // 58
	{8, 8, 8, 8, 8, 8, 6, 6}, // 60
	{8, 8, 8, 8, 8, 8, 8, 6}, // 62
	{8, 8, 8, 8, 8, 8, 8, 8}, // 64
}

// tablesNeeded mirrors seatTable: number of tables per count/2.
var tablesNeeded = [33]int{
	0, 0, 0,
	1, 1, 1,
	2, 2, 2,
	3, 3, 3, 3,
	4, 4, 4, 4,
	5, 5, 5, 5,
	6, 6, 6, 6,
	7, 7, 7, 7,
	8, 8, 8, 8,
}

// SeatPlan returns the seat counts for n players. Odd n is rounded up by one
// to reserve the minutemage seat. Counts outside [0, MaxPlayers] yield nil.
func SeatPlan(n int) []int {
	if n%2 != 0 {
		n++
	}
	if n < 0 || n > MaxPlayers {
		return nil
	}
	plan := seatTable[n/2]
	out := make([]int, len(plan))
	copy(out, plan)
	return out
}

// TablesNeeded returns the number of tables SeatPlan will produce for n.
func TablesNeeded(n int) int {
	if n%2 != 0 {
		n++
	}
	if n < 0 || n > MaxPlayers {
		return 0
	}
	return tablesNeeded[n/2]
}

// AllocationReason records why a player landed on their table.
type AllocationReason string

const (
	ReasonHost       AllocationReason = "host"
	ReasonPreference AllocationReason = "preference"
	ReasonShark      AllocationReason = "shark"
	ReasonRank       AllocationReason = "rank"
	ReasonNewbie     AllocationReason = "newbie"
	ReasonContention AllocationReason = "contention"
	ReasonRandom     AllocationReason = "random"
)

// SeatAssignment is one player placed on a table.
type SeatAssignment struct {
	UserID string
	Name   string
	Reason AllocationReason
}

// Pod is an allocated table. Ephemeral: produced fresh on every allocation
// request, never persisted.
type Pod struct {
	Seats   int
	Players []SeatAssignment
}

// newbieGames is the games-played ceiling under which a player gets the
// newbie-priority slot on a later pod.
const newbieGames = 6

type candidate struct {
	signup entities.Signup
	reason AllocationReason
	tier   int
	rank   int
	games  int
	jitter float64
}

// Allocate assigns players to tables for the given confirmed playing
// signups, ordered by signup timestamp. hosts marks users holding the host
// role; records carries imported league standings (absent entries get
// defaults). The seed makes tie-breaks reproducible.
//
// Placement beyond "hosts first" is a priority sort — stated preference, then
// shark/rank standing, then fewer games played, then random — followed by a
// round-robin fill across tables to spread skill. This is documented policy
// rather than a contract; only the gating rules and seat plan are fixed.
func Allocate(signups []entities.Signup, records map[string]entities.LeagueRecord, hosts map[string]bool, seed int64) ([]Pod, error) {
	n := len(signups)
	if n < MinPodSize {
		return nil, ErrTooFewPlayers
	}
	if n%2 != 0 {
		return nil, ErrOddPlayerCount
	}
	if n > MaxPlayers {
		return nil, ErrTooManyPlayers
	}

	plan := SeatPlan(n)
	pods := make([]Pod, len(plan))
	for i, seats := range plan {
		pods[i] = Pod{Seats: seats}
	}

	rng := rand.New(rand.NewSource(seed))

	var hostPool, playerPool []entities.Signup
	for _, s := range signups {
		if hosts[s.UserID] && len(hostPool) < len(pods) {
			hostPool = append(hostPool, s)
		} else {
			playerPool = append(playerPool, s)
		}
	}
	for i, h := range hostPool {
		pods[i].Players = append(pods[i].Players, SeatAssignment{
			UserID: h.UserID, Name: h.PreferredName, Reason: ReasonHost,
		})
	}

	cands := make([]candidate, len(playerPool))
	for i, s := range playerPool {
		rec := records[s.UserID]
		cands[i] = candidate{
			signup: s,
			rank:   rec.LeagueRank,
			games:  rec.GamesPlayed,
			jitter: rng.Float64(),
		}
		switch {
		case s.Status == StatusCompetitive:
			cands[i].tier, cands[i].reason = 0, ReasonPreference
		case rec.Shark:
			cands[i].tier, cands[i].reason = 1, ReasonShark
		case rec.LeagueRank > 0:
			cands[i].tier, cands[i].reason = 2, ReasonRank
		case rec.GamesPlayed < newbieGames:
			cands[i].tier, cands[i].reason = 3, ReasonNewbie
		default:
			cands[i].tier, cands[i].reason = 4, ReasonRandom
		}
	}
	sort.SliceStable(cands, func(a, b int) bool {
		if cands[a].tier != cands[b].tier {
			return cands[a].tier < cands[b].tier
		}
		if cands[a].rank != cands[b].rank {
			return cands[a].rank < cands[b].rank
		}
		if cands[a].games != cands[b].games {
			return cands[a].games < cands[b].games
		}
		return cands[a].jitter < cands[b].jitter
	})
	markContention(cands)

	// Round-robin over tables with open seats to balance skill.
	pi := 0
	for _, c := range cands {
		for tries := 0; tries < len(pods); tries++ {
			p := &pods[pi%len(pods)]
			pi++
			if len(p.Players) < p.Seats {
				p.Players = append(p.Players, SeatAssignment{
					UserID: c.signup.UserID, Name: c.signup.PreferredName, Reason: c.reason,
				})
				break
			}
		}
	}
	return pods, nil
}

// markContention flags prioritized players whose order against an equal
// neighbor was decided by the random tie-break.
func markContention(cands []candidate) {
	for i := 1; i < len(cands); i++ {
		a, b := &cands[i-1], &cands[i]
		if a.tier == b.tier && a.tier < 4 && a.rank == b.rank && a.games == b.games {
			a.reason = ReasonContention
			b.reason = ReasonContention
		}
	}
}
