package seedevents

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"

	"github.com/alliancelab/warboard/internal/domain/model"
)

// Roster growth profile cases. Each member is assigned one per event so
// the resulting deltas cover the full classification space.
const (
	caseHeavyHitter = 0
	caseRegular     = 1
	caseCasual      = 2
	caseIdle        = 3
	caseHoarder     = 4 // grows power during a forbidden window
)

const profileDivisor = 5

// Activity ranges per profile, applied to the primary metrics.
const (
	heavyGainMin   = 5_000
	heavyGainRange = 15_000
	regularGainMin = 500
	regularGainMax = 5_000
	casualGainMax  = 500
	hoarderPowMin  = 1_000
	hoarderPowMax  = 50_000
)

// randomInt64 returns a random value in [0, n) using crypto/rand.
func randomInt64(n int64) int64 {
	v, _ := rand.Int(rand.Reader, big.NewInt(n))
	return v.Int64()
}

// makeRoster builds a synthetic member roster spread across groups.
func makeRoster(numMembers, numGroups int) []model.MemberRecord {
	if numGroups < 1 {
		numGroups = 1
	}
	members := make([]model.MemberRecord, numMembers)
	for i := range members {
		id := "m" + strconv.Itoa(i+1)
		members[i] = model.MemberRecord{
			MemberID:     id,
			Name:         "Member " + strconv.Itoa(i+1),
			Group:        "Group " + string(rune('A'+i%numGroups)),
			Merit:        randomInt64(1_000_000),
			Contribution: randomInt64(500_000),
			Assist:       randomInt64(200_000),
			Donation:     randomInt64(100_000),
			Power:        10_000_000 + randomInt64(5_000_000),
		}
	}
	return members
}

// advanceRoster produces the after-snapshot state for a before roster.
// A small tail of the roster is dropped and replaced with joiners so the
// reports always contain new and departed members.
func advanceRoster(before []model.MemberRecord, category model.EventCategory) []model.MemberRecord {
	after := make([]model.MemberRecord, 0, len(before)+2)
	for i, m := range before {
		if i == len(before)-1 {
			continue // departed member
		}
		after = append(after, advanceMember(m, category))
	}
	// Joiners appear only in the after snapshot.
	for j := 0; j < 2; j++ {
		id := "j" + strconv.Itoa(j+1) + "-" + strconv.FormatInt(time.Now().UnixNano(), 36)
		after = append(after, model.MemberRecord{
			MemberID: id,
			Name:     "Joiner " + strconv.Itoa(j+1),
			Group:    before[j%len(before)].Group,
			Power:    8_000_000 + randomInt64(2_000_000),
		})
	}
	return after
}

func advanceMember(m model.MemberRecord, category model.EventCategory) model.MemberRecord {
	switch randomInt64(profileDivisor) {
	case caseHeavyHitter:
		gain := heavyGainMin + randomInt64(heavyGainRange)
		m = applyGain(m, category, gain)
	case caseRegular:
		gain := regularGainMin + randomInt64(regularGainMax-regularGainMin)
		m = applyGain(m, category, gain)
	case caseCasual:
		m = applyGain(m, category, randomInt64(casualGainMax))
	case caseIdle:
		// No change. Shows up as absent in battle and siege reports.
	case caseHoarder:
		if category == model.CategoryForbidden {
			m.Power += hoarderPowMin + randomInt64(hoarderPowMax-hoarderPowMin)
		} else {
			m = applyGain(m, category, regularGainMin+randomInt64(regularGainMax))
		}
	}
	m.Donation += randomInt64(1_000)
	return m
}

func applyGain(m model.MemberRecord, category model.EventCategory, gain int64) model.MemberRecord {
	switch category {
	case model.CategoryBattle:
		m.Merit += gain
	case model.CategorySiege:
		m.Contribution += gain
		m.Assist += gain / 3
	case model.CategoryForbidden:
		// Compliant members keep power flat during a forbidden window.
	}
	return m
}
