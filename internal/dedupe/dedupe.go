// Package dedupe collapses duplicate-identity groups to a single survivor.
// Losers are archived, never destroyed, so the audit trail stays complete.
package dedupe

import (
	"sort"
	"strings"

	"cleanroom/internal/domain"
)

// comparator orders two records; negative means a ranks before b.
type comparator func(a, b domain.Record) int

// tieBreakChain is the survivor ordering, applied lexicographically:
// highest score, then most populated fields, then earliest hire date.
// Each stage only breaks ties left by the stage before it.
var tieBreakChain = []comparator{
	byScoreDesc,
	byCompletenessDesc,
	byHireDateAsc,
	byFieldFingerprint,
}

func byScoreDesc(a, b domain.Record) int {
	return b.QualityScore - a.QualityScore
}

func byCompletenessDesc(a, b domain.Record) int {
	return b.NonNullFieldCount() - a.NonNullFieldCount()
}

// byHireDateAsc ranks earlier hire dates first; records without a hire date
// sort last.
func byHireDateAsc(a, b domain.Record) int {
	switch {
	case a.HireDate == nil && b.HireDate == nil:
		return 0
	case a.HireDate == nil:
		return 1
	case b.HireDate == nil:
		return -1
	case a.HireDate.Before(*b.HireDate):
		return -1
	case b.HireDate.Before(*a.HireDate):
		return 1
	default:
		return 0
	}
}

// byFieldFingerprint makes the ordering total: records tied on every real
// stage are ranked by raw field values, so a shuffled batch always elects
// the same survivor.
func byFieldFingerprint(a, b domain.Record) int {
	return strings.Compare(fingerprint(a), fingerprint(b))
}

func fingerprint(r domain.Record) string {
	return strings.Join([]string{r.Email, r.FirstName, r.LastName, r.Phone, r.Department, r.HireDateRaw}, "\x1f")
}

func compare(a, b domain.Record) int {
	for _, cmp := range tieBreakChain {
		if c := cmp(a, b); c != 0 {
			return c
		}
	}
	return 0
}

// Deduplicate groups records by identity key and keeps one survivor per
// group. A blank trimmed key identifies nobody, so such records never form
// a group and pass through unarchived; the missing-field penalty already
// covers them. Survivors and archived losers are returned in first-seen
// group order so the result is stable for a given input. Archived records
// keep their original field values and are tagged for the audit trail.
func Deduplicate(batch []domain.Record) (survivors, archived []domain.Record) {
	index := make(map[string]int, len(batch))
	var groups [][]domain.Record

	for _, rec := range batch {
		key := strings.TrimSpace(rec.EmployeeID)
		if key == "" {
			groups = append(groups, []domain.Record{rec})
			continue
		}
		i, seen := index[key]
		if !seen {
			i = len(groups)
			index[key] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], rec)
	}

	survivors = make([]domain.Record, 0, len(groups))
	for _, group := range groups {
		if len(group) == 1 {
			survivors = append(survivors, group[0])
			continue
		}

		sort.SliceStable(group, func(i, j int) bool {
			return compare(group[i], group[j]) < 0
		})

		survivors = append(survivors, group[0])
		for _, loser := range group[1:] {
			loser.Resolution = &domain.Resolution{
				Action:     domain.ActionDedupe,
				Reason:     "duplicate identity key, superseded by higher-ranked record",
				Confidence: 0.85,
			}
			archived = append(archived, loser)
		}
	}
	return survivors, archived
}
