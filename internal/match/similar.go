package match

import (
	"regexp"
	"strings"
)

const (
	// ArtistRatioThreshold is the minimum sequence-similarity ratio (strict >)
	// for two normalized artist names to be considered the same artist.
	ArtistRatioThreshold = 0.8

	// TitleRatioThreshold is the minimum sequence-similarity ratio (strict >)
	// for two titles to be considered the same track.
	TitleRatioThreshold = 0.9
)

// artistSeparators splits a display artist field like "Drake, Wizkid & Kyla".
var artistSeparators = regexp.MustCompile(`[,&]`)

// SplitArtists splits a comma/ampersand-delimited artist field into
// candidate artist names. Pieces are not trimmed; Normalize handles spacing.
func SplitArtists(field string) []string {
	return artistSeparators.Split(field, -1)
}

// Ratio computes the similarity of two strings exactly as Python's
// difflib.SequenceMatcher.ratio does: 2*M/T, where M is the total number of
// matched characters found by greedily taking the longest matching block and
// recursing into the left and right remainders, and T is the combined length.
//
// The thresholds used by the engine were tuned against this algorithm, so a
// generic edit-distance metric is not an acceptable substitute. Unlike
// difflib, two empty strings score 0 here so that vacuous inputs never clear
// a threshold.
func Ratio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 0
	}

	m := newSequenceMatcher(ra, rb)
	matched := m.matchedSize(0, len(ra), 0, len(rb))
	return 2 * float64(matched) / float64(total)
}

// TitleSimilarity computes the normalized-title similarity of two raw titles.
func TitleSimilarity(a, b string) float64 {
	return Ratio(Normalize(a), Normalize(b))
}

// ArtistsMatch reports whether any candidate artist in the external display
// field matches the library artist: substring containment in either direction
// on the normalized forms, or ratio above ArtistRatioThreshold. An empty
// library artist never matches.
func ArtistsMatch(externalField, libraryArtist string) bool {
	if libraryArtist == "" {
		return false
	}

	normLibrary := Normalize(libraryArtist)
	for _, candidate := range SplitArtists(externalField) {
		normCandidate := Normalize(candidate)
		if strings.Contains(normCandidate, normLibrary) || strings.Contains(normLibrary, normCandidate) {
			return true
		}
		if Ratio(normLibrary, normCandidate) > ArtistRatioThreshold {
			return true
		}
	}

	return false
}

// sequenceMatcher carries the rune sequences and the position index of the
// second sequence used by the longest-matching-block search.
type sequenceMatcher struct {
	a   []rune
	b   []rune
	b2j map[rune][]int
}

func newSequenceMatcher(a, b []rune) *sequenceMatcher {
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}
	return &sequenceMatcher{a: a, b: b, b2j: b2j}
}

// longestMatch finds the longest block of equal runes within a[alo:ahi] and
// b[blo:bhi]. Ties resolve to the earliest position in a, then in b, matching
// difflib's find_longest_match.
func (m *sequenceMatcher) longestMatch(alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo

	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}

	return besti, bestj, bestsize
}

// matchedSize returns the total number of matched runes between a[alo:ahi]
// and b[blo:bhi]: the longest matching block plus the matches found by
// recursing into the unmatched left and right remainders.
func (m *sequenceMatcher) matchedSize(alo, ahi, blo, bhi int) int {
	if alo >= ahi || blo >= bhi {
		return 0
	}

	i, j, size := m.longestMatch(alo, ahi, blo, bhi)
	if size == 0 {
		return 0
	}

	return size + m.matchedSize(alo, i, blo, j) + m.matchedSize(i+size, ahi, j+size, bhi)
}
