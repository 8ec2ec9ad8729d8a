// Package match implements the fuzzy matching engine that maps catalog
// tracks onto local library items.
//
// Matching is tiered: a cleaned-title search, a raw-title search, then an
// artist fallback over the full track list of matching artists. Every tier
// requires an exact or near-exact signal (artist match, >0.9 title
// similarity, exact normalized equality) so that a wrong track is never
// silently attached to a playlist; leaving a track unmatched is preferred.
package match
