package dedupe

// Package dedupe provides the shared singleflight group used to collapse
// concurrent Wikidata resolutions. Submissions for the same normalized name
// (possibly from different game sessions) share a single in-flight lookup
// instead of issuing duplicate requests against the knowledge base.

import "golang.org/x/sync/singleflight"

// ResolveGroup deduplicates entity resolutions keyed by the normalized
// submitted name (e.g. "Marie_Curie").
var ResolveGroup singleflight.Group
