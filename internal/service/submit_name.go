package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lndk/hundred-names/internal/constants"
	"github.com/lndk/hundred-names/internal/dedupe"
	"github.com/lndk/hundred-names/internal/game"
	"github.com/lndk/hundred-names/internal/logging"
	"github.com/lndk/hundred-names/internal/namenorm"
	"github.com/lndk/hundred-names/internal/similarity"
	"github.com/lndk/hundred-names/internal/wikidata"
)

// ErrEmptyName rejects submissions that are empty after trimming; the
// pipeline never starts for them.
var ErrEmptyName = errors.New("submitted name is empty")

// Resolver turns a normalized name into a classified person. The minimal
// interface keeps tests free of network plumbing.
type Resolver interface {
	Resolve(ctx context.Context, normalizedName string) (game.Person, error)
}

// SubmitName runs one submission through the full pipeline:
// normalize, duplicate-check, resolve, classify, admit-or-reject.
//
// The duplicate check runs against the rosters as of pipeline start; a
// second check inside Session.Admit re-validates against the rosters at
// admission time, closing the race where two distinct submissions for the
// same entity resolve concurrently. The normalized name is tracked as
// pending for the pipeline's whole duration and released on both outcomes.
func SubmitName(ctx context.Context, s *game.Session, resolver Resolver, matcher *similarity.Matcher, raw string) (game.Person, error) {
	if strings.TrimSpace(raw) == "" {
		return game.Person{}, ErrEmptyName
	}
	normalized := namenorm.Normalize(raw)
	if normalized == "" {
		return game.Person{}, ErrEmptyName
	}

	epoch, accepted, err := s.BeginSubmission(normalized)
	if err != nil {
		return game.Person{}, err
	}
	defer s.EndSubmission(epoch, normalized)

	if matcher.IsDuplicate(normalized, "", accepted) {
		return game.Person{}, fmt.Errorf("%w: %s", game.ErrDuplicate, normalized)
	}

	person, err := resolve(ctx, resolver, normalized)
	if err != nil {
		return game.Person{}, err
	}

	admitted, err := s.Admit(epoch, person, func(current []game.Person) bool {
		return matcher.IsDuplicate(normalized, person.WikidataID, current)
	})
	if err != nil {
		if errors.Is(err, game.ErrStaleEpoch) {
			// The session was reset while this resolution was in flight;
			// discard silently instead of mutating the fresh session.
			logging.Info("discarded stale resolution", logging.Fields{
				constants.LogFieldGameCode: s.Code(),
				constants.LogFieldName:     normalized,
				constants.LogFieldEpoch:    epoch,
			})
		}
		return game.Person{}, err
	}

	logging.Info("submission admitted", logging.Fields{
		constants.LogFieldGameCode: s.Code(),
		constants.LogFieldName:     admitted.Name,
		constants.LogFieldGender:   admitted.Gender,
		constants.LogFieldEntityID: admitted.WikidataID,
	})
	return admitted, nil
}

// resolve collapses concurrent lookups for the same normalized name into a
// single knowledge-base resolution shared by all waiters. The flight runs on
// a context detached from the first caller's cancellation: later waiters
// share its result, so one caller hanging up must not fail all of them. The
// resolver's own HTTP timeout bounds the detached request, and each waiter
// still honors its own context in the select below.
func resolve(ctx context.Context, resolver Resolver, normalized string) (game.Person, error) {
	flightCtx := context.WithoutCancel(ctx)
	ch := dedupe.ResolveGroup.DoChan(normalized, func() (interface{}, error) {
		return resolver.Resolve(flightCtx, normalized)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return game.Person{}, res.Err
		}
		return res.Val.(game.Person), nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return game.Person{}, fmt.Errorf("%w: %v", wikidata.ErrTimeout, ctx.Err())
		}
		return game.Person{}, ctx.Err()
	}
}
