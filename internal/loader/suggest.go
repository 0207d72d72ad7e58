package loader

import (
	"errors"

	"github.com/hbollon/go-edlib"

	objerrors "github.com/standardbeagle/objstore/internal/errors"
	"github.com/standardbeagle/objstore/internal/objects"
)

// minSuggestionScore is the Jaro-Winkler similarity below which no
// suggestion is offered
const minSuggestionScore = 0.8

// suggester proposes the closest known name for an unresolved reference.
// Candidate lists are built lazily per kind from the finished store.
type suggester struct {
	store      *objects.Store
	candidates map[string][]string
}

func newSuggester(s *objects.Store) *suggester {
	return &suggester{store: s, candidates: make(map[string][]string)}
}

// annotate attaches a "did you mean" hint to err when it is an unresolved
// reference with a close match. It returns err unchanged otherwise.
func (sg *suggester) annotate(err error) error {
	var oe *objerrors.ObjectError
	if !errors.As(err, &oe) || oe.Type != objerrors.ErrorTypeUnresolvedReference || oe.Reference == "" {
		return err
	}
	if best := closest(oe.Reference, sg.namesOf(oe.RefKind)); best != "" {
		oe.WithSuggestion(best)
	}
	return err
}

func (sg *suggester) namesOf(kind string) []string {
	if names, ok := sg.candidates[kind]; ok {
		return names
	}

	var names []string
	s := sg.store
	switch kind {
	case objects.KindHost:
		names = collect(s.Hosts(), (*objects.Host).Name)
	case objects.KindService:
		names = collect(s.Services(), func(svc *objects.Service) string {
			return svc.HostName() + ";" + svc.Description()
		})
	case objects.KindHostGroup:
		names = collect(s.HostGroups(), (*objects.HostGroup).Name)
	case objects.KindServiceGroup:
		names = collect(s.ServiceGroups(), (*objects.ServiceGroup).Name)
	case objects.KindContactGroup:
		names = collect(s.ContactGroups(), (*objects.ContactGroup).Name)
	case objects.KindContact:
		names = collect(s.Contacts(), (*objects.Contact).Name)
	case objects.KindTimePeriod:
		names = collect(s.TimePeriods(), (*objects.TimePeriod).Name)
	case objects.KindCommand:
		names = collect(s.Commands(), (*objects.Command).Name)
	}
	sg.candidates[kind] = names
	return names
}

func collect[T any](r *objects.Registry[T], name func(*T) string) []string {
	out := make([]string, 0, r.Len())
	r.Range(func(_ int, item *T) bool {
		out = append(out, name(item))
		return true
	})
	return out
}

// closest returns the candidate most similar to ref, or "" when none scores
// at least minSuggestionScore
func closest(ref string, candidates []string) string {
	best, bestScore := "", float32(minSuggestionScore)
	for _, c := range candidates {
		if c == ref {
			continue
		}
		score, err := edlib.StringsSimilarity(ref, c, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if score >= bestScore && (best == "" || score > bestScore) {
			best, bestScore = c, score
		}
	}
	return best
}
