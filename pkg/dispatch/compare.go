package dispatch

import (
	"context"
	"strings"

	"github.com/adrianliechti/docsmith/pkg/backend"

	"golang.org/x/sync/errgroup"
)

// Outcome is one backend's result in a comparison run. Exactly one of
// Document and Err is set.
type Outcome struct {
	Backend string

	Document *backend.Document
	Err      error
}

type Similarity struct {
	A, B string

	// Score is the token overlap ratio between both outputs, 0 to 1.
	Score float64
}

// Comparison collects per-backend outcomes and pairwise similarity scores
// for the successful ones.
type Comparison struct {
	Outcomes []Outcome

	Similarities []Similarity
}

// Compare runs the same document through the named backends concurrently
// and collects every outcome. Individual failures are recorded, not fatal:
// only an invalid request or an unknown backend name fails the whole call.
// Intended for validating backends against each other, not for production
// parsing.
func (e *Engine) Compare(ctx context.Context, req Request, names ...string) (*Comparison, error) {
	if _, err := readRequest(req); err != nil {
		return nil, err
	}

	if len(names) == 0 {
		for _, d := range e.registry.Available(ctx) {
			names = append(names, d.Name)
		}
	}

	for _, name := range names {
		if _, err := e.registry.Resolve(ctx, name); err != nil {
			if backend.KindOf(err) == backend.ErrorUnknownBackend {
				return nil, err
			}
		}
	}

	outcomes := make([]Outcome, len(names))

	var group errgroup.Group

	for i, name := range names {
		req := req
		req.Backend = name

		group.Go(func() error {
			document, err := e.Parse(ctx, req)

			outcomes[i] = Outcome{
				Backend: name,

				Document: document,
				Err:      err,
			}

			return nil
		})
	}

	group.Wait()

	result := &Comparison{
		Outcomes: outcomes,
	}

	for i := range outcomes {
		for j := i + 1; j < len(outcomes); j++ {
			if outcomes[i].Err != nil || outcomes[j].Err != nil {
				continue
			}

			result.Similarities = append(result.Similarities, Similarity{
				A: outcomes[i].Backend,
				B: outcomes[j].Backend,

				Score: overlap(outcomes[i].Document.Text, outcomes[j].Document.Text),
			})
		}
	}

	return result, nil
}

// overlap computes the token overlap ratio (Jaccard index over lowercased
// words) between two texts.
func overlap(a, b string) float64 {
	tokensA := tokenize(a)
	tokensB := tokenize(b)

	if len(tokensA) == 0 && len(tokensB) == 0 {
		return 1
	}

	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	intersection := 0

	for token := range tokensA {
		if _, ok := tokensB[token]; ok {
			intersection++
		}
	}

	union := len(tokensA) + len(tokensB) - intersection

	return float64(intersection) / float64(union)
}

func tokenize(text string) map[string]struct{} {
	result := map[string]struct{}{}

	for _, field := range strings.Fields(strings.ToLower(text)) {
		result[field] = struct{}{}
	}

	return result
}
