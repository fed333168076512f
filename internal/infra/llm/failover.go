package llm

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/batasnatin/lexgate/internal/infra/eventbus"
)

// Attempt records one failed provider try, in order.
type Attempt struct {
	Provider string
	Reason   string
}

// AllFailedError is the terminal orchestration failure. It carries the
// ordered per-provider reasons for logs and the request log; callers must
// never pass this detail through to a client response.
type AllFailedError struct {
	Attempts []Attempt
}

func (e *AllFailedError) Error() string {
	reasons := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		reasons[i] = a.Provider + ": " + a.Reason
	}
	return "all providers failed: " + strings.Join(reasons, "; ")
}

// AcceptFunc lets a caller reject an otherwise-successful result so the
// orchestrator moves on to the next provider. The suggestions flow uses this
// to treat a parseable-but-empty response as a failure. A nil AcceptFunc
// accepts every success.
type AcceptFunc func(*Result) error

// Failover drives providers strictly in priority order. Attempts are
// sequential, never parallel: speculative calls to paid upstreams would
// multiply cost on every request, and sequential order keeps the primary
// provider's answer deterministically preferred.
type Failover struct {
	providers []Provider
	bus       *eventbus.Bus
}

// NewFailover creates an orchestrator over providers in priority order.
// bus may be nil; attempt events are then not published.
func NewFailover(providers []Provider, bus *eventbus.Bus) *Failover {
	return &Failover{providers: providers, bus: bus}
}

// Execute tries each provider in order and returns the first success.
func (f *Failover) Execute(ctx context.Context, userID, endpoint string, inv Invocation) (*Result, error) {
	return f.ExecuteWith(ctx, userID, endpoint, inv, nil)
}

// ExecuteWith is Execute with an acceptance hook applied to each success.
//
// A provider timeout does not end the request: as long as the caller's own
// context is still live the next provider is attempted, and the outer request
// deadline remains the final authority.
func (f *Failover) ExecuteWith(ctx context.Context, userID, endpoint string, inv Invocation, accept AcceptFunc) (*Result, error) {
	attempts := make([]Attempt, 0, len(f.providers))

	for _, p := range f.providers {
		if ctx.Err() != nil {
			attempts = append(attempts, Attempt{Provider: p.Name(), Reason: "request deadline elapsed: " + ctx.Err().Error()})
			break
		}

		result, err := p.Invoke(ctx, inv)
		if err != nil {
			reason := err.Error()
			attempts = append(attempts, Attempt{Provider: p.Name(), Reason: reason})
			f.publish(userID, endpoint, p.Name(), attemptOutcome(err), reason)
			log.Printf("failover: provider %s failed: %v", p.Name(), err)
			continue
		}

		if accept != nil {
			if rejectErr := accept(result); rejectErr != nil {
				attempts = append(attempts, Attempt{Provider: p.Name(), Reason: rejectErr.Error()})
				f.publish(userID, endpoint, p.Name(), eventbus.OutcomeRejected, rejectErr.Error())
				log.Printf("failover: provider %s result rejected: %v", p.Name(), rejectErr)
				continue
			}
		}

		f.publish(userID, endpoint, p.Name(), eventbus.OutcomeSuccess, "")
		return result, nil
	}

	return nil, &AllFailedError{Attempts: attempts}
}

func (f *Failover) publish(userID, endpoint, provider, outcome, detail string) {
	if f.bus == nil {
		return
	}
	f.bus.Publish(eventbus.TopicProviderAttempt, eventbus.ProviderAttempt{
		UserID:   userID,
		Endpoint: endpoint,
		Provider: provider,
		Outcome:  outcome,
		Detail:   detail,
	})
}

func attemptOutcome(err error) string {
	if errors.Is(err, ErrNotConfigured) {
		return eventbus.OutcomeNotConfigured
	}
	return eventbus.OutcomeFailure
}
