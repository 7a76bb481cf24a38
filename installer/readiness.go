package installer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"webup/stackup/domain"
	"webup/stackup/helpers"
	"webup/stackup/utils"
)

// Probe tells whether every service of the stack accepts work.
// The returned detail names what is still pending.
type Probe interface {
	Ready(ctx context.Context) (bool, string, error)
}

// ComposeProbe inspects the containers of a compose project.
type ComposeProbe struct {
	Runner    domain.Runner
	Dir       string
	Inspector utils.ContainerInspector
}

func (p ComposeProbe) Ready(ctx context.Context) (bool, string, error) {
	ids, err := utils.GetContainerIDs(ctx, p.Runner, p.Dir)
	if err != nil {
		return false, "", err
	}
	if len(ids) == 0 {
		return false, "no container started", nil
	}

	pending := []string{}
	for _, id := range ids {
		state, err := p.Inspector.State(ctx, id)
		if err != nil {
			return false, "", err
		}
		if !state.Ready() {
			status := state.Status
			if state.Health != "" {
				status = state.Health
			}
			pending = append(pending, fmt.Sprintf("%s (%s)", state.Name, status))
		}
	}

	return len(pending) == 0, strings.Join(pending, ", "), nil
}

// WaitReady polls probe with an exponential backoff bounded by policy.
// Probe errors are retried, the engine may still be starting.
func WaitReady(ctx context.Context, probe Probe, policy domain.Readiness, sleep func(context.Context, time.Duration) error, log *helpers.Logger) error {
	delay := policy.InitialDelay
	var lastErr error
	var detail string

	for attempt := 1; attempt <= policy.Attempts; attempt++ {
		var ready bool
		ready, detail, lastErr = probe.Ready(ctx)
		if lastErr == nil && ready {
			return nil
		}
		if attempt == policy.Attempts {
			break
		}

		log.Info("Waiting for the services", zap.Int("attempt", attempt), zap.String("pending", detail), zap.Duration("retry_in", delay))
		if err := sleep(ctx, delay); err != nil {
			return errors.WithStack(err)
		}

		delay *= 2
		if policy.MaxDelay > 0 && delay > policy.MaxDelay {
			delay = policy.MaxDelay
		}
	}

	if lastErr != nil {
		return errors.Wrapf(lastErr, "services not ready after %d attempts", policy.Attempts)
	}
	return errors.Errorf("services not ready after %d attempts: %s", policy.Attempts, detail)
}
