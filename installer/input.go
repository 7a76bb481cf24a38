package installer

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"webup/stackup/domain"
)

func (in *Installer) input(ctx context.Context, ictx *domain.InstallContext) error {
	var err error

	if ictx.Domain, err = in.collect(ctx, "Domain name", ictx.Domain); err != nil {
		return err
	}
	if ictx.Email, err = in.collect(ctx, "Admin email", ictx.Email); err != nil {
		return err
	}

	return nil
}

// collect asks for label until a non-empty answer is given or ctx is done.
func (in *Installer) collect(ctx context.Context, label string, preset string) (string, error) {
	value := strings.TrimSpace(preset)

	for value == "" {
		answer, err := in.ask(ctx, label)
		if err != nil {
			return "", domain.Fail(domain.KindInput, StepInput, errors.Wrapf(err, "unable to read the %s", strings.ToLower(label)))
		}

		value = strings.TrimSpace(answer)
		if value == "" {
			in.Logger.Warn(label + " cannot be empty")
		}
	}

	return value, nil
}

type answer struct {
	value string
	err   error
}

// ask returns as soon as ctx is done, a prompt blocked on the terminal is abandoned.
func (in *Installer) ask(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	done := make(chan answer, 1)
	go func() {
		value, err := in.Asker.Ask(label)
		done <- answer{value, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case a := <-done:
		return a.value, a.err
	}
}
