package installer

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"webup/stackup/domain"
)

type fakeRunner struct {
	mu       sync.Mutex
	commands []domain.Command
	stdins   map[string]string
	handle   func(cmd domain.Command) (string, error)
}

func (r *fakeRunner) Run(ctx context.Context, cmd domain.Command) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cmd.Stdin != nil {
		content, _ := io.ReadAll(cmd.Stdin)
		if r.stdins == nil {
			r.stdins = map[string]string{}
		}
		r.stdins[cmd.String()] = string(content)
	}
	r.commands = append(r.commands, cmd)

	if r.handle != nil {
		return r.handle(cmd)
	}
	return "", nil
}

func (r *fakeRunner) names() []string {
	names := []string{}
	for _, cmd := range r.commands {
		names = append(names, cmd.String())
	}
	return names
}

type fakeAsker struct {
	answers []string
}

func (a *fakeAsker) Ask(message string) (string, error) {
	if len(a.answers) == 0 {
		return "", io.EOF
	}
	answer := a.answers[0]
	a.answers = a.answers[1:]
	return answer, nil
}

func (a *fakeAsker) Confirm(message string, defaultAnswer bool) bool {
	return defaultAnswer
}

type fakeSystem struct {
	info   domain.OSInfo
	memory uint64
}

func (s fakeSystem) OSRelease() (domain.OSInfo, error) { return s.info, nil }
func (s fakeSystem) TotalMemory() (uint64, error)      { return s.memory, nil }

// fakeCloner lays down an application holding only its environment template.
type fakeCloner struct {
	template string
	cloned   []string
}

func (c *fakeCloner) Clone(ctx context.Context, repo domain.Repository, dir string) error {
	c.cloned = append(c.cloned, repo.URL)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if c.template == "" {
		return nil
	}
	return os.WriteFile(filepath.Join(dir, ".env.example"), []byte(c.template), 0644)
}

type fakeProbe struct {
	readyAfter int
	calls      int
}

func (p *fakeProbe) Ready(ctx context.Context) (bool, string, error) {
	p.calls++
	return p.calls >= p.readyAfter, "app (starting)", nil
}

type sleepRecorder struct {
	delays []time.Duration
}

func (s *sleepRecorder) Sleep(ctx context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return nil
}

func binaryNotFound(string) (string, error) {
	return "", os.ErrNotExist
}
