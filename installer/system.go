package installer

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/mackerelio/go-osstat/memory"
	"github.com/pkg/errors"

	"webup/stackup/domain"
)

const osReleasePath = "/etc/os-release"

// SystemInfo describes the host the stack is installed on.
type SystemInfo interface {
	OSRelease() (domain.OSInfo, error)
	// TotalMemory returns the physical memory in bytes
	TotalMemory() (uint64, error)
}

type HostSystem struct{}

func (HostSystem) OSRelease() (domain.OSInfo, error) {
	file, err := os.Open(osReleasePath)
	if err != nil {
		return domain.OSInfo{}, errors.Wrap(err, "unable to detect the operating system")
	}
	defer file.Close()

	return ParseOSRelease(file)
}

func (HostSystem) TotalMemory() (uint64, error) {
	stats, err := memory.Get()
	if err != nil {
		return 0, errors.Wrap(err, "unable to read the memory statistics")
	}
	return stats.Total, nil
}

// ParseOSRelease reads the ID and VERSION_ID fields of an os-release file.
func ParseOSRelease(r io.Reader) (domain.OSInfo, error) {
	info := domain.OSInfo{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"'`)

		switch key {
		case "ID":
			info.ID = value
		case "VERSION_ID":
			info.Version = value
		}
	}
	if err := scanner.Err(); err != nil {
		return info, errors.WithStack(err)
	}
	if info.ID == "" {
		return info, errors.New("no ID found in os-release")
	}

	return info, nil
}
