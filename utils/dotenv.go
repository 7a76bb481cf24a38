package utils

import (
	"bufio"
	"os"
	"strings"
)

// ReadDotEnv parses KEY=VALUE lines, skipping blanks and comments.
func ReadDotEnv(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	vars := map[string]string{}
	s := bufio.NewScanner(file)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		k := strings.TrimSpace(parts[0])
		v := strings.Trim(strings.TrimSpace(parts[1]), "\"")
		vars[k] = v
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return vars, nil
}

// SubstituteEnv replaces the value of every line starting with 'KEY=' for the
// given keys. Other lines, line endings included, are left untouched and keys
// missing from content are not added.
func SubstituteEnv(content []byte, values map[string]string) []byte {
	lines := strings.SplitAfter(string(content), "\n")

	var b strings.Builder
	b.Grow(len(content))
	for _, line := range lines {
		body := strings.TrimRight(line, "\r\n")
		ending := line[len(body):]

		key, _, found := strings.Cut(body, "=")
		if value, ok := values[key]; found && ok {
			body = key + "=" + value
		}
		b.WriteString(body)
		b.WriteString(ending)
	}
	return []byte(b.String())
}
