// Package keywords serves named keyword lists from files embedded in the
// binary. Lists are flat text, one keyword per line; blank lines and lines
// starting with "#" are ignored.
package keywords

import (
	"bufio"
	"embed"
	"fmt"
	"strings"
	"sync"
)

//go:embed resources
var resources embed.FS

// Source loads keyword lists by key, where the key is the file name under
// the embedded resources directory ("table.drop_options.txt"). Parsed
// lists are cached; Source is safe for concurrent use.
type Source struct {
	mu    sync.RWMutex
	cache map[string][]string
}

// NewSource creates an empty-cached source over the embedded resources.
func NewSource() *Source {
	return &Source{cache: make(map[string][]string)}
}

// Keywords returns the list stored under key. Unknown keys are an error so
// callers can distinguish a missing list from an empty one.
func (s *Source) Keywords(key string) ([]string, error) {
	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	f, err := resources.Open("resources/" + key)
	if err != nil {
		return nil, fmt.Errorf("keyword list %q: %w", key, err)
	}
	defer f.Close()

	var words []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("keyword list %q: %w", key, err)
	}

	s.mu.Lock()
	s.cache[key] = words
	s.mu.Unlock()
	return words, nil
}
