// Package skiplist loads the word lists validators use to exempt known
// terms, from inline attributes and from dictionary files.
//
// Dictionary files hold one entry per line. Lines are trimmed and blank
// lines are ignored. Matching is exact.
package skiplist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tool-recommender-bot/redpen/pkg/validator"
)

const defaultCacheSize = 64

// List is an immutable set of exempt words. A nil *List is empty.
type List struct {
	words map[string]struct{}
}

// New returns a list containing words.
func New(words ...string) *List {
	l := &List{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			l.words[w] = struct{}{}
		}
	}
	return l
}

// Contains reports whether word is in the list.
func (l *List) Contains(word string) bool {
	if l == nil {
		return false
	}
	_, ok := l.words[word]
	return ok
}

// Len returns the number of entries.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.words)
}

// Words returns the entries in sorted order.
func (l *List) Words() []string {
	if l == nil {
		return nil
	}
	out := make([]string, 0, len(l.words))
	for w := range l.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Union returns a new list holding the entries of l and other.
func (l *List) Union(other *List) *List {
	out := &List{words: make(map[string]struct{}, l.Len()+other.Len())}
	for _, src := range []*List{l, other} {
		if src == nil {
			continue
		}
		for w := range src.words {
			out.words[w] = struct{}{}
		}
	}
	return out
}

// ParseInline parses a comma-separated attribute value.
func ParseInline(value string) *List {
	return New(strings.Split(value, ",")...)
}

// Parse reads one entry per line from r.
func Parse(r io.Reader) (*List, error) {
	l := &List{words: make(map[string]struct{})}
	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		if line = strings.TrimSpace(line); line != "" {
			l.words[line] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return l, nil
}

type cacheKey struct {
	path    string
	modTime int64
	size    int64
}

// Loader reads dictionary files and caches them by path and modification
// time, so a file edited between runs is read again.
type Loader struct {
	cache *lru.Cache[cacheKey, *List]
	mu    sync.Mutex
}

// NewLoader returns a loader caching up to size dictionaries.
func NewLoader(size int) *Loader {
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[cacheKey, *List](size)
	if err != nil {
		panic(fmt.Sprintf("skiplist: %v", err))
	}
	return &Loader{cache: cache}
}

// LoadFile reads the dictionary at path.
func (ld *Loader) LoadFile(path string) (*List, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	key := cacheKey{path: path, modTime: info.ModTime().UnixNano(), size: info.Size()}

	ld.mu.Lock()
	defer ld.mu.Unlock()
	if l, ok := ld.cache.Get(key); ok {
		return l, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	l, err := Parse(f)
	if err != nil {
		return nil, err
	}
	ld.cache.Add(key, l)
	return l, nil
}

// Load builds the skip list for a validator from the inline attribute
// listKey and the dictionary path attribute dictKey. Either may be absent.
// A dictionary that cannot be read yields a *validator.ResourceError.
func (ld *Loader) Load(cfg validator.Config, listKey, dictKey string) (*List, error) {
	list := New(cfg.Attributes.List(listKey)...)

	if !cfg.Attributes.Has(dictKey) {
		return list, nil
	}
	path := cfg.ResolvePath(strings.TrimSpace(cfg.Attributes[dictKey]))
	dict, err := ld.LoadFile(path)
	if err != nil {
		return nil, &validator.ResourceError{Validator: cfg.Name, Path: path, Err: err}
	}
	return list.Union(dict), nil
}

var defaultLoader = NewLoader(defaultCacheSize)

// Load uses the shared process-wide loader.
func Load(cfg validator.Config, listKey, dictKey string) (*List, error) {
	return defaultLoader.Load(cfg, listKey, dictKey)
}
