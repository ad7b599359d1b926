package core

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Params holds the key/value records of one metadata block. Values are kept
// in record order; a repeated key accumulates all of its values.
type Params map[string][]string

// recordPattern matches one <KEY:VALUE> record. Keys are non-empty and
// neither side may contain angle brackets or colons.
var recordPattern = regexp.MustCompile(`<([^:<>]+):([^:<>]*)>`)

// ExtractParams parses the <KEY:VALUE> record syntax of a metadata block.
// Bytes outside records are ignored, matching device behavior.
func ExtractParams(block []byte) Params {
	params := make(Params)
	for _, m := range recordPattern.FindAllSubmatch(block, -1) {
		key, value := string(m[1]), string(m[2])
		params[key] = append(params[key], value)
	}
	return params
}

// Has reports whether at least one record with the given key exists.
func (p Params) Has(key string) bool {
	return len(p[key]) > 0
}

// Get returns the first value recorded for key, or "" if absent.
func (p Params) Get(key string) string {
	if v := p[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// All returns every value recorded for key, in record order.
func (p Params) All(key string) []string {
	return p[key]
}

// Int64 parses the first value of key as a decimal integer. A missing key
// or an unparsable value fails with ErrMalformedContainer so that schema
// violations surface at parse time, not first use.
func (p Params) Int64(key string) (int64, error) {
	if !p.Has(key) {
		return 0, fmt.Errorf("%w: missing required key %q", ErrMalformedContainer, key)
	}
	n, err := strconv.ParseInt(p.Get(key), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: key %q is not an address: %q", ErrMalformedContainer, key, p.Get(key))
	}
	return n, nil
}

// PrefixKeys returns the keys starting with prefix, sorted. The footer
// indexes page blocks under PAGE-prefixed keys (PAGE1, PAGE2, ...); sorting
// by the numeric suffix preserves page order.
func (p Params) PrefixKeys(prefix string) []string {
	var keys []string
	for k := range p {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(strings.TrimPrefix(keys[i], prefix))
		b, errB := strconv.Atoi(strings.TrimPrefix(keys[j], prefix))
		if errA != nil || errB != nil {
			return keys[i] < keys[j]
		}
		return a < b
	})
	return keys
}
