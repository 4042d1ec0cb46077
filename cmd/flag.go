package cmd

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// headerFlag represents a flag for setting HTTP headers
// Any repeats will not override. They will append.
//
// format: a=1,b=2 or "A: 1"
//
type headerFlag struct {
	value   *http.Header
	changed bool
}

func newHeaderFlag(h *http.Header) *headerFlag {
	*h = make(http.Header)
	return &headerFlag{value: h}
}

func (f *headerFlag) String() string {
	if f.value == nil || len(*f.value) == 0 {
		return ""
	}

	keys := make([]string, 0, len(*f.value))
	for k := range *f.value {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		for _, v := range (*f.value)[k] {
			pairs = append(pairs, k+"="+v)
		}
	}
	return strings.Join(pairs, ",")
}

func (*headerFlag) Type() string { return "key=value" }

func (f *headerFlag) Set(val string) error {
	ss := []string{val}
	if !isHeaderLine(val) {
		var err error
		if ss, err = splitPairs(val); err != nil {
			return err
		}
	}

	out := make(http.Header, len(ss))
	for _, pair := range ss {
		k, v, err := splitHeader(pair)
		if err != nil {
			return err
		}
		out.Add(k, v)
	}

	if !f.changed {
		*f.value = out
	} else {
		for k, v := range out {
			for _, s := range v {
				f.value.Add(k, s)
			}
		}
	}
	f.changed = true
	return nil
}

// isHeaderLine reports whether val is a single "Key: Value" header line,
// whose value may itself contain commas.
//
func isHeaderLine(val string) bool {
	sep := strings.IndexAny(val, "=:")
	return sep > 0 && val[sep] == ':'
}

// splitHeader splits either a key=value pair or a "Key: Value" header line.
func splitHeader(pair string) (string, string, error) {
	sep := strings.IndexAny(pair, "=:")
	if sep <= 0 {
		return "", "", fmt.Errorf("%s must be formatted as key=value", pair)
	}

	k := strings.TrimSpace(pair[:sep])
	v := trimQuotes(strings.TrimSpace(pair[sep+1:]))
	return k, v, nil
}

// trimQuotes removes a single pair of surrounding double quotes.
func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// splitPairs splits a comma separated list of pairs, respecting quotes.
func splitPairs(val string) ([]string, error) {
	if strings.Count(val, "=")+strings.Count(val, ":") == 0 {
		return nil, fmt.Errorf("%s must be formatted as key=value", val)
	}
	if !strings.Contains(val, ",") {
		return []string{trimQuotes(val)}, nil
	}

	r := csv.NewReader(strings.NewReader(val))
	r.LazyQuotes = true
	return r.Read()
}

// varFlag represents a flag for setting front matter variables.
// Repeats are merged, with later values winning.
//
// format: a=1,b=2
//
type varFlag struct {
	value *map[string]string
}

func newVarFlag(m *map[string]string) *varFlag {
	*m = make(map[string]string)
	return &varFlag{value: m}
}

func (f *varFlag) String() string {
	if f.value == nil || len(*f.value) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(*f.value))
	for k, v := range *f.value {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

func (*varFlag) Type() string { return "key=value" }

func (f *varFlag) Set(val string) error {
	if !strings.Contains(val, "=") {
		return fmt.Errorf("%s must be formatted as key=value", val)
	}

	ss, err := splitPairs(val)
	if err != nil {
		return err
	}

	for _, pair := range ss {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 || kv[0] == "" {
			return fmt.Errorf("%s must be formatted as key=value", pair)
		}
		(*f.value)[strings.TrimSpace(kv[0])] = trimQuotes(kv[1])
	}
	return nil
}
