package lang

import (
	"bytes"
	"sort"
)

func hashString(m *Value) string {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, key := range SortedKeys(m) {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(key)
		buf.WriteString(": ")
		buf.WriteString(m.Map[key].String())
	}
	buf.WriteString("}")
	return buf.String()
}

// SortedKeys returns the keys of hash m in lexical order.
func SortedKeys(m *Value) []string {
	keys := make([]string, 0, len(m.Map))
	for k := range m.Map {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HashGet returns the value stored under key in m.
func HashGet(m *Value, key string) (*Value, bool) {
	v, ok := m.Map[key]
	return v, ok
}

// HashWith returns a copy of hash m that additionally maps key to val.  The
// original hash is not modified.
func HashWith(m *Value, key string, val *Value) *Value {
	cp := make(map[string]*Value, len(m.Map)+1)
	for k, v := range m.Map {
		cp[k] = v
	}
	cp[key] = val
	return Hash(cp)
}
