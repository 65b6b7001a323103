package objstore

// Settings is an order-preserving list of configuration key/value pairs.
//
// The C boundary delivers configuration as parallel key/value arrays, so the
// pair order is kept as given. Lookup is by key; when a key appears more
// than once the last occurrence wins.
type Settings struct {
	pairs []settingPair
}

type settingPair struct {
	key, value string
}

// NewSettings builds Settings from alternating key, value arguments.
// An odd trailing key is ignored.
func NewSettings(kv ...string) Settings {
	s := Settings{}
	for i := 0; i+1 < len(kv); i += 2 {
		s.pairs = append(s.pairs, settingPair{key: kv[i], value: kv[i+1]})
	}
	return s
}

// SettingsFromPairs builds Settings from parallel key and value slices,
// pairing keys[i] with values[i]. Extra entries in the longer slice are
// ignored.
func SettingsFromPairs(keys, values []string) Settings {
	n := len(keys)
	if len(values) < n {
		n = len(values)
	}
	s := Settings{pairs: make([]settingPair, 0, n)}
	for i := 0; i < n; i++ {
		s.pairs = append(s.pairs, settingPair{key: keys[i], value: values[i]})
	}
	return s
}

// Get returns the value for key and whether it was present. Duplicate keys
// resolve to the last occurrence.
func (s Settings) Get(key string) (string, bool) {
	for i := len(s.pairs) - 1; i >= 0; i-- {
		if s.pairs[i].key == key {
			return s.pairs[i].value, true
		}
	}
	return "", false
}

// Value returns the value for key, or "" if absent.
func (s Settings) Value(key string) string {
	v, _ := s.Get(key)
	return v
}

// Len returns the number of pairs, duplicates included.
func (s Settings) Len() int { return len(s.pairs) }
