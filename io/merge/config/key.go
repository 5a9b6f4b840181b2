package config

import "strings"

//Key represents ON predicate column set
type Key struct {
	Columns []string
}

//KeyFn overrides default key columns
type KeyFn func(key *Key)

//Column appends columns, case insensitive duplicates are skipped
func (k *Key) Column(names ...string) *Key {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || k.Has(name) {
			continue
		}
		k.Columns = append(k.Columns, name)
	}
	return k
}

//Has returns true if column is part of key
func (k *Key) Has(name string) bool {
	for _, candidate := range k.Columns {
		if strings.EqualFold(candidate, name) {
			return true
		}
	}
	return false
}
