package config

import (
	"fmt"
	"strings"
)

//MatchResult represents outcome of matching source row against target
type MatchResult int

const (
	Matched MatchResult = iota
	NotMatchedBySource
	NotMatchedByTarget
)

//MatchResults lists branches in statement order
var MatchResults = []MatchResult{Matched, NotMatchedBySource, NotMatchedByTarget}

func (r MatchResult) String() string {
	switch r {
	case Matched:
		return "matched"
	case NotMatchedBySource:
		return "notMatchedBySource"
	case NotMatchedByTarget:
		return "notMatchedByTarget"
	}
	return fmt.Sprintf("MatchResult(%d)", int(r))
}

//Clause returns WHEN clause
func (r MatchResult) Clause() string {
	switch r {
	case NotMatchedBySource:
		return "WHEN NOT MATCHED BY SOURCE"
	case NotMatchedByTarget:
		return "WHEN NOT MATCHED BY TARGET"
	}
	return "WHEN MATCHED"
}

//Allows returns true if action kind is valid for the branch
func (r MatchResult) Allows(kind Kind) bool {
	switch kind {
	case None:
		return true
	case Insert:
		return r == NotMatchedByTarget
	case Update:
		return r == Matched
	case Delete:
		return r == Matched || r == NotMatchedBySource
	}
	return false
}

//ParseKind parses action kind name
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return None, nil
	case "insert":
		return Insert, nil
	case "update":
		return Update, nil
	case "delete":
		return Delete, nil
	}
	return None, fmt.Errorf("unsupported action: %v", name)
}
