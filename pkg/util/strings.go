package util

import (
    "strconv"
    "strings"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
    if s == "" {
        return def
    }
    v, err := strconv.Atoi(strings.TrimSpace(s))
    if err != nil {
        return def
    }
    return v
}

// SplitList splits a comma separated list, dropping blanks around and between items.
func SplitList(s string) []string {
    var out []string
    for _, part := range strings.Split(s, ",") {
        if part = strings.TrimSpace(part); part != "" {
            out = append(out, part)
        }
    }
    return out
}
