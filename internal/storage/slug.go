package storage

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const slugSuffixLength = 6

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Slugify lowercases the input and reduces it to hyphen-separated
// alphanumeric runs. Titles that slugify to fewer than three characters get
// a generated placeholder instead.
func Slugify(input string) string {
	var sb strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '\t' || r == '-':
			if !lastHyphen {
				sb.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	base := strings.TrimSuffix(sb.String(), "-")
	if len(base) <= 2 {
		return "job-" + strconv.FormatInt(time.Now().UnixMilli(), 36)
	}
	return base
}

// UniqueRoleSlug appends a random six-character base36 suffix so repeated
// submissions of the same role title never collide.
func UniqueRoleSlug(roleTitle string) string {
	suffix := make([]byte, slugSuffixLength)
	for i := range suffix {
		suffix[i] = base36Alphabet[rand.IntN(len(base36Alphabet))]
	}
	return Slugify(roleTitle) + "-" + string(suffix)
}
