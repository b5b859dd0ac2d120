package service

import (
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	referencePrefix     = "QT"
	referenceSuffixSize = 3
	base36Digits        = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// ReferencePattern matches generated quote references.
var ReferencePattern = regexp.MustCompile(`^QT-[0-9A-Z]+-[0-9A-Z]{3}$`)

// ReferenceGenerator builds quote references of the form
// QT-<base36 unix millis>-<3 random base36 chars>.
type ReferenceGenerator struct {
	now  func() time.Time
	intn func(n int) int
}

// NewReferenceGenerator returns a generator using the wall clock and the
// runtime's random source.
func NewReferenceGenerator() *ReferenceGenerator {
	return &ReferenceGenerator{now: time.Now, intn: rand.IntN}
}

// Next returns a new reference.
func (g *ReferenceGenerator) Next() string {
	ts := strings.ToUpper(strconv.FormatInt(g.now().UnixMilli(), 36))

	var b strings.Builder
	b.Grow(len(referencePrefix) + len(ts) + referenceSuffixSize + 2)
	b.WriteString(referencePrefix)
	b.WriteByte('-')
	b.WriteString(ts)
	b.WriteByte('-')
	for range referenceSuffixSize {
		b.WriteByte(base36Digits[g.intn(len(base36Digits))])
	}
	return b.String()
}
