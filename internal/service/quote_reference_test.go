package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReferenceGenerator(t *testing.T) {
	g := &ReferenceGenerator{
		now:  func() time.Time { return time.UnixMilli(1700000000000) },
		intn: func(n int) int { return n - 1 },
	}

	// 1700000000000 in base 36
	assert.Equal(t, "QT-LOYW3V28-ZZZ", g.Next())

	gen := NewReferenceGenerator()
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		ref := gen.Next()
		assert.Regexp(t, ReferencePattern, ref)
		seen[ref] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}
