package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGenerateFormat(t *testing.T) {
	gen := NewOrderNumberGenerator(newFakeOrderRepo())
	gen.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }

	number, err := gen.Generate(nil)
	require.NoError(t, err)

	assert.Regexp(t, `^ORD-[0-9A-Z]{6}-20250615$`, number)
}

// collidingOrderRepo reports the first candidate as taken.
type collidingOrderRepo struct {
	*fakeOrderRepo
	checks int
}

func (r *collidingOrderRepo) ExistsByNumber(tx *gorm.DB, number string) (bool, error) {
	r.checks++
	return r.checks == 1, nil
}

func TestGenerateRetriesOnCollision(t *testing.T) {
	repo := &collidingOrderRepo{fakeOrderRepo: newFakeOrderRepo()}
	gen := NewOrderNumberGenerator(repo)

	number, err := gen.Generate(nil)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.checks)
	assert.Regexp(t, orderNumberPattern, number)
}

func TestRandomToken(t *testing.T) {
	token := randomToken(orderNumberTokenLen)
	assert.Len(t, token, orderNumberTokenLen)
	for _, char := range token {
		assert.True(t, strings.ContainsRune(orderNumberCharset, char), "unexpected char %q", char)
	}
}
