package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierSatisfies(t *testing.T) {
	assert.True(t, TierPro.Satisfies(TierScout))
	assert.False(t, TierFree.Satisfies(TierScout))
	assert.True(t, TierClub.Satisfies(TierClub))
	assert.True(t, TierScout.Satisfies(TierFree))

	for _, tier := range Tiers() {
		assert.True(t, tier.Satisfies(tier), string(tier))
	}
}

func TestTierUnknown(t *testing.T) {
	assert.Equal(t, -1, Tier("gold").Order())
	assert.True(t, TierFree.Satisfies(Tier("gold")))
	assert.False(t, Tier("gold").Satisfies(TierFree))

	_, err := ParseTier("gold")
	assert.Error(t, err)

	tier, err := ParseTier("pro")
	assert.NoError(t, err)
	assert.Equal(t, TierPro, tier)
}
