package class

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMembershipTransitions(t *testing.T) {
	c := Class{Owners: []string{"o1"}, Members: []string{"m1"}}

	joined := WithMembers(c, "m2", "m1")
	assert.Equal(t, []string{"m1", "m2"}, joined.Members)
	assert.Equal(t, []string{"m1"}, c.Members)

	left := WithoutMembers(joined, "m1")
	assert.Equal(t, []string{"m2"}, left.Members)
	assert.Equal(t, []string{"m1", "m2"}, joined.Members)

	promoted := WithOwners(joined, "m2")
	assert.Equal(t, []string{"o1", "m2"}, promoted.Owners)
	assert.Equal(t, []string{"m1"}, promoted.Members)

	demoted := WithoutOwners(promoted, "m2")
	assert.Equal(t, []string{"o1"}, demoted.Owners)
	assert.False(t, demoted.IsOwner("m2"))
	assert.False(t, demoted.IsMember("m2"))
}

func TestParticipants(t *testing.T) {
	c := &Class{Owners: []string{"a", "b"}, Members: []string{"c"}}
	assert.Equal(t, []string{"a", "b", "c"}, c.Participants())
	assert.True(t, c.IsOwner("a"))
	assert.True(t, c.IsMember("c"))
	assert.False(t, c.IsMember("a"))
}
