package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationID_OrderIndependent(t *testing.T) {
	a := "0b9dca7c-3a86-4e33-a768-5418d0c2a111"
	b := "f4a1b2c3-0000-4e33-a768-5418d0c2a222"

	assert.Equal(t, ConversationID(a, b), ConversationID(b, a))
}

func TestConversationID_DistinctPairs(t *testing.T) {
	a := "0b9dca7c-3a86-4e33-a768-5418d0c2a111"
	b := "f4a1b2c3-0000-4e33-a768-5418d0c2a222"
	c := "a9999999-3a86-4e33-a768-5418d0c2a333"

	assert.NotEqual(t, ConversationID(a, b), ConversationID(a, c))
	assert.NotEqual(t, ConversationID(a, c), ConversationID(b, c))
}

func TestConversationID_SortedConcatenation(t *testing.T) {
	assert.Equal(t, "alpha:beta", ConversationID("beta", "alpha"))
	assert.Equal(t, "alpha:beta", ConversationID("alpha", "beta"))
}
