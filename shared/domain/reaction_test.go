package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDisjoint(t *testing.T, r ReactionSet) {
	t.Helper()
	for v := range r.Likes {
		assert.False(t, r.Dislikes.Has(v), "voter %s is in both sets", v)
	}
}

func TestReactionSetApply(t *testing.T) {
	voter := uuid.New()

	t.Run("Like then dislike switches polarity", func(t *testing.T) {
		r := NewReactionSet()

		assert.True(t, r.Apply(voter, Like))
		assert.True(t, r.Likes.Has(voter))
		assert.Equal(t, 1, r.LikeCount())

		assert.True(t, r.Apply(voter, Dislike))
		assert.False(t, r.Likes.Has(voter))
		assert.True(t, r.Dislikes.Has(voter))
		assert.Equal(t, 1, r.LikeCount()+r.DislikeCount(), "exactly one vote from the voter")
		assertDisjoint(t, r)
	})

	t.Run("Repeated like is idempotent", func(t *testing.T) {
		once := NewReactionSet()
		once.Apply(voter, Like)

		twice := NewReactionSet()
		twice.Apply(voter, Like)
		changed := twice.Apply(voter, Like)

		assert.False(t, changed)
		assert.Equal(t, once, twice)
	})

	t.Run("Repeated dislike is idempotent", func(t *testing.T) {
		r := NewReactionSet()
		r.Apply(voter, Dislike)
		assert.False(t, r.Apply(voter, Dislike))
		assert.Equal(t, 0, r.LikeCount())
		assert.Equal(t, 1, r.DislikeCount())
	})

	t.Run("Zero value sets are usable", func(t *testing.T) {
		var r ReactionSet
		assert.True(t, r.Apply(voter, Dislike))
		assert.True(t, r.Apply(voter, Like))
		assert.Equal(t, 1, r.LikeCount())
		assert.Equal(t, 0, r.DislikeCount())
	})

	t.Run("Voters are independent", func(t *testing.T) {
		other := uuid.New()
		r := NewReactionSet()
		r.Apply(voter, Like)
		r.Apply(other, Dislike)
		r.Apply(other, Like)

		assert.Equal(t, 2, r.LikeCount())
		assert.Equal(t, 0, r.DislikeCount())
		assertDisjoint(t, r)
	})
}

func TestReactionSetStaysDisjointUnderRandomSequences(t *testing.T) {
	voters := []UserId{uuid.New(), uuid.New(), uuid.New()}
	kinds := []ReactionKind{Like, Dislike}
	r := NewReactionSet()

	// deterministic walk over many interleavings
	for i := 0; i < 300; i++ {
		voter := voters[(i*7)%len(voters)]
		kind := kinds[(i*i+i/3)%len(kinds)]
		r.Apply(voter, kind)

		assertDisjoint(t, r)
		current, ok := r.Reaction(voter)
		require.True(t, ok)
		assert.Equal(t, kind, current)
		assert.LessOrEqual(t, r.LikeCount()+r.DislikeCount(), len(voters))
	}
}

func TestApplyReactionOnEntities(t *testing.T) {
	voter := uuid.New()
	thread := &Thread{Id: uuid.New(), ReactionSet: NewReactionSet()}
	comment := &Comment{Id: uuid.New(), ReactionSet: NewReactionSet()}

	for _, entity := range []Reactable{thread, comment} {
		ApplyReaction(entity, voter, Like)
		ApplyReaction(entity, voter, Dislike)
	}

	assert.True(t, thread.Dislikes.Has(voter))
	assert.False(t, thread.Likes.Has(voter))
	assert.True(t, comment.Dislikes.Has(voter))
	assert.False(t, comment.Likes.Has(voter))
}

func TestParseReactionKind(t *testing.T) {
	kind, err := ParseReactionKind("Like")
	require.NoError(t, err)
	assert.Equal(t, Like, kind)

	kind, err = ParseReactionKind("dislike")
	require.NoError(t, err)
	assert.Equal(t, Dislike, kind)

	_, err = ParseReactionKind("love")
	assert.Error(t, err)
}

func TestVoterSetJSON(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	set := NewVoterSet(a, b)

	data, err := json.Marshal(set)
	require.NoError(t, err)

	var decoded VoterSet
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, set, decoded)

	var strings []string
	require.NoError(t, json.Unmarshal(data, &strings))
	assert.IsNonDecreasing(t, strings)

	assert.Error(t, json.Unmarshal([]byte(`["not-a-uuid"]`), &decoded))
}

func TestVoterSetFromStrings(t *testing.T) {
	id := uuid.New()
	set, err := VoterSetFromStrings([]string{id.String(), id.String()})
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())
	assert.True(t, set.Has(id))

	empty, err := VoterSetFromStrings(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
}
