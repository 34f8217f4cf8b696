package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threadboard/threadboard/shared/errors"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newThread() *Thread {
	return &Thread{Id: uuid.New(), AuthorId: uuid.New(), ReactionSet: NewReactionSet()}
}

func mustAttach(t *testing.T, thread *Thread, author UserId, parent *Comment, minute int) Comment {
	t.Helper()
	data := CommentCreationData{ThreadId: thread.Id, AuthorId: author, Content: "text"}
	if parent != nil {
		data.ParentId = &parent.Id
	}
	c, err := AttachComment(thread, data, parent, uuid.New(), epoch.Add(time.Duration(minute)*time.Minute))
	require.NoError(t, err)
	return c
}

func TestAttachComment(t *testing.T) {
	t.Run("Root comment", func(t *testing.T) {
		thread := newThread()
		author := uuid.New()

		c := mustAttach(t, thread, author, nil, 0)

		assert.True(t, c.IsRoot())
		assert.Equal(t, thread.Id, c.ThreadId)
		assert.Equal(t, author, c.AuthorId)
		assert.Equal(t, 0, c.LikeCount())
		assert.Equal(t, 0, c.DislikeCount())
		assert.False(t, c.Edited)
		assert.Equal(t, []CommentId{c.Id}, thread.CommentIds)
	})

	t.Run("Reply keeps creation order in thread", func(t *testing.T) {
		thread := newThread()
		root := mustAttach(t, thread, uuid.New(), nil, 0)
		reply := mustAttach(t, thread, uuid.New(), &root, 1)

		require.NotNil(t, reply.ParentId)
		assert.Equal(t, root.Id, *reply.ParentId)
		assert.Equal(t, []CommentId{root.Id, reply.Id}, thread.CommentIds)
	})

	t.Run("Unresolved parent", func(t *testing.T) {
		thread := newThread()
		missing := uuid.New()
		_, err := AttachComment(thread, CommentCreationData{ParentId: &missing}, nil, uuid.New(), epoch)
		assert.ErrorIs(t, err, errors.ErrInvalidParent)
		assert.Empty(t, thread.CommentIds)
	})

	t.Run("Parent from another thread", func(t *testing.T) {
		other := newThread()
		foreign := mustAttach(t, other, uuid.New(), nil, 0)

		thread := newThread()
		_, err := AttachComment(thread, CommentCreationData{ParentId: &foreign.Id}, &foreign, uuid.New(), epoch)
		assert.ErrorIs(t, err, errors.ErrInvalidParent)
		assert.Empty(t, thread.CommentIds)
	})

	t.Run("Resolved parent does not match requested id", func(t *testing.T) {
		thread := newThread()
		root := mustAttach(t, thread, uuid.New(), nil, 0)
		requested := uuid.New()
		_, err := AttachComment(thread, CommentCreationData{ParentId: &requested}, &root, uuid.New(), epoch)
		assert.ErrorIs(t, err, errors.ErrInvalidParent)
	})
}

func TestBuildTree(t *testing.T) {
	t.Run("Scenario B: one root with one child", func(t *testing.T) {
		thread := newThread()
		u1, u2 := uuid.New(), uuid.New()
		c1 := mustAttach(t, thread, u1, nil, 0)
		c2 := mustAttach(t, thread, u2, &c1, 1)

		roots := Forest(BuildTree([]Comment{c1, c2}))

		require.Len(t, roots, 1)
		assert.Equal(t, c1.Id, roots[0].Id)
		require.Len(t, roots[0].Replies, 1)
		assert.Equal(t, c2.Id, roots[0].Replies[0].Id)
		assert.Empty(t, roots[0].Replies[0].Replies)
	})

	t.Run("Scenario D: deleted parent promotes child", func(t *testing.T) {
		thread := newThread()
		c1 := mustAttach(t, thread, uuid.New(), nil, 0)
		c2 := mustAttach(t, thread, uuid.New(), &c1, 1)

		// c1 removed from the store
		roots := Forest(BuildTree([]Comment{c2}))

		require.Len(t, roots, 1)
		assert.Equal(t, c2.Id, roots[0].Id)
	})

	t.Run("Reply with the same timestamp as its parent", func(t *testing.T) {
		thread := newThread()
		parent := mustAttach(t, thread, uuid.New(), nil, 0)
		reply := mustAttach(t, thread, uuid.New(), &parent, 0)
		nested := mustAttach(t, thread, uuid.New(), &reply, 0)

		for _, input := range [][]Comment{
			{nested, reply, parent},
			{reply, parent, nested},
			{parent, nested, reply},
		} {
			roots := Forest(BuildTree(input))

			require.Len(t, roots, 1)
			assert.Equal(t, parent.Id, roots[0].Id)
			require.Len(t, roots[0].Replies, 1)
			assert.Equal(t, reply.Id, roots[0].Replies[0].Id)
			require.Len(t, roots[0].Replies[0].Replies, 1)
			assert.Equal(t, nested.Id, roots[0].Replies[0].Replies[0].Id)
		}
	})

	t.Run("Reply created before its parent still nests", func(t *testing.T) {
		parent := Comment{Id: uuid.New(), CreatedAt: epoch.Add(time.Minute)}
		reply := Comment{Id: uuid.New(), ParentId: &parent.Id, CreatedAt: epoch}

		roots := Forest(BuildTree([]Comment{reply, parent}))

		require.Len(t, roots, 1)
		assert.Equal(t, parent.Id, roots[0].Id)
		assert.Equal(t, 2, roots[0].Size())
	})

	t.Run("Parent from another thread is ignored", func(t *testing.T) {
		foreign := Comment{Id: uuid.New(), ThreadId: uuid.New(), CreatedAt: epoch}
		reply := Comment{Id: uuid.New(), ThreadId: uuid.New(), ParentId: &foreign.Id, CreatedAt: epoch.Add(time.Minute)}

		roots := Forest(BuildTree([]Comment{foreign, reply}))

		assert.Len(t, roots, 2)
	})

	t.Run("Self reference becomes a root", func(t *testing.T) {
		c := Comment{Id: uuid.New(), CreatedAt: epoch}
		c.ParentId = &c.Id

		roots := Forest(BuildTree([]Comment{c}))

		require.Len(t, roots, 1)
		assert.Empty(t, roots[0].Replies)
	})

	t.Run("Input order does not matter", func(t *testing.T) {
		thread := newThread()
		a := mustAttach(t, thread, uuid.New(), nil, 0)
		b := mustAttach(t, thread, uuid.New(), &a, 1)
		c := mustAttach(t, thread, uuid.New(), &b, 2)
		d := mustAttach(t, thread, uuid.New(), nil, 3)
		e := mustAttach(t, thread, uuid.New(), &a, 4)

		roots := Forest(BuildTree([]Comment{e, c, d, b, a}))

		require.Len(t, roots, 2)
		assert.Equal(t, a.Id, roots[0].Id)
		assert.Equal(t, d.Id, roots[1].Id)
		require.Len(t, roots[0].Replies, 2)
		assert.Equal(t, b.Id, roots[0].Replies[0].Id)
		assert.Equal(t, e.Id, roots[0].Replies[1].Id)
		require.Len(t, roots[0].Replies[0].Replies, 1)
		assert.Equal(t, c.Id, roots[0].Replies[0].Replies[0].Id)
	})

	t.Run("Every comment is reachable exactly once", func(t *testing.T) {
		thread := newThread()
		var comments []Comment
		var parent *Comment
		for i := 0; i < 20; i++ {
			c := mustAttach(t, thread, uuid.New(), parent, i)
			comments = append(comments, c)
			if i%3 == 0 {
				parent = nil
			} else {
				parent = &comments[len(comments)-1]
			}
		}
		// drop a few parents
		remaining := append([]Comment{}, comments[:5]...)
		remaining = append(remaining, comments[7:]...)

		seen := map[CommentId]int{}
		var walk func(n *CommentNode)
		walk = func(n *CommentNode) {
			seen[n.Id]++
			for child := range n.Children() {
				walk(child)
			}
		}
		total := 0
		for root := range BuildTree(remaining) {
			walk(root)
			total += root.Size()
		}

		assert.Equal(t, len(remaining), total)
		assert.Len(t, seen, len(remaining))
		for id, count := range seen {
			assert.Equal(t, 1, count, "comment %s visited more than once", id)
		}
	})

	t.Run("Sequence is restartable", func(t *testing.T) {
		thread := newThread()
		c1 := mustAttach(t, thread, uuid.New(), nil, 0)
		c2 := mustAttach(t, thread, uuid.New(), nil, 1)
		seq := BuildTree([]Comment{c1, c2})

		first := Forest(seq)
		second := Forest(seq)
		assert.Equal(t, first, second)
		assert.Len(t, second, 2)
	})

	t.Run("Early break stops iteration", func(t *testing.T) {
		thread := newThread()
		c1 := mustAttach(t, thread, uuid.New(), nil, 0)
		c2 := mustAttach(t, thread, uuid.New(), nil, 1)

		count := 0
		for range BuildTree([]Comment{c1, c2}) {
			count++
			break
		}
		assert.Equal(t, 1, count)
	})

	t.Run("Three node cycle is cut at the earliest comment", func(t *testing.T) {
		a := Comment{Id: uuid.New(), CreatedAt: epoch}
		b := Comment{Id: uuid.New(), CreatedAt: epoch.Add(time.Minute)}
		c := Comment{Id: uuid.New(), CreatedAt: epoch.Add(2 * time.Minute)}
		a.ParentId, b.ParentId, c.ParentId = &c.Id, &a.Id, &b.Id

		roots := Forest(BuildTree([]Comment{c, b, a}))

		require.Len(t, roots, 1)
		assert.Equal(t, a.Id, roots[0].Id)
		assert.Equal(t, 3, roots[0].Size())
	})

	t.Run("Cyclic input terminates", func(t *testing.T) {
		a := Comment{Id: uuid.New(), CreatedAt: epoch}
		b := Comment{Id: uuid.New(), CreatedAt: epoch.Add(time.Minute)}
		a.ParentId = &b.Id
		b.ParentId = &a.Id

		roots := Forest(BuildTree([]Comment{a, b}))

		require.Len(t, roots, 1)
		assert.Equal(t, a.Id, roots[0].Id)
		assert.Equal(t, 2, roots[0].Size())
	})

	t.Run("Empty thread", func(t *testing.T) {
		roots := Forest(BuildTree(nil))
		assert.NotNil(t, roots)
		assert.Empty(t, roots)
	})
}

func TestThreadDropComment(t *testing.T) {
	thread := newThread()
	a := mustAttach(t, thread, uuid.New(), nil, 0)
	b := mustAttach(t, thread, uuid.New(), nil, 1)

	assert.True(t, thread.DropComment(a.Id))
	assert.False(t, thread.DropComment(a.Id))
	assert.Equal(t, []CommentId{b.Id}, thread.CommentIds)
}
