package domain

import (
	"iter"
	"slices"
	"time"

	"github.com/threadboard/threadboard/shared/errors"
)

// AttachComment validates a new comment against its thread and, when replying,
// against the resolved parent (nil if the parent id did not resolve). On
// success the comment id is appended to thread.CommentIds.
func AttachComment(thread *Thread, data CommentCreationData, parent *Comment, id CommentId, now time.Time) (Comment, error) {
	if data.ParentId != nil {
		if parent == nil || parent.Id != *data.ParentId || parent.ThreadId != thread.Id {
			return Comment{}, errors.ErrInvalidParent
		}
	}

	comment := Comment{
		Id:          id,
		ThreadId:    thread.Id,
		AuthorId:    data.AuthorId,
		ParentId:    data.ParentId,
		Content:     data.Content,
		CreatedAt:   now,
		ReactionSet: NewReactionSet(),
	}
	thread.AppendComment(id)
	return comment, nil
}

// CommentNode is one comment in the display tree.
type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
}

// Children iterates over the direct replies.
func (n *CommentNode) Children() iter.Seq[*CommentNode] {
	return slices.Values(n.Replies)
}

// Size counts the node and all of its descendants.
func (n *CommentNode) Size() int {
	size := 1
	for _, child := range n.Replies {
		size += child.Size()
	}
	return size
}

// BuildTree groups comments of one thread by parent and yields the top-level
// nodes. Every iteration rebuilds the tree from comments, so the sequence can
// be ranged over more than once. Siblings are ordered by creation time.
//
// A comment whose parent is missing (deleted) or lives in another thread is
// promoted to the top level. Parent links that form a cycle are cut at the
// earliest comment of the cycle, so the result is always a forest.
func BuildTree(comments []Comment) iter.Seq[*CommentNode] {
	return func(yield func(*CommentNode) bool) {
		for _, root := range buildForest(comments) {
			if !yield(root) {
				return
			}
		}
	}
}

func buildForest(comments []Comment) []*CommentNode {
	nodes := make([]*CommentNode, len(comments))
	for i := range comments {
		nodes[i] = &CommentNode{Comment: comments[i]}
	}
	slices.SortStableFunc(nodes, func(a, b *CommentNode) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	order := make(map[*CommentNode]int, len(nodes))
	byId := make(map[CommentId]*CommentNode, len(nodes))
	for i, node := range nodes {
		order[node] = i
		if _, dup := byId[node.Id]; !dup {
			byId[node.Id] = node
		}
	}

	parentOf := make(map[*CommentNode]*CommentNode, len(nodes))
	for _, node := range nodes {
		if node.IsRoot() {
			continue
		}
		parent := byId[*node.ParentId]
		if parent != nil && parent != node && parent.ThreadId == node.ThreadId {
			parentOf[node] = parent
		}
	}
	breakCycles(nodes, parentOf, order)

	var roots []*CommentNode
	for _, node := range nodes {
		if parent, ok := parentOf[node]; ok {
			parent.Replies = append(parent.Replies, node)
		} else {
			roots = append(roots, node)
		}
	}
	return roots
}

// breakCycles walks every ancestor chain once and detaches the earliest node
// of each cycle it finds.
func breakCycles(nodes []*CommentNode, parentOf map[*CommentNode]*CommentNode, order map[*CommentNode]int) {
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[*CommentNode]int, len(nodes))
	for _, start := range nodes {
		var path []*CommentNode
		cur := start
		for cur != nil && state[cur] == 0 {
			state[cur] = visiting
			path = append(path, cur)
			cur = parentOf[cur]
		}
		if cur != nil && state[cur] == visiting {
			cycle := path[slices.Index(path, cur):]
			earliest := slices.MinFunc(cycle, func(a, b *CommentNode) int { return order[a] - order[b] })
			delete(parentOf, earliest)
		}
		for _, node := range path {
			state[node] = done
		}
	}
}

// Forest collects the top-level nodes of seq.
func Forest(seq iter.Seq[*CommentNode]) []*CommentNode {
	roots := slices.Collect(seq)
	if roots == nil {
		roots = []*CommentNode{}
	}
	return roots
}
