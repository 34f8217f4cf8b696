package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

type ReactionKind int

const (
	Like ReactionKind = iota + 1
	Dislike
)

func (k ReactionKind) String() string {
	switch k {
	case Like:
		return "like"
	case Dislike:
		return "dislike"
	default:
		return fmt.Sprintf("ReactionKind(%d)", int(k))
	}
}

func ParseReactionKind(s string) (ReactionKind, error) {
	switch strings.ToLower(s) {
	case "like":
		return Like, nil
	case "dislike":
		return Dislike, nil
	default:
		return 0, fmt.Errorf("unknown reaction %q", s)
	}
}

// VoterSet is a set of voter identities. The zero value is an empty set;
// use Add through a pointer so a nil map gets allocated.
type VoterSet map[UserId]struct{}

func NewVoterSet(voters ...UserId) VoterSet {
	s := make(VoterSet, len(voters))
	for _, v := range voters {
		s[v] = struct{}{}
	}
	return s
}

// VoterSetFromStrings parses stored uuid strings.
func VoterSetFromStrings(ids []string) (VoterSet, error) {
	s := make(VoterSet, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid voter id %q: %w", raw, err)
		}
		s[id] = struct{}{}
	}
	return s, nil
}

func (s VoterSet) Has(voter UserId) bool {
	_, ok := s[voter]
	return ok
}

func (s VoterSet) Len() int {
	return len(s)
}

func (s *VoterSet) Add(voter UserId) {
	if *s == nil {
		*s = make(VoterSet)
	}
	(*s)[voter] = struct{}{}
}

func (s VoterSet) Remove(voter UserId) {
	delete(s, voter)
}

// Sorted returns the members in a stable order.
func (s VoterSet) Sorted() []UserId {
	out := make([]UserId, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b UserId) int { return strings.Compare(a.String(), b.String()) })
	return out
}

func (s VoterSet) Strings() []string {
	sorted := s.Sorted()
	out := make([]string, len(sorted))
	for i, v := range sorted {
		out[i] = v.String()
	}
	return out
}

func (s VoterSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

func (s *VoterSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	parsed, err := VoterSetFromStrings(ids)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ReactionSet holds the two disjoint voter sets of a reactable entity.
type ReactionSet struct {
	Likes    VoterSet `json:"likes"`
	Dislikes VoterSet `json:"dislikes"`
}

func NewReactionSet() ReactionSet {
	return ReactionSet{Likes: VoterSet{}, Dislikes: VoterSet{}}
}

// Apply records voter's reaction. Repeating the current reaction is a no-op,
// the opposite reaction switches sides. Reports whether the sets changed.
func (r *ReactionSet) Apply(voter UserId, kind ReactionKind) bool {
	target, opposite := &r.Likes, &r.Dislikes
	if kind == Dislike {
		target, opposite = &r.Dislikes, &r.Likes
	}

	if target.Has(voter) {
		return false
	}
	opposite.Remove(voter)
	target.Add(voter)
	return true
}

// Reaction returns the voter's current reaction, if any.
func (r ReactionSet) Reaction(voter UserId) (ReactionKind, bool) {
	switch {
	case r.Likes.Has(voter):
		return Like, true
	case r.Dislikes.Has(voter):
		return Dislike, true
	default:
		return 0, false
	}
}

func (r ReactionSet) LikeCount() int {
	return r.Likes.Len()
}

func (r ReactionSet) DislikeCount() int {
	return r.Dislikes.Len()
}

// Reactable is implemented by every entity users can like or dislike.
type Reactable interface {
	Reactions() *ReactionSet
}

func ApplyReaction(entity Reactable, voter UserId, kind ReactionKind) bool {
	return entity.Reactions().Apply(voter, kind)
}

type EntityKind string

const (
	EntityThread  EntityKind = "thread"
	EntityComment EntityKind = "comment"
)

// EntityRef points at a reactable record.
type EntityRef struct {
	Kind EntityKind
	Id   uuid.UUID
}
