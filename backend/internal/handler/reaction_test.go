package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threadboard/threadboard/shared/api"
	"github.com/threadboard/threadboard/shared/domain"
	internal_errors "github.com/threadboard/threadboard/shared/errors"
)

func TestReactHandler(t *testing.T) {
	user := &domain.User{Id: uuid.New()}

	t.Run("Like thread", func(t *testing.T) {
		h, deps := newTestHandler()
		threadId := uuid.New()
		deps.engagement.MockReact = func(ref domain.EntityRef, voter domain.UserId, kind domain.ReactionKind) (domain.Reactable, error) {
			assert.Equal(t, domain.EntityRef{Kind: domain.EntityThread, Id: threadId}, ref)
			assert.Equal(t, user.Id, voter)
			assert.Equal(t, domain.Like, kind)
			thread := &domain.Thread{Id: ref.Id, ReactionSet: domain.NewReactionSet()}
			thread.Apply(voter, kind)
			return thread, nil
		}

		rr := serve(t, http.MethodPatch, "/v1/threads/{thread}/{reaction}", "/v1/threads/"+threadId.String()+"/like", h.React(domain.EntityThread), nil, user)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp api.ThreadResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.LikeCount)
		assert.Equal(t, 0, resp.DislikeCount)
	})

	t.Run("Dislike comment", func(t *testing.T) {
		h, deps := newTestHandler()
		commentId := uuid.New()
		deps.engagement.MockReact = func(ref domain.EntityRef, voter domain.UserId, kind domain.ReactionKind) (domain.Reactable, error) {
			assert.Equal(t, domain.EntityComment, ref.Kind)
			assert.Equal(t, domain.Dislike, kind)
			comment := &domain.Comment{Id: ref.Id, ReactionSet: domain.NewReactionSet()}
			comment.Apply(voter, kind)
			return comment, nil
		}

		rr := serve(t, http.MethodPatch, "/v1/comments/{comment}/{reaction}", "/v1/comments/"+commentId.String()+"/dislike", h.React(domain.EntityComment), nil, user)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp api.CommentResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, commentId, resp.Id)
		assert.Equal(t, 1, resp.DislikeCount)
	})

	t.Run("Unknown reaction", func(t *testing.T) {
		h, deps := newTestHandler()
		rr := serve(t, http.MethodPatch, "/v1/threads/{thread}/{reaction}", "/v1/threads/"+uuid.NewString()+"/love", h.React(domain.EntityThread), nil, user)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Zero(t, deps.engagement.Calls("React"))
	})

	t.Run("Missing entity", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.engagement.MockReact = func(ref domain.EntityRef, voter domain.UserId, kind domain.ReactionKind) (domain.Reactable, error) {
			return nil, internal_errors.NotFound("comment")
		}
		rr := serve(t, http.MethodPatch, "/v1/comments/{comment}/{reaction}", "/v1/comments/"+uuid.NewString()+"/like", h.React(domain.EntityComment), nil, user)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		h, deps := newTestHandler()
		rr := serve(t, http.MethodPatch, "/v1/threads/{thread}/{reaction}", "/v1/threads/"+uuid.NewString()+"/like", h.React(domain.EntityThread), nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Zero(t, deps.engagement.Calls("React"))
	})
}
