package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizSet_ReadThroughCache(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, false)
	ann := h.signup(t, "ann@x.test")
	qs, err := h.owner.CreateQuizSet(ctx, ann)
	require.NoError(t, err)

	got, err := h.query.QuizSet(ctx, nil, qs.ID)
	require.NoError(t, err)
	assert.Equal(t, qs.ID, got.ID)
	assert.Equal(t, 1, h.cache.fills)

	_, err = h.query.QuizSet(ctx, nil, qs.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, h.cache.hits)

	_, err = h.owner.AppendQuizResult(ctx, ann, qs.ID, "Q1", "A1")
	require.NoError(t, err)

	fresh, err := h.query.QuizSet(ctx, nil, qs.ID)
	require.NoError(t, err)
	assert.Len(t, fresh.Results, 1, "append replaces the cached copy")
	assert.Equal(t, 1, h.cache.sets)
}

func TestQuizSet_Absent(t *testing.T) {
	h := newHarness(t, false)
	got, err := h.query.QuizSet(context.Background(), nil, "does-not-exist")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, h.cache.fills)
}

func TestQuizSet_StrictOwnership(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, true)
	ann := h.signup(t, "ann@x.test")
	bob := h.signup(t, "bob@x.test")
	qs, err := h.owner.CreateQuizSet(ctx, ann)
	require.NoError(t, err)

	_, err = h.query.QuizSet(ctx, nil, qs.ID)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	foreign, err := h.query.QuizSet(ctx, bob, qs.ID)
	require.NoError(t, err)
	assert.Nil(t, foreign)

	own, err := h.query.QuizSet(ctx, ann, qs.ID)
	require.NoError(t, err)
	assert.Equal(t, qs.ID, own.ID)

	rec, err := h.owner.CreateRecording(ctx, ann, "blob", "t")
	require.NoError(t, err)
	foreignRec, err := h.query.Recording(ctx, bob, rec.ID)
	require.NoError(t, err)
	assert.Nil(t, foreignRec)
}

func TestCurrentUser_SkipsVanishedSets(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, false)
	ann := h.signup(t, "ann@x.test")
	keep, err := h.owner.CreateQuizSet(ctx, ann)
	require.NoError(t, err)
	lost, err := h.owner.CreateQuizSet(ctx, ann)
	require.NoError(t, err)

	// delete behind the service's back, leaving a dangling reference
	_, err = h.store.QuizSets().Delete(ctx, lost.ID)
	require.NoError(t, err)

	cur, err := h.query.CurrentUser(ctx, ann)
	require.NoError(t, err)
	assert.Equal(t, []string{keep.ID, lost.ID}, cur.User.QuizSetIDs)
	require.Len(t, cur.QuizSets, 1)
	assert.Equal(t, keep.ID, cur.QuizSets[0].ID)
}

func TestQuizSet_StaleFillDoesNotOverwriteAppend(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, false)
	ann := h.signup(t, "ann@x.test")
	qs, err := h.owner.CreateQuizSet(ctx, ann)
	require.NoError(t, err)

	// a reader that missed the cache loads the set before the append lands
	stale, err := h.store.QuizSets().GetByID(ctx, qs.ID)
	require.NoError(t, err)

	appended, err := h.owner.AppendQuizResult(ctx, ann, qs.ID, "Q1", "A1")
	require.NoError(t, err)
	require.Len(t, appended.Results, 1)

	// and writes its copy back afterwards
	require.NoError(t, h.cache.Fill(ctx, stale))

	got, err := h.query.QuizSet(ctx, nil, qs.ID)
	require.NoError(t, err)
	assert.Len(t, got.Results, 1)

	cur, err := h.query.CurrentUser(ctx, ann)
	require.NoError(t, err)
	require.Len(t, cur.QuizSets, 1)
	assert.Len(t, cur.QuizSets[0].Results, 1)
}
