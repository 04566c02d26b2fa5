package service

import (
	"context"
	"testing"
	"time"

	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/pkg/serverutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNoteService(t *testing.T) (INoteService, *fakeRepositoryFactory) {
	t.Helper()
	factory := newFakeRepositoryFactory()
	return NewNoteService(factory), factory
}

func TestNoteCreateAndList(t *testing.T) {
	svc, _ := newTestNoteService(t)
	ctx := context.Background()
	userId := uuid.New()

	created, err := svc.Create(ctx, userId, &dto.CreateNoteRequest{Title: "Groceries", Content: "milk, eggs"})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", created.Title)
	assert.Equal(t, "milk, eggs", created.Content)
	assert.Equal(t, userId, created.UserId)
	assert.NotEqual(t, uuid.Nil, created.Id)

	notes, err := svc.List(ctx, userId)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, created.Id, notes[0].Id)
}

func TestNoteListNewestFirst(t *testing.T) {
	svc, factory := newTestNoteService(t)
	ctx := context.Background()
	userId := uuid.New()

	now := time.Now()
	for i, title := range []string{"oldest", "middle", "newest"} {
		note := &entity.Note{
			Id:        uuid.New(),
			Title:     title,
			Content:   "c",
			UserId:    userId,
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, factory.uow.notes.Create(ctx, note))
	}

	notes, err := svc.List(ctx, userId)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "newest", notes[0].Title)
	assert.Equal(t, "middle", notes[1].Title)
	assert.Equal(t, "oldest", notes[2].Title)
}

func TestNoteListScopedToOwner(t *testing.T) {
	svc, _ := newTestNoteService(t)
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	_, err := svc.Create(ctx, alice, &dto.CreateNoteRequest{Title: "mine", Content: "a"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob, &dto.CreateNoteRequest{Title: "theirs", Content: "b"})
	require.NoError(t, err)

	notes, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "mine", notes[0].Title)
}

func TestNoteListEmpty(t *testing.T) {
	svc, _ := newTestNoteService(t)

	notes, err := svc.List(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestNoteUpdatePartial(t *testing.T) {
	svc, _ := newTestNoteService(t)
	ctx := context.Background()
	userId := uuid.New()

	created, err := svc.Create(ctx, userId, &dto.CreateNoteRequest{Title: "A", Content: "B"})
	require.NoError(t, err)

	// Only the title is sent; content must survive.
	updated, err := svc.Update(ctx, userId, &dto.UpdateNoteRequest{Id: created.Id, Title: "C"})
	require.NoError(t, err)
	assert.Equal(t, "C", updated.Title)
	assert.Equal(t, "B", updated.Content)

	updated, err = svc.Update(ctx, userId, &dto.UpdateNoteRequest{Id: created.Id, Content: "D"})
	require.NoError(t, err)
	assert.Equal(t, "C", updated.Title)
	assert.Equal(t, "D", updated.Content)
}

func TestNoteUpdateSomeoneElsesNote(t *testing.T) {
	svc, _ := newTestNoteService(t)
	ctx := context.Background()
	owner := uuid.New()
	intruder := uuid.New()

	created, err := svc.Create(ctx, owner, &dto.CreateNoteRequest{Title: "private", Content: "x"})
	require.NoError(t, err)

	// Same response as a note that does not exist at all.
	_, err = svc.Update(ctx, intruder, &dto.UpdateNoteRequest{Id: created.Id, Title: "hijacked"})
	require.Error(t, err)
	httpErr, ok := err.(*serverutils.HttpError)
	require.True(t, ok)
	assert.Equal(t, 404, httpErr.Code)
	assert.Equal(t, "Note not found", httpErr.Message)

	notes, err := svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "private", notes[0].Title)
}

func TestNoteDelete(t *testing.T) {
	svc, _ := newTestNoteService(t)
	ctx := context.Background()
	userId := uuid.New()

	created, err := svc.Create(ctx, userId, &dto.CreateNoteRequest{Title: "temp", Content: "x"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, userId, created.Id))

	notes, err := svc.List(ctx, userId)
	require.NoError(t, err)
	assert.Empty(t, notes)

	err = svc.Delete(ctx, userId, created.Id)
	require.Error(t, err)
	assert.Equal(t, "Note not found", err.Error())
}

func TestNoteDeleteSomeoneElsesNote(t *testing.T) {
	svc, _ := newTestNoteService(t)
	ctx := context.Background()
	owner := uuid.New()
	intruder := uuid.New()

	created, err := svc.Create(ctx, owner, &dto.CreateNoteRequest{Title: "keep", Content: "x"})
	require.NoError(t, err)

	err = svc.Delete(ctx, intruder, created.Id)
	require.Error(t, err)
	httpErr, ok := err.(*serverutils.HttpError)
	require.True(t, ok)
	assert.Equal(t, 404, httpErr.Code)

	notes, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, notes, 1)
}
