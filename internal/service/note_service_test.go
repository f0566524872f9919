package service

import (
	"context"
	"strings"
	"testing"

	"github.com/haierkeys/note-graph-service/internal/domain"
	"github.com/haierkeys/note-graph-service/internal/dto"
	"github.com/haierkeys/note-graph-service/pkg/code"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 { return &v }

func newNoteFixture(t *testing.T) (*memStore, NoteService) {
	t.Helper()
	store := newMemStore()
	return store, NewNoteService(store, nil)
}

func mustCreate(t *testing.T, svc NoteService, uid int64, title string, parent *int64) int64 {
	t.Helper()
	n, err := svc.Create(context.Background(), uid, &dto.NoteCreateRequest{Title: title, ParentID: parent})
	require.NoError(t, err)
	return n.ID
}

func TestNoteService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		title     string
		parent    func(root int64) *int64
		wantErr   *code.Code
		wantLinks int
	}{
		{name: "root note", title: "A", parent: func(int64) *int64 { return nil }},
		{name: "zero parent means root", title: "A", parent: func(int64) *int64 { return ptr(0) }},
		{name: "child note", title: "B", parent: func(root int64) *int64 { return &root }, wantLinks: 1},
		{name: "blank title", title: "   ", parent: func(int64) *int64 { return nil }, wantErr: code.ErrorNoteTitleRequired},
		{name: "missing parent", title: "B", parent: func(int64) *int64 { return ptr(999) }, wantErr: code.ErrorParentNoteNotFound},
		{name: "negative parent", title: "B", parent: func(int64) *int64 { return ptr(-7) }, wantErr: code.ErrorParentNoteNotFound},
		{name: "title too long", title: strings.Repeat("t", 256), parent: func(int64) *int64 { return nil }, wantErr: code.ErrorNoteTitleTooLong},
		{name: "title at limit", title: strings.Repeat("标", 255), parent: func(int64) *int64 { return nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, svc := newNoteFixture(t)
			root := mustCreate(t, svc, 1, "root", nil)

			got, err := svc.Create(ctx, 1, &dto.NoteCreateRequest{Title: tt.title, ParentID: tt.parent(root)})
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				// a failed create leaves nothing behind
				assert.Len(t, store.notes, 1)
				assert.Empty(t, store.links)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.title, got.Title)
			assert.Len(t, store.links, tt.wantLinks)
			if tt.wantLinks == 0 {
				assert.Nil(t, got.ParentID)
			} else {
				require.NotNil(t, got.ParentID)
				assert.Equal(t, root, *got.ParentID)
			}
		})
	}
}

func TestNoteService_CreateWithForeignParent(t *testing.T) {
	store, svc := newNoteFixture(t)
	other := mustCreate(t, svc, 2, "theirs", nil)

	_, err := svc.Create(context.Background(), 1, &dto.NoteCreateRequest{Title: "mine", ParentID: &other})
	assert.True(t, errors.Is(err, code.ErrorParentNoteNotFound))
	assert.Len(t, store.notes, 1)
}

// A, B, C with C under A; moving C under B reuses the same link row.
func TestNoteService_UpdateReparent(t *testing.T) {
	ctx := context.Background()
	store, svc := newNoteFixture(t)

	a := mustCreate(t, svc, 1, "A", nil)
	b := mustCreate(t, svc, 1, "B", nil)
	c := mustCreate(t, svc, 1, "C", &a)
	require.Len(t, store.links, 1)
	var linkID int64
	for id := range store.links {
		linkID = id
	}

	got, err := svc.Update(ctx, 1, c, &dto.NoteUpdateRequest{Title: "C", Content: "# c", ParentID: &b})
	require.NoError(t, err)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, b, *got.ParentID)
	assert.Equal(t, "# c", got.Content)

	require.Len(t, store.links, 1)
	assert.Equal(t, b, store.links[linkID].SourceNoteID)
	assert.Equal(t, c, store.links[linkID].TargetNoteID)

	// same parent again is a no-op on links
	_, err = svc.Update(ctx, 1, c, &dto.NoteUpdateRequest{Title: "C", ParentID: &b})
	require.NoError(t, err)
	assert.Len(t, store.links, 1)
	assert.Equal(t, b, store.links[linkID].SourceNoteID)
}

func TestNoteService_UpdateAttachDetach(t *testing.T) {
	ctx := context.Background()
	store, svc := newNoteFixture(t)

	a := mustCreate(t, svc, 1, "A", nil)
	b := mustCreate(t, svc, 1, "B", nil)

	got, err := svc.Update(ctx, 1, b, &dto.NoteUpdateRequest{Title: "B", ParentID: &a})
	require.NoError(t, err)
	require.NotNil(t, got.ParentID)
	assert.Len(t, store.links, 1)

	for _, detach := range []*int64{nil, ptr(0)} {
		got, err = svc.Update(ctx, 1, b, &dto.NoteUpdateRequest{Title: "B", ParentID: detach})
		require.NoError(t, err)
		assert.Nil(t, got.ParentID)
		assert.Empty(t, store.links)
	}
}

func TestNoteService_UpdateRejections(t *testing.T) {
	ctx := context.Background()
	store, svc := newNoteFixture(t)
	a := mustCreate(t, svc, 1, "A", nil)
	b := mustCreate(t, svc, 1, "B", &a)
	before := store.transactions

	tests := []struct {
		name    string
		id      int64
		req     *dto.NoteUpdateRequest
		wantErr *code.Code
		touches bool
	}{
		{name: "self parent", id: b, req: &dto.NoteUpdateRequest{Title: "B", ParentID: &b}, wantErr: code.ErrorNoteSelfParent},
		{name: "blank title", id: b, req: &dto.NoteUpdateRequest{Title: ""}, wantErr: code.ErrorNoteTitleRequired},
		{name: "unknown note", id: 404, req: &dto.NoteUpdateRequest{Title: "x"}, wantErr: code.ErrorNoteNotFound, touches: true},
		{name: "unknown parent", id: b, req: &dto.NoteUpdateRequest{Title: "x", ParentID: ptr(404)}, wantErr: code.ErrorParentNoteNotFound, touches: true},
		{name: "negative parent does not detach", id: b, req: &dto.NoteUpdateRequest{Title: "x", ParentID: ptr(-7)}, wantErr: code.ErrorParentNoteNotFound, touches: true},
		{name: "title too long", id: b, req: &dto.NoteUpdateRequest{Title: strings.Repeat("x", 256)}, wantErr: code.ErrorNoteTitleTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(ctx, 1, tt.id, tt.req)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			if !tt.touches {
				assert.Equal(t, before, store.transactions)
			}

			// state unchanged
			got, err := svc.Get(ctx, 1, b)
			require.NoError(t, err)
			assert.Equal(t, "B", got.Title)
			require.NotNil(t, got.ParentID)
			assert.Equal(t, a, *got.ParentID)
		})
	}
}

func TestNoteService_UpdateRollsBackOnLinkFailure(t *testing.T) {
	ctx := context.Background()
	store, svc := newNoteFixture(t)
	a := mustCreate(t, svc, 1, "A", nil)
	b := mustCreate(t, svc, 1, "B", nil)

	store.failLinkWrites = true
	_, err := svc.Update(ctx, 1, b, &dto.NoteUpdateRequest{Title: "B2", Content: "new", ParentID: &a})
	assert.True(t, errors.Is(err, code.ErrorDBQuery), "got %v", err)
	store.failLinkWrites = false

	got, err := svc.Get(ctx, 1, b)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Title)
	assert.Empty(t, got.Content)
	assert.Nil(t, got.ParentID)
}

func TestNoteService_DeleteRemovesLinks(t *testing.T) {
	ctx := context.Background()
	store, svc := newNoteFixture(t)
	a := mustCreate(t, svc, 1, "A", nil)
	b := mustCreate(t, svc, 1, "B", &a)
	c := mustCreate(t, svc, 1, "C", &b)
	require.Len(t, store.links, 2)

	require.NoError(t, svc.Delete(ctx, 1, b))
	assert.Empty(t, store.links)

	got, err := svc.Get(ctx, 1, c)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)

	_, err = svc.Get(ctx, 1, b)
	assert.True(t, errors.Is(err, code.ErrorNoteNotFound))

	err = svc.Delete(ctx, 1, b)
	assert.True(t, errors.Is(err, code.ErrorNoteNotFound))
}

func TestNoteService_UserIsolation(t *testing.T) {
	ctx := context.Background()
	_, svc := newNoteFixture(t)
	a := mustCreate(t, svc, 1, "A", nil)

	_, err := svc.Get(ctx, 2, a)
	assert.True(t, errors.Is(err, code.ErrorNoteNotFound))

	_, err = svc.Update(ctx, 2, a, &dto.NoteUpdateRequest{Title: "hijack"})
	assert.True(t, errors.Is(err, code.ErrorNoteNotFound))

	err = svc.Delete(ctx, 2, a)
	assert.True(t, errors.Is(err, code.ErrorNoteNotFound))

	got, err := svc.Get(ctx, 1, a)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
}

// Any sequence of creates and re-parents keeps a forest of single-parent links
// between existing notes with no self links.
func TestProperty_SingleParentForest(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("links stay single-parent", prop.ForAll(
		func(ops []int) bool {
			ctx := context.Background()
			store := newMemStore()
			svc := NewNoteService(store, nil)
			var ids []int64

			for _, op := range ops {
				pick := func(shift int) *int64 {
					if len(ids) == 0 || (op>>shift)%4 == 0 {
						return nil
					}
					id := ids[(op>>shift)%len(ids)]
					return &id
				}
				switch op % 3 {
				case 0, 1:
					n, err := svc.Create(ctx, 1, &dto.NoteCreateRequest{Title: "n", ParentID: pick(2)})
					if err != nil {
						return false
					}
					ids = append(ids, n.ID)
				case 2:
					if len(ids) == 0 {
						continue
					}
					id := ids[(op>>4)%len(ids)]
					_, err := svc.Update(ctx, 1, id, &dto.NoteUpdateRequest{Title: "n", ParentID: pick(8)})
					if err != nil && !errors.Is(err, code.ErrorNoteSelfParent) {
						return false
					}
				}
			}

			incoming := map[int64]int{}
			for _, l := range store.links {
				if l.SourceNoteID == l.TargetNoteID {
					return false
				}
				if _, ok := store.notes[l.SourceNoteID]; !ok {
					return false
				}
				if _, ok := store.notes[l.TargetNoteID]; !ok {
					return false
				}
				incoming[l.TargetNoteID]++
				if incoming[l.TargetNoteID] > 1 {
					return false
				}
			}

			notes := make([]*domain.Note, 0, len(store.notes))
			links := make([]*domain.NoteLink, 0, len(store.links))
			for _, n := range store.notes {
				n := n
				notes = append(notes, &n)
			}
			for _, l := range store.links {
				l := l
				links = append(links, &l)
			}
			roots := 0
			for _, n := range domain.BuildGraph(notes, links).Nodes {
				if n.IsRoot {
					roots++
				}
			}
			return roots == len(notes)-len(links)
		},
		gen.SliceOf(gen.IntRange(0, 1<<16)),
	))

	properties.TestingRun(t)
}
