package service

import (
	"context"
	"sort"
	"sync"

	"github.com/haierkeys/note-graph-service/internal/domain"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var errLinkWrite = errors.New("link write failed")

// memStore is an in-memory domain.NoteGraphStore. A failed Transaction
// restores the state it started from.
type memStore struct {
	mu       sync.Mutex
	nextNote int64
	nextLink int64
	notes    map[int64]domain.Note
	links    map[int64]domain.NoteLink

	// failLinkWrites makes every link write fail
	failLinkWrites bool
	// transactions counts Transaction calls
	transactions int
}

func newMemStore() *memStore {
	return &memStore{
		notes: map[int64]domain.Note{},
		links: map[int64]domain.NoteLink{},
	}
}

func (s *memStore) Notes() domain.NoteRepository     { return memNotes{s} }
func (s *memStore) Links() domain.NoteLinkRepository { return memLinks{s} }

func (s *memStore) Transaction(ctx context.Context, uid int64, fn func(tx domain.NoteGraphStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions++

	notes := make(map[int64]domain.Note, len(s.notes))
	for k, v := range s.notes {
		notes[k] = v
	}
	links := make(map[int64]domain.NoteLink, len(s.links))
	for k, v := range s.links {
		links[k] = v
	}
	nextNote, nextLink := s.nextNote, s.nextLink

	if err := fn(memTx{s}); err != nil {
		s.notes, s.links = notes, links
		s.nextNote, s.nextLink = nextNote, nextLink
		return err
	}
	return nil
}

func (s *memStore) View(ctx context.Context, fn func(tx domain.NoteGraphStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(memTx{s})
}

// memTx is handed to transaction callbacks; nested transactions join the outer one.
type memTx struct{ s *memStore }

func (t memTx) Notes() domain.NoteRepository     { return memNotes{t.s} }
func (t memTx) Links() domain.NoteLinkRepository { return memLinks{t.s} }

func (t memTx) Transaction(ctx context.Context, uid int64, fn func(tx domain.NoteGraphStore) error) error {
	return fn(t)
}

func (t memTx) View(ctx context.Context, fn func(tx domain.NoteGraphStore) error) error {
	return fn(t)
}

type memNotes struct{ s *memStore }

func (r memNotes) Create(ctx context.Context, note *domain.Note, uid int64) (*domain.Note, error) {
	r.s.nextNote++
	n := *note
	n.ID = r.s.nextNote
	n.UID = uid
	n.ParentID = nil
	r.s.notes[n.ID] = n
	out := n
	return &out, nil
}

func (r memNotes) UpdateContent(ctx context.Context, id, uid int64, title, content string) (int64, error) {
	n, ok := r.s.notes[id]
	if !ok || n.UID != uid {
		return 0, nil
	}
	n.Title, n.Content = title, content
	r.s.notes[id] = n
	return 1, nil
}

func (r memNotes) GetByID(ctx context.Context, id, uid int64) (*domain.Note, error) {
	n, ok := r.s.notes[id]
	if !ok || n.UID != uid {
		return nil, gorm.ErrRecordNotFound
	}
	for _, l := range r.s.links {
		if l.UID == uid && l.TargetNoteID == id {
			parent := l.SourceNoteID
			n.ParentID = &parent
		}
	}
	return &n, nil
}

func (r memNotes) Exists(ctx context.Context, id, uid int64) (bool, error) {
	n, ok := r.s.notes[id]
	return ok && n.UID == uid, nil
}

func (r memNotes) Delete(ctx context.Context, id, uid int64) (int64, error) {
	n, ok := r.s.notes[id]
	if !ok || n.UID != uid {
		return 0, nil
	}
	delete(r.s.notes, id)
	return 1, nil
}

func (r memNotes) List(ctx context.Context, uid int64) ([]*domain.Note, error) {
	var out []*domain.Note
	for _, n := range r.s.notes {
		if n.UID == uid {
			n := n
			n.Content = ""
			out = append(out, &n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memLinks struct{ s *memStore }

func (r memLinks) Create(ctx context.Context, link *domain.NoteLink, uid int64) (*domain.NoteLink, error) {
	if r.s.failLinkWrites {
		return nil, errLinkWrite
	}
	for _, l := range r.s.links {
		if l.UID == uid && l.TargetNoteID == link.TargetNoteID {
			return nil, gorm.ErrDuplicatedKey
		}
	}
	r.s.nextLink++
	l := *link
	l.ID = r.s.nextLink
	l.UID = uid
	r.s.links[l.ID] = l
	out := l
	return &out, nil
}

func (r memLinks) GetIncoming(ctx context.Context, targetNoteID, uid int64) (*domain.NoteLink, error) {
	for _, l := range r.s.links {
		if l.UID == uid && l.TargetNoteID == targetNoteID {
			l := l
			return &l, nil
		}
	}
	return nil, nil
}

func (r memLinks) UpdateSource(ctx context.Context, id, sourceNoteID, uid int64) error {
	if r.s.failLinkWrites {
		return errLinkWrite
	}
	l, ok := r.s.links[id]
	if ok && l.UID == uid {
		l.SourceNoteID = sourceNoteID
		r.s.links[id] = l
	}
	return nil
}

func (r memLinks) Delete(ctx context.Context, id, uid int64) error {
	if r.s.failLinkWrites {
		return errLinkWrite
	}
	if l, ok := r.s.links[id]; ok && l.UID == uid {
		delete(r.s.links, id)
	}
	return nil
}

func (r memLinks) DeleteByNoteID(ctx context.Context, noteID, uid int64) (int64, error) {
	if r.s.failLinkWrites {
		return 0, errLinkWrite
	}
	var n int64
	for id, l := range r.s.links {
		if l.UID == uid && (l.SourceNoteID == noteID || l.TargetNoteID == noteID) {
			delete(r.s.links, id)
			n++
		}
	}
	return n, nil
}

func (r memLinks) List(ctx context.Context, uid int64) ([]*domain.NoteLink, error) {
	var out []*domain.NoteLink
	for _, l := range r.s.links {
		if l.UID == uid {
			l := l
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
