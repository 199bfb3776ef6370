package handler

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	errNoteNotFound    = errors.New("note not found")
	errNoteDeleted     = errors.New("note deleted")
	errVersionMismatch = errors.New("note version mismatch")
)

// Note is the demo resource served by the notes handler.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Version   int       `json:"version"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteStore is a mutex-guarded in-memory note collection. Deleted notes
// leave a tombstone behind so repeat lookups can answer 410 instead of 404.
type NoteStore struct {
	mu         sync.RWMutex
	notes      map[string]*Note
	tombstones map[string]struct{}
}

func NewNoteStore() *NoteStore {
	return &NoteStore{
		notes:      make(map[string]*Note),
		tombstones: make(map[string]struct{}),
	}
}

// List returns one page of notes plus the total count.
func (s *NoteStore) List(limit, offset int) ([]Note, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]Note, 0, len(s.notes))
	for _, n := range s.notes {
		all = append(all, *n)
	}
	sortNotes(all)

	total := len(all)
	if offset >= total {
		return []Note{}, total
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return all[offset:end], total
}

func (s *NoteStore) Create(title, content string) Note {
	now := time.Now().UTC()
	note := &Note{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[note.ID] = note
	return *note
}

func (s *NoteStore) Get(id string) (Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if note, ok := s.notes[id]; ok {
		return *note, nil
	}
	if _, ok := s.tombstones[id]; ok {
		return Note{}, errNoteDeleted
	}
	return Note{}, errNoteNotFound
}

// Update replaces title/content when the caller's version matches the
// stored one, bumping the version on success.
func (s *NoteStore) Update(id string, version int, title, content string) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes[id]
	if !ok {
		if _, gone := s.tombstones[id]; gone {
			return Note{}, errNoteDeleted
		}
		return Note{}, errNoteNotFound
	}
	if note.Version != version {
		return Note{}, errVersionMismatch
	}

	note.Title = title
	note.Content = content
	note.Version++
	note.UpdatedAt = time.Now().UTC()
	return *note, nil
}

func (s *NoteStore) Archive(id string) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes[id]
	if !ok {
		if _, gone := s.tombstones[id]; gone {
			return Note{}, errNoteDeleted
		}
		return Note{}, errNoteNotFound
	}
	note.Archived = true
	note.UpdatedAt = time.Now().UTC()
	return *note, nil
}

func (s *NoteStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		if _, gone := s.tombstones[id]; gone {
			return errNoteDeleted
		}
		return errNoteNotFound
	}
	delete(s.notes, id)
	s.tombstones[id] = struct{}{}
	return nil
}

func sortNotes(notes []Note) {
	sort.Slice(notes, func(i, j int) bool {
		if notes[i].CreatedAt.Equal(notes[j].CreatedAt) {
			return notes[i].ID < notes[j].ID
		}
		return notes[i].CreatedAt.Before(notes[j].CreatedAt)
	})
}
