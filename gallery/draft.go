package gallery

import (
	"context"

	"greengallery/core"
)

// The draft controller implements the Viewing -> Editing -> Viewing
// lifecycle for appearance settings. The editing state is a non-nil draft
// buffer: nil means Viewing. Committed state is only ever touched by Commit,
// which copies the whole buffer back in one step.

// BeginEdit copies the committed appearance into a fresh draft buffer and
// enters the Editing state. Calling it while already editing restarts the
// draft from committed values.
func (s *Service) BeginEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft := s.snap.Appearance
	s.draft = &draft
}

// Editing reports whether an edit is in progress.
func (s *Service) Editing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft != nil
}

// Draft returns a copy of the draft buffer and whether one exists.
func (s *Service) Draft() (core.Appearance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return core.Appearance{}, false
	}
	return *s.draft, true
}

// UpdateDraft applies fn to the draft buffer. Values are accepted as-is:
// free-text colors that are not valid color syntax degrade in rendering,
// they are not rejected here.
func (s *Service) UpdateDraft(fn func(*core.Appearance)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return core.ErrNotEditing
	}
	fn(s.draft)
	return nil
}

// Commit copies every draft field into the committed appearance, persists
// the full snapshot in a single write and returns to Viewing. There is no
// field-level commit: the buffer lands whole or not at all.
func (s *Service) Commit(ctx context.Context) error {
	s.mu.Lock()
	if s.draft == nil {
		s.mu.Unlock()
		return core.ErrNotEditing
	}
	s.snap.Appearance = *s.draft
	s.draft = nil
	snapCopy := s.snap.Clone()
	s.mu.Unlock()

	s.log.Info("Appearance committed")
	s.persist(ctx, snapCopy)
	return nil
}

// Cancel discards the draft buffer without touching committed state and
// returns to Viewing.
func (s *Service) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return core.ErrNotEditing
	}
	s.draft = nil
	return nil
}
