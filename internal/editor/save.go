package editor

import (
	"errors"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/pages"
)

// SaveDraft saves immediately with status forced to draft. A save already in
// flight finishes first.
func (s *Session) SaveDraft() error {
	status := pages.StatusDraft
	return s.save(&status, false)
}

// Publish saves immediately with status forced to published.
func (s *Session) Publish() error {
	status := pages.StatusPublished
	return s.save(&status, false)
}

// Flush saves pending edits right away, keeping the current status.
func (s *Session) Flush() error {
	return s.save(nil, false)
}

func (s *Session) autosave(gen int) {
	s.mu.Lock()
	stale := gen != s.timerGen || s.state == StateClosed
	s.mu.Unlock()
	if stale {
		return
	}
	if err := s.save(nil, true); err != nil && !errors.Is(err, ErrSaveInProgress) {
		s.mu.Lock()
		logger := logging.WithPage(s.logger, s.draft.ID, s.draft.Slug)
		s.mu.Unlock()
		logger.Warn("editor.autosave.failed", "error", err)
	}
}

// save writes the whole draft. A new page is created and the session adopts
// its id; every later save is an update.
func (s *Session) save(status *pages.Status, auto bool) error {
	s.mu.Lock()
	if err := s.usableLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.saving && auto {
		s.armLocked()
		logging.WithPage(s.logger, s.draft.ID, s.draft.Slug).Debug("editor.autosave.deferred")
		s.mu.Unlock()
		return ErrSaveInProgress
	}
	for s.saving {
		s.idle.Wait()
	}
	if err := s.usableLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	if auto && s.state != StateUnsaved {
		s.mu.Unlock()
		return nil
	}

	s.stopTimerLocked()
	s.saving = true
	s.state = StateSaving
	revision := s.revision
	remoteGen := s.remoteGen
	draft := s.draft.Clone()
	if status != nil {
		draft.Status = *status
	}
	s.savedPrint = fingerprint(draft)
	ctx := s.ctx
	s.mu.Unlock()

	id, err := s.write(draft)

	s.mu.Lock()
	s.saving = false
	s.idle.Broadcast()
	if s.state == StateClosed {
		s.mu.Unlock()
		return err
	}
	if err != nil {
		s.lastErr = err
		s.state = StateUnsaved
		s.mu.Unlock()
		return err
	}

	created := s.draft.ID == "" && id != ""
	if created {
		s.draft.ID = id
	}
	if status != nil {
		s.draft.Status = *status
	}
	s.lastErr = nil
	s.storedPrint = s.savedPrint
	s.overwroteAt = s.storedAt
	if s.remoteGen == remoteGen {
		s.remoteChanged = s.remoteDeleted
	}
	if s.revision == revision {
		s.state = StateReady
	} else {
		s.state = StateUnsaved
		s.armLocked()
	}
	s.mu.Unlock()

	if created {
		if err := s.subscribe(id); err != nil {
			logging.WithPage(s.logger, id, draft.Slug).WithContext(ctx).Warn("editor.watch.failed", "error", err)
		}
	}
	return nil
}

func (s *Session) write(draft *pages.Page) (string, error) {
	if draft.ID == "" {
		settings := draft.Settings
		return s.pages.Create(s.ctx, pages.PageDraft{
			Slug:     draft.Slug,
			Title:    draft.Title,
			Status:   draft.Status,
			SEO:      draft.SEO,
			Blocks:   draft.Blocks,
			Settings: &settings,
		})
	}
	slug := draft.Slug
	status := draft.Status
	seo := draft.SEO
	settings := draft.Settings
	return draft.ID, s.pages.Update(s.ctx, draft.ID, pages.PagePatch{
		Slug:        &slug,
		Title:       draft.Title,
		Status:      &status,
		SEO:         &seo,
		Blocks:      draft.Blocks,
		ClearBlocks: len(draft.Blocks) == 0,
		Settings:    &settings,
	})
}
