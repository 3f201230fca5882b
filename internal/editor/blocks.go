package editor

import (
	"slices"

	"github.com/goliatone/go-pagebuilder/internal/blocks"
	"github.com/goliatone/go-pagebuilder/internal/pages"
)

// AddBlock appends a block of type t built from the registry defaults and
// selects it.
func (s *Session) AddBlock(t blocks.Type) (string, error) {
	block, err := s.registry.NewBlock(t)
	if err != nil {
		return "", err
	}
	return s.insert(block)
}

// AddGeneratedBlock appends a block whose content for the current language
// is payload, typically produced by a content assistant. The payload must
// satisfy the type's schema. When editing a language other than the base
// language, the payload also seeds the base language so the block stays
// renderable everywhere.
func (s *Session) AddGeneratedBlock(t blocks.Type, payload map[string]any) (string, error) {
	if err := s.registry.ValidateContent(t, payload); err != nil {
		return "", err
	}
	block, err := s.registry.NewBlock(t)
	if err != nil {
		return "", err
	}
	lang := s.Language()
	block.Content[lang] = blocks.CloneMap(payload)
	if lang != blocks.BaseLanguage {
		block.Content[blocks.BaseLanguage] = blocks.CloneMap(payload)
	}
	return s.insert(block)
}

func (s *Session) insert(block blocks.Block) (string, error) {
	err := s.mutate(func(draft *pages.Page) error {
		block.Order = len(draft.Blocks)
		draft.Blocks = blocks.Renumber(append(draft.Blocks, block))
		s.selected = block.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	return block.ID, nil
}

func (s *Session) RemoveBlock(id string) error {
	return s.mutate(func(draft *pages.Page) error {
		idx, err := s.blockIndexLocked(id)
		if err != nil {
			return err
		}
		draft.Blocks = blocks.Densify(slices.Delete(draft.Blocks, idx, idx+1))
		if s.selected == id {
			s.selected = ""
		}
		return nil
	})
}

// DuplicateBlock inserts a copy of id right after it and selects the copy.
func (s *Session) DuplicateBlock(id string) (string, error) {
	var newID string
	err := s.mutate(func(draft *pages.Page) error {
		idx, err := s.blockIndexLocked(id)
		if err != nil {
			return err
		}
		copied := draft.Blocks[idx].Clone()
		copied.ID = blocks.NewID()
		draft.Blocks = blocks.Densify(slices.Insert(draft.Blocks, idx+1, copied))
		newID = copied.ID
		s.selected = newID
		return nil
	})
	return newID, err
}

// MoveBlockUp swaps id with the block before it. Moving the first block is
// a no-op.
func (s *Session) MoveBlockUp(id string) error {
	return s.move(id, -1)
}

// MoveBlockDown swaps id with the block after it. Moving the last block is
// a no-op.
func (s *Session) MoveBlockDown(id string) error {
	return s.move(id, 1)
}

func (s *Session) move(id string, delta int) error {
	return s.mutate(func(draft *pages.Page) error {
		idx, err := s.blockIndexLocked(id)
		if err != nil {
			return err
		}
		target := idx + delta
		if target < 0 || target >= len(draft.Blocks) {
			return nil
		}
		draft.Blocks[idx], draft.Blocks[target] = draft.Blocks[target], draft.Blocks[idx]
		draft.Blocks = blocks.Densify(draft.Blocks)
		return nil
	})
}

func (s *Session) ToggleBlock(id string) error {
	return s.mutate(func(draft *pages.Page) error {
		idx, err := s.blockIndexLocked(id)
		if err != nil {
			return err
		}
		draft.Blocks[idx].Enabled = !draft.Blocks[idx].Enabled
		return nil
	})
}

// SetBlockField sets one content field in the current language. A language
// without content starts from a copy of the base language content.
func (s *Session) SetBlockField(id, field string, value any) error {
	return s.mutate(func(draft *pages.Page) error {
		idx, err := s.blockIndexLocked(id)
		if err != nil {
			return err
		}
		block := &draft.Blocks[idx]
		if block.Content == nil {
			block.Content = blocks.Content{}
		}
		current, ok := block.Content[s.lang]
		if !ok || current == nil {
			current = blocks.Resolve(*block, s.lang)
		}
		current[field] = value
		block.Content[s.lang] = current
		return nil
	})
}

// ReplaceBlockContent swaps the current language content of id for payload
// after validating it against the block type's schema.
func (s *Session) ReplaceBlockContent(id string, payload map[string]any) error {
	s.mu.Lock()
	idx, err := s.blockIndexLocked(id)
	var t blocks.Type
	if err == nil {
		t = s.draft.Blocks[idx].Type
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if err := s.registry.ValidateContent(t, payload); err != nil {
		return err
	}
	return s.mutate(func(draft *pages.Page) error {
		idx, err := s.blockIndexLocked(id)
		if err != nil {
			return err
		}
		if draft.Blocks[idx].Content == nil {
			draft.Blocks[idx].Content = blocks.Content{}
		}
		draft.Blocks[idx].Content[s.lang] = blocks.CloneMap(payload)
		return nil
	})
}

// SetBlockSetting overrides one settings key on id. A nil value removes the
// override so the registry default applies again.
func (s *Session) SetBlockSetting(id, key string, value any) error {
	return s.mutate(func(draft *pages.Page) error {
		idx, err := s.blockIndexLocked(id)
		if err != nil {
			return err
		}
		block := &draft.Blocks[idx]
		if value == nil {
			delete(block.Settings, key)
			return nil
		}
		if block.Settings == nil {
			block.Settings = blocks.Settings{}
		}
		block.Settings[key] = value
		return nil
	})
}
