package editor

import (
	"github.com/goliatone/go-pagebuilder/internal/pages"
)

// SetTitle sets the page title in the current language.
func (s *Session) SetTitle(title string) error {
	return s.mutate(func(draft *pages.Page) error {
		if draft.Title == nil {
			draft.Title = pages.Localized{}
		}
		draft.Title[s.lang] = title
		return nil
	})
}

// SetSlug stores slug as typed. It is normalized when the page is saved.
func (s *Session) SetSlug(slug string) error {
	return s.mutate(func(draft *pages.Page) error {
		draft.Slug = slug
		return nil
	})
}

func (s *Session) SetSEOTitle(title string) error {
	return s.mutate(func(draft *pages.Page) error {
		if draft.SEO.Title == nil {
			draft.SEO.Title = pages.Localized{}
		}
		draft.SEO.Title[s.lang] = title
		return nil
	})
}

func (s *Session) SetSEODescription(description string) error {
	return s.mutate(func(draft *pages.Page) error {
		if draft.SEO.Description == nil {
			draft.SEO.Description = pages.Localized{}
		}
		draft.SEO.Description[s.lang] = description
		return nil
	})
}

func (s *Session) SetSEOKeywords(keywords []string) error {
	return s.mutate(func(draft *pages.Page) error {
		draft.SEO.Keywords = cloneKeywords(keywords)
		return nil
	})
}

func (s *Session) SetOGImage(url string) error {
	return s.mutate(func(draft *pages.Page) error {
		draft.SEO.OGImage = url
		return nil
	})
}

func (s *Session) SetNoIndex(noIndex bool) error {
	return s.mutate(func(draft *pages.Page) error {
		draft.SEO.NoIndex = noIndex
		return nil
	})
}

// SetSettings replaces the page level settings.
func (s *Session) SetSettings(settings pages.Settings) error {
	return s.mutate(func(draft *pages.Page) error {
		draft.Settings = settings
		return nil
	})
}
