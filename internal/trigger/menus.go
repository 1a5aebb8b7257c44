package trigger

import (
	"errors"
	"fmt"

	"whispersend/internal/youtube"
)

const (
	MenuSendPage = "whisper-send-page"
	MenuSendLink = "whisper-send-link"
)

// ErrUnknownMenu reports a click on a menu item this package did not register.
var ErrUnknownMenu = errors.New("unknown menu item")

// Menu is a context-menu registration.
type Menu struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Contexts []string `json:"contexts"`
	// DocumentURLPatterns restrict the menu to matching pages.
	DocumentURLPatterns []string `json:"document_url_patterns,omitempty"`
	// TargetURLPatterns restrict the menu to matching link targets.
	TargetURLPatterns []string `json:"target_url_patterns,omitempty"`
}

// Menus returns the context menus to register at startup.
func Menus() []Menu {
	return []Menu{
		{
			ID:                  MenuSendPage,
			Title:               "Send YouTube to Whisper Summary",
			Contexts:            []string{"page"},
			DocumentURLPatterns: append([]string(nil), youtube.PagePatterns...),
		},
		{
			ID:                MenuSendLink,
			Title:             "Send YouTube link to Whisper Summary",
			Contexts:          []string{"link"},
			TargetURLPatterns: append([]string(nil), youtube.LinkPatterns...),
		},
	}
}

// Shown reports whether the host would offer menu for a page or link URL.
func (m Menu) Shown(pageURL, linkURL string) bool {
	switch {
	case len(m.DocumentURLPatterns) > 0:
		return youtube.MatchAny(m.DocumentURLPatterns, pageURL)
	case len(m.TargetURLPatterns) > 0:
		return linkURL != "" && youtube.MatchAny(m.TargetURLPatterns, linkURL)
	default:
		return true
	}
}

// MenuClick is a context-menu click event.
type MenuClick struct {
	MenuItemID string `json:"menu_item_id" validate:"required"`
	PageURL    string `json:"page_url"`
	LinkURL    string `json:"link_url"`
}

// FromMenuClick routes a click to its Source.
func FromMenuClick(click MenuClick, tab *Tab) (Source, error) {
	switch click.MenuItemID {
	case MenuSendPage:
		return PageMenu{PageURL: click.PageURL, Tab: tab}, nil
	case MenuSendLink:
		return LinkMenu{LinkURL: click.LinkURL}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMenu, click.MenuItemID)
	}
}
