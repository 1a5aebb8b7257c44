package trigger

// Kind names a trigger entry point.
type Kind string

const (
	KindToolbar  Kind = "toolbar"
	KindPageMenu Kind = "page_menu"
	KindLinkMenu Kind = "link_menu"
)

// Source is a user action that yields a candidate URL. An unavailable URL is
// the empty string.
type Source interface {
	Kind() Kind
	CandidateURL() string
}

// Tab is the browser tab a trigger fired in. A nil *Tab means no active tab.
type Tab struct {
	ID  int    `json:"id,omitempty"`
	URL string `json:"url"`
}

func (t *Tab) url() string {
	if t == nil {
		return ""
	}
	return t.URL
}

// Toolbar is a toolbar-button activation on the active tab.
type Toolbar struct {
	Tab *Tab
}

func (Toolbar) Kind() Kind { return KindToolbar }
func (t Toolbar) CandidateURL() string { return t.Tab.url() }

// PageMenu is the "send page" context menu; the candidate is the page URL the
// menu was opened on, falling back to the tab's address.
type PageMenu struct {
	PageURL string
	Tab     *Tab
}

func (PageMenu) Kind() Kind { return KindPageMenu }

func (p PageMenu) CandidateURL() string {
	if p.PageURL != "" {
		return p.PageURL
	}
	return p.Tab.url()
}

// LinkMenu is the "send link" context menu; the candidate is the link that
// was right-clicked.
type LinkMenu struct {
	LinkURL string
}

func (LinkMenu) Kind() Kind { return KindLinkMenu }
func (l LinkMenu) CandidateURL() string { return l.LinkURL }
