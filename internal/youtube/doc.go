// Package youtube decides which URLs can be sent to the summarization service.
//
// IsAcceptable is the gate every trigger passes through: it recognises watch,
// shorts and live pages on youtube.com (and its subdomains) plus youtu.be
// short links, and rejects everything else without raising. The package also
// carries the browser match patterns that scope the context menus.
package youtube
