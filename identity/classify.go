package identity

import (
	"strings"

	"memsweep/model"
)

// Signature maps a lower-case substring of a process display name to an
// application family. The table is evaluated top to bottom and the first
// match wins, so more specific entries must precede the generic ones
// ("xcode" before "code", "microsoft edge" before "edge").
type Signature struct {
	Match   string
	Key     string
	Name    string
	Icon    string
	Browser bool // family legitimately runs many concurrent children
}

var signatures = []Signature{
	{Match: "google chrome", Key: "chrome", Name: "Google Chrome", Icon: "browser", Browser: true},
	{Match: "chromium", Key: "chromium", Name: "Chromium", Icon: "browser", Browser: true},
	{Match: "brave browser", Key: "brave", Name: "Brave", Icon: "browser", Browser: true},
	{Match: "microsoft edge", Key: "edge", Name: "Microsoft Edge", Icon: "browser", Browser: true},
	{Match: "safari", Key: "safari", Name: "Safari", Icon: "browser", Browser: true},
	{Match: "firefox", Key: "firefox", Name: "Firefox", Icon: "browser", Browser: true},
	{Match: "arc", Key: "arc", Name: "Arc", Icon: "browser", Browser: true},
	{Match: "opera", Key: "opera", Name: "Opera", Icon: "browser", Browser: true},
	{Match: "xcode", Key: "xcode", Name: "Xcode", Icon: "dev"},
	{Match: "visual studio code", Key: "vscode", Name: "Visual Studio Code", Icon: "dev"},
	{Match: "code helper", Key: "vscode", Name: "Visual Studio Code", Icon: "dev"},
	{Match: "intellij", Key: "intellij", Name: "IntelliJ IDEA", Icon: "dev"},
	{Match: "docker", Key: "docker", Name: "Docker", Icon: "dev"},
	{Match: "microsoft teams", Key: "teams", Name: "Microsoft Teams", Icon: "chat"},
	{Match: "slack", Key: "slack", Name: "Slack", Icon: "chat"},
	{Match: "discord", Key: "discord", Name: "Discord", Icon: "chat"},
	{Match: "telegram", Key: "telegram", Name: "Telegram", Icon: "chat"},
	{Match: "whatsapp", Key: "whatsapp", Name: "WhatsApp", Icon: "chat"},
	{Match: "zoom", Key: "zoom", Name: "Zoom", Icon: "chat"},
	{Match: "spotify", Key: "spotify", Name: "Spotify", Icon: "media"},
	{Match: "music", Key: "music", Name: "Music", Icon: "media"},
	{Match: "notion", Key: "notion", Name: "Notion", Icon: "productivity"},
	{Match: "figma", Key: "figma", Name: "Figma", Icon: "productivity"},
	{Match: "obsidian", Key: "obsidian", Name: "Obsidian", Icon: "productivity"},
	{Match: "microsoft word", Key: "word", Name: "Microsoft Word", Icon: "productivity"},
	{Match: "microsoft excel", Key: "excel", Name: "Microsoft Excel", Icon: "productivity"},
	{Match: "mail", Key: "mail", Name: "Mail", Icon: "productivity"},
	{Match: "terminal", Key: "terminal", Name: "Terminal", Icon: "dev"},
	{Match: "iterm", Key: "iterm", Name: "iTerm", Icon: "dev"},
	{Match: "finder", Key: "finder", Name: "Finder", Icon: "system"},
}

// helperMarker is the conventional suffix macOS helper processes carry,
// e.g. "Foo Helper (Renderer)".
const helperMarker = " helper"

// Classify resolves a record's family key, display name, and icon.
// Unrecognized helper processes fold into a family named by the text before
// the helper marker; anything else becomes its own singleton family keyed
// by display name.
func Classify(r model.ProcessRecord) (key, name, icon string) {
	display := r.DisplayName()
	lower := strings.ToLower(display)
	for _, s := range signatures {
		if strings.Contains(lower, s.Match) {
			return s.Key, s.Name, s.Icon
		}
	}
	if idx := strings.Index(lower, helperMarker); idx > 0 {
		base := strings.TrimSpace(display[:idx])
		return base, base, "app"
	}
	return display, display, "app"
}

// browserKeys indexes the families allowed extra retained children during
// smart cleanup.
var browserKeys = func() map[string]bool {
	m := make(map[string]bool)
	for _, s := range signatures {
		if s.Browser {
			m[s.Key] = true
		}
	}
	return m
}()

// IsBrowserFamily reports whether a family key belongs to a browser-like
// application with many legitimate concurrent children.
func IsBrowserFamily(key string) bool {
	return browserKeys[key]
}
