// Package locale holds the site's translations and the language switcher.
// The chosen language is remembered in a cookie file for a year.
package locale

import (
	"embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"corestudio/internal/eventbus"
)

//go:embed messages/*.toml
var messageFS embed.FS

const (
	CookieName   = "locale"
	CookieMaxAge = 365 * 24 * time.Hour
	Fallback     = "en"
)

// Supported lists the available locales in switcher order.
var Supported = []string{"it", "en", "es"}

var ErrUnsupportedLocale = errors.New("unsupported locale")

// IsSupported reports whether code names an available locale.
func IsSupported(code string) bool {
	return slices.Contains(Supported, code)
}

// Match picks the supported locale closest to a language preference such
// as "it-IT" or "es_419", falling back to Fallback.
func Match(preference string) string {
	preference = strings.ReplaceAll(strings.TrimSpace(preference), "_", "-")
	if i := strings.IndexByte(preference, '.'); i >= 0 {
		preference = preference[:i]
	}
	tag, err := language.Parse(preference)
	if err != nil {
		return Fallback
	}
	tags := make([]language.Tag, len(Supported))
	for i, code := range Supported {
		tags[i] = language.MustParse(code)
	}
	_, idx, confidence := language.NewMatcher(tags).Match(tag)
	if confidence == language.No {
		return Fallback
	}
	return Supported[idx]
}

// NewBundle loads the embedded message files.
func NewBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.MustParse(Fallback))
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	for _, code := range Supported {
		path := fmt.Sprintf("messages/active.%s.toml", code)
		if _, err := bundle.LoadMessageFileFS(messageFS, path); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return bundle, nil
}

// Switcher tracks the active locale and translates message ids.
type Switcher struct {
	bundle     *i18n.Bundle
	localizer  *i18n.Localizer
	current    string
	cookiePath string
	bus        eventbus.EventBus
	log        *zap.Logger
	now        func() time.Time
}

// NewSwitcher creates a switcher starting at Fallback. cookiePath may be
// empty to disable persistence; bus and log may be nil.
func NewSwitcher(bundle *i18n.Bundle, cookiePath string, bus eventbus.EventBus, log *zap.Logger) *Switcher {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Switcher{
		bundle:     bundle,
		cookiePath: cookiePath,
		bus:        bus,
		log:        log,
		now:        time.Now,
	}
	s.apply(Fallback)
	return s
}

// Restore switches to the locale saved in the cookie, if any, and reports
// whether one was found. It does not rewrite the cookie.
func (s *Switcher) Restore() bool {
	saved, ok := s.readCookie()
	if !ok {
		return false
	}
	if saved != s.current {
		s.apply(saved)
		s.publish()
	}
	return true
}

// Current returns the active locale code.
func (s *Switcher) Current() string {
	return s.current
}

// Set activates and persists a locale.
func (s *Switcher) Set(code string) error {
	if !IsSupported(code) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLocale, code)
	}
	s.apply(code)
	if err := s.writeCookie(code); err != nil {
		s.log.Warn("failed to persist locale", zap.String("locale", code), zap.Error(err))
	}
	s.publish()
	return nil
}

// Use activates a locale for this session without persisting it.
func (s *Switcher) Use(code string) error {
	if !IsSupported(code) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLocale, code)
	}
	if code != s.current {
		s.apply(code)
		s.publish()
	}
	return nil
}

// Next cycles to the following supported locale and returns it.
func (s *Switcher) Next() string {
	idx := slices.Index(Supported, s.current)
	next := Supported[(idx+1)%len(Supported)]
	_ = s.Set(next)
	return next
}

// T translates a message id. Missing messages render as their id.
func (s *Switcher) T(id string, data ...map[string]any) string {
	cfg := &i18n.LocalizeConfig{MessageID: id}
	if len(data) > 0 {
		cfg.TemplateData = data[0]
	}
	msg, err := s.localizer.Localize(cfg)
	if err != nil {
		return id
	}
	return msg
}

func (s *Switcher) apply(code string) {
	s.current = code
	s.localizer = i18n.NewLocalizer(s.bundle, code, Fallback)
}

func (s *Switcher) publish() {
	if s.bus != nil {
		s.bus.Publish(eventbus.LocaleChangedEvent{Locale: s.current})
	}
}

func (s *Switcher) writeCookie(code string) error {
	if s.cookiePath == "" {
		return nil
	}
	c := &http.Cookie{
		Name:    CookieName,
		Value:   code,
		Path:    "/",
		Expires: s.now().Add(CookieMaxAge),
	}
	if err := os.MkdirAll(filepath.Dir(s.cookiePath), 0755); err != nil {
		return fmt.Errorf("failed to create cookie directory: %w", err)
	}
	if err := os.WriteFile(s.cookiePath, []byte(c.String()+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write cookie: %w", err)
	}
	return nil
}

// readCookie accepts only an unexpired two-letter supported locale.
func (s *Switcher) readCookie() (string, bool) {
	if s.cookiePath == "" {
		return "", false
	}
	data, err := os.ReadFile(s.cookiePath)
	if err != nil {
		return "", false
	}
	c, err := http.ParseSetCookie(strings.TrimSpace(string(data)))
	if err != nil || c.Name != CookieName {
		return "", false
	}
	if !c.Expires.IsZero() && !c.Expires.After(s.now()) {
		return "", false
	}
	if len(c.Value) != 2 || !IsSupported(c.Value) {
		return "", false
	}
	return c.Value, true
}
