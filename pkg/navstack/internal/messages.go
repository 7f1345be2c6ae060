package internal

import (
	"embed"
	"path"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle

	localizerMu sync.RWMutex
	localizer   *i18n.Localizer
	currentLang = language.English
)

func getBundle() *i18n.Bundle {
	bundleOnce.Do(func() {
		bundle = i18n.NewBundle(language.English)
		bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

		entries, err := localeFS.ReadDir("locales")
		if err != nil {
			GetInternalLogger().Error("Failed to list locale files", "error", err)
			return
		}
		for _, entry := range entries {
			name := path.Join("locales", entry.Name())
			data, err := localeFS.ReadFile(name)
			if err != nil {
				GetInternalLogger().Error("Failed to read locale file", "file", name, "error", err)
				continue
			}
			if _, err := bundle.ParseMessageFileBytes(data, name); err != nil {
				GetInternalLogger().Error("Failed to parse locale file", "file", name, "error", err)
			}
		}
	})
	return bundle
}

// SupportedLanguages lists the languages with embedded message files.
func SupportedLanguages() []language.Tag {
	return getBundle().LanguageTags()
}

// SetLanguage selects the language used by Localize. Unknown or malformed
// tags fall back to the closest supported language, and English after that.
func SetLanguage(raw string) language.Tag {
	tag, err := language.Parse(raw)
	if err != nil {
		GetInternalLogger().Warn("Unrecognised language, using English", "language", raw, "error", err)
		tag = language.English
	}

	matcher := language.NewMatcher(SupportedLanguages())
	_, idx, _ := matcher.Match(tag)
	tag = SupportedLanguages()[idx]

	localizerMu.Lock()
	defer localizerMu.Unlock()
	currentLang = tag
	localizer = i18n.NewLocalizer(getBundle(), tag.String())
	return tag
}

// Language returns the active language.
func Language() language.Tag {
	localizerMu.RLock()
	defer localizerMu.RUnlock()
	return currentLang
}

// Localize renders the message with the given id. Missing messages render
// as the id itself so a gap in a locale never breaks navigation.
func Localize(id string, data map[string]any) string {
	localizerMu.RLock()
	l := localizer
	localizerMu.RUnlock()

	if l == nil {
		l = i18n.NewLocalizer(getBundle(), language.English.String())
	}

	msg, err := l.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		GetInternalLogger().Debug("Missing translation", "id", id, "error", err)
		return id
	}
	return msg
}
