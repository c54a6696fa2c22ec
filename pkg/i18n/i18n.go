// Package i18n serves the user-facing soft-failure strings. The product UI
// is Japanese; English is kept for development setups.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var languages = []string{"ja", "en"}

// Message IDs
const (
	MsgChatError           = "chat_error"
	MsgInsufficientCredits = "insufficient_credits"
	MsgAwaitingResponse    = "awaiting_response"
	MsgSessionNotFound     = "session_not_found"
)

// Localizer manages internationalization
type Localizer struct {
	bundle          *i18n.Bundle
	defaultLanguage string
	localizers      map[string]*i18n.Localizer
}

// NewLocalizer creates a localizer with the embedded message files.
func NewLocalizer(defaultLanguage string) (*Localizer, error) {
	bundle := i18n.NewBundle(language.Japanese)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, lang := range languages {
		if _, err := bundle.LoadMessageFileFS(localeFS, fmt.Sprintf("locales/%s.json", lang)); err != nil {
			return nil, fmt.Errorf("failed to load language file %s: %w", lang, err)
		}
	}

	localizers := make(map[string]*i18n.Localizer)
	for _, lang := range languages {
		localizers[lang] = i18n.NewLocalizer(bundle, lang)
	}

	if _, ok := localizers[defaultLanguage]; !ok {
		defaultLanguage = "ja"
	}

	return &Localizer{
		bundle:          bundle,
		defaultLanguage: defaultLanguage,
		localizers:      localizers,
	}, nil
}

// Get returns the localized message for the default language.
func (l *Localizer) Get(messageID string) string {
	return l.GetLang(l.defaultLanguage, messageID)
}

// GetLang returns the localized message for the given language.
func (l *Localizer) GetLang(lang, messageID string) string {
	localizer, exists := l.localizers[lang]
	if !exists {
		localizer = l.localizers[l.defaultLanguage]
	}

	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID // Fallback to message ID
	}

	return msg
}
