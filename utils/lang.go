package utils

import (
	"path"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

var bundle *i18n.Bundle

func InitI18NBundle() {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	bundle.MustLoadMessageFile(path.Join(viper.GetString("i18n.dir"), "en.yaml"))
	bundle.MustLoadMessageFile(path.Join(viper.GetString("i18n.dir"), "pa.yaml"))
}

func NewLocalizer(lang string) *i18n.Localizer {
	return i18n.NewLocalizer(bundle, lang)
}

// Localize resolves a message for the given language, falling back to the
// message ID when the bundle is not loaded or the message is missing.
func Localize(lang, messageID string) string {
	if bundle == nil {
		return messageID
	}

	msg, err := NewLocalizer(lang).Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	return msg
}

// NormalizeLanguage maps an Accept-Language value to one of the supported
// languages, defaulting to English.
func NormalizeLanguage(lang string) string {
	tags, _, err := language.ParseAcceptLanguage(lang)
	if err == nil {
		for _, tag := range tags {
			base, _ := tag.Base()
			if base.String() == "pa" {
				return "pa"
			}
			if base.String() == "en" {
				return "en"
			}
		}
	}

	if strings.HasPrefix(strings.ToLower(lang), "pa") {
		return "pa"
	}
	return "en"
}
