package locale

import (
	"embed"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed messages/*.toml
var messageFiles embed.FS

func NewBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	for _, code := range Supported {
		path := fmt.Sprintf("messages/messages.%s.toml", code)
		if _, err := bundle.LoadMessageFileFS(messageFiles, path); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	return bundle, nil
}

// Translator renders messages for one language. Unknown ids render as the id itself.
type Translator struct {
	code      string
	localizer *i18n.Localizer
}

func NewTranslator(bundle *i18n.Bundle, code string) *Translator {
	code = Resolve(code)
	return &Translator{
		code:      code,
		localizer: i18n.NewLocalizer(bundle, code),
	}
}

func (t *Translator) Language() string {
	return t.code
}

func (t *Translator) T(id string) string {
	return t.Tf(id, nil)
}

func (t *Translator) Tf(id string, data map[string]any) string {
	message, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return message
}
