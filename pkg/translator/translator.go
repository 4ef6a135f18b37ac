package translator

import (
	"embed"
	"io/fs"
	"os"
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed translation/*.toml
var embedded embed.FS

var Translator *i18n.Bundle

// supported が空なら読み込んだすべての言語を受け付ける
var (
	supported []language.Tag
	matcher   language.Matcher
)

type Config struct {
	// TranslationFolder が空ならバイナリに埋め込んだ翻訳ファイルを使う
	TranslationFolder  string
	SupportedLanguages []string
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	setSupportedLanguages(cfg.SupportedLanguages)

	var (
		fsys fs.FS = embedded
		dir        = "translation"
	)
	if cfg.TranslationFolder != "" {
		fsys, dir = os.DirFS(cfg.TranslationFolder), "."
	}

	lstFiles, err := fs.ReadDir(fsys, dir)
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}

	for _, f := range lstFiles {
		if f.IsDir() || path.Ext(f.Name()) != ".toml" {
			continue
		}
		if _, err := Translator.LoadMessageFileFS(fsys, path.Join(dir, f.Name())); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
		}
	}
}

// Localize はメッセージIDを翻訳します。見つからなければIDをそのまま返します。
func Localize(lang, messageID string) string {
	if Translator == nil || messageID == "" {
		return messageID
	}
	if matcher != nil {
		lang = matchSupported(lang)
	}
	l := i18n.NewLocalizer(Translator, lang, LanguageEn)
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	// 要求言語にない場合は英語の文言とエラーが両方返る
	if msg == "" {
		zap.L().Debug("translation not found", zap.String("lang", lang), zap.String("message_id", messageID), zap.Error(err))
		return messageID
	}
	return msg
}


// setSupportedLanguages は受け付ける言語を設定します。先頭は常に英語です。
func setSupportedLanguages(langs []string) {
	supported, matcher = nil, nil
	if len(langs) == 0 {
		return
	}

	supported = []language.Tag{language.English}
	for _, lang := range langs {
		tag, err := language.Parse(lang)
		if err != nil {
			zap.L().Warn("invalid supported language", zap.String("lang", lang), zap.Error(err))
			continue
		}
		if tag != language.English {
			supported = append(supported, tag)
		}
	}
	matcher = language.NewMatcher(supported)
}

// matchSupported はAccept-Language形式の指定を対応言語のどれかに寄せます。
func matchSupported(lang string) string {
	tags, _, err := language.ParseAcceptLanguage(lang)
	if err != nil || len(tags) == 0 {
		return LanguageEn
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return LanguageEn
	}
	return supported[index].String()
}
