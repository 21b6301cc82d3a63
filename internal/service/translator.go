package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/zunxo7/DentalCare-AI/internal/logger"
	"github.com/zunxo7/DentalCare-AI/internal/prompts"
)

// Translator moves text between English and the user's language through the
// completion backend. Translation is best-effort: any failure returns the
// original text so the pipeline never aborts on a translation error.
type Translator struct {
	llm   CompletionProvider
	model string
}

// NewTranslator creates a translator bound to the given completion backend.
func NewTranslator(llm CompletionProvider, model string) *Translator {
	return &Translator{llm: llm, model: model}
}

// ToEnglish translates text into English. Pass-through when source is
// already English.
func (t *Translator) ToEnglish(ctx context.Context, text string, source Language) string {
	if source == LanguageEnglish {
		return text
	}
	return t.translate(ctx, text, fmt.Sprintf(prompts.TranslateToEnglishPrompt, languageName(source)))
}

// FromEnglish translates English text into the target language. Pass-through
// when the target is English.
func (t *Translator) FromEnglish(ctx context.Context, text string, target Language) string {
	if target == LanguageEnglish {
		return text
	}
	return t.translate(ctx, text, fmt.Sprintf(prompts.TranslateFromEnglishPrompt, languageName(target)))
}

func (t *Translator) translate(ctx context.Context, text, system string) string {
	out, err := t.llm.Complete(ctx, &CompletionRequest{
		Model:       t.model,
		System:      system,
		User:        text,
		Temperature: 0.2,
		MaxTokens:   600,
	})
	if err != nil {
		logger.CtxWarn(ctx, "Translation failed, passing text through: error=%v", err)
		return text
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return text
	}
	return out
}

// languageName renders a Language for use inside prompt text.
func languageName(lang Language) string {
	switch lang {
	case LanguageUrdu:
		return "Urdu"
	case LanguageRomanUrdu:
		return "Roman Urdu (Urdu written in Latin script)"
	default:
		return "English"
	}
}
