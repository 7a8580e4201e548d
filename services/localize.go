package services

import (
	"strings"

	"news-reader/models"
)

type Language string

const (
	English Language = "en"
	Amharic Language = "am"
)

// ParseLanguage maps a preference value to a Language, defaulting to English.
func ParseLanguage(s string) Language {
	if Language(strings.ToLower(strings.TrimSpace(s))) == Amharic {
		return Amharic
	}
	return English
}

func (l Language) Valid() bool { return l == English || l == Amharic }

var (
	noContent = map[Language]string{
		English: "No content available.",
		Amharic: "ይዘት አልተገኘም።",
	}
	noSummary = map[Language]string{
		English: "No summary available.",
		Amharic: "ማጠቃለያ አልተገኘም።",
	}
)

func firstNonBlank(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Title falls back to the other language and is empty only when both are.
func Title(n models.News, lang Language) string {
	if lang == Amharic {
		return firstNonBlank(n.TitleAM, n.TitleEN)
	}
	return firstNonBlank(n.TitleEN, n.TitleAM)
}

// Body tries body, then summary in the preferred language, then the other
// language's body, then a placeholder.
func Body(n models.News, lang Language) string {
	var s string
	if lang == Amharic {
		s = firstNonBlank(n.BodyAM, n.SummaryAM, n.BodyEN)
	} else {
		s = firstNonBlank(n.BodyEN, n.SummaryEN, n.BodyAM)
	}
	if s == "" {
		return noContent[lang]
	}
	return s
}

func Summary(n models.News, lang Language) string {
	var s string
	if lang == Amharic {
		s = firstNonBlank(n.SummaryAM, n.BodyAM, n.SummaryEN)
	} else {
		s = firstNonBlank(n.SummaryEN, n.BodyEN, n.SummaryAM)
	}
	if s == "" {
		return noSummary[lang]
	}
	return s
}
