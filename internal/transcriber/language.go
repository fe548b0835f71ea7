package transcriber

// elevenLabsLanguages maps common two/five-character language codes to
// the ISO 639-3 style codes the ElevenLabs scribe model expects.
var elevenLabsLanguages = map[string]string{
	"en": "eng", "en-US": "eng", "en-GB": "eng",
	"es": "spa", "es-ES": "spa", "es-MX": "spa",
	"pt": "por", "pt-BR": "por", "pt-PT": "por",
	"fr": "fra", "fr-FR": "fra",
	"de": "deu", "de-DE": "deu",
	"it": "ita", "it-IT": "ita",
	"ja": "jpn", "ja-JP": "jpn",
	"ko": "kor", "ko-KR": "kor",
	"zh": "cmn", "zh-CN": "cmn", "zh-TW": "cmn",
}

// toElevenLabsLanguage translates a common language code to the
// ElevenLabs dialect. Empty stays empty (auto-detect). Codes that are
// already native, or that we simply don't know, pass through unchanged.
func toElevenLabsLanguage(language string) string {
	if language == "" {
		return ""
	}
	if code, ok := elevenLabsLanguages[language]; ok {
		return code
	}
	return language
}
