package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for error codes.
// data provides the values substituted for {name} placeholders (for example,
// "key" or "anchor").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var catalogue = map[string]map[string]string{
	"en": {
		"empty_document":               "The YAML document is empty.",
		"malformed_yaml":               "{message}",
		"unknown_anchor":               "Unknown anchor '{anchor}'.",
		"duplicate_key":                "Duplicate key '{key}'. It was previously given at line {line}, column {column}.",
		"unsupported_merge":            "Cannot merge a {kind} value into a map.",
		"missing_anchor_for_extension": "The key '{key}' starts with the extension definition prefix '{prefix}' but does not define an anchor.",
		"incorrect_type":               "Expected {expected}, but got {actual}.",
		"invalid_scalar":               "Value '{value}' is not a valid {type} value.",
		"unknown_property":             "Unknown property '{key}'. Known properties are: {known}",
		"missing_property":             "Property '{key}' is required, but it is missing.",
		"forbidden_anchor_or_alias":    "Anchors and aliases are not allowed.",
		"alias_limit":                  "Maximum number of aliases ({max}) has been exceeded.",
		"invalid_property_value":       "Value for '{key}' is invalid: {reason}",
		"unexpected_null":              "Unexpected null or empty value for non-null field.",
		"unknown_polymorphic_type":     "Unknown type '{name}'. Known types are: {known}",
		"missing_type_property":        "Value is missing the '{key}' property to determine its type.",
		"encode_error":                 "{message}",
		"invalid_config":               "Invalid configuration: {message}",
	},
	"ja": {
		"empty_document":               "YAML ドキュメントが空です。",
		"malformed_yaml":               "{message}",
		"unknown_anchor":               "未定義のアンカー '{anchor}' が参照されています。",
		"duplicate_key":                "キー '{key}' が重複しています。最初の定義は {line} 行 {column} 列です。",
		"unsupported_merge":            "{kind} の値はマップにマージできません。",
		"missing_anchor_for_extension": "キー '{key}' は拡張定義プレフィックス '{prefix}' で始まりますが、アンカーが定義されていません。",
		"incorrect_type":               "{expected} が必要ですが、{actual} が指定されました。",
		"invalid_scalar":               "値 '{value}' は有効な {type} ではありません。",
		"unknown_property":             "未知のプロパティ '{key}' です。使用可能なプロパティ: {known}",
		"missing_property":             "必須プロパティ '{key}' が不足しています。",
		"forbidden_anchor_or_alias":    "アンカーとエイリアスは使用できません。",
		"alias_limit":                  "エイリアスの上限 ({max}) を超えました。",
		"invalid_property_value":       "'{key}' の値が不正です: {reason}",
		"unexpected_null":              "null を許容しないフィールドに null または空の値が指定されました。",
		"unknown_polymorphic_type":     "未知の型 '{name}' です。使用可能な型: {known}",
		"missing_type_property":        "型を決定するためのプロパティ '{key}' がありません。",
		"encode_error":                 "{message}",
		"invalid_config":               "設定が不正です: {message}",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := catalogue[t.lang][code]
	if !ok {
		if tmpl, ok = catalogue["en"][code]; !ok {
			return code
		}
	}
	return Expand(tmpl, data)
}

// Expand replaces {name} placeholders in tmpl with values from data.
// Unknown placeholders are left as they are.
func Expand(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	var b strings.Builder
	for {
		open := strings.IndexByte(tmpl, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(tmpl[open:], '}')
		if end < 0 {
			break
		}
		name := tmpl[open+1 : open+end]
		b.WriteString(tmpl[:open])
		if v, ok := data[name]; ok {
			b.WriteString(v)
		} else {
			b.WriteString(tmpl[open : open+end+1])
		}
		tmpl = tmpl[open+end+1:]
	}
	b.WriteString(tmpl)
	return b.String()
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
