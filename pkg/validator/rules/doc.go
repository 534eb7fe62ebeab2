// Package rules provides the built-in validators.
//
// Import it with a blank identifier to register every validator with the
// default registry:
//
//	import _ "github.com/tool-recommender-bot/redpen/pkg/validator/rules"
//
// Sentence validators:
//   - KatakanaEndHyphen: katakana words of four or more characters ending
//     in the long-vowel mark
//   - SentenceLength: sentences longer than max_len runes
//   - InvalidExpression: forbidden expressions from list/dict
//   - Script: checks written in Starlark
//
// Paragraph validators:
//   - ParagraphStartWith: paragraphs not starting with start_from
//
// Document validators:
//   - ParagraphNumber: sections with more than max_num paragraphs
package rules
