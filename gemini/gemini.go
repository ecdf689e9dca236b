// Package gemini implements [scout.Provider] for the Google Gemini API.
//
// It wraps the google.golang.org/genai chat API, translating between scout's
// domain types and the Gemini API types. Streaming uses the SDK's iter.Seq2
// iterator, wrapped into the pull-based [scout.Stream] interface. Web sources
// from Google Search grounding arrive as grounding chunks on each response
// and are surfaced as fragment citations.
package gemini
