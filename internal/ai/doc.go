// Package ai wraps an OpenAI-compatible chat-completion endpoint used to
// author collateral prose. The provider is a black box to the rest of
// the server: it takes a system and user prompt and returns text. Prompt
// shaping (topic, format, corpus context under a fixed character budget)
// also lives here so the budget is enforced in one place.
package ai
