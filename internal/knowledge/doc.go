// Package knowledge holds the in-memory document corpus and the keyword
// scorer that ranks it against free-text queries.
//
// The corpus is an immutable snapshot built once at startup from a
// directory of extracted text files. Reloading builds a fresh snapshot
// and swaps it atomically, so a reload can never race an in-flight
// search. Document extraction (PDF, DOCX) happens upstream; this package
// only consumes plain text.
package knowledge
