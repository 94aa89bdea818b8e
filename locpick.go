// Package locpick extracts XPath locators for named content fields from
// web pages. A language model infers each locator from a structural digest
// of the page; the locator is then validated against the live document and
// the outcome recorded as one row per (URL, field) pair.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, htmlquery/).
// The batch pipeline and its concurrency controller live in extract/.
package locpick
