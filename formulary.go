// Package formulary provides a local reference for spreadsheet formula
// functions. It ships a searchable catalog of function definitions, a set of
// learning guides, persistent bookmarks, and an AI-backed formula explainer.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, yaml/).
package formulary
