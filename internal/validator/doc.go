// Package validator collects lint findings about a registry and its
// environment and reports them.
//
//   - [Severity]: blocking errors, warnings, info notes.
//   - [Issue]: one finding, optionally tied to a server id and field.
//   - [Result]: the aggregate, with helpers to filter by severity.
//   - [Lint]: builds a Result from a loaded compile run.
//   - [Reporter]: writes a Result as text or JSON.
//
// Warnings never block writing a config; they flag output a human should
// look at before it is committed, such as placeholder secrets or references
// that were left literal.
package validator
