// Package changelog renders Markdown changelogs from categorized releases.
//
// This package implements:
//   - the Renderer: category grouping, contribution lines with issue and
//     pull request links, closing-reference rewriting, and the security
//     test target appendix
//   - package and contributor renderers for alternative layouts
//   - loading and validation of releases documents (YAML or JSON)
//   - release lookup and a terminal summary formatter for the CLI
//
// Rendering is pure: it performs no I/O and never modifies its input.
package changelog
