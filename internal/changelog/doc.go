// Package changelog assembles the unreleased changelog from fragment files.
//
// This package implements:
//   - Fragment discovery in category directories (bugfixes, features, issues, other)
//   - Pull request backlinks on bullet lines of bugfixes and features fragments
//   - Rendering of the fixed section layout for the standard and auto products
//   - Comparing against, and rewriting, the persisted CHANGELOG.md
//   - Re-rendering on fragment changes for local previews
//
// Fragments are concatenated in filename order. A missing category directory
// contributes nothing; a root that does not exist renders empty sections.
package changelog
