package changelog

import "slices"

// UnreleasedVersion is the reserved release name for commits that are not
// yet part of a tagged release.
const UnreleasedVersion = "unreleased"

// BlockTable is the only parsed-body block type the renderer inspects.
const BlockTable = "table"

// Document is the root structure of a releases input file.
type Document struct {
	Releases []Release `yaml:"releases"`
}

// Release represents a single release with the commits that went into it.
// Releases are ordered by the upstream provider; the renderer never sorts them.
type Release struct {
	Name         string        `yaml:"name"`
	Date         string        `yaml:"date,omitempty"`
	Commits      []Commit      `yaml:"commits"`
	Contributors []Contributor `yaml:"contributors,omitempty"`
}

// Commit is one change in a release. Categories and the linked issue are
// assigned upstream; a commit without an issue renders as nothing.
type Commit struct {
	Categories  []string `yaml:"categories,omitempty"`
	Packages    []string `yaml:"packages,omitempty"`
	GitHubIssue *Issue   `yaml:"githubIssue,omitempty"`
}

// Issue carries the issue or pull request metadata linked to a commit.
// Number and PullRequest are optional; Body is the raw text the body parser
// consumes and is never read by the renderer.
type Issue struct {
	Number      *int         `yaml:"number,omitempty"`
	Title       string       `yaml:"title"`
	User        User         `yaml:"user"`
	PullRequest *PullRequest `yaml:"pull_request,omitempty"`
	Body        string       `yaml:"body,omitempty"`
	ParsedBody  []Block      `yaml:"parsed_body,omitempty"`
}

// User identifies the author of an issue.
type User struct {
	Login   string `yaml:"login"`
	HTMLURL string `yaml:"html_url"`
}

// PullRequest holds the pull request link of an issue.
type PullRequest struct {
	HTMLURL string `yaml:"html_url"`
}

// Block is one element of a parsed issue body. Only blocks with Type
// BlockTable are meaningful to the renderer; other types are ignored.
type Block struct {
	Type   string     `yaml:"type"`
	Header []string   `yaml:"header,omitempty"`
	Cells  [][]string `yaml:"cells,omitempty"`
}

// Table is the table variant of a Block.
type Table struct {
	Header []string
	Cells  [][]string
}

// Contributor is a person credited in a release.
type Contributor struct {
	Login   string `yaml:"login"`
	HTMLURL string `yaml:"html_url"`
	Name    string `yaml:"name,omitempty"`
}

// CategoryInfo holds the commits of one release that belong to a category.
type CategoryInfo struct {
	Name    string
	Commits []Commit
}

// IsUnreleased returns true if this release holds unreleased changes.
func (r Release) IsUnreleased() bool {
	return r.Name == UnreleasedVersion
}

// HasCategory reports whether the commit is tagged with name.
// A commit without categories matches nothing.
func (c Commit) HasCategory(name string) bool {
	return slices.Contains(c.Categories, name)
}

// IssueNumber returns the issue number and whether one is set.
func (i Issue) IssueNumber() (int, bool) {
	if i.Number == nil {
		return 0, false
	}
	return *i.Number, true
}

// PullRequestURL returns the pull request URL, or "" when the issue is not a
// pull request.
func (i Issue) PullRequestURL() string {
	if i.PullRequest == nil {
		return ""
	}
	return i.PullRequest.HTMLURL
}

// Table returns the table variant of the block.
func (b Block) Table() (Table, bool) {
	if b.Type != BlockTable {
		return Table{}, false
	}
	return Table{Header: b.Header, Cells: b.Cells}, true
}

// NewTableBlock builds a table block from a header and its rows.
func NewTableBlock(header []string, cells [][]string) Block {
	return Block{Type: BlockTable, Header: header, Cells: cells}
}
