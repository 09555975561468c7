package changelog

import (
	"fmt"
	"slices"
	"strings"
)

// otherPackageLabel groups commits that touch no named package.
const otherPackageLabel = "Other"

// packageGroup holds the commits that share a package label.
type packageGroup struct {
	label   string
	commits []Commit
}

// RenderContributionsByPackage renders commits grouped by the packages they
// touch. Groups keep first-seen order; each group is a bullet with its label
// followed by an indented contribution list.
func (r *Renderer) RenderContributionsByPackage(commits []Commit) string {
	groups := groupByPackage(commits)

	sections := make([]string, 0, len(groups))
	for _, g := range groups {
		section := "* " + g.label
		if list := r.RenderContributionList(g.commits, "  "); list != "" {
			section += "\n" + list
		}
		sections = append(sections, section)
	}
	return strings.Join(sections, "\n")
}

// groupByPackage groups commits by their package label, preserving order.
func groupByPackage(commits []Commit) []packageGroup {
	var groups []packageGroup
	index := make(map[string]int)

	for _, c := range commits {
		label := packageLabel(c)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, packageGroup{label: label})
		}
		groups[i].commits = append(groups[i].commits, c)
	}

	return groups
}

// packageLabel renders the package list of a commit, e.g. "`api`, `web`".
func packageLabel(c Commit) string {
	if len(c.Packages) == 0 {
		return otherPackageLabel
	}
	quoted := make([]string, len(c.Packages))
	for i, p := range c.Packages {
		quoted[i] = "`" + p + "`"
	}
	return strings.Join(quoted, ", ")
}

// RenderContributorList renders contributors as a sorted bullet list under
// a "Committers" heading with the contributor count.
func RenderContributorList(contributors []Contributor) string {
	lines := make([]string, len(contributors))
	for i, c := range contributors {
		link := fmt.Sprintf("[@%s](%s)", c.Login, c.HTMLURL)
		if c.Name != "" {
			lines[i] = fmt.Sprintf("- %s (%s)", c.Name, link)
		} else {
			lines[i] = "- " + link
		}
	}
	slices.Sort(lines)

	heading := fmt.Sprintf("#### Committers: %d", len(contributors))
	if len(lines) == 0 {
		return heading
	}
	return heading + "\n\n" + strings.Join(lines, "\n")
}
