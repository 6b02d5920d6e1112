package branchver

import "strings"

const (
	// debianRoot is the packaging counterpart of master.
	debianRoot = "debian"

	// debianPrefix marks the packaging counterpart of any other branch.
	debianPrefix = "debian-"
)

// NormalizeBranch maps a packaging branch back to its working branch: the
// bare "debian" branch becomes "master", and a single leading "debian-" is
// stripped. Working branch names pass through unchanged.
func NormalizeBranch(name string) string {
	if name == debianRoot {
		name = debianPrefix + "master"
	}
	return strings.TrimPrefix(name, debianPrefix)
}

// Classify splits a branch name into its normalized form and its type tag:
// the segment before the first "-", or the whole name when there is none.
// Classify is pure and total; tag membership is the registry's concern, see
// ParseBranchType.
func Classify(name string) (normalized, tag string) {
	normalized = NormalizeBranch(name)
	tag = normalized
	if i := strings.Index(normalized, "-"); i >= 0 {
		tag = normalized[:i]
	}
	return normalized, tag
}

// IsDebianBranch reports whether name refers to a packaging branch. This is
// a naming convention check, deliberately not inferred from merge topology.
func IsDebianBranch(name string) bool {
	return name == debianRoot || strings.HasPrefix(name, debianPrefix)
}

// DebianBranchName returns the packaging counterpart of a working branch
// name: "debian" for master, "debian-"+name otherwise.
func DebianBranchName(branch string) string {
	if branch == "master" {
		return debianRoot
	}
	return debianPrefix + branch
}

// DefaultDebianBranch is the packaging branch a working branch falls back to
// when its own counterpart does not exist yet.
func (t BranchType) DefaultDebianBranch() string {
	switch t {
	case BranchFeature, BranchDevelop, BranchRelease:
		return debianPrefix + "develop"
	case BranchMaster, BranchHotfix:
		return debianRoot
	}
	panic("no default debian branch for branch type " + t.String())
}
