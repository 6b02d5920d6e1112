// Package branchver computes canonical release identifiers for repositories
// that follow the git-flow branching model, and maps them onto the Debian
// package version domain while preserving their relative order.
//
// The branching model is described at
// http://nvie.com/posts/a-successful-git-branching-model/ with "master",
// "develop", "release-X", "hotfix-X" and "feature-X" branches, each tracked
// by a "debian-" packaging counterpart.
package branchver

import (
	"fmt"
	"regexp"
	"strings"
)

// BranchType classifies a branch by the leading segment of its name. The set
// is closed: build capabilities and base-version shapes exist per type and
// nowhere else, so adding a type is a compile-time change.
type BranchType int

const (
	BranchFeature BranchType = iota
	BranchDevelop
	BranchRelease
	BranchMaster
	BranchHotfix
)

// versionPattern matches dotted numeric versions with at least two groups,
// e.g. "0.14" or "1.2.3".
const versionPattern = `[0-9]+\.[0-9]+(\.[0-9]+)*`

var (
	branchVersionRe = regexp.MustCompile(`^` + versionPattern + `$`)

	nextVersionRe    = regexp.MustCompile(`^` + versionPattern + `next$`)
	rcVersionRe      = regexp.MustCompile(`^(?P<base>` + versionPattern + `)rc[1-9][0-9]*$`)
	releaseVersionRe = regexp.MustCompile(`^` + versionPattern + `$`)
	hotfixVersionRe  = regexp.MustCompile(`^(?P<base>` + versionPattern + `\.[1-9][0-9]*)$`)
)

// Descriptor holds the build capabilities and base-version grammar of a
// branch type.
type Descriptor struct {
	// BuildsSnapshot reports whether the type may produce snapshot versions.
	BuildsSnapshot bool

	// BuildsRelease reports whether the type may produce release versions.
	BuildsRelease bool

	// Versioned reports whether the branch name must embed a version
	// fragment after the type tag.
	Versioned bool

	// BaseVersionPattern describes legal base versions for the type. For
	// versioned types it captures a "base" group that must equal the
	// branch's version fragment.
	BaseVersionPattern *regexp.Regexp
}

// Descriptor returns the fixed descriptor for the branch type.
func (t BranchType) Descriptor() Descriptor {
	switch t {
	case BranchFeature, BranchDevelop:
		return Descriptor{
			BuildsSnapshot:     true,
			BaseVersionPattern: nextVersionRe,
		}
	case BranchRelease:
		return Descriptor{
			BuildsSnapshot:     true,
			BuildsRelease:      true,
			Versioned:          true,
			BaseVersionPattern: rcVersionRe,
		}
	case BranchMaster:
		return Descriptor{
			BuildsRelease:      true,
			BaseVersionPattern: releaseVersionRe,
		}
	case BranchHotfix:
		return Descriptor{
			BuildsSnapshot:     true,
			BuildsRelease:      true,
			Versioned:          true,
			BaseVersionPattern: hotfixVersionRe,
		}
	}
	panic(fmt.Sprintf("no descriptor for branch type %d", int(t)))
}

func (t BranchType) String() string {
	switch t {
	case BranchFeature:
		return "feature"
	case BranchDevelop:
		return "develop"
	case BranchRelease:
		return "release"
	case BranchMaster:
		return "master"
	case BranchHotfix:
		return "hotfix"
	}
	return fmt.Sprintf("BranchType(%d)", int(t))
}

// branchTypeNames is ordered for stable error messages.
var branchTypeNames = []string{"feature", "develop", "release", "master", "hotfix"}

// ParseBranchType maps a branch-type tag to its BranchType. An unknown tag is
// an error, never a default.
func ParseBranchType(tag string) (BranchType, error) {
	switch tag {
	case "feature":
		return BranchFeature, nil
	case "develop":
		return BranchDevelop, nil
	case "release":
		return BranchRelease, nil
	case "master":
		return BranchMaster, nil
	case "hotfix":
		return BranchHotfix, nil
	}
	return 0, fmt.Errorf("%w: %q is not one of %s",
		ErrUnknownBranchType, tag, strings.Join(branchTypeNames, ", "))
}

// Mode selects between snapshot and release builds.
type Mode string

const (
	ModeSnapshot Mode = "snapshot"
	ModeRelease  Mode = "release"
)

// ParseMode validates an externally sourced mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSnapshot, ModeRelease:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: %q should be one of %q or %q",
		ErrInvalidMode, s, ModeSnapshot, ModeRelease)
}

// RepoState is a read-only snapshot of the repository HEAD, as collected by
// Snapshot or supplied directly by the caller. The version generator never
// mutates repository state.
type RepoState struct {
	// Branch is the checked-out branch name, possibly debian-prefixed.
	Branch string

	// CommitID is the short identifier of the current commit. For a
	// two-parent merge landing on a debian branch it joins both parents'
	// short identifiers.
	CommitID string

	// RevisionCount counts the commits reachable from HEAD. It serves only
	// as a monotonic counter.
	RevisionCount int

	// Toplevel is the root of the repository's working tree.
	Toplevel string
}
