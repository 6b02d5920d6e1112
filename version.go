package branchver

import (
	"fmt"
	"strings"
)

// Generate computes the canonical artifact version for a commit.
//
// The inputs are the base version (one non-comment line of the version file,
// see ReadBaseVersion), a repository state snapshot and the build mode. In
// release mode the result is the base version unchanged; in snapshot mode the
// revision count and commit identifier are appended:
//
//	BRANCH:  /  MODE: snapshot        release
//	--------          ------------------------------
//	feature           0.14next_150    N/A
//	develop           0.14next_151    N/A
//	release           0.14rc2_249     0.14rc2
//	master            N/A             0.14
//	hotfix            0.14.1_121      0.14.1
//
// The "next" suffix denotes the upcoming version, living only on develop and
// feature branches; "rc" denotes release candidates on release branches. The
// suffixes are chosen so that for a fixed line X.Y all producible versions
// are totally ordered under Compare:
//
//	X.Yrc2_* < X.Yrc2 < X.Y < X.Ynext_* < X.Ynext < X.Y.1_* < X.Y.1
//
// Snapshots order before the version they lead up to, and consecutive
// snapshots from one branch order by revision count.
func Generate(baseVersion string, state RepoState, mode Mode) (string, error) {
	norm, tag := Classify(state.Branch)

	btype, err := ParseBranchType(tag)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrMalformedBranchName, state.Branch, err)
	}
	desc := btype.Descriptor()

	var branchVersion string
	if desc.Versioned {
		parts := strings.Split(norm, "-")
		if len(parts) < 2 {
			return "", fmt.Errorf("%w: %q", ErrMissingBranchVersion, state.Branch)
		}
		branchVersion = parts[1]
		if !branchVersionRe.MatchString(branchVersion) {
			return "", fmt.Errorf("%w: %q in branch %q",
				ErrMalformedBranchVersion, branchVersion, state.Branch)
		}
	}

	m := desc.BaseVersionPattern.FindStringSubmatch(baseVersion)
	if m == nil {
		return "", fmt.Errorf("%w: %q for branch %q",
			ErrIncompatibleBaseVersion, baseVersion, state.Branch)
	}
	if desc.Versioned && m[desc.BaseVersionPattern.SubexpIndex("base")] != branchVersion {
		return "", fmt.Errorf("%w: base version %q on branch %q",
			ErrBaseVersionBranchMismatch, baseVersion, state.Branch)
	}

	mode, err = ParseMode(string(mode))
	if err != nil {
		return "", err
	}

	snapshot := mode == ModeSnapshot
	if (snapshot && !desc.BuildsSnapshot) || (!snapshot && !desc.BuildsRelease) {
		return "", fmt.Errorf("%w: %s build on %s branch",
			ErrModeNotAllowedForBranchType, mode, tag)
	}

	if snapshot {
		return fmt.Sprintf("%s_%d_%s", baseVersion, state.RevisionCount, state.CommitID), nil
	}
	return baseVersion, nil
}
