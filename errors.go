package branchver

import "errors"

// Error conditions reported by version computation. All are terminal and
// reported synchronously: the caller gets exactly one of these, never a
// partial result or a substituted fallback version.
var (
	// ErrUnknownBranchType reports a branch-type tag absent from the
	// registry.
	ErrUnknownBranchType = errors.New("unknown branch type")

	// ErrMalformedBranchName reports a branch name that cannot be
	// classified as any known type.
	ErrMalformedBranchName = errors.New("malformed branch name")

	// ErrMissingBranchVersion reports a versioned branch whose name lacks
	// the version fragment.
	ErrMissingBranchVersion = errors.New("branch name should contain a version")

	// ErrMalformedBranchVersion reports a branch version fragment that is
	// not a dotted numeric version.
	ErrMalformedBranchVersion = errors.New("malformed version in branch name")

	// ErrIncompatibleBaseVersion reports a base version whose shape is not
	// legal for the branch type.
	ErrIncompatibleBaseVersion = errors.New("base version unsuitable for branch")

	// ErrBaseVersionBranchMismatch reports a base version that does not
	// carry the exact version embedded in the branch name.
	ErrBaseVersionBranchMismatch = errors.New("base version does not match branch version")

	// ErrInvalidMode reports a build mode other than snapshot or release.
	ErrInvalidMode = errors.New("invalid build mode")

	// ErrModeNotAllowedForBranchType reports a mode the branch type cannot
	// build.
	ErrModeNotAllowedForBranchType = errors.New("build mode not allowed for branch type")

	// ErrUnsupportedCommitTopology reports a commit with more than two
	// parents; no identifier is defined for octopus merges.
	ErrUnsupportedCommitTopology = errors.New("unsupported commit topology")
)
