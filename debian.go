package branchver

import "strings"

// DebianVersion rewrites an artifact version into a Debian package version.
//
// Debian compares version strings with different rules than the artifact
// domain (see deb-version(7)), so the mapping re-encodes the ordering markers:
// every "_" becomes "~" and every "rc" becomes "~rc", then the package
// revision "-1" is appended. Because "~" sorts before the unadorned form and
// letters sort after end-of-string, the mapping is injective and
// order-preserving over everything Generate can produce.
//
// DebianVersion is pure and total: it never fails, and equal inputs yield
// equal outputs.
func DebianVersion(artifactVersion string) string {
	v := strings.ReplaceAll(artifactVersion, "_", "~")
	v = strings.ReplaceAll(v, "rc", "~rc")
	return v + "-1"
}

// DebianVersionFor generates the artifact version for the given inputs and
// maps it to the Debian domain in one step.
func DebianVersionFor(baseVersion string, state RepoState, mode Mode) (string, error) {
	v, err := Generate(baseVersion, state, mode)
	if err != nil {
		return "", err
	}
	return DebianVersion(v), nil
}
