package branchver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeBranch(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"debian", "master"},
		{"debian-develop", "develop"},
		{"debian-release-0.14", "release-0.14"},
		{"debian-hotfix-0.14.1", "hotfix-0.14.1"},
		{"master", "master"},
		{"develop", "develop"},
		{"feature-quota", "feature-quota"},
		// Only one leading marker is stripped.
		{"debian-debian-develop", "debian-develop"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.want, NormalizeBranch(test.name))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		normalized string
		tag        string
	}{
		{"master", "master", "master"},
		{"develop", "develop", "develop"},
		{"feature-quota", "feature-quota", "feature"},
		{"release-0.14", "release-0.14", "release"},
		{"hotfix-0.14.1", "hotfix-0.14.1", "hotfix"},
		{"debian", "master", "master"},
		{"debian-release-0.14", "release-0.14", "release"},
		// Classification is total; membership is the registry's concern.
		{"wip-thing", "wip-thing", "wip"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			normalized, tag := Classify(test.name)
			require.Equal(t, test.normalized, normalized)
			require.Equal(t, test.tag, tag)
		})
	}
}

func TestIsDebianBranch(t *testing.T) {
	require.True(t, IsDebianBranch("debian"))
	require.True(t, IsDebianBranch("debian-develop"))
	require.True(t, IsDebianBranch("debian-release-0.14"))
	require.False(t, IsDebianBranch("develop"))
	require.False(t, IsDebianBranch("master"))
	require.False(t, IsDebianBranch("debianish"))
}

func TestDebianBranchName(t *testing.T) {
	require.Equal(t, "debian", DebianBranchName("master"))
	require.Equal(t, "debian-develop", DebianBranchName("develop"))
	require.Equal(t, "debian-release-0.14", DebianBranchName("release-0.14"))
	require.Equal(t, "debian-feature-quota", DebianBranchName("feature-quota"))
}

func TestDefaultDebianBranch(t *testing.T) {
	require.Equal(t, "debian-develop", BranchFeature.DefaultDebianBranch())
	require.Equal(t, "debian-develop", BranchDevelop.DefaultDebianBranch())
	require.Equal(t, "debian-develop", BranchRelease.DefaultDebianBranch())
	require.Equal(t, "debian", BranchMaster.DefaultDebianBranch())
	require.Equal(t, "debian", BranchHotfix.DefaultDebianBranch())
}
