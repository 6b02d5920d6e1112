package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/branchtools/branchver"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

var testSignature = &object.Signature{
	Name:  "test",
	Email: "test@example.com",
	When:  time.Now(),
}

// testRepoOnBranch initializes a disk repository with a version file
// committed on master and the given branch checked out.
func testRepoOnBranch(t *testing.T, branch, baseVersion string) *git.Repository {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "version"), []byte(baseVersion+"\n"), 0o644))

	workTree, err := repo.Worktree()
	require.NoError(t, err)
	_, err = workTree.Add("version")
	require.NoError(t, err)
	_, err = workTree.Commit("Initial commit", &git.CommitOptions{Author: testSignature})
	require.NoError(t, err)

	if branch != "master" {
		require.NoError(t, workTree.Checkout(&git.CheckoutOptions{
			Branch: plumbing.NewBranchReferenceName(branch),
			Create: true,
		}))
	}
	return repo
}

func TestNewParser(t *testing.T) {
	// kong.New fails if the grammar references a var the parser does not
	// define, so constructing the parser checks the version flag binding.
	parser, err := newParser()
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{"classify", "master"})
	require.NoError(t, err)
	require.Equal(t, "classify <branch>", ctx.Command())

	model := parser.Model
	var found bool
	for _, flag := range model.Flags {
		if flag.Name == "version" {
			found = true
		}
	}
	require.True(t, found, "expected a --version flag")
}

func TestComputeVersions(t *testing.T) {
	t.Run("Snapshot on develop", func(t *testing.T) {
		repo := testRepoOnBranch(t, "develop", "0.14next")

		report, err := computeVersions(repo, branchver.ModeSnapshot)
		require.NoError(t, err)

		head, err := repo.Head()
		require.NoError(t, err)

		require.Equal(t, "develop", report.Branch)
		require.Equal(t, "0.14next", report.Base)
		require.Equal(t, "0.14next_1_"+head.Hash().String()[:7], report.Artifact)
		require.Equal(t, "0.14next~1~"+head.Hash().String()[:7]+"-1", report.Debian)
	})

	t.Run("Release on master", func(t *testing.T) {
		repo := testRepoOnBranch(t, "master", "0.14")

		report, err := computeVersions(repo, branchver.ModeRelease)
		require.NoError(t, err)
		require.Equal(t, "0.14", report.Artifact)
		require.Equal(t, "0.14-1", report.Debian)
	})

	t.Run("Disallowed mode surfaces the library error", func(t *testing.T) {
		repo := testRepoOnBranch(t, "master", "0.14")

		_, err := computeVersions(repo, branchver.ModeSnapshot)
		require.ErrorIs(t, err, branchver.ErrModeNotAllowedForBranchType)
	})
}

func TestClassifyBranch(t *testing.T) {
	tests := []struct {
		branch string
		want   classification
	}{
		{"release-0.14", classification{
			Branch:         "release-0.14",
			Normalized:     "release-0.14",
			Type:           "release",
			BuildsSnapshot: true,
			BuildsRelease:  true,
			Versioned:      true,
			DebianBranch:   "debian-release-0.14",
		}},
		{"debian", classification{
			Branch:         "debian",
			Normalized:     "master",
			Type:           "master",
			BuildsSnapshot: false,
			BuildsRelease:  true,
			Versioned:      false,
			DebianBranch:   "debian",
		}},
	}

	for _, test := range tests {
		t.Run(test.branch, func(t *testing.T) {
			result, err := classifyBranch(test.branch)
			require.NoError(t, err)
			require.Equal(t, &test.want, result)
		})
	}

	t.Run("Unknown branch type", func(t *testing.T) {
		_, err := classifyBranch("wip-thing")
		require.ErrorIs(t, err, branchver.ErrUnknownBranchType)
	})
}

func TestFormatClassification(t *testing.T) {
	result, err := classifyBranch("hotfix-0.14.1")
	require.NoError(t, err)

	out := formatClassification(result)
	require.Contains(t, out, "type:      hotfix")
	require.Contains(t, out, "snapshot:  true")
	require.Contains(t, out, "release:   true")
	require.Contains(t, out, "versioned: true")
	require.Contains(t, out, "debian:    debian-hotfix-0.14.1")
}
