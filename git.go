package branchver

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// BaseVersionFile is the repository-toplevel file holding the base version.
const BaseVersionFile = "version"

// OpenRepository opens a Git repository at the specified path.
func OpenRepository(path string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
}

// Snapshot collects the repository state the version generator consumes:
// current branch name, commit identifier, revision count and the working
// tree root. The repository is only read, never mutated.
func Snapshot(repo *git.Repository) (RepoState, error) {
	head, err := repo.Head()
	if err != nil {
		return RepoState{}, fmt.Errorf("resolving HEAD: %w", err)
	}
	branch := head.Name().Short()

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return RepoState{}, fmt.Errorf("getting commit object: %w", err)
	}

	id, err := commitID(commit, branch)
	if err != nil {
		return RepoState{}, err
	}

	count, err := revisionCount(repo, head.Hash())
	if err != nil {
		return RepoState{}, fmt.Errorf("counting revisions: %w", err)
	}

	workTree, err := repo.Worktree()
	if err != nil {
		return RepoState{}, fmt.Errorf("getting worktree: %w", err)
	}

	return RepoState{
		Branch:        branch,
		CommitID:      id,
		RevisionCount: count,
		Toplevel:      workTree.Filesystem.Root(),
	}, nil
}

// commitID derives the short identifier for a commit. A two-parent merge
// landing on a debian branch takes both parents' identifiers, so snapshot
// versions keep the upstream and packaging histories distinguishable. The
// debian check is by branch name, not merge topology.
func commitID(commit *object.Commit, branch string) (string, error) {
	shortID := func(h plumbing.Hash) string { return h.String()[:7] }

	switch commit.NumParents() {
	case 0, 1:
		return shortID(commit.Hash), nil
	case 2:
		if IsDebianBranch(branch) {
			return shortID(commit.ParentHashes[0]) + "-" + shortID(commit.ParentHashes[1]), nil
		}
		return shortID(commit.Hash), nil
	default:
		return "", fmt.Errorf("%w: commit %s has %d parents",
			ErrUnsupportedCommitTopology, shortID(commit.Hash), commit.NumParents())
	}
}

func revisionCount(repo *git.Repository, from plumbing.Hash) (int, error) {
	iter, err := repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	count := 0
	err = iter.ForEach(func(*object.Commit) error {
		count++
		return nil
	})
	return count, err
}

// ReadBaseVersion reads the base version from the version file at the
// repository toplevel. The file must contain exactly one line that is
// neither blank nor a "#" comment.
func ReadBaseVersion(repo *git.Repository) (string, error) {
	workTree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	return readBaseVersionFile(workTree.Filesystem)
}

func readBaseVersionFile(fs billy.Filesystem) (string, error) {
	f, err := fs.Open(BaseVersionFile)
	if err != nil {
		return "", fmt.Errorf("opening %s file: %w", BaseVersionFile, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("reading %s file: %w", BaseVersionFile, err)
	}

	var versions []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		versions = append(versions, line)
	}
	if len(versions) != 1 {
		return "", fmt.Errorf("file %q should contain a single non-comment line, found %d",
			BaseVersionFile, len(versions))
	}
	return versions[0], nil
}

// BumpVersion replaces the base version recorded in the version file and
// commits the change. The replacement is validated against the current
// branch and mode before anything is written; comment lines are preserved.
func BumpVersion(repo *git.Repository, newVersion string, mode Mode) error {
	state, err := Snapshot(repo)
	if err != nil {
		return err
	}
	if _, err := Generate(newVersion, state, mode); err != nil {
		return err
	}

	workTree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	oldVersion, err := readBaseVersionFile(workTree.Filesystem)
	if err != nil {
		return err
	}
	if err := rewriteBaseVersionFile(workTree.Filesystem, oldVersion, newVersion); err != nil {
		return err
	}

	if _, err := workTree.Add(BaseVersionFile); err != nil {
		return fmt.Errorf("staging %s file: %w", BaseVersionFile, err)
	}
	if _, err := workTree.Commit("Bump version", &git.CommitOptions{}); err != nil {
		return fmt.Errorf("committing version bump: %w", err)
	}
	return nil
}

func rewriteBaseVersionFile(fs billy.Filesystem, oldVersion, newVersion string) error {
	f, err := fs.Open(BaseVersionFile)
	if err != nil {
		return fmt.Errorf("opening %s file: %w", BaseVersionFile, err)
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("reading %s file: %w", BaseVersionFile, err)
	}

	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "#") {
			continue
		}
		lines[i] = strings.Replace(line, oldVersion, newVersion, 1)
	}

	out, err := fs.Create(BaseVersionFile)
	if err != nil {
		return fmt.Errorf("rewriting %s file: %w", BaseVersionFile, err)
	}
	defer out.Close()
	if _, err := out.Write([]byte(strings.Join(lines, "\n"))); err != nil {
		return fmt.Errorf("rewriting %s file: %w", BaseVersionFile, err)
	}
	return nil
}

// DebianBranch resolves the packaging branch tracking the given working
// branch. An existing local or origin counterpart wins; otherwise the branch
// type's default packaging branch is used.
func DebianBranch(repo *git.Repository, branch string) (string, error) {
	norm, tag := Classify(branch)
	btype, err := ParseBranchType(tag)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrMalformedBranchName, branch, err)
	}

	candidate := DebianBranchName(norm)
	if candidate == debianRoot || hasBranch(repo, candidate) {
		return candidate, nil
	}
	return btype.DefaultDebianBranch(), nil
}

// hasBranch reports whether a branch exists locally or under origin.
func hasBranch(repo *git.Repository, name string) bool {
	if _, err := repo.Reference(plumbing.NewBranchReferenceName(name), false); err == nil {
		return true
	}
	if _, err := repo.Reference(plumbing.NewRemoteReferenceName("origin", name), false); err == nil {
		return true
	}
	return false
}
