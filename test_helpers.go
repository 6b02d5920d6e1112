package branchver

import (
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/go-git/go-git/v5/storage/memory"
)

var testSignature = &object.Signature{
	Name:  "test",
	Email: "test@example.com",
	When:  time.Now(),
}

// testRepoCreate creates a new in-memory git repository for testing, with a
// committer identity configured so BumpVersion can commit.
func testRepoCreate() (*git.Repository, error) {
	repo, err := git.Init(memory.NewStorage(), memfs.New())
	if err != nil {
		return nil, err
	}

	cfg, err := repo.Config()
	if err != nil {
		return nil, err
	}
	cfg.User.Name = testSignature.Name
	cfg.User.Email = testSignature.Email
	if err := repo.SetConfig(cfg); err != nil {
		return nil, err
	}
	return repo, nil
}

// testRepoFSCreate creates a new filesystem-based git repository for testing.
func testRepoFSCreate(path string) (*git.Repository, error) {
	fs := osfs.New(path)
	storage := filesystem.NewStorage(fs, cache.NewObjectLRUDefault())
	return git.Init(storage, fs)
}

// testRepoCommit writes a file and commits it on the current branch.
func testRepoCommit(repo *git.Repository, filename, content, message string) (plumbing.Hash, error) {
	workTree, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, err
	}

	if err := writeFile(workTree.Filesystem, filename, content); err != nil {
		return plumbing.ZeroHash, err
	}
	if _, err := workTree.Add(filename); err != nil {
		return plumbing.ZeroHash, err
	}

	return workTree.Commit(message, &git.CommitOptions{Author: testSignature})
}

// testRepoWithVersionFile creates an in-memory repository whose toplevel
// version file holds content, committed on master.
func testRepoWithVersionFile(content string) (*git.Repository, error) {
	repo, err := testRepoCreate()
	if err != nil {
		return nil, err
	}
	if _, err := testRepoCommit(repo, BaseVersionFile, content, "Initial commit"); err != nil {
		return nil, err
	}
	return repo, nil
}

// testRepoCheckoutNew creates branch name at HEAD and checks it out.
func testRepoCheckoutNew(repo *git.Repository, name string) error {
	workTree, err := repo.Worktree()
	if err != nil {
		return err
	}
	return workTree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: true,
	})
}

// testRepoCheckout switches to an existing branch.
func testRepoCheckout(repo *git.Repository, name string) error {
	workTree, err := repo.Worktree()
	if err != nil {
		return err
	}
	return workTree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
	})
}

// testRepoMergeCommit creates a commit on the current branch with the current
// HEAD plus the given extra hashes as parents, emulating merge (two parents)
// and octopus (three or more) topologies.
func testRepoMergeCommit(repo *git.Repository, message string, extraParents ...plumbing.Hash) (plumbing.Hash, error) {
	head, err := repo.Head()
	if err != nil {
		return plumbing.ZeroHash, err
	}

	workTree, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, err
	}
	if err := writeFile(workTree.Filesystem, "merge.txt", message); err != nil {
		return plumbing.ZeroHash, err
	}
	if _, err := workTree.Add("merge.txt"); err != nil {
		return plumbing.ZeroHash, err
	}

	parents := append([]plumbing.Hash{head.Hash()}, extraParents...)
	return workTree.Commit(message, &git.CommitOptions{
		Author:  testSignature,
		Parents: parents,
	})
}

// testRepoSetRemoteBranch records origin/<name> pointing at hash.
func testRepoSetRemoteBranch(repo *git.Repository, name string, hash plumbing.Hash) error {
	ref := plumbing.NewHashReference(plumbing.NewRemoteReferenceName("origin", name), hash)
	return repo.Storer.SetReference(ref)
}

// writeFile writes content to a file in the given filesystem.
func writeFile(fs billy.Filesystem, filename, content string) error {
	file, err := fs.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.Write([]byte(content))
	return err
}
