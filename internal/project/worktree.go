package project

import (
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// idCacheFile is where OpenCode caches a repository's project ID inside
// its git directory.
const idCacheFile = "opencode"

// WorktreeID returns the project ID OpenCode would assign to the git
// repository containing dir. It reports false when dir is not inside a git
// repository or no ID can be determined. Nothing is written to the
// repository.
func WorktreeID(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	worktree, gitDir := findGitDir(dir)
	if gitDir == "" {
		return "", false
	}

	if data, err := os.ReadFile(filepath.Join(gitDir, idCacheFile)); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, true
		}
	}

	id := rootCommit(worktree)
	return id, id != ""
}

// findGitDir walks up from start looking for .git. It returns the directory
// holding .git and the git directory itself, following "gitdir:" files used
// by linked worktrees and submodules.
func findGitDir(start string) (worktree, gitDir string) {
	current := start
	for {
		gitPath := filepath.Join(current, ".git")
		if info, err := os.Stat(gitPath); err == nil {
			if info.IsDir() {
				return current, gitPath
			}
			if content, err := os.ReadFile(gitPath); err == nil {
				line := strings.TrimSpace(string(content))
				if gitdir, ok := strings.CutPrefix(line, "gitdir: "); ok {
					if !filepath.IsAbs(gitdir) {
						gitdir = filepath.Join(current, gitdir)
					}
					return current, gitdir
				}
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", ""
		}
		current = parent
	}
}

// rootCommit returns the lexically first root commit of the repository at
// worktree, or "" if git is unavailable or the repository has no commits.
func rootCommit(worktree string) string {
	cmd := exec.Command("git", "rev-list", "--max-parents=0", "--all")
	cmd.Dir = worktree
	cmd.Env = append(os.Environ(), "GIT_CEILING_DIRECTORIES="+filepath.Dir(worktree))
	output, err := cmd.Output()
	if err != nil {
		return ""
	}

	var roots []string
	for _, line := range strings.Split(string(output), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			roots = append(roots, line)
		}
	}
	if len(roots) == 0 {
		return ""
	}

	sort.Strings(roots)
	return roots[0]
}
