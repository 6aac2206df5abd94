// Package gitinfo inspects git repositories by shelling out to the git
// binary, mirroring what `git status --porcelain` and `git log -1` report.
package gitinfo

import (
	"fmt"
	"os/exec"
	"strings"
)

// Info summarizes the state of a repository working tree.
type Info struct {
	Branch        string
	CommitHash    string
	CommitSubject string
	CommitAuthor  string
	Staged        int
	Unstaged      int
	Untracked     int
}

// Clean reports whether the working tree has no pending changes.
func (i Info) Clean() bool {
	return i.Staged == 0 && i.Unstaged == 0 && i.Untracked == 0
}

// Detect reports whether dir is inside a git repository.
func Detect(dir string) bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = dir
	return cmd.Run() == nil
}

// Inspect gathers branch, latest commit and working-tree status for the
// repository at dir. Any git failure (detached state, corrupt metadata,
// no commits yet) is returned as an error; callers treat it as "not a
// repository".
func Inspect(dir string) (Info, error) {
	var info Info

	branch, err := runGit(dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return info, err
	}
	info.Branch = strings.TrimSpace(branch)

	log, err := runGit(dir, "log", "-1", "--format=%H%n%an <%ae>%n%s")
	if err != nil {
		return info, err
	}
	lines := strings.SplitN(strings.TrimRight(log, "\n"), "\n", 3)
	if len(lines) != 3 {
		return info, fmt.Errorf("unexpected git log output: %q", log)
	}
	info.CommitHash = lines[0]
	info.CommitAuthor = lines[1]
	info.CommitSubject = lines[2]

	status, err := runGit(dir, "status", "--porcelain=v1")
	if err != nil {
		return info, err
	}
	info.Staged, info.Unstaged, info.Untracked = countStatus(status)

	return info, nil
}

func runGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return string(output), nil
}

// countStatus parses `git status --porcelain=v1` output into staged,
// unstaged and untracked change counts. A renamed-and-modified entry
// counts toward both staged and unstaged, matching what git summarizes.
func countStatus(output string) (staged, unstaged, untracked int) {
	for _, line := range strings.Split(output, "\n") {
		if len(line) < 2 {
			continue
		}
		x, y := line[0], line[1]
		if x == '?' && y == '?' {
			untracked++
			continue
		}
		if x != ' ' {
			staged++
		}
		if y != ' ' {
			unstaged++
		}
	}
	return staged, unstaged, untracked
}
