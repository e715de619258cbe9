// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/blockdiff/internal/revutil"
)

// BackendGit reads a project file out of git history.
type BackendGit struct {
	Ctx     context.Context
	Cmd     *cli.Command
	RootDir string
	// File is the project file, relative to RootDir.
	File string
	// Binary overrides the git executable.
	Binary string
	Limit  int

	memo *lru.Cache[string, []byte]
}

// Detect reports whether dir is inside a git work tree.
func Detect(ctx context.Context, dir string) bool {
	out, err := run(ctx, "git", dir, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(string(out)) == "true"
}

// Revisions lists the commits touching File, newest first.
func (be *BackendGit) Revisions(ctx context.Context) ([]revutil.Revision, error) {
	args := []string{"log", "--format=%H%x09%ct%x09%s"}
	if be.Limit > 0 {
		args = append(args, "-n", strconv.Itoa(be.Limit))
	}
	args = append(args, "--", be.File)

	out, err := run(ctx, be.Binary, be.RootDir, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions: %w", err)
	}

	return parseLog(string(out))
}

// Snapshot returns File as of spec. WORKTREE reads the file on disk, ~N is
// resolved against Revisions, and anything else goes to git rev-parse.
func (be *BackendGit) Snapshot(ctx context.Context, spec string) ([]byte, error) {
	if spec == revutil.Worktree {
		return os.ReadFile(filepath.Join(be.RootDir, be.File))
	}

	hash, err := be.resolve(ctx, spec)
	if err != nil {
		return nil, err
	}

	if doc, ok := be.memo.Get(hash); ok {
		log.Debugf("git memo hit: %s", hash)
		return doc, nil
	}

	doc, err := run(ctx, be.Binary, be.RootDir, "show", hash+":./"+filepath.ToSlash(be.File))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s at %s: %w", be.File, spec, err)
	}
	be.memo.Add(hash, doc)

	return doc, nil
}

func (be *BackendGit) resolve(ctx context.Context, spec string) (string, error) {
	if spec == "" || revutil.IsRelative(spec) {
		revisions, err := be.Revisions(ctx)
		if err != nil {
			return "", err
		}
		found, err := revutil.Resolve(revisions, spec)
		if err != nil {
			return "", err
		}
		return found[0].ID, nil
	}

	out, err := run(ctx, be.Binary, be.RootDir, "rev-parse", "--verify", "--quiet", spec+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("unknown revision %q: %w", spec, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (be *BackendGit) String() string {
	return filepath.Join(be.RootDir, be.File)
}

func (be *BackendGit) Type() string {
	return "git"
}

// parseLog reads "<hash>\t<unix time>\t<subject>" lines.
func parseLog(out string) ([]revutil.Revision, error) {
	var revisions []revutil.Revision
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 3) //nolint:mnd
		if len(parts) < 2 {                   //nolint:mnd
			return nil, fmt.Errorf("unexpected git log line %q", line)
		}
		secs, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad commit time in %q: %w", line, err)
		}
		rev := revutil.Revision{ID: parts[0], CreatedAt: time.Unix(secs, 0)}
		if len(parts) == 3 { //nolint:mnd
			rev.Summary = parts[2]
		}
		revisions = append(revisions, rev)
	}
	return revisions, nil
}

// run executes git in dir and returns stdout. Stderr is folded into the error.
func run(ctx context.Context, bin, dir string, args ...string) ([]byte, error) {
	if bin == "" {
		bin = "git"
	}
	cmd := exec.CommandContext(ctx, bin, append([]string{"-C", dir}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debugf("git: dir=%s args=%v", dir, args)
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
