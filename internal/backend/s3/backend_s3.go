// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/blockdiff/internal/aws"
	"github.com/tfctl/blockdiff/internal/revutil"
)

// BackendS3 reads project snapshots from the versions of one object in a
// versioned bucket.
type BackendS3 struct {
	Ctx       context.Context
	Cmd       *cli.Command
	Bucket    string
	Key       string
	Profile   string
	Region    string
	Endpoint  string
	PathStyle bool

	api aws.VersionsAPI
}

// Revisions lists the object's versions, newest first.
func (be *BackendS3) Revisions(ctx context.Context) ([]revutil.Revision, error) {
	api, err := be.client(ctx)
	if err != nil {
		return nil, err
	}

	versions, err := aws.ListVersions(ctx, api, be.Bucket, be.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions of s3://%s/%s: %w", be.Bucket, be.Key, err)
	}

	revisions := make([]revutil.Revision, 0, len(versions))
	for _, v := range versions {
		summary := humanize.Bytes(uint64(v.Size)) //nolint:gosec
		if v.IsLatest {
			summary += " latest"
		}
		revisions = append(revisions, revutil.Revision{
			ID:        v.VersionID,
			Summary:   summary,
			CreatedAt: v.LastModified,
		})
	}
	return revisions, nil
}

// Snapshot returns the object body for spec. WORKTREE is the latest version.
// Bodies are cached on disk by version id, since versions never change.
func (be *BackendS3) Snapshot(ctx context.Context, spec string) ([]byte, error) {
	if spec == revutil.Worktree {
		spec = "~0"
	}

	candidates, err := be.Revisions(ctx)
	if err != nil {
		return nil, err
	}
	found, err := revutil.Resolve(candidates, spec)
	if err != nil {
		return nil, err
	}
	rev := found[0]

	if rev.Path != "" {
		return os.ReadFile(rev.Path)
	}

	log.Debugf("s3 snapshot: %s -> %s", spec, rev.ID)
	return CacheFetch(be, rev.ID, func() ([]byte, error) {
		return aws.GetVersion(ctx, be.api, be.Bucket, be.Key, rev.ID)
	})
}

// client builds the S3 client on first use.
func (be *BackendS3) client(ctx context.Context) (aws.VersionsAPI, error) {
	if be.api != nil {
		return be.api, nil
	}

	c, err := aws.NewS3Client(ctx,
		aws.WithProfile(be.Profile),
		aws.WithRegion(be.Region),
		aws.WithEndpoint(be.Endpoint),
		aws.WithPathStyle(be.PathStyle),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	be.api = c
	return c, nil
}

func (be *BackendS3) String() string {
	return "s3://" + be.Bucket + "/" + be.Key
}

func (be *BackendS3) Type() string {
	return "s3"
}
