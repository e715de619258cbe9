// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"context"
	"errors"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/blockdiff/internal/aws"
)

type BackendS3Option = func(ctx context.Context, cmd *cli.Command, be *BackendS3) error

// ErrNoLocation is returned when the bucket or key is missing.
var ErrNoLocation = errors.New("s3 backend needs both a bucket and a key")

// NewBackendS3 returns a BackendS3 object that implements the Backend
// interface. Stale cache entries are purged on construction.
func NewBackendS3(ctx context.Context, cmd *cli.Command, options ...BackendS3Option) (*BackendS3, error) {
	options = append([]BackendS3Option{WithDefaults()}, options...)

	be := &BackendS3{Ctx: ctx, Cmd: cmd}

	for _, opt := range options {
		if err := opt(ctx, cmd, be); err != nil {
			return nil, err
		}
	}

	if be.Bucket == "" || be.Key == "" {
		return nil, ErrNoLocation
	}

	if err := PurgeCache(); err != nil {
		log.WithError(err).Warn("failed to purge cache")
	}

	return be, nil
}

func WithDefaults() BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		log.Debugf("NewBackendS3 WithDefaults():")
		return nil
	}
}

// FromFlags copies the bucket, key and client settings from cmd's flags.
func FromFlags() BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		be.Bucket = cmd.String("bucket")
		be.Key = cmd.String("key")
		be.Profile = cmd.String("profile")
		be.Region = cmd.String("region")
		be.Endpoint = cmd.String("endpoint")
		be.PathStyle = cmd.Bool("path-style")

		log.Debugf("NewBackendS3 FromFlags(): bucket=%s key=%s region=%s", be.Bucket, be.Key, be.Region)

		return nil
	}
}

// FromFile uses the project file named on the command line as the object key
// when no key was given.
func FromFile(file string) BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		if be.Key == "" {
			be.Key = file
		}
		return nil
	}
}

// WithLocation sets the bucket and key directly.
func WithLocation(bucket, key string) BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		be.Bucket = bucket
		be.Key = key
		return nil
	}
}

// WithAPI replaces the S3 client.
func WithAPI(api aws.VersionsAPI) BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		be.api = api
		return nil
	}
}
