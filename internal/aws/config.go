// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tfctl/blockdiff/internal/log"
)

// options holds optional overrides for AWS config loading and S3 client
// construction.
type options struct {
	profile   string
	region    string
	endpoint  string
	pathStyle bool
	retryer   func() awsv2.Retryer
}

// Option customizes how AWS config is loaded. With no options the shell's AWS
// setup is inherited (AWS_PROFILE, shared config, env, IMDS).
type Option func(*options)

// WithProfile sets the shared config profile.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithEndpoint points the S3 client at an S3-compatible store such as MinIO.
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// WithPathStyle forces path-style bucket addressing.
func WithPathStyle(pathStyle bool) Option {
	return func(o *options) { o.pathStyle = pathStyle }
}

// WithRetryer injects a custom retryer.
func WithRetryer(newRetryer func() awsv2.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

// NewS3Client loads AWS config and returns an S3 client honoring the endpoint
// and addressing overrides.
func NewS3Client(ctx context.Context, opts ...Option) (*s3v2.Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log.Debugf("s3 options: profile=%s region=%s endpoint=%s pathStyle=%t",
		o.profile, o.region, o.endpoint, o.pathStyle)

	cfg, err := config.LoadDefaultConfig(ctx, o.loadOptions()...)
	if err != nil {
		log.Debugf("config load err: err=%v", err)
		return nil, err
	}

	return s3v2.NewFromConfig(cfg, o.clientOptions()...), nil
}

func (o options) loadOptions() []func(*config.LoadOptions) error {
	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}
	return loadOpts
}

func (o options) clientOptions() []func(*s3v2.Options) {
	var fns []func(*s3v2.Options)
	if o.endpoint != "" {
		endpoint := o.endpoint
		fns = append(fns, func(so *s3v2.Options) {
			so.BaseEndpoint = awsv2.String(endpoint)
		})
	}
	if o.pathStyle {
		fns = append(fns, func(so *s3v2.Options) {
			so.UsePathStyle = true
		})
	}
	return fns
}
