// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tfctl/blockdiff/internal/log"
)

// VersionsAPI is the slice of the S3 client needed to read object history.
type VersionsAPI interface {
	s3v2.ListObjectVersionsAPIClient
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// ObjectVersion is one stored version of an object.
type ObjectVersion struct {
	Key          string
	VersionID    string
	LastModified time.Time
	Size         int64
	IsLatest     bool
}

// ListVersions returns the versions of exactly key, most recent first.
// Versions older than the newest delete marker belong to a previous life of
// the object and are dropped.
func ListVersions(ctx context.Context, api VersionsAPI, bucket, key string) ([]ObjectVersion, error) {
	paginator := s3v2.NewListObjectVersionsPaginator(api, &s3v2.ListObjectVersionsInput{
		Bucket: awsv2.String(bucket),
		Prefix: awsv2.String(key),
	})

	var mostRecentDelete time.Time
	var versions []ObjectVersion
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list object versions: %w", err)
		}

		// Prefix matches are broader than key, so everything is filtered on
		// the exact key.
		for _, d := range page.DeleteMarkers {
			if awsv2.ToString(d.Key) != key || d.LastModified == nil {
				continue
			}
			if d.LastModified.After(mostRecentDelete) {
				mostRecentDelete = *d.LastModified
			}
		}

		for _, v := range page.Versions {
			if awsv2.ToString(v.Key) != key {
				log.Debugf("skipping version of %s", awsv2.ToString(v.Key))
				continue
			}
			if v.VersionId == nil || v.LastModified == nil {
				continue
			}
			versions = append(versions, ObjectVersion{
				Key:          key,
				VersionID:    *v.VersionId,
				LastModified: *v.LastModified,
				Size:         awsv2.ToInt64(v.Size),
				IsLatest:     awsv2.ToBool(v.IsLatest),
			})
		}
	}

	live := versions[:0]
	for _, v := range versions {
		if v.LastModified.Before(mostRecentDelete) {
			continue
		}
		live = append(live, v)
	}

	sort.SliceStable(live, func(i, j int) bool {
		return live[i].LastModified.After(live[j].LastModified)
	})
	log.Debugf("object versions: key=%s count=%d", key, len(live))

	return live, nil
}

// GetVersion reads the body of one version of key.
func GetVersion(ctx context.Context, api VersionsAPI, bucket, key, versionID string) ([]byte, error) {
	in := &s3v2.GetObjectInput{
		Bucket: awsv2.String(bucket),
		Key:    awsv2.String(key),
	}
	if versionID != "" {
		in.VersionId = awsv2.String(versionID)
	}

	out, err := api.GetObject(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to get S3 object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w", err)
	}
	return data, nil
}
