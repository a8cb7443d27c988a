// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package fetch retrieves settings document bytes from a local path or an
// s3://bucket/key object, so fleet machines can apply a centrally hosted
// document. Missing sources map to the settings package's document-not-found
// category either way.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/regctl/regctl/internal/config"
	"github.com/regctl/regctl/internal/log"
	"github.com/regctl/regctl/internal/settings"
)

// Document retrieves the settings document at src. Local paths read from
// disk; "s3://bucket/key" sources fetch the object with the ambient AWS
// credential chain (profile/region overridable via regctl.yaml "aws.profile"
// and "aws.region").
func Document(ctx context.Context, src string) ([]byte, error) {
	if strings.HasPrefix(src, "s3://") {
		return fromS3(ctx, src)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", settings.ErrNotFound, src)
		}
		return nil, fmt.Errorf("%w: %v", settings.ErrNotFound, err)
	}
	return data, nil
}

// fromS3 fetches s3://bucket/key.
func fromS3(ctx context.Context, src string) ([]byte, error) {
	bucket, key, err := parseS3(src)
	if err != nil {
		return nil, err
	}

	var opts []Option
	if profile, err := config.GetString("aws.profile", ""); err == nil && profile != "" {
		opts = append(opts, WithProfile(profile))
	}
	if region, err := config.GetString("aws.region", ""); err == nil && region != "" {
		opts = append(opts, WithRegion(region))
	}

	cfg, err := LoadAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	out, err := NewS3(cfg).GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		var noBucket *s3types.NoSuchBucket
		if errors.As(err, &noKey) || errors.As(err, &noBucket) {
			return nil, fmt.Errorf("%w: %s", settings.ErrNotFound, src)
		}
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	log.Debugf("document fetched: src=%s bytes=%d", src, len(data))
	return data, nil
}

// parseS3 splits "s3://bucket/key" into its parts.
func parseS3(src string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(src, "s3://")
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 source %q, want s3://bucket/key", src)
	}
	return bucket, key, nil
}
