/* Copyright (c) 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 */
package s3cache

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const snapshotPrefix = "snapshots"

// PutSnapshot uploads a league database image under the given league and
// snapshot names, gzipped. Unlike cache Set, snapshot failures are returned
// rather than logged since backups must not fail silently.
func (c *Cache) PutSnapshot(leagueName, snapName string, data []byte) error {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(data); err != nil {
		return fmt.Errorf("s3cache.snapshot: failed to gzip %v/%v: %w",
			leagueName, snapName, err)
	}
	if err := gw.Close(); err != nil {
		return fmt.Errorf("s3cache.snapshot: failed to close gzip writer: %w", err)
	}

	input := &s3.PutObjectInput{
		Bucket:          aws.String(c.bucketName),
		Key:             aws.String(snapshotObjectKey(leagueName, snapName)),
		Body:            &buf,
		ContentEncoding: aws.String("gzip"),
	}
	if _, err := c.Client.PutObject(c.ctx, input); err != nil {
		return fmt.Errorf("s3cache.snapshot: put failed for %v/%v: %w",
			leagueName, snapName, err)
	}

	return nil
}

// GetSnapshot downloads and decompresses a previously uploaded league
// database image.
func (c *Cache) GetSnapshot(leagueName, snapName string) ([]byte, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(snapshotObjectKey(leagueName, snapName)),
	}
	resp, err := c.Client.GetObject(c.ctx, input)
	if err != nil {
		return nil, fmt.Errorf("s3cache.snapshot: get failed for %v/%v: %w",
			leagueName, snapName, err)
	}
	defer resp.Body.Close()

	gr, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("s3cache.snapshot: failed to open compressed snapshot %v/%v: %w",
			leagueName, snapName, err)
	}
	defer gr.Close()

	data, err := io.ReadAll(gr)
	if err != nil {
		return nil, fmt.Errorf("s3cache.snapshot: failed to read snapshot %v/%v: %w",
			leagueName, snapName, err)
	}
	return data, nil
}

// ListSnapshots returns the snapshot names stored for one league.
func (c *Cache) ListSnapshots(leagueName string) ([]string, error) {
	prefix := fmt.Sprintf("%v/%v/", snapshotPrefix, leagueName)
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucketName),
		Prefix: aws.String(prefix),
	}

	var names []string
	p := s3.NewListObjectsV2Paginator(c.Client, input)
	for p.HasMorePages() {
		page, err := p.NextPage(c.ctx)
		if err != nil {
			return nil, fmt.Errorf("s3cache.snapshot: list failed for %v: %w",
				leagueName, err)
		}
		for _, obj := range page.Contents {
			name := path.Base(aws.ToString(obj.Key))
			names = append(names, name[:len(name)-len(".gz")])
		}
	}
	return names, nil
}

func snapshotObjectKey(leagueName, snapName string) string {
	return fmt.Sprintf("%v/%v/%v.gz", snapshotPrefix, leagueName, snapName)
}
