package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	perr "demovault/internal/platform/errors"
)

// Fetcher downloads url into dest, hashing the body as it streams
// it returns the hex sha256 of the stored bytes and their count
type Fetcher func(ctx context.Context, url, dest string) (checksum string, size int64, err error)

const fetchTimeout = 5 * time.Minute

// HTTPFetcher streams the replay straight to disk; the file is never
// held in memory and a failed transfer leaves no partial file behind
func HTTPFetcher(client *http.Client) Fetcher {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	return func(ctx context.Context, url, dest string) (string, int64, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", 0, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "build download request")
		}

		resp, err := client.Do(req)
		if err != nil {
			return "", 0, perr.Wrapf(err, perr.ErrorCodeUnavailable, "download %s", url)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
			return "", 0, perr.NotFoundf("replay no longer hosted at %s", url)
		case resp.StatusCode != http.StatusOK:
			return "", 0, perr.Unavailablef("download %s: status %d", url, resp.StatusCode)
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return "", 0, fmt.Errorf("create demo dir: %w", err)
		}

		tmp := dest + ".part"
		f, err := os.Create(tmp)
		if err != nil {
			return "", 0, fmt.Errorf("create %s: %w", tmp, err)
		}

		h := sha256.New()
		n, err := io.Copy(io.MultiWriter(f, h), resp.Body)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(tmp)
			return "", 0, perr.Wrapf(err, perr.ErrorCodeUnavailable, "stream %s", url)
		}
		if err := os.Rename(tmp, dest); err != nil {
			os.Remove(tmp)
			return "", 0, fmt.Errorf("finalize %s: %w", dest, err)
		}
		return hex.EncodeToString(h.Sum(nil)), n, nil
	}
}

// sizeToMB rounds bytes up to whole megabytes, never below 1 for a
// non-empty file
func sizeToMB(n int64) int {
	if n <= 0 {
		return 0
	}
	mb := (n + 1<<20 - 1) >> 20
	return int(mb)
}
