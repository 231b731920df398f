package fileutil

import (
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// hashPrefixSize bounds how much of a file FileHash reads.
const hashPrefixSize = 64 * 1024

// ErrSameFile is returned by CopyFile when src and dst are the same file.
var ErrSameFile = errors.New("source and destination are the same file")

// CopyFile copies src to dst, overwriting dst, and carries over the source
// permission bits and modification time. The source is never modified;
// copying a file onto itself fails with ErrSameFile.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("copy %s: not a regular file", src)
	}
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(info, dstInfo) {
		return fmt.Errorf("copy %s to %s: %w", src, dst, ErrSameFile)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	// OpenFile only applies the mode on creation.
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("preserve mode: %w", err)
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("preserve times: %w", err)
	}
	return nil
}

// IsRegularFile reports whether path exists and is a regular file.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// DirExists reports whether path exists and is a directory. Errors other
// than "does not exist" are returned so callers can log them.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// FileHash computes an MD5 hash of the first 64KB of a file. It is cheap
// enough to run for every photo and tells renamed files apart from edited ones.
// Returns an empty string if the file cannot be read.
func FileHash(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.CopyN(h, f, hashPrefixSize); err != nil && !errors.Is(err, io.EOF) {
		return ""
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
