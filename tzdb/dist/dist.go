// Package dist locates and loads tzdata distributions in a working
// directory.
//
// A distribution is either an archive file "tzdata<version>.tar.gz" as
// published by IANA or an unpacked subdirectory "tzdata<version>", where
// the version is a 4-digit year followed by a small letter a-z, for example
// "tzdata2011n.tar.gz".
package dist

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const (
	prefix   = "tzdata"
	tarGzExt = ".tar.gz"
)

// ArchiveName returns the file name of the archive of a version.
func ArchiveName(version string) string { return prefix + version + tarGzExt }

// DirName returns the name of the unpacked subdirectory of a version.
func DirName(version string) string { return prefix + version }

// IsVersion reports whether s is a well-formed version: four digits
// followed by one letter a-z.
func IsVersion(s string) bool {
	if len(s) != 5 {
		return false
	}
	for i := 0; i < 4; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s[4] >= 'a' && s[4] <= 'z'
}

// Newer reports whether version a is newer than version b: the year
// compares numerically and within a year the letters compare
// lexicographically, so "2023b" is newer than "2023a".
func Newer(a, b string) bool {
	if a[:4] != b[:4] {
		return a[:4] > b[:4]
	}
	return a[4:] > b[4:]
}

// Versions scans the working directory and returns the versions available
// as archives and as unpacked subdirectories.
func Versions(workdir string) (archives, dirs []string, err error) {
	entries, err := os.ReadDir(workdir)
	if err != nil {
		return nil, nil, err
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			if len(name) == len(prefix)+5 && name[:len(prefix)] == prefix && IsVersion(name[len(prefix):]) {
				dirs = append(dirs, name[len(prefix):])
			}
			continue
		}
		if len(name) == len(prefix)+5+len(tarGzExt) &&
			name[:len(prefix)] == prefix &&
			name[len(name)-len(tarGzExt):] == tarGzExt {
			v := name[len(prefix) : len(prefix)+5]
			if IsVersion(v) {
				archives = append(archives, v)
			}
		}
	}
	return archives, dirs, nil
}

// Newest returns the newest version available in the working directory and
// whether it is an unpacked subdirectory. Subdirectories win ties with
// archives.
func Newest(workdir string) (version string, dir bool, err error) {
	archives, dirs, err := Versions(workdir)
	if err != nil {
		return "", false, err
	}
	for _, v := range dirs {
		if version == "" || Newer(v, version) {
			version, dir = v, true
		}
	}
	for _, v := range archives {
		if version == "" || Newer(v, version) {
			version, dir = v, false
		}
	}
	if version == "" {
		return "", false, fmt.Errorf("time zone data not found in: %s", workdir)
	}
	return version, dir, nil
}

// LoadArchive reads every regular file of a tzdata tar.gz archive into a
// map of file name to UTF-8 content.
func LoadArchive(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gunzip, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer gunzip.Close()

	contents := make(map[string]string)
	tr := tar.NewReader(gunzip)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, err
		}
		contents[filepath.Base(header.Name)] = string(data)
	}
	return contents, nil
}

// LoadDirectory reads every regular file of an unpacked distribution
// directory into a map of file name to UTF-8 content.
func LoadDirectory(path string) (map[string]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	contents := make(map[string]string)
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(path, e.Name()))
		if err != nil {
			return nil, err
		}
		contents[e.Name()] = string(data)
	}
	return contents, nil
}

// Load reads the distribution of the given version, preferring an unpacked
// subdirectory over an archive.
func Load(workdir, version string) (map[string]string, error) {
	dir := filepath.Join(workdir, DirName(version))
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return LoadDirectory(dir)
	}
	archive := filepath.Join(workdir, ArchiveName(version))
	if _, err := os.Stat(archive); err != nil {
		return nil, fmt.Errorf("version %s not found in %s", version, workdir)
	}
	return LoadArchive(archive)
}

// Unpack extracts the archive of the given version into the subdirectory
// "tzdata<version>" of the working directory.
func Unpack(workdir, version string, log *logrus.Logger) error {
	archive := filepath.Join(workdir, ArchiveName(version))
	if _, err := os.Stat(archive); err != nil {
		return err
	}

	contents, err := LoadArchive(archive)
	if err != nil {
		return err
	}

	subdir := filepath.Join(workdir, DirName(version))
	if err := os.MkdirAll(subdir, 0o755); err != nil {
		return fmt.Errorf("cannot create subdirectory for unpacked version: %w", err)
	}

	for name, content := range contents {
		target := filepath.Join(subdir, name)
		if log != nil {
			log.WithFields(logrus.Fields{"file": name, "target": target}).Info("unpacking")
		}
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}
