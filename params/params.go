// Package params is a small file-per-key store shared with the rest of the
// vehicle stack. Writes go through a temp file and an atomic rename while
// holding a lock on the params root.
package params

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

var ParamsPath string = "/data/params/d"

// Params
const (
	DRIVE_SETTINGS  = "DriveSettings"
	LAST_ROUTE_FILE = "DriveLastRouteFile"
)

var ErrLockTimeout = errors.New("could not obtain lock")

// Exists returns whether the given file or directory exists
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Wrap(err, "could not check param file stats")
}

func EnsureParamDirectories() {
	err := os.MkdirAll(ParamsPath, 0o775)
	if err != nil {
		slog.Warn("could not make params directory", "error", err, "directory", ParamsPath)
	}
}

func IsString(data []byte) bool {
	for _, b := range data {
		if (b < 32 || b > 126) && !(b == 9 || b == 13 || b == 10) {
			return false
		}
	}
	return true
}

// GetParams lists the names of all params, sorted.
func GetParams() ([]string, error) {
	files, err := os.ReadDir(ParamsPath)
	if err != nil {
		return nil, errors.Wrap(err, "could not read params directory")
	}

	names := []string{}
	for _, file := range files {
		name := file.Name()
		if file.Type().IsRegular() && name[0] != '.' {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func ParamPath(name string) string {
	return filepath.Join(ParamsPath, name)
}

func GetParam(name string) ([]byte, error) {
	data, err := os.ReadFile(ParamPath(name))
	return data, errors.Wrapf(err, "could not read param %s", name)
}

func PutParam(name string, data []byte) error {
	path := ParamPath(name)
	dir := filepath.Dir(path)
	file, err := os.CreateTemp(dir, ".tmp_value_"+name)
	if err != nil {
		return errors.Wrap(err, "could not create temp param file")
	}
	tmpName := file.Name()
	defer os.Remove(tmpName)
	defer file.Close()

	_, err = file.Write(data)
	if err != nil {
		return errors.Wrap(err, "could not write data to temp param file")
	}

	err = file.Sync()
	if err != nil {
		return errors.Wrap(err, "could not fsync temp param file")
	}

	return withLock(dir, func() error {
		err := os.Rename(tmpName, path)
		if err != nil {
			return errors.Wrap(err, "could not move temp param file to persistent location")
		}
		return syncDir(dir)
	})
}

func RemoveParam(name string) error {
	path := ParamPath(name)
	dir := filepath.Dir(path)
	return withLock(dir, func() error {
		err := os.Remove(path)
		if err != nil && !os.IsNotExist(err) {
			return errors.Wrap(err, "could not remove param")
		}
		return syncDir(dir)
	})
}

func syncDir(dir string) error {
	directory, err := os.Open(dir)
	if err != nil {
		return errors.Wrap(err, "could not open params directory")
	}
	defer directory.Close()

	err = directory.Sync()
	if err != nil {
		return errors.Wrap(err, "could not fsync params directory")
	}
	return nil
}

// withLock runs fn while holding the lock file one level above dir.
func withLock(dir string, fn func() error) error {
	lockPath := filepath.Join(filepath.Dir(dir), ".lock")
	fileLock := flock.New(lockPath)

	retries := 0
	for {
		locked, err := fileLock.TryLock()
		if err != nil {
			return errors.Wrap(err, "could not try locking params directory")
		}
		if locked {
			break
		}
		retries += 1
		if retries > 30 {
			// try to force the lock to be removed
			if err := os.Remove(lockPath); err != nil {
				slog.Debug("failed to force delete params lock", "error", err)
			}
		}
		if retries > 50 {
			return ErrLockTimeout
		}
		time.Sleep(1 * time.Millisecond)
	}
	defer func() {
		if err := os.Remove(lockPath); err != nil {
			slog.Error("could not remove params lock file", "error", err)
		}
	}()
	defer func() {
		if err := fileLock.Unlock(); err != nil {
			slog.Error("could not unlock params directory", "error", err)
		}
	}()

	return fn()
}
