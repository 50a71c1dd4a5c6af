package config

import (
	"fmt"
	"os"
	"path/filepath"

	"genovault/internal/constants"
)

func ValidateWorkingDirectory(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("directory does not exist")
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory")
	}
	return nil
}

// InitializeWorkingDirectory prepares the directory layout expected by the
// server: .internal/ (database, logs) and the public uploads tree.
func InitializeWorkingDirectory(path string) error {
	if err := ValidateWorkingDirectory(path); err != nil {
		return err
	}

	internalDir := filepath.Join(path, constants.InternalDir)
	if err := os.MkdirAll(internalDir, constants.DirPermissions); err != nil {
		return err
	}

	logsBaseDir := filepath.Join(internalDir, constants.LogsDir)
	logSubDirs := []string{
		constants.LogsDirDebug,
		constants.LogsDirInfo,
		constants.LogsDirWarn,
		constants.LogsDirError,
	}
	for _, subDir := range logSubDirs {
		logDir := filepath.Join(logsBaseDir, subDir)
		if err := os.MkdirAll(logDir, constants.DirPermissions); err != nil {
			return fmt.Errorf("failed to create log directory %s: %w", logDir, err)
		}
	}

	uploadsBase := filepath.Join(path, constants.UploadsDir)
	for _, category := range constants.UploadCategories {
		dir := filepath.Join(uploadsBase, category)
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return fmt.Errorf("failed to create uploads directory %s: %w", dir, err)
		}
	}

	return nil
}

// StorePath returns the path of the SQLite database under the working directory.
func StorePath(workDir string) string {
	return filepath.Join(workDir, constants.InternalDir, constants.StoreDB)
}

// UploadsPath returns the public uploads root under the working directory.
func UploadsPath(workDir string) string {
	return filepath.Join(workDir, constants.UploadsDir)
}
