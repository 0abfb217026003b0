package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/fivetwenty-io/wix-templates/internal/constants"
	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// skippedDirs are build and dependency directories never copied into a
// new project.
var skippedDirs = map[string]bool{
	"node_modules": true,
	".next":        true,
	".astro":       true,
	"dist":         true,
	".expo":        true,
}

// ScaffoldResult describes a finished scaffold.
type ScaffoldResult struct {
	Template    string `json:"template"    yaml:"template"`
	Destination string `json:"destination" yaml:"destination"`
	Files       int    `json:"files"       yaml:"files"`
}

// Scaffold copies the template directory at <root>/<template.Path()> into
// dest. dest must not exist or be empty.
func Scaffold(fs afero.Fs, root string, template Template, dest string) (*ScaffoldResult, error) {
	src := filepath.Join(root, string(template.Framework), template.Name)

	info, err := fs.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s not found under %s", wix.ErrTemplateNotFound, template.Path(), root)
		}

		return nil, fmt.Errorf("reading template %s: %w", template.Path(), err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", wix.ErrTemplateNotFound, src)
	}

	err = checkOutsideSource(src, dest)
	if err != nil {
		return nil, err
	}

	empty, err := isEmptyOrMissing(fs, dest)
	if err != nil {
		return nil, err
	}

	if !empty {
		return nil, fmt.Errorf("%w: %s", wix.ErrDestinationNotEmpty, dest)
	}

	result := &ScaffoldResult{Template: template.Path(), Destination: dest}

	err = afero.Walk(fs, src, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", path, err)
		}

		if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return fmt.Errorf("%w: %s", constants.ErrDirectoryTraversalDetected, path)
		}

		target := filepath.Join(dest, rel)

		if info.IsDir() {
			if skippedDirs[info.Name()] && rel != "." {
				return filepath.SkipDir
			}

			return fs.MkdirAll(target, constants.ScaffoldDirPerm)
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		err = copyFile(fs, path, target, info.Mode().Perm())
		if err != nil {
			return err
		}

		result.Files++

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scaffolding %s: %w", template.Path(), err)
	}

	return result, nil
}

// checkOutsideSource rejects a dest equal to or nested in src; the walk
// would otherwise copy dest into itself.
func checkOutsideSource(src, dest string) error {
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", src, err)
	}

	absDest, err := filepath.Abs(dest)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dest, err)
	}

	rel, err := filepath.Rel(absSrc, absDest)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dest, err)
	}

	if rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", wix.ErrDestinationInsideTemplate, dest)
	}

	return nil
}

func isEmptyOrMissing(fs afero.Fs, dir string) (bool, error) {
	info, err := fs.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}

		return false, fmt.Errorf("checking destination %s: %w", dir, err)
	}

	if !info.IsDir() {
		return false, nil
	}

	empty, err := afero.IsEmpty(fs, dir)
	if err != nil {
		return false, fmt.Errorf("checking destination %s: %w", dir, err)
	}

	return empty, nil
}

func copyFile(fs afero.Fs, src, dst string, mode os.FileMode) error {
	data, err := afero.ReadFile(fs, src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}

	if mode == 0 {
		mode = constants.ScaffoldFilePerm
	}

	err = afero.WriteFile(fs, dst, data, mode)
	if err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}

	return nil
}
