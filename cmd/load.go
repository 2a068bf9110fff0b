package cmd

import (
	"os"
	"path/filepath"

	"github.com/cottand/semtype/conformance"
	"github.com/cottand/semtype/types"
	"github.com/pkg/errors"
)

// loadSuite loads the suite at target, which may be relative to the working directory
func loadSuite(env *types.Env, target string) (*conformance.Suite, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, errors.Wrap(err, "could not get absolute path of target")
	}
	stat, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrap(err, "could not stat target")
	}
	if stat.IsDir() {
		return nil, errors.Errorf("%s is a directory, expected a suite file", target)
	}
	return conformance.Load(env, os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
}
