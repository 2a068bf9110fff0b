package conformance

import (
	"context"
	"embed"
	"io/fs"
	"testing"

	"github.com/cottand/semtype/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/*.yaml
var testdata embed.FS

func TestSuites(t *testing.T) {
	files, err := fs.Glob(testdata, "testdata/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			env := types.NewEnv(types.EnvSettings{})
			suite, err := Load(env, testdata, file)
			require.NoError(t, err)
			require.NotEmpty(t, suite.Queries)

			results, err := suite.Run(context.Background(), 4)
			require.NoError(t, err)
			require.Len(t, results, len(suite.Queries))
			for _, r := range results {
				assert.True(t, r.OK(), "%s:%d: %s: expected %v, got %v", file, r.Query.Line, r.Query, r.Query.Expect, r.Got)
			}
		})
	}
}

// queries must not depend on the verdicts cached by earlier ones
func TestSuitesWithoutVerdictCache(t *testing.T) {
	files, err := fs.Glob(testdata, "testdata/*.yaml")
	require.NoError(t, err)

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			env := types.NewEnv(types.EnvSettings{DisableVerdictCache: true})
			suite, err := Load(env, testdata, file)
			require.NoError(t, err)

			for _, q := range suite.Queries {
				assert.Equal(t, q.Expect, q.Eval(env), "%s:%d: %s", file, q.Line, q)
			}
		})
	}
}

func TestSameSuiteTwiceInOneEnv(t *testing.T) {
	env := types.NewEnv(types.EnvSettings{})
	first, err := Load(env, testdata, "testdata/recursive.yaml")
	require.NoError(t, err)
	second, err := Load(env, testdata, "testdata/recursive.yaml")
	require.NoError(t, err)

	json1, ok := first.Lookup("Json")
	require.True(t, ok)
	json2, ok := second.Lookup("Json")
	require.True(t, ok)
	assert.True(t, env.IsSameType(json1, json2))

	_, ok = first.Lookup("Nope")
	assert.False(t, ok)
}

func TestRunCancelled(t *testing.T) {
	env := types.NewEnv(types.EnvSettings{})
	suite, err := Load(env, testdata, "testdata/basics.yaml")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = suite.Run(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
