// Package starlark runs user-supplied validation scripts written in
// Starlark.
//
// A script is a .star file defining a function
//
//	def validate(text):
//	    return ["message", ...]
//
// called once per sentence. The globals attributes, properties and
// language hold the validator's settings.
package starlark

import (
	"fmt"
	"os"
	"path/filepath"

	"go.starlark.net/starlark"
)

// EntryPoint is the function every script must define.
const EntryPoint = "validate"

// Script is a loaded, frozen validation script. It is safe for concurrent
// use.
type Script struct {
	path string
	fn   starlark.Callable
	pool *ThreadPool
}

// LoadScript reads and executes the script at path with the given
// predeclared globals and resolves its entry point.
func LoadScript(path string, predeclared starlark.StringDict, pool *ThreadPool) (*Script, error) {
	content, err := os.ReadFile(path) //nolint:gosec // G304: path comes from validator configuration
	if err != nil {
		return nil, err
	}
	if pool == nil {
		pool = NewThreadPool(0, nil)
	}

	thread := pool.Get(fmt.Sprintf("load:%s", filepath.Base(path)))
	defer pool.Put(thread)

	globals, err := starlark.ExecFile(thread, path, content, predeclared) //nolint:staticcheck // SA1019: will migrate to ExecFileOptions later
	if err != nil {
		return nil, &ScriptError{File: path, Message: fmt.Sprintf("Starlark execution error: %v", err)}
	}
	globals.Freeze()

	fn, ok := globals[EntryPoint].(starlark.Callable)
	if !ok {
		return nil, &ScriptError{File: path, Message: fmt.Sprintf("script must define a %s(text) function", EntryPoint)}
	}

	return &Script{path: path, fn: fn, pool: pool}, nil
}

// Path returns the script's file path.
func (s *Script) Path() string { return s.path }

// Messages calls the entry point with text and returns the reported
// messages.
func (s *Script) Messages(text string) ([]string, error) {
	thread := s.pool.Get(filepath.Base(s.path))
	defer s.pool.Put(thread)

	result, err := starlark.Call(thread, s.fn, starlark.Tuple{starlark.String(text)}, nil)
	if err != nil {
		return nil, &ScriptError{File: s.path, Message: err.Error()}
	}

	msgs, err := ToStrings(result)
	if err != nil {
		return nil, &ScriptError{File: s.path, Message: fmt.Sprintf("%s returned %v", EntryPoint, err)}
	}
	return msgs, nil
}

// ScriptError reports a script that failed to load or run.
type ScriptError struct {
	File    string
	Message string
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s: %s", filepath.Base(e.File), e.Message)
}
