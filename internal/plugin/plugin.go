// Package plugin loads an optional user-supplied WebAssembly module
// and hands it a scan result for custom formatting or filtering. It is
// a CLI-only, fully optional post-processing hook: the core scanner
// has no knowledge of it.
package plugin

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/wasi_snapshot_preview1"
)

// Run instantiates the WASM module at path as a WASI program, writes
// input to its stdin, and returns whatever it wrote to stdout. The
// module is expected to read a JSON-encoded scan result from stdin and
// write its formatted replacement to stdout.
func Run(ctx context.Context, path string, input []byte) ([]byte, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plugin %s: %w", path, err)
	}

	runtime := wazero.NewRuntime(ctx)
	defer runtime.Close(ctx)

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, runtime); err != nil {
		return nil, fmt.Errorf("instantiating WASI for plugin %s: %w", path, err)
	}

	compiled, err := runtime.CompileModule(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("compiling plugin %s: %w", path, err)
	}

	var stdout bytes.Buffer
	moduleConfig := wazero.NewModuleConfig().
		WithStdin(bytes.NewReader(input)).
		WithStdout(&stdout).
		WithStderr(os.Stderr).
		WithArgs("eslex-plugin")

	if _, err := runtime.InstantiateModule(ctx, compiled, moduleConfig); err != nil {
		return nil, fmt.Errorf("running plugin %s: %w", path, err)
	}

	return stdout.Bytes(), nil
}
