package errors_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/toolmap/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "server",
			ID:       "filesystem",
		}
		assert.Equal(t, "server with ID filesystem not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("server", "fetch")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "key",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field key: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "invalid descriptor"}
		assert.Equal(t, "validation failed: invalid descriptor", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestConfigError(t *testing.T) {
	base := errors.New("missing file")
	err := pkgerrors.NewConfigError("overrides", "cannot read", base)
	assert.Equal(t, "configuration error in overrides: cannot read", err.Error())
	assert.ErrorIs(t, err, base)

	bare := &pkgerrors.ConfigError{Message: "bad"}
	assert.Equal(t, "configuration error: bad", bare.Error())
}

func TestLoadError(t *testing.T) {
	err := pkgerrors.NewLoadError("catalog", pkgerrors.ErrTimeout)
	assert.Equal(t, "catalog load failed: operation timed out", err.Error())
	assert.True(t, pkgerrors.IsTimeout(err))

	var loadErr *pkgerrors.LoadError
	require.True(t, errors.As(fmt.Errorf("refresh: %w", err), &loadErr))
	assert.Equal(t, "catalog", loadErr.Load)
}

func TestLoadErrorContextCauses(t *testing.T) {
	canceled := pkgerrors.NewLoadError("overrides", fmt.Errorf("read: %w", context.Canceled))
	assert.True(t, pkgerrors.IsCanceled(canceled))
	assert.False(t, pkgerrors.IsTimeout(canceled))

	expired := pkgerrors.NewLoadError("active", context.DeadlineExceeded)
	assert.True(t, pkgerrors.IsTimeout(expired))
	assert.False(t, pkgerrors.IsCanceled(expired))

	plain := pkgerrors.NewLoadError("catalog", errors.New("bad yaml"))
	assert.False(t, pkgerrors.IsTimeout(plain))
	assert.False(t, pkgerrors.IsCanceled(plain))
}

func TestSessionError(t *testing.T) {
	err := &pkgerrors.SessionError{Server: "git", Transport: "stdio", Err: pkgerrors.ErrNotConnected}
	assert.Equal(t, "session error for git (stdio): not connected", err.Error())
	assert.ErrorIs(t, err, pkgerrors.ErrNotConnected)

	err = &pkgerrors.SessionError{Server: "git", Err: pkgerrors.ErrCanceled}
	assert.Equal(t, "session error for git: operation canceled", err.Error())
	assert.True(t, pkgerrors.IsCanceled(err))
}

func TestParseError(t *testing.T) {
	t.Run("with file", func(t *testing.T) {
		err := pkgerrors.NewParseError("yaml", "servers.yaml", "bad indent", nil)
		assert.Equal(t, "parse error in yaml file servers.yaml: bad indent", err.Error())
	})

	t.Run("without file", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "toml", Message: "unexpected ="}
		assert.Equal(t, "toml parse error: unexpected =", err.Error())
	})
}

func TestIOError(t *testing.T) {
	base := errors.New("permission denied")
	err := pkgerrors.NewIOError("read", "/etc/toolmap.yaml", base)
	assert.Equal(t, "IO error during read of /etc/toolmap.yaml: permission denied", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestResourceError(t *testing.T) {
	base := errors.New("boom")
	err := pkgerrors.NewResourceError("connect", "session", "git", base)
	assert.Equal(t, "failed to connect session git: boom", err.Error())

	err = pkgerrors.NewResourceError("create", "client", "", base)
	assert.Equal(t, "failed to create client: boom", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestTimeoutError(t *testing.T) {
	err := &pkgerrors.TimeoutError{Operation: "refresh", Duration: "30s", Message: "loads did not finish"}
	assert.Equal(t, "operation refresh timed out after 30s: loads did not finish", err.Error())
	assert.True(t, pkgerrors.IsTimeout(err))
}

func TestWrapHelpers(t *testing.T) {
	t.Run("nil passthrough", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
		assert.NoError(t, pkgerrors.WrapParse("yaml", "x", nil))
		assert.NoError(t, pkgerrors.WrapResource("load", "catalog", "", nil))
		assert.NoError(t, pkgerrors.WrapValidation("key", nil))
	})

	t.Run("wrapping", func(t *testing.T) {
		base := errors.New("eof")

		var parseErr *pkgerrors.ParseError
		require.True(t, errors.As(pkgerrors.WrapParse("json", "mcp.json", base), &parseErr))
		assert.Equal(t, "json", parseErr.Format)
		assert.ErrorIs(t, parseErr, base)

		var ioErr *pkgerrors.IOError
		require.True(t, errors.As(pkgerrors.WrapIO("stat", "servers.yaml", base), &ioErr))
		assert.Equal(t, "stat", ioErr.Operation)

		assert.True(t, pkgerrors.IsValidationError(pkgerrors.WrapValidation("url", base)))
	})
}
