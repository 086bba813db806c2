package sessions

import (
	"context"
	"net/http"
	"os"
	"os/exec"
	"slices"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/servers"
)

// Dialer builds the transport used to reach a server.
type Dialer func(ctx context.Context, d servers.Descriptor) (mcp.Transport, error)

// DefaultDialer launches stdio servers as child processes and reaches
// http and sse servers over the network.
func DefaultDialer(_ context.Context, d servers.Descriptor) (mcp.Transport, error) {
	switch d.EffectiveTransport() {
	case servers.TransportStdio:
		return commandTransport(d), nil
	case servers.TransportHTTP:
		return &mcp.StreamableClientTransport{
			Endpoint:   d.URL,
			HTTPClient: httpClient(d.Headers),
		}, nil
	case servers.TransportSSE:
		return &mcp.SSEClientTransport{
			Endpoint:   d.URL,
			HTTPClient: httpClient(d.Headers),
		}, nil
	default:
		return nil, errors.ErrUnsupported
	}
}

// The process outlives the connect context, so exec.Command rather than
// exec.CommandContext.
func commandTransport(d servers.Descriptor) *mcp.CommandTransport {
	cmd := exec.Command(d.Command, d.Args...)
	if len(d.Env) > 0 {
		env := os.Environ()
		keys := make([]string, 0, len(d.Env))
		for k := range d.Env {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			env = append(env, k+"="+d.Env[k])
		}
		cmd.Env = env
	}
	return &mcp.CommandTransport{Command: cmd}
}

func httpClient(headers map[string]string) *http.Client {
	if len(headers) == 0 {
		return http.DefaultClient
	}
	return &http.Client{
		Transport: &headerTransport{headers: headers, base: http.DefaultTransport},
	}
}

// headerTransport adds fixed headers to every request.
type headerTransport struct {
	headers map[string]string
	base    http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	return t.base.RoundTrip(req)
}
