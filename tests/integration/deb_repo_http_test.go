//go:build integration

package integration

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"avular-packages/internal/adapters"
	"avular-packages/internal/types"
)

const artifactServerScript = `
import http.server
import socketserver

class Handler(http.server.SimpleHTTPRequestHandler):
    def do_GET(self):
        if self.path == "/pool/libfoo_1.0_amd64.deb":
            body = b"fake-debian-archive-contents"
            self.send_response(200)
            self.send_header("Content-Length", str(len(body)))
            self.end_headers()
            self.wfile.write(body)
        else:
            self.send_response(404)
            self.end_headers()

with socketserver.TCPServer(("", 8081), Handler) as httpd:
    httpd.serve_forever()
`

func TestDebRepoHTTPAdapterVerifiesArtifact(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers integration test in short mode")
	}
	ctx := context.Background()

	endpoint, cleanup := startArtifactServer(ctx, t)
	t.Cleanup(cleanup)

	body := []byte("fake-debian-archive-contents")
	sum := sha256.Sum256(body)
	hash := "sha256:" + hex.EncodeToString(sum[:])

	adapter := adapters.NewDebRepoHTTPAdapter(endpoint)

	t.Run("verified artifact reads through", func(t *testing.T) {
		reader, err := adapter.VerifyingReader(ctx, types.RepoFileRef{
			Path: "pool/libfoo_1.0_amd64.deb",
			Size: int64(len(body)),
			Hash: hash,
		})
		require.NoError(t, err)
		defer reader.Close()
		data, err := io.ReadAll(reader)
		require.NoError(t, err)
		require.Equal(t, body, data)
	})

	t.Run("hash mismatch is rejected", func(t *testing.T) {
		_, err := adapter.VerifyingReader(ctx, types.RepoFileRef{
			Path: "pool/libfoo_1.0_amd64.deb",
			Size: int64(len(body)),
			Hash: "sha256:0000000000000000000000000000000000000000000000000000000000000000",
		})
		require.Error(t, err)
	})

	t.Run("missing artifact is rejected", func(t *testing.T) {
		_, err := adapter.VerifyingReader(ctx, types.RepoFileRef{Path: "pool/missing.deb"})
		require.Error(t, err)
	})
}

func startArtifactServer(ctx context.Context, t *testing.T) (string, func()) {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "python:3.12-alpine",
		ExposedPorts: []string{"8081/tcp"},
		Cmd:          []string{"python", "-c", artifactServerScript},
		WaitingFor:   wait.ForListeningPort("8081/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "8081/tcp")
	require.NoError(t, err)

	endpoint := fmt.Sprintf("http://%s:%s", host, port.Port())
	cleanup := func() {
		_ = container.Terminate(ctx)
	}
	return endpoint, cleanup
}
