package adapters

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"avular-packages/internal/ports"
	"avular-packages/internal/types"
)

// DebRepoHTTPAdapter implements ports.DebRepoPort by fetching an
// artifact over HTTP and verifying its size and sha256 hash before
// returning it, matching the verifying-reader contract spec.md §6.2
// requires of the repository collaborator.
type DebRepoHTTPAdapter struct {
	BaseURL string
	Client  *http.Client
}

func NewDebRepoHTTPAdapter(baseURL string) *DebRepoHTTPAdapter {
	return &DebRepoHTTPAdapter{BaseURL: strings.TrimRight(baseURL, "/"), Client: http.DefaultClient}
}

func (a *DebRepoHTTPAdapter) VerifyingReader(ctx context.Context, ref types.RepoFileRef) (io.ReadCloser, error) {
	data, err := a.fetchVerified(ctx, ref)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader(string(data))), nil
}

// VerifyingDebReader fetches and verifies the artifact exactly like
// VerifyingReader, then wraps it with .deb (ar) archive semantics
// (spec.md §6.2's verifying_deb_reader).
func (a *DebRepoHTTPAdapter) VerifyingDebReader(ctx context.Context, ref types.RepoFileRef) (*ports.DebReader, error) {
	data, err := a.fetchVerified(ctx, ref)
	if err != nil {
		return nil, err
	}
	return ports.NewDebReader(io.NopCloser(strings.NewReader(string(data)))), nil
}

func (a *DebRepoHTTPAdapter) fetchVerified(ctx context.Context, ref types.RepoFileRef) ([]byte, error) {
	url := a.BaseURL + "/" + strings.TrimLeft(ref.Path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to build repository request").
			WithCause(err)
	}
	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("repository request failed").
			WithCause(err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("repository artifact %s returned status %d", ref.Path, resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read repository artifact").
			WithCause(err)
	}
	if ref.Size > 0 && int64(len(data)) != ref.Size {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("repository artifact %s size mismatch: want %d, got %d", ref.Path, ref.Size, len(data)))
	}
	if ref.Hash != "" {
		want := strings.TrimPrefix(ref.Hash, "sha256:")
		sum := sha256.Sum256(data)
		got := hex.EncodeToString(sum[:])
		if !strings.EqualFold(want, got) {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("repository artifact %s hash mismatch: want %s, got %s", ref.Path, want, got))
		}
	}
	log.Ctx(ctx).Debug().Str("path", ref.Path).Int("bytes", len(data)).Msg("verified repository artifact")
	return data, nil
}
