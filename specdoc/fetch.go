package specdoc

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-getter"
	"go.uber.org/zap"

	"github.com/refaktor/glgen/logger"
)

const DefaultRootURL = "http://www.opengl.org/registry/specs/"

// DefaultExceptions maps URL fragments whose texts are published under
// a non-canonical location.
var DefaultExceptions = map[string]string{
	"3DFX/multisample":  "http://oss.sgi.com/projects/ogl-sample/registry/3DFX/3dfx_multisample.txt",
	"SGIS/fog_function": "http://oss.sgi.com/projects/ogl-sample/registry/SGIS/fog_func.txt",
}

// GetFunc downloads src to the file dst.
type GetFunc func(ctx context.Context, dst, src string) error

// Fetcher retrieves specification texts, caching each in a sidecar
// file. The zero value fetches from [DefaultRootURL].
type Fetcher struct {
	RootURL string
	// Exceptions take precedence over [DefaultExceptions].
	Exceptions map[string]string
	Log        *zap.SugaredLogger
	// Get defaults to a go-getter download.
	Get GetFunc
}

// URLFor resolves a fragment such as "ARB/vertex_array_object".
func (f *Fetcher) URLFor(fragment string) string {
	if u, ok := f.Exceptions[fragment]; ok {
		return u
	}
	if u, ok := DefaultExceptions[fragment]; ok {
		return u
	}
	root := f.RootURL
	if root == "" {
		root = DefaultRootURL
	}
	return strings.TrimSuffix(root, "/") + "/" + fragment + ".txt"
}

// Fetch returns the specification for fragment, reading cachePath if
// it exists and downloading into it otherwise. Failures are logged and
// yield an empty document.
func (f *Fetcher) Fetch(ctx context.Context, fragment, cachePath string) *Document {
	log := logger.OrNop(f.Log)
	url := f.URLFor(fragment)

	data, err := os.ReadFile(cachePath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Infow("downloading specification", logger.FieldURL, url)
		get := f.Get
		if get == nil {
			get = getterGet
		}
		if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
			log.Warnw("failed to create specification cache directory", logger.FieldPath, cachePath, logger.FieldError, err)
			return Parse("")
		}
		if err := get(ctx, cachePath, url); err != nil {
			log.Warnw("failed to download specification", logger.FieldURL, url, logger.FieldError, err)
			_ = os.Remove(cachePath)
			return Parse("")
		}
		data, err = os.ReadFile(cachePath)
	}
	if err != nil {
		log.Warnw("failed to read specification", logger.FieldPath, cachePath, logger.FieldError, err)
		return Parse("")
	}

	if strings.Contains(string(data), "Error 404") {
		log.Infow("specification not found", logger.FieldURL, url)
		return Parse("")
	}
	return Parse(string(data))
}

func getterGet(ctx context.Context, dst, src string) error {
	client := &getter.Client{
		Ctx:     ctx,
		Src:     src,
		Dst:     dst,
		Mode:    getter.ClientModeFile,
		Getters: getter.Getters,
	}
	return client.Get()
}
