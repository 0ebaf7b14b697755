package resolver

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/jakoblorz/go-swfdebug/internal/filesystem"
	"github.com/jakoblorz/go-swfdebug/internal/manifest"
	"github.com/jakoblorz/go-swfdebug/internal/models"
	"github.com/jakoblorz/go-swfdebug/internal/notify"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const failurePrefix = "Failed to debug SWF. "

// Resolver fills in a sparse SWF debug configuration from the workspace's
// asconfig.json.
//
// Resolve never modifies the request it is given. On success it returns a new,
// fully populated request; on failure it notifies the user once and returns a
// *Error.
type Resolver struct {
	fs           filesystem.FileSystem
	parser       manifest.Parser
	notifier     notify.Notifier
	log          logr.Logger
	manifestName string
}

// Option configures resolver behavior.
type Option func(*Resolver)

// WithManifestName overrides the manifest file name (asconfig.json).
func WithManifestName(name string) Option {
	return func(r *Resolver) {
		if name != "" {
			r.manifestName = name
		}
	}
}

// WithLogger sets the logger used for resolution decisions.
func WithLogger(log logr.Logger) Option {
	return func(r *Resolver) {
		r.log = log
	}
}

// New creates a new Resolver.
func New(fs filesystem.FileSystem, parser manifest.Parser, notifier notify.Notifier, options ...Option) *Resolver {
	r := &Resolver{
		fs:           fs,
		parser:       parser,
		notifier:     notifier,
		log:          logr.Discard(),
		manifestName: manifest.FileName,
	}

	for _, option := range options {
		option(r)
	}

	return r
}

// Resolve returns the fully resolved copy of req.
func (r *Resolver) Resolve(ctx context.Context, workspaceRoot string, req *models.DebugRequest) (*models.DebugRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolved, err := r.resolve(r.withResolutionID(), workspaceRoot, req)
	if err != nil {
		var resolveErr *Error
		if errors.As(err, &resolveErr) {
			r.notifier.ShowError(resolveErr.Message)
		}
		return nil, err
	}
	return resolved, nil
}

func (r *Resolver) resolve(log logr.Logger, workspaceRoot string, req *models.DebugRequest) (*models.DebugRequest, error) {
	if workspaceRoot == "" {
		return nil, newError(KindMissingWorkspace, nil, failurePrefix+"A workspace must be open.")
	}

	manifestPath := filepath.Join(workspaceRoot, r.manifestName)
	if !r.fs.Exists(manifestPath) {
		return nil, newError(KindMissingManifest, nil, failurePrefix+"Workspace does not contain %s.", r.manifestName)
	}

	result := req.Clone()
	if result.Type == "" {
		result.Type = models.DebugType
	}
	if result.Request == "" {
		result.Request = models.RequestLaunch
	}

	m, err := r.readManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	log = log.WithValues("workspace", workspaceRoot, "request", result.Request)
	if result.Request == models.RequestAttach {
		return r.resolveAttach(log, workspaceRoot, m, result)
	}
	return r.resolveLaunch(log, workspaceRoot, m, result)
}

// readManifest parses asconfig.json fresh on every call.
func (r *Resolver) readManifest(path string) (*manifest.Manifest, error) {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		return nil, newError(KindManifestParseError, err, failurePrefix+"Error reading %s", r.manifestName)
	}

	m, err := r.parser.Parse(data)
	if err != nil {
		return nil, newError(KindManifestParseError, err, failurePrefix+"Error reading %s", r.manifestName)
	}
	return m, nil
}

func (r *Resolver) withResolutionID() logr.Logger {
	id, err := gonanoid.New(10)
	if err != nil {
		return r.log
	}
	return r.log.WithValues("resolution", id)
}
