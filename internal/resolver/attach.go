package resolver

import (
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/jakoblorz/go-swfdebug/internal/manifest"
	"github.com/jakoblorz/go-swfdebug/internal/models"
)

// resolveAttach fills applicationID and bundle for attaching to an installed
// mobile app. Without a platform, attach is configured entirely by hand.
func (r *Resolver) resolveAttach(log logr.Logger, workspaceRoot string, m *manifest.Manifest, req *models.DebugRequest) (*models.DebugRequest, error) {
	platform := req.Platform
	if platform == "" {
		log.V(1).Info("no platform, leaving attach configuration as given")
		return req, nil
	}
	log = log.WithValues("platform", platform)

	applicationID := req.ApplicationID
	if applicationID == "" {
		if descriptorPath, ok := m.Application.DescriptorPath(platform); ok && descriptorPath != "" {
			descriptorPath = absPath(workspaceRoot, descriptorPath)
			content, err := r.fs.ReadFile(descriptorPath)
			if err != nil {
				return nil, newError(KindDescriptorReadError, err, failurePrefix+"Error reading %s", filepath.Base(descriptorPath))
			}
			if id, found := findApplicationID(string(content)); found {
				applicationID = id
				log.V(1).Info("read application id", "descriptor", descriptorPath, "applicationID", id)
			}
		}
	}

	bundle := req.Bundle
	if bundle == "" {
		if output, ok := m.AIROptions.BundleOutput(platform); ok {
			bundle = output
			log.V(1).Info("using packaged output", "bundle", bundle)
		}
	}

	if applicationID == "" {
		return nil, newError(KindMissingApplicationID, nil,
			failurePrefix+"Error reading application <id> in application descriptor for platform %q.", string(platform))
	}
	if bundle == "" {
		return nil, newError(KindMissingBundleOutput, nil,
			failurePrefix+"Error reading output path in %s for platform %q.", r.manifestName, string(platform))
	}

	req.ApplicationID = applicationID
	req.Bundle = bundle
	return req, nil
}
