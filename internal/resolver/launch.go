package resolver

import (
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/jakoblorz/go-swfdebug/internal/manifest"
	"github.com/jakoblorz/go-swfdebug/internal/models"
)

// programRule names the rule that produced the launch program.
type programRule string

const (
	ruleCopiedDescriptor      programRule = "copied-descriptor"
	ruleDescriptor            programRule = "descriptor"
	ruleSynthesizedDescriptor programRule = "synthesized-descriptor"
	ruleOutput                programRule = "output"
	ruleAnimateFile           programRule = "animate-file"
	ruleMainClass             programRule = "main-class"
)

// launchState is everything launch resolution derives from asconfig.json and
// the incoming request, computed once per call.
type launchState struct {
	isMobile            bool
	requireAIR          bool
	appDescriptorPath   *string
	outputPath          *string
	libraryPath         []string
	externalLibraryPath []string
	mainClassPath       *string
	animateFilePath     *string
}

func newLaunchState(m *manifest.Manifest, req *models.DebugRequest) launchState {
	state := launchState{
		isMobile:            m.Config == models.ConfigAIRMobile,
		outputPath:          m.CompilerOptions.Output,
		libraryPath:         m.CompilerOptions.LibraryPath,
		externalLibraryPath: m.CompilerOptions.ExternalLibraryPath,
		animateFilePath:     m.AnimateOptions.File,
	}

	state.requireAIR = m.Config.IsAIR() ||
		m.Application.Present ||
		strings.HasSuffix(req.Program, extXML) ||
		req.HasAIRTuning()

	switch {
	case m.Application.Path != nil:
		state.appDescriptorPath = m.Application.Path
	case m.Application.ByPlatform != nil:
		if platform, ok := req.VersionPlatform.Platform(); ok {
			if path, found := m.Application.ByPlatform[platform]; found {
				state.appDescriptorPath = &path
			}
		}
	}

	if mainClass, ok := m.MainClassPath(); ok {
		state.mainClassPath = &mainClass
	}

	return state
}

// deriveProgram picks the program to launch when the request names none. The
// first applicable rule wins. ok is false when no rule applies at all.
func (s launchState) deriveProgram() (program string, rule programRule, ok bool) {
	switch {
	case s.appDescriptorPath != nil && s.outputPath != nil:
		// the build copies the descriptor next to the compiled output
		outputDir := filepath.Dir(*s.outputPath)
		return filepath.Join(outputDir, filepath.Base(*s.appDescriptorPath)), ruleCopiedDescriptor, true
	case s.appDescriptorPath != nil:
		return *s.appDescriptorPath, ruleDescriptor, true
	case s.requireAIR:
		// no descriptor declared: the build copies the SDK template instead
		program, _ := synthesizeDescriptorPath(s.outputPath, s.mainClassPath)
		return program, ruleSynthesizedDescriptor, true
	case s.outputPath != nil:
		return *s.outputPath, ruleOutput, true
	case s.animateFilePath != nil:
		return replaceExt(*s.animateFilePath, extSWF), ruleAnimateFile, true
	case s.mainClassPath != nil:
		// the compiler writes Main.swf next to Main.as when there is no output
		return replaceExt(*s.mainClassPath, extSWF), ruleMainClass, true
	default:
		return "", "", false
	}
}

func (r *Resolver) resolveLaunch(log logr.Logger, workspaceRoot string, m *manifest.Manifest, req *models.DebugRequest) (*models.DebugRequest, error) {
	state := newLaunchState(m, req)
	log = log.WithValues("requireAIR", state.requireAIR, "mobile", state.isMobile)

	program := req.Program
	if program == "" {
		derived, rule, ok := state.deriveProgram()
		if !ok {
			return nil, newError(KindMissingOutputOption, nil,
				failurePrefix+"Missing \"output\" compiler option in %s.", r.manifestName)
		}
		program = derived
		log.V(1).Info("derived program", "rule", rule, "program", program)
	}
	if program == "" {
		return nil, newError(KindProgramNotFound, nil, failurePrefix+"Program not found.")
	}

	if state.requireAIR && req.ExtDir == "" {
		if extDir, found := r.detectExtDir(log, workspaceRoot, program, state); found {
			req.ExtDir = extDir
		}
	}

	if req.Profile == "" {
		switch {
		case state.isMobile:
			req.Profile = models.ProfileMobileDevice
		case req.ExtDir != "":
			// native extensions on desktop need the extended profile
			req.Profile = models.ProfileExtendedDesktop
		}
	}

	req.Program = program
	return req, nil
}
