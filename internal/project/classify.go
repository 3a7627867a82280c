package project

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Type is the discrete project classification that drives restructuring
// and the shape of the deployment descriptor.
type Type string

const (
	TypeStatic Type = "static"
	TypeNode   Type = "node"
	TypeReact  Type = "react"
	TypeVite   Type = "vite"
	TypeNext   Type = "next"
)

// serverFrameworks are the dependency keys that mark a plain Node server
// project. Checked after vite and next, before react.
var serverFrameworks = []string{"express", "fastify", "koa", "hapi"}

// frameworkMarkers are config files that reveal which front-end framework
// produced a static export. They only change what gets logged; a top-level
// index.html always classifies as static.
var frameworkMarkers = map[string]string{
	"angular.json":     "Angular",
	"vue.config.js":    "Vue",
	"svelte.config.js": "Svelte",
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Classify inspects dir's top-level files and, when present, the manifest's
// declared dependencies, and returns exactly one project type. Evaluation
// order is significant: vite wins over next, next over server frameworks,
// server frameworks over react.
func Classify(dir string, logger *zap.SugaredLogger) (Type, error) {
	manifest, err := ReadManifest(dir)
	if err != nil {
		return "", err
	}

	if manifest != nil {
		switch {
		case manifest.HasDependency("vite") || fileExists(filepath.Join(dir, "vite.config.js")) || fileExists(filepath.Join(dir, "vite.config.ts")):
			return TypeVite, nil
		case manifest.HasDependency("next"):
			return TypeNext, nil
		case hasAnyDependency(manifest, serverFrameworks):
			return TypeNode, nil
		case manifest.HasDependency("react"):
			return TypeReact, nil
		default:
			return TypeNode, nil
		}
	}

	if fileExists(filepath.Join(dir, "index.html")) {
		for marker, name := range frameworkMarkers {
			if fileExists(filepath.Join(dir, marker)) && logger != nil {
				logger.Infof("Found %s marker %s, deploying the tree as a static site", name, marker)
			}
		}
		return TypeStatic, nil
	}

	return TypeStatic, nil
}

func hasAnyDependency(m *Manifest, names []string) bool {
	for _, name := range names {
		if m.HasDependency(name) {
			return true
		}
	}
	return false
}
