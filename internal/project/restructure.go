package project

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"go.uber.org/zap"
)

// wellKnownEntryFiles are the scaffold files a flat Vite project keeps at
// the top level. They move into src/ so the default Vite config resolves
// them.
var wellKnownEntryFiles = []string{
	"main.jsx",
	"main.js",
	"App.jsx",
	"App.js",
	"index.css",
	"App.css",
}

var (
	relativeAssetsPattern = regexp.MustCompile(`from\s+['"](?:\./)?assets/([^'"\n]+)['"]`)
	absoluteSvgPattern    = regexp.MustCompile(`from\s+['"](/[^'"\n]+\.svg)['"]`)
)

const defaultViteConfig = `import { defineConfig } from 'vite'
import react from '@vitejs/plugin-react'

export default defineConfig({
  plugins: [react()],
  build: {
    outDir: 'dist',
    assetsDir: 'assets',
  },
})
`

func isScriptFile(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".js" || ext == ".jsx"
}

// RestructureVite rewrites a flat-layout Vite project into the src layout
// the bundler expects. The file moves are skipped entirely when src/
// already exists, so a second invocation on the same workspace is a no-op.
// The vite config and manifest patches run either way but only add what is
// missing.
func RestructureVite(dir string, logger *zap.SugaredLogger) error {
	srcDir := filepath.Join(dir, "src")

	if !dirExists(srcDir) {
		if err := moveIntoSrc(dir, srcDir, logger); err != nil {
			return err
		}
	} else if logger != nil {
		logger.Infof("src directory already exists in %s, skipping layout changes", dir)
	}

	if err := ensureViteConfig(dir); err != nil {
		return err
	}

	return patchManifest(dir)
}

func moveIntoSrc(dir, srcDir string, logger *zap.SugaredLogger) error {
	if err := os.MkdirAll(srcDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %v", srcDir, err)
	}

	for _, name := range wellKnownEntryFiles {
		path := filepath.Join(dir, name)
		if !fileExists(path) {
			continue
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %v", path, err)
		}

		content := string(raw)
		if isScriptFile(name) {
			content = RepairImports(content)
		}

		target := filepath.Join(srcDir, name)
		if err := os.WriteFile(target, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %v", target, err)
		}

		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove %s: %v", path, err)
		}

		if logger != nil {
			logger.Infof("Moved %s to src/%s", name, name)
		}
	}

	if err := moveAssets(dir, srcDir); err != nil {
		return err
	}

	if err := moveVectorImages(dir); err != nil {
		return err
	}

	if err := rewriteEntryHTML(dir); err != nil {
		return err
	}

	return rewriteAppImports(srcDir)
}

func moveAssets(dir, srcDir string) error {
	assetsDir := filepath.Join(dir, "assets")
	if !dirExists(assetsDir) {
		return nil
	}

	target := filepath.Join(srcDir, "assets")
	if err := os.MkdirAll(target, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %v", target, err)
	}

	entries, err := os.ReadDir(assetsDir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %v", assetsDir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(assetsDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read asset %s: %v", entry.Name(), err)
		}

		if err := os.WriteFile(filepath.Join(target, entry.Name()), raw, 0644); err != nil {
			return fmt.Errorf("failed to write asset %s: %v", entry.Name(), err)
		}
	}

	if err := os.RemoveAll(assetsDir); err != nil {
		return fmt.Errorf("failed to remove %s: %v", assetsDir, err)
	}

	return nil
}

// moveVectorImages relocates top-level svg files into public/, where Vite
// serves them at the site root. Copy first, delete only once the copy
// landed.
func moveVectorImages(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %v", dir, err)
	}

	publicDir := filepath.Join(dir, "public")

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".svg" {
			continue
		}

		if err := os.MkdirAll(publicDir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %v", publicDir, err)
		}

		src := filepath.Join(dir, entry.Name())
		raw, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf("failed to read %s: %v", src, err)
		}

		if err := os.WriteFile(filepath.Join(publicDir, entry.Name()), raw, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %v", filepath.Join(publicDir, entry.Name()), err)
		}

		if err := os.Remove(src); err != nil {
			return fmt.Errorf("failed to remove %s: %v", src, err)
		}
	}

	return nil
}

func rewriteEntryHTML(dir string) error {
	htmlPath := filepath.Join(dir, "index.html")
	if !fileExists(htmlPath) {
		return nil
	}

	raw, err := os.ReadFile(htmlPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %v", htmlPath, err)
	}

	content := string(raw)
	for _, ext := range []string{"jsx", "js"} {
		pattern := regexp.MustCompile(`src=["'](?:\.?/)?main\.` + ext + `["']`)
		content = pattern.ReplaceAllString(content, `src="/src/main.`+ext+`"`)
	}

	if err := os.WriteFile(htmlPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %v", htmlPath, err)
	}

	return nil
}

func rewriteAppImports(srcDir string) error {
	appPath := filepath.Join(srcDir, "App.jsx")
	if !fileExists(appPath) {
		return nil
	}

	raw, err := os.ReadFile(appPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %v", appPath, err)
	}

	content := string(raw)
	content = relativeAssetsPattern.ReplaceAllString(content, "from './assets/${1}'")
	content = absoluteSvgPattern.ReplaceAllString(content, "from '${1}'")
	content = RepairImports(content)

	if err := os.WriteFile(appPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %v", appPath, err)
	}

	return nil
}

func ensureViteConfig(dir string) error {
	if fileExists(filepath.Join(dir, "vite.config.js")) || fileExists(filepath.Join(dir, "vite.config.ts")) {
		return nil
	}

	configPath := filepath.Join(dir, "vite.config.js")
	if err := os.WriteFile(configPath, []byte(defaultViteConfig), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %v", configPath, err)
	}

	return nil
}

func patchManifest(dir string) error {
	manifest, err := ReadManifest(dir)
	if err != nil {
		return err
	}
	if manifest == nil {
		return nil
	}

	// build and preview travel as a pair; a project that defines its own
	// build script keeps whatever preview setup it has.
	if !manifest.HasScript("build") {
		manifest.SetScript("build", "vite build")
		manifest.SetScript("preview", "vite preview")
	}

	if !manifest.HasDependency("vite") {
		manifest.SetDependency("devDependencies", "vite", "^5.0.0")
	}
	if !manifest.HasDependency("@vitejs/plugin-react") {
		manifest.SetDependency("devDependencies", "@vitejs/plugin-react", "^4.2.0")
	}

	if !hasRuntimeDependency(manifest, "react") {
		manifest.SetDependency("dependencies", "react", "^18.2.0")
		manifest.SetDependency("dependencies", "react-dom", "^18.2.0")
	}

	return manifest.Save()
}

func hasRuntimeDependency(m *Manifest, name string) bool {
	section := m.section("dependencies")
	if section == nil {
		return false
	}
	_, ok := section[name]
	return ok
}
