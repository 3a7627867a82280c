package deploy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/airlift-cli/airlift/internal/config"
	"github.com/airlift-cli/airlift/internal/descriptor"
	"github.com/airlift-cli/airlift/internal/history"
	"github.com/airlift-cli/airlift/internal/project"
	"github.com/airlift-cli/airlift/internal/workspace"
)

// Runner owns one deployment pipeline: copy into a workspace, validate,
// classify, restructure if needed, write the descriptor, invoke the
// platform CLI, tear the workspace down.
type Runner struct {
	cfg     config.Config
	logger  *zap.SugaredLogger
	history *history.Store
}

// NewRunner wires a runner. history may be nil; recording deployments is
// observability, not part of the run contract.
func NewRunner(cfg config.Config, logger *zap.SugaredLogger, store *history.Store) *Runner {
	return &Runner{
		cfg:     cfg,
		logger:  logger,
		history: store,
	}
}

// Run deploys sourceDir and returns the deployment URL. The workspace is
// removed on every exit path; cleanup failures are logged, never returned.
func (r *Runner) Run(ctx context.Context, sourceDir string) (string, error) {
	if r.cfg.Token == "" {
		return "", fmt.Errorf("no deployment token configured, set VERCEL_TOKEN")
	}

	ws, err := workspace.Create(sourceDir, r.logger)
	if err != nil {
		return "", fmt.Errorf("failed to prepare workspace: %v", err)
	}
	defer ws.Remove()

	r.logger.Infof("Prepared workspace %s from %s", ws.Path, sourceDir)

	if err := validate(ws.Path); err != nil {
		return "", err
	}

	projectType, err := project.Classify(ws.Path, r.logger)
	if err != nil {
		return "", err
	}
	r.logger.Infof("Classified project as %s", projectType)

	if projectType == project.TypeVite {
		if err := project.RestructureVite(ws.Path, r.logger); err != nil {
			return "", err
		}
	}

	desc, err := descriptor.New(projectType)
	if err != nil {
		return "", err
	}
	if err := desc.Write(ws.Path); err != nil {
		return "", err
	}

	invoker := &Invoker{
		Bin:       r.cfg.VercelBin,
		Token:     r.cfg.Token,
		ProjectID: r.cfg.ProjectID,
	}

	url, err := invoker.Deploy(ctx, ws.Path)
	if err != nil {
		return "", err
	}

	if r.history != nil {
		if err := r.history.Record(string(projectType), url, sourceDir); err != nil {
			r.logger.Warnf("Failed to record deployment: %v", err)
		}
	}

	return url, nil
}

// validate rejects workspaces that carry neither deployment marker. It
// runs on the workspace copy, not the original source tree.
func validate(dir string) error {
	hasHTML := fileExists(filepath.Join(dir, "index.html"))
	hasManifest := fileExists(filepath.Join(dir, "package.json"))

	if !hasHTML && !hasManifest {
		return fmt.Errorf("directory %s contains neither index.html nor package.json, nothing to deploy", dir)
	}

	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
