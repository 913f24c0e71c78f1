package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/allenai/mathfish/internal/domain"
	"github.com/allenai/mathfish/internal/infra/config"
	"github.com/allenai/mathfish/internal/infra/datasetstore"
	"github.com/allenai/mathfish/internal/infra/instances"
	"github.com/allenai/mathfish/internal/infra/jsongroups"
	"github.com/allenai/mathfish/internal/infra/jsonlstandards"
	"github.com/allenai/mathfish/internal/infra/logger"
	"github.com/allenai/mathfish/internal/ports"
	"github.com/allenai/mathfish/internal/usecase"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	debug      bool
	logFile    string
	seed       uint64
	format     string

	seedSet bool
	cleanup func() error
}

func (o *rootOptions) close() error {
	if o.cleanup == nil {
		return nil
	}
	err := o.cleanup()
	o.cleanup = nil
	return err
}

// workspaceCtx is the resolved config plus the engine built from it.
type workspaceCtx struct {
	cfg     domain.Config
	cfgPath string
	engine  *usecase.Engine
}

func (o *rootOptions) loadConfig() (domain.Config, string, error) {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}

	cfg, used, err := config.Discover(strings.TrimSpace(o.configPath), wd)
	if err != nil {
		return domain.Config{}, "", err
	}
	if o.seedSet {
		cfg.Seed = o.seed
	}
	return cfg, used, nil
}

func (o *rootOptions) loadWorkspace(ctx context.Context) (*workspaceCtx, error) {
	cfg, used, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	uc := usecase.NewLoadEngine(
		jsonlstandards.NewLoader(),
		jsongroups.NewLoader(),
		usecase.WithLogger(logger.L()),
	)
	eng, err := uc.Execute(ctx, cfg)
	if err != nil {
		if used == "" {
			return nil, fmt.Errorf("%w (no %s found; tip: run `mathfish init` or pass --config)", err, config.FileName)
		}
		return nil, err
	}

	return &workspaceCtx{cfg: cfg, cfgPath: used, engine: eng}, nil
}

func (ws *workspaceCtx) instanceSource() ports.InstanceSource {
	return instances.NewLoader(
		instances.WithIDPath(ws.cfg.Instances.IDPath),
		instances.WithStandardsPath(ws.cfg.Instances.StandardsPath),
	)
}

func (ws *workspaceCtx) datasetStore() ports.DatasetStore {
	return datasetstore.NewJSONLStore(ws.cfg.Paths.OutputDir, datasetstore.WithIndex(true))
}

func (ws *workspaceCtx) labeler() *usecase.PositiveLabeler {
	return usecase.NewPositiveLabeler(ws.engine.Index, ws.engine.Retriever, ws.cfg.Tagging.PositiveRelations)
}
