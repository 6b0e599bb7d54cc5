package glgen

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/refaktor/glgen/config"
	"github.com/refaktor/glgen/logger"
	"github.com/refaktor/glgen/merge"
	"github.com/refaktor/glgen/naming"
	"github.com/refaktor/glgen/registry"
	"github.com/refaktor/glgen/render"
	"github.com/refaktor/glgen/specdoc"
)

// Generator writes the raw and friendly modules of every module in a
// registry.
type Generator struct {
	Config   *config.Config
	Source   registry.Source
	Log      *zap.SugaredLogger
	Renderer render.Renderer
	Fetcher  *specdoc.Fetcher
	Writer   *merge.Writer
}

// New returns a generator configured by cfg. With dryRun set no file
// is written.
func New(cfg *config.Config, src registry.Source, log *zap.SugaredLogger, dryRun bool) *Generator {
	log = logger.OrNop(log)
	return &Generator{
		Config: cfg,
		Source: src,
		Log:    log,
		Fetcher: &specdoc.Fetcher{
			RootURL:    cfg.Spec.RootURL,
			Exceptions: cfg.Spec.Exceptions,
			Log:        log,
		},
		Writer: &merge.Writer{
			DryRun:               dryRun,
			Log:                  log,
			PackageMarker:        cfg.PackageMarker,
			PackageMarkerContent: cfg.PackageMarkerContent,
		},
	}
}

func (g *Generator) namingOptions() naming.Options {
	return naming.Options{
		Root:          g.Config.OutputRoot,
		RawRoot:       g.Config.RawOutputRoot,
		Ext:           g.Config.FileExtension,
		RawOwnerPaths: g.Config.RawOwnerPaths,
	}
}

// ModuleGenerator generates the two files of one registry module.
type ModuleGenerator struct {
	Module *registry.Module
	ID     *naming.Identity

	Overview     string
	SpecURL      string
	GetConstants []string

	g *Generator
}

// NewModuleGenerator prepares generation of m. If fetching is enabled,
// the specification of an extension is retrieved for its overview and
// glGet constants.
func (g *Generator) NewModuleGenerator(ctx context.Context, m *registry.Module, id *naming.Identity) *ModuleGenerator {
	mg := &ModuleGenerator{
		Module:  m,
		ID:      id,
		SpecURL: g.Fetcher.URLFor(id.SpecFragment()),
		g:       g,
	}
	if !g.Config.Spec.Fetch || m.Feature {
		return mg
	}

	cachePath := strings.TrimSuffix(id.PathName, filepath.Ext(id.PathName)) + ".txt"
	doc := g.Fetcher.Fetch(ctx, id.SpecFragment(), cachePath)
	if g.Config.Overviews() {
		mg.Overview = doc.Overview()
	}
	getConstants := doc.GetConstants()
	for _, e := range m.Enums() {
		if _, ok := getConstants[e.Name]; ok {
			mg.GetConstants = append(mg.GetConstants, e.Name)
		}
	}
	return mg
}

// Generate renders and writes both files.
func (mg *ModuleGenerator) Generate() (Result, error) {
	g, id := mg.g, mg.ID
	res := Result{
		Name:         mg.Module.Name,
		RawPath:      id.RawPathName,
		FriendlyPath: id.PathName,
	}

	rawCtx := render.RawContext{
		Prefix:         id.Prefix,
		ConstantModule: id.ConstantModule,
	}
	for _, e := range mg.Module.Enums() {
		rawCtx.Constants = append(rawCtx.Constants, g.Renderer.Enum(e))
	}
	for _, c := range mg.Module.Commands() {
		rawCtx.Declarations = append(rawCtx.Declarations, g.Renderer.Function(c))
	}
	raw, err := render.RenderRaw(rawCtx)
	if err != nil {
		return res, errors.Wrap(err, "render raw module")
	}
	header, err := render.RenderFriendly(render.FriendlyContext{
		Prefix:       id.Prefix,
		Owner:        id.Owner,
		Module:       id.Module,
		CamelModule:  id.CamelModule,
		RawImport:    id.RawImportPath(),
		Overview:     mg.Overview,
		SpecURL:      mg.SpecURL,
		GetConstants: mg.GetConstants,
	})
	if err != nil {
		return res, errors.Wrap(err, "render friendly module")
	}

	if err := g.Writer.EnsurePackageDir(g.Config.RawOutputRoot, filepath.Dir(id.RawPathName)); err != nil {
		return res, err
	}
	if err := g.Writer.EnsurePackageDir(g.Config.OutputRoot, filepath.Dir(id.PathName)); err != nil {
		return res, err
	}

	res.RawWritten, err = g.Writer.WriteRaw(id.RawPathName, raw)
	if err != nil {
		return res, err
	}
	res.FriendlyWritten, err = g.Writer.WriteFriendly(id.PathName, header)
	return res, err
}

// moduleLabel names m in errors. Extensions generated for several APIs
// share a name, so the API is appended.
func moduleLabel(m *registry.Module) string {
	if m.API == "" || m.Feature {
		return m.Name
	}
	return m.Name + " (" + m.API + ")"
}

type job struct {
	index  int
	module *registry.Module
	id     *naming.Identity
}

// Run loads the registry and generates every enabled module.
//
// Without keep-going, the first failure stops the run. With keep-going,
// the remaining modules are still generated and the failures are
// returned together as [*ModuleErrors] alongside the report.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	cfg := g.Config
	log := logger.OrNop(g.Log)
	report := &Report{}

	timeStart := time.Now()
	reg, err := g.Source.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load registry")
	}
	report.TimeLoad = time.Since(timeStart)
	timeStart = time.Now()

	var moduleList *config.ModuleList
	if cfg.ModuleList != "" {
		moduleList, err = config.LoadModuleListFromFile(cfg.ModuleList)
		if err != nil {
			return nil, errors.Wrap(err, "load module list")
		}
	}

	var mu sync.Mutex
	failures := make(map[string]error)
	fail := func(name string, err error) error {
		if !cfg.KeepGoing {
			return errors.Wrapf(err, "module %v", name)
		}
		mu.Lock()
		defer mu.Unlock()
		failures[name] = err
		return nil
	}

	// Derive all identities first so naming errors surface before any
	// file is written.
	var jobs []job
	for _, m := range reg.Modules {
		if moduleList != nil && !moduleList.IsEnabled(m.Name) {
			report.Disabled++
			continue
		}
		id, err := naming.Derive(m.Name, m.API, g.namingOptions())
		if err != nil {
			log.Errorw("unable to derive module identity", logger.FieldModule, m.Name, logger.FieldError, err)
			if err := fail(moduleLabel(m), err); err != nil {
				return nil, err
			}
			continue
		}
		jobs = append(jobs, job{index: len(jobs), module: m, id: id})
	}

	results := make([]*Result, len(jobs))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(cfg.Jobs, 1))
	for _, j := range jobs {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			log.Debugw("generating module", logger.FieldModule, j.module.Name)
			res, err := g.NewModuleGenerator(egCtx, j.module, j.id).Generate()
			if err != nil {
				log.Errorw("module generation failed", logger.FieldModule, j.module.Name, logger.FieldError, err)
				return fail(moduleLabel(j.module), err)
			}
			if res.RawWritten || res.FriendlyWritten {
				log.Infow("generated module", logger.FieldModule, res.Name,
					"raw", res.RawWritten, "friendly", res.FriendlyWritten)
			}
			results[j.index] = &res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	for _, res := range results {
		if res != nil {
			report.Results = append(report.Results, *res)
		}
	}
	report.Failed = len(failures)
	report.TimeGenerate = time.Since(timeStart)

	if moduleList != nil && !g.Writer.DryRun {
		descs := make(map[string]string, len(reg.Modules))
		for _, m := range reg.Modules {
			descs[m.Name] = fmt.Sprintf("%v constants, %v functions", len(m.Enums()), len(m.Commands()))
		}
		if err := moduleList.SaveToFile(cfg.ModuleList, descs); err != nil {
			return report, errors.Wrap(err, "save module list")
		}
	}

	return report, newModuleErrors(failures)
}
