package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"tra2kml/controller"
	"tra2kml/services/zones"
	"tra2kml/utils"
)

func main() {
	// ── CLI flags ────────────────────────────────────────────────────
	configPath := flag.String("config", "config/converter.yaml", "path to converter.yaml")
	envPath := flag.String("env", ".env", "optional .env file with TRA_* / LOG_* overrides")
	zone := flag.String("zone", "", fmt.Sprintf("Gauss-Krüger zone, one of %v", zones.IDs()))
	include := flag.String("select", "", `records to select, 1-based ranges such as "1-20,25,30-"`)
	exclude := flag.String("exclude", "", "records to drop from the selection, same syntax as -select")
	outDir := flag.String("out", "", "output directory")
	csvOut := flag.Bool("csv", false, "also write the record table as CSV")
	pdfOut := flag.Bool("pdf", false, "also write a PDF preview sheet")
	batch := flag.Bool("batch", false, "merge all input files into one KML")
	overwrite := flag.Bool("overwrite", false, "replace existing output files")
	strict := flag.Bool("strict", false, "reject truncated files instead of converting what was decoded")
	logFile := flag.String("log", "", "optional log file path (stdout is always included)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] FILE.TRA [FILE.TRA ...]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	// ── Load configs ─────────────────────────────────────────────────
	dotEnvErr := utils.LoadDotEnv(*envPath)
	cfg, cfgErr := utils.LoadConverterConfig(*configPath)
	if cfg == nil {
		cfg = utils.DefaultConverterConfig()
	}

	// Flags override YAML and environment.
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["zone"] {
		cfg.Converter.Zone = *zone
	}
	if set["select"] {
		cfg.Selection.Include = *include
	}
	if set["exclude"] {
		cfg.Selection.Exclude = *exclude
	}
	if set["out"] {
		cfg.Output.Dir = *outDir
	}
	if set["csv"] {
		cfg.Output.CSV.Enabled = *csvOut
	}
	if set["pdf"] {
		cfg.Output.Preview.Enabled = *pdfOut
	}
	if set["overwrite"] {
		cfg.Output.Overwrite = *overwrite
	}
	if set["strict"] {
		cfg.Converter.StrictDecode = *strict
	}
	if set["log"] {
		cfg.Logging.File = *logFile
	}

	// ── Logger ───────────────────────────────────────────────────────
	level, levelErr := utils.ParseLevel(cfg.Logging.Level)
	logger := utils.InitLogger(level, cfg.Logging.File)
	defer logger.Close()

	if levelErr != nil {
		utils.L().Warn("%v, using INFO", levelErr)
	}
	if dotEnvErr != nil {
		utils.L().Warn("%v", dotEnvErr)
	}
	if cfgErr != nil {
		utils.L().Fatal("load converter config: %v", cfgErr)
	}

	utils.L().Info("═══════════════════════════════════════════════════")
	utils.L().Info("  tra2kml  ·  .TRA alignment to KML")
	utils.L().Info("  GOMAXPROCS=%d  ·  PID=%d", runtime.GOMAXPROCS(0), os.Getpid())
	utils.L().Info("═══════════════════════════════════════════════════")

	inputs := flag.Args()
	if len(inputs) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	// ── Context with OS signal cancellation ──────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Pipeline assembly ────────────────────────────────────────────
	//
	//  .TRA files  ──►  ConversionController  ──►  ExportController
	//                   (decode, select,            │      │      │
	//                    assemble, transform)     .kml   .csv   .pdf
	conv, err := controller.NewConversionController(cfg)
	if err != nil {
		utils.L().Fatal("%v", err)
	}
	export, err := controller.NewExportController(cfg.Output)
	if err != nil {
		utils.L().Fatal("init export controller: %v", err)
	}

	if *batch {
		bc := controller.NewBatchController(cfg, conv, export)
		out, err := bc.Run(ctx, inputs)
		utils.L().Info("── stats ─────────────────────────")
		bc.LogStats()
		utils.L().Info("──────────────────────────────────")
		if err != nil {
			utils.L().Fatal("%v", err)
		}
		fmt.Println("\n✓ tra2kml finished. Batch KML at:", out)
		return
	}

	failed := 0
	for i, path := range inputs {
		if ctx.Err() != nil {
			utils.L().Warn("interrupted, %d file(s) not converted", len(inputs)-i)
			break
		}
		c, err := conv.ConvertFile(path)
		if err != nil {
			utils.L().Error("%v", err)
			failed++
			continue
		}
		if _, err := export.Export(c); err != nil {
			utils.L().Error("%v", err)
			failed++
		}
	}

	for _, p := range export.Written() {
		fmt.Println("✓", p)
	}
	if failed > 0 {
		utils.L().Error("%d of %d file(s) failed", failed, len(inputs))
		os.Exit(1)
	}
}
