package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/mskaar/ordrecsv/internal/config"
	"github.com/mskaar/ordrecsv/internal/export"
	"github.com/mskaar/ordrecsv/internal/extract"
	"github.com/mskaar/ordrecsv/internal/mcp"
	"github.com/mskaar/ordrecsv/internal/pdf"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the run mode.
func setupLogging(cfg *config.Config) {
	if cfg.IsStdioMode() {
		// In stdio mode, log output must not interfere with the MCP protocol.
		log.SetOutput(os.Stderr)
		if !cfg.IsDebug() {
			log.SetOutput(os.NewFile(0, os.DevNull))
		}
	} else {
		log.SetFlags(log.LstdFlags)
	}
}

// runCLIMode converts one document and writes the CSV files.
func runCLIMode(cfg *config.Config, pdfService *pdf.Service) error {
	extractor := extract.NewExtractor(pdfService)

	sections, summary, err := extractor.Run(cfg.PDFPath, extract.Options{
		FirstPage:     cfg.FirstPage,
		LastPage:      cfg.LastPage,
		CropTop:       cfg.CropTop,
		LineThreshold: cfg.LineThreshold,
		TrailingPages: cfg.TrailingPages,
	})
	if err != nil {
		return err
	}

	log.Printf("extracted %d sections (%s)", summary.SectionCount, summary)

	writer := export.NewWriter(cfg.OutputDir)
	written, err := writer.WriteSections(sections)
	if err != nil {
		return err
	}

	for _, path := range written {
		log.Printf("section data saved to %s", path)
	}
	log.Printf("combined data saved to %s", writer.CombinedPath())

	return nil
}

// runStdioMode serves the extraction tools over MCP stdio.
func runStdioMode(ctx context.Context, server *mcp.Server) {
	// In stdio mode, the parent process controls our lifecycle.
	if err := server.Run(ctx); err != nil {
		if os.Getenv("DEBUG") != "" {
			log.Printf("Server error: %v", err)
		}
		os.Exit(1)
	}
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() && !cfg.IsStdioMode() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	pdfService := pdf.NewService(cfg.MaxFileSize)

	if cfg.IsStdioMode() {
		server, err := mcp.NewServer(cfg, pdfService)
		if err != nil {
			log.Fatalf("Failed to create MCP server: %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		runStdioMode(ctx, server)
		return
	}

	if err := runCLIMode(cfg, pdfService); err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}
}

// printVersion prints version information.
func printVersion() {
	fmt.Printf("ordrecsv\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
