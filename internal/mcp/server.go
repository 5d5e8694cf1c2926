package mcp

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mskaar/ordrecsv/internal/config"
	"github.com/mskaar/ordrecsv/internal/export"
	"github.com/mskaar/ordrecsv/internal/extract"
	"github.com/mskaar/ordrecsv/internal/pdf"
)

// Server exposes the order extraction pipeline as MCP tools over stdio.
type Server struct {
	config     *config.Config
	pdfService *pdf.Service
	extractor  *extract.Extractor
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(cfg *config.Config, pdfService *pdf.Service) (*Server, error) {
	if pdfService == nil {
		return nil, fmt.Errorf("pdfService cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:     cfg,
		pdfService: pdfService,
		extractor:  extract.NewExtractor(pdfService),
		mcpServer:  mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	orderExtractTool := mcp.NewTool(
		"order_extract_file",
		mcp.WithDescription("Extract equipment tables from an order confirmation PDF and return them as CSV"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
		mcp.WithNumber("first_page",
			mcp.Description("First page to scan, 1-indexed (defaults to the configured first page)"),
		),
		mcp.WithNumber("last_page",
			mcp.Description("Last page to scan (defaults to page count minus the trailing-terms margin)"),
		),
	)
	s.mcpServer.AddTool(orderExtractTool, s.handleOrderExtractFile)

	orderListSectionsTool := mcp.NewTool(
		"order_list_sections",
		mcp.WithDescription("List the job sections of an order confirmation PDF without producing CSV output"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
		mcp.WithNumber("first_page",
			mcp.Description("First page to scan, 1-indexed (defaults to the configured first page)"),
		),
		mcp.WithNumber("last_page",
			mcp.Description("Last page to scan (defaults to page count minus the trailing-terms margin)"),
		),
	)
	s.mcpServer.AddTool(orderListSectionsTool, s.handleOrderListSections)

	pdfValidateFileTool := mcp.NewTool(
		"pdf_validate_file",
		mcp.WithDescription("Validate if a file is a readable PDF"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(pdfValidateFileTool, s.handlePDFValidateFile)

	pdfStatsFileTool := mcp.NewTool(
		"pdf_stats_file",
		mcp.WithDescription("Get page count and size of a PDF file"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(pdfStatsFileTool, s.handlePDFStatsFile)
}

// Handler functions

func (s *Server) handleOrderExtractFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sections, summary, err := s.extractor.Run(path, s.runOptions(request))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	csvText, err := export.CombinedCSV(sections)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Extracted %d sections from %s\n", summary.SectionCount, path)
	responseText += summary.String() + "\n"
	responseText += "\nCombined CSV:\n"
	responseText += csvText

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleOrderListSections(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sections, summary, err := s.extractor.Run(path, s.runOptions(request))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d sections in %s (%s)\n", summary.SectionCount, path, summary)
	for i := range sections {
		sec := &sections[i]
		fmt.Fprintf(&sb, "\n%d. %s\n", i+1, sec.Name)
		if sec.StartDate != "" {
			fmt.Fprintf(&sb, "   Start date: %s\n", sec.StartDate)
		}
		if sec.ReturnDate != "" {
			fmt.Fprintf(&sb, "   Return date: %s\n", sec.ReturnDate)
		}
		if sec.UsageDays != "" {
			fmt.Fprintf(&sb, "   Usage days: %s\n", sec.UsageDays)
		}
		for key, value := range sec.Totals {
			fmt.Fprintf(&sb, "   %s: %s\n", key, value)
		}
		fmt.Fprintf(&sb, "   Tables: %d, rows: %d\n", len(sec.Tables), sec.RowCount())
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handlePDFValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.ValidateFile(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("PDF file %s is valid and readable", result.Path)
	} else {
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handlePDFStatsFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.DocumentInfo(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("PDF file: %s\nPages: %d\nSize: %d bytes", result.Path, result.PageCount, result.Size)
	return mcp.NewToolResultText(responseText), nil
}

// runOptions builds pipeline options from the configured defaults plus any
// per-call page range overrides.
func (s *Server) runOptions(request mcp.CallToolRequest) extract.Options {
	opts := extract.Options{
		FirstPage:     s.config.FirstPage,
		LastPage:      s.config.LastPage,
		CropTop:       s.config.CropTop,
		LineThreshold: s.config.LineThreshold,
		TrailingPages: s.config.TrailingPages,
	}

	args := request.GetArguments()
	if v, ok := args["first_page"].(float64); ok && v >= 1 {
		opts.FirstPage = int(v)
	}
	if v, ok := args["last_page"].(float64); ok && v >= 1 {
		opts.LastPage = int(v)
	}

	return opts
}

// Run starts the MCP server over stdio and blocks until the transport
// closes.
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting ordrecsv MCP server in stdio mode")
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
