package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lexidoc/complaint-extract/internal/config"
	"github.com/lexidoc/complaint-extract/internal/service"
)

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	extractSvc *service.Service
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, extractSvc *service.Service) (*Server, error) {
	if extractSvc == nil {
		return nil, fmt.Errorf("extractSvc cannot be nil")
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:     cfg,
		extractSvc: extractSvc,
		mcpServer:  mcpServer,
	}

	// Register tools
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	extractFileTool := mcp.NewTool(
		"complaint_extract_file",
		mcp.WithDescription("Extract structured case records (defendant, ID number, request, facts) from a complaint filing (PDF or DOCX)"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the complaint document"),
		),
	)
	s.mcpServer.AddTool(extractFileTool, s.handleExtractFile)

	extractDirectoryTool := mcp.NewTool(
		"complaint_extract_directory",
		mcp.WithDescription("Extract case records from every complaint document in a directory"),
		mcp.WithString("directory",
			mcp.Description("Directory path to process (uses default if empty)"),
		),
	)
	s.mcpServer.AddTool(extractDirectoryTool, s.handleExtractDirectory)

	infoTool := mcp.NewTool(
		"extractor_info",
		mcp.WithDescription("Get extractor information, available tools, and usage guidance"),
	)
	s.mcpServer.AddTool(infoTool, s.handleExtractorInfo)
}

// Handler functions
func (s *Server) handleExtractFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.extractSvc.ExtractFile(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatFileResult(result)), nil
}

func (s *Server) handleExtractDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := ""
	if dir, ok := args["directory"].(string); ok {
		directory = dir
	}

	result, err := s.extractSvc.ExtractDirectory(ctx, directory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatDirectoryResult(result)), nil
}

func (s *Server) handleExtractorInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.formatExtractorInfo()), nil
}

// Formatting methods
func (s *Server) formatFileResult(result *service.FileResult) string {
	text := fmt.Sprintf("Extracted %d case record(s) from: %s\n", result.Count, result.Path)
	if result.Pages > 0 {
		text += fmt.Sprintf("Pages: %d\n", result.Pages)
	}
	if result.UsedOCR {
		text += "Source: OCR fallback was used (scanned document or merged fields)\n"
	}
	if result.Count == 0 {
		text += "\nNo recognizable complaint sections were found. " +
			"The document may not be a civil complaint, or its text layer may be unusable.\n"
		return text
	}

	payload, err := json.MarshalIndent(result.Records, "", "  ")
	if err != nil {
		return text + fmt.Sprintf("\nfailed to encode records: %v\n", err)
	}
	text += "\nRecords:\n" + string(payload) + "\n"
	return text
}

func (s *Server) formatDirectoryResult(result *service.DirectoryResult) string {
	text := fmt.Sprintf("Processed directory: %s\n", result.Directory)
	text += fmt.Sprintf("Documents: %d, extracted records: %d, failed: %d\n",
		len(result.Files), result.TotalRecords, result.Failed)

	for i, file := range result.Files {
		text += fmt.Sprintf("\n%d. %s\n", i+1, file.Path)
		if file.Error != "" {
			text += fmt.Sprintf("   Error: %s\n", file.Error)
			continue
		}
		text += fmt.Sprintf("   Records: %d\n", file.Count)
		for _, record := range file.Records {
			text += fmt.Sprintf("   - 被告: %s", record.Defendant)
			if record.IDNumber != "" {
				text += fmt.Sprintf(" (身份证号码: %s)", record.IDNumber)
			}
			text += "\n"
		}
	}
	return text
}

func (s *Server) formatExtractorInfo() string {
	text := fmt.Sprintf("%s v%s - Complaint Extraction Server\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("Default Directory: %s\n", s.extractSvc.ConfiguredDirectory())
	text += fmt.Sprintf("Max File Size: %d MB\n", s.config.MaxFileSize/(1024*1024))
	text += fmt.Sprintf("OCR Fallback: %t\n\n", s.extractSvc.OCREnabled())

	text += `Available Tools:

• complaint_extract_file
  Description: Extract structured case records from one complaint filing
  Usage: Pass the full path of a .pdf or .docx civil complaint. Returns the
  records as JSON with fields defendant, idNumber, request, factsReason.
  Parameters: path (required): Full absolute path to the document

• complaint_extract_directory
  Description: Batch extraction over a directory of filings
  Usage: Processes every .pdf and .docx file in the directory. Per-file
  failures are reported inline and do not abort the batch.
  Parameters: directory (optional): Directory path (uses default if empty)

• extractor_info
  Description: This tool. Server configuration and usage guidance.

Usage Guide:

1. Use 'extractor_info' to confirm the configured document directory.
2. Use 'complaint_extract_file' for a single filing. Scanned filings
   need the OCR fallback enabled on the server (--ocr).
3. Use 'complaint_extract_directory' for batch runs.

IMPORTANT NOTES:
- Always use absolute file paths inside the configured directory
- A document can contain several complaints; each yields its own record
- Fields that cannot be found are returned empty, never guessed`
	return text
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting complaint extraction MCP server in stdio mode")
		log.Printf("Document directory: %s", s.extractSvc.ConfiguredDirectory())
	}

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	// mark3labs/mcp-go handles the transport differently
	log.Printf("Server mode not yet implemented with mark3labs/mcp-go")
	log.Printf("Falling back to stdio mode")
	return s.runStdioMode(ctx)
}
