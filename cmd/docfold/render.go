package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docfold/docfold-go"
)

var (
	renderFormat     string
	renderDataJSON   string
	renderDataFile   string
	renderOut        string
	renderBatch      bool
	renderExtractDir string
	renderFile       string
	renderText       string
	renderHeaderFile string
	renderFooterFile string
	renderName       string
)

var renderCmd = &cobra.Command{
	Use:   "render <template-id>",
	Short: "Render a stored template",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

var renderContentCmd = &cobra.Command{
	Use:   "content",
	Short: "Render ad-hoc template content without storing it",
	RunE:  runRenderContent,
}

var renderURLCmd = &cobra.Command{
	Use:   "url <url>",
	Short: "Render the page at a URL to PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runRenderURL,
}

func init() {
	renderCmd.Flags().StringVar(&renderFormat, "format", "pdf", "Output format (pdf, html)")
	renderCmd.Flags().StringVar(&renderDataJSON, "data", "", "Render data as a JSON object (or array with --batch)")
	renderCmd.Flags().StringVar(&renderDataFile, "data-file", "", "File containing render data JSON")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output file (default document.<format>, - for stdout)")
	renderCmd.Flags().BoolVar(&renderBatch, "batch", false, "Render once per entry of a JSON data array")
	renderCmd.Flags().StringVar(&renderExtractDir, "extract-dir", "", "Extract batch results into this directory instead of writing the zip")

	renderContentCmd.Flags().StringVar(&renderFile, "file", "", "Template content file")
	renderContentCmd.Flags().StringVar(&renderText, "text", "", "Literal template content")
	renderContentCmd.Flags().StringVar(&renderFormat, "format", "pdf", "Output format (pdf, html)")
	renderContentCmd.Flags().StringVar(&renderDataJSON, "data", "", "Render data as a JSON object")
	renderContentCmd.Flags().StringVar(&renderDataFile, "data-file", "", "File containing render data JSON")
	renderContentCmd.Flags().StringVar(&renderHeaderFile, "header", "", "Page header content file")
	renderContentCmd.Flags().StringVar(&renderFooterFile, "footer", "", "Page footer content file")
	renderContentCmd.Flags().StringVar(&renderName, "name", "", "Document name used for layout settings")
	renderContentCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output file (default document.<format>, - for stdout)")

	renderURLCmd.Flags().StringVarP(&renderOut, "out", "o", "document.pdf", "Output file (- for stdout)")

	renderCmd.AddCommand(renderContentCmd, renderURLCmd)
	rootCmd.AddCommand(renderCmd)
}

func loadSingleData() (docfold.RenderData, error) {
	if renderDataFile != "" {
		return docfold.LoadRenderData(renderDataFile)
	}
	if renderDataJSON == "" {
		return nil, nil
	}
	var data docfold.RenderData
	if err := json.Unmarshal([]byte(renderDataJSON), &data); err != nil {
		return nil, fmt.Errorf("invalid --data: %w", err)
	}
	return data, nil
}

func loadBatchData() ([]docfold.RenderData, error) {
	if renderDataFile != "" {
		return docfold.LoadBatchRenderData(renderDataFile)
	}
	if renderDataJSON == "" {
		return nil, fmt.Errorf("--batch requires --data or --data-file with a JSON array")
	}
	var data []docfold.RenderData
	if err := json.Unmarshal([]byte(renderDataJSON), &data); err != nil {
		return nil, fmt.Errorf("invalid --data: %w", err)
	}
	return data, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	templateID := args[0]

	if renderBatch {
		data, err := loadBatchData()
		if err != nil {
			return err
		}
		archive, err := client.RenderBatch(cmd.Context(), docfold.RenderBatchRequest{
			TemplateID: templateID,
			Format:     renderFormat,
			Data:       data,
		})
		if err != nil {
			return fmt.Errorf("batch render failed: %w", err)
		}
		if renderExtractDir != "" {
			if err := docfold.ExtractZipToDir(archive, renderExtractDir); err != nil {
				return err
			}
			fmt.Printf("Extracted batch results into %s\n", renderExtractDir)
			return nil
		}
		out := renderOut
		if out == "" {
			out = "documents.zip"
		}
		return writeOutput(out, archive)
	}

	data, err := loadSingleData()
	if err != nil {
		return err
	}
	doc, err := client.Render(cmd.Context(), docfold.RenderRequest{
		TemplateID: templateID,
		Format:     renderFormat,
		Data:       data,
	})
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	out := renderOut
	if out == "" {
		out = "document." + renderFormat
	}
	return writeOutput(out, doc)
}

func runRenderContent(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	var content docfold.Input
	switch {
	case renderFile != "":
		content = docfold.FromFile(renderFile)
	case renderText != "":
		content = docfold.FromText(renderText)
	default:
		return fmt.Errorf("either --file or --text is required")
	}

	data, err := loadSingleData()
	if err != nil {
		return err
	}

	req := docfold.RenderContentRequest{
		Content: content,
		Format:  renderFormat,
		Data:    data,
	}
	if renderHeaderFile != "" {
		req.Header = docfold.FromFile(renderHeaderFile)
	}
	if renderFooterFile != "" {
		req.Footer = docfold.FromFile(renderFooterFile)
	}
	if renderName != "" {
		req.Template = &docfold.Template{Name: renderName}
	}

	doc, err := client.RenderContent(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	out := renderOut
	if out == "" {
		out = "document." + renderFormat
	}
	return writeOutput(out, doc)
}

func runRenderURL(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	doc, err := client.RenderURL(cmd.Context(), docfold.RenderURLRequest{URL: args[0]})
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return writeOutput(renderOut, doc)
}
