package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docfold/docfold-go"
)

var (
	pdfRanges        string
	pdfOut           string
	pdfExtractDir    string
	pdfQuality       int
	pdfUserPassword  string
	pdfOwnerPassword string
	pdfTitle         string
	pdfAuthor        string
	pdfSubject       string
	pdfImageFormat   string
)

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "PDF post-processing commands",
}

var pdfSplitCmd = &cobra.Command{
	Use:   "split <file>",
	Short: "Extract page ranges into a single PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runPDFSplit,
}

var pdfSplitZipCmd = &cobra.Command{
	Use:   "split-zip <file>",
	Short: "Extract page ranges into one PDF per range",
	Args:  cobra.ExactArgs(1),
	RunE:  runPDFSplitZip,
}

var pdfMergeCmd = &cobra.Command{
	Use:   "merge <file> <file> [file...]",
	Short: "Concatenate PDF documents in order",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runPDFMerge,
}

var pdfCompressCmd = &cobra.Command{
	Use:   "compress <file>",
	Short: "Reduce the size of a PDF document",
	Args:  cobra.ExactArgs(1),
	RunE:  runPDFCompress,
}

var pdfEncryptCmd = &cobra.Command{
	Use:   "encrypt <file>",
	Short: "Password-protect a PDF document",
	Args:  cobra.ExactArgs(1),
	RunE:  runPDFEncrypt,
}

var pdfMetadataCmd = &cobra.Command{
	Use:   "metadata <file>",
	Short: "Apply document metadata to a PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runPDFMetadata,
}

var pdfImageCmd = &cobra.Command{
	Use:   "image <file>",
	Short: "Convert a PDF document into an image",
	Args:  cobra.ExactArgs(1),
	RunE:  runPDFImage,
}

func init() {
	pdfSplitCmd.Flags().StringVar(&pdfRanges, "ranges", "", `Page ranges, e.g. "1-3,5,7-" (required)`)
	pdfSplitCmd.Flags().StringVarP(&pdfOut, "out", "o", "split.pdf", "Output file")
	pdfSplitCmd.MarkFlagRequired("ranges")

	pdfSplitZipCmd.Flags().StringVar(&pdfRanges, "ranges", "", `Page ranges, e.g. "1-3,5,7-" (required)`)
	pdfSplitZipCmd.Flags().StringVarP(&pdfOut, "out", "o", "split.zip", "Output file")
	pdfSplitZipCmd.Flags().StringVar(&pdfExtractDir, "extract-dir", "", "Extract results into this directory instead of writing the zip")
	pdfSplitZipCmd.MarkFlagRequired("ranges")

	pdfMergeCmd.Flags().StringVarP(&pdfOut, "out", "o", "merged.pdf", "Output file")

	pdfCompressCmd.Flags().StringVarP(&pdfOut, "out", "o", "compressed.pdf", "Output file")
	pdfCompressCmd.Flags().IntVar(&pdfQuality, "quality", 0, "Image quality percentage [1,100]")

	pdfEncryptCmd.Flags().StringVarP(&pdfOut, "out", "o", "encrypted.pdf", "Output file")
	pdfEncryptCmd.Flags().StringVar(&pdfUserPassword, "user-password", "", "Password required to open the document")
	pdfEncryptCmd.Flags().StringVar(&pdfOwnerPassword, "owner-password", "", "Password required to change permissions")

	pdfMetadataCmd.Flags().StringVarP(&pdfOut, "out", "o", "updated.pdf", "Output file")
	pdfMetadataCmd.Flags().StringVar(&pdfTitle, "title", "", "Document title")
	pdfMetadataCmd.Flags().StringVar(&pdfAuthor, "author", "", "Document author")
	pdfMetadataCmd.Flags().StringVar(&pdfSubject, "subject", "", "Document subject")

	pdfImageCmd.Flags().StringVar(&pdfImageFormat, "format", "png", "Image format (jpg, jpeg, png, gif, bmp, tif, tiff)")
	pdfImageCmd.Flags().StringVarP(&pdfOut, "out", "o", "", "Output file (default page.<format>)")

	pdfCmd.AddCommand(
		pdfSplitCmd,
		pdfSplitZipCmd,
		pdfMergeCmd,
		pdfCompressCmd,
		pdfEncryptCmd,
		pdfMetadataCmd,
		pdfImageCmd,
	)
	rootCmd.AddCommand(pdfCmd)
}

// parseRanges parses a page range list like "1-3,5,7-". A missing upper
// bound means through the last page.
func parseRanges(s string) ([]docfold.PageRange, error) {
	var ranges []docfold.PageRange
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		from, to, found := strings.Cut(token, "-")
		start, err := strconv.Atoi(strings.TrimSpace(from))
		if err != nil || start < 1 {
			return nil, fmt.Errorf("invalid page range %q", token)
		}

		rng := docfold.PageRange{From: start, To: start}
		if found {
			end := strings.TrimSpace(to)
			if end == "" {
				rng.To = 0
			} else {
				n, err := strconv.Atoi(end)
				if err != nil || n < start {
					return nil, fmt.Errorf("invalid page range %q", token)
				}
				rng.To = n
			}
		}
		ranges = append(ranges, rng)
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("no page ranges given")
	}
	return ranges, nil
}

func runPDFSplit(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	splits, err := parseRanges(pdfRanges)
	if err != nil {
		return err
	}

	doc, err := client.SplitPDF(cmd.Context(), docfold.SplitPDFRequest{
		File:   docfold.FromFile(args[0]),
		Splits: splits,
	})
	if err != nil {
		return fmt.Errorf("split failed: %w", err)
	}
	return writeOutput(pdfOut, doc)
}

func runPDFSplitZip(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	splits, err := parseRanges(pdfRanges)
	if err != nil {
		return err
	}

	archive, err := client.SplitPDFZip(cmd.Context(), docfold.SplitPDFRequest{
		File:   docfold.FromFile(args[0]),
		Splits: splits,
	})
	if err != nil {
		return fmt.Errorf("split failed: %w", err)
	}

	if pdfExtractDir != "" {
		if err := docfold.ExtractZipToDir(archive, pdfExtractDir); err != nil {
			return err
		}
		fmt.Printf("Extracted split results into %s\n", pdfExtractDir)
		return nil
	}
	return writeOutput(pdfOut, archive)
}

func runPDFMerge(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	files := make([]docfold.Input, len(args))
	for i, path := range args {
		files[i] = docfold.FromFile(path)
	}

	doc, err := client.MergePDFs(cmd.Context(), docfold.MergePDFsRequest{Files: files})
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}
	return writeOutput(pdfOut, doc)
}

func runPDFCompress(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	req := docfold.CompressPDFRequest{File: docfold.FromFile(args[0])}
	if pdfQuality > 0 {
		req.Options = &docfold.CompressOptions{Quality: docfold.Int(pdfQuality)}
	}

	doc, err := client.CompressPDF(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("compress failed: %w", err)
	}
	return writeOutput(pdfOut, doc)
}

func runPDFEncrypt(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	doc, err := client.EncryptPDF(cmd.Context(), docfold.EncryptPDFRequest{
		File: docfold.FromFile(args[0]),
		Options: docfold.EncryptOptions{
			UserPassword:  pdfUserPassword,
			OwnerPassword: pdfOwnerPassword,
		},
	})
	if err != nil {
		return fmt.Errorf("encrypt failed: %w", err)
	}
	return writeOutput(pdfOut, doc)
}

func runPDFMetadata(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	meta := docfold.Metadata{}
	if pdfTitle != "" {
		meta.Title = docfold.String(pdfTitle)
	}
	if pdfAuthor != "" {
		meta.Author = docfold.String(pdfAuthor)
	}
	if pdfSubject != "" {
		meta.Subject = docfold.String(pdfSubject)
	}

	doc, err := client.SetPDFMetadata(cmd.Context(), docfold.SetPDFMetadataRequest{
		File:     docfold.FromFile(args[0]),
		Metadata: meta,
	})
	if err != nil {
		return fmt.Errorf("metadata update failed: %w", err)
	}
	return writeOutput(pdfOut, doc)
}

func runPDFImage(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	img, err := client.PDFToImage(cmd.Context(), docfold.PDFToImageRequest{
		File:   docfold.FromFile(args[0]),
		Format: pdfImageFormat,
	})
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	out := pdfOut
	if out == "" {
		out = "page." + pdfImageFormat
	}
	return writeOutput(out, img)
}
