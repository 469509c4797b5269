package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/docfold/docfold-go"
)

var (
	templateName        string
	templateFormat      string
	templateDescription string
	templateFile        string
	templateHeaderFile  string
	templateFooterFile  string
	templateOut         string
	resourceName        string
	resourceURI         string
	resourceFile        string
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Template management commands",
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all templates",
	RunE:  runTemplateList,
}

var templateShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show template details",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateShow,
}

var templateCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new template",
	RunE:  runTemplateCreate,
}

var templateDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateDelete,
}

var templatePullCmd = &cobra.Command{
	Use:   "pull <id>",
	Short: "Download a template's main content file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplatePull,
}

var templateCSSCmd = &cobra.Command{
	Use:   "css",
	Short: "Template stylesheet commands",
}

var templateCSSAddCmd = &cobra.Command{
	Use:   "add <template-id>",
	Short: "Attach a stylesheet to a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateCSSAdd,
}

var templateCSSDeleteCmd = &cobra.Command{
	Use:   "delete <style-id>",
	Short: "Delete a stylesheet resource",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateCSSDelete,
}

var templateCSSPullCmd = &cobra.Command{
	Use:   "pull <style-id>",
	Short: "Download a stylesheet resource's file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateCSSPull,
}

var templateImgCmd = &cobra.Command{
	Use:   "img",
	Short: "Template image commands",
}

var templateImgAddCmd = &cobra.Command{
	Use:   "add <template-id>",
	Short: "Attach an image to a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateImgAdd,
}

var templateImgDeleteCmd = &cobra.Command{
	Use:   "delete <image-id>",
	Short: "Delete an image resource",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateImgDelete,
}

var templateImgPullCmd = &cobra.Command{
	Use:   "pull <image-id>",
	Short: "Download an image resource's file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateImgPull,
}

func init() {
	templateCreateCmd.Flags().StringVar(&templateName, "name", "", "Template name (required)")
	templateCreateCmd.Flags().StringVar(&templateFile, "file", "", "Main template file (required)")
	templateCreateCmd.Flags().StringVar(&templateFormat, "format", "", "Source format (default html)")
	templateCreateCmd.Flags().StringVar(&templateDescription, "description", "", "Template description")
	templateCreateCmd.Flags().StringVar(&templateHeaderFile, "header", "", "Page header file")
	templateCreateCmd.Flags().StringVar(&templateFooterFile, "footer", "", "Page footer file")
	templateCreateCmd.MarkFlagRequired("name")
	templateCreateCmd.MarkFlagRequired("file")

	templatePullCmd.Flags().StringVarP(&templateOut, "out", "o", "-", "Output file (- for stdout)")

	templateCSSAddCmd.Flags().StringVar(&resourceFile, "file", "", "Stylesheet file (required)")
	templateCSSAddCmd.Flags().StringVar(&resourceName, "name", "", "Resource name")
	templateCSSAddCmd.MarkFlagRequired("file")
	templateCSSPullCmd.Flags().StringVarP(&templateOut, "out", "o", "-", "Output file (- for stdout)")

	templateImgAddCmd.Flags().StringVar(&resourceFile, "file", "", "Image file (required)")
	templateImgAddCmd.Flags().StringVar(&resourceName, "name", "", "Resource name")
	templateImgAddCmd.Flags().StringVar(&resourceURI, "uri", "", "Placeholder URI the template refers to the image by")
	templateImgAddCmd.MarkFlagRequired("file")
	templateImgPullCmd.Flags().StringVarP(&templateOut, "out", "o", "-", "Output file (- for stdout)")

	templateCSSCmd.AddCommand(templateCSSAddCmd, templateCSSDeleteCmd, templateCSSPullCmd)
	templateImgCmd.AddCommand(templateImgAddCmd, templateImgDeleteCmd, templateImgPullCmd)
	templateCmd.AddCommand(
		templateListCmd,
		templateShowCmd,
		templateCreateCmd,
		templateDeleteCmd,
		templatePullCmd,
		templateCSSCmd,
		templateImgCmd,
	)
	rootCmd.AddCommand(templateCmd)
}

func runTemplateList(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	templates, err := client.ListTemplates(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	if len(templates) == 0 {
		fmt.Println("No templates found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tFORMAT\tSTYLES\tIMAGES\tUPDATED")
	for _, tmpl := range templates {
		updated := ""
		if tmpl.Timestamp != nil {
			updated = tmpl.Timestamp.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			tmpl.ID,
			tmpl.Name,
			tmpl.Format,
			len(tmpl.Styles),
			len(tmpl.Images),
			updated,
		)
	}
	w.Flush()

	fmt.Printf("\nTotal: %d templates\n", len(templates))
	return nil
}

func runTemplateShow(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	tmpl, err := client.GetTemplate(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get template: %w", err)
	}

	data, err := json.MarshalIndent(tmpl, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runTemplateCreate(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	req := docfold.CreateTemplateRequest{
		Template: docfold.Template{
			Name:        templateName,
			Format:      templateFormat,
			Description: templateDescription,
		},
		Content: docfold.FromFile(templateFile),
	}
	if templateHeaderFile != "" {
		req.Header = docfold.FromFile(templateHeaderFile)
	}
	if templateFooterFile != "" {
		req.Footer = docfold.FromFile(templateFooterFile)
	}

	tmpl, err := client.CreateTemplate(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}

	fmt.Printf("Created template %s (%s)\n", tmpl.Name, tmpl.ID)
	return nil
}

func runTemplateDelete(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	deleted, err := client.DeleteTemplate(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	if !deleted {
		fmt.Println("Template was not deleted")
		return nil
	}
	fmt.Println("Template deleted")
	return nil
}

func runTemplatePull(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	data, err := client.GetTemplateFile(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch template file: %w", err)
	}
	return writeOutput(templateOut, data)
}

func runTemplateCSSAdd(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	style, err := client.AddStylesheet(cmd.Context(), docfold.AddStylesheetRequest{
		TemplateID: args[0],
		Style:      docfold.StyleFile{Name: resourceName},
		Content:    docfold.FromFile(resourceFile),
	})
	if err != nil {
		return fmt.Errorf("failed to add stylesheet: %w", err)
	}
	fmt.Printf("Added stylesheet %s\n", style.ID)
	return nil
}

func runTemplateCSSDelete(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	deleted, err := client.DeleteStylesheet(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to delete stylesheet: %w", err)
	}
	if !deleted {
		fmt.Println("Stylesheet was not deleted")
		return nil
	}
	fmt.Println("Stylesheet deleted")
	return nil
}

func runTemplateCSSPull(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	data, err := client.GetStylesheetFile(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch stylesheet file: %w", err)
	}
	return writeOutput(templateOut, data)
}

func runTemplateImgAdd(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	img, err := client.AddImage(cmd.Context(), docfold.AddImageRequest{
		TemplateID: args[0],
		Image:      docfold.ImageFile{Name: resourceName, URI: resourceURI},
		Content:    docfold.FromFile(resourceFile),
	})
	if err != nil {
		return fmt.Errorf("failed to add image: %w", err)
	}
	fmt.Printf("Added image %s\n", img.ID)
	return nil
}

func runTemplateImgDelete(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	deleted, err := client.DeleteImage(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	if !deleted {
		fmt.Println("Image was not deleted")
		return nil
	}
	fmt.Println("Image deleted")
	return nil
}

func runTemplateImgPull(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	data, err := client.GetImageFile(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch image file: %w", err)
	}
	return writeOutput(templateOut, data)
}
