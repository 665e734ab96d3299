package commands

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Pranshu115/tatva/app"
)

func newDocumentsCommand(env *Env, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"docs"},
		Short:   "Manage documents",
	}

	var fields map[string]string
	upload := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			contentType, err := detectContentType(f, path)
			if err != nil {
				return err
			}

			return env.withApp(cmd, flags, func(ctx context.Context, a *app.App) error {
				doc, err := a.Services.Documents.Upload(ctx, filepath.Base(path), contentType, f, fields)
				if err != nil {
					return err
				}
				if flags.output == outputJSON {
					return printJSON(env.Out, doc)
				}
				fmt.Fprintf(env.Out, "Uploaded %s (id %s)\n", doc.Name, doc.ID)
				return nil
			})
		},
	}
	upload.Flags().StringToStringVar(&fields, "field", nil, "extra form field, e.g. --field rfqId=7")

	cmd.AddCommand(upload)
	return cmd
}

// detectContentType uses the file extension, falling back to sniffing the
// first bytes. The file is rewound afterwards.
func detectContentType(f *os.File, path string) (string, error) {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct, nil
	}
	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && n == 0 {
		return "application/octet-stream", nil
	}
	if _, err := f.Seek(0, 0); err != nil {
		return "", fmt.Errorf("rewind %s: %w", path, err)
	}
	return http.DetectContentType(head[:n]), nil
}
