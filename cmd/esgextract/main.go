// Command esgextract prints the ESG metadata recovered from documents on disk.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/user/crm-service/internal/adapter/textextract"
	"github.com/user/crm-service/internal/entity"
	"github.com/user/crm-service/internal/extractor"
	"github.com/user/crm-service/internal/repository"
	"github.com/user/crm-service/pkg/logger"
)

// record is one output line.
type record struct {
	File string `json:"file"`
	entity.ReportMetadata
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		plainText bool
		logLevel  string
	)

	cmd := &cobra.Command{
		Use:   "esgextract <file>...",
		Short: "Extract ESG report metadata from documents",
		Long: `Reads each file, recovers its text layer and prints one JSON object per
file with the company, reporting year, ESG score, metric categories and summary
that could be found. Files whose text cannot be recovered are reported on stderr.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(logLevel, "console")
			if err != nil {
				return err
			}
			defer log.Sync()

			var text repository.TextExtractor = textextract.New(log)
			if plainText {
				text = plainTextReader{}
			}
			return run(cmd.Context(), text, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().BoolVar(&plainText, "text", false, "treat every input as plain UTF-8 text")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	return cmd
}

// run writes one record per readable file. It keeps going past bad files and
// returns an error at the end if any failed.
func run(ctx context.Context, text repository.TextExtractor, files []string, out, errOut io.Writer) error {
	enc := json.NewEncoder(out)
	failed := 0
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(errOut, "%s: %v\n", path, err)
			failed++
			continue
		}
		content, err := text.Extract(ctx, data, filepath.Base(path))
		if err == nil && strings.TrimSpace(content) == "" {
			err = errors.New("no extractable text")
		}
		if err != nil {
			fmt.Fprintf(errOut, "%s: %v\n", path, err)
			failed++
			continue
		}
		if err := enc.Encode(record{File: path, ReportMetadata: extractor.Extract(content)}); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

type plainTextReader struct{}

func (plainTextReader) Extract(_ context.Context, data []byte, _ string) (string, error) {
	return string(data), nil
}
