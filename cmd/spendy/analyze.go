package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/spendy-app/spendy/internal/cli"
	"github.com/spendy-app/spendy/internal/ingest"
	"github.com/spendy-app/spendy/internal/model"
	"github.com/spendy-app/spendy/internal/persona"
	"github.com/spendy-app/spendy/internal/service"
	"github.com/spendy-app/spendy/internal/session"
	"github.com/spendy-app/spendy/internal/storage"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze expense records and reveal your spending persona",
		Long: `Ingest expense records into an analysis session, classify each row into a
spending category, and compute your dominant spending persona. Use --finish
to save the result as a snapshot in your history.`,
	}

	cmd.PersistentFlags().Bool("finish", false, "save the analysis as a snapshot and reset the session")
	cmd.PersistentFlags().StringSlice("exclude", nil, "categories to exclude from the displayed aggregate")
	cmd.PersistentFlags().Bool("icons", false, "generate persona icons for the result")

	cmd.AddCommand(analyzeFileCmd())
	cmd.AddCommand(analyzeTextCmd())
	cmd.AddCommand(analyzeImagesCmd())

	return cmd
}

func analyzeFileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "file [files...]",
		Short: "Analyze CSV or TXT expense exports",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			sess := session.New(store)

			bar := progressbar.Default(int64(len(args)), "파일 처리 중")
			for _, path := range args {
				rows, err := parseRowFile(ctx, path)
				if err != nil {
					return err
				}
				sess.Ingest(rows)
				_ = bar.Add(1)
			}

			return showResult(cmd, ctx, store, sess)
		},
	}
}

func analyzeTextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "text",
		Short: "Analyze free-text expense rows from stdin",
		Long: `Read expense rows from stdin, one per line, with the amount as the last
whitespace-separated token:

  스타벅스 아메리카노 4500
  월세 500000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			input, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}

			rows := ingest.ParseText(string(input))
			if len(rows) == 0 {
				fmt.Println(cli.WarningStyle.Render("인식된 지출 내역이 없습니다."))
				return nil
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			sess := session.New(store)
			sess.Ingest(rows)

			return showResult(cmd, ctx, store, sess)
		},
	}
}

func analyzeImagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "images [files...]",
		Short: "Analyze receipt or statement images",
		Long: `Send document images through the image classification service one at a
time. If any image is rejected as not a financial document the whole batch
is discarded; pass --force to push on with the rusher persona instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			force, _ := cmd.Flags().GetBool("force")

			analyzer, err := initGemini()
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			images, err := loadImages(args)
			if err != nil {
				return err
			}

			sess := session.New(store)
			bar := progressbar.Default(int64(len(images)), "이미지 분석 중")
			result, err := sess.IngestImages(ctx, &progressAnalyzer{inner: analyzer, bar: bar}, images)
			if err != nil {
				return err
			}
			_ = bar.Finish()

			if !result.Valid {
				fmt.Println(cli.WarningStyle.Render("금융 문서가 아닌 이미지가 포함되어 배치 전체를 버렸습니다."))
				if !force {
					fmt.Println(cli.SubtleStyle.Render("그래도 진행하려면 --force 를 사용하세요."))
					return nil
				}
				sess.ForcePersona(model.PersonaRusher)
			} else {
				fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("%d건의 지출을 추출했습니다.", result.Count)))
			}

			return showResult(cmd, ctx, store, sess)
		},
	}

	cmd.Flags().Bool("force", false, "continue with the rusher persona when an image is rejected")
	return cmd
}

// showResult renders the session's aggregate, honoring --exclude, and
// saves a snapshot when --finish is set.
func showResult(cmd *cobra.Command, ctx context.Context, store *storage.SQLiteStorage, sess *session.Session) error {
	excludeLabels, _ := cmd.Flags().GetStringSlice("exclude")
	finish, _ := cmd.Flags().GetBool("finish")
	wantIcons, _ := cmd.Flags().GetBool("icons")

	exclude := make([]model.Category, 0, len(excludeLabels))
	for _, label := range excludeLabels {
		exclude = append(exclude, model.ParseCategory(label))
	}

	analysis := sess.Aggregate(exclude...)
	fmt.Println(cli.BoxStyle.Render(cli.RenderAnalysis(analysis)))

	if wantIcons && !analysis.Empty() {
		if err := showIcons(ctx, analysis); err != nil {
			return err
		}
	}

	if !finish {
		return nil
	}

	user, err := requireUser(ctx, store)
	if err != nil {
		return err
	}

	snapshot, err := sess.Finish(ctx, user.ID)
	if err != nil {
		return err
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("분석을 저장했습니다. (id: %s)", snapshot.ID)))
	return nil
}

// showIcons fetches an icon per category label plus the persona. A failed
// label is reported and skipped without affecting the others.
func showIcons(ctx context.Context, analysis model.Analysis) error {
	generator, err := initGemini()
	if err != nil {
		return err
	}

	labels := make([]string, 0, len(analysis.Totals)+1)
	labels = append(labels, analysis.Persona)
	for _, t := range analysis.Totals {
		labels = append(labels, t.Category.String())
	}

	for _, icon := range persona.FetchIcons(ctx, generator, labels) {
		if icon.Failed {
			fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("%s: 아이콘 생성 실패", icon.Label)))
			continue
		}
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%s: %s", icon.Label, truncate(icon.Ref, 60))))
	}
	return nil
}

// parseRowFile parses a single upload by extension: .csv goes through the
// CSV source, everything else is treated as free text.
func parseRowFile(ctx context.Context, path string) ([]model.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ingest.NewCSVReader().Parse(ctx, strings.NewReader(string(data)))
	}
	return ingest.ParseText(string(data)), nil
}

// loadImages reads image files and derives their MIME types.
func loadImages(paths []string) ([]session.Image, error) {
	images := make([]session.Image, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read image %s: %w", path, err)
		}

		images = append(images, session.Image{
			Name:     filepath.Base(path),
			MIMEType: mimeTypeForExt(filepath.Ext(path)),
			Data:     data,
		})
	}
	return images, nil
}

func mimeTypeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}

// progressAnalyzer ticks the progress bar once per analyzed image.
type progressAnalyzer struct {
	inner service.ImageAnalyzer
	bar   *progressbar.ProgressBar
}

func (p *progressAnalyzer) AnalyzeTransactionImage(ctx context.Context, image []byte, mimeType string) (service.ImageAnalysis, error) {
	analysis, err := p.inner.AnalyzeTransactionImage(ctx, image, mimeType)
	_ = p.bar.Add(1)
	return analysis, err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
