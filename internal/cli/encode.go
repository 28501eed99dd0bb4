package cli

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/spf13/cobra"

	"github.com/go-jpegli/jpegli"
	"github.com/go-jpegli/jpegli/internal/hashutil"
)

func newEncodeCommand() *cobra.Command {
	var (
		output           string
		quality          int
		distance         float64
		progressiveLevel int
		xyb              bool
		restartInterval  int
		iccPath          string
	)

	cmd := &cobra.Command{
		Use:   "encode <input>",
		Short: "Decode an image (PNG/JPEG/BMP/TIFF) and re-encode it as JPEG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			img, _, err := image.Decode(in)
			if err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}

			opts := jpegli.NewOptions()
			opts.Quality = quality
			opts.Distance = distance
			opts.ProgressiveLevel = progressiveLevel
			opts.XYB = xyb
			opts.RestartInterval = restartInterval
			if iccPath != "" {
				data, err := os.ReadFile(iccPath)
				if err != nil {
					return err
				}
				opts.ICCProfile = data
			}

			outPath := output
			if outPath == "" {
				raw, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				outPath = hashutil.ContentHash(raw, 16) + ".jpg"
			}

			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := jpegli.Encode(f, img, opts); err != nil {
				return err
			}
			slog.Info("encoded", "input", args[0], "output", filepath.Clean(outPath))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: content hash + .jpg)")
	cmd.Flags().IntVarP(&quality, "quality", "q", jpegli.DefaultQuality, "legacy 1-100 quality (ignored if --distance is set)")
	cmd.Flags().Float64Var(&distance, "distance", 0, "perceptual distance; overrides --quality when > 0")
	cmd.Flags().IntVar(&progressiveLevel, "progressive-level", 2, "0=sequential, 1=simple, 2=full progression")
	cmd.Flags().BoolVar(&xyb, "xyb", false, "use the perceptual XYB color pipeline (RGB input only)")
	cmd.Flags().IntVar(&restartInterval, "restart-interval", 0, "MCUs between restart markers (0 disables)")
	cmd.Flags().StringVar(&iccPath, "icc-profile", "", "embed this ICC profile (ignored with --xyb)")
	return cmd
}
