package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/osse101/FrameCraft_Go/internal/config"
	"github.com/osse101/FrameCraft_Go/internal/domain"
	"github.com/osse101/FrameCraft_Go/internal/matcatalog"
	"github.com/osse101/FrameCraft_Go/internal/pricing"
	"github.com/osse101/FrameCraft_Go/internal/serialization"
	"github.com/osse101/FrameCraft_Go/internal/validation"
)

// priceResult is printed by the price command.
type priceResult struct {
	Total     string                      `json:"total"`
	Breakdown *pricing.Breakdown          `json:"breakdown,omitempty"`
	Specialty *pricing.SpecialtyBreakdown `json:"specialty,omitempty"`
}

func newPriceCommand() *cobra.Command {
	var file, specialtyFile, catalogDir string
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a configuration against the local catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			schemas := validation.NewSchemaValidator()
			cfg, specialty, err := readConfiguration(schemas, file, specialtyFile)
			if err != nil {
				return err
			}

			catalog, err := pricing.LoadCatalog(catalogDir, schemas)
			if err != nil {
				return codeError(exitInput, "loading catalog: %s", err)
			}
			calc := pricing.NewCalculator(catalog)

			var out priceResult
			if specialty != nil {
				sb, err := calc.SpecialtyQuote(cmd.Context(), pricing.SpecialtyRequestFor(cfg, specialty))
				if err != nil {
					return err
				}
				out.Specialty = sb
				out.Total = pricing.FormatPrice(sb.Total)
			} else {
				b, err := calc.Calculate(cfg)
				if err != nil {
					return err
				}
				out.Breakdown = b
				out.Total = pricing.FormatPrice(b.Total)
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&file, "file", "f", "", "Configuration JSON file, - for stdin")
	f.StringVar(&specialtyFile, "specialty", "", "Specialty configuration JSON file")
	f.StringVar(&catalogDir, "catalog", envOr("CATALOG_DIR", config.ConfigPathPricingCatalog), "Pricing catalog directory")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newSerializeCommand() *cobra.Command {
	var file, specialtyFile string
	cmd := &cobra.Command{
		Use:   "serialize",
		Short: "Write the line-item attributes for a configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, specialty, err := readConfiguration(validation.NewSchemaValidator(), file, specialtyFile)
			if err != nil {
				return err
			}
			attrs, err := serialization.Serialize(cfg, specialty)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), attrs)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Configuration JSON file, - for stdin")
	cmd.Flags().StringVar(&specialtyFile, "specialty", "", "Specialty configuration JSON file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newDeserializeCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "deserialize",
		Short: "Rebuild a configuration from line-item attributes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var attrs []domain.Attribute
			if err := readJSON(file, &attrs); err != nil {
				return err
			}
			res, err := serialization.Deserialize(cmd.Context(), attrs)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Attributes JSON file, - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newVerifyCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Compare stored attributes with their canonical serialization",
		Long:  "Decodes the attributes, re-serializes the result and prints a patch when they differ. Exits 3 on drift.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var attrs []domain.Attribute
			if err := readJSON(file, &attrs); err != nil {
				return err
			}
			drift, err := serialization.Verify(cmd.Context(), attrs)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !drift.HasDrift() {
				fmt.Fprintln(w, "attributes match canonical serialization")
				return nil
			}
			fmt.Fprint(w, drift.Patch)
			return codeError(exitDrift, "attributes drifted from canonical serialization")
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Attributes JSON file, - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newMatsCommand() *cobra.Command {
	var baseURL string
	var width, height float64
	cmd := &cobra.Command{
		Use:   "mats",
		Short: "List the mat palette that fits a design size",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if baseURL == "" {
				return codeError(exitUsage, "--url or MAT_CATALOG_URL is required")
			}
			svc := matcatalog.NewService(matcatalog.NewClient(baseURL), 0)
			palette, err := svc.GetMatsBySize(cmd.Context(), width, height)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), palette)
		},
	}
	f := cmd.Flags()
	f.StringVar(&baseURL, "url", os.Getenv("MAT_CATALOG_URL"), "Mat catalog base URL")
	f.Float64Var(&width, "width", 0, "Design width in inches")
	f.Float64Var(&height, "height", 0, "Design height in inches")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")
	return cmd
}

// readInput returns the bytes of path, or of stdin when path is "-".
func readInput(path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, codeError(exitInput, "reading %s: %s", path, err)
	}
	return data, nil
}

// readJSON decodes path, or stdin when path is "-", into v.
func readJSON(path string, v any) error {
	data, err := readInput(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return codeError(exitInput, "decoding %s: %s", path, err)
	}
	return nil
}

// readConfiguration loads a frame configuration, checked against the
// configuration schema, and an optional specialty file.
func readConfiguration(schemas validation.SchemaValidator, path, specialtyPath string) (domain.FrameConfiguration, *domain.SpecialtyConfig, error) {
	var cfg domain.FrameConfiguration
	data, err := readInput(path)
	if err != nil {
		return cfg, nil, err
	}
	if err := schemas.ValidateBytes(data, validation.SchemaConfiguration); err != nil {
		return cfg, nil, codeError(exitInput, "%s: %s", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, nil, codeError(exitInput, "decoding %s: %s", path, err)
	}

	if specialtyPath == "" {
		return cfg, nil, nil
	}
	specialty := &domain.SpecialtyConfig{}
	if err := readJSON(specialtyPath, specialty); err != nil {
		return cfg, nil, err
	}
	return cfg, specialty, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
