package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/portal/portal/internal/config"
	"github.com/portal/portal/internal/domain/treatment"
	"github.com/portal/portal/internal/platform/db"
)

// membershipRecord is one line of a membership CSV: a sample that falls in
// the given timing group of a treatment.
type membershipRecord struct {
	Treatment string `csv:"treatment"`
	Time      string `csv:"time"`
	SampleID  string `csv:"sample_id"`
	StudyID   string `csv:"study_id"`
	PatientID string `csv:"patient_id,omitempty"`
}

type filterOptions struct {
	samplesPath    string
	filterPath     string
	membershipPath string
}

func samplesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "samples",
		Short: "Work with sample lists",
	}

	var opts filterOptions
	filterCmd := &cobra.Command{
		Use:   "filter",
		Short: "Keep the samples that satisfy a treatment filter",
		Long: `Reads a CSV of samples (sample_id,study_id), applies the treatment filter
from a YAML file and writes the surviving samples as CSV to stdout.

Treatment membership comes from --membership (treatment,time,sample_id,study_id)
when given, otherwise from the database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSamplesFilter(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	filterCmd.Flags().StringVar(&opts.samplesPath, "samples", "-", "Sample CSV file, - for stdin")
	filterCmd.Flags().StringVar(&opts.filterPath, "filter", "", "Treatment filter YAML file")
	filterCmd.Flags().StringVar(&opts.membershipPath, "membership", "", "Treatment membership CSV file")
	_ = filterCmd.MarkFlagRequired("filter")

	cmd.AddCommand(filterCmd)
	return cmd
}

func runSamplesFilter(ctx context.Context, opts filterOptions, stdin io.Reader, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger("development", zerolog.InfoLevel, stderr)

	expr, err := readFilterFile(opts.filterPath)
	if err != nil {
		return err
	}

	in := stdin
	if opts.samplesPath != "" && opts.samplesPath != "-" {
		f, err := os.Open(opts.samplesPath)
		if err != nil {
			return fmt.Errorf("open samples: %w", err)
		}
		defer f.Close()
		in = f
	}
	samples, err := readSamples(in)
	if err != nil {
		return err
	}

	var source treatment.MembershipSource
	if opts.membershipPath != "" {
		f, err := os.Open(opts.membershipPath)
		if err != nil {
			return fmt.Errorf("open membership: %w", err)
		}
		defer f.Close()
		rows, err := readMembership(f)
		if err != nil {
			return err
		}
		source = treatment.NewRowSource(rows)
	} else {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBSchema, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return err
		}
		defer pool.Close()
		source = treatment.NewService(treatment.NewTreatmentRepoPG(pool))
	}

	kept, err := treatment.NewSampleFilter(source, logger).Filter(ctx, samples, expr)
	if err != nil {
		return err
	}
	logger.Info().Int("candidates", len(samples)).Int("kept", len(kept)).Msg("samples filtered")
	return writeSamples(stdout, kept)
}

func readFilterFile(path string) (treatment.AndedGroups, error) {
	f, err := os.Open(path)
	if err != nil {
		return treatment.AndedGroups{}, fmt.Errorf("open filter: %w", err)
	}
	defer f.Close()
	return readFilter(f)
}

// readFilter decodes a YAML treatment filter. An empty document is the empty
// expression.
func readFilter(r io.Reader) (treatment.AndedGroups, error) {
	var expr treatment.AndedGroups
	if err := yaml.NewDecoder(r).Decode(&expr); err != nil && !errors.Is(err, io.EOF) {
		return treatment.AndedGroups{}, fmt.Errorf("decode filter: %w", err)
	}
	if err := expr.Validate(); err != nil {
		return treatment.AndedGroups{}, fmt.Errorf("invalid filter: %w", err)
	}
	return expr, nil
}

func readSamples(r io.Reader) ([]treatment.SampleKey, error) {
	samples := []treatment.SampleKey{}
	if err := gocsv.Unmarshal(r, &samples); err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}
	return samples, nil
}

func writeSamples(w io.Writer, samples []treatment.SampleKey) error {
	if err := gocsv.Marshal(&samples, w); err != nil {
		return fmt.Errorf("write samples: %w", err)
	}
	return nil
}

// readMembership groups membership records into one row per treatment and
// timing, in first-seen order.
func readMembership(r io.Reader) ([]*treatment.SampleTreatmentRow, error) {
	var records []membershipRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("read membership: %w", err)
	}
	return membershipRows(records)
}

func membershipRows(records []membershipRecord) ([]*treatment.SampleTreatmentRow, error) {
	type groupKey struct {
		treatment string
		time      treatment.TemporalRelation
	}
	byGroup := make(map[groupKey]*treatment.SampleTreatmentRow)
	rows := []*treatment.SampleTreatmentRow{}
	for i, rec := range records {
		tr, err := treatment.ParseTemporalRelation(rec.Time)
		if err != nil {
			return nil, fmt.Errorf("membership line %d: %w", i+2, err)
		}
		if rec.Treatment == "" || rec.SampleID == "" {
			return nil, fmt.Errorf("membership line %d: treatment and sample_id are required", i+2)
		}
		k := groupKey{treatment: rec.Treatment, time: tr}
		row, ok := byGroup[k]
		if !ok {
			row = &treatment.SampleTreatmentRow{Treatment: rec.Treatment, Time: tr}
			byGroup[k] = row
			rows = append(rows, row)
		}
		row.Samples = append(row.Samples, treatment.ClinicalEventSample{
			PatientID: rec.PatientID,
			SampleID:  rec.SampleID,
			StudyID:   rec.StudyID,
		})
		row.Count = len(row.Samples)
	}
	return rows, nil
}
