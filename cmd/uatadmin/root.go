package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"uat/pkg/domain"
	"uat/pkg/requestcontext"
)

func newRootCommand(a *app) *cobra.Command {
	var (
		dumpMetrics bool
		operator    string
	)
	root := &cobra.Command{
		Use:          "uatadmin",
		Short:        "Administer applicants, programs and trusted intermediary groups",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			ctx := requestcontext.WithActor(cmd.Context(), operator)
			cmd.SetContext(requestcontext.WithRequestID(ctx, uuid.NewString()))
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if !dumpMetrics {
				return nil
			}
			return writeMetrics(cmd.ErrOrStderr(), a)
		},
	}
	root.PersistentFlags().StringVar(&operator, "operator", os.Getenv("USER"), "operator recorded on audit events")
	root.PersistentFlags().BoolVar(&dumpMetrics, "metrics", false, "print collected metrics to stderr after the command")

	root.AddCommand(
		newApplicantsCommand(a),
		newMergeCommand(a),
		newProgramsCommand(a),
		newGroupCommand(a),
		newCheckAnswersCommand(a),
	)
	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeMetrics(w io.Writer, a *app) error {
	families, err := a.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return nil
}

func applicantFlag(cmd *cobra.Command, name string) (domain.ApplicantID, error) {
	raw, err := cmd.Flags().GetString(name)
	if err != nil {
		return 0, err
	}
	return domain.ParseApplicantID(raw)
}

func groupFlag(cmd *cobra.Command, name string) (domain.GroupID, error) {
	raw, err := cmd.Flags().GetString(name)
	if err != nil {
		return 0, err
	}
	return domain.ParseGroupID(raw)
}
