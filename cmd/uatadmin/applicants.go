package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"uat/internal/user/models"
	"uat/pkg/domain"
)

type applicantView struct {
	ID        domain.ApplicantID `json:"id"`
	AccountID domain.AccountID   `json:"account_id,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	Data      json.RawMessage    `json:"data,omitempty"`
}

func newApplicantView(a *models.Applicant, withData bool) (applicantView, error) {
	v := applicantView{ID: a.ID, AccountID: a.AccountID, CreatedAt: a.CreatedAt}
	if withData {
		raw, err := a.SerializedData()
		if err != nil {
			return v, fmt.Errorf("serialize applicant %s: %w", a.ID, err)
		}
		v.Data = raw
	}
	return v, nil
}

func newApplicantsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "applicants",
		Short: "List and inspect applicants",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every applicant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			applicants, err := a.users.ListApplicants(cmd.Context()).Await(cmd.Context())
			if err != nil {
				return err
			}
			views := make([]applicantView, 0, len(applicants))
			for _, applicant := range applicants {
				v, err := newApplicantView(applicant, false)
				if err != nil {
					return err
				}
				views = append(views, v)
			}
			return writeJSON(cmd.OutOrStdout(), views)
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show one applicant and its answers, by id or by account email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			email, _ := cmd.Flags().GetString("email")

			var applicant *models.Applicant
			if email != "" {
				found, err := a.users.LookupApplicantByEmail(ctx, email).Await(ctx)
				if err != nil {
					return err
				}
				if found == nil {
					return fmt.Errorf("no applicant for %q", email)
				}
				applicant = found
			} else {
				applicantID, err := applicantFlag(cmd, "id")
				if err != nil {
					return err
				}
				found, err := a.users.LookupApplicant(ctx, applicantID).Await(ctx)
				if err != nil {
					return err
				}
				if found == nil {
					return fmt.Errorf("applicant %s not found", applicantID)
				}
				applicant = found
			}

			v, err := newApplicantView(applicant, true)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), v)
		},
	}
	show.Flags().String("id", "", "applicant id")
	show.Flags().String("email", "", "account email; the newest applicant of the account is shown")
	show.MarkFlagsOneRequired("id", "email")
	show.MarkFlagsMutuallyExclusive("id", "email")

	cmd.AddCommand(list, show, newAnswersCommand(a), newSetAnswerCommand(a), newClearAnswerCommand(a))
	return cmd
}

func newMergeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge two applicants and assign the result to an account",
		Long: "Both applicants are reassigned to the account and saved. The older " +
			"applicant's answers are merged into the newer one, whose answers win " +
			"on conflicts. The merged applicant is printed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			leftID, err := applicantFlag(cmd, "left")
			if err != nil {
				return err
			}
			rightID, err := applicantFlag(cmd, "right")
			if err != nil {
				return err
			}
			email, _ := cmd.Flags().GetString("account")

			account, err := a.users.LookupAccount(ctx, email)
			if err != nil {
				return err
			}
			if account == nil {
				return fmt.Errorf("no account for %q", email)
			}
			left, err := a.requireApplicant(cmd, leftID)
			if err != nil {
				return err
			}
			right, err := a.requireApplicant(cmd, rightID)
			if err != nil {
				return err
			}

			merged, err := a.users.MergeApplicants(ctx, left, right, account).Await(ctx)
			if err != nil {
				return err
			}
			v, err := newApplicantView(merged, true)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), v)
		},
	}
	cmd.Flags().String("left", "", "first applicant id")
	cmd.Flags().String("right", "", "second applicant id")
	cmd.Flags().String("account", "", "email of the account receiving the merged applicant")
	for _, name := range []string{"left", "right", "account"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (a *app) requireApplicant(cmd *cobra.Command, applicantID domain.ApplicantID) (*models.Applicant, error) {
	applicant, err := a.users.LookupApplicantSync(cmd.Context(), applicantID)
	if err != nil {
		return nil, err
	}
	if applicant == nil {
		return nil, fmt.Errorf("applicant %s not found", applicantID)
	}
	return applicant, nil
}

type programView struct {
	ID          domain.ProgramID      `json:"id"`
	AdminName   string                `json:"admin_name"`
	Name        string                `json:"name"`
	Stage       domain.LifecycleStage `json:"stage"`
	QuestionIDs []domain.QuestionID   `json:"question_ids"`
}

func newProgramsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "programs",
		Short: "List the programs an applicant may apply to or has drafts for",
		Long: "Lists every active program followed by every program the applicant " +
			"has a draft application for. A program in both lists appears twice.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			applicantID, err := applicantFlag(cmd, "applicant")
			if err != nil {
				return err
			}
			programs, err := a.users.ProgramsForApplicant(ctx, applicantID).Await(ctx)
			if err != nil {
				return err
			}
			views := make([]programView, 0, len(programs))
			for _, p := range programs {
				views = append(views, programView{
					ID:          p.ID,
					AdminName:   p.AdminName,
					Name:        p.Name(a.cfg.DefaultLocale),
					Stage:       p.Stage,
					QuestionIDs: p.QuestionIDs,
				})
			}
			return writeJSON(cmd.OutOrStdout(), views)
		},
	}
	cmd.Flags().String("applicant", "", "applicant id")
	_ = cmd.MarkFlagRequired("applicant")
	return cmd
}
