package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"uat/internal/applicant/question"
	"uat/internal/question/catalog"
	"uat/pkg/domain"
)

type answerReport struct {
	ApplicantID domain.ApplicantID  `json:"applicant_id"`
	Questions   []questionReport    `json:"questions"`
	Missing     []domain.QuestionID `json:"missing_questions,omitempty"`
	Invalid     int                 `json:"invalid"`
}

type questionReport struct {
	ProgramID      domain.ProgramID  `json:"program_id"`
	QuestionID     domain.QuestionID `json:"question_id"`
	Name           string            `json:"name"`
	Type           string            `json:"type"`
	Text           string            `json:"text"`
	Answered       bool              `json:"answered"`
	QuestionErrors []string          `json:"question_errors,omitempty"`
	AnswerErrors   []string          `json:"answer_errors,omitempty"`
}

func newCheckAnswersCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-answers",
		Short: "Validate an applicant's answers against the questions of their programs",
		Long: "Loads question definitions from a catalog file and checks the " +
			"applicant's answers to every question of the programs returned by " +
			"the programs command. Programs listed twice are checked once.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			applicantID, err := applicantFlag(cmd, "applicant")
			if err != nil {
				return err
			}
			catalogFile, _ := cmd.Flags().GetString("catalog")
			c, err := catalog.LoadFile(catalogFile)
			if err != nil {
				return err
			}
			var only domain.ProgramID
			if raw, _ := cmd.Flags().GetString("program"); raw != "" {
				if only, err = domain.ParseProgramID(raw); err != nil {
					return err
				}
			}
			report, err := a.checkAnswers(cmd, c, applicantID, only)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().String("applicant", "", "applicant id")
	cmd.Flags().String("catalog", "", "question catalog YAML file")
	cmd.Flags().String("program", "", "check only this program")
	_ = cmd.MarkFlagRequired("applicant")
	_ = cmd.MarkFlagRequired("catalog")
	return cmd
}

func (a *app) checkAnswers(cmd *cobra.Command, c *catalog.Catalog, applicantID domain.ApplicantID, only domain.ProgramID) (*answerReport, error) {
	ctx := cmd.Context()
	applicant, err := a.requireApplicant(cmd, applicantID)
	if err != nil {
		return nil, err
	}
	answers, err := applicant.ApplicantData()
	if err != nil {
		return nil, fmt.Errorf("decode applicant %s: %w", applicantID, err)
	}
	programs, err := a.users.ProgramsForApplicant(ctx, applicantID).Await(ctx)
	if err != nil {
		return nil, err
	}

	report := &answerReport{ApplicantID: applicantID, Questions: []questionReport{}}
	checked := make(map[domain.ProgramID]bool, len(programs))
	for _, program := range programs {
		if checked[program.ID] || (only != 0 && program.ID != only) {
			continue
		}
		checked[program.ID] = true

		definitions, missing := c.ForProgram(program.QuestionIDs)
		report.Missing = append(report.Missing, missing...)
		for _, def := range definitions {
			q := question.New(def, answers)
			presenter := q.ErrorsPresenter()
			hasErrors := q.HasErrors()
			a.metrics.IncrementQuestionValidation(def.Type().String(), hasErrors)
			if hasErrors {
				report.Invalid++
			}
			report.Questions = append(report.Questions, questionReport{
				ProgramID:      program.ID,
				QuestionID:     def.ID(),
				Name:           def.Name(),
				Type:           def.Type().String(),
				Text:           q.QuestionText(),
				Answered:       presenter.IsAnswered(),
				QuestionErrors: errorKeys(presenter.QuestionErrors()),
				AnswerErrors:   errorKeys(presenter.TypeSpecificErrors()),
			})
		}
	}
	if only != 0 && !checked[only] {
		return nil, fmt.Errorf("program %s is not available to applicant %s", only, applicantID)
	}
	return report, nil
}

func errorKeys(errs []question.ValidationError) []string {
	if len(errs) == 0 {
		return nil
	}
	keys := make([]string, len(errs))
	for i, e := range errs {
		keys[i] = e.Key
	}
	return keys
}
