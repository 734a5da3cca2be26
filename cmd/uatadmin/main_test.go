package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"golang.org/x/text/language"

	"uat/internal/audit"
	"uat/internal/path"
	"uat/internal/platform/config"
	"uat/internal/platform/logger"
	"uat/internal/user/models"
	"uat/internal/user/service"
	"uat/pkg/domain"
)

type CLISuite struct {
	suite.Suite
	ctx    context.Context
	app    *app
	stderr bytes.Buffer
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	s.ctx = context.Background()
	s.stderr.Reset()
	cfg := config.Config{
		Database:        config.DatabaseConfig{Workers: 2, Queue: 8},
		DefaultLocale:   language.AmericanEnglish,
		ProgramCacheTTL: time.Minute,
	}
	a, err := newApp(s.ctx, cfg, logger.NewWithWriter(io.Discard, slog.LevelError))
	s.Require().NoError(err)
	s.app = a
}

func (s *CLISuite) TearDownTest() {
	s.NoError(s.app.Close())
}

func (s *CLISuite) run(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCommand(s.app)
	cmd.SetOut(&out)
	cmd.SetErr(&s.stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(s.ctx)
	return out.String(), err
}

func (s *CLISuite) insertAccount(email string) *models.Account {
	account := models.NewAccount(email)
	s.Require().NoError(s.app.accounts.Insert(s.ctx, account))
	return account
}

func (s *CLISuite) insertApplicant(created time.Time, fill func(put func(p path.Path, v any))) *models.Applicant {
	applicant := models.NewApplicant(created)
	d, err := applicant.ApplicantData()
	s.Require().NoError(err)
	fill(func(p path.Path, v any) {
		switch v := v.(type) {
		case string:
			d.PutString(p, v)
		case int64:
			d.PutLong(p, v)
		}
	})
	s.Require().NoError(s.app.applicants.Insert(s.ctx, applicant))
	return applicant
}

func (s *CLISuite) decodeApplicant(out string) (*models.Applicant, applicantView) {
	var v applicantView
	s.Require().NoError(json.Unmarshal([]byte(out), &v))
	return models.RestoreApplicant(v.ID, v.AccountID, v.CreatedAt, v.Data), v
}

func (s *CLISuite) TestMergeApplicants() {
	owner := s.insertAccount("owner@example.org")
	older := s.insertApplicant(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), func(put func(path.Path, any)) {
		put(path.Create("applicant.color"), "blue")
		put(path.Create("applicant.size"), int64(3))
	})
	newer := s.insertApplicant(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), func(put func(path.Path, any)) {
		put(path.Create("applicant.color"), "red")
	})

	out, err := s.run("merge",
		"--operator", "ops@example.org",
		"--left", older.ID.String(),
		"--right", newer.ID.String(),
		"--account", "Owner@Example.org",
	)
	s.Require().NoError(err)

	merged, view := s.decodeApplicant(out)
	s.Equal(newer.ID, view.ID)
	s.Equal(owner.ID, view.AccountID)
	d, err := merged.ApplicantData()
	s.Require().NoError(err)
	color, _ := d.ReadString(path.Create("applicant.color"))
	size, _ := d.ReadLong(path.Create("applicant.size"))
	s.Equal("red", color)
	s.Equal(int64(3), size)

	stored, err := s.app.applicants.FindByID(s.ctx, older.ID)
	s.Require().NoError(err)
	s.Equal(owner.ID, stored.AccountID)

	events := s.app.audit.(*audit.InMemory).ByAction(audit.ActionApplicantsMerged)
	s.Require().Len(events, 1)
	s.Equal("ops@example.org", events[0].Actor)
	s.NotEmpty(events[0].RequestID)
	s.Equal(1.0, testutil.ToFloat64(s.app.metrics.ApplicantsMerged))
}

func (s *CLISuite) TestMergeRequiresKnownAccount() {
	a := s.insertApplicant(time.Now(), func(func(path.Path, any)) {})
	b := s.insertApplicant(time.Now(), func(func(path.Path, any)) {})

	_, err := s.run("merge", "--left", a.ID.String(), "--right", b.ID.String(), "--account", "nobody@example.org")
	s.ErrorContains(err, "no account")

	_, err = s.run("merge", "--left", a.ID.String())
	s.ErrorContains(err, "required flag")
}

func (s *CLISuite) TestShowApplicant() {
	owner := s.insertAccount("owner@example.org")
	first := s.insertApplicant(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), func(func(path.Path, any)) {})
	second := s.insertApplicant(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), func(func(path.Path, any)) {})
	for _, a := range []*models.Applicant{first, second} {
		a.SetAccount(owner.ID)
		s.Require().NoError(s.app.applicants.Update(s.ctx, a))
	}

	s.Run("by email returns the newest", func() {
		out, err := s.run("applicants", "show", "--email", "owner@example.org")
		s.Require().NoError(err)
		_, view := s.decodeApplicant(out)
		s.Equal(second.ID, view.ID)
	})

	s.Run("by id", func() {
		out, err := s.run("applicants", "show", "--id", first.ID.String())
		s.Require().NoError(err)
		_, view := s.decodeApplicant(out)
		s.Equal(first.ID, view.ID)
	})

	s.Run("unknown id", func() {
		_, err := s.run("applicants", "show", "--id", "999")
		s.ErrorContains(err, "not found")
	})

	s.Run("list", func() {
		out, err := s.run("applicants", "list")
		s.Require().NoError(err)
		var views []applicantView
		s.Require().NoError(json.Unmarshal([]byte(out), &views))
		s.Len(views, 2)
	})
}

func (s *CLISuite) TestProgramsListsActiveThenDrafts() {
	applicant := s.insertApplicant(time.Now(), func(func(path.Path, any)) {})
	active := &models.ProgramDefinition{AdminName: "snap", Stage: domain.LifecycleStageActive}
	draft := &models.ProgramDefinition{AdminName: "wic", Stage: domain.LifecycleStageDraft}
	s.Require().NoError(s.app.programs.Insert(s.ctx, active))
	s.Require().NoError(s.app.programs.Insert(s.ctx, draft))
	for _, p := range []*models.ProgramDefinition{active, draft} {
		s.Require().NoError(s.app.programs.InsertApplication(s.ctx, &models.Application{
			ApplicantID: applicant.ID,
			ProgramID:   p.ID,
			Stage:       domain.LifecycleStageDraft,
		}))
	}

	out, err := s.run("programs", "--applicant", applicant.ID.String())
	s.Require().NoError(err)
	var views []programView
	s.Require().NoError(json.Unmarshal([]byte(out), &views))
	s.Require().Len(views, 3)
	s.Equal([]domain.ProgramID{active.ID, active.ID, draft.ID}, []domain.ProgramID{views[0].ID, views[1].ID, views[2].ID})
	s.Equal("snap", views[0].Name)
}

func (s *CLISuite) TestGroupLifecycle() {
	out, err := s.run("ti-group", "create", "--name", "Food Bank", "--description", "downtown")
	s.Require().NoError(err)
	var group models.TrustedIntermediaryGroup
	s.Require().NoError(json.Unmarshal([]byte(out), &group))
	s.Equal("Food Bank", group.Name)
	groupID := group.ID.String()

	out, err = s.run("ti-group", "add-member", "--id", groupID, "--email", "helper@example.org")
	s.Require().NoError(err)
	var member models.Account
	s.Require().NoError(json.Unmarshal([]byte(out), &member))
	s.Equal(group.ID, member.MemberOfGroupID)

	out, err = s.run("ti-group", "members", "--id", groupID)
	s.Require().NoError(err)
	var members []models.Account
	s.Require().NoError(json.Unmarshal([]byte(out), &members))
	s.Len(members, 1)

	_, err = s.run("ti-group", "remove-member", "--id", groupID, "--account", member.ID.String())
	s.Require().NoError(err)
	_, err = s.run("ti-group", "remove-member", "--id", groupID, "--account", member.ID.String())
	s.ErrorIs(err, service.ErrNoSuchMember)

	_, err = s.run("ti-group", "delete", "--id", groupID)
	s.Require().NoError(err)
	_, err = s.run("ti-group", "delete", "--id", groupID)
	s.ErrorIs(err, service.ErrNoSuchGroup)

	out, err = s.run("ti-group", "list")
	s.Require().NoError(err)
	s.JSONEq("[]", out)
}

func (s *CLISuite) TestEditAnswers() {
	applicant := s.insertApplicant(time.Now(), func(put func(path.Path, any)) {
		put(path.Create("applicant.color"), "blue")
	})
	id := applicant.ID.String()

	edits := [][]string{
		{"set-answer", "--id", id, "--path", "applicant.veteran", "--type", "bool", "--value", "true"},
		{"set-answer", "--id", id, "--path", "applicant.size", "--type", "long", "--value", "4"},
		{"set-answer", "--id", id, "--path", "applicant.birthday", "--type", "date", "--value", "1990-05-01"},
		{"set-answer", "--id", id, "--path", "applicant.pets.selection", "--type", "long-list", "--value", "1, 3"},
	}
	for _, args := range edits {
		_, err := s.run(append([]string{"applicants"}, args...)...)
		s.Require().NoError(err, args)
	}

	out, err := s.run("applicants", "answers", "--id", id)
	s.Require().NoError(err)
	s.JSONEq(`[
		{"path": "applicant.birthday", "value": "1990-05-01"},
		{"path": "applicant.color", "value": "blue"},
		{"path": "applicant.pets.selection", "value": [1, 3]},
		{"path": "applicant.size", "value": 4},
		{"path": "applicant.veteran", "value": true}
	]`, out)

	_, err = s.run("applicants", "clear-answer", "--id", id, "--path", "applicant.color")
	s.Require().NoError(err)
	_, err = s.run("applicants", "clear-answer", "--id", id, "--path", "applicant.size", "--keep-key")
	s.Require().NoError(err)

	stored, err := s.app.applicants.FindByID(s.ctx, applicant.ID)
	s.Require().NoError(err)
	raw, err := stored.SerializedData()
	s.Require().NoError(err)
	s.JSONEq(`{"applicant":{"birthday":"1990-05-01","pets":{"selection":[1,3]},"size":null,"veteran":true}}`, string(raw))

	out, err = s.run("applicants", "answers", "--id", id)
	s.Require().NoError(err)
	s.Contains(out, `"value": null`)
}

func (s *CLISuite) TestSetAnswerRejectsBadInput() {
	applicant := s.insertApplicant(time.Now(), func(func(path.Path, any)) {})
	id := applicant.ID.String()

	_, err := s.run("applicants", "set-answer", "--id", id, "--path", "applicant.size", "--type", "long", "--value", "four")
	s.ErrorContains(err, "invalid long")

	_, err = s.run("applicants", "set-answer", "--id", id, "--path", " . ", "--value", "x")
	s.ErrorContains(err, "path is required")

	_, err = s.run("applicants", "set-answer", "--id", id, "--path", "applicant.size", "--type", "uuid", "--value", "x")
	s.ErrorContains(err, "unknown answer type")
}

const checkCatalog = `
questions:
  - id: 1
    name: applicant name
    type: name
    path: applicant.name
    required: true
    text: {en-US: "What is your name?"}
  - id: 2
    name: household size
    type: number
    path: applicant.household
    max: 20
    text: {en-US: "How many people live with you?"}
`

func (s *CLISuite) TestCheckAnswers() {
	catalogFile := filepath.Join(s.T().TempDir(), "catalog.yaml")
	s.Require().NoError(os.WriteFile(catalogFile, []byte(checkCatalog), 0o600))

	applicant := s.insertApplicant(time.Now(), func(put func(path.Path, any)) {
		put(path.Create("applicant.household.number"), int64(25))
	})
	program := &models.ProgramDefinition{
		AdminName:   "snap",
		Stage:       domain.LifecycleStageActive,
		QuestionIDs: []domain.QuestionID{1, 2, 99},
	}
	s.Require().NoError(s.app.programs.Insert(s.ctx, program))

	out, err := s.run("check-answers", "--catalog", catalogFile, "--applicant", applicant.ID.String(), "--metrics")
	s.Require().NoError(err)

	var report answerReport
	s.Require().NoError(json.Unmarshal([]byte(out), &report))
	s.Equal(2, report.Invalid)
	s.Equal([]domain.QuestionID{99}, report.Missing)
	s.Require().Len(report.Questions, 2)

	name, size := report.Questions[0], report.Questions[1]
	s.False(name.Answered)
	s.Equal([]string{"validation.is_required"}, name.QuestionErrors)
	s.True(size.Answered)
	s.Equal([]string{"validation.number_too_large"}, size.AnswerErrors)

	s.Equal(1.0, testutil.ToFloat64(s.app.metrics.QuestionValidationTotal.WithLabelValues("NUMBER", "invalid")))
	s.Contains(s.stderr.String(), "uat_question_validation_total")
}

func (s *CLISuite) TestCheckAnswersUnknownProgram() {
	catalogFile := filepath.Join(s.T().TempDir(), "catalog.yaml")
	s.Require().NoError(os.WriteFile(catalogFile, []byte(checkCatalog), 0o600))
	applicant := s.insertApplicant(time.Now(), func(func(path.Path, any)) {})

	_, err := s.run("check-answers", "--catalog", catalogFile, "--applicant", applicant.ID.String(), "--program", "42")
	s.ErrorContains(err, "not available")
}
