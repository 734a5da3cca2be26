package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"uat/internal/applicant/data"
	"uat/internal/path"
	platformstrings "uat/pkg/platform/strings"
)

type answerEntry struct {
	Path  path.Path `json:"path"`
	Value any       `json:"value"`
}

// leafValue renders the stored value at p; explicit nulls render as nil.
func leafValue(d *data.ApplicantData, p path.Path) any {
	if !d.HasPath(p) {
		return nil
	}
	if v, ok := d.ReadBool(p); ok {
		return v
	}
	if v, ok := d.ReadString(p); ok {
		return v
	}
	if v, ok := d.ReadLong(p); ok {
		return v
	}
	if v, ok := d.ReadDouble(p); ok {
		return v
	}
	if v, ok := d.ReadLongList(p); ok {
		return v
	}
	return nil
}

func newAnswersCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "answers",
		Short: "List every stored answer of an applicant by path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			applicantID, err := applicantFlag(cmd, "id")
			if err != nil {
				return err
			}
			applicant, err := a.requireApplicant(cmd, applicantID)
			if err != nil {
				return err
			}
			d, err := applicant.ApplicantData()
			if err != nil {
				return err
			}
			leaves := d.LeafPaths()
			entries := make([]answerEntry, 0, len(leaves))
			for _, p := range leaves {
				entries = append(entries, answerEntry{Path: p, Value: leafValue(d, p)})
			}
			return writeJSON(cmd.OutOrStdout(), entries)
		},
	}
	cmd.Flags().String("id", "", "applicant id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func putAnswer(d *data.ApplicantData, p path.Path, kind, raw string) error {
	switch kind {
	case "string":
		d.PutString(p, raw)
	case "long":
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid long %q", raw)
		}
		d.PutLong(p, v)
	case "double":
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid double %q", raw)
		}
		d.PutDouble(p, v)
	case "bool":
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid bool %q", raw)
		}
		d.PutBool(p, v)
	case "date":
		v, err := time.Parse(data.DateLayout, raw)
		if err != nil {
			return fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
		}
		d.PutDate(p, v)
	case "long-list":
		items := platformstrings.SplitList(raw, ",")
		values := make([]int64, 0, len(items))
		for _, item := range items {
			v, err := strconv.ParseInt(item, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid long %q in list", item)
			}
			values = append(values, v)
		}
		d.PutLongList(p, values)
	default:
		return fmt.Errorf("unknown answer type %q", kind)
	}
	return nil
}

func answerPathFlag(cmd *cobra.Command) (path.Path, error) {
	raw, err := cmd.Flags().GetString("path")
	if err != nil {
		return path.Path{}, err
	}
	p := path.Create(raw)
	if p.IsEmpty() {
		return path.Path{}, errors.New("answer path is required")
	}
	return p, nil
}

// editAnswers loads the applicant, applies edit to its answers, saves it and
// prints the result.
func (a *app) editAnswers(cmd *cobra.Command, edit func(d *data.ApplicantData, p path.Path) error) error {
	ctx := cmd.Context()
	applicantID, err := applicantFlag(cmd, "id")
	if err != nil {
		return err
	}
	p, err := answerPathFlag(cmd)
	if err != nil {
		return err
	}
	applicant, err := a.requireApplicant(cmd, applicantID)
	if err != nil {
		return err
	}
	d, err := applicant.ApplicantData()
	if err != nil {
		return err
	}
	if err := edit(d, p); err != nil {
		return err
	}

	saved, err := a.users.UpdateApplicant(ctx, applicant).Await(ctx)
	if err != nil {
		return err
	}
	v, err := newApplicantView(saved, true)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), v)
}

func newSetAnswerCommand(a *app) *cobra.Command {
	var kind, value string
	cmd := &cobra.Command{
		Use:   "set-answer",
		Short: "Store one answer of an applicant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.editAnswers(cmd, func(d *data.ApplicantData, p path.Path) error {
				return putAnswer(d, p, kind, value)
			})
		},
	}
	cmd.Flags().String("id", "", "applicant id")
	cmd.Flags().String("path", "", "dotted answer path, e.g. applicant.household.number")
	cmd.Flags().StringVar(&value, "value", "", "answer value")
	cmd.Flags().StringVar(&kind, "type", "string", "value type: string, long, double, bool, date or long-list")
	for _, name := range []string{"id", "path", "value"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newClearAnswerCommand(a *app) *cobra.Command {
	var keepKey bool
	cmd := &cobra.Command{
		Use:   "clear-answer",
		Short: "Remove one answer of an applicant",
		Long: "Removes the value at the path. With --keep-key the path is kept " +
			"with a null value, which reads as unanswered.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.editAnswers(cmd, func(d *data.ApplicantData, p path.Path) error {
				if keepKey {
					d.PutNull(p)
				} else {
					d.Remove(p)
				}
				return nil
			})
		},
	}
	cmd.Flags().String("id", "", "applicant id")
	cmd.Flags().String("path", "", "dotted answer path")
	cmd.Flags().BoolVar(&keepKey, "keep-key", false, "store null instead of removing the key")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}
