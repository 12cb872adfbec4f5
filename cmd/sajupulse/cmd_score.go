package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"SajuPulse/internal/domain/models"
	"SajuPulse/internal/services/classifier"
	"SajuPulse/internal/usecase"
	xhttp "SajuPulse/pkg/http"
)

var scoreFlags struct {
	request string
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one month for one event type",
	RunE:  runScore,
}

var periodFlags struct {
	request string
}

var periodCmd = &cobra.Command{
	Use:   "period",
	Short: "Show the pillar, ten-god and life stage of one month",
	RunE:  runPeriod,
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreFlags.request, "request", "f", "", "score request file, - for stdin (required)")
	_ = scoreCmd.MarkFlagRequired("request")

	periodCmd.Flags().StringVarP(&periodFlags.request, "request", "f", "", "period request file, - for stdin (required)")
	_ = periodCmd.MarkFlagRequired("request")
}

type scoreOutput struct {
	Period models.Period        `json:"period"`
	Result models.ScoringResult `json:"result"`
	Grade  models.Grade         `json:"grade,omitempty"`
}

func runScore(cmd *cobra.Command, _ []string) error {
	var req models.ScoreRequest
	if err := readRequest(cmd, scoreFlags.request, &req); err != nil {
		return err
	}
	if err := xhttp.ValidateStruct(cmd.Context(), &req); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	profile, err := usecase.ProfileFromInput(req.Profile)
	if err != nil {
		return err
	}
	event, ok := models.ParseEventType(req.EventType)
	if !ok {
		return fmt.Errorf("%w: %q", models.ErrUnknownEventType, req.EventType)
	}

	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}
	period, result, err := eng.eval.Score(cmd.Context(), usecase.ScoreParams{
		Profile:      profile,
		Year:         req.Year,
		Month:        req.Month,
		Event:        event,
		Natal:        req.Natal,
		Transit:      req.Transit,
		UseAstrology: req.UseAstrology,
	})
	if err != nil {
		return err
	}
	return writeJSON(cmd, scoreOutput{Period: period, Result: result, Grade: classifier.GradeOf(result.Score)})
}

func runPeriod(cmd *cobra.Command, _ []string) error {
	var req models.PeriodRequest
	if err := readRequest(cmd, periodFlags.request, &req); err != nil {
		return err
	}
	if err := xhttp.ValidateStruct(cmd.Context(), &req); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	profile, err := usecase.ProfileFromInput(req.Profile)
	if err != nil {
		return err
	}
	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}
	period, err := eng.eval.Period(profile, req.Year, req.Month)
	if err != nil {
		return err
	}
	return writeJSON(cmd, period)
}
