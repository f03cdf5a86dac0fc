package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-matcher/internal/config"
	"github.com/jonathan/talent-matcher/internal/interview"
	"github.com/jonathan/talent-matcher/internal/llm"
	"github.com/jonathan/talent-matcher/internal/types"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Generate and evaluate technical interviews",
}

var interviewGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an interview session for a domain and experience level",
	RunE:  runInterviewGenerate,
}

var interviewEvaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score a session's answers and produce a graded result with recommendations",
	RunE:  runInterviewEvaluate,
}

var interviewDomainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List the supported interview domains",
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, d := range interview.Domains() {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", d, d.Title()); err != nil {
				return err
			}
		}
		return nil
	},
}

var (
	interviewDomain     string
	interviewYears      float64
	interviewCount      int
	interviewSessionIn  string
	interviewSessionID  string
	interviewAnswers    string
	interviewOutputFile string
)

func init() {
	interviewGenerateCmd.Flags().StringVarP(&interviewDomain, "domain", "d", "", "Interview domain (see 'interview domains')")
	interviewGenerateCmd.Flags().Float64VarP(&interviewYears, "years", "y", 0, "Candidate experience in years")
	interviewGenerateCmd.Flags().IntVarP(&interviewCount, "count", "n", 0, "Number of questions (default from config)")
	interviewGenerateCmd.Flags().StringVarP(&interviewOutputFile, "out", "o", "", "Path to output session JSON (default stdout)")
	_ = interviewGenerateCmd.MarkFlagRequired("domain")

	interviewEvaluateCmd.Flags().StringVarP(&interviewSessionIn, "session", "s", "", "Path to a session JSON file (output of generate)")
	interviewEvaluateCmd.Flags().StringVar(&interviewSessionID, "session-id", "", "ID of a stored session (requires --db-url)")
	interviewEvaluateCmd.Flags().StringVarP(&interviewAnswers, "answers", "a", "", "Path to a JSON array of {question_id, answer}")
	interviewEvaluateCmd.Flags().StringVarP(&interviewOutputFile, "out", "o", "", "Path to output session JSON (default stdout)")
	_ = interviewEvaluateCmd.MarkFlagRequired("answers")

	interviewCmd.AddCommand(interviewGenerateCmd, interviewEvaluateCmd, interviewDomainsCmd)
	rootCmd.AddCommand(interviewCmd)
}

func (a *app) interviewEngine() (*interview.Engine, error) {
	oracle, err := a.oracle(llm.TierAdvanced)
	if err != nil {
		return nil, err
	}
	return interview.NewEngine(oracle,
		interview.WithMaxQuestions(a.cfg.MaxQuestions),
		interview.WithWorkers(a.cfg.MatchWorkers),
		interview.WithClock(a.now),
	), nil
}

func runInterviewGenerate(cmd *cobra.Command, _ []string) error {
	domain, err := interview.ParseDomain(interviewDomain)
	if err != nil {
		return err
	}

	a, err := setup(cmd, func(c *config.Config) {
		if interviewCount > 0 {
			c.QuestionCount = interviewCount
		}
	})
	if err != nil {
		return err
	}
	defer a.close()

	engine, err := a.interviewEngine()
	if err != nil {
		return err
	}
	session, err := engine.Generate(a.ctx, domain, interviewYears, a.cfg.QuestionCount)
	if err != nil {
		return err
	}

	if a.store != nil {
		if err := a.store.SaveSession(a.ctx, session); err != nil {
			return err
		}
	}
	if a.cfg.Verbose {
		a.printer.PrintInterviewSession(session)
	}
	return writeJSON(cmd, interviewOutputFile, session)
}

func (a *app) loadSession() (*types.InterviewSession, error) {
	switch {
	case interviewSessionIn != "":
		var session types.InterviewSession
		if err := readJSON(interviewSessionIn, &session); err != nil {
			return nil, err
		}
		return &session, nil
	case interviewSessionID != "":
		if a.store == nil {
			return nil, fmt.Errorf("--session-id requires --db-url")
		}
		session, err := a.store.GetSession(a.ctx, interviewSessionID)
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, fmt.Errorf("session %s not found", interviewSessionID)
		}
		return session, nil
	}
	return nil, fmt.Errorf("one of --session or --session-id is required")
}

func runInterviewEvaluate(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd, nil)
	if err != nil {
		return err
	}
	defer a.close()

	session, err := a.loadSession()
	if err != nil {
		return err
	}
	var answers []types.Answer
	if err := readJSON(interviewAnswers, &answers); err != nil {
		return err
	}

	engine, err := a.interviewEngine()
	if err != nil {
		return err
	}
	evaluated, evalErr := engine.Evaluate(a.ctx, session, answers)
	if evaluated == nil {
		return evalErr
	}

	// A failed session is still persisted and written so the failure reason survives.
	if evalErr != nil && evaluated.Status != types.SessionFailed {
		return evalErr
	}
	if a.store != nil {
		if err := a.store.SaveSession(a.ctx, evaluated); err != nil {
			return err
		}
	}
	if a.cfg.Verbose {
		a.printer.PrintInterviewResult(evaluated)
	}
	if err := writeJSON(cmd, interviewOutputFile, evaluated); err != nil {
		return err
	}
	return evalErr
}
