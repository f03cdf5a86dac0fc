package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-matcher/internal/catalog"
	"github.com/jonathan/talent-matcher/internal/config"
	"github.com/jonathan/talent-matcher/internal/matching"
	"github.com/jonathan/talent-matcher/internal/types"
)

var matchJobsCmd = &cobra.Command{
	Use:   "match-jobs",
	Short: "Rank open jobs from a catalog and/or posting URLs against a candidate",
	RunE:  runMatchJobs,
}

var matchCoursesCmd = &cobra.Command{
	Use:   "match-courses",
	Short: "Rank catalog courses by how well they fit a candidate's learning needs",
	RunE:  runMatchCourses,
}

// matchFlags holds the flags shared by both match commands
type matchFlags struct {
	source     profileSource
	catalog    string
	limit      int
	outputFile string
}

var (
	matchJobsFlags    matchFlags
	matchCoursesFlags matchFlags
	matchJobURLs      []string
)

func (f *matchFlags) register(cmd *cobra.Command) {
	f.source.register(cmd)
	cmd.Flags().StringVarP(&f.catalog, "catalog", "c", "", "Path to a JSON or YAML catalog")
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 0, "Maximum number of results (default from config)")
	cmd.Flags().StringVarP(&f.outputFile, "out", "o", "", "Path to output JSON file (default stdout)")
}

func init() {
	matchJobsFlags.register(matchJobsCmd)
	matchJobsCmd.Flags().StringSliceVar(&matchJobURLs, "job-url", nil, "Job posting URL to fetch and include (repeatable)")
	matchCoursesFlags.register(matchCoursesCmd)

	rootCmd.AddCommand(matchJobsCmd)
	rootCmd.AddCommand(matchCoursesCmd)
}

func (f *matchFlags) apply(c *config.Config) {
	if f.catalog != "" {
		c.Catalog = f.catalog
	}
}

// loadCatalog reads the configured catalog and drops expired opportunities
func (a *app) loadCatalog() ([]types.Opportunity, error) {
	if a.cfg.Catalog == "" {
		return nil, nil
	}
	opps, err := catalog.LoadFile(a.cfg.Catalog)
	if err != nil {
		return nil, err
	}
	open := catalog.Open(opps, a.now())
	a.logger.Debug("loaded catalog", "path", a.cfg.Catalog, "records", len(opps), "open", len(open))
	return open, nil
}

func runMatchJobs(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd, matchJobsFlags.apply)
	if err != nil {
		return err
	}
	defer a.close()

	opps, err := a.loadCatalog()
	if err != nil {
		return err
	}
	jobs, _ := catalog.Split(opps)
	for _, u := range matchJobURLs {
		job, err := catalog.FetchJobPosting(a.ctx, u, catalog.DefaultFetchOptions())
		if err != nil {
			return err
		}
		jobs = append(jobs, job)
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no jobs to match (use --catalog or --job-url)")
	}

	loaded, err := a.loadProfile(matchJobsFlags.source)
	if err != nil {
		return err
	}

	limit := matchJobsFlags.limit
	if limit <= 0 {
		limit = a.cfg.MatchLimit
	}
	recommender := matching.NewJobRecommender(
		matching.WithJobWorkers(a.cfg.MatchWorkers),
		matching.WithJobClock(a.now),
	)
	results, err := recommender.Recommend(a.ctx, loaded.profile, jobs, limit)
	if err != nil {
		return fmt.Errorf("failed to match jobs: %w", err)
	}

	return a.finishMatch(cmd, loaded, types.KindJob, results, matchJobsFlags.outputFile, "JOB MATCHES")
}

func runMatchCourses(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd, matchCoursesFlags.apply)
	if err != nil {
		return err
	}
	defer a.close()

	opps, err := a.loadCatalog()
	if err != nil {
		return err
	}
	_, courses := catalog.Split(opps)
	if len(courses) == 0 {
		return fmt.Errorf("no courses to match (use --catalog)")
	}

	loaded, err := a.loadProfile(matchCoursesFlags.source)
	if err != nil {
		return err
	}

	limit := matchCoursesFlags.limit
	if limit <= 0 {
		limit = a.cfg.CourseLimit
	}
	recommender := matching.NewCourseRecommender(
		matching.WithCourseWorkers(a.cfg.MatchWorkers),
		matching.WithCourseClock(a.now),
	)
	results, err := recommender.Recommend(a.ctx, loaded.profile, courses, limit)
	if err != nil {
		return fmt.Errorf("failed to match courses: %w", err)
	}

	return a.finishMatch(cmd, loaded, types.KindCourse, results, matchCoursesFlags.outputFile, "COURSE RECOMMENDATIONS")
}

func (a *app) finishMatch(cmd *cobra.Command, loaded *loadedProfile, kind types.OpportunityKind, results []types.MatchResult, out, title string) error {
	if results == nil {
		results = []types.MatchResult{}
	}
	if a.cfg.Verbose {
		a.printer.PrintMatches(title, results)
	}
	if a.store != nil {
		runID, err := a.store.SaveMatchRun(a.ctx, loaded.id, kind, results)
		if err != nil {
			return err
		}
		a.logger.Info("saved match run", "run_id", runID, "kind", kind, "results", len(results))
	}
	return writeJSON(cmd, out, results)
}
