package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [resume]",
	Short: "Extract a structured CandidateProfile from a resume document",
	Long: "Extract a structured CandidateProfile JSON from a PDF, DOCX, ODT, RTF, HTML or text resume. " +
		"The oracle is consulted when an API key is configured; deterministic strategies fill every gap.",
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

var (
	extractResumeFile string
	extractOutputFile string
)

func init() {
	extractCmd.Flags().StringVarP(&extractResumeFile, "resume", "r", "", "Path to the resume document")
	extractCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := extractResumeFile
	if len(args) == 1 {
		path = args[0]
	}

	a, err := setup(cmd, nil)
	if err != nil {
		return err
	}
	defer a.close()

	if path == "" {
		path = a.cfg.Resume
	}
	if path == "" {
		return fmt.Errorf("a resume path is required (argument or --resume)")
	}

	loaded, err := a.extractResume(path)
	if err != nil {
		return err
	}

	if a.cfg.Verbose {
		a.printer.PrintCandidateProfile(loaded.profile)
		a.printer.PrintProcessingErrors(loaded.profile)
	}
	return writeJSON(cmd, extractOutputFile, loaded.profile)
}
