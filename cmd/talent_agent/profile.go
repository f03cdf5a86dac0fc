package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/talent-matcher/internal/document"
	"github.com/jonathan/talent-matcher/internal/extraction"
	"github.com/jonathan/talent-matcher/internal/llm"
	"github.com/jonathan/talent-matcher/internal/types"
)

// profileSource names where a command reads its candidate from. Exactly one
// of the fields is used, in the order profile file, stored id, resume.
type profileSource struct {
	file      string
	profileID string
	resume    string
}

func (s *profileSource) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.file, "profile", "p", "", "Path to a CandidateProfile JSON file (output of extract)")
	cmd.Flags().StringVar(&s.profileID, "profile-id", "", "ID of a stored profile (requires --db-url)")
	cmd.Flags().StringVarP(&s.resume, "resume", "r", "", "Path to a resume document to extract first")
}

// loadedProfile is a candidate plus its stored id, when known
type loadedProfile struct {
	profile *types.CandidateProfile
	id      *uuid.UUID
}

func (a *app) loadProfile(src profileSource) (*loadedProfile, error) {
	switch {
	case src.file != "":
		var profile types.CandidateProfile
		if err := readJSON(src.file, &profile); err != nil {
			return nil, err
		}
		return &loadedProfile{profile: &profile}, nil

	case src.profileID != "":
		if a.store == nil {
			return nil, fmt.Errorf("--profile-id requires --db-url")
		}
		id, err := uuid.Parse(src.profileID)
		if err != nil {
			return nil, fmt.Errorf("invalid profile id %q: %w", src.profileID, err)
		}
		rec, err := a.store.GetProfile(a.ctx, id)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, fmt.Errorf("profile %s not found", id)
		}
		profile := rec.Profile
		return &loadedProfile{profile: &profile, id: &id}, nil

	case src.resume != "" || a.cfg.Resume != "":
		path := src.resume
		if path == "" {
			path = a.cfg.Resume
		}
		return a.extractResume(path)
	}
	return nil, fmt.Errorf("one of --profile, --profile-id or --resume is required")
}

// extractResume runs the document extractor and the field pipeline, and
// stores the profile when a database is configured.
func (a *app) extractResume(path string) (*loadedProfile, error) {
	doc, err := document.NewExtractor().ExtractFile(a.ctx, path)
	if err != nil {
		return nil, err
	}

	oracle, err := a.oracle(llm.TierStandard)
	if err != nil {
		return nil, err
	}
	pipeline := extraction.NewPipeline(extraction.Options{
		Oracle:      oracle,
		TokenBudget: a.cfg.PromptTokenBudget,
		Now:         a.now,
	})
	result, err := pipeline.Run(a.ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to extract profile: %w", err)
	}

	a.logger.Info("extracted profile",
		"path", path,
		"skills", len(result.Profile.Skills),
		"experience", len(result.Profile.Experience),
		"errors", len(result.Profile.ProcessingErrors),
	)

	loaded := &loadedProfile{profile: result.Profile}
	if a.store != nil {
		id, err := a.store.SaveProfile(a.ctx, result.Profile, doc.Metadata.Hash)
		if err != nil {
			return nil, err
		}
		a.logger.Info("saved profile", "profile_id", id)
		loaded.id = &id
	}
	return loaded, nil
}
