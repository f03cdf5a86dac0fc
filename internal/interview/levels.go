// Package interview generates technical interview questions with reference
// answers, scores submitted answers against them and grades the session.
//
// Session status graph:
//
//	active ──► completed
//	   │
//	   └─────► failed
//
// completed and failed are terminal.
package interview

import (
	"fmt"
	"sort"
	"strings"
)

// Difficulty is a question tier derived from years of experience
type Difficulty string

const (
	DifficultyFresher      Difficulty = "fresher"
	DifficultyJunior       Difficulty = "junior"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultySenior       Difficulty = "senior"
	DifficultyExpert       Difficulty = "expert"
)

// DifficultyFor maps years of experience onto a tier: up to 1 fresher, up to 3
// junior, up to 5 intermediate, up to 8 senior, beyond that expert
func DifficultyFor(years float64) Difficulty {
	switch {
	case years <= 1:
		return DifficultyFresher
	case years <= 3:
		return DifficultyJunior
	case years <= 5:
		return DifficultyIntermediate
	case years <= 8:
		return DifficultySenior
	default:
		return DifficultyExpert
	}
}

var difficultyFocus = map[Difficulty]string{
	DifficultyFresher:      "basic concepts and fundamentals",
	DifficultyJunior:       "practical applications and simple problem solving",
	DifficultyIntermediate: "complex scenarios and system design basics",
	DifficultySenior:       "advanced concepts and architectural decisions",
	DifficultyExpert:       "expert-level system design and leadership scenarios",
}

// Focus describes what questions at this tier should cover
func (d Difficulty) Focus() string {
	return difficultyFocus[d]
}

// Domain is a technical interview area
type Domain string

const (
	DomainPython            Domain = "python"
	DomainJavaScript        Domain = "javascript"
	DomainJava              Domain = "java"
	DomainDataScience       Domain = "data_science"
	DomainMachineLearning   Domain = "machine_learning"
	DomainCloudComputing    Domain = "cloud_computing"
	DomainDevOps            Domain = "devops"
	DomainCybersecurity     Domain = "cybersecurity"
	DomainMobileDevelopment Domain = "mobile_development"
	DomainWebDevelopment    Domain = "web_development"
	DomainBlockchain        Domain = "blockchain"
	DomainAIML              Domain = "ai_ml"
)

var domainContext = map[Domain]string{
	DomainPython:            "Python programming, libraries, frameworks, best practices",
	DomainJavaScript:        "JavaScript language features, async programming, Node.js, browser APIs",
	DomainJava:              "Java language, JVM internals, collections, concurrency, Spring",
	DomainDataScience:       "data analysis, statistics, ML algorithms, data visualization",
	DomainMachineLearning:   "ML algorithms, model training, evaluation, deployment",
	DomainCloudComputing:    "AWS/Azure/GCP, containerization, serverless, scaling",
	DomainDevOps:            "CI/CD, infrastructure, monitoring, automation",
	DomainCybersecurity:     "security principles, threat analysis, penetration testing",
	DomainMobileDevelopment: "iOS/Android development, mobile UI, app lifecycle, performance",
	DomainWebDevelopment:    "frontend/backend, frameworks, APIs, security",
	DomainBlockchain:        "blockchain technology, smart contracts, DeFi, cryptocurrencies",
	DomainAIML:              "neural networks, deep learning, NLP, generative models, MLOps",
}

// Domains lists every supported domain in name order
func Domains() []Domain {
	out := make([]Domain, 0, len(domainContext))
	for d := range domainContext {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseDomain accepts a domain name in any case, with spaces or hyphens in
// place of underscores
func ParseDomain(s string) (Domain, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	d := Domain(normalized)
	if _, ok := domainContext[d]; !ok {
		return "", fmt.Errorf("unknown interview domain %q", s)
	}
	return d, nil
}

// Context describes the topics a domain covers
func (d Domain) Context() string {
	if ctx, ok := domainContext[d]; ok {
		return ctx
	}
	return string(d)
}

// Title renders the domain for prompts, e.g. "Data Science"
func (d Domain) Title() string {
	words := strings.Split(string(d), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// label renders the domain for recommendation text, e.g. "data science"
func (d Domain) label() string {
	return strings.ReplaceAll(string(d), "_", " ")
}
