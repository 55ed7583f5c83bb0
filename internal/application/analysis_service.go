package application

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/abdidvp/forcekraft/internal/domain"
	"github.com/abdidvp/forcekraft/internal/domain/bypass"
	"github.com/abdidvp/forcekraft/internal/domain/naming"
	"github.com/abdidvp/forcekraft/internal/domain/report"
)

// AnalysisService orchestrates the analysis pipeline:
// load config → load metadata → filter ignored records → run analyzers → build report.
type AnalysisService struct {
	configLoader domain.ConfigLoader
	metadata     domain.MetadataLoader
	commits      domain.CommitReader
	naming       *naming.Analyzer
	bypass       *bypass.Analyzer
	now          func() time.Time
}

type ServiceOption func(*AnalysisService)

// WithAnalyzers replaces the default-catalog analyzers.
func WithAnalyzers(n *naming.Analyzer, b *bypass.Analyzer) ServiceOption {
	return func(s *AnalysisService) {
		s.naming = n
		s.bypass = b
	}
}

// WithClock sets the clock used to timestamp reports.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *AnalysisService) { s.now = now }
}

// NewAnalysisService wires the service. commits may be nil, in which case
// reports carry no commit hash.
func NewAnalysisService(
	configLoader domain.ConfigLoader,
	metadata domain.MetadataLoader,
	commits domain.CommitReader,
	opts ...ServiceOption,
) *AnalysisService {
	s := &AnalysisService{
		configLoader: configLoader,
		metadata:     metadata,
		commits:      commits,
		naming:       naming.New(nil),
		bypass:       bypass.New(nil),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Metadata is the record set of one project after config has been applied.
// A nil slice means the domain is skipped or has no configured source.
type Metadata struct {
	Config          domain.ProjectConfig
	Fields          []domain.FieldRecord
	ValidationRules []domain.ValidationRuleRecord
	Triggers        []domain.TriggerRecord
	Flows           []domain.FlowRecord
	// Skipped lists domains excluded by config or whose sources held no
	// records, in report order.
	Skipped []string
}

// LoadMetadata loads config and every enabled domain's records, dropping
// records whose identifier matches an ignore glob.
func (s *AnalysisService) LoadMetadata(projectPath string) (*Metadata, error) {
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	md := &Metadata{Config: cfg}
	for _, d := range domain.ValidDomains {
		if cfg.IsSkipped(d) {
			md.Skipped = append(md.Skipped, d)
			continue
		}
		patterns := cfg.Sources.For(d)
		if len(patterns) == 0 {
			continue
		}

		var n int
		switch d {
		case domain.DomainNaming:
			recs, err := s.metadata.LoadFields(projectPath, patterns)
			if err != nil {
				return nil, fmt.Errorf("reading fields: %w", err)
			}
			md.Fields = filter(cfg, recs, domain.FieldRecord.Identifier)
			n = len(md.Fields)
		case domain.DomainValidation:
			recs, err := s.metadata.LoadValidationRules(projectPath, patterns)
			if err != nil {
				return nil, fmt.Errorf("reading validation rules: %w", err)
			}
			md.ValidationRules = filter(cfg, recs, domain.ValidationRuleRecord.Identifier)
			n = len(md.ValidationRules)
		case domain.DomainTriggers:
			recs, err := s.metadata.LoadTriggers(projectPath, patterns)
			if err != nil {
				return nil, fmt.Errorf("reading triggers: %w", err)
			}
			md.Triggers = filter(cfg, recs, func(t domain.TriggerRecord) string { return t.Name })
			n = len(md.Triggers)
		case domain.DomainFlows:
			recs, err := s.metadata.LoadFlows(projectPath, patterns)
			if err != nil {
				return nil, fmt.Errorf("reading flows: %w", err)
			}
			md.Flows = filter(cfg, recs, func(f domain.FlowRecord) string { return f.Name })
			n = len(md.Flows)
		}
		if n == 0 {
			md.Skipped = append(md.Skipped, d)
		}
	}
	return md, nil
}

func filter[T any](cfg domain.ProjectConfig, records []T, id func(T) string) []T {
	var out []T
	for _, r := range records {
		if !cfg.IsIgnored(id(r)) {
			out = append(out, r)
		}
	}
	return out
}

// AnalyzeProject runs every domain that has records and returns the
// stamped composite report.
func (s *AnalysisService) AnalyzeProject(projectPath string) (*domain.Report, error) {
	md, err := s.LoadMetadata(projectPath)
	if err != nil {
		return nil, err
	}

	var in report.Input
	if len(md.Fields) > 0 {
		if in.Naming, err = s.AnalyzeFields(md.Fields); err != nil {
			return nil, err
		}
	}
	if len(md.ValidationRules) > 0 {
		if in.Validation, err = s.AnalyzeValidationRules(md.ValidationRules); err != nil {
			return nil, err
		}
	}
	if len(md.Triggers) > 0 {
		if in.Triggers, err = s.AnalyzeTriggers(md.Triggers); err != nil {
			return nil, err
		}
	}
	if len(md.Flows) > 0 {
		if in.Flows, err = s.AnalyzeFlows(md.Flows); err != nil {
			return nil, err
		}
	}

	r := s.BuildReport(in, md.Config.Object)
	r.Skipped = md.Skipped
	if s.commits != nil && s.commits.IsGitRepo(projectPath) {
		if hash, err := s.commits.CommitHash(projectPath); err == nil {
			r.CommitHash = hash
		}
	}
	return r, nil
}

// AnalyzeFields runs the naming analyzer and summarizes its result.
func (s *AnalysisService) AnalyzeFields(fields []domain.FieldRecord) (*domain.NamingAnalysis, error) {
	res, err := s.naming.AnalyzeFields(fields)
	if err != nil {
		return nil, fmt.Errorf("analyzing naming conventions: %w", err)
	}
	return naming.Analysis(res), nil
}

func (s *AnalysisService) AnalyzeValidationRules(rules []domain.ValidationRuleRecord) (*domain.BypassAnalysis, error) {
	res, err := s.bypass.AnalyzeValidationRules(rules)
	if err != nil {
		return nil, fmt.Errorf("analyzing validation rules: %w", err)
	}
	return bypass.Analysis(res), nil
}

func (s *AnalysisService) AnalyzeTriggers(triggers []domain.TriggerRecord) (*domain.BypassAnalysis, error) {
	res, err := s.bypass.AnalyzeTriggers(triggers)
	if err != nil {
		return nil, fmt.Errorf("analyzing triggers: %w", err)
	}
	return bypass.Analysis(res), nil
}

func (s *AnalysisService) AnalyzeFlows(flows []domain.FlowRecord) (*domain.BypassAnalysis, error) {
	res, err := s.bypass.AnalyzeFlows(flows)
	if err != nil {
		return nil, fmt.Errorf("analyzing flows: %w", err)
	}
	return bypass.Analysis(res), nil
}

// BuildReport synthesizes a report from already computed analyses and
// stamps it with a fresh ID and the current time.
func (s *AnalysisService) BuildReport(in report.Input, object string) *domain.Report {
	r := report.Build(in)
	r.ID = ulid.Make().String()
	r.Timestamp = s.now()
	r.Object = object
	return r
}
